package services

import (
	"strconv"

	"github.com/campusforge/campusforge-backend/internal/types"
)

// Rule scorers are pure and strictly additive: every satisfied rule adds a
// fixed or overlap-scaled weight and appends one reason string. Rules never
// subtract, so rule scores are unbounded above.

const (
	weightSharedDomain      = 10
	weightSharedSkill       = 8
	weightSharedLanguage    = 6
	weightSameYear          = 10
	weightAdjacentYear      = 5
	weightSameWorkStyle     = 8
	weightSameCommitment    = 6
	weightPreferredYear     = 15
	weightMentorDomain      = 10
	weightMentorCapacity    = 5
	weightProjectDomain     = 15
	weightProjectTechSkill  = 8
	weightProjectIntent     = 5
	semanticReasonThreshold = 60
)

// overlapCount deduplicates both sides before intersecting: one point of
// credit per matching element, duplicates in stored data never double-count.
func overlapCount(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inA := make(map[string]struct{}, len(a))
	for _, v := range a {
		inA[v] = struct{}{}
	}
	seen := make(map[string]struct{}, len(b))
	count := 0
	for _, v := range b {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if _, ok := inA[v]; ok {
			count++
		}
	}
	return count
}

func containsString(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}

func ScoreStudentStudent(current, other *types.Student) (int, []string) {
	score := 0
	reasons := []string{}

	if n := overlapCount(current.DomainInterests, other.DomainInterests); n > 0 {
		score += n * weightSharedDomain
		reasons = append(reasons, "Common domain interests")
	}
	if n := overlapCount(current.TechSkills, other.TechSkills); n > 0 {
		score += n * weightSharedSkill
		reasons = append(reasons, "Overlapping technical skills")
	}
	if n := overlapCount(current.ProgrammingLanguages, other.ProgrammingLanguages); n > 0 {
		score += n * weightSharedLanguage
		reasons = append(reasons, "Common programming languages")
	}

	yearDiff := current.Year - other.Year
	if yearDiff < 0 {
		yearDiff = -yearDiff
	}
	switch yearDiff {
	case 0:
		score += weightSameYear
		reasons = append(reasons, "Same academic year")
	case 1:
		score += weightAdjacentYear
		reasons = append(reasons, "Adjacent academic years")
	}

	if current.ProjectCompletionApproach == other.ProjectCompletionApproach {
		score += weightSameWorkStyle
		reasons = append(reasons, "Similar project work style")
	}
	if current.CommitmentPreference == other.CommitmentPreference {
		score += weightSameCommitment
		reasons = append(reasons, "Similar commitment preference")
	}

	return score, reasons
}

// ScoreStudentTeacher scores a student looking for a mentor. The capacity
// rule is a soft signal: it only checks the configured capacity is nonzero,
// independent of current load (no allocation tracking exists to consult).
func ScoreStudentTeacher(student *types.Student, teacher *types.Teacher) (int, []string) {
	score := 0
	reasons := []string{}

	if containsString(teacher.PreferredStudentYears, strconv.Itoa(student.Year)) {
		score += weightPreferredYear
		reasons = append(reasons, "Preferred student year for mentoring")
	}
	if n := overlapCount(student.DomainInterests, teacher.DomainsInterestedToMentor); n > 0 {
		score += n * weightMentorDomain
		reasons = append(reasons, "Aligned mentoring domains")
	}
	if teacher.MaxProjectsCapacity > 0 {
		score += weightMentorCapacity
		reasons = append(reasons, "Mentor has available capacity")
	}

	return score, reasons
}

// ScoreTeacherStudent scores a teacher looking for students. Same weight
// table as the student-seeking direction minus the capacity rule: a teacher
// browsing candidates already knows their own capacity.
func ScoreTeacherStudent(teacher *types.Teacher, student *types.Student) (int, []string) {
	score := 0
	reasons := []string{}

	if containsString(teacher.PreferredStudentYears, strconv.Itoa(student.Year)) {
		score += weightPreferredYear
		reasons = append(reasons, "Student year matches mentor preference")
	}
	if n := overlapCount(student.DomainInterests, teacher.DomainsInterestedToMentor); n > 0 {
		score += n * weightMentorDomain
		reasons = append(reasons, "Aligned project domains")
	}

	return score, reasons
}

// ScoreProfileProject scores either a student or a teacher subject against a
// project. domainInterests is the subject's interest set (domain_interests
// for students, domains_interested_to_mentor for teachers). The intent rule
// is an exclusion rule: absence of the disqualifying looking_for value is
// sufficient.
func ScoreProfileProject(profileType string, domainInterests, techSkills []string, project *types.Project) (int, []string) {
	score := 0
	reasons := []string{}

	if containsString(domainInterests, project.Domain) {
		score += weightProjectDomain
		reasons = append(reasons, "Project domain matches interests")
	}
	if n := overlapCount(project.TechStack, techSkills); n > 0 {
		score += n * weightProjectTechSkill
		reasons = append(reasons, "Relevant technical skills for project")
	}

	disqualified := (profileType == types.EntityStudent && project.LookingFor == types.LookingForMentor) ||
		(profileType == types.EntityTeacher && project.LookingFor == types.LookingForTeammates)
	if !disqualified {
		score += weightProjectIntent
		reasons = append(reasons, "Project collaboration intent aligned")
	}

	return score, reasons
}
