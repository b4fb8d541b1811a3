package services

import (
	"strings"

	"github.com/campusforge/campusforge-backend/internal/types"
)

// Profile text builders render structured attributes into the canonical blobs
// the similarity scorer embeds. Pure and deterministic: fixed section layout,
// comma+space joins in stored order, absent fields render empty.

func BuildStudentText(student *types.Student) string {
	var b strings.Builder
	writeSection(&b, "Domains", joinSet(student.DomainInterests))
	writeSection(&b, "Skills", joinSet(student.TechSkills))
	writeSection(&b, "Languages", joinSet(student.ProgrammingLanguages))
	writeSection(&b, "Past Projects", rawJSONText(student.PastProjects))
	return b.String()
}

// BuildStudentBriefText is the shorter rendering used when pairing against
// teachers: mentoring relevance comes from domains, skills and project work,
// not language lists.
func BuildStudentBriefText(student *types.Student) string {
	var b strings.Builder
	writeSection(&b, "Domains", joinSet(student.DomainInterests))
	writeSection(&b, "Skills", joinSet(student.TechSkills))
	writeSection(&b, "Projects", rawJSONText(student.PastProjects))
	return b.String()
}

func BuildTeacherText(teacher *types.Teacher) string {
	var b strings.Builder
	writeSection(&b, "Expertise", joinSet(teacher.AreasOfExpertise))
	writeSection(&b, "Mentoring Domains", joinSet(teacher.DomainsInterestedToMentor))
	writeSection(&b, "Research", joinSet(teacher.ProminentProjectsOrPublications))
	return b.String()
}

func BuildProjectText(project *types.Project) string {
	var b strings.Builder
	writeSection(&b, "Title", project.Title)
	writeSection(&b, "Description", project.Description)
	writeSection(&b, "Domain", project.Domain)
	writeSection(&b, "Tech Stack", joinSet(project.TechStack))
	return b.String()
}

func writeSection(b *strings.Builder, label, value string) {
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

func joinSet(values []string) string {
	return strings.Join(values, ", ")
}

func rawJSONText(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if s == "null" {
		return ""
	}
	return s
}
