package services

import (
	"reflect"
	"testing"

	"github.com/campusforge/campusforge-backend/internal/types"
)

func TestScoreStudentStudentAdditive(t *testing.T) {
	current := &types.Student{
		USN:                       "1RV22CS001",
		Year:                      3,
		DomainInterests:           []string{"ai", "web"},
		TechSkills:                []string{"tensorflow"},
		ProgrammingLanguages:      []string{"python"},
		ProjectCompletionApproach: "iterative",
		CommitmentPreference:      "high",
	}
	other := &types.Student{
		USN:                       "1RV22CS002",
		Year:                      3,
		DomainInterests:           []string{"web", "ai", "iot"},
		TechSkills:                []string{"tensorflow", "react"},
		ProgrammingLanguages:      []string{"python", "go"},
		ProjectCompletionApproach: "iterative",
		CommitmentPreference:      "high",
	}

	score, reasons := ScoreStudentStudent(current, other)

	// 2*10 domains + 1*8 skill + 1*6 language + 10 year + 8 style + 6 commitment
	if score != 58 {
		t.Fatalf("score = %d, want 58", score)
	}
	wantReasons := []string{
		"Common domain interests",
		"Overlapping technical skills",
		"Common programming languages",
		"Same academic year",
		"Similar project work style",
		"Similar commitment preference",
	}
	if !reflect.DeepEqual(reasons, wantReasons) {
		t.Fatalf("reasons = %v, want %v", reasons, wantReasons)
	}
}

func TestScoreStudentStudentAdjacentYear(t *testing.T) {
	current := &types.Student{Year: 2, ProjectCompletionApproach: "a", CommitmentPreference: "b"}
	other := &types.Student{Year: 3, ProjectCompletionApproach: "x", CommitmentPreference: "y"}

	score, reasons := ScoreStudentStudent(current, other)
	if score != 5 {
		t.Fatalf("score = %d, want 5", score)
	}
	if len(reasons) != 1 || reasons[0] != "Adjacent academic years" {
		t.Fatalf("reasons = %v, want adjacent year reason only", reasons)
	}
}

func TestScoreStudentStudentYearGapNoCredit(t *testing.T) {
	current := &types.Student{Year: 1, ProjectCompletionApproach: "a", CommitmentPreference: "b"}
	other := &types.Student{Year: 4, ProjectCompletionApproach: "x", CommitmentPreference: "y"}

	score, _ := ScoreStudentStudent(current, other)
	if score != 0 {
		t.Fatalf("score = %d, want 0", score)
	}
}

func TestOverlapCountDeduplicates(t *testing.T) {
	a := []string{"ai", "ai", "web"}
	b := []string{"ai", "ai", "ai", "web", "web"}
	if n := overlapCount(a, b); n != 2 {
		t.Fatalf("overlapCount = %d, want 2", n)
	}
	if n := overlapCount(nil, b); n != 0 {
		t.Fatalf("overlapCount with nil side = %d, want 0", n)
	}
}

func TestScoreStudentTeacher(t *testing.T) {
	student := &types.Student{
		Year:            3,
		DomainInterests: []string{"ml", "nlp"},
	}
	teacher := &types.Teacher{
		PreferredStudentYears:     []string{"3", "4"},
		DomainsInterestedToMentor: []string{"ml", "vision"},
		MaxProjectsCapacity:       2,
	}

	score, reasons := ScoreStudentTeacher(student, teacher)

	// 15 preferred year + 1*10 domain + 5 capacity
	if score != 30 {
		t.Fatalf("score = %d, want 30", score)
	}
	wantReasons := []string{
		"Preferred student year for mentoring",
		"Aligned mentoring domains",
		"Mentor has available capacity",
	}
	if !reflect.DeepEqual(reasons, wantReasons) {
		t.Fatalf("reasons = %v, want %v", reasons, wantReasons)
	}
}

func TestScoreStudentTeacherZeroCapacity(t *testing.T) {
	student := &types.Student{Year: 2}
	teacher := &types.Teacher{MaxProjectsCapacity: 0}

	score, _ := ScoreStudentTeacher(student, teacher)
	if score != 0 {
		t.Fatalf("score = %d, want 0", score)
	}
}

func TestScoreTeacherStudentHasNoCapacityRule(t *testing.T) {
	teacher := &types.Teacher{
		PreferredStudentYears:     []string{"3"},
		DomainsInterestedToMentor: []string{"ml"},
		MaxProjectsCapacity:       5,
	}
	student := &types.Student{
		Year:            3,
		DomainInterests: []string{"ml"},
	}

	score, reasons := ScoreTeacherStudent(teacher, student)

	// 15 preferred year + 1*10 domain, capacity never counted here
	if score != 25 {
		t.Fatalf("score = %d, want 25", score)
	}
	wantReasons := []string{
		"Student year matches mentor preference",
		"Aligned project domains",
	}
	if !reflect.DeepEqual(reasons, wantReasons) {
		t.Fatalf("reasons = %v, want %v", reasons, wantReasons)
	}
}

func TestScoreProfileProjectIntent(t *testing.T) {
	project := func(lookingFor string) *types.Project {
		return &types.Project{Domain: "robotics", LookingFor: lookingFor}
	}

	tests := []struct {
		name        string
		profileType string
		lookingFor  string
		wantIntent  bool
	}{
		{"student vs mentor-only project", types.EntityStudent, types.LookingForMentor, false},
		{"student vs teammates project", types.EntityStudent, types.LookingForTeammates, true},
		{"teacher vs teammates project", types.EntityTeacher, types.LookingForTeammates, false},
		{"teacher vs mentor project", types.EntityTeacher, types.LookingForMentor, true},
		{"student vs both", types.EntityStudent, types.LookingForBoth, true},
		{"teacher vs both", types.EntityTeacher, types.LookingForBoth, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := ScoreProfileProject(tt.profileType, nil, nil, project(tt.lookingFor))
			want := 0
			if tt.wantIntent {
				want = weightProjectIntent
			}
			if score != want {
				t.Fatalf("score = %d, want %d", score, want)
			}
		})
	}
}

func TestScoreProfileProjectDomainAndSkills(t *testing.T) {
	project := &types.Project{
		Domain:     "web",
		TechStack:  []string{"react", "go", "postgres"},
		LookingFor: types.LookingForBoth,
	}

	score, reasons := ScoreProfileProject(types.EntityStudent,
		[]string{"web", "ai"}, []string{"go", "postgres"}, project)

	// 15 domain + 2*8 stack overlap + 5 intent
	if score != 36 {
		t.Fatalf("score = %d, want 36", score)
	}
	wantReasons := []string{
		"Project domain matches interests",
		"Relevant technical skills for project",
		"Project collaboration intent aligned",
	}
	if !reflect.DeepEqual(reasons, wantReasons) {
		t.Fatalf("reasons = %v, want %v", reasons, wantReasons)
	}
}
