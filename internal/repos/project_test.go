package repos

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/campusforge/campusforge-backend/internal/pkg/errors"
	"github.com/campusforge/campusforge-backend/internal/types"
)

func TestProjectCreateGetUpdateDelete(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t), newTestLogger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, nil, &types.Project{
		Title:      "Campus Portal",
		OwnerType:  types.EntityStudent,
		OwnerID:    "S1",
		Domain:     " Web ",
		TechStack:  []string{"Go", "go", " React "},
		LookingFor: types.LookingForTeammates,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ProjectID == uuid.Nil {
		t.Fatal("Create did not assign an id")
	}
	if created.Domain != "web" {
		t.Fatalf("Domain = %q, want normalized web", created.Domain)
	}
	if len(created.TechStack) != 2 {
		t.Fatalf("TechStack = %v, want deduplicated pair", created.TechStack)
	}

	created.Title = "Campus Portal v2"
	if _, err := repo.Update(ctx, nil, created); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := repo.GetByID(ctx, nil, created.ProjectID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Campus Portal v2" {
		t.Fatalf("Title = %q, want Campus Portal v2", got.Title)
	}

	if err := repo.Delete(ctx, nil, created.ProjectID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, nil, created.ProjectID); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound after delete", err)
	}
}

func TestProjectUpdateUnknownID(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t), newTestLogger(t))

	_, err := repo.Update(context.Background(), nil, &types.Project{
		ProjectID: uuid.New(),
		Title:     "ghost",
	})
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestProjectSetActiveFiltersListActive(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t), newTestLogger(t))
	ctx := context.Background()

	p, err := repo.Create(ctx, nil, &types.Project{
		Title: "IoT Mesh", OwnerType: types.EntityStudent, OwnerID: "S1",
		LookingFor: types.LookingForBoth, IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.SetActive(ctx, nil, p.ProjectID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	active, err := repo.ListActive(ctx, nil)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("got %d active projects, want 0", len(active))
	}
}

func TestProjectListOpenings(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t), newTestLogger(t))
	ctx := context.Background()

	seed := []*types.Project{
		{Title: "Mentored Research", OwnerType: types.EntityTeacher, OwnerID: "F1", LookingFor: types.LookingForTeammates, IsActive: true},
		{Title: "Team Hunt", OwnerType: types.EntityStudent, OwnerID: "S2", LookingFor: types.LookingForTeammates, IsActive: true},
		{Title: "Anything Goes", OwnerType: types.EntityStudent, OwnerID: "S3", LookingFor: types.LookingForBoth, IsActive: true},
		{Title: "Mentor Wanted", OwnerType: types.EntityStudent, OwnerID: "S4", LookingFor: types.LookingForMentor, IsActive: true},
		{Title: "My Own", OwnerType: types.EntityStudent, OwnerID: "S1", LookingFor: types.LookingForTeammates, IsActive: true},
		{Title: "Archived", OwnerType: types.EntityStudent, OwnerID: "S5", LookingFor: types.LookingForTeammates, IsActive: true},
	}
	for _, p := range seed {
		if _, err := repo.Create(ctx, nil, p); err != nil {
			t.Fatalf("Create %s: %v", p.Title, err)
		}
	}
	archived := seed[len(seed)-1]
	if err := repo.SetActive(ctx, nil, archived.ProjectID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	openings, err := repo.ListOpenings(ctx, nil, "S1")
	if err != nil {
		t.Fatalf("ListOpenings: %v", err)
	}
	if len(openings.MentorProjects) != 1 || openings.MentorProjects[0].Title != "Mentored Research" {
		t.Fatalf("MentorProjects = %v, want the one teacher project", openings.MentorProjects)
	}
	// Own posting, mentor-seeking postings and inactive rows are excluded;
	// looking_for both sorts ahead of teammates.
	if len(openings.StudentOpenings) != 2 {
		t.Fatalf("got %d student openings, want 2", len(openings.StudentOpenings))
	}
	if openings.StudentOpenings[0].Title != "Anything Goes" {
		t.Fatalf("first opening = %q, want Anything Goes", openings.StudentOpenings[0].Title)
	}
	if openings.StudentOpenings[1].Title != "Team Hunt" {
		t.Fatalf("second opening = %q, want Team Hunt", openings.StudentOpenings[1].Title)
	}
}

func TestProjectListByOwner(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t), newTestLogger(t))
	ctx := context.Background()

	var inactive *types.Project
	for _, p := range []*types.Project{
		{Title: "A", OwnerType: types.EntityStudent, OwnerID: "S1", LookingFor: types.LookingForBoth, IsActive: true},
		{Title: "B", OwnerType: types.EntityStudent, OwnerID: "S1", LookingFor: types.LookingForBoth, IsActive: true},
		{Title: "C", OwnerType: types.EntityStudent, OwnerID: "S2", LookingFor: types.LookingForBoth, IsActive: true},
	} {
		if _, err := repo.Create(ctx, nil, p); err != nil {
			t.Fatalf("Create %s: %v", p.Title, err)
		}
		if p.Title == "B" {
			inactive = p
		}
	}
	if err := repo.SetActive(ctx, nil, inactive.ProjectID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	mine, err := repo.ListByOwner(ctx, nil, types.EntityStudent, "S1")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	// Both active and inactive rows belong to the owner view.
	if len(mine) != 2 {
		t.Fatalf("got %d projects, want 2", len(mine))
	}
}
