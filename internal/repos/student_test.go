package repos

import (
	"context"
	"errors"
	"reflect"
	"testing"

	pkgerrors "github.com/campusforge/campusforge-backend/internal/pkg/errors"
	"github.com/campusforge/campusforge-backend/internal/types"
)

func TestStudentUpsertInsertThenUpdate(t *testing.T) {
	repo := NewStudentRepo(newTestDB(t), newTestLogger(t))
	ctx := context.Background()

	first := &types.Student{
		USN:                  "1RV22CS001",
		Name:                 "Asha Rao",
		Email:                "asha@rvce.edu.in",
		Year:                 2,
		IsVisibleForMatching: true,
	}
	if _, err := repo.Upsert(ctx, nil, first); err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}

	second := &types.Student{
		USN:                  "1RV22CS001",
		Name:                 "Asha R",
		Email:                "asha@rvce.edu.in",
		Year:                 3,
		IsVisibleForMatching: true,
	}
	if _, err := repo.Upsert(ctx, nil, second); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}

	got, err := repo.GetByUSN(ctx, nil, "1RV22CS001")
	if err != nil {
		t.Fatalf("GetByUSN: %v", err)
	}
	if got.Name != "Asha R" || got.Year != 3 {
		t.Fatalf("got %s/%d, want Asha R/3", got.Name, got.Year)
	}

	all, err := repo.ListVisible(ctx, nil)
	if err != nil {
		t.Fatalf("ListVisible: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d rows after upsert, want 1", len(all))
	}
}

func TestStudentUpsertNormalizesSetFields(t *testing.T) {
	repo := NewStudentRepo(newTestDB(t), newTestLogger(t))
	ctx := context.Background()

	student := &types.Student{
		USN:                  "1RV22CS002",
		Name:                 "Dev",
		Email:                "dev@rvce.edu.in",
		TechSkills:           []string{" Go ", "go", "PYTHON", ""},
		DomainInterests:      []string{"AI", " ai "},
		IsVisibleForMatching: true,
	}
	if _, err := repo.Upsert(ctx, nil, student); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := repo.GetByUSN(ctx, nil, "1RV22CS002")
	if err != nil {
		t.Fatalf("GetByUSN: %v", err)
	}
	if !reflect.DeepEqual([]string(got.TechSkills), []string{"go", "python"}) {
		t.Fatalf("TechSkills = %v, want [go python]", got.TechSkills)
	}
	if !reflect.DeepEqual([]string(got.DomainInterests), []string{"ai"}) {
		t.Fatalf("DomainInterests = %v, want [ai]", got.DomainInterests)
	}
}

func TestStudentGetByUSNNotFound(t *testing.T) {
	repo := NewStudentRepo(newTestDB(t), newTestLogger(t))

	_, err := repo.GetByUSN(context.Background(), nil, "nope")
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestStudentVisibilityToggle(t *testing.T) {
	repo := NewStudentRepo(newTestDB(t), newTestLogger(t))
	ctx := context.Background()

	student := &types.Student{
		USN: "1RV22CS003", Name: "Kiran", Email: "kiran@rvce.edu.in",
		IsVisibleForMatching: true,
	}
	if _, err := repo.Upsert(ctx, nil, student); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := repo.SetVisibility(ctx, nil, "1RV22CS003", false); err != nil {
		t.Fatalf("SetVisibility: %v", err)
	}
	visible, err := repo.ListVisible(ctx, nil)
	if err != nil {
		t.Fatalf("ListVisible: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("got %d visible students, want 0", len(visible))
	}

	if err := repo.SetVisibility(ctx, nil, "missing", true); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound for unknown usn", err)
	}
}

func TestStudentSetPasswordHash(t *testing.T) {
	repo := NewStudentRepo(newTestDB(t), newTestLogger(t))
	ctx := context.Background()

	student := &types.Student{
		USN: "1RV22CS004", Name: "Meera", Email: "meera@rvce.edu.in",
		IsVisibleForMatching: true,
	}
	if _, err := repo.Upsert(ctx, nil, student); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.SetPasswordHash(ctx, nil, "1RV22CS004", "hashed"); err != nil {
		t.Fatalf("SetPasswordHash: %v", err)
	}
	got, err := repo.GetByUSN(ctx, nil, "1RV22CS004")
	if err != nil {
		t.Fatalf("GetByUSN: %v", err)
	}
	if got.PasswordHash != "hashed" {
		t.Fatalf("PasswordHash = %q, want hashed", got.PasswordHash)
	}

	if err := repo.SetPasswordHash(ctx, nil, "missing", "x"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound for unknown usn", err)
	}
}

func TestStudentUpsertDoesNotClearPasswordHash(t *testing.T) {
	repo := NewStudentRepo(newTestDB(t), newTestLogger(t))
	ctx := context.Background()

	student := &types.Student{
		USN: "1RV22CS005", Name: "Ravi", Email: "ravi@rvce.edu.in",
		IsVisibleForMatching: true,
	}
	if _, err := repo.Upsert(ctx, nil, student); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.SetPasswordHash(ctx, nil, "1RV22CS005", "secret-hash"); err != nil {
		t.Fatalf("SetPasswordHash: %v", err)
	}

	// A later profile edit must not wipe credentials.
	update := &types.Student{
		USN: "1RV22CS005", Name: "Ravi K", Email: "ravi@rvce.edu.in",
		IsVisibleForMatching: true,
	}
	if _, err := repo.Upsert(ctx, nil, update); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}
	got, err := repo.GetByUSN(ctx, nil, "1RV22CS005")
	if err != nil {
		t.Fatalf("GetByUSN: %v", err)
	}
	if got.PasswordHash != "secret-hash" {
		t.Fatalf("PasswordHash = %q, want secret-hash preserved", got.PasswordHash)
	}
}
