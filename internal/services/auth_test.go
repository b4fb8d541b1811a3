package services

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/campusforge/campusforge-backend/internal/pkg/errors"
	"github.com/campusforge/campusforge-backend/internal/pkg/logger"
	"github.com/campusforge/campusforge-backend/internal/requestdata"
	"github.com/campusforge/campusforge-backend/internal/types"
)

func newAuthFixture(t *testing.T) (AuthService, *fakeStudentRepo, *fakeTeacherRepo) {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	students := &fakeStudentRepo{students: map[string]*types.Student{}}
	teachers := &fakeTeacherRepo{teachers: map[string]*types.Teacher{}}
	svc := NewAuthService(nil, log, students, teachers, "test-secret", time.Hour)
	return svc, students, teachers
}

func TestSignupAndLoginStudent(t *testing.T) {
	svc, students, _ := newAuthFixture(t)
	students.students["S1"] = &types.Student{USN: "S1", Name: "Asha Rao", Email: "asha@rvce.edu.in"}

	ctx := context.Background()
	if err := svc.Signup(ctx, types.EntityStudent, "S1", "hunter2"); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	result, err := svc.Login(ctx, types.EntityStudent, "S1", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a signed token")
	}
	if result.Role != types.EntityStudent || result.SubjectID != "S1" {
		t.Fatalf("principal = %s/%s, want student/S1", result.Role, result.SubjectID)
	}
	if result.Name != "Asha Rao" {
		t.Fatalf("name = %q, want Asha Rao", result.Name)
	}
}

func TestSignupUnknownProfile(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	err := svc.Signup(context.Background(), types.EntityStudent, "missing", "pw")
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSignupEmptyPassword(t *testing.T) {
	svc, students, _ := newAuthFixture(t)
	students.students["S1"] = &types.Student{USN: "S1"}

	err := svc.Signup(context.Background(), types.EntityStudent, "S1", "")
	if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, students, _ := newAuthFixture(t)
	students.students["S1"] = &types.Student{USN: "S1"}

	ctx := context.Background()
	if err := svc.Signup(ctx, types.EntityStudent, "S1", "correct"); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	_, err := svc.Login(ctx, types.EntityStudent, "S1", "wrong")
	if !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if !IsAuthError(err) {
		t.Fatal("IsAuthError should report true")
	}
}

func TestLoginBeforeSignup(t *testing.T) {
	svc, _, teachers := newAuthFixture(t)
	teachers.teachers["F1"] = &types.Teacher{FacultyID: "F1"}

	_, err := svc.Login(context.Background(), types.EntityTeacher, "F1", "pw")
	if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestSetContextFromTokenRoundTrip(t *testing.T) {
	svc, _, teachers := newAuthFixture(t)
	teachers.teachers["F1"] = &types.Teacher{FacultyID: "F1"}

	ctx := context.Background()
	if err := svc.Signup(ctx, types.EntityTeacher, "F1", "pw"); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	result, err := svc.Login(ctx, types.EntityTeacher, "F1", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	authedCtx, err := svc.SetContextFromToken(ctx, result.Token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil {
		t.Fatal("expected request data on context")
	}
	if rd.Role != types.EntityTeacher || rd.SubjectID != "F1" {
		t.Fatalf("principal = %s/%s, want teacher/F1", rd.Role, rd.SubjectID)
	}
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.SetContextFromToken(context.Background(), "not-a-jwt")
	if !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	err := svc.Signup(context.Background(), "admin", "X1", "pw")
	if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}
