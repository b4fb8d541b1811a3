package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	pkgerrors "github.com/campusforge/campusforge-backend/internal/pkg/errors"
	"github.com/campusforge/campusforge-backend/internal/pkg/logger"
	"github.com/campusforge/campusforge-backend/internal/repos"
	"github.com/campusforge/campusforge-backend/internal/requestdata"
	"github.com/campusforge/campusforge-backend/internal/types"
)

const bcryptCost = 10

// LoginResult is what the login endpoint hands back: a signed token plus the
// public identity of the principal.
type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresIn time.Duration `json:"-"`
	Role      string        `json:"role"`
	SubjectID string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
}

type AuthService interface {
	Signup(ctx context.Context, role, subjectID, password string) error
	Login(ctx context.Context, role, subjectID, password string) (*LoginResult, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	studentRepo  repos.StudentRepo
	teacherRepo  repos.TeacherRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	studentRepo repos.StudentRepo,
	teacherRepo repos.TeacherRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          log.With("service", "AuthService"),
		studentRepo:  studentRepo,
		teacherRepo:  teacherRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

// Signup sets a password on an existing profile. Profiles are created through
// the profile endpoints first; an unknown id is a hard NotFound, not an
// implicit registration.
func (as *authService) Signup(ctx context.Context, role, subjectID, password string) error {
	if password == "" {
		return fmt.Errorf("password required: %w", pkgerrors.ErrInvalidArgument)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	switch role {
	case types.EntityStudent:
		if _, err := as.studentRepo.GetByUSN(ctx, nil, subjectID); err != nil {
			return err
		}
		return as.studentRepo.SetPasswordHash(ctx, nil, subjectID, string(hash))
	case types.EntityTeacher:
		if _, err := as.teacherRepo.GetByFacultyID(ctx, nil, subjectID); err != nil {
			return err
		}
		return as.teacherRepo.SetPasswordHash(ctx, nil, subjectID, string(hash))
	default:
		return fmt.Errorf("role %q: %w", role, pkgerrors.ErrInvalidArgument)
	}
}

func (as *authService) Login(ctx context.Context, role, subjectID, password string) (*LoginResult, error) {
	var (
		storedHash string
		name       string
		email      string
	)

	switch role {
	case types.EntityStudent:
		student, err := as.studentRepo.GetByUSN(ctx, nil, subjectID)
		if err != nil {
			return nil, err
		}
		storedHash, name, email = student.PasswordHash, student.Name, student.Email
	case types.EntityTeacher:
		teacher, err := as.teacherRepo.GetByFacultyID(ctx, nil, subjectID)
		if err != nil {
			return nil, err
		}
		storedHash, name, email = teacher.PasswordHash, teacher.Name, teacher.Email
	default:
		return nil, fmt.Errorf("role %q: %w", role, pkgerrors.ErrInvalidArgument)
	}

	if storedHash == "" {
		return nil, fmt.Errorf("no password set, sign up first: %w", pkgerrors.ErrInvalidArgument)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", pkgerrors.ErrUnauthorized)
	}

	token, err := as.generateAccessToken(role, subjectID)
	if err != nil {
		return nil, fmt.Errorf("generating access token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresIn: as.accessTTL,
		Role:      role,
		SubjectID: subjectID,
		Name:      name,
		Email:     email,
	}, nil
}

func (as *authService) generateAccessToken(role, subjectID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subjectID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

// SetContextFromToken validates the token and attaches the principal to the
// context for downstream handlers.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("invalid token: %w", pkgerrors.ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, fmt.Errorf("invalid token claims: %w", pkgerrors.ErrUnauthorized)
	}
	subjectID, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if subjectID == "" || (role != types.EntityStudent && role != types.EntityTeacher) {
		return ctx, fmt.Errorf("incomplete token claims: %w", pkgerrors.ErrUnauthorized)
	}

	rd := &requestdata.RequestData{
		TokenString: tokenString,
		Role:        role,
		SubjectID:   subjectID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

// IsAuthError reports whether err should map to a 401.
func IsAuthError(err error) bool {
	return errors.Is(err, pkgerrors.ErrUnauthorized)
}
