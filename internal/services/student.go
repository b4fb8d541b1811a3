package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/campusforge/campusforge-backend/internal/pkg/logger"
	"github.com/campusforge/campusforge-backend/internal/repos"
	"github.com/campusforge/campusforge-backend/internal/types"
)

type StudentService interface {
	UpsertProfile(ctx context.Context, student *types.Student) (*types.Student, error)
	GetProfile(ctx context.Context, usn string) (*types.Student, error)
	SetVisibility(ctx context.Context, usn string, visible bool) error
}

type studentService struct {
	db            *gorm.DB
	log           *logger.Logger
	studentRepo   repos.StudentRepo
	avatarService AvatarService
}

func NewStudentService(db *gorm.DB, log *logger.Logger, studentRepo repos.StudentRepo, avatarService AvatarService) StudentService {
	return &studentService{
		db:            db,
		log:           log.With("service", "StudentService"),
		studentRepo:   studentRepo,
		avatarService: avatarService,
	}
}

func (ss *studentService) UpsertProfile(ctx context.Context, student *types.Student) (*types.Student, error) {
	saved, err := ss.studentRepo.Upsert(ctx, nil, student)
	if err != nil {
		return nil, err
	}
	// First save gets a generated initials avatar. Avatar failure never
	// fails the profile write.
	if saved.AvatarURL == "" && ss.avatarService != nil {
		if err := ss.avatarService.CreateProfileAvatar(ctx, types.EntityStudent, saved.USN, saved.Name); err != nil {
			ss.log.Warn("Could not create student avatar", "usn", saved.USN, "error", err)
		}
	}
	return saved, nil
}

func (ss *studentService) GetProfile(ctx context.Context, usn string) (*types.Student, error) {
	return ss.studentRepo.GetByUSN(ctx, nil, usn)
}

func (ss *studentService) SetVisibility(ctx context.Context, usn string, visible bool) error {
	return ss.studentRepo.SetVisibility(ctx, nil, usn, visible)
}
