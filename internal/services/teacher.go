package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/campusforge/campusforge-backend/internal/pkg/logger"
	"github.com/campusforge/campusforge-backend/internal/repos"
	"github.com/campusforge/campusforge-backend/internal/types"
)

type TeacherService interface {
	UpsertProfile(ctx context.Context, teacher *types.Teacher) (*types.Teacher, error)
	GetProfile(ctx context.Context, facultyID string) (*types.Teacher, error)
	SetVisibility(ctx context.Context, facultyID string, visible bool) error
}

type teacherService struct {
	db            *gorm.DB
	log           *logger.Logger
	teacherRepo   repos.TeacherRepo
	avatarService AvatarService
}

func NewTeacherService(db *gorm.DB, log *logger.Logger, teacherRepo repos.TeacherRepo, avatarService AvatarService) TeacherService {
	return &teacherService{
		db:            db,
		log:           log.With("service", "TeacherService"),
		teacherRepo:   teacherRepo,
		avatarService: avatarService,
	}
}

func (ts *teacherService) UpsertProfile(ctx context.Context, teacher *types.Teacher) (*types.Teacher, error) {
	saved, err := ts.teacherRepo.Upsert(ctx, nil, teacher)
	if err != nil {
		return nil, err
	}
	if saved.AvatarURL == "" && ts.avatarService != nil {
		if err := ts.avatarService.CreateProfileAvatar(ctx, types.EntityTeacher, saved.FacultyID, saved.Name); err != nil {
			ts.log.Warn("Could not create teacher avatar", "faculty_id", saved.FacultyID, "error", err)
		}
	}
	return saved, nil
}

func (ts *teacherService) GetProfile(ctx context.Context, facultyID string) (*types.Teacher, error) {
	return ts.teacherRepo.GetByFacultyID(ctx, nil, facultyID)
}

func (ts *teacherService) SetVisibility(ctx context.Context, facultyID string, visible bool) error {
	return ts.teacherRepo.SetVisibility(ctx, nil, facultyID, visible)
}
