package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/campusforge/campusforge-backend/internal/pkg/errors"
	"github.com/campusforge/campusforge-backend/internal/pkg/logger"
	"github.com/campusforge/campusforge-backend/internal/repos"
	"github.com/campusforge/campusforge-backend/internal/types"
)

type ProjectService interface {
	Create(ctx context.Context, project *types.Project) (*types.Project, error)
	Update(ctx context.Context, project *types.Project) (*types.Project, error)
	Delete(ctx context.Context, projectID uuid.UUID) error
	Get(ctx context.Context, projectID uuid.UUID) (*types.Project, error)
	ListByOwner(ctx context.Context, ownerType, ownerID string) ([]*types.Project, error)
	ListOpenings(ctx context.Context, currentStudentUSN string) (*repos.Openings, error)
	SetActive(ctx context.Context, projectID uuid.UUID, active bool) error
}

type projectService struct {
	db          *gorm.DB
	log         *logger.Logger
	projectRepo repos.ProjectRepo
}

func NewProjectService(db *gorm.DB, log *logger.Logger, projectRepo repos.ProjectRepo) ProjectService {
	return &projectService{
		db:          db,
		log:         log.With("service", "ProjectService"),
		projectRepo: projectRepo,
	}
}

func validateProject(project *types.Project) error {
	if project.Title == "" {
		return fmt.Errorf("project title required: %w", pkgerrors.ErrInvalidArgument)
	}
	switch project.LookingFor {
	case types.LookingForMentor, types.LookingForTeammates, types.LookingForBoth:
		return nil
	default:
		return fmt.Errorf("looking_for %q: %w", project.LookingFor, pkgerrors.ErrInvalidArgument)
	}
}

func (ps *projectService) Create(ctx context.Context, project *types.Project) (*types.Project, error) {
	if err := validateProject(project); err != nil {
		return nil, err
	}
	if project.OwnerType != types.EntityStudent && project.OwnerType != types.EntityTeacher {
		return nil, fmt.Errorf("owner type %q: %w", project.OwnerType, pkgerrors.ErrInvalidArgument)
	}
	return ps.projectRepo.Create(ctx, nil, project)
}

func (ps *projectService) Update(ctx context.Context, project *types.Project) (*types.Project, error) {
	if err := validateProject(project); err != nil {
		return nil, err
	}
	return ps.projectRepo.Update(ctx, nil, project)
}

func (ps *projectService) Delete(ctx context.Context, projectID uuid.UUID) error {
	return ps.projectRepo.Delete(ctx, nil, projectID)
}

func (ps *projectService) Get(ctx context.Context, projectID uuid.UUID) (*types.Project, error) {
	return ps.projectRepo.GetByID(ctx, nil, projectID)
}

func (ps *projectService) ListByOwner(ctx context.Context, ownerType, ownerID string) ([]*types.Project, error) {
	return ps.projectRepo.ListByOwner(ctx, nil, ownerType, ownerID)
}

func (ps *projectService) ListOpenings(ctx context.Context, currentStudentUSN string) (*repos.Openings, error) {
	return ps.projectRepo.ListOpenings(ctx, nil, currentStudentUSN)
}

func (ps *projectService) SetActive(ctx context.Context, projectID uuid.UUID, active bool) error {
	return ps.projectRepo.SetActive(ctx, nil, projectID, active)
}
