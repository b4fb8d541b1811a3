package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusforge/campusforge-backend/internal/normalization"
	pkgerrors "github.com/campusforge/campusforge-backend/internal/pkg/errors"
	"github.com/campusforge/campusforge-backend/internal/pkg/logger"
	"github.com/campusforge/campusforge-backend/internal/types"
)

// Openings is the browse feed for a student: every active mentor-owned
// project plus other students' active postings that want teammates.
type Openings struct {
	MentorProjects  []*types.Project `json:"mentor_projects"`
	StudentOpenings []*types.Project `json:"student_openings"`
}

type ProjectRepo interface {
	Create(ctx context.Context, tx *gorm.DB, project *types.Project) (*types.Project, error)
	Update(ctx context.Context, tx *gorm.DB, project *types.Project) (*types.Project, error)
	Delete(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error
	GetByID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.Project, error)
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Project, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerType, ownerID string) ([]*types.Project, error)
	ListOpenings(ctx context.Context, tx *gorm.DB, currentStudentUSN string) (*Openings, error)
	SetActive(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, active bool) error
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return &projectRepo{db: db, log: baseLog.With("repo", "ProjectRepo")}
}

func normalizeProject(p *types.Project) {
	p.TechStack = normalization.CleanStringSet(p.TechStack)
	p.Domain = normalization.ParseInputString(p.Domain)
}

func (pr *projectRepo) Create(ctx context.Context, tx *gorm.DB, project *types.Project) (*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if project.ProjectID == uuid.Nil {
		project.ProjectID = uuid.New()
	}
	normalizeProject(project)
	if err := transaction.WithContext(ctx).Create(project).Error; err != nil {
		return nil, mapPGError(err)
	}
	return project, nil
}

func (pr *projectRepo) Update(ctx context.Context, tx *gorm.DB, project *types.Project) (*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	normalizeProject(project)
	res := transaction.WithContext(ctx).
		Model(&types.Project{}).
		Where("project_id = ?", project.ProjectID).
		Updates(map[string]any{
			"title":               project.Title,
			"description":         project.Description,
			"domain":              project.Domain,
			"tech_stack":          project.TechStack,
			"project_type":        project.ProjectType,
			"expected_complexity": project.ExpectedComplexity,
			"looking_for":         project.LookingFor,
			"is_active":           project.IsActive,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("project %s: %w", project.ProjectID, pkgerrors.ErrNotFound)
	}
	return project, nil
}

func (pr *projectRepo) Delete(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&types.Project{}).Error
}

func (pr *projectRepo) GetByID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.Project
	if err := transaction.WithContext(ctx).
		Where("project_id = ?", projectID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %s: %w", projectID, pkgerrors.ErrNotFound)
		}
		return nil, err
	}
	normalizeProject(&result)
	return &result, nil
}

func (pr *projectRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Project
	if err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&results).Error; err != nil {
		return nil, err
	}
	for _, p := range results {
		normalizeProject(p)
	}
	return results, nil
}

func (pr *projectRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerType, ownerID string) ([]*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Project
	if err := transaction.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *projectRepo) ListOpenings(ctx context.Context, tx *gorm.DB, currentStudentUSN string) (*Openings, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var mentorProjects []*types.Project
	if err := transaction.WithContext(ctx).
		Where("owner_type = ? AND is_active = ?", types.EntityTeacher, true).
		Order("created_at DESC").
		Find(&mentorProjects).Error; err != nil {
		return nil, err
	}

	var studentOpenings []*types.Project
	if err := transaction.WithContext(ctx).
		Where("owner_type = ? AND is_active = ? AND owner_id <> ? AND looking_for IN ?",
			types.EntityStudent, true, currentStudentUSN,
			[]string{types.LookingForTeammates, types.LookingForBoth}).
		Order("CASE WHEN looking_for = 'both' THEN 1 WHEN looking_for = 'teammates' THEN 2 ELSE 3 END, created_at DESC").
		Find(&studentOpenings).Error; err != nil {
		return nil, err
	}

	return &Openings{MentorProjects: mentorProjects, StudentOpenings: studentOpenings}, nil
}

func (pr *projectRepo) SetActive(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, active bool) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Project{}).
		Where("project_id = ?", projectID).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("project %s: %w", projectID, pkgerrors.ErrNotFound)
	}
	return nil
}
