package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campusforge/campusforge-backend/internal/normalization"
	pkgerrors "github.com/campusforge/campusforge-backend/internal/pkg/errors"
	"github.com/campusforge/campusforge-backend/internal/pkg/logger"
	"github.com/campusforge/campusforge-backend/internal/types"
)

type TeacherRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, teacher *types.Teacher) (*types.Teacher, error)
	GetByFacultyID(ctx context.Context, tx *gorm.DB, facultyID string) (*types.Teacher, error)
	ListVisible(ctx context.Context, tx *gorm.DB) ([]*types.Teacher, error)
	SetVisibility(ctx context.Context, tx *gorm.DB, facultyID string, visible bool) error
	SetPasswordHash(ctx context.Context, tx *gorm.DB, facultyID string, hash string) error
	SetAvatar(ctx context.Context, tx *gorm.DB, facultyID string, bucketKey, url string) error
}

type teacherRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTeacherRepo(db *gorm.DB, baseLog *logger.Logger) TeacherRepo {
	return &teacherRepo{db: db, log: baseLog.With("repo", "TeacherRepo")}
}

func normalizeTeacher(t *types.Teacher) {
	t.AreasOfExpertise = normalization.CleanStringSet(t.AreasOfExpertise)
	t.DomainsInterestedToMentor = normalization.CleanStringSet(t.DomainsInterestedToMentor)
	// Preferred years are numeric strings; dedupe only, no case folding needed
	// but CleanStringSet is harmless on digits.
	t.PreferredStudentYears = normalization.CleanStringSet(t.PreferredStudentYears)
}

func (tr *teacherRepo) Upsert(ctx context.Context, tx *gorm.DB, teacher *types.Teacher) (*types.Teacher, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	normalizeTeacher(teacher)
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "faculty_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "email", "department", "years_of_experience",
				"areas_of_expertise", "domains_interested_to_mentor",
				"prominent_projects_or_publications", "publication_count",
				"mentoring_style", "preferred_student_years",
				"max_projects_capacity", "is_visible_for_matching",
				"updated_at",
			}),
		}).
		Create(teacher).Error; err != nil {
		return nil, mapPGError(err)
	}
	return teacher, nil
}

func (tr *teacherRepo) GetByFacultyID(ctx context.Context, tx *gorm.DB, facultyID string) (*types.Teacher, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var result types.Teacher
	if err := transaction.WithContext(ctx).
		Where("faculty_id = ?", facultyID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("teacher %s: %w", facultyID, pkgerrors.ErrNotFound)
		}
		return nil, err
	}
	normalizeTeacher(&result)
	return &result, nil
}

func (tr *teacherRepo) ListVisible(ctx context.Context, tx *gorm.DB) ([]*types.Teacher, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Teacher
	if err := transaction.WithContext(ctx).
		Where("is_visible_for_matching = ?", true).
		Find(&results).Error; err != nil {
		return nil, err
	}
	for _, t := range results {
		normalizeTeacher(t)
	}
	return results, nil
}

func (tr *teacherRepo) SetVisibility(ctx context.Context, tx *gorm.DB, facultyID string, visible bool) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Teacher{}).
		Where("faculty_id = ?", facultyID).
		Update("is_visible_for_matching", visible)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("teacher %s: %w", facultyID, pkgerrors.ErrNotFound)
	}
	return nil
}

func (tr *teacherRepo) SetPasswordHash(ctx context.Context, tx *gorm.DB, facultyID string, hash string) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Teacher{}).
		Where("faculty_id = ?", facultyID).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("teacher %s: %w", facultyID, pkgerrors.ErrNotFound)
	}
	return nil
}

func (tr *teacherRepo) SetAvatar(ctx context.Context, tx *gorm.DB, facultyID string, bucketKey, url string) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Teacher{}).
		Where("faculty_id = ?", facultyID).
		Updates(map[string]any{"avatar_bucket_key": bucketKey, "avatar_url": url}).Error
}
