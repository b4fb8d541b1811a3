package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campusforge/campusforge-backend/internal/normalization"
	pkgerrors "github.com/campusforge/campusforge-backend/internal/pkg/errors"
	"github.com/campusforge/campusforge-backend/internal/pkg/logger"
	"github.com/campusforge/campusforge-backend/internal/types"
)

type StudentRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, student *types.Student) (*types.Student, error)
	GetByUSN(ctx context.Context, tx *gorm.DB, usn string) (*types.Student, error)
	ListVisible(ctx context.Context, tx *gorm.DB) ([]*types.Student, error)
	SetVisibility(ctx context.Context, tx *gorm.DB, usn string, visible bool) error
	SetPasswordHash(ctx context.Context, tx *gorm.DB, usn string, hash string) error
	SetAvatar(ctx context.Context, tx *gorm.DB, usn string, bucketKey, url string) error
}

type studentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	return &studentRepo{db: db, log: baseLog.With("repo", "StudentRepo")}
}

// normalizeStudent cleans the set-valued fields so the scoring core never has
// to guess field shape.
func normalizeStudent(s *types.Student) {
	s.ProgrammingLanguages = normalization.CleanStringSet(s.ProgrammingLanguages)
	s.TechSkills = normalization.CleanStringSet(s.TechSkills)
	s.DomainInterests = normalization.CleanStringSet(s.DomainInterests)
}

func (sr *studentRepo) Upsert(ctx context.Context, tx *gorm.DB, student *types.Student) (*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	normalizeStudent(student)
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "usn"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "email", "branch", "year", "section", "cgpa",
				"average_el_marks", "gender", "residence",
				"project_completion_approach", "commitment_preference",
				"programming_languages", "tech_skills", "domain_interests",
				"past_projects", "hackathon_participation_count",
				"hackathon_achievement_level", "is_visible_for_matching",
				"updated_at",
			}),
		}).
		Create(student).Error; err != nil {
		return nil, mapPGError(err)
	}
	return student, nil
}

func (sr *studentRepo) GetByUSN(ctx context.Context, tx *gorm.DB, usn string) (*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result types.Student
	if err := transaction.WithContext(ctx).
		Where("usn = ?", usn).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student %s: %w", usn, pkgerrors.ErrNotFound)
		}
		return nil, err
	}
	normalizeStudent(&result)
	return &result, nil
}

func (sr *studentRepo) ListVisible(ctx context.Context, tx *gorm.DB) ([]*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Student
	if err := transaction.WithContext(ctx).
		Where("is_visible_for_matching = ?", true).
		Find(&results).Error; err != nil {
		return nil, err
	}
	for _, s := range results {
		normalizeStudent(s)
	}
	return results, nil
}

func (sr *studentRepo) SetVisibility(ctx context.Context, tx *gorm.DB, usn string, visible bool) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Student{}).
		Where("usn = ?", usn).
		Update("is_visible_for_matching", visible)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("student %s: %w", usn, pkgerrors.ErrNotFound)
	}
	return nil
}

func (sr *studentRepo) SetPasswordHash(ctx context.Context, tx *gorm.DB, usn string, hash string) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Student{}).
		Where("usn = ?", usn).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("student %s: %w", usn, pkgerrors.ErrNotFound)
	}
	return nil
}

func (sr *studentRepo) SetAvatar(ctx context.Context, tx *gorm.DB, usn string, bucketKey, url string) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Student{}).
		Where("usn = ?", usn).
		Updates(map[string]any{"avatar_bucket_key": bucketKey, "avatar_url": url}).Error
}

// mapPGError translates postgres unique violations into the conflict sentinel.
func mapPGError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, pkgerrors.ErrConflict)
	}
	return err
}
