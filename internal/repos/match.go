package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusforge/campusforge-backend/internal/pkg/logger"
	"github.com/campusforge/campusforge-backend/internal/types"
)

// MatchRepo is append-only: there is no update or delete. Every matching run
// inserts fresh rows, preserving score history over time.
type MatchRepo interface {
	Append(ctx context.Context, tx *gorm.DB, match *types.Match) (*types.Match, error)
	ListBySource(ctx context.Context, tx *gorm.DB, sourceType, sourceID string) ([]*types.Match, error)
}

type matchRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMatchRepo(db *gorm.DB, baseLog *logger.Logger) MatchRepo {
	return &matchRepo{db: db, log: baseLog.With("repo", "MatchRepo")}
}

func (mr *matchRepo) Append(ctx context.Context, tx *gorm.DB, match *types.Match) (*types.Match, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if match.ID == uuid.Nil {
		match.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(match).Error; err != nil {
		return nil, err
	}
	return match, nil
}

func (mr *matchRepo) ListBySource(ctx context.Context, tx *gorm.DB, sourceType, sourceID string) ([]*types.Match, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Match
	if err := transaction.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", sourceType, sourceID).
		Order("match_score DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
