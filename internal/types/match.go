package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	EntityStudent = "student"
	EntityTeacher = "teacher"
	EntityProject = "project"
)

// Match is a directed, timestamped scoring fact. Rows are append-only:
// re-running the matcher inserts new rows, existing rows are never touched.
type Match struct {
	ID          uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SourceType  string                      `gorm:"not null;index:idx_match_source;column:source_type" json:"source_type"`
	SourceID    string                      `gorm:"not null;index:idx_match_source;column:source_id" json:"source_id"`
	TargetType  string                      `gorm:"not null;column:target_type" json:"target_type"`
	TargetID    string                      `gorm:"not null;column:target_id" json:"target_id"`
	MatchScore  int                         `gorm:"not null;column:match_score" json:"match_score"`
	MatchReason datatypes.JSONSlice[string] `gorm:"type:jsonb;column:match_reason" json:"match_reason"`
	CreatedAt   time.Time                   `gorm:"not null;default:now()" json:"created_at"`
}

func (Match) TableName() string { return "matches" }
