package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	LookingForMentor    = "mentor"
	LookingForTeammates = "teammates"
	LookingForBoth      = "both"
)

type Project struct {
	ProjectID          uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey;column:project_id" json:"project_id"`
	Title              string                      `gorm:"not null;column:title" json:"title"`
	Description        string                      `gorm:"column:description" json:"description"`
	OwnerType          string                      `gorm:"not null;index:idx_project_owner;column:owner_type" json:"owner_type"`
	OwnerID            string                      `gorm:"not null;index:idx_project_owner;column:owner_id" json:"owner_id"`
	Domain             string                      `gorm:"column:domain" json:"domain"`
	TechStack          datatypes.JSONSlice[string] `gorm:"type:jsonb;column:tech_stack" json:"tech_stack"`
	ProjectType        string                      `gorm:"column:project_type" json:"project_type"`
	ExpectedComplexity string                      `gorm:"column:expected_complexity" json:"expected_complexity"`
	LookingFor         string                      `gorm:"column:looking_for" json:"looking_for"` // mentor|teammates|both
	IsActive           bool                        `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt          time.Time                   `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt          time.Time                   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }
