package types

import (
	"time"

	"gorm.io/datatypes"
)

type Student struct {
	USN                           string                      `gorm:"primaryKey;column:usn" json:"usn"`
	Name                          string                      `gorm:"not null;column:name" json:"name"`
	Email                         string                      `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Branch                        string                      `gorm:"column:branch" json:"branch"`
	Year                          int                         `gorm:"column:year" json:"year"`
	Section                       string                      `gorm:"column:section" json:"section"`
	CGPA                          float64                     `gorm:"column:cgpa" json:"cgpa"`
	AverageELMarks                float64                     `gorm:"column:average_el_marks" json:"average_el_marks"`
	Gender                        string                      `gorm:"column:gender" json:"gender"`
	Residence                     string                      `gorm:"column:residence" json:"residence"`
	ProjectCompletionApproach     string                      `gorm:"column:project_completion_approach" json:"project_completion_approach"`
	CommitmentPreference          string                      `gorm:"column:commitment_preference" json:"commitment_preference"`
	ProgrammingLanguages          datatypes.JSONSlice[string] `gorm:"type:jsonb;column:programming_languages" json:"programming_languages"`
	TechSkills                    datatypes.JSONSlice[string] `gorm:"type:jsonb;column:tech_skills" json:"tech_skills"`
	DomainInterests               datatypes.JSONSlice[string] `gorm:"type:jsonb;column:domain_interests" json:"domain_interests"`
	PastProjects                  datatypes.JSON              `gorm:"type:jsonb;column:past_projects" json:"past_projects"`
	HackathonParticipationCount   int                         `gorm:"column:hackathon_participation_count" json:"hackathon_participation_count"`
	HackathonAchievementLevel     string                      `gorm:"column:hackathon_achievement_level" json:"hackathon_achievement_level"`
	IsVisibleForMatching          bool                        `gorm:"not null;default:true;column:is_visible_for_matching" json:"is_visible_for_matching"`
	PasswordHash                  string                      `gorm:"column:password_hash" json:"-"`
	AvatarBucketKey               string                      `gorm:"column:avatar_bucket_key" json:"avatar_bucket_key"`
	AvatarURL                     string                      `gorm:"column:avatar_url" json:"avatar_url"`
	CreatedAt                     time.Time                   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt                     time.Time                   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Student) TableName() string { return "students" }
