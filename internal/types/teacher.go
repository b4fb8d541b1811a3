package types

import (
	"time"

	"gorm.io/datatypes"
)

type Teacher struct {
	FacultyID                        string                      `gorm:"primaryKey;column:faculty_id" json:"faculty_id"`
	Name                             string                      `gorm:"not null;column:name" json:"name"`
	Email                            string                      `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Department                       string                      `gorm:"column:department" json:"department"`
	YearsOfExperience                int                         `gorm:"column:years_of_experience" json:"years_of_experience"`
	AreasOfExpertise                 datatypes.JSONSlice[string] `gorm:"type:jsonb;column:areas_of_expertise" json:"areas_of_expertise"`
	DomainsInterestedToMentor        datatypes.JSONSlice[string] `gorm:"type:jsonb;column:domains_interested_to_mentor" json:"domains_interested_to_mentor"`
	ProminentProjectsOrPublications  datatypes.JSONSlice[string] `gorm:"type:jsonb;column:prominent_projects_or_publications" json:"prominent_projects_or_publications"`
	PublicationCount                 int                         `gorm:"column:publication_count" json:"publication_count"`
	MentoringStyle                   string                      `gorm:"column:mentoring_style" json:"mentoring_style"`
	PreferredStudentYears            datatypes.JSONSlice[string] `gorm:"type:jsonb;column:preferred_student_years" json:"preferred_student_years"`
	MaxProjectsCapacity              int                         `gorm:"column:max_projects_capacity" json:"max_projects_capacity"`
	IsVisibleForMatching             bool                        `gorm:"not null;default:true;column:is_visible_for_matching" json:"is_visible_for_matching"`
	PasswordHash                     string                      `gorm:"column:password_hash" json:"-"`
	AvatarBucketKey                  string                      `gorm:"column:avatar_bucket_key" json:"avatar_bucket_key"`
	AvatarURL                        string                      `gorm:"column:avatar_url" json:"avatar_url"`
	CreatedAt                        time.Time                   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt                        time.Time                   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Teacher) TableName() string { return "teachers" }
