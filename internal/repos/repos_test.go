package repos

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/campusforge/campusforge-backend/internal/pkg/logger"
)

// Test tables are created with explicit DDL: the production schema leans on
// postgres defaults (uuid_generate_v4, now) that sqlite cannot express, and
// every repo fills those values application-side anyway.
var testSchema = []string{
	`CREATE TABLE students (
		usn TEXT PRIMARY KEY,
		name TEXT,
		email TEXT,
		branch TEXT,
		year INTEGER,
		section TEXT,
		cgpa REAL,
		average_el_marks REAL,
		gender TEXT,
		residence TEXT,
		project_completion_approach TEXT,
		commitment_preference TEXT,
		programming_languages TEXT,
		tech_skills TEXT,
		domain_interests TEXT,
		past_projects TEXT,
		hackathon_participation_count INTEGER,
		hackathon_achievement_level TEXT,
		is_visible_for_matching NUMERIC NOT NULL DEFAULT 1,
		password_hash TEXT,
		avatar_bucket_key TEXT,
		avatar_url TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE teachers (
		faculty_id TEXT PRIMARY KEY,
		name TEXT,
		email TEXT,
		department TEXT,
		years_of_experience INTEGER,
		areas_of_expertise TEXT,
		domains_interested_to_mentor TEXT,
		prominent_projects_or_publications TEXT,
		publication_count INTEGER,
		mentoring_style TEXT,
		preferred_student_years TEXT,
		max_projects_capacity INTEGER,
		is_visible_for_matching NUMERIC NOT NULL DEFAULT 1,
		password_hash TEXT,
		avatar_bucket_key TEXT,
		avatar_url TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE projects (
		project_id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		owner_type TEXT NOT NULL,
		owner_id TEXT NOT NULL,
		domain TEXT,
		tech_stack TEXT,
		project_type TEXT,
		expected_complexity TEXT,
		looking_for TEXT,
		is_active NUMERIC NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE matches (
		id TEXT PRIMARY KEY,
		source_type TEXT NOT NULL,
		source_id TEXT NOT NULL,
		target_type TEXT NOT NULL,
		target_id TEXT NOT NULL,
		match_score INTEGER NOT NULL,
		match_reason TEXT,
		created_at DATETIME
	)`,
	`CREATE TABLE notifications (
		id TEXT PRIMARY KEY,
		recipient_type TEXT NOT NULL,
		recipient_id TEXT NOT NULL,
		sender_type TEXT,
		sender_id TEXT,
		entity_type TEXT,
		entity_id TEXT,
		message TEXT NOT NULL,
		is_read NUMERIC NOT NULL DEFAULT 0,
		created_at DATETIME
	)`,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrapping sql.DB: %v", err)
	}
	// A pooled second connection would see a different in-memory database.
	sqlDB.SetMaxOpenConns(1)
	for _, ddl := range testSchema {
		if err := db.Exec(ddl).Error; err != nil {
			t.Fatalf("creating test schema: %v", err)
		}
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}
