package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createProfileTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		first_name TEXT,
		last_name TEXT,
		bio TEXT,
		city TEXT,
		state TEXT,
		country TEXT,
		phone_number TEXT,
		linkedin_url TEXT,
		website_url TEXT,
		avatar_url TEXT,
		cv_url TEXT,
		expertise_areas TEXT,
		session_price REAL DEFAULT 0,
		years_of_experience INTEGER DEFAULT 0,
		presentation_video_url TEXT,
		is_profile_complete BOOLEAN DEFAULT 0,
		verified_at DATETIME,
		verification_notes TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createAvailabilityTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE availability_slots (
		id TEXT PRIMARY KEY,
		mentor_id TEXT NOT NULL,
		day_of_week INTEGER NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		timezone TEXT NOT NULL DEFAULT 'UTC',
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createAppointmentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE appointments (
		id TEXT PRIMARY KEY,
		mentor_id TEXT NOT NULL,
		mentee_id TEXT NOT NULL,
		scheduled_at DATETIME NOT NULL,
		duration_minutes INTEGER NOT NULL,
		message TEXT,
		status TEXT NOT NULL,
		cancellation_reason TEXT,
		cancelled_by TEXT,
		reminder_sent_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX uq_appointments_mentor_slot
		ON appointments (mentor_id, scheduled_at) WHERE status <> 'cancelled';`)
}

func createOrganizationTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE organizations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		description TEXT,
		website TEXT,
		owner_id TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE organization_members (
		organization_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at DATETIME,
		PRIMARY KEY (organization_id, user_id)
	);`)
}

func createMarketingTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE subscribers (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		list TEXT NOT NULL,
		name TEXT,
		role TEXT,
		source TEXT,
		created_at DATETIME,
		UNIQUE (email, list)
	);`)
	mustExec(t, db, `CREATE TABLE quiz_submissions (
		id TEXT PRIMARY KEY,
		user_id TEXT,
		email TEXT,
		answers TEXT NOT NULL,
		analysis TEXT,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE documents (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		url TEXT NOT NULL,
		public_id TEXT,
		file_name TEXT,
		size_bytes INTEGER,
		content_type TEXT,
		created_at DATETIME
	);`)
}
