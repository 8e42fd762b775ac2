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
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createAccountTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE accounts (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		email_verified BOOLEAN NOT NULL DEFAULT 0,
		phone TEXT,
		phone_verified BOOLEAN NOT NULL DEFAULT 0,
		stage TEXT NOT NULL DEFAULT 'UNVERIFIED_EMAIL',
		email_verified_at DATETIME,
		phone_verified_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createVerificationRecordTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE verification_records (
		id TEXT PRIMARY KEY,
		channel TEXT NOT NULL,
		recipient TEXT NOT NULL,
		code_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL,
		UNIQUE (channel, recipient)
	);`)
}
