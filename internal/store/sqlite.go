package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore holds the two quasi-durable pieces of state the site has:
// contact-form submissions and the theme preference. Conversations are
// deliberately not persisted.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS contact_submissions (
        id TEXT PRIMARY KEY, -- UUID
        name TEXT NOT NULL,
        email TEXT NOT NULL,
        company TEXT NOT NULL,
        license_type TEXT NOT NULL CHECK (license_type IN ('basic', 'professional', 'enterprise')),
        message TEXT NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS settings (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

// Contact submission methods
func (s *SQLiteStore) SaveContactSubmission(submission *ContactSubmission) error {
	submission.ID = uuid.NewString()
	submission.CreatedAt = time.Now()

	stmt, err := s.db.Prepare("INSERT INTO contact_submissions (id, name, email, company, license_type, message, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare submission insert: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(submission.ID, submission.Name, submission.Email, submission.Company, submission.LicenseType, submission.Message, submission.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to execute submission insert: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListContactSubmissions() ([]ContactSubmission, error) {
	rows, err := s.db.Query("SELECT id, name, email, company, license_type, message, created_at FROM contact_submissions ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var submissions []ContactSubmission
	for rows.Next() {
		var sub ContactSubmission
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Company, &sub.LicenseType, &sub.Message, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		submissions = append(submissions, sub)
	}
	return submissions, nil
}

// Settings methods
func (s *SQLiteStore) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil // Not set
		}
		return "", fmt.Errorf("failed to query setting %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) SetSetting(key, value string) error {
	_, err := s.db.Exec("INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value", key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}
