package store

import "time"

type ContactSubmission struct {
	ID          string    `json:"id"` // Using UUID for external ID
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     string    `json:"company"`
	LicenseType string    `json:"license_type"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}
