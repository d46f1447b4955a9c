package core

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"softshell.com/assistant-service/internal/store"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LicenseTypes enumerates the license tiers the contact form accepts.
var LicenseTypes = []string{"basic", "professional", "enterprise"}

// ContactRequest carries the raw contact-form fields as submitted.
type ContactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	LicenseType string `json:"license_type"`
	Message     string `json:"message"`
}

// ContactService validates contact submissions and hands the valid ones to
// the submission sink.
type ContactService struct {
	dbStore *store.SQLiteStore
}

func NewContactService(db *store.SQLiteStore) *ContactService {
	return &ContactService{dbStore: db}
}

// ValidateContact returns field-level errors keyed by field name. An empty
// map means the submission is valid. Validation problems are data, never Go
// errors.
func ValidateContact(req ContactRequest) map[string]string {
	fieldErrors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = "Name is required"
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		fieldErrors["email"] = "Email is required"
	} else if !emailPattern.MatchString(email) {
		fieldErrors["email"] = "Please enter a valid email address"
	}

	if strings.TrimSpace(req.Company) == "" {
		fieldErrors["company"] = "Company name is required"
	}

	if req.LicenseType == "" {
		fieldErrors["license_type"] = "Please select a license type"
	} else if !isKnownLicenseType(req.LicenseType) {
		fieldErrors["license_type"] = "Unknown license type"
	}

	if strings.TrimSpace(req.Message) == "" {
		fieldErrors["message"] = "Message is required"
	}

	return fieldErrors
}

func isKnownLicenseType(licenseType string) bool {
	for _, t := range LicenseTypes {
		if t == licenseType {
			return true
		}
	}
	return false
}

// SubmitContact validates the request and stores it. Field errors come back
// in the map; a non-nil error means the sink itself failed.
func (s *ContactService) SubmitContact(req ContactRequest) (*store.ContactSubmission, map[string]string, error) {
	if fieldErrors := ValidateContact(req); len(fieldErrors) > 0 {
		return nil, fieldErrors, nil
	}

	submission := &store.ContactSubmission{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Company:     strings.TrimSpace(req.Company),
		LicenseType: req.LicenseType,
		Message:     strings.TrimSpace(req.Message),
	}
	if err := s.dbStore.SaveContactSubmission(submission); err != nil {
		return nil, nil, fmt.Errorf("failed to store contact submission: %w", err)
	}

	log.Printf("Contact submission %s received from %s (%s)", submission.ID, submission.Name, submission.Company)
	return submission, nil, nil
}

// ListSubmissions returns stored submissions, newest first.
func (s *ContactService) ListSubmissions() ([]store.ContactSubmission, error) {
	return s.dbStore.ListContactSubmissions()
}
