package repository

import "github.com/pkg/errors"

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrIDConflict    = errors.New("hackathon id already taken")
)

const (
	uniqueViolation = "23505"

	leadEmailConstraint = "registrations_lead_email_key"
)
