package service

import (
	"strings"

	"github.com/google/uuid"
)

const hackathonIDPrefix = "HACK-"

// NewHackathonID returns an ID like HACK-3F9A1C7E.
func NewHackathonID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return hackathonIDPrefix + strings.ToUpper(hex[:8])
}

// NormalizeHackathonID makes user-typed IDs comparable to stored ones.
func NormalizeHackathonID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
