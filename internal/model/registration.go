package model

import "time"

// RegisteredAtLayout is how registration timestamps travel on the wire.
const RegisteredAtLayout = "2006-01-02 15:04:05 UTC"

// MaxMembers is the number of additional members a team may list besides its lead.
const MaxMembers = 4

type Member struct {
	Name  string `json:"member_name" validate:"required"`
	Email string `json:"member_email" validate:"omitempty,emailshape"`
}

// RegistrationPayload is the body of POST /register.
type RegistrationPayload struct {
	TeamName     string    `json:"team_name" validate:"required,notblank"`
	ProblemTrack string    `json:"problem_track" validate:"required,notblank"`
	TeamSize     int       `json:"team_size" validate:"required,min=1,max=5"`
	LeadName     string    `json:"lead_name" validate:"required,notblank"`
	LeadEmail    string    `json:"lead_email" validate:"required,emailshape"`
	LeadPhone    string    `json:"lead_phone" validate:"required,phone10"`
	Members      []*Member `json:"members" validate:"max=4,dive,required"`
}

type Registration struct {
	HackathonID  string
	RegisteredAt time.Time
	TeamName     string
	ProblemTrack string
	TeamSize     int
	LeadName     string
	LeadEmail    string
	LeadPhone    string
	Members      []*Member
}
