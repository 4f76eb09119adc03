package model

// RegisterResponse is the 201 body of POST /register.
type RegisterResponse struct {
	Success               bool   `json:"success"`
	Message               string `json:"message"`
	HackathonID           string `json:"hackathon_id"`
	RegisteredAt          string `json:"registered_at"`
	TeamName              string `json:"team_name"`
	EmailSentTo           string `json:"email_sent_to"`
	ConfirmationEmailSent bool   `json:"confirmation_email_sent"`
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code,omitempty"`
	Message string   `json:"message,omitempty"`
	Details []string `json:"details,omitempty"`
}

// RegistrationDetails is the body of GET /registration/:id.
type RegistrationDetails struct {
	Success      bool        `json:"success"`
	HackathonID  string      `json:"hackathon_id"`
	RegisteredAt string      `json:"registered_at"`
	Team         TeamDetails `json:"team"`
	Lead         LeadDetails `json:"lead"`
	Members      []*Member   `json:"members"`
}

type TeamDetails struct {
	TeamName     string `json:"team_name"`
	ProblemTrack string `json:"problem_track"`
	TeamSize     int    `json:"team_size"`
}

type LeadDetails struct {
	LeadName  string `json:"lead_name"`
	LeadEmail string `json:"lead_email"`
	LeadPhone string `json:"lead_phone"`
}

func NewRegistrationDetails(r *Registration) *RegistrationDetails {
	members := r.Members
	if members == nil {
		members = []*Member{}
	}
	return &RegistrationDetails{
		Success:      true,
		HackathonID:  r.HackathonID,
		RegisteredAt: r.RegisteredAt.UTC().Format(RegisteredAtLayout),
		Team: TeamDetails{
			TeamName:     r.TeamName,
			ProblemTrack: r.ProblemTrack,
			TeamSize:     r.TeamSize,
		},
		Lead: LeadDetails{
			LeadName:  r.LeadName,
			LeadEmail: r.LeadEmail,
			LeadPhone: r.LeadPhone,
		},
		Members: members,
	}
}
