package form

import (
	"strings"
	"unicode"
)

type Field string

const (
	FieldTeamName     Field = "team_name"
	FieldProblemTrack Field = "problem_track"
	FieldTeamSize     Field = "team_size"
	FieldLeadName     Field = "lead_name"
	FieldLeadEmail    Field = "lead_email"
	FieldLeadPhone    Field = "lead_phone"

	// FieldMembers is the general members-error area. It also collects
	// server details that name no other field.
	FieldMembers Field = "members"
)

// InputFields are the fields backed by an input control, in display order.
var InputFields = []Field{
	FieldTeamName,
	FieldProblemTrack,
	FieldTeamSize,
	FieldLeadName,
	FieldLeadEmail,
	FieldLeadPhone,
}

const phoneDigits = 10

// SanitizePhone keeps the digits of raw, truncated to ten characters.
func SanitizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if b.Len() == phoneDigits {
			break
		}
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FieldErrors maps a field to its current error message.
type FieldErrors map[Field]string

func (e FieldErrors) Set(f Field, msg string) {
	e[f] = msg
}

// Append adds msg to whatever is already recorded for f.
func (e FieldErrors) Append(f Field, msg string) {
	if prev, ok := e[f]; ok && prev != "" {
		e[f] = prev + " " + msg
		return
	}
	e[f] = msg
}

func (e FieldErrors) Get(f Field) (string, bool) {
	msg, ok := e[f]
	return msg, ok
}

func (e FieldErrors) Clear() {
	for f := range e {
		delete(e, f)
	}
}
