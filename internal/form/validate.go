package form

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yakoovad/hackathon-registration/internal/model"
)

type fieldRule struct {
	tag     string
	message string
}

var fieldRules = map[Field]fieldRule{
	FieldTeamName:     {tag: "notblank", message: "Team name is required."},
	FieldProblemTrack: {tag: "notblank", message: "Please select a problem track."},
	FieldTeamSize:     {tag: "min=1,max=5", message: "Team size must be between 1 and 5."},
	FieldLeadName:     {tag: "notblank", message: "Lead name is required."},
	FieldLeadEmail:    {tag: "emailshape", message: "Enter a valid email address."},
	FieldLeadPhone:    {tag: "phone10", message: "Enter a valid 10-digit phone number."},
}

func memberCountMessage(teamSize, additional int) string {
	return fmt.Sprintf(
		"Team size is %d but %d additional member(s) are listed; the lead plus additional members must equal the team size.",
		teamSize, additional,
	)
}

// parseTeamSize returns 0 for anything that is not an integer, which the
// min=1 rule rejects.
func parseTeamSize(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// checkField runs the rule of a single input field against its raw value.
func checkField(v *validator.Validate, f Field, raw string) (string, bool) {
	rule, ok := fieldRules[f]
	if !ok {
		return "", true
	}

	var value any = strings.TrimSpace(raw)
	if f == FieldTeamSize {
		value = parseTeamSize(raw)
	}

	if err := v.Var(value, rule.tag); err != nil {
		return rule.message, false
	}
	return "", true
}

// Validate clears every error, re-checks all fields independently and shows
// what failed. It reports whether the form may be submitted.
func (c *Controller) Validate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errs.Clear()
	for _, f := range InputFields {
		c.view.ClearFieldError(f)
	}
	c.view.ClearFieldError(FieldMembers)

	for _, f := range InputFields {
		if msg, ok := checkField(c.validate, f, c.view.Value(f)); !ok {
			c.errs.Set(f, msg)
		}
	}

	if _, bad := c.errs.Get(FieldTeamSize); !bad {
		teamSize := parseTeamSize(c.view.Value(FieldTeamSize))
		additional := len(slices.Collect(c.members.Collect()))
		if 1+additional != teamSize {
			c.errs.Set(FieldMembers, memberCountMessage(teamSize, additional))
		}
	}

	for f, msg := range c.errs {
		c.view.SetFieldError(f, msg)
	}

	return len(c.errs) == 0
}

// Blur re-checks one field after the user leaves it and clears its error
// once the value is acceptable. It never adds new errors.
func (c *Controller) Blur(f Field) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, has := c.errs.Get(f); !has {
		return
	}
	if _, ok := checkField(c.validate, f, c.view.Value(f)); ok {
		delete(c.errs, f)
		c.view.ClearFieldError(f)
	}
}

// Input records a keystroke-level change. The phone field is reduced to
// at most ten digits as the user types; the sanitized value is returned.
func (c *Controller) Input(f Field, raw string) string {
	if f != FieldLeadPhone {
		return raw
	}

	clean := SanitizePhone(raw)
	if clean != raw {
		c.view.SetValue(f, clean)
	}
	return clean
}

// Payload builds the request body from the current view state.
func (c *Controller) Payload() *model.RegistrationPayload {
	members := make([]*model.Member, 0, model.MaxMembers)
	for m := range c.members.Collect() {
		members = append(members, m)
	}

	return &model.RegistrationPayload{
		TeamName:     strings.TrimSpace(c.view.Value(FieldTeamName)),
		ProblemTrack: strings.TrimSpace(c.view.Value(FieldProblemTrack)),
		TeamSize:     parseTeamSize(c.view.Value(FieldTeamSize)),
		LeadName:     strings.TrimSpace(c.view.Value(FieldLeadName)),
		LeadEmail:    strings.ToLower(strings.TrimSpace(c.view.Value(FieldLeadEmail))),
		LeadPhone:    strings.TrimSpace(c.view.Value(FieldLeadPhone)),
		Members:      members,
	}
}
