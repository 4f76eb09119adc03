package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yakoovad/hackathon-registration/internal/model"
)

func validPayload() *model.RegistrationPayload {
	return &model.RegistrationPayload{
		TeamName:     "Nova",
		ProblemTrack: "healthcare",
		TeamSize:     2,
		LeadName:     "Asha Rao",
		LeadEmail:    "asha@example.com",
		LeadPhone:    "9876543210",
		Members:      []*model.Member{{Name: "Ravi", Email: "ravi@example.com"}},
	}
}

func TestIsEmail(t *testing.T) {
	assert.False(t, IsEmail("a@b"))
	assert.True(t, IsEmail("a@b.com"))
	assert.False(t, IsEmail("a b@c.com"))
	assert.False(t, IsEmail(""))
}

func TestIsPhone(t *testing.T) {
	assert.True(t, IsPhone("0123456789"))
	assert.False(t, IsPhone("123456789"))
	assert.False(t, IsPhone("12345678901"))
	assert.False(t, IsPhone("12345-6789"))
}

func TestDetails(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(p *model.RegistrationPayload)
		expected []string
	}{
		{
			name:     "valid payload",
			mutate:   func(p *model.RegistrationPayload) {},
			expected: nil,
		},
		{
			name:     "bad phone",
			mutate:   func(p *model.RegistrationPayload) { p.LeadPhone = "12345" },
			expected: []string{"'lead_phone' must be a 10-digit number."},
		},
		{
			name: "several fields at once",
			mutate: func(p *model.RegistrationPayload) {
				p.TeamName = "   "
				p.TeamSize = 9
				p.LeadEmail = "a@b"
			},
			expected: []string{
				"'team_name' is required.",
				"'team_size' must be between 1 and 5.",
				"'lead_email' is not a valid email address.",
			},
		},
		{
			name: "member without name",
			mutate: func(p *model.RegistrationPayload) {
				p.Members = []*model.Member{{Name: "", Email: "nope"}}
			},
			expected: []string{
				"members[0]: 'member_name' is required.",
				"members[0]: 'member_email' is not valid.",
			},
		},
		{
			name: "too many members",
			mutate: func(p *model.RegistrationPayload) {
				for range 5 {
					p.Members = append(p.Members, &model.Member{Name: "x"})
				}
			},
			expected: []string{"Additional team members cannot exceed 4."},
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(p)

			err := v.Struct(p)
			if tt.expected == nil {
				require.NoError(t, err)
				return
			}

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			if diff := cmp.Diff(tt.expected, Details(verrs)); diff != "" {
				t.Errorf("details mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
