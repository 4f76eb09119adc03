package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClient(t *testing.T) {
	tests := []struct {
		name            string
		env             map[string]string
		expectedBaseURL string
		expectedTimeout time.Duration
	}{
		{
			name:            "defaults to same origin",
			env:             map[string]string{},
			expectedBaseURL: "",
			expectedTimeout: 15 * time.Second,
		},
		{
			name:            "trailing slash trimmed",
			env:             map[string]string{"REGISTRATION_BASE_URL": " http://localhost:5000/ ", "REGISTRATION_TIMEOUT": "3s"},
			expectedBaseURL: "http://localhost:5000",
			expectedTimeout: 3 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("REGISTRATION_BASE_URL", "")
			t.Setenv("REGISTRATION_TIMEOUT", "15s")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadClient()
			require.NoError(t, err)
			assert.Equal(t, tt.expectedBaseURL, cfg.BaseURL)
			assert.Equal(t, tt.expectedTimeout, cfg.Timeout)
		})
	}
}

func TestLoadClient_InvalidTimeout(t *testing.T) {
	t.Setenv("REGISTRATION_TIMEOUT", "soon")

	_, err := LoadClient()
	assert.Error(t, err)
}

func TestLoadServer(t *testing.T) {
	t.Setenv("SMTP_USER", "bot@example.com")
	t.Setenv("SMTP_FROM", "")
	t.Setenv("EMAIL_ENABLED", "false")

	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.False(t, cfg.Mail.Enabled)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, "bot@example.com", cfg.Mail.From)
}
