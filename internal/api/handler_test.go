package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yakoovad/hackathon-registration/internal/auth"
	"github.com/yakoovad/hackathon-registration/internal/model"
	"github.com/yakoovad/hackathon-registration/internal/repository"
	"github.com/yakoovad/hackathon-registration/internal/service"
	"go.uber.org/zap"
)

const (
	testSecret = "handler-test-secret"
	testID     = "HACK-AB12CD34"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type testServer struct {
	echo     *echo.Echo
	repo     *service.MockRegistrationRepository
	notifier *service.MockNotifier
	issuer   *auth.Issuer
}

func newTestServer() *testServer {
	repo := new(service.MockRegistrationRepository)
	notifier := new(service.MockNotifier)
	issuer := auth.NewIssuer(testSecret)

	svc := service.NewRegistrationService(new(service.MockTransactor)).
		WithRegistrationRepo(repo).
		WithNotifier(notifier).
		WithIDGenerator(func() string { return testID }).
		WithClock(func() time.Time { return fixedNow })

	e := echo.New()
	NewHandler(zap.NewNop()).
		WithRegistrationService(svc).
		WithIssuer(issuer).
		RegisterRoutes(e)

	return &testServer{echo: e, repo: repo, notifier: notifier, issuer: issuer}
}

func (s *testServer) do(method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

const validBody = `{
	"team_name": "Nova",
	"problem_track": "healthcare",
	"team_size": 2,
	"lead_name": "Asha Rao",
	"lead_email": "Asha@Example.com",
	"lead_phone": "9876543210",
	"members": [{"member_name": "Ravi", "member_email": "ravi@example.com"}]
}`

func TestHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*service.MockRegistrationRepository, *service.MockNotifier)
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name: "created",
			body: validBody,
			setupMocks: func(rr *service.MockRegistrationRepository, n *service.MockNotifier) {
				rr.On("Create", mock.Anything, mock.Anything).Return(nil)
				rr.On("AddMembers", mock.Anything, testID, mock.Anything).Return(nil)
				n.On("Notify", mock.Anything, mock.Anything).Return(true)
			},
			expectedStatus: http.StatusCreated,
			check: func(t *testing.T, body []byte) {
				var resp model.RegisterResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, model.RegisterResponse{
					Success:               true,
					Message:               messageEmailQueued,
					HackathonID:           testID,
					RegisteredAt:          "2026-03-01 10:00:00 UTC",
					TeamName:              "Nova",
					EmailSentTo:           "asha@example.com",
					ConfirmationEmailSent: true,
				}, resp)
			},
		},
		{
			name: "duplicate lead email",
			body: validBody,
			setupMocks: func(rr *service.MockRegistrationRepository, n *service.MockNotifier) {
				rr.On("Create", mock.Anything, mock.Anything).Return(repository.ErrAlreadyExists)
			},
			expectedStatus: http.StatusConflict,
			check: func(t *testing.T, body []byte) {
				var resp model.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "Duplicate registration.", resp.Error)
				assert.Equal(t, "A team with lead email 'asha@example.com' is already registered.", resp.Message)
			},
		},
		{
			name:           "field validation details",
			body:           `{"team_name":"Nova","problem_track":"ai","team_size":1,"lead_name":"A","lead_email":"a@b","lead_phone":"123"}`,
			setupMocks:     func(rr *service.MockRegistrationRepository, n *service.MockNotifier) {},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body []byte) {
				var resp model.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "Validation failed.", resp.Error)
				assert.Equal(t, []string{
					"'lead_email' is not a valid email address.",
					"'lead_phone' must be a 10-digit number.",
				}, resp.Details)
			},
		},
		{
			name: "team size mismatch",
			body: strings.Replace(validBody, `"team_size": 2`, `"team_size": 4`, 1),
			setupMocks: func(rr *service.MockRegistrationRepository, n *service.MockNotifier) {
			},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body []byte) {
				var resp model.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, []string{"'team_size' is 4 but total count (lead + additional) is 2."}, resp.Details)
			},
		},
		{
			name:           "malformed json",
			body:           `{"team_name":`,
			setupMocks:     func(rr *service.MockRegistrationRepository, n *service.MockNotifier) {},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body []byte) {
				var resp model.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "Request body must be valid JSON.", resp.Error)
				assert.Empty(t, resp.Details)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer()
			tt.setupMocks(srv.repo, srv.notifier)

			rec := srv.do(http.MethodPost, "/register", tt.body, "")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			tt.check(t, rec.Body.Bytes())

			srv.repo.AssertExpectations(t)
			srv.notifier.AssertExpectations(t)
		})
	}
}

func TestHandler_GetRegistration(t *testing.T) {
	srv := newTestServer()
	organizer, err := srv.issuer.Generate(auth.TokenTypeOrganizer, time.Hour)
	require.NoError(t, err)

	srv.repo.On("Get", mock.Anything, testID).Return(&repository.Registration{
		HackathonID:  testID,
		RegisteredAt: fixedNow,
		TeamName:     "Nova",
		ProblemTrack: "healthcare",
		TeamSize:     1,
		LeadName:     "Asha Rao",
		LeadEmail:    "asha@example.com",
		LeadPhone:    "9876543210",
	}, nil)
	srv.repo.On("GetMembers", mock.Anything, testID).Return([]*repository.Member{}, nil)
	srv.repo.On("Get", mock.Anything, "HACK-MISSING0").Return(nil, repository.ErrNotFound)

	t.Run("found, id case-insensitive", func(t *testing.T) {
		rec := srv.do(http.MethodGet, "/registration/hack-ab12cd34", "", organizer)
		require.Equal(t, http.StatusOK, rec.Code)

		var details model.RegistrationDetails
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &details))
		assert.True(t, details.Success)
		assert.Equal(t, "Nova", details.Team.TeamName)
		assert.Equal(t, "2026-03-01 10:00:00 UTC", details.RegisteredAt)
		assert.Empty(t, details.Members)
	})

	t.Run("not found", func(t *testing.T) {
		rec := srv.do(http.MethodGet, "/registration/HACK-MISSING0", "", organizer)
		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp model.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "No registration found for ID 'HACK-MISSING0'.", resp.Message)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := srv.do(http.MethodGet, "/registration/"+testID, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token from another secret", func(t *testing.T) {
		foreign, _ := auth.NewIssuer("other").Generate(auth.TokenTypeAdmin, time.Hour)
		rec := srv.do(http.MethodGet, "/registration/"+testID, "", foreign)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
