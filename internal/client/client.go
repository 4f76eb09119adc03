package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/yakoovad/hackathon-registration/internal/model"
)

// ErrTransport marks requests that never produced an HTTP response.
var ErrTransport = errors.New("registration backend unreachable")

var ErrNotFound = errors.New("registration not found")

const (
	registerPath     = "/register"
	registrationPath = "/registration/"

	// maxBodyBytes bounds how much of a response body is read.
	maxBodyBytes = 1 << 20
)

// Reply is the interpreted outcome of one POST /register exchange.
type Reply struct {
	StatusCode            int
	Success               bool
	HackathonID           string
	TeamName              string
	ConfirmationEmailSent bool
	Message               string
	Details               []string
}

type replyBody struct {
	Success               bool     `json:"success"`
	HackathonID           string   `json:"hackathon_id"`
	TeamName              string   `json:"team_name"`
	ConfirmationEmailSent bool     `json:"confirmation_email_sent"`
	Message               string   `json:"message"`
	Error                 string   `json:"error"`
	Details               []string `json:"details"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the backend at baseURL. An empty baseURL keeps
// paths relative, which only works behind a transport that resolves them.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Register posts payload once. A non-nil error means no response arrived and
// wraps ErrTransport; every HTTP status, including failures, comes back as a Reply.
func (c *Client) Register(ctx context.Context, payload *model.RegistrationPayload) (*Reply, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrapf(ErrTransport, "marshal registration: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+registerPath, bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(ErrTransport, "create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(ErrTransport, "send request: %v", err)
	}
	defer resp.Body.Close()

	reply := &Reply{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrapf(ErrTransport, "read response: %v", err)
	}

	var body replyBody
	if err = json.Unmarshal(raw, &body); err != nil {
		// Not JSON: the status code alone decides what happened.
		return reply, nil
	}

	reply.Success = body.Success
	reply.HackathonID = body.HackathonID
	reply.TeamName = body.TeamName
	reply.ConfirmationEmailSent = body.ConfirmationEmailSent
	reply.Details = body.Details
	reply.Message = body.Message
	if reply.Message == "" {
		reply.Message = body.Error
	}

	return reply, nil
}

// Lookup fetches a registration by Hackathon ID with an organizer token.
func (c *Client) Lookup(ctx context.Context, hackathonID, token string) (*model.RegistrationDetails, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+registrationPath+url.PathEscape(hackathonID), nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(ErrTransport, "send request: %v", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, errors.Wrap(ErrNotFound, hackathonID)
	default:
		var body model.ErrorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body)
		return nil, errors.Errorf("lookup failed with status %d: %s", resp.StatusCode, body.Error)
	}

	details := &model.RegistrationDetails{}
	if err = json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(details); err != nil {
		return nil, errors.Wrap(err, "decode registration")
	}

	return details, nil
}
