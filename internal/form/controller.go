package form

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/yakoovad/hackathon-registration/internal/client"
	"github.com/yakoovad/hackathon-registration/internal/model"
	"github.com/yakoovad/hackathon-registration/internal/validation"
	"go.uber.org/zap"
)

type State string

const (
	StateIdle            State = "idle"
	StateValidating      State = "validating"
	StateSubmitting      State = "submitting"
	StateSuccess         State = "success"
	StateDuplicate       State = "duplicate"
	StateValidationError State = "validation_error"
	StateServerError     State = "server_error"
	StateNetworkError    State = "network_error"
)

// DefaultBackendLabel names the backend in the network error banner when no
// base URL is configured.
const DefaultBackendLabel = "this site (same origin)"

const (
	genericFailureMessage   = "Registration failed. Please try again."
	duplicateFallback       = "This email is already registered."
	remoteValidationMessage = "Please fix the highlighted fields and try again."
)

// detailTokens routes server validation details to input fields, in match order.
var detailTokens = []Field{
	FieldTeamName,
	FieldProblemTrack,
	FieldTeamSize,
	FieldLeadName,
	FieldLeadEmail,
	FieldLeadPhone,
}

type Submitter interface {
	Register(ctx context.Context, payload *model.RegistrationPayload) (*client.Reply, error)
}

type Controller struct {
	view      View
	submitter Submitter
	members   *MemberRows
	validate  *validator.Validate
	logger    *zap.Logger
	baseURL   string

	mu    sync.Mutex
	errs  FieldErrors
	state State

	inFlight atomic.Bool
}

func NewController(view View, submitter Submitter) *Controller {
	return &Controller{
		view:      view,
		submitter: submitter,
		members:   NewMemberRows(),
		validate:  validation.New(),
		logger:    zap.NewNop(),
		errs:      FieldErrors{},
		state:     StateIdle,
	}
}

func (c *Controller) WithLogger(l *zap.Logger) *Controller {
	c.logger = l
	return c
}

// WithBaseURL sets the backend named in the network error banner.
func (c *Controller) WithBaseURL(baseURL string) *Controller {
	c.baseURL = baseURL
	return c
}

func (c *Controller) WithMembers(m *MemberRows) *Controller {
	c.members = m
	return c
}

func (c *Controller) Members() *MemberRows {
	return c.members
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Errors returns a copy of the current field errors.
func (c *Controller) Errors() FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(FieldErrors, len(c.errs))
	for f, msg := range c.errs {
		out[f] = msg
	}
	return out
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

// AddMember appends a member row, or reports the capacity error in the
// members area and disables the add control.
func (c *Controller) AddMember() (*MemberRow, error) {
	row, err := c.members.Add()
	if err != nil {
		c.setFieldError(FieldMembers, capacityMessage)
		c.view.SetAddMemberEnabled(false)
		return nil, err
	}

	c.clearFieldError(FieldMembers)
	c.view.RenderMembers(c.members.Rows())
	if !c.members.CanAdd() {
		c.view.SetAddMemberEnabled(false)
	}

	return row, nil
}

func (c *Controller) RemoveMember(row *MemberRow) error {
	if err := c.members.Remove(row); err != nil {
		return err
	}

	c.clearFieldError(FieldMembers)
	c.view.RenderMembers(c.members.Rows())
	c.view.SetAddMemberEnabled(true)

	return nil
}

func (c *Controller) setFieldError(f Field, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs.Set(f, msg)
	c.view.SetFieldError(f, msg)
}

func (c *Controller) clearFieldError(f Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.errs, f)
	c.view.ClearFieldError(f)
}

// Submit validates the form and, when it passes, posts it once and renders
// the outcome. Only one submission runs at a time; a call made while another
// is in flight returns StateSubmitting without touching the network.
func (c *Controller) Submit(ctx context.Context) State {
	if !c.inFlight.CompareAndSwap(false, true) {
		return StateSubmitting
	}
	defer c.inFlight.Store(false)

	c.setState(StateValidating)
	c.view.HideBanner()

	if !c.Validate() {
		c.setState(StateIdle)
		return StateIdle
	}

	c.setState(StateSubmitting)
	c.view.SetSubmitting(true)

	payload := c.Payload()

	c.logger.Debug("submitting registration",
		zap.String("team_name", payload.TeamName),
		zap.Int("team_size", payload.TeamSize),
		zap.Int("members", len(payload.Members)))

	reply, err := c.submitter.Register(ctx, payload)
	if err != nil {
		c.logger.Warn("registration backend unreachable",
			zap.String("base_url", c.baseURL),
			zap.Error(err))
		return c.fail(StateNetworkError, func() {
			c.view.ShowBanner(BannerError, c.networkMessage())
		})
	}

	switch {
	case reply.StatusCode == http.StatusCreated && reply.Success:
		c.view.ShowSuccess(SuccessPanel{
			HackathonID: reply.HackathonID,
			TeamName:    reply.TeamName,
			Message:     successMessage(payload.LeadEmail, reply.ConfirmationEmailSent),
		})
		c.setState(StateSuccess)
		return StateSuccess

	case reply.StatusCode == http.StatusConflict:
		msg := reply.Message
		if msg == "" {
			msg = duplicateFallback
		}
		return c.fail(StateDuplicate, func() {
			c.setFieldError(FieldLeadEmail, msg)
			c.view.ShowBanner(BannerWarning, msg)
		})

	case reply.StatusCode == http.StatusBadRequest && len(reply.Details) > 0:
		return c.fail(StateValidationError, func() {
			c.routeDetails(reply.Details)
			c.view.ShowBanner(BannerError, remoteValidationMessage)
		})

	default:
		msg := reply.Message
		if msg == "" {
			msg = genericFailureMessage
		}
		return c.fail(StateServerError, func() {
			c.view.ShowBanner(BannerError, msg)
		})
	}
}

// fail renders a non-success outcome and gives the submit control back.
func (c *Controller) fail(s State, render func()) State {
	render()
	c.view.SetSubmitting(false)
	c.setState(s)
	return s
}

// routeDetails shows each server detail next to the field it names.
// Details naming no known field land in the members area.
func (c *Controller) routeDetails(details []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errs.Clear()
	for _, d := range details {
		target := FieldMembers
		for _, f := range detailTokens {
			if strings.Contains(d, string(f)) {
				target = f
				break
			}
		}
		c.errs.Append(target, d)
	}

	for f, msg := range c.errs {
		c.view.SetFieldError(f, msg)
	}
}

func (c *Controller) networkMessage() string {
	target := c.baseURL
	if target == "" {
		target = DefaultBackendLabel
	}
	return fmt.Sprintf("Could not reach the registration server at %s. The backend may be unreachable; please try again shortly.", target)
}

func successMessage(leadEmail string, emailSent bool) string {
	if emailSent {
		return fmt.Sprintf("A confirmation email has been sent to %s. Keep your Hackathon ID handy for check-in.", leadEmail)
	}
	return "Your team is registered, but the confirmation email could not be sent. Please note your Hackathon ID for check-in."
}
