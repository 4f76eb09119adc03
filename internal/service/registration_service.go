package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/yakoovad/hackathon-registration/internal/db"
	"github.com/yakoovad/hackathon-registration/internal/model"
	"github.com/yakoovad/hackathon-registration/internal/repository"
	"github.com/yakoovad/hackathon-registration/pkg/logger"
	"go.uber.org/zap"
)

const maxIDAttempts = 3

// Notifier delivers the confirmation for a stored registration. Notify
// reports whether a confirmation was handed off for delivery.
type Notifier interface {
	Notify(ctx context.Context, reg *model.Registration) bool
}

type RegisterResult struct {
	Registration       *model.Registration
	ConfirmationQueued bool
}

type RegistrationService struct {
	tx db.Transactor

	registrations repository.RegistrationRepository
	notifier      Notifier

	newID func() string
	now   func() time.Time
}

func NewRegistrationService(tx db.Transactor) *RegistrationService {
	return &RegistrationService{
		tx:    tx,
		newID: NewHackathonID,
		now:   time.Now,
	}
}

func (s *RegistrationService) Register(ctx context.Context, payload *model.RegistrationPayload) (*RegisterResult, *Error) {
	l := logger.FromContext(ctx)

	reg := normalize(payload)
	reg.RegisteredAt = s.now().UTC().Truncate(time.Second)

	if total := 1 + len(reg.Members); total != reg.TeamSize {
		l.Warn("team size mismatch", zap.Int("team_size", reg.TeamSize), zap.Int("total", total))
		return nil, NewError(ErrorCodeInvalidBody, "Validation failed.").WithDetails(
			fmt.Sprintf("'team_size' is %d but total count (lead + additional) is %d.", reg.TeamSize, total),
		)
	}

	l.Info("registering team", zap.String("team_name", reg.TeamName), zap.String("lead_email", reg.LeadEmail))

	var err error
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		reg.HackathonID = s.newID()

		err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
			if err := s.registrations.Create(txCtx, toRepoRegistration(reg)); err != nil {
				return err
			}
			return s.registrations.AddMembers(txCtx, reg.HackathonID, toRepoMembers(reg))
		})
		if !errors.Is(err, repository.ErrIDConflict) {
			break
		}
		l.Warn("hackathon id collision, retrying", zap.String("hackathon_id", reg.HackathonID), zap.Int("attempt", attempt))
	}

	if errors.Is(err, repository.ErrAlreadyExists) {
		l.Warn("duplicate registration", zap.String("lead_email", reg.LeadEmail))
		return nil, NewError(ErrorCodeDuplicate,
			fmt.Sprintf("A team with lead email '%s' is already registered.", reg.LeadEmail))
	}
	if err != nil {
		l.Error("failed to store registration", zap.String("team_name", reg.TeamName), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to store registration")
	}

	queued := false
	if s.notifier != nil {
		queued = s.notifier.Notify(ctx, reg)
	}

	l.Info("team registered",
		zap.String("hackathon_id", reg.HackathonID),
		zap.Bool("confirmation_queued", queued))

	return &RegisterResult{Registration: reg, ConfirmationQueued: queued}, nil
}

func (s *RegistrationService) Get(ctx context.Context, hackathonID string) (*model.Registration, *Error) {
	l := logger.FromContext(ctx)

	id := NormalizeHackathonID(hackathonID)
	l.Debug("getting registration", zap.String("hackathon_id", id))

	regRepo, err := s.registrations.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		l.Warn("registration not found", zap.String("hackathon_id", id))
		return nil, NewError(ErrorCodeNotFound, fmt.Sprintf("No registration found for ID '%s'.", id))
	}
	if err != nil {
		l.Error("failed to get registration", zap.String("hackathon_id", id), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to get registration")
	}

	membersRepo, err := s.registrations.GetMembers(ctx, id)
	if err != nil {
		l.Error("failed to get registration members", zap.String("hackathon_id", id), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to get registration members")
	}

	members := make([]*model.Member, 0, len(membersRepo))
	for _, m := range membersRepo {
		members = append(members, &model.Member{Name: m.Name, Email: m.Email})
	}

	return &model.Registration{
		HackathonID:  regRepo.HackathonID,
		RegisteredAt: regRepo.RegisteredAt.UTC(),
		TeamName:     regRepo.TeamName,
		ProblemTrack: regRepo.ProblemTrack,
		TeamSize:     regRepo.TeamSize,
		LeadName:     regRepo.LeadName,
		LeadEmail:    regRepo.LeadEmail,
		LeadPhone:    regRepo.LeadPhone,
		Members:      members,
	}, nil
}

func (s *RegistrationService) WithRegistrationRepo(r repository.RegistrationRepository) *RegistrationService {
	s.registrations = r
	return s
}

func (s *RegistrationService) WithNotifier(n Notifier) *RegistrationService {
	s.notifier = n
	return s
}

func (s *RegistrationService) WithIDGenerator(fn func() string) *RegistrationService {
	s.newID = fn
	return s
}

func (s *RegistrationService) WithClock(fn func() time.Time) *RegistrationService {
	s.now = fn
	return s
}

func normalize(p *model.RegistrationPayload) *model.Registration {
	members := make([]*model.Member, 0, len(p.Members))
	for _, m := range p.Members {
		members = append(members, &model.Member{
			Name:  strings.TrimSpace(m.Name),
			Email: strings.ToLower(strings.TrimSpace(m.Email)),
		})
	}

	return &model.Registration{
		TeamName:     strings.TrimSpace(p.TeamName),
		ProblemTrack: strings.TrimSpace(p.ProblemTrack),
		TeamSize:     p.TeamSize,
		LeadName:     strings.TrimSpace(p.LeadName),
		LeadEmail:    strings.ToLower(strings.TrimSpace(p.LeadEmail)),
		LeadPhone:    strings.TrimSpace(p.LeadPhone),
		Members:      members,
	}
}

func toRepoRegistration(r *model.Registration) *repository.Registration {
	return &repository.Registration{
		HackathonID:  r.HackathonID,
		RegisteredAt: r.RegisteredAt,
		TeamName:     r.TeamName,
		ProblemTrack: r.ProblemTrack,
		TeamSize:     r.TeamSize,
		LeadName:     r.LeadName,
		LeadEmail:    r.LeadEmail,
		LeadPhone:    r.LeadPhone,
	}
}

func toRepoMembers(r *model.Registration) []*repository.Member {
	members := make([]*repository.Member, 0, len(r.Members))
	for i, m := range r.Members {
		members = append(members, &repository.Member{
			HackathonID: r.HackathonID,
			Position:    i + 1,
			Name:        m.Name,
			Email:       m.Email,
		})
	}
	return members
}
