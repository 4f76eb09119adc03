package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/yakoovad/hackathon-registration/internal/db"
)

type Registration struct {
	HackathonID  string    `db:"hackathon_id"`
	RegisteredAt time.Time `db:"registered_at"`
	TeamName     string    `db:"team_name"`
	ProblemTrack string    `db:"problem_track"`
	TeamSize     int       `db:"team_size"`
	LeadName     string    `db:"lead_name"`
	LeadEmail    string    `db:"lead_email"`
	LeadPhone    string    `db:"lead_phone"`
}

type Member struct {
	HackathonID string `db:"hackathon_id"`
	Position    int    `db:"position"`
	Name        string `db:"member_name"`
	Email       string `db:"member_email"`
}

type RegistrationRepository interface {
	// Create stores a registration. A taken lead e-mail yields ErrAlreadyExists,
	// a taken Hackathon ID yields ErrIDConflict.
	Create(ctx context.Context, reg *Registration) error
	AddMembers(ctx context.Context, hackathonID string, members []*Member) error
	Get(ctx context.Context, hackathonID string) (*Registration, error)
	GetMembers(ctx context.Context, hackathonID string) ([]*Member, error)
}

type pgxRegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &pgxRegistrationRepository{pool: pool}
}

func (p *pgxRegistrationRepository) Create(ctx context.Context, reg *Registration) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("registrations",
			"hackathon_id", "registered_at", "team_name", "problem_track",
			"team_size", "lead_name", "lead_email", "lead_phone"),
		im.Values(
			psql.Arg(reg.HackathonID),
			psql.Arg(reg.RegisteredAt),
			psql.Arg(reg.TeamName),
			psql.Arg(reg.ProblemTrack),
			psql.Arg(reg.TeamSize),
			psql.Arg(reg.LeadName),
			psql.Arg(reg.LeadEmail),
			psql.Arg(reg.LeadPhone),
		),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	_, err = e.Exec(ctx, sql, args...)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if pgErr.ConstraintName == leadEmailConstraint {
			return ErrAlreadyExists
		}
		return ErrIDConflict
	}

	return err
}

func (p *pgxRegistrationRepository) AddMembers(ctx context.Context, hackathonID string, members []*Member) error {
	if len(members) == 0 {
		return nil
	}

	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("registration_members", "hackathon_id", "position", "member_name", "member_email"),
	)
	for i, m := range members {
		q.Apply(im.Values(
			psql.Arg(hackathonID),
			psql.Arg(i+1),
			psql.Arg(m.Name),
			psql.Arg(m.Email),
		))
	}

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	_, err = e.Exec(ctx, sql, args...)
	return errors.Wrap(err, "insert members")
}

func (p *pgxRegistrationRepository) Get(ctx context.Context, hackathonID string) (*Registration, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("hackathon_id", "registered_at", "team_name", "problem_track",
			"team_size", "lead_name", "lead_email", "lead_phone"),
		sm.From("registrations"),
		sm.Where(psql.Quote("hackathon_id").EQ(psql.Arg(hackathonID))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	reg := &Registration{}
	if err = e.QueryRow(ctx, sql, args...).Scan(
		&reg.HackathonID,
		&reg.RegisteredAt,
		&reg.TeamName,
		&reg.ProblemTrack,
		&reg.TeamSize,
		&reg.LeadName,
		&reg.LeadEmail,
		&reg.LeadPhone,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return reg, nil
}

func (p *pgxRegistrationRepository) GetMembers(ctx context.Context, hackathonID string) ([]*Member, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("hackathon_id", "position", "member_name", "member_email"),
		sm.From("registration_members"),
		sm.Where(psql.Quote("hackathon_id").EQ(psql.Arg(hackathonID))),
		sm.OrderBy("position"),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := e.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Member, error) {
		m := &Member{}
		if err := row.Scan(&m.HackathonID, &m.Position, &m.Name, &m.Email); err != nil {
			return nil, err
		}
		return m, nil
	})
}
