package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/yakoovad/hackathon-registration/internal/db"
	"github.com/yakoovad/hackathon-registration/migrations"
	"go.uber.org/zap"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	if testing.Short() {
		t.Skip("postgres container tests are skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("hackathon_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.Up(ctx, pool, zap.NewNop()))

	return pool
}

func testRegistration(id, email string) *Registration {
	return &Registration{
		HackathonID:  id,
		RegisteredAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		TeamName:     "Nova",
		ProblemTrack: "healthcare",
		TeamSize:     3,
		LeadName:     "Asha Rao",
		LeadEmail:    email,
		LeadPhone:    "9876543210",
	}
}

func TestPgxRegistrationRepository(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewPgxRegistrationRepository(pool)
	tx := db.NewPgxTransactor(pool)
	ctx := context.Background()

	t.Run("create and read back", func(t *testing.T) {
		reg := testRegistration("HACK-00000001", "asha@example.com")

		err := tx.WithinTransaction(ctx, func(txCtx context.Context) error {
			if err := repo.Create(txCtx, reg); err != nil {
				return err
			}
			return repo.AddMembers(txCtx, reg.HackathonID, []*Member{
				{Name: "Ravi", Email: "ravi@example.com"},
				{Name: "Meera"},
			})
		})
		require.NoError(t, err)

		got, err := repo.Get(ctx, reg.HackathonID)
		require.NoError(t, err)
		assert.Equal(t, reg.TeamName, got.TeamName)
		assert.Equal(t, reg.LeadEmail, got.LeadEmail)
		assert.Equal(t, reg.TeamSize, got.TeamSize)
		assert.True(t, reg.RegisteredAt.Equal(got.RegisteredAt))

		members, err := repo.GetMembers(ctx, reg.HackathonID)
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, &Member{HackathonID: reg.HackathonID, Position: 1, Name: "Ravi", Email: "ravi@example.com"}, members[0])
		assert.Equal(t, &Member{HackathonID: reg.HackathonID, Position: 2, Name: "Meera"}, members[1])
	})

	t.Run("duplicate lead email", func(t *testing.T) {
		err := repo.Create(ctx, testRegistration("HACK-00000002", "asha@example.com"))
		assert.True(t, errors.Is(err, ErrAlreadyExists))
	})

	t.Run("duplicate hackathon id", func(t *testing.T) {
		err := repo.Create(ctx, testRegistration("HACK-00000001", "other@example.com"))
		assert.True(t, errors.Is(err, ErrIDConflict))
	})

	t.Run("failed transaction leaves nothing behind", func(t *testing.T) {
		reg := testRegistration("HACK-00000003", "rolled@example.com")

		err := tx.WithinTransaction(ctx, func(txCtx context.Context) error {
			if err := repo.Create(txCtx, reg); err != nil {
				return err
			}
			return repo.AddMembers(txCtx, reg.HackathonID, []*Member{{Name: ""}, {Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}})
		})
		require.Error(t, err)

		_, err = repo.Get(ctx, reg.HackathonID)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.Get(ctx, "HACK-FFFFFFFF")
		assert.True(t, errors.Is(err, ErrNotFound))

		members, err := repo.GetMembers(ctx, "HACK-FFFFFFFF")
		require.NoError(t, err)
		assert.Empty(t, members)
	})
}
