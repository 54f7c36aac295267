//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"regportal/internal/registration"
	"regportal/internal/registration/store"
	"regportal/internal/registration/store/postgres"
)

type PostgresStoreSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	store     *postgres.Store
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("regportal"),
		tcpostgres.WithUsername("regportal"),
		tcpostgres.WithPassword("regportal"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2*time.Minute),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	pool, err := pgxpool.New(ctx, dsn)
	s.Require().NoError(err)
	s.pool = pool

	s.store = postgres.New(pool)
	s.Require().NoError(s.store.Init(ctx))
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), "TRUNCATE registrations RESTART IDENTITY")
	s.Require().NoError(err)
}

func candidate(nationalID string) registration.Registrant {
	return registration.Registrant{
		LastName:        "Sawadogo",
		FirstName:       "Moussa",
		NationalID:      nationalID,
		Phone:           "70123456",
		Organization:    "Mining Corp",
		PreferredPeriod: "September",
		Sex:             registration.SexMale,
		Age:             41,
		Level:           registration.LevelAdvanced,
		AttendanceMode:  registration.AttendanceOnSite,
	}
}

func (s *PostgresStoreSuite) TestInitIdempotent() {
	ctx := context.Background()
	_, err := s.store.Append(ctx, candidate("B1234567"))
	s.Require().NoError(err)

	s.Require().NoError(s.store.Init(ctx))

	records, err := s.store.ListAll(ctx)
	s.Require().NoError(err)
	s.Len(records, 1)
}

func (s *PostgresStoreSuite) TestAppendAndListRoundTrip() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.store.Append(ctx, candidate(fmt.Sprintf("B100000%d", i)))
		s.Require().NoError(err)
	}

	records, err := s.store.ListAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	for i, r := range records {
		s.Equal(fmt.Sprintf("B100000%d", i), r.NationalID)
		s.False(r.RegisteredAt.IsZero())
	}
}

func (s *PostgresStoreSuite) TestCaseInsensitiveDuplicate() {
	ctx := context.Background()

	_, err := s.store.Append(ctx, candidate("A1234567"))
	s.Require().NoError(err)

	_, err = s.store.Append(ctx, candidate("a1234567"))
	s.ErrorIs(err, store.ErrDuplicateID)

	records, err := s.store.ListAll(ctx)
	s.Require().NoError(err)
	s.Len(records, 1)
}

// TestConcurrentAppendsSameID verifies the unique index closes the
// read-modify-write race: out of many concurrent submissions of the same
// national ID, exactly one lands.
func (s *PostgresStoreSuite) TestConcurrentAppendsSameID() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	var accepted atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.store.Append(ctx, candidate("C7777777")); err == nil {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), accepted.Load(), "exactly one concurrent append may win")

	records, err := s.store.ListAll(ctx)
	s.Require().NoError(err)
	s.Len(records, 1)
}
