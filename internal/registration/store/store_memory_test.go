package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regportal/internal/registration"
)

func candidate(nationalID string) registration.Registrant {
	return registration.Registrant{
		LastName:        "Ouedraogo",
		FirstName:       "Awa",
		NationalID:      nationalID,
		Phone:           "70123456",
		Organization:    "Bureau of Mines",
		PreferredPeriod: "July",
		Sex:             registration.SexFemale,
		Age:             27,
		Level:           registration.LevelBeginner,
		AttendanceMode:  registration.AttendanceOnline,
	}
}

func TestMemoryStoreAppend(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps timestamp and normalizes the ID", func(t *testing.T) {
		fixed := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
		s := NewMemoryStore().WithClock(func() time.Time { return fixed })

		stored, err := s.Append(ctx, candidate(" b1234567 "))
		require.NoError(t, err)
		assert.Equal(t, "B1234567", stored.NationalID)
		assert.Equal(t, fixed, stored.RegisteredAt)
	})

	t.Run("case-insensitive duplicate is rejected without mutation", func(t *testing.T) {
		s := NewMemoryStore()
		_, err := s.Append(ctx, candidate("A1234567"))
		require.NoError(t, err)

		before, err := s.ListAll(ctx)
		require.NoError(t, err)

		_, err = s.Append(ctx, candidate("a1234567"))
		assert.ErrorIs(t, err, ErrDuplicateID)

		after, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after, "store must be unchanged after a rejected append")
	})

	t.Run("round trip preserves insertion order", func(t *testing.T) {
		s := NewMemoryStore()
		var want []string
		for i := 0; i < 5; i++ {
			id := fmt.Sprintf("B100000%d", i)
			want = append(want, id)
			_, err := s.Append(ctx, candidate(id))
			require.NoError(t, err)
		}

		records, err := s.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, records, 5)
		for i, r := range records {
			assert.Equal(t, want[i], r.NationalID)
			assert.False(t, r.RegisteredAt.IsZero())
		}
	})

	t.Run("snapshot is detached from the store", func(t *testing.T) {
		s := NewMemoryStore()
		_, err := s.Append(ctx, candidate("B1000001"))
		require.NoError(t, err)

		snapshot, err := s.ListAll(ctx)
		require.NoError(t, err)
		snapshot[0].NationalID = "MUTATED"

		again, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, "B1000001", again[0].NationalID)
	})
}

func TestMemoryStoreInitIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Init(ctx))
	_, err := s.Append(ctx, candidate("B1234567"))
	require.NoError(t, err)
	require.NoError(t, s.Init(ctx))

	records, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
