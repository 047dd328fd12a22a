package generator

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/peopledash/domain"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestGenerate_ExactCount(t *testing.T) {
	for _, count := range []int{0, 1, 10, 250} {
		employees, err := New(WithClock(fixedClock)).Generate(count)
		require.NoError(t, err)
		assert.Len(t, employees, count)
		assert.NotNil(t, employees)
	}
}

func TestGenerate_NegativeCount(t *testing.T) {
	employees, err := New().Generate(-1)
	require.Error(t, err)
	assert.Nil(t, employees)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestGenerate_FieldConstraints(t *testing.T) {
	employees, err := New(WithSeed(7), WithClock(fixedClock)).Generate(500)
	require.NoError(t, err)

	earliest := fixedNow.AddDate(-domain.MaxTenureYears, 0, 0).Truncate(24 * time.Hour)
	seen := make(map[string]struct{}, len(employees))

	for _, emp := range employees {
		require.NoError(t, emp.Validate(), "employee %+v", emp)

		_, err := uuid.Parse(emp.ID)
		assert.NoError(t, err)
		_, dup := seen[emp.ID]
		assert.False(t, dup, "duplicate id %s", emp.ID)
		seen[emp.ID] = struct{}{}

		assert.Equal(t, domain.EmailFor(emp.FirstName, emp.LastName), emp.Email)
		assert.Contains(t, domain.Departments, emp.Department)
		assert.Contains(t, domain.Positions, emp.Position)
		assert.Contains(t, domain.Locations, emp.Location)
		assert.Contains(t, domain.Genders, emp.Gender)

		scaled := emp.PerformanceScore * 10
		assert.InDelta(t, math.Round(scaled), scaled, 1e-9, "one fractional digit expected")

		hired, err := emp.HiredAt()
		require.NoError(t, err)
		assert.False(t, hired.After(fixedNow))
		assert.False(t, hired.Before(earliest))
	}
}

func TestGenerate_SeedIsDeterministic(t *testing.T) {
	first, err := New(WithSeed(42), WithClock(fixedClock)).Generate(25)
	require.NoError(t, err)
	second, err := New(WithSeed(42), WithClock(fixedClock)).Generate(25)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := New(WithSeed(43), WithClock(fixedClock)).Generate(25)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestGenerate_ZeroSeedIsStillDeterministic(t *testing.T) {
	first, err := New(WithSeed(0), WithClock(fixedClock)).Generate(5)
	require.NoError(t, err)
	second, err := New(WithSeed(0), WithClock(fixedClock)).Generate(5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerate_UnseededRunsDiffer(t *testing.T) {
	a := New(WithClock(fixedClock))
	b := New(WithClock(fixedClock))
	require.NotEqual(t, a.Seed(), b.Seed())

	first, err := a.Generate(10)
	require.NoError(t, err)
	second, err := b.Generate(10)
	require.NoError(t, err)

	ids := func(list []domain.Employee) []string {
		out := make([]string, 0, len(list))
		for _, e := range list {
			out = append(out, e.ID)
		}
		return out
	}
	assert.False(t, slices.Equal(ids(first), ids(second)))
}

func TestGenerate_ReproducibleFromReportedSeed(t *testing.T) {
	g := New(WithClock(fixedClock))
	first, err := g.Generate(5)
	require.NoError(t, err)

	replay, err := New(WithSeed(g.Seed()), WithClock(fixedClock)).Generate(5)
	require.NoError(t, err)
	assert.Equal(t, first, replay)
}
