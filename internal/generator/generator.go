// Package generator produces synthetic employee records.
package generator

import (
	"encoding/binary"
	"math/rand/v2"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/fastygo/peopledash/domain"
)

// Option customises a Generator.
type Option func(*Generator)

// WithSeed makes the generator deterministic: the same seed and clock yield the same records.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
		g.seeded = true
	}
}

// WithClock overrides the reference time hire dates are drawn back from.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// Generator draws every employee field independently from its domain.
// A Generator is not safe for concurrent use.
type Generator struct {
	seed   uint64
	seeded bool
	now    func() time.Time

	src   *rand.ChaCha8
	faker *gofakeit.Faker
}

// New builds a generator. Without WithSeed a random seed is drawn.
func New(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	if !g.seeded {
		g.seed = rand.Uint64()
	}

	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], g.seed)
	g.src = rand.NewChaCha8(key)
	g.faker = gofakeit.NewFaker(g.src, false)
	return g
}

// Seed reports the seed in use, so a random run can be reproduced.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Generate returns exactly count employees.
func (g *Generator) Generate(count int) ([]domain.Employee, error) {
	if count < 0 {
		return nil, domain.ErrNegativeCount
	}

	now := g.now().UTC()
	earliest := now.AddDate(-domain.MaxTenureYears, 0, 0)

	employees := make([]domain.Employee, 0, count)
	for i := 0; i < count; i++ {
		emp, err := g.next(earliest, now)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, nil
}

func (g *Generator) next(earliest, now time.Time) (domain.Employee, error) {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		return domain.Employee{}, err
	}

	firstName := g.faker.FirstName()
	lastName := g.faker.LastName()
	hired := g.faker.DateRange(earliest, now)

	return domain.Employee{
		ID:               id.String(),
		FirstName:        firstName,
		LastName:         lastName,
		Email:            domain.EmailFor(firstName, lastName),
		Department:       g.faker.RandomString(domain.Departments),
		Position:         g.faker.RandomString(domain.Positions),
		Salary:           g.faker.IntRange(domain.MinSalary, domain.MaxSalary),
		HireDate:         hired.UTC().Format(domain.DateLayout),
		PerformanceScore: float64(g.faker.IntRange(10, 50)) / 10,
		Age:              g.faker.IntRange(domain.MinAge, domain.MaxAge),
		Gender:           g.faker.RandomString(domain.Genders),
		Location:         g.faker.RandomString(domain.Locations),
	}, nil
}
