package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/fastygo/peopledash/domain"
	"github.com/fastygo/peopledash/internal/analytics"
)

const (
	salaryKeyExpr = `salary::float8`
	ageKeyExpr    = `age::float8`
	// Fractional 365-day years between the hire date (UTC midnight) and $5.
	tenureKeyExpr = `(EXTRACT(EPOCH FROM ($5::timestamptz - (hire_date::timestamp AT TIME ZONE 'UTC'))) / 31536000.0)::float8`
)

// distributionQuery assigns each row to the first bucket containing its key and returns every
// bucket in definition order, empty ones included.
const distributionQuery = `
	WITH buckets AS (
		SELECT label, lo, hi, exclusive, ord
		FROM unnest($1::text[], $2::float8[], $3::float8[], $4::bool[]) WITH ORDINALITY AS b(label, lo, hi, exclusive, ord)
	),
	hits AS (
		SELECT (
			SELECT b.ord FROM buckets b
			WHERE k.v >= b.lo AND (CASE WHEN b.exclusive THEN k.v < b.hi ELSE k.v <= b.hi END)
			ORDER BY b.ord
			LIMIT 1
		) AS ord
		FROM (SELECT %s AS v FROM employees) k
	)
	SELECT buckets.label, COUNT(hits.ord)::int
	FROM buckets
	LEFT JOIN hits ON hits.ord = buckets.ord
	GROUP BY buckets.label, buckets.ord
	ORDER BY buckets.ord
`

type analyticsRepository struct {
	db  DB
	now func() time.Time
}

// NewAnalyticsRepository computes the aggregate views inside Postgres. Its output matches
// analytics.Local over the same rows.
func NewAnalyticsRepository(db DB, now func() time.Time) analytics.Provider {
	if now == nil {
		now = time.Now
	}
	return &analyticsRepository{db: db, now: now}
}

func (r *analyticsRepository) DepartmentStats(ctx context.Context) ([]domain.DepartmentStats, error) {
	const query = `
	SELECT department,
		COUNT(*)::int,
		ROUND(AVG(salary))::bigint,
		ROUND(AVG(performance_score), 2)::float8
	FROM employees
	GROUP BY department
	ORDER BY MIN(seq)
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]domain.DepartmentStats, 0)
	for rows.Next() {
		var s domain.DepartmentStats
		if err := rows.Scan(&s.Department, &s.EmployeeCount, &s.AverageSalary, &s.AveragePerformance); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *analyticsRepository) SalaryDistribution(ctx context.Context) ([]domain.RangeCount, error) {
	return r.distribution(ctx, analytics.SalaryBuckets, salaryKeyExpr)
}

func (r *analyticsRepository) AgeDistribution(ctx context.Context) ([]domain.RangeCount, error) {
	return r.distribution(ctx, analytics.AgeBuckets, ageKeyExpr)
}

func (r *analyticsRepository) TenureDistribution(ctx context.Context) ([]domain.RangeCount, error) {
	return r.distribution(ctx, analytics.TenureBuckets, tenureKeyExpr, r.now().UTC())
}

func (r *analyticsRepository) GenderDistribution(ctx context.Context) ([]domain.GenderCount, error) {
	const query = `
	SELECT gender, COUNT(*)::int
	FROM employees
	GROUP BY gender
	ORDER BY MIN(seq)
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.GenderCount, 0)
	for rows.Next() {
		var g domain.GenderCount
		if err := rows.Scan(&g.Gender, &g.Count); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *analyticsRepository) TopPerformers(ctx context.Context, n int) ([]domain.Employee, error) {
	if n <= 0 {
		return []domain.Employee{}, nil
	}
	rows, err := r.db.Query(ctx, employeeSelect+`ORDER BY performance_score DESC, seq ASC LIMIT $1`, n)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

func (r *analyticsRepository) distribution(ctx context.Context, buckets []analytics.Bucket, keyExpr string, extra ...any) ([]domain.RangeCount, error) {
	args := append(bucketArgs(buckets), extra...)
	rows, err := r.db.Query(ctx, fmt.Sprintf(distributionQuery, keyExpr), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.RangeCount, 0, len(buckets))
	for rows.Next() {
		var rc domain.RangeCount
		if err := rows.Scan(&rc.Range, &rc.Count); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

func bucketArgs(buckets []analytics.Bucket) []any {
	labels := make([]string, len(buckets))
	lo := make([]float64, len(buckets))
	hi := make([]float64, len(buckets))
	exclusive := make([]bool, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
		lo[i] = b.Min
		hi[i] = b.Max
		exclusive[i] = b.UpperExclusive
	}
	return []any{labels, lo, hi, exclusive}
}
