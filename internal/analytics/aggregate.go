// Package analytics turns a collection of employees into the aggregate views the dashboard
// renders. Every function here is pure and total: a nil or empty collection yields an empty,
// well-formed result.
package analytics

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fastygo/peopledash/domain"
)

// DefaultTopPerformers is the ranking length used when the caller does not ask for one.
const DefaultTopPerformers = 5

type departmentTotals struct {
	count       int64
	salary      int64
	performance decimal.Decimal
}

// DepartmentStats groups employees by department in order of first appearance.
func DepartmentStats(employees []domain.Employee) []domain.DepartmentStats {
	order := make([]string, 0)
	totals := make(map[string]*departmentTotals)

	for _, emp := range employees {
		t, ok := totals[emp.Department]
		if !ok {
			t = &departmentTotals{}
			totals[emp.Department] = t
			order = append(order, emp.Department)
		}
		t.count++
		t.salary += int64(emp.Salary)
		t.performance = t.performance.Add(decimal.NewFromFloat(emp.PerformanceScore))
	}

	stats := make([]domain.DepartmentStats, 0, len(order))
	for _, name := range order {
		t := totals[name]
		count := decimal.NewFromInt(t.count)
		stats = append(stats, domain.DepartmentStats{
			Department:         name,
			EmployeeCount:      int(t.count),
			AverageSalary:      decimal.NewFromInt(t.salary).Div(count).Round(0).IntPart(),
			AveragePerformance: t.performance.Div(count).Round(2).InexactFloat64(),
		})
	}
	return stats
}

// Distribute counts employees per bucket. Each employee lands in the first bucket containing
// its key; every bucket is emitted in definition order, including empty ones.
func Distribute(employees []domain.Employee, buckets []Bucket, key KeyFunc) []domain.RangeCount {
	out := make([]domain.RangeCount, len(buckets))
	for i, b := range buckets {
		out[i].Range = b.Label
	}

	for _, emp := range employees {
		v, ok := key(emp)
		if !ok {
			continue
		}
		for i, b := range buckets {
			if b.Contains(v) {
				out[i].Count++
				break
			}
		}
	}
	return out
}

// SalaryDistribution buckets employees by salary.
func SalaryDistribution(employees []domain.Employee) []domain.RangeCount {
	return Distribute(employees, SalaryBuckets, SalaryKey)
}

// AgeDistribution buckets employees by age.
func AgeDistribution(employees []domain.Employee) []domain.RangeCount {
	return Distribute(employees, AgeBuckets, AgeKey)
}

// TenureDistribution buckets employees by years since hire, measured at now.
func TenureDistribution(employees []domain.Employee, now time.Time) []domain.RangeCount {
	return Distribute(employees, TenureBuckets, TenureKey(now))
}

// GenderDistribution counts each gender present, in order of first appearance.
func GenderDistribution(employees []domain.Employee) []domain.GenderCount {
	out := make([]domain.GenderCount, 0)
	index := make(map[string]int)

	for _, emp := range employees {
		i, ok := index[emp.Gender]
		if !ok {
			i = len(out)
			index[emp.Gender] = i
			out = append(out, domain.GenderCount{Gender: emp.Gender})
		}
		out[i].Count++
	}
	return out
}

// TopPerformers returns the n highest performance scores. Equal scores keep input order.
func TopPerformers(employees []domain.Employee, n int) []domain.Employee {
	if n <= 0 || len(employees) == 0 {
		return []domain.Employee{}
	}

	ranked := slices.Clone(employees)
	slices.SortStableFunc(ranked, func(a, b domain.Employee) int {
		switch {
		case a.PerformanceScore > b.PerformanceScore:
			return -1
		case a.PerformanceScore < b.PerformanceScore:
			return 1
		default:
			return 0
		}
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n:n]
}
