package analytics

import (
	"math"
	"time"

	"github.com/fastygo/peopledash/domain"
)

// daysPerYear is the year length tenure is measured in.
const daysPerYear = 365

// Bucket is a labelled numeric range. Min is always inclusive; Max is inclusive unless
// UpperExclusive is set. An unbounded bucket uses math.Inf(1) as Max.
type Bucket struct {
	Label          string
	Min            float64
	Max            float64
	UpperExclusive bool
}

// Contains reports whether v falls inside the bucket.
func (b Bucket) Contains(v float64) bool {
	if v < b.Min {
		return false
	}
	if b.UpperExclusive {
		return v < b.Max
	}
	return v <= b.Max
}

// SalaryBuckets are the salary histogram ranges. The last range has no upper bound.
var SalaryBuckets = []Bucket{
	{Label: "$0-$50K", Min: 0, Max: 50000},
	{Label: "$50K-$75K", Min: 50001, Max: 75000},
	{Label: "$75K-$100K", Min: 75001, Max: 100000},
	{Label: "$100K-$150K", Min: 100001, Max: 150000},
	{Label: "$150K+", Min: 150001, Max: math.Inf(1)},
}

// AgeBuckets are the age histogram ranges. "60+" is unbounded above.
var AgeBuckets = []Bucket{
	{Label: "20-29", Min: 20, Max: 29},
	{Label: "30-39", Min: 30, Max: 39},
	{Label: "40-49", Min: 40, Max: 49},
	{Label: "50-59", Min: 50, Max: 59},
	{Label: "60+", Min: 60, Max: math.Inf(1)},
}

// TenureBuckets are measured in 365-day years with exclusive upper bounds.
var TenureBuckets = []Bucket{
	{Label: "<1 Year", Min: 0, Max: 1, UpperExclusive: true},
	{Label: "1-2 Years", Min: 1, Max: 2, UpperExclusive: true},
	{Label: "2-5 Years", Min: 2, Max: 5, UpperExclusive: true},
	{Label: "5-10 Years", Min: 5, Max: 10, UpperExclusive: true},
	{Label: "10+ Years", Min: 10, Max: 100, UpperExclusive: true},
}

// KeyFunc extracts the value an employee is bucketed by. ok=false leaves the employee out.
type KeyFunc func(domain.Employee) (value float64, ok bool)

// SalaryKey buckets by salary.
func SalaryKey(e domain.Employee) (float64, bool) {
	return float64(e.Salary), true
}

// AgeKey buckets by age.
func AgeKey(e domain.Employee) (float64, bool) {
	return float64(e.Age), true
}

// TenureKey buckets by fractional years between the hire date and now.
// Employees with an unparsable hire date are skipped.
func TenureKey(now time.Time) KeyFunc {
	return func(e domain.Employee) (float64, bool) {
		hired, err := e.HiredAt()
		if err != nil {
			return 0, false
		}
		return TenureYears(hired, now), true
	}
}

// TenureYears converts the elapsed time between hired and now into 365-day years.
func TenureYears(hired, now time.Time) float64 {
	return now.Sub(hired).Hours() / (24 * daysPerYear)
}
