package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of hire dates.
const DateLayout = "2006-01-02"

const (
	MinSalary = 30000
	MaxSalary = 250000

	MinAge = 22
	MaxAge = 65

	MinPerformance = 1.0
	MaxPerformance = 5.0

	// MaxTenureYears bounds how far in the past a generated hire date may lie.
	MaxTenureYears = 10
)

var (
	Departments = []string{"Engineering", "Marketing", "Sales", "HR", "Finance", "Product", "Operations"}
	Positions   = []string{"Intern", "Junior", "Mid-Level", "Senior", "Lead", "Manager", "Director", "VP", "C-Level"}
	Locations   = []string{"Remote", "New York", "San Francisco", "London", "Berlin", "Tokyo", "Singapore"}
	Genders     = []string{"Male", "Female", "Non-Binary"}
)

// Employee is a synthetic staff record. Values are treated as immutable once created.
type Employee struct {
	ID               string  `json:"id"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Email            string  `json:"email"`
	Department       string  `json:"department"`
	Position         string  `json:"position"`
	Salary           int     `json:"salary"`
	HireDate         string  `json:"hireDate"`
	PerformanceScore float64 `json:"performanceScore"`
	Age              int     `json:"age"`
	Gender           string  `json:"gender"`
	Location         string  `json:"location"`
}

// HiredAt parses HireDate as a UTC calendar date.
func (e Employee) HiredAt() (time.Time, error) {
	return time.ParseInLocation(DateLayout, e.HireDate, time.UTC)
}

// Validate checks every field against the ranges and enumerations records are generated from.
func (e Employee) Validate() error {
	switch {
	case strings.TrimSpace(e.ID) == "":
		return invalidField("id", "must be set")
	case strings.TrimSpace(e.FirstName) == "":
		return invalidField("firstName", "must be set")
	case strings.TrimSpace(e.LastName) == "":
		return invalidField("lastName", "must be set")
	case !slices.Contains(Departments, e.Department):
		return invalidField("department", fmt.Sprintf("unknown value %q", e.Department))
	case !slices.Contains(Positions, e.Position):
		return invalidField("position", fmt.Sprintf("unknown value %q", e.Position))
	case !slices.Contains(Locations, e.Location):
		return invalidField("location", fmt.Sprintf("unknown value %q", e.Location))
	case !slices.Contains(Genders, e.Gender):
		return invalidField("gender", fmt.Sprintf("unknown value %q", e.Gender))
	case e.Salary < MinSalary || e.Salary > MaxSalary:
		return invalidField("salary", fmt.Sprintf("%d out of range", e.Salary))
	case e.Age < MinAge || e.Age > MaxAge:
		return invalidField("age", fmt.Sprintf("%d out of range", e.Age))
	case e.PerformanceScore < MinPerformance || e.PerformanceScore > MaxPerformance:
		return invalidField("performanceScore", fmt.Sprintf("%.1f out of range", e.PerformanceScore))
	}
	if _, err := e.HiredAt(); err != nil {
		return WrapError(ErrCodeInvalid, "invalid employee: hireDate", err)
	}
	return nil
}

// EmailFor derives the address used for a generated employee.
func EmailFor(firstName, lastName string) string {
	clean := strings.NewReplacer(" ", "", "'", "", "\t", "")
	return strings.ToLower(clean.Replace(firstName) + "." + clean.Replace(lastName) + "@example.com")
}

func invalidField(field, reason string) *Error {
	return NewError(ErrCodeInvalid, fmt.Sprintf("invalid employee: %s %s", field, reason))
}
