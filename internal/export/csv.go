// Package export renders employee collections for download.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/fastygo/peopledash/domain"
)

// Filename is the attachment name used when serving an export.
const Filename = "employees.csv"

// Header lists the exported columns in order.
var Header = []string{
	"id", "first_name", "last_name", "email", "department", "position",
	"salary", "hire_date", "performance_score", "age", "gender", "location",
}

// WriteCSV writes a header row followed by one row per employee. Fields containing commas,
// quotes or newlines are quoted with inner quotes doubled. An empty collection is rejected.
func WriteCSV(w io.Writer, employees []domain.Employee) error {
	if len(employees) == 0 {
		return domain.ErrNothingToExport
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, e := range employees {
		if err := cw.Write(record(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(e domain.Employee) []string {
	return []string{
		e.ID,
		e.FirstName,
		e.LastName,
		e.Email,
		e.Department,
		e.Position,
		strconv.Itoa(e.Salary),
		e.HireDate,
		strconv.FormatFloat(e.PerformanceScore, 'f', 1, 64),
		strconv.Itoa(e.Age),
		e.Gender,
		e.Location,
	}
}
