package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fastygo/peopledash/domain"
	"github.com/fastygo/peopledash/repository"
)

var employeeColumns = []string{
	"id", "first_name", "last_name", "email", "department", "position",
	"salary", "hire_date", "performance_score", "age", "gender", "location",
}

const employeeSelect = `
	SELECT id::text, first_name, last_name, email, department, position,
		salary, to_char(hire_date, 'YYYY-MM-DD'), performance_score::float8, age, gender, location
	FROM employees
`

// employeeFilter takes the search pattern as $1 and the exact department, position and
// gender as $2-$4. An empty exact value disables that condition.
const employeeFilter = `
	WHERE (first_name ILIKE $1 ESCAPE '\'
			OR last_name ILIKE $1 ESCAPE '\'
			OR position ILIKE $1 ESCAPE '\'
			OR department ILIKE $1 ESCAPE '\')
		AND ($2::text = '' OR department = $2)
		AND ($3::text = '' OR position = $3)
		AND ($4::text = '' OR gender = $4)
`

type employeeRepository struct {
	db DB
}

// NewEmployeeRepository instantiates a Postgres-backed employee repository.
func NewEmployeeRepository(db DB) repository.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) List(ctx context.Context, filter repository.EmployeeFilter) ([]domain.Employee, int, error) {
	filter = filter.Normalize()
	args := []any{containsPattern(filter.Search), filter.Department, filter.Position, filter.Gender}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees`+employeeFilter, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := employeeSelect + employeeFilter + `
	ORDER BY created_at DESC, seq DESC
	LIMIT $5 OFFSET $6
	`
	rows, err := r.db.Query(ctx, query, append(args, filter.PageSize, filter.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	employees, err := collectEmployees(rows)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (r *employeeRepository) All(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.db.Query(ctx, employeeSelect+`ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

func (r *employeeRepository) Get(ctx context.Context, id string) (domain.Employee, error) {
	e, err := scanEmployee(r.db.QueryRow(ctx, employeeSelect+`WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Employee{}, domain.ErrEmployeeNotFound
		}
		return domain.Employee{}, classify(err, "invalid employee id")
	}
	return e, nil
}

func (r *employeeRepository) Insert(ctx context.Context, employees []domain.Employee) (int, error) {
	if len(employees) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(employees))
	for _, e := range employees {
		hired, err := e.HiredAt()
		if err != nil {
			return 0, domain.WrapError(domain.ErrCodeInvalid, fmt.Sprintf("employee %s: hire date", e.ID), err)
		}
		rows = append(rows, []any{
			e.ID, e.FirstName, e.LastName, e.Email, e.Department, e.Position,
			e.Salary, hired, e.PerformanceScore, e.Age, e.Gender, e.Location,
		})
	}

	n, err := r.db.CopyFrom(ctx, pgx.Identifier{"employees"}, employeeColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, classify(err, "employees rejected by store")
	}
	return int(n), nil
}

func (r *employeeRepository) Update(ctx context.Context, e domain.Employee) error {
	hired, err := e.HiredAt()
	if err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, fmt.Sprintf("employee %s: hire date", e.ID), err)
	}

	const query = `
	UPDATE employees
	SET first_name = $2, last_name = $3, email = $4, department = $5, position = $6,
		salary = $7, hire_date = $8, performance_score = $9, age = $10, gender = $11, location = $12
	WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		e.ID, e.FirstName, e.LastName, e.Email, e.Department, e.Position,
		e.Salary, hired, e.PerformanceScore, e.Age, e.Gender, e.Location,
	)
	if err != nil {
		return classify(err, "employee rejected by store")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return classify(err, "invalid employee id")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) DeleteAll(ctx context.Context) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func collectEmployees(rows pgx.Rows) ([]domain.Employee, error) {
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func scanEmployee(row interface {
	Scan(dest ...interface{}) error
}) (domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(
		&e.ID,
		&e.FirstName,
		&e.LastName,
		&e.Email,
		&e.Department,
		&e.Position,
		&e.Salary,
		&e.HireDate,
		&e.PerformanceScore,
		&e.Age,
		&e.Gender,
		&e.Location,
	)
	return e, err
}
