package domain

// DepartmentStats summarises the employees of one department.
type DepartmentStats struct {
	Department         string  `json:"department"`
	EmployeeCount      int     `json:"employeeCount"`
	AverageSalary      int64   `json:"averageSalary"`
	AveragePerformance float64 `json:"averagePerformance"`
}

// RangeCount is one bucket of a salary, age or tenure histogram.
type RangeCount struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// GenderCount is one entry of the gender breakdown.
type GenderCount struct {
	Gender string `json:"gender"`
	Count  int    `json:"count"`
}

// EmployeePage is a single page of a filtered employee listing.
type EmployeePage struct {
	Records    []Employee `json:"records"`
	TotalCount int        `json:"totalCount"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
}
