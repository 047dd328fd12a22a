package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmployeeFilter_Normalize(t *testing.T) {
	tests := []struct {
		name   string
		in     EmployeeFilter
		want   EmployeeFilter
		offset int
	}{
		{name: "defaults", in: EmployeeFilter{}, want: EmployeeFilter{Page: 1, PageSize: DefaultPageSize}, offset: 0},
		{name: "clamped page size", in: EmployeeFilter{Page: 3, PageSize: 500}, want: EmployeeFilter{Page: 3, PageSize: MaxPageSize}, offset: 200},
		{name: "negative page", in: EmployeeFilter{Page: -2, PageSize: 10, Search: "eng"}, want: EmployeeFilter{Page: 1, PageSize: 10, Search: "eng"}, offset: 0},
		{name: "second page", in: EmployeeFilter{Page: 2, PageSize: 25}, want: EmployeeFilter{Page: 2, PageSize: 25}, offset: 25},
		{
			name:   "exact filters trimmed",
			in:     EmployeeFilter{Department: " Sales ", Position: "Lead\t", Gender: "Female"},
			want:   EmployeeFilter{Page: 1, PageSize: DefaultPageSize, Department: "Sales", Position: "Lead", Gender: "Female"},
			offset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
			assert.Equal(t, tt.offset, tt.in.Offset())
		})
	}
}
