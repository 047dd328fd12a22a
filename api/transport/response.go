package transport

import "github.com/fastygo/peopledash/domain"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope wraps every JSON body the API returns. Error carries the message, Code the
// domain error code. RequestID echoes the X-Request-ID response header when one was set.
type Envelope struct {
	Status    string      `json:"status"`
	Code      string      `json:"code,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
}

// PageMeta describes a paged listing.
type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
}

func NewSuccess(data interface{}) Envelope {
	return Envelope{Status: StatusSuccess, Data: data}
}

// NewPage returns the records of one page with its paging metadata.
func NewPage(page domain.EmployeePage) Envelope {
	records := page.Records
	if records == nil {
		records = []domain.Employee{}
	}
	return Envelope{
		Status: StatusSuccess,
		Data:   records,
		Meta: PageMeta{
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalCount: page.TotalCount,
		},
	}
}

// NewError returns an error envelope. details, when non-nil, goes in Data.
func NewError(code, message string, details interface{}) Envelope {
	return Envelope{
		Status: StatusError,
		Code:   code,
		Error:  message,
		Data:   details,
	}
}

// WithRequestID stamps the envelope with the id the request was logged under.
func (e Envelope) WithRequestID(id string) Envelope {
	e.RequestID = id
	return e
}
