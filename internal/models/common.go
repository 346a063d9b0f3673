// internal/models/common.go
package models

// Enums
type DateStatus string

const (
	DateStatusNew DateStatus = "new"
	DateStatusAvg DateStatus = "avg"
	DateStatusOld DateStatus = "old"
)

type SearchField string

const (
	SearchFieldName     SearchField = "name"
	SearchFieldCategory SearchField = "category"
	SearchFieldDetails  SearchField = "details"
)

func (f SearchField) Valid() bool {
	switch f {
	case SearchFieldName, SearchFieldCategory, SearchFieldDetails:
		return true
	}
	return false
}

type AuditAction string

const (
	AuditActionSave     AuditAction = "save"
	AuditActionDelete   AuditAction = "delete"
	AuditActionImport   AuditAction = "import"
	AuditActionDemo     AuditAction = "load_demo"
	AuditActionClearAll AuditAction = "clear_all"
)

// StringPtr is a convenience for building optional text fields.
func StringPtr(s string) *string {
	return &s
}

// Float64Ptr is a convenience for building optional prices.
func Float64Ptr(f float64) *float64 {
	return &f
}
