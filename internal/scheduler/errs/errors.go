// Package errs carries the core engine's validation failure type.
//
// It deliberately does not know about HTTP status codes: the core is
// oblivious to transport concerns, and translation into pkg/errors.Error
// happens only at the HTTP/CLI boundary.
package errs

import "fmt"

// ValidationError is the tagged "Err" variant of the core's Ok/Err result.
// Solve never panics or returns a bare Go error for a structural input
// problem; it returns a *ValidationError alongside a stable Output.
type ValidationError struct {
	Code    string
	Message string
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds a ValidationError with optional detail fields.
func New(code, message string, details map[string]any) *ValidationError {
	return &ValidationError{Code: code, Message: message, Details: details}
}

// Known error codes, stable strings surfaced in Output.Error.Code.
const (
	CodeMissingShiftCatalog       = "missing_shift_catalog"
	CodeInvalidShiftCatalog       = "invalid_shift_catalog"
	CodeInvalidShiftCatalogEntry  = "invalid_shift_catalog_entry"
	CodeInvalidShiftCatalogCode   = "invalid_shift_catalog_code"
	CodeDuplicateShiftCode        = "duplicate_shift_code"
	CodeInvalidShiftCatalogHours  = "invalid_shift_catalog_hours"
	CodeShiftDefinitionMismatch   = "shift_definition_mismatch"
	CodeUnknownShiftCode          = "unknown_shift_code"
	CodeInvalidDays               = "invalid_days"
	CodeInvalidWeekdayOfDay1      = "invalid_weekday_of_day1"
	CodeInvalidDayType            = "invalid_day_type"
	CodeInvalidDayTypeLength      = "invalid_day_type_length"
	CodeInvalidDayTypeValue       = "invalid_day_type_value"
	CodeMissingDayType            = "missing_day_type"
	CodeUnknownDayType            = "unknown_day_type"
	CodeInvalidNeedTemplate       = "invalid_need_template"
	CodeInvalidNeedTemplateKey    = "invalid_need_template_key"
	CodeInvalidNeedTemplateSlots  = "invalid_need_template_slots"
	CodeTotalNeedZero             = "total_need_zero"
	CodeNoAvailability            = "no_availability"
	CodeNoAssignmentVariables     = "no_assignment_variables"
)
