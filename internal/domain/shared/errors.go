package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code,
// so errors.Is(err, ErrSourceUnavailable) matches wrapped instances.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError creates a domain error carrying the underlying cause
func WrapDomainError(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common domain errors
var (
	ErrNotFound     = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Invalid input provided")

	// ErrSourceUnavailable is returned when a ledger the report cannot do without fails to load
	ErrSourceUnavailable = NewDomainError("SOURCE_UNAVAILABLE", "Report source unavailable")
	// ErrPartialInventoryFailure is returned when an inventory category fails under the strict policy
	ErrPartialInventoryFailure = NewDomainError("PARTIAL_INVENTORY_FAILURE", "Inventory valuation incomplete")

	// ErrExportUnavailable is returned when PDF export is not configured
	ErrExportUnavailable = NewDomainError("EXPORT_UNAVAILABLE", "PDF export is not enabled")
	// ErrRenderTimeout is returned when a document could not be rendered in time
	ErrRenderTimeout = NewDomainError("RENDER_TIMEOUT", "Document rendering timed out")
)
