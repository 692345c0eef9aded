package dataset

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrMissingSource   = NewDomainError("MISSING_SOURCE", "Raw source table not found")
	ErrEmptyTable      = NewDomainError("EMPTY_TABLE", "Table contains no rows")
	ErrEmptyPartition  = NewDomainError("EMPTY_PARTITION", "Partition contains no rows")
	ErrSchemaMismatch  = NewDomainError("SCHEMA_MISMATCH", "Feature columns do not match the trained schema")
	ErrUnknownCategory = NewDomainError("UNKNOWN_CATEGORY", "Category label was not seen during training")
	ErrArtifactCorrupt = NewDomainError("ARTIFACT_CORRUPT", "Model artifact is missing or unreadable")
	ErrInvalidInput    = NewDomainError("INVALID_INPUT", "Invalid input provided")
)
