package fault

import "fmt"

type Code string

const (
	UnknownCode              Code = "unknown"
	UnrecognizedFieldCode    Code = "unrecognized_field"
	DeprecatedFieldCode      Code = "deprecated_field"
	MalformedValueCode       Code = "malformed_value"
	MissingRequiredFieldCode Code = "missing_required_field"
	IncompletePointCode      Code = "incomplete_point"
	NestedQueryCode          Code = "nested_query"
)

// ClauseMetadata identifies where inside a query document a fault happened.
// Field may be empty when the fault concerns the clause as a whole.
type ClauseMetadata struct {
	Clause string
	Field  string
}

type Fault struct {
	code     Code
	message  string
	metadata any
	original error
}

func New(code Code, message string) Fault {
	return Fault{
		code:    code,
		message: message,
	}
}

func (f Fault) WithMetadata(metadata any) Fault {
	e := f
	e.metadata = metadata
	return e
}

func (f Fault) WithOriginal(original error) Fault {
	e := f
	e.original = original
	return e
}

func (f Fault) Code() Code {
	return f.code
}

func (f Fault) Message() string {
	return f.message
}

func (f Fault) Metadata() any {
	return f.metadata
}

func (f Fault) Original() error {
	return f.original
}

func (f Fault) Unwrap() error {
	return f.original
}

func (f Fault) Error() string {
	if f.original != nil {
		return fmt.Sprintf("%s: %v", f.message, f.original)
	}
	return f.message
}
