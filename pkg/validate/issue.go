package validate

// Issue is the serializable form of a FieldError, used by the HTTP and MCP
// adapters and the CLI's JSON output.
type Issue struct {
	Kind     ErrorKind `json:"kind"`
	Field    string    `json:"field,omitempty"`
	Path     string    `json:"path"`
	Expected string    `json:"expected,omitempty"`
	Message  string    `json:"message"`
}

// Issues flattens the failures carried by err into issues. It returns nil
// when err carries no field errors.
func Issues(err error) []Issue {
	errs := Errors(err)
	if len(errs) == 0 {
		return nil
	}
	out := make([]Issue, len(errs))
	for i, fe := range errs {
		out[i] = Issue{
			Kind:     fe.Kind,
			Field:    fe.Field,
			Path:     fe.Path,
			Expected: fe.Expected,
			Message:  fe.Error(),
		}
	}
	return out
}
