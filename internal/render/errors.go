package render

import "fmt"

// CompileError reports a syntax problem in the template text. No engine is
// produced when it is returned.
type CompileError struct {
	Template string
	Cause    error
}

func (e *CompileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("compiling template %q: %v", e.Template, e.Cause)
	}
	return fmt.Sprintf("compiling template %q", e.Template)
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}

// RenderError reports a failure while executing the compiled template, such as
// a reference to a field the record does not have.
type RenderError struct {
	Template string
	Cause    error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rendering template %q: %v", e.Template, e.Cause)
	}
	return fmt.Sprintf("rendering template %q", e.Template)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
