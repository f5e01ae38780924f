package diagnostic

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Every typed error below matches exactly one.
var (
	ErrMissingContextKey   = errors.New("missing context key")
	ErrInvalidContextValue = errors.New("invalid context value")
	ErrDuplicateClassName  = errors.New("duplicate class name")
	ErrUndefinedSample     = errors.New("undefined sample class")
	ErrUnknownModel        = errors.New("unknown color model")
	ErrWriteFailure        = errors.New("write failure")
)

// Diagnostic codes used by the plan checks.
const (
	CodeDuplicateClass  = "duplicate-class"
	CodeUndefinedSample = "undefined-sample"
	CodeUnknownModel    = "unknown-model"
	CodeRepeatedModel   = "repeated-model"
	CodeNotTiny         = "not-tiny"
)

// MissingContextKeyError reports a template placeholder with no context entry.
type MissingContextKeyError struct {
	Template string
	Class    string
	Key      string
}

func (e *MissingContextKeyError) Error() string {
	if e.Class == "" {
		return fmt.Sprintf("template %s: context has no %q key", e.Template, e.Key)
	}

	return fmt.Sprintf("template %s, class %s: context has no %q key", e.Template, e.Class, e.Key)
}

func (e *MissingContextKeyError) Is(target error) bool { return target == ErrMissingContextKey }

// InvalidContextValueError reports a context entry of the wrong type or shape.
type InvalidContextValueError struct {
	Template string
	Class    string
	Key      string
	Reason   string
}

func (e *InvalidContextValueError) Error() string {
	return fmt.Sprintf("template %s, class %s: context key %q: %s", e.Template, e.Class, e.Key, e.Reason)
}

func (e *InvalidContextValueError) Is(target error) bool { return target == ErrInvalidContextValue }

// DuplicateClassNameError reports two contexts resolving to the same class.
type DuplicateClassNameError struct {
	Class string
	// Models names the color models of the colliding contexts.
	Models []string
}

func (e *DuplicateClassNameError) Error() string {
	return fmt.Sprintf("class %s is produced by more than one context (models %v)", e.Class, e.Models)
}

func (e *DuplicateClassNameError) Is(target error) bool { return target == ErrDuplicateClassName }

// UndefinedSampleError reports a Collection whose Entity class is not part of the run.
type UndefinedSampleError struct {
	Collection  string
	SampleClass string
}

func (e *UndefinedSampleError) Error() string {
	return fmt.Sprintf("collection %s references sample class %s, which is not generated in this run",
		e.Collection, e.SampleClass)
}

func (e *UndefinedSampleError) Is(target error) bool { return target == ErrUndefinedSample }

// UnknownModelError reports a model filter entry that names no known model.
type UnknownModelError struct {
	Model      string
	Known      []string
	Suggestion string
}

func (e *UnknownModelError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown color model %q, did you mean %q? (known: %v)", e.Model, e.Suggestion, e.Known)
	}

	return fmt.Sprintf("unknown color model %q (known: %v)", e.Model, e.Known)
}

func (e *UnknownModelError) Is(target error) bool { return target == ErrUnknownModel }

// WriteFailureError reports a filesystem error while emitting a file.
type WriteFailureError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteFailureError) Error() string {
	return fmt.Sprintf("writing %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *WriteFailureError) Unwrap() error { return e.Err }

func (e *WriteFailureError) Is(target error) bool { return target == ErrWriteFailure }
