// Package cerr provides a structured error type for the simulator: error
// codes, categories, and context, in place of bare fmt.Errorf/errors.New.
package cerr

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Code is a stable, sortable error code.
type Code string

const (
	// Trace input errors
	CodeTraceNotFound      Code = "TRACE_NOT_FOUND"
	CodeSchemaViolation    Code = "SCHEMA_VIOLATION"
	CodeEmptySequence      Code = "EMPTY_SEQUENCE"

	// Policy construction errors
	CodeInvalidCapacity  Code = "INVALID_CAPACITY"
	CodeInvalidThreshold Code = "INVALID_THRESHOLD"

	// Configuration errors
	CodeInvalidConfig Code = "INVALID_CONFIG"
	CodeConfigLoad    Code = "CONFIG_LOAD"
	CodeConfigSave    Code = "CONFIG_SAVE"

	// Internal errors
	CodeInternal Code = "INTERNAL_ERROR"
)

// Category groups related codes.
type Category string

const (
	CategoryTrace         Category = "trace"
	CategoryPolicy        Category = "policy"
	CategoryConfiguration Category = "configuration"
	CategoryInternal      Category = "internal"
)

// Error is a structured error carrying a code, category, and context.
type Error struct {
	Code     Code                   `json:"code"`
	Category Category               `json:"category"`
	Message  string                 `json:"message"`
	Details  map[string]interface{} `json:"details,omitempty"`
	Context  map[string]string      `json:"context,omitempty"`
	Cause    error                  `json:"-"`

	Component string    `json:"component"`
	Operation string    `json:"operation,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Stack     string    `json:"stack,omitempty"`
}

func (e *Error) Error() string {
	if e.Component != "" {
		if e.Operation != "" {
			return fmt.Sprintf("[%s:%s] %s: %s", e.Component, e.Operation, e.Code, e.Message)
		}
		return fmt.Sprintf("[%s] %s: %s", e.Component, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap supports errors.Is/errors.As against Cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is compares by Code, so errors.Is(err, cerr.New(cerr.CodeTraceNotFound, "")) matches regardless of message.
func (e *Error) Is(target error) bool {
	if other, ok := target.(*Error); ok {
		return e.Code == other.Code
	}
	return false
}

func (e *Error) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Code=%s", e.Code), fmt.Sprintf("Category=%s", e.Category), fmt.Sprintf("Message=%q", e.Message))
	if e.Component != "" {
		parts = append(parts, fmt.Sprintf("Component=%s", e.Component))
	}
	if e.Operation != "" {
		parts = append(parts, fmt.Sprintf("Operation=%s", e.Operation))
	}
	if len(e.Details) > 0 {
		details, _ := json.Marshal(e.Details)
		parts = append(parts, fmt.Sprintf("Details=%s", details))
	}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("Cause=%q", e.Cause.Error()))
	}
	return fmt.Sprintf("Error{%s}", strings.Join(parts, ", "))
}

// New creates an Error, deriving its category from the code.
func New(code Code, message string) *Error {
	return &Error{
		Code:      code,
		Category:  categoryOf(code),
		Message:   message,
		Timestamp: time.Now(),
	}
}

func categoryOf(code Code) Category {
	switch {
	case strings.HasPrefix(string(code), "TRACE_") || code == CodeSchemaViolation || code == CodeEmptySequence:
		return CategoryTrace
	case strings.HasPrefix(string(code), "INVALID_CAPACITY") || strings.HasPrefix(string(code), "INVALID_THRESHOLD"):
		return CategoryPolicy
	case strings.HasPrefix(string(code), "CONFIG_") || code == CodeInvalidConfig:
		return CategoryConfiguration
	default:
		return CategoryInternal
	}
}

// CaptureStack returns the current call stack, skipping frames from this file.
func CaptureStack(skip int) string {
	const depth = 10
	var pcs [depth]uintptr
	n := runtime.Callers(skip+2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var stack []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "cerr.go") {
			stack = append(stack, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}
	return strings.Join(stack, "\n")
}

func (e *Error) WithContext(key, value string) *Error {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func (e *Error) WithComponent(component string) *Error {
	e.Component = component
	return e
}

func (e *Error) WithOperation(operation string) *Error {
	e.Operation = operation
	return e
}

func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

func (e *Error) WithStack() *Error {
	e.Stack = CaptureStack(2)
	return e
}
