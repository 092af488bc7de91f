// Package errors provides the error taxonomy and warning hooks used across insurecost.
//
// Every failure the estimator can report falls into one of three kinds, each with a
// sentinel that callers test with Is:
//
//   - ErrInvalidInput: a malformed or out-of-domain field value
//   - ErrInsufficientData: fitting attempted without any rows
//   - ErrDimensionMismatch: a feature width that disagrees with the model or the matrix
//
// All constructors attach a stack trace through cockroachdb/errors, and the structured
// types implement zerolog.LogObjectMarshaler so they can be embedded in log events.
package errors

import (
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// ===========================================================================
//
//	Warnings
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = defaultWarningHandler
)

func defaultWarningHandler(w error) {
	event := zlog.Warn()
	if m, ok := w.(zerolog.LogObjectMarshaler); ok {
		event = event.EmbedObject(m)
	}
	event.Msg(w.Error())
}

// SetWarningHandler replaces the process-wide warning handler. A nil handler silences
// warnings. The previous handler is returned so tests can restore it.
//
// Example:
//
//	prev := errors.SetWarningHandler(func(w error) {})
//	defer errors.SetWarningHandler(prev)
func SetWarningHandler(handler func(w error)) func(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	prev := warningHandler
	warningHandler = handler
	return prev
}

// Warn reports a non-fatal condition through the installed handler.
func Warn(w error) {
	warningMutex.Lock()
	handler := warningHandler
	warningMutex.Unlock()

	if handler != nil {
		handler(w)
	}
}

// RankDeficiencyWarning is raised when the design matrix has linearly dependent columns
// and the estimator falls back to the minimum-norm solution.
type RankDeficiencyWarning struct {
	Op      string
	Rank    int
	Columns int
}

func (w *RankDeficiencyWarning) Error() string {
	return fmt.Sprintf("%s: design matrix is rank deficient (rank %d of %d columns); using minimum-norm solution",
		w.Op, w.Rank, w.Columns)
}

// MarshalZerologObject adds the warning fields to a zerolog event.
func (w *RankDeficiencyWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Int("rank", w.Rank).
		Int("columns", w.Columns).
		Str("type", "RankDeficiencyWarning")
}

// NewRankDeficiencyWarning creates a RankDeficiencyWarning.
func NewRankDeficiencyWarning(op string, rank, columns int) *RankDeficiencyWarning {
	return &RankDeficiencyWarning{Op: op, Rank: rank, Columns: columns}
}

// ===========================================================================
//
//	Structured errors
//
// ===========================================================================

// NotFittedError is returned when a nil or zero model is used for prediction.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("insurecost: %s: model is not fitted. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError reports a width or length that disagrees with what the operation
// expected. It matches ErrDimensionMismatch.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("insurecost: %s: dimension mismatch on axis %d (%s). Expected %d, got %d",
		e.Op, e.Axis, e.axisName(), e.Expected, e.Got)
}

func (e *DimensionError) axisName() string {
	if e.Axis == 0 {
		return "rows"
	}
	return "features"
}

// Unwrap exposes the sentinel so Is(err, ErrDimensionMismatch) holds.
func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", e.axisName()).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError reports a field value outside its domain. It matches ErrInvalidInput.
type ValidationError struct {
	Op        string
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("insurecost: %s: invalid %s: %s (got: %v)", e.Op, e.ParamName, e.Reason, e.Value)
}

// Unwrap exposes the sentinel so Is(err, ErrInvalidInput) holds.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewInvalidInputError creates a ValidationError with a stack trace.
func NewInvalidInputError(op, param string, value interface{}, reason string) error {
	err := &ValidationError{Op: op, ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ModelError is a general estimator failure that wraps an underlying cause.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("insurecost: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("insurecost: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *ModelError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("kind", e.Kind).
		Str("type", "ModelError")
	if e.Err != nil {
		event.Str("cause", e.Err.Error())
	}
}

// NewModelError creates a ModelError with a stack trace.
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// NewInsufficientDataError reports an operation that needs at least one row.
func NewInsufficientDataError(op string) error {
	return NewModelError(op, "no rows supplied", ErrInsufficientData)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates an error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// Mark makes Is(err, reference) hold while keeping err's own chain intact.
func Mark(err error, reference error) error {
	return errors.Mark(err, reference)
}

// WithStack attaches a stack trace to err.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Sentinels
//
// ===========================================================================

var (
	// ErrInvalidInput marks malformed or out-of-domain field values.
	ErrInvalidInput = New("invalid input")

	// ErrInsufficientData marks fitting attempted with an empty dataset.
	ErrInsufficientData = New("insufficient data")

	// ErrDimensionMismatch marks inconsistent feature widths or row counts.
	ErrDimensionMismatch = New("dimension mismatch")
)
