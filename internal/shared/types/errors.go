package types

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig = errors.New("invalid report configuration")
	ErrNoInputFile   = errors.New("no input file given. Use --input or set INPUT_CSV_PATH")
)

// Estágios do pipeline, usados em ServiceProcessingError e no resumo da execução.
const (
	StageAnalyze = "analyze"
	StageSelect  = "select"
	StageChart   = "chart"
	StageRender  = "render"
	StageWrite   = "write"
	StagePublish = "publish"
)

// MalformedInputError is returned when the input header (or the CSV framing
// itself) cannot be read. It aborts the whole run.
type MalformedInputError struct {
	Source string
	Line   int
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	msg := fmt.Sprintf("malformed input %s", e.Source)
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
	}
	msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// ServiceProcessingError wraps any failure while building the report of one service.
type ServiceProcessingError struct {
	Service string
	Stage   string
	Err     error
}

func (e *ServiceProcessingError) Error() string {
	return fmt.Sprintf("service %q failed at %s: %v", e.Service, e.Stage, e.Err)
}

func (e *ServiceProcessingError) Unwrap() error {
	return e.Err
}

// WriteError is returned when a rendered report cannot be persisted or published.
type WriteError struct {
	Service string
	Path    string
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("error writing report for %q to %s: %v", e.Service, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
