package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyResultSet = errors.New("no resumes found to archive")
)

// UnsupportedFormatError means an upload has no conversion policy. Operators
// fix the source file and rerun.
type UnsupportedFormatError struct {
	Name     string
	MimeType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported MIME type %s: %q", e.MimeType, e.Name)
}

// ConversionError wraps a failed export on a path that has no fallback.
type ConversionError struct {
	Name   string
	Target string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("unable to convert %q to %s: %v", e.Name, e.Target, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// IncompleteOptOutError lists opt-out emails that matched no response.
type IncompleteOptOutError struct {
	Emails []string
}

func (e *IncompleteOptOutError) Error() string {
	return "unprocessed opt-out emails found: " + strings.Join(e.Emails, ", ")
}
