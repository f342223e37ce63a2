// SPDX-License-Identifier: Apache-2.0

// Package errors defines the error codes shared by every zypher command.
package errors

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure.
type Code string

const (
	EInput             Code = "E_INPUT"
	EInvalidChoice     Code = "E_INVALID_CHOICE"
	EDirectoryExists   Code = "E_DIRECTORY_EXISTS"
	EWriteFailed       Code = "E_WRITE_FAILED"
	ECollision         Code = "E_COLLISION"
	EEntryPointMissing Code = "E_ENTRY_POINT_MISSING"
	EDocsToolMissing   Code = "E_DOCS_TOOL_MISSING"
	EToolMissing       Code = "E_TOOL_MISSING"
	EExternalProcess   Code = "E_EXTERNAL_PROCESS"
	ECancelled         Code = "E_CANCELLED"
	EInternal          Code = "E_INTERNAL"
)

// ZypherError is the error type returned by zypher packages.
type ZypherError struct {
	Code Code
	Msg  string
	// Path is the file or directory the failure is about, if any.
	Path string
	// ExitCode is the child exit status for EExternalProcess.
	ExitCode int
	Cause    error
}

func (e *ZypherError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *ZypherError) Unwrap() error {
	return e.Cause
}

// Is matches another *ZypherError with the same code, so sentinel-style
// comparisons like errors.Is(err, &ZypherError{Code: EInput}) work.
func (e *ZypherError) Is(target error) bool {
	var t *ZypherError
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// New creates an error with the given code and message.
func New(code Code, msg string) error {
	return &ZypherError{Code: code, Msg: msg}
}

// Newf is New with fmt formatting.
func Newf(code Code, format string, args ...any) error {
	return &ZypherError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an error with the given code wrapping cause.
func Wrap(code Code, msg string, cause error) error {
	return &ZypherError{Code: code, Msg: msg, Cause: cause}
}

// WithPath creates an error about a specific path.
func WithPath(code Code, path, msg string, cause error) error {
	return &ZypherError{Code: code, Msg: msg, Path: path, Cause: cause}
}

// ProcessFailed reports a delegated tool that exited non-zero.
func ProcessFailed(tool string, exitCode int) error {
	return &ZypherError{
		Code:     EExternalProcess,
		Msg:      fmt.Sprintf("%s exited with status %d", tool, exitCode),
		ExitCode: exitCode,
	}
}

// GetCode extracts the code from err, or "" if err is not a ZypherError.
func GetCode(err error) Code {
	var ze *ZypherError
	if errors.As(err, &ze) {
		return ze.Code
	}
	return ""
}

// HasCode reports whether err carries code.
func HasCode(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// ExitCodeInterrupted is the status used when the user interrupts a command
const ExitCodeInterrupted = 130

// ExitCode maps err to a process exit status. A failed child process
// propagates its own status, an interrupt exits 130, everything else exits 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ze *ZypherError
	if errors.As(err, &ze) {
		switch {
		case ze.Code == EExternalProcess && ze.ExitCode > 0:
			return ze.ExitCode
		case ze.Code == ECancelled:
			return ExitCodeInterrupted
		}
	}
	return 1
}
