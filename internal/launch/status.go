// Copyright 2026 The ay Authors
// SPDX-License-Identifier: MIT

//go:generate go tool stringer -type=Status -linecomment -output=status_string.go

package launch

// Status is a failure code reported by the embedded runtime.
// The values match the thread status codes of the Lua C API,
// so they are stable across runtimes and usable as process exit codes.
type Status int

const (
	StatusOK           Status = 0 // ok
	StatusRuntimeError Status = 2 // runtime error
	StatusSyntaxError  Status = 3 // syntax error
	StatusMemoryError  Status = 4 // memory error
	StatusHandlerError Status = 5 // error in error handler
	StatusFileError    Status = 6 // file error
)
