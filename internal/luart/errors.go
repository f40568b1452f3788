// Copyright 2026 The ay Authors
// SPDX-License-Identifier: MIT

package luart

import (
	"errors"

	"github.com/ay-lang/ay/internal/launch"
	lua "github.com/yuin/gopher-lua"
)

// convertError converts an error from gopher-lua
// into a [*launch.Error] with the matching status.
func convertError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *lua.ApiError
	if !errors.As(err, &apiErr) {
		return launch.NewError(launch.StatusRuntimeError, err)
	}
	return launch.NewError(apiErrorStatus(apiErr.Type), err)
}

func apiErrorStatus(typ lua.ApiErrorType) launch.Status {
	switch typ {
	case lua.ApiErrorSyntax:
		return launch.StatusSyntaxError
	case lua.ApiErrorFile:
		return launch.StatusFileError
	case lua.ApiErrorError:
		return launch.StatusHandlerError
	default:
		// ApiErrorRun and ApiErrorPanic.
		return launch.StatusRuntimeError
	}
}
