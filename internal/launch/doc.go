// Copyright 2026 The ay Authors
// SPDX-License-Identifier: MIT

/*
Package launch bootstraps an embedded scripting runtime
and hands control to a script module.

[Run] drives a [Runtime] through a fixed sequence:
open the standard libraries,
register extension libraries by name,
load the entry module
and call its entry function with the [Params] collected from the command line.
Any failure along the way is reported as an [*Error]
whose [Status] becomes the process exit code (see [ExitCode]).

The launcher itself knows nothing about what the entry module does.
*/
package launch
