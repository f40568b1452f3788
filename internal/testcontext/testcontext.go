// Copyright 2026 The ay Authors
// SPDX-License-Identifier: MIT

// Package testcontext provides contexts for tests.
package testcontext

import (
	"context"
	"testing"
	"time"

	"zombiezen.com/go/log/testlog"
)

// New returns a context that routes log output to tb,
// is canceled when the test finishes,
// and obeys the test's deadline if present.
func New(tb testing.TB) (context.Context, context.CancelFunc) {
	ctx := tb.Context()
	cancel := context.CancelFunc(func() {})
	if t, ok := tb.(interface{ Deadline() (deadline time.Time, ok bool) }); ok {
		if d, ok := t.Deadline(); ok {
			ctx, cancel = context.WithDeadline(ctx, d)
		}
	}
	ctx = testlog.WithTB(ctx, tb)
	return ctx, cancel
}
