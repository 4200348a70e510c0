// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package batch runs an ordered sequence of steps against a single
// database transaction, the minimal "sequence of commands under one
// transaction" spec.md §1 lists as out of scope for the shard-key codec
// itself but names as part of the surrounding system. It sequences only:
// no retries, no cross-shard connection pooling (that's database-provider
// I/O, still out of scope per spec.md's Non-goals).
package batch

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dataforge/shardkey/internal/log"
)

// Step is one unit of work run inside a transaction. Name identifies it in
// logs and in the error returned on failure; Run does the actual work.
type Step struct {
	Name string
	Run  func(ctx context.Context, tx *sql.Tx) error
}

// Options configures a Runner. The zero value is valid: Logger defaults to
// an error-only stdlib logger, matching the teacher's Options-defaulting
// convention.
type Options struct {
	Logger log.Logger
}

// Runner executes Steps against a *sql.DB, one transaction per Run call.
type Runner struct {
	db     *sql.DB
	logger *log.Helper
}

// New constructs a Runner over db. A nil opts is equivalent to &Options{}.
func New(db *sql.DB, opts *Options) *Runner {
	if opts == nil {
		opts = &Options{}
	}
	return &Runner{db: db, logger: log.NewHelper(opts.Logger)}
}

// Run begins a transaction, executes steps in order, and commits if every
// step succeeds. The first step to return an error aborts the remaining
// steps and rolls back; the returned error names which step failed and
// wraps the step's own error.
func (r *Runner) Run(ctx context.Context, steps []Step) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("batch: beginning transaction: %w", err)
	}

	for i, step := range steps {
		r.logger.Debugw("msg", "running step", "index", i, "name", step.Name)
		if err := step.Run(ctx, tx); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Errorw("msg", "rollback failed", "name", step.Name, "rollback_error", rbErr)
			}
			return fmt.Errorf("batch: step %q (index %d): %w", step.Name, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("batch: committing transaction: %w", err)
	}
	r.logger.Infow("msg", "batch committed", "steps", len(steps))
	return nil
}
