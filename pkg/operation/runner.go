// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/extn/pkg/plan"
	"github.com/walteh/extn/pkg/selector"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options configures a Runner
type Options struct {
	// Selector resolves tokens into files; defaults to the host filesystem
	Selector *selector.Selector
	// FS receives the renames; defaults to the host filesystem
	FS plan.Filesystem
	// Observer is told about every applied rename
	Observer plan.Observer
	// SkipPreflight applies the plan without checking it for collisions first
	SkipPreflight bool
}

// 🏃 Runner executes operations
type Runner struct {
	selector      *selector.Selector
	fs            plan.Filesystem
	observer      plan.Observer
	skipPreflight bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(opts Options) *Runner {
	sel := opts.Selector
	if sel == nil {
		sel = selector.New(nil)
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = plan.OS()
	}
	return &Runner{
		selector:      sel,
		fs:            fsys,
		observer:      opts.Observer,
		skipPreflight: opts.SkipPreflight,
	}
}

// 📋 Plan selects the files named by tokens and computes their renames
// without touching the filesystem.
func (r *Runner) Plan(ctx context.Context, op Operation, tokens []string) (*plan.Plan, error) {
	files, err := r.selector.Select(ctx, op.Candidates(tokens))
	if err != nil {
		return nil, errors.Errorf("selecting files: %w", err)
	}

	p := plan.Build(op, files)

	zerolog.Ctx(ctx).Debug().
		Str("operation", op.Name()).
		Int("selected", len(files)).
		Int("renames", p.Len()).
		Msg("planned renames")

	if !r.skipPreflight {
		if err := p.Preflight(r.fs); err != nil {
			return nil, errors.Errorf("validating plan: %w", err)
		}
	}

	return p, nil
}

// 🏃 Run plans op over tokens and applies the result
func (r *Runner) Run(ctx context.Context, op Operation, tokens []string) error {
	p, err := r.Plan(ctx, op, tokens)
	if err != nil {
		return err
	}

	if p.Empty() {
		zerolog.Ctx(ctx).Debug().Str("operation", op.Name()).Msg("nothing to rename")
		return nil
	}

	if err := plan.Apply(ctx, p, plan.ApplyOptions{FS: r.fs, Observer: r.observer}); err != nil {
		return errors.Errorf("running %s: %w", op.Name(), err)
	}

	return nil
}
