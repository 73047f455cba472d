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

package plan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrRenameFailed matches every *RenameError
var ErrRenameFailed = errors.Base("rename failed")

// stagingPrefix marks files parked while the name they move to is still taken
const stagingPrefix = ".extn-"

// 💥 RenameError describes the rename that stopped a plan
type RenameError struct {
	Source      string
	Destination string
	Err         error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("renaming %s to %s: %v", e.Source, e.Destination, e.Err)
}

func (e *RenameError) Unwrap() error {
	return e.Err
}

func (e *RenameError) Is(target error) bool {
	return target == ErrRenameFailed
}

// 🗂️ Filesystem is the part of the filesystem the executor writes to
type Filesystem interface {
	Rename(oldpath, newpath string) error
	Lstat(name string) (fs.FileInfo, error)
}

type osFilesystem struct{}

// OS returns the Filesystem backed by the host filesystem
func OS() Filesystem {
	return osFilesystem{}
}

func (osFilesystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (osFilesystem) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

// 👀 Observer is told about every rename that went through
type Observer func(e Entry)

// 🔧 ApplyOptions configures Apply
type ApplyOptions struct {
	// FS defaults to the host filesystem
	FS Filesystem
	// Observer is optional
	Observer Observer
}

type staged struct {
	entry Entry
	temp  string
}

// 🏃 Apply renames the plan entries in order and stops at the first failure.
// Renames already done are kept. An entry whose destination is still held by
// a later source is parked under a staging name and finished once every
// direct rename is done. After a failure parked files are settled: moved on
// to their destination when it has been freed, or back to their source.
func Apply(ctx context.Context, p *Plan, opts ApplyOptions) error {
	logger := zerolog.Ctx(ctx)

	fsys := opts.FS
	if fsys == nil {
		fsys = OS()
	}
	observe := func(e Entry) {
		logger.Debug().Str("source", e.Source).Str("destination", e.Destination).Msg("renamed")
		if opts.Observer != nil {
			opts.Observer(e)
		}
	}

	pending := make(map[string]struct{}, len(p.Entries))
	for _, e := range p.Entries {
		pending[key(e.Source)] = struct{}{}
	}

	var parked []staged

	abort := func(err error, remaining []staged) error {
		stuck := settle(ctx, fsys, remaining, observe)
		if len(stuck) > 0 {
			return errors.Errorf("%w (could not move back, left at %s)", err, strings.Join(stuck, ", "))
		}
		return err
	}

	for _, e := range p.Entries {
		if err := ctx.Err(); err != nil {
			return abort(errors.Errorf("applying plan: %w", err), parked)
		}

		delete(pending, key(e.Source))

		if _, blocked := pending[key(e.Destination)]; blocked {
			temp, err := stagingName(fsys, e.Source)
			if err != nil {
				return abort(&RenameError{Source: e.Source, Destination: e.Destination, Err: err}, parked)
			}
			if err := move(fsys, e.Source, temp); err != nil {
				return abort(&RenameError{Source: e.Source, Destination: e.Destination, Err: err}, parked)
			}
			logger.Debug().Str("source", e.Source).Str("staging", temp).Msg("parked until destination is free")
			parked = append(parked, staged{entry: e, temp: temp})
			continue
		}

		if err := move(fsys, e.Source, e.Destination); err != nil {
			return abort(&RenameError{Source: e.Source, Destination: e.Destination, Err: err}, parked)
		}
		observe(e)
	}

	for i, s := range parked {
		if err := move(fsys, s.temp, s.entry.Destination); err != nil {
			return abort(&RenameError{Source: s.entry.Source, Destination: s.entry.Destination, Err: err}, parked[i:])
		}
		observe(s.entry)
	}

	return nil
}

// move renames src to dst unless dst is taken by a different file
func move(fsys Filesystem, src, dst string) error {
	dstInfo, err := fsys.Lstat(dst)
	switch {
	case err == nil:
		srcInfo, serr := fsys.Lstat(src)
		// case-insensitive filesystems report the source itself
		if serr != nil || !os.SameFile(srcInfo, dstInfo) {
			return errors.Errorf("destination %s: %w", dst, fs.ErrExist)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return errors.Errorf("checking destination %s: %w", dst, err)
	}

	if err := fsys.Rename(src, dst); err != nil {
		return err
	}
	return nil
}

func stagingName(fsys Filesystem, src string) (string, error) {
	dir, base := filepath.Split(src)
	for n := 0; n < 1000; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s%d-%s", stagingPrefix, n, base))
		if _, err := fsys.Lstat(candidate); errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
	}
	return "", errors.Errorf("no free staging name for %s", src)
}

// settle moves every parked file out of its staging name. The destination
// wins when its blocker has already moved away, the source otherwise. It
// returns the staging paths that are still in use.
func settle(ctx context.Context, fsys Filesystem, parked []staged, observe Observer) []string {
	logger := zerolog.Ctx(ctx)

	var stuck []string
	for _, s := range parked {
		if err := move(fsys, s.temp, s.entry.Destination); err == nil {
			observe(s.entry)
			continue
		}
		if err := move(fsys, s.temp, s.entry.Source); err != nil {
			logger.Debug().Err(err).Str("file", s.temp).Str("original", s.entry.Source).Msg("could not settle parked file")
			stuck = append(stuck, s.temp)
			continue
		}
		logger.Debug().Str("file", s.temp).Str("original", s.entry.Source).Msg("restored parked file")
	}
	return stuck
}
