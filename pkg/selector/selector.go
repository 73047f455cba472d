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

// Package selector resolves literal paths and glob patterns into the
// ordered set of regular files an operation works on.
package selector

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/extn/pkg/extension"
	"gitlab.com/tozd/go/errors"
)

var (
	ErrInvalidGlobPattern = errors.Base("invalid glob pattern")
	ErrNoMatchingFiles    = errors.Base("no matching files")
)

// 🗂️ Filesystem is the part of the filesystem the selector reads
type Filesystem interface {
	// Glob expands a validated pattern
	Glob(pattern string) ([]string, error)
	// Stat follows symlinks
	Stat(name string) (fs.FileInfo, error)
	// Lstat does not follow symlinks
	Lstat(name string) (fs.FileInfo, error)
	// Abs returns the canonical form of path used for deduplication
	Abs(path string) (string, error)
}

type osFilesystem struct{}

// OS returns the Filesystem backed by the host filesystem
func OS() Filesystem {
	return osFilesystem{}
}

func (osFilesystem) Glob(pattern string) ([]string, error) {
	return doublestar.FilepathGlob(pattern)
}

func (osFilesystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (osFilesystem) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

func (osFilesystem) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

// 🔍 Selector turns tokens into eligible files
type Selector struct {
	fs Filesystem
}

// 🏭 New creates a selector; a nil fsys means the host filesystem
func New(fsys Filesystem) *Selector {
	if fsys == nil {
		fsys = OS()
	}
	return &Selector{fs: fsys}
}

// IsPattern reports whether token contains glob metacharacters
func IsPattern(token string) bool {
	return strings.ContainsAny(filepath.ToSlash(token), "*?[{")
}

// 📋 Select expands tokens in order, keeps existing regular files and drops
// repeats of the same canonical path. An empty result is ErrNoMatchingFiles.
func (s *Selector) Select(ctx context.Context, tokens []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	paths, err := s.Expand(ctx, tokens)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(paths))
	files := make([]string, 0, len(paths))
	for _, path := range paths {
		info, err := s.fs.Stat(path)
		if err != nil || !extension.IsEligible(info) {
			logger.Debug().Str("path", path).Msg("skipping ineligible path")
			continue
		}

		key, err := s.fs.Abs(path)
		if err != nil {
			return nil, errors.Errorf("resolving %s: %w", path, err)
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		files = append(files, path)
	}

	if len(files) == 0 {
		return nil, errors.Errorf("%w: %s", ErrNoMatchingFiles, strings.Join(tokens, " "))
	}

	logger.Debug().Int("files", len(files)).Msg("selected files")

	return files, nil
}

// 🌐 Expand resolves every token into paths without filtering them. Tokens
// naming an existing path are taken literally even if they look like a
// pattern.
func (s *Selector) Expand(ctx context.Context, tokens []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	var out []string
	for _, token := range tokens {
		if token == "" {
			continue
		}

		if _, err := s.fs.Lstat(token); err == nil || !IsPattern(token) {
			out = append(out, token)
			continue
		}

		if !doublestar.ValidatePattern(filepath.ToSlash(token)) {
			return nil, errors.Errorf("%w: %q", ErrInvalidGlobPattern, token)
		}

		matches, err := s.fs.Glob(token)
		if err != nil {
			if errors.Is(err, doublestar.ErrBadPattern) {
				return nil, errors.Errorf("%w: %q", ErrInvalidGlobPattern, token)
			}
			return nil, errors.Errorf("expanding %q: %w", token, err)
		}

		logger.Debug().Str("pattern", token).Int("matches", len(matches)).Msg("expanded pattern")

		out = append(out, matches...)
	}

	return out, nil
}
