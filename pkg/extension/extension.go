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

// Package extension splits paths into stem and extension and normalizes
// user supplied extension tokens.
package extension

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Separator is the character between a stem and its extension.
const Separator = "."

// ErrInvalidExtension is returned for extension tokens that cannot be used
// as a filename suffix.
var ErrInvalidExtension = errors.Base("invalid extension")

// 🔍 split returns the index of the extension separator in path, or -1.
func split(path string) int {
	name := path[strings.LastIndexAny(path, separators())+1:]
	if name == "" || name == "." || name == ".." {
		return -1
	}

	idx := strings.LastIndex(name, Separator)
	// a leading dot marks a dotfile, a trailing dot leaves nothing to split off
	if idx <= 0 || idx == len(name)-1 {
		return -1
	}

	return len(path) - len(name) + idx
}

func separators() string {
	if os.PathSeparator == '/' {
		return "/"
	}
	return "/" + string(os.PathSeparator)
}

// 📄 Ext returns the extension of the last path segment without its
// separator, and whether there is one.
func Ext(path string) (string, bool) {
	idx := split(path)
	if idx < 0 {
		return "", false
	}
	return path[idx+1:], true
}

// 📄 Stem returns path without its extension. Paths without an extension
// are returned unchanged.
func Stem(path string) string {
	idx := split(path)
	if idx < 0 {
		return path
	}
	return path[:idx]
}

// 🎯 Matches reports whether the extension of path equals ext. The empty
// ext stands for "no extension".
func Matches(path string, ext string) bool {
	cur, ok := Ext(path)
	if ext == "" {
		return !ok
	}
	return ok && cur == ext
}

// 🔧 With appends ext to stem, or returns stem when ext is empty.
func With(stem string, ext string) string {
	if ext == "" {
		return stem
	}
	return stem + Separator + ext
}

// ✂️ Normalize strips every leading separator from an extension token, so
// ".txt", "..txt" and "txt" are equivalent.
func Normalize(token string) string {
	return strings.TrimLeft(token, Separator)
}

// ✅ Validate rejects tokens that would move a file to another directory and
// tokens spanning more than one extension segment ("tar.gz").
func Validate(token string) error {
	if strings.ContainsAny(token, separators()) {
		return errors.Errorf("%w: %q contains a path separator", ErrInvalidExtension, token)
	}
	if strings.Contains(token, Separator) {
		return errors.Errorf("%w: %q has more than one segment", ErrInvalidExtension, token)
	}
	return nil
}

// 📝 Parse normalizes and validates a user supplied extension token.
func Parse(token string) (string, error) {
	ext := Normalize(token)
	if err := Validate(ext); err != nil {
		return "", err
	}
	return ext, nil
}

// IsEligible reports whether info describes a regular file.
func IsEligible(info fs.FileInfo) bool {
	return info != nil && info.Mode().IsRegular()
}

// Eligible reports whether path currently resolves to an existing regular
// file. Symlinks are followed.
func Eligible(path string) bool {
	info, err := os.Stat(filepath.Clean(path))
	if err != nil {
		return false
	}
	return IsEligible(info)
}
