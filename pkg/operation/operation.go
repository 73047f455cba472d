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
	"github.com/walteh/extn/pkg/extension"
)

// 🎯 Operation is one extension transformation
type Operation interface {
	// Name is the command name of the operation
	Name() string
	// Destination computes the new name of path; it returns path when nothing changes
	Destination(path string) string
	// Candidates expands the user supplied tokens into the paths worth selecting
	Candidates(tokens []string) []string
}

var (
	_ Operation = Add{}
	_ Operation = Remove{}
	_ Operation = Set{}
	_ Operation = Toggle{}
	_ Operation = ToggleBetween{}
)

// ➕ Add appends an extension
type Add struct {
	Extension string
	// Force appends even when the file already carries Extension
	Force bool
}

func (op Add) Name() string { return "add" }

func (op Add) Destination(path string) string {
	if op.Extension == "" {
		return path
	}
	if !op.Force && extension.Matches(path, op.Extension) {
		return path
	}
	return path + extension.Separator + op.Extension
}

func (op Add) Candidates(tokens []string) []string {
	return literal(tokens)
}

// ➖ Remove strips an extension. An empty Extension strips whatever
// extension the file has.
type Remove struct {
	Extension string
}

func (op Remove) Name() string { return "remove" }

func (op Remove) Destination(path string) string {
	if op.Extension == "" || extension.Matches(path, op.Extension) {
		return extension.Stem(path)
	}
	return path
}

func (op Remove) Candidates(tokens []string) []string {
	return literal(tokens)
}

// 🔧 Set replaces the extension of every file. An empty Extension removes it.
type Set struct {
	Extension string
}

func (op Set) Name() string { return "set" }

func (op Set) Destination(path string) string {
	return extension.With(extension.Stem(path), op.Extension)
}

func (op Set) Candidates(tokens []string) []string {
	return literal(tokens)
}

// 🔄 Toggle removes Extension from files that carry it and adds it to the rest
type Toggle struct {
	Extension string
}

func (op Toggle) Name() string { return "toggle" }

func (op Toggle) Destination(path string) string {
	if extension.Matches(path, op.Extension) {
		return extension.Stem(path)
	}
	return Add{Extension: op.Extension}.Destination(path)
}

// Candidates pairs every token with its suffixed form so that both members
// of a name / name.ext pair are found.
func (op Toggle) Candidates(tokens []string) []string {
	out := make([]string, 0, len(tokens)*2)
	for _, token := range tokens {
		out = append(out, token)
		if op.Extension != "" {
			out = append(out, token+extension.Separator+op.Extension)
		}
	}
	return out
}

// 🔀 ToggleBetween swaps First and Second. Files carrying neither are left alone.
type ToggleBetween struct {
	First  string
	Second string
}

func (op ToggleBetween) Name() string { return "toggle-between" }

func (op ToggleBetween) Destination(path string) string {
	if op.First == op.Second {
		return path
	}
	stem := extension.Stem(path)
	switch {
	case extension.Matches(path, op.First):
		return extension.With(stem, op.Second)
	case extension.Matches(path, op.Second):
		return extension.With(stem, op.First)
	default:
		return path
	}
}

// Candidates adds the suffixed siblings of tokens that have no extension.
func (op ToggleBetween) Candidates(tokens []string) []string {
	out := make([]string, 0, len(tokens)*3)
	for _, token := range tokens {
		out = append(out, token)
		if _, ok := extension.Ext(token); ok {
			continue
		}
		for _, ext := range []string{op.First, op.Second} {
			if ext != "" {
				out = append(out, token+extension.Separator+ext)
			}
		}
	}
	return out
}

func literal(tokens []string) []string {
	return append([]string(nil), tokens...)
}
