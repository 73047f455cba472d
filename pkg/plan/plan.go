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
	"io/fs"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// ErrPlanCollision is returned by Validate when two entries would end up at
// the same name.
var ErrPlanCollision = errors.Base("rename plan collision")

// 🔧 Rewriter computes the destination of a single file
type Rewriter interface {
	Destination(path string) string
}

// 📄 Entry is one rename
type Entry struct {
	Source      string
	Destination string
}

// 📋 Plan is the ordered list of renames for one invocation
type Plan struct {
	Entries []Entry
	// Unchanged holds the selected files that keep their name
	Unchanged []string
}

// 🏗️ Build computes one entry per file, leaving out files whose name does
// not change.
func Build(rw Rewriter, files []string) *Plan {
	p := &Plan{Entries: make([]Entry, 0, len(files))}
	for _, file := range files {
		dest := rw.Destination(file)
		if dest == file {
			p.Unchanged = append(p.Unchanged, file)
			continue
		}
		p.Entries = append(p.Entries, Entry{Source: file, Destination: dest})
	}
	return p
}

// Len is the number of renames in the plan
func (p *Plan) Len() int {
	return len(p.Entries)
}

// Empty reports whether the plan has nothing to do
func (p *Plan) Empty() bool {
	return len(p.Entries) == 0
}

// ✅ Validate checks the plan against itself before anything is renamed: no
// two entries may share a destination, and no entry may land on a selected
// file that keeps its name.
func (p *Plan) Validate() error {
	staying := make(map[string]struct{}, len(p.Unchanged))
	for _, file := range p.Unchanged {
		staying[key(file)] = struct{}{}
	}

	dests := make(map[string]int, len(p.Entries))
	for i, e := range p.Entries {
		k := key(e.Destination)
		if j, ok := dests[k]; ok {
			return errors.Errorf("%w: %s and %s both rename to %s",
				ErrPlanCollision, p.Entries[j].Source, e.Source, e.Destination)
		}
		if _, ok := staying[k]; ok {
			return errors.Errorf("%w: %s would replace %s",
				ErrPlanCollision, e.Source, e.Destination)
		}
		dests[k] = i
	}

	return nil
}

// ✅ Preflight runs Validate and then checks every destination on fsys. A
// destination must be free, be the source of another entry, or be the entry's
// own file under another spelling.
func (p *Plan) Preflight(fsys Filesystem) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if fsys == nil {
		fsys = OS()
	}

	sources := make(map[string]struct{}, len(p.Entries))
	for _, e := range p.Entries {
		sources[key(e.Source)] = struct{}{}
	}

	for _, e := range p.Entries {
		if _, ok := sources[key(e.Destination)]; ok {
			continue
		}
		dstInfo, err := fsys.Lstat(e.Destination)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return errors.Errorf("checking destination %s: %w", e.Destination, err)
		}
		if srcInfo, err := fsys.Lstat(e.Source); err == nil && os.SameFile(srcInfo, dstInfo) {
			continue
		}
		return errors.Errorf("%w: %s would replace existing %s",
			ErrPlanCollision, e.Source, e.Destination)
	}

	return nil
}

func key(path string) string {
	return filepath.Clean(path)
}
