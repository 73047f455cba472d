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
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

// 🔧 MockFilesystem is a mock implementation of Filesystem
type MockFilesystem struct {
	mock.Mock
}

func (m *MockFilesystem) Rename(oldpath, newpath string) error {
	return m.Called(oldpath, newpath).Error(0)
}

func (m *MockFilesystem) Lstat(name string) (fs.FileInfo, error) {
	result := m.Called(name)
	info, _ := result.Get(0).(fs.FileInfo)
	return info, result.Error(1)
}

// writeFiles creates each name in dir with its own name as content
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}
}

// listDir returns name -> content for every file in dir
func listDir(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		out[e.Name()] = string(data)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		entries  func(dir string) []Entry
		want     map[string]string
		wantErr  bool
		observed int
	}{
		{
			name:  "simple_rename",
			files: []string{"photo.jpeg"},
			entries: func(dir string) []Entry {
				return []Entry{{Source: filepath.Join(dir, "photo.jpeg"), Destination: filepath.Join(dir, "photo.jpg")}}
			},
			want:     map[string]string{"photo.jpg": "photo.jpeg"},
			observed: 1,
		},
		{
			name:  "swap_keeps_both_files",
			files: []string{"report", "report.txt", "report.bak"},
			entries: func(dir string) []Entry {
				return []Entry{
					{Source: filepath.Join(dir, "report"), Destination: filepath.Join(dir, "report.txt")},
					{Source: filepath.Join(dir, "report.txt"), Destination: filepath.Join(dir, "report")},
				}
			},
			want: map[string]string{
				"report.txt": "report",
				"report":     "report.txt",
				"report.bak": "report.bak",
			},
			observed: 2,
		},
		{
			name:  "chain_in_blocking_order",
			files: []string{"a", "b"},
			entries: func(dir string) []Entry {
				return []Entry{
					{Source: filepath.Join(dir, "a"), Destination: filepath.Join(dir, "b")},
					{Source: filepath.Join(dir, "b"), Destination: filepath.Join(dir, "c")},
				}
			},
			want:     map[string]string{"b": "a", "c": "b"},
			observed: 2,
		},
		{
			name:  "existing_destination_stops_the_run",
			files: []string{"one", "two", "two.txt", "three"},
			entries: func(dir string) []Entry {
				return []Entry{
					{Source: filepath.Join(dir, "one"), Destination: filepath.Join(dir, "one.txt")},
					{Source: filepath.Join(dir, "two"), Destination: filepath.Join(dir, "two.txt")},
					{Source: filepath.Join(dir, "three"), Destination: filepath.Join(dir, "three.txt")},
				}
			},
			want: map[string]string{
				"one.txt": "one",
				"two":     "two",
				"two.txt": "two.txt",
				"three":   "three",
			},
			wantErr:  true,
			observed: 1,
		},
		{
			name:  "vanished_source_stops_the_run",
			files: []string{"here"},
			entries: func(dir string) []Entry {
				return []Entry{
					{Source: filepath.Join(dir, "gone"), Destination: filepath.Join(dir, "gone.txt")},
					{Source: filepath.Join(dir, "here"), Destination: filepath.Join(dir, "here.txt")},
				}
			},
			want:    map[string]string{"here": "here"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, tt.files...)

			var seen []Entry
			err := Apply(context.Background(), &Plan{Entries: tt.entries(dir)}, ApplyOptions{
				Observer: func(e Entry) { seen = append(seen, e) },
			})

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrRenameFailed), "got %v", err)
				var renameErr *RenameError
				require.True(t, errors.As(err, &renameErr), "should be a rename error")
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, listDir(t, dir))
			assert.Len(t, seen, tt.observed)
		})
	}
}

func TestApplyExistingDestinationIsNotOverwritten(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a", "a.txt")

	err := Apply(context.Background(), &Plan{Entries: []Entry{
		{Source: filepath.Join(dir, "a"), Destination: filepath.Join(dir, "a.txt")},
	}}, ApplyOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrExist), "got %v", err)

	assert.Equal(t, map[string]string{"a": "a", "a.txt": "a.txt"}, listDir(t, dir))
}

func TestApplyStopsOnFirstFailure(t *testing.T) {
	m := &MockFilesystem{}
	m.On("Lstat", mock.Anything).Return(nil, fs.ErrNotExist)
	m.On("Rename", "a", "a.txt").Return(nil).Once()
	m.On("Rename", "b", "b.txt").Return(fs.ErrPermission).Once()

	p := &Plan{Entries: []Entry{
		{Source: "a", Destination: "a.txt"},
		{Source: "b", Destination: "b.txt"},
		{Source: "c", Destination: "c.txt"},
	}}

	err := Apply(context.Background(), p, ApplyOptions{FS: m})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrPermission), "got %v", err)

	var renameErr *RenameError
	require.True(t, errors.As(err, &renameErr))
	assert.Equal(t, "b", renameErr.Source)
	assert.Equal(t, "b.txt", renameErr.Destination)

	m.AssertExpectations(t)
	m.AssertNotCalled(t, "Rename", "c", "c.txt")
}

func TestApplyRestoresParkedFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "report", "report.txt", "other.txt")

	// report is parked behind report.txt, then report.txt cannot move because
	// other.txt already exists
	err := Apply(context.Background(), &Plan{Entries: []Entry{
		{Source: filepath.Join(dir, "report"), Destination: filepath.Join(dir, "report.txt")},
		{Source: filepath.Join(dir, "report.txt"), Destination: filepath.Join(dir, "other.txt")},
	}}, ApplyOptions{})
	require.Error(t, err)

	got := listDir(t, dir)
	names := make([]string, 0, len(got))
	for name := range got {
		names = append(names, name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"other.txt", "report", "report.txt"}, names, "no staging files are left behind")
}

func TestApplyCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Apply(ctx, &Plan{Entries: []Entry{
		{Source: filepath.Join(dir, "a"), Destination: filepath.Join(dir, "a.txt")},
	}}, ApplyOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, map[string]string{"a": "a"}, listDir(t, dir))
}

// names returns the sorted entry names in dir, directories included
func names(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func TestApplySettlesParkedFileForwardOnFailure(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "report", "report.txt", "b.md")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b.md.txt"), 0755))

	var observed []string
	err := Apply(context.Background(), &Plan{Entries: []Entry{
		{Source: filepath.Join(dir, "report"), Destination: filepath.Join(dir, "report.txt")},
		{Source: filepath.Join(dir, "report.txt"), Destination: filepath.Join(dir, "report")},
		{Source: filepath.Join(dir, "b.md"), Destination: filepath.Join(dir, "b.md.txt")},
	}}, ApplyOptions{Observer: func(e Entry) { observed = append(observed, filepath.Base(e.Destination)) }})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRenameFailed), "got %v", err)

	// report's swap partner already moved, so report finishes its own rename
	assert.Equal(t, []string{"b.md", "b.md.txt", "report", "report.txt"}, names(t, dir), "no staging files are left behind")
	assert.Equal(t, "report", readContent(t, filepath.Join(dir, "report.txt")))
	assert.Equal(t, "report.txt", readContent(t, filepath.Join(dir, "report")))
	assert.Equal(t, []string{"report", "report.txt"}, observed, "settled rename is reported")
}

// blockingFS fails one rename after putting a file at block
type blockingFS struct {
	Filesystem
	failOn string
	block  string
}

func (b *blockingFS) Rename(oldpath, newpath string) error {
	if newpath == b.failOn {
		if err := os.WriteFile(b.block, []byte("new"), 0644); err != nil {
			return err
		}
		return fs.ErrPermission
	}
	return b.Filesystem.Rename(oldpath, newpath)
}

func TestApplyNamesUnsettledStagingFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a", "b")

	fsys := &blockingFS{
		Filesystem: OS(),
		failOn:     filepath.Join(dir, "c"),
		block:      filepath.Join(dir, "a"),
	}

	err := Apply(context.Background(), &Plan{Entries: []Entry{
		{Source: filepath.Join(dir, "a"), Destination: filepath.Join(dir, "b")},
		{Source: filepath.Join(dir, "b"), Destination: filepath.Join(dir, "c")},
	}}, ApplyOptions{FS: fsys})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRenameFailed), "got %v", err)
	assert.True(t, errors.Is(err, fs.ErrPermission), "got %v", err)

	staging := filepath.Join(dir, stagingPrefix+"0-a")
	assert.Contains(t, err.Error(), staging, "error tells where the file was left")
	assert.Equal(t, "a", readContent(t, staging), "parked content is intact")
}

func readContent(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
