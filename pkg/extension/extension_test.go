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

package extension

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestStemAndExt(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantStem string
		wantExt  string
		wantOK   bool
	}{
		{name: "simple", path: "report.txt", wantStem: "report", wantExt: "txt", wantOK: true},
		{name: "no_extension", path: "report", wantStem: "report", wantOK: false},
		{name: "compound_extension", path: "archive.tar.gz", wantStem: "archive.tar", wantExt: "gz", wantOK: true},
		{name: "dotfile", path: ".bashrc", wantStem: ".bashrc", wantOK: false},
		{name: "dotfile_with_extension", path: ".bashrc.bak", wantStem: ".bashrc", wantExt: "bak", wantOK: true},
		{name: "trailing_dot", path: "notes.", wantStem: "notes.", wantOK: false},
		{name: "dot_segment", path: "dir/.", wantStem: "dir/.", wantOK: false},
		{name: "dot_dot_segment", path: "..", wantStem: "..", wantOK: false},
		{name: "dot_in_directory", path: "some.dir/report", wantStem: "some.dir/report", wantOK: false},
		{name: "nested_path", path: "a/b.c/photo.jpeg", wantStem: "a/b.c/photo", wantExt: "jpeg", wantOK: true},
		{name: "empty", path: "", wantStem: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, ok := Ext(tt.path)
			assert.Equal(t, tt.wantOK, ok, "extension presence")
			assert.Equal(t, tt.wantExt, ext, "extension")
			assert.Equal(t, tt.wantStem, Stem(tt.path), "stem")

			if ok {
				assert.Equal(t, tt.path, tt.wantStem+"."+tt.wantExt, "stem and extension rebuild the path")
			}
		})
	}
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("a.txt", "txt"))
	assert.False(t, Matches("a.txt", "md"))
	assert.False(t, Matches("a.txt", ""))
	assert.True(t, Matches("a", ""))
	assert.False(t, Matches("a", "txt"))
}

func TestWith(t *testing.T) {
	assert.Equal(t, "a.txt", With("a", "txt"))
	assert.Equal(t, "a", With("a", ""))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "leading_dot", token: ".txt", want: "txt"},
		{name: "bare", token: "txt", want: "txt"},
		{name: "empty", token: "", want: ""},
		{name: "only_dot", token: ".", want: ""},
		{name: "compound", token: ".tar.gz", want: "tar.gz"},
		{name: "double_dot", token: "..txt", want: "txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.token)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Normalize(got), "normalize is idempotent")
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{name: "leading_dot", token: ".md", want: "md"},
		{name: "bare", token: "md", want: "md"},
		{name: "empty", token: "", want: ""},
		{name: "path_separator", token: "../txt", wantErr: true},
		{name: "compound", token: "tar.gz", wantErr: true},
		{name: "compound_with_leading_dot", token: ".tar.gz", wantErr: true},
		{name: "inner_dot_after_trim", token: "..a.b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.token)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidExtension), "should be an invalid extension error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEligible(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, Eligible(file), "regular file")
	assert.False(t, Eligible(dir), "directory")
	assert.False(t, Eligible(filepath.Join(dir, "missing")), "missing path")

	link := filepath.Join(dir, "link")
	if err := os.Symlink(file, link); err == nil {
		assert.True(t, Eligible(link), "symlink to a regular file")
	}

	dirLink := filepath.Join(dir, "dirlink")
	if err := os.Symlink(dir, dirLink); err == nil {
		assert.False(t, Eligible(dirLink), "symlink to a directory")
	}
}
