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
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/extn/cmd/extn/opts"
	"github.com/walteh/extn/pkg/operation"
	"github.com/walteh/extn/pkg/selector"
)

// NewRemoveCmd creates the remove command
func NewRemoveCmd(opts *opts.RootOpts) *cobra.Command {
	var ext string

	cmd := &cobra.Command{
		Use:   "remove [<extension>] <files...>",
		Short: "Strip the extension from the given files",
		Long: `Remove strips the extension from every file. When an extension is given
only files ending in it are renamed.

With two or more arguments the first one is read as the extension unless it
names an existing path or is a glob pattern. Use --extension to be explicit.`,
		Example: `  extn remove bak "*.bak"
  extn rm notes.txt
  extn remove -e txt txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, files := resolveRemoveArgs(args, ext, cmd.Flags().Changed("extension"), exists)

			target, err := parseExtension(token, true)
			if err != nil {
				return err
			}

			return run(cmd, opts, operation.Remove{Extension: target}, files)
		},
	}

	cmd.Flags().StringVarP(&ext, "extension", "e", "", "only remove this extension; every argument is then a file")

	return cmd
}

// resolveRemoveArgs splits the positional arguments of remove into the
// extension to remove ("" for any) and the file tokens.
func resolveRemoveArgs(args []string, flagExt string, flagSet bool, exists func(string) bool) (string, []string) {
	if flagSet {
		return flagExt, args
	}
	if len(args) >= 2 && !exists(args[0]) && !selector.IsPattern(args[0]) {
		return args[0], args[1:]
	}
	return "", args
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
