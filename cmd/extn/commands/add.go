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
	"github.com/spf13/cobra"
	"github.com/walteh/extn/cmd/extn/opts"
	"github.com/walteh/extn/pkg/operation"
)

// NewAddCmd creates the add command
func NewAddCmd(opts *opts.RootOpts) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "add [--force] <extension> <files...>",
		Short: "Append an extension to the given files",
		Long: `Add appends the extension to every file. Files that already end in it
are left alone unless --force is given.`,
		Example: `  extn add bak config.yaml
  extn add --force gz archive.gz`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := parseExtension(args[0], false)
			if err != nil {
				return err
			}
			return run(cmd, opts, operation.Add{Extension: ext, Force: force}, args[1:])
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "append even when the file already has the extension")

	return cmd
}
