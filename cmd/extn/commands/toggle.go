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

// NewToggleCmd creates the toggle command
func NewToggleCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <extension> <files...>",
		Short: "Add an extension where it is missing, remove it where it is present",
		Long: `Toggle flips one extension on the given files.

Files already ending in the extension lose it, every other file gains it.
A file given without the extension also matches its sibling that has it,
so "extn toggle txt report" finds report.txt as well.`,
		Example: `  extn toggle bak config.yaml
  extn t txt "notes/*"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := parseExtension(args[0], false)
			if err != nil {
				return err
			}
			return run(cmd, opts, operation.Toggle{Extension: ext}, args[1:])
		},
	}
}
