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

// NewToggleBetweenCmd creates the toggle-between command
func NewToggleBetweenCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-between <extension1> <extension2> [files...]",
		Short: "Swap files between two extensions",
		Long: `Toggle-between renames files ending in the first extension to the second
and the other way around. Files with neither extension are left alone.

Without files every file in the working directory is considered, or the
default_patterns from the config file when set.`,
		Example: `  extn toggle-between yml yaml
  extn swap md txt README`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := parseExtension(args[0], true)
			if err != nil {
				return err
			}
			second, err := parseExtension(args[1], true)
			if err != nil {
				return err
			}

			files := args[2:]
			if len(files) == 0 {
				files = defaultPatterns(opts)
			}

			// selection still runs so that missing files are reported
			if first == second {
				opts.UserLogger.LogWarning("both extensions are the same, nothing to rename")
			}

			return run(cmd, opts, operation.ToggleBetween{First: first, Second: second}, files)
		},
	}
}

func defaultPatterns(opts *opts.RootOpts) []string {
	if opts.Config == nil || len(opts.Config.DefaultPatterns) == 0 {
		return []string{"*"}
	}
	return opts.Config.DefaultPatterns
}
