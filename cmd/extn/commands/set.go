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

// NewSetCmd creates the set command
func NewSetCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:     "set <extension> <files...>",
		Short:   "Replace the extension of the given files",
		Long:    `Set replaces whatever extension the files have with the given one. Files without an extension gain it. An empty extension ("") removes the current one.`,
		Example: `  extn set md "docs/**/*.txt"`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := parseExtension(args[0], true)
			if err != nil {
				return err
			}
			return run(cmd, opts, operation.Set{Extension: ext}, args[1:])
		},
	}
}
