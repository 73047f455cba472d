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
	"sort"

	"github.com/spf13/cobra"
	"github.com/walteh/extn/cmd/extn/opts"
	"github.com/walteh/extn/pkg/extension"
	"github.com/walteh/extn/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// 🗺️ builtin lists every rename command with its built-in aliases
var builtin = []struct {
	name    string
	aliases []string
	build   func(opts *opts.RootOpts) *cobra.Command
}{
	{name: "toggle", aliases: []string{"t"}, build: NewToggleCmd},
	{name: "toggle-between", aliases: []string{"tb", "swap"}, build: NewToggleBetweenCmd},
	{name: "set", aliases: []string{"s"}, build: NewSetCmd},
	{name: "add", aliases: []string{"a"}, build: NewAddCmd},
	{name: "remove", aliases: []string{"rm", "r"}, build: NewRemoveCmd},
}

// 🏗️ NewRenameCmds builds the rename commands with their built-in aliases
// plus any configured in opts.Config.
func NewRenameCmds(opts *opts.RootOpts) ([]*cobra.Command, error) {
	taken := map[string]string{}
	for _, b := range builtin {
		taken[b.name] = b.name
		for _, a := range b.aliases {
			taken[a] = b.name
		}
	}

	var extra map[string][]string
	if opts.Config != nil {
		extra = opts.Config.Aliases
	}

	names := make([]string, 0, len(extra))
	for name := range extra {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if taken[name] != name {
			return nil, errors.Errorf("configured aliases for unknown command %q", name)
		}
		for _, alias := range extra[name] {
			if owner, ok := taken[alias]; ok && owner != name {
				return nil, errors.Errorf("alias %q is already used by %s", alias, owner)
			}
			taken[alias] = name
		}
	}

	cmds := make([]*cobra.Command, 0, len(builtin))
	for _, b := range builtin {
		cmd := b.build(opts)
		cmd.Aliases = append(append([]string{}, b.aliases...), dedupe(extra[b.name], b.aliases)...)
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func dedupe(aliases []string, existing []string) []string {
	seen := map[string]bool{}
	for _, a := range existing {
		seen[a] = true
	}
	out := make([]string, 0, len(aliases))
	for _, a := range aliases {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

// parseExtension reads an extension argument. Only set accepts an empty
// one, meaning "no extension".
func parseExtension(token string, allowEmpty bool) (string, error) {
	ext, err := extension.Parse(token)
	if err != nil {
		return "", err
	}
	if ext == "" && !allowEmpty {
		return "", errors.Errorf("%w: %q is empty", extension.ErrInvalidExtension, token)
	}
	return ext, nil
}

func run(cmd *cobra.Command, opts *opts.RootOpts, op operation.Operation, tokens []string) error {
	return opts.Runner.Run(cmd.Context(), op, tokens)
}
