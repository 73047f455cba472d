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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	renameIndent = 2  // spaces to indent rename entries
	nameWidth    = 35 // base width for the source name
)

// 📢 UserLogger writes what the user needs to see. Successful runs stay
// silent unless verbose output was asked for.
type UserLogger struct {
	log     zerolog.Logger // for debug/error logging
	out     io.Writer
	verbose bool
	mu      sync.Mutex
}

// 🏭 NewUserLogger creates a user logger printing to out
func NewUserLogger(ctx context.Context, out io.Writer, verbose bool) *UserLogger {
	return &UserLogger{
		log:     *zerolog.Ctx(ctx),
		out:     out,
		verbose: verbose,
	}
}

// SetVerbose turns per-rename output on or off
func (u *UserLogger) SetVerbose(verbose bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.verbose = verbose
}

// 📝 FormatRename formats a rename for display
func FormatRename(source, destination string) string {
	return fmt.Sprintf("%*s%s %-*s %s %s",
		renameIndent, "",
		color.BlueString("⟳"),
		nameWidth, source,
		color.New(color.Faint).Sprint("→"),
		color.GreenString(destination))
}

// 📝 LogRename prints a rename when verbose
func (u *UserLogger) LogRename(source, destination string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.log.Debug().Str("source", source).Str("destination", destination).Msg("renamed file")

	if !u.verbose {
		return
	}
	fmt.Fprintln(u.out, FormatRename(source, destination))
}

// ❌ LogError prints a failed command
func (u *UserLogger) LogError(description string, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	printer := pterm.Error.WithWriter(u.out).WithPrefix(pterm.Prefix{Text: "extn", Style: pterm.Error.Prefix.Style})
	if err != nil {
		printer.Printfln("%s: %v", description, err)
		u.log.Debug().Err(err).Msg(description)
		return
	}
	printer.Println(description)
	u.log.Debug().Msg(description)
}

// ⚠️ LogWarning prints a warning
func (u *UserLogger) LogWarning(description string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	pterm.Warning.WithWriter(u.out).Println(description)
	u.log.Debug().Msg(description)
}
