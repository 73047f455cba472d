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

/*
Package operation implements the extension rewrites and runs them over files.

	+-------------+      +-------------+      +-------------+
	|  Selector   | ---> |  Operation  | ---> |    Plan     |
	| (tokens)    |      | (rewrite)   |      | (renames)   |
	+-------------+      +-------------+      +-------------+

🎯 Purpose:
- Computes the new name of a file for add, remove, set, toggle and
  toggle-between
- Expands user tokens into the candidates each operation needs
- Drives selection, planning and renaming through Runner

🔄 Flow:
1. Operation.Candidates expands the tokens (toggle also looks for name.ext)
2. selector.Selector keeps existing regular files, deduplicated
3. plan.Build asks Operation.Destination for every file and drops no-ops
4. plan.Plan.Validate rejects in-plan collisions
5. plan.Apply renames, stopping at the first failure

📝 Rewrite rules, for a path p with stem s and extension e:

	add x          p.x, unless e == x (then p); --force always p.x
	remove         s
	remove x       s when e == x, else p
	set x          s.x
	toggle x       s when e == x, else add x
	toggle-between x y
	               s.y when e == x, s.x when e == y, else p

An empty extension argument stands for "no extension" in every comparison.

🔍 Example:

	r := operation.NewRunner(operation.Options{})
	err := r.Run(ctx, operation.Toggle{Extension: "txt"}, []string{"report"})
*/
package operation
