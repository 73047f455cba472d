/*
Package config loads the optional extn configuration file.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	   +---------+-----+-----+---------+
	   |         |           |         |
	+--+---+ +---+--+   +----+---+ +---+--+
	| YAML | | HCL  |   |  JSON  | | TOML |
	+------+ +------+   +--------+ +------+

🎯 Purpose:
- Extra command aliases
- Default patterns for toggle-between
- Switching off the pre-flight collision check
- Verbose output by default

🔄 Flow:
1. An explicit --config path is loaded as is
2. Otherwise the first of DefaultFilenames in the working directory wins
3. Otherwise Default() is used
4. The parser is picked by file extension; unknown fields are rejected

🔍 Example (.extnrc.hcl):

	aliases = {
	  toggle = ["flip"]
	}
	default_patterns = ["*.yml", "*.yaml"]
	verbose = true
*/
package config
