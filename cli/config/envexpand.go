// Package config handles YAML config file loading for clipfrag.
package config

import (
	"os"
	"regexp"
)

// envVarPattern matches ${VAR}, ${VAR:-default} and the escaped form
// $${...}, which is left as a literal ${...}.
var envVarPattern = regexp.MustCompile(`\$?\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// ExpandEnv replaces ${VAR} and ${VAR:-default} in input with values from
// the environment. Unset variables without a default expand to "".
func ExpandEnv(input string) string {
	return expand(input, os.LookupEnv)
}

func expand(input string, lookup func(string) (string, bool)) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		if match[1] == '$' {
			return match[1:]
		}
		groups := envVarPattern.FindStringSubmatch(match)
		if value, ok := lookup(groups[1]); ok && value != "" {
			return value
		}
		return groups[2]
	})
}
