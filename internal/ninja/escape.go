package ninja

import (
	"regexp"
	"strings"
)

var pathEscaper = strings.NewReplacer("$", "$$", " ", "$ ", ":", "$:", "\n", "$\n")

// shellSafe matches words the POSIX shell passes through unchanged.
var shellSafe = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)

// EscapePath escapes p for use in a build statement's output or input list.
func EscapePath(p string) string {
	return pathEscaper.Replace(p)
}

// JoinPaths escapes every path and joins them with spaces.
func JoinPaths(paths []string) string {
	escaped := make([]string, len(paths))
	for i, p := range paths {
		escaped[i] = EscapePath(p)
	}
	return strings.Join(escaped, " ")
}

// EscapeValue escapes s for the right-hand side of a variable binding, where
// spaces and colons are literal and only '$' is special.
func EscapeValue(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

// QuoteValue makes s one shell word inside a command binding: single quoted
// unless it is made of shell-safe characters, then escaped for ninja.
func QuoteValue(s string) string {
	if shellSafe.MatchString(s) {
		return s
	}
	return EscapeValue("'" + strings.ReplaceAll(s, "'", `'\''`) + "'")
}
