// Package ninja assembles the top-level build.ninja from the fragments each
// flow contributes. Fragments are buffered in memory and composed in one
// pass so the written file is never partial.
package ninja

import (
	"bufio"
	"fmt"
	"strings"
)

// RegenRule is the rule the header must define; the trailing statement uses
// it to rebuild the graph file when a generation input changes.
const RegenRule = "regen"

// Fragment is one block of rule or build statements.
type Fragment struct {
	Owner string
	Text  string
}

// Graph buffers the fragments of one run.
type Graph struct {
	// Output is the graph file the trailing regeneration statement builds,
	// relative to the directory ninja runs in.
	Output string
	// Deps are the inputs of the regeneration statement.
	Deps *DepSet

	families  map[string]bool
	fragments []Fragment
}

// NewGraph creates an empty graph whose manifest ninja loads as output.
func NewGraph(output string) *Graph {
	return &Graph{
		Output:   output,
		Deps:     NewDepSet(),
		families: make(map[string]bool),
	}
}

// HasRules reports whether the rule fragment of a toolchain family has been
// added during this run.
func (g *Graph) HasRules(family string) bool {
	return g.families[family]
}

// AddRules appends the rule fragment of family unless one was already added.
// It reports whether the fragment was appended.
func (g *Graph) AddRules(family, text string) bool {
	if g.families[family] {
		return false
	}
	g.families[family] = true
	g.Add(family+" rules", text)
	return true
}

// Add appends a fragment.
func (g *Graph) Add(owner, text string) {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	g.fragments = append(g.fragments, Fragment{Owner: owner, Text: text})
}

// Fragments returns the buffered fragments in the order they were added.
func (g *Graph) Fragments() []Fragment {
	return append([]Fragment(nil), g.fragments...)
}

// RegenStatement is the build statement that regenerates Output.
func (g *Graph) RegenStatement() string {
	stmt := fmt.Sprintf("build %s: %s", EscapePath(g.Output), RegenRule)
	if g.Deps.Len() > 0 {
		stmt += " | " + g.Deps.Clause()
	}
	return stmt + "\n"
}

// Compose lays out header, fragments and the regeneration statement, checks
// that no build statement references a rule defined after it and returns the
// file content.
func (g *Graph) Compose(header string) ([]byte, error) {
	var b strings.Builder
	b.WriteString(header)
	if header != "" && !strings.HasSuffix(header, "\n") {
		b.WriteByte('\n')
	}
	for _, f := range g.fragments {
		b.WriteByte('\n')
		b.WriteString(f.Text)
	}
	b.WriteByte('\n')
	b.WriteString(g.RegenStatement())

	text := b.String()
	if err := Validate(text); err != nil {
		return nil, err
	}
	return []byte(text), nil
}

// ForwardReferenceError reports a build statement whose rule is not defined
// above it.
type ForwardReferenceError struct {
	Rule string
	Line int
}

func (e *ForwardReferenceError) Error() string {
	return fmt.Sprintf("line %d: build statement uses rule %q before it is defined", e.Line, e.Rule)
}

// Validate checks that every build statement in text references either a
// built-in rule or one defined earlier in text.
func Validate(text string) error {
	defined := map[string]bool{"phony": true}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo, start := 0, 0
	var logical strings.Builder
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if logical.Len() == 0 {
			start = lineNo
		}
		if continues(line) {
			logical.WriteString(line[:len(line)-1])
			continue
		}
		logical.WriteString(line)
		stmt := logical.String()
		logical.Reset()

		switch {
		case strings.HasPrefix(stmt, "rule "):
			defined[strings.TrimSpace(strings.TrimPrefix(stmt, "rule "))] = true
		case strings.HasPrefix(stmt, "build "):
			rule := buildRule(stmt)
			if !defined[rule] {
				return &ForwardReferenceError{Rule: rule, Line: start}
			}
		}
	}
	return scanner.Err()
}

// continues reports whether line ends in an unescaped '$'.
func continues(line string) bool {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == '$'; i-- {
		n++
	}
	return n%2 == 1
}

// buildRule extracts the rule name following the first unescaped ':'.
func buildRule(stmt string) string {
	for i := 0; i < len(stmt); i++ {
		switch stmt[i] {
		case '$':
			i++
		case ':':
			fields := strings.Fields(stmt[i+1:])
			if len(fields) == 0 {
				return ""
			}
			return fields[0]
		}
	}
	return ""
}
