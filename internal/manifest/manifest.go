// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest reads pip requirements files. It understands the
// line-oriented subset the packaging workflow needs: comments, blank lines,
// backslash continuations, option directives, and requirement lines with
// extras, version constraints, and environment markers.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// namePattern is the PEP 508 project name grammar.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// constraint operators, longest first so "==" wins over "=" prefixes.
var operators = []string{"===", "==", "~=", ">=", "<=", "!=", ">", "<"}

// Requirement is one dependency line from the manifest.
type Requirement struct {
	// Name is the project name as written (case preserved).
	Name string

	// Extras lists the bracketed extras, e.g. requests[socks].
	Extras []string

	// Constraint is the version specifier including operators, or empty.
	Constraint string

	// Marker is the environment marker after ";", or empty.
	Marker string

	// Raw is the original line with comments stripped.
	Raw string
}

// Manifest is a parsed requirements file.
type Manifest struct {
	// Path is where the manifest was loaded from. Empty when parsed from a reader.
	Path string

	// Requirements lists the dependency lines in file order.
	Requirements []Requirement

	// Directives lists pip option lines such as "-r other.txt" or "--index-url".
	Directives []string
}

// Load reads and parses the requirements file at path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest %s: %w", path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// Parse reads requirements from r.
func Parse(r io.Reader) (*Manifest, error) {
	m := &Manifest{}
	scanner := bufio.NewScanner(r)

	addLine := func(line string, lineNo int) error {
		line = stripComment(line)
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}

		if strings.HasPrefix(line, "-") {
			m.Directives = append(m.Directives, line)
			return nil
		}

		req, err := parseRequirement(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		m.Requirements = append(m.Requirements, req)
		return nil
	}

	lineNo := 0
	var pending string
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		// Backslash continuation joins physical lines before any other handling.
		if strings.HasSuffix(line, `\`) {
			pending += strings.TrimSuffix(line, `\`)
			continue
		}

		if err := addLine(pending+line, lineNo); err != nil {
			return nil, err
		}
		pending = ""
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	// A backslash on the final line joins with nothing; pip still installs
	// the accumulated content.
	if pending != "" {
		if err := addLine(pending, lineNo); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Validate checks that the manifest can drive an install step.
func (m *Manifest) Validate() error {
	if len(m.Requirements) == 0 && len(m.Directives) == 0 {
		return fmt.Errorf("manifest lists no requirements")
	}
	return nil
}

// Names returns the requirement names in file order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.Requirements))
	for i, r := range m.Requirements {
		names[i] = r.Name
	}
	return names
}

func parseRequirement(line string) (Requirement, error) {
	req := Requirement{Raw: line}

	rest := line
	if i := strings.Index(rest, ";"); i >= 0 {
		req.Marker = strings.TrimSpace(rest[i+1:])
		rest = rest[:i]
	}

	// Split off the version constraint at the earliest operator.
	opIdx := -1
	for i := range rest {
		for _, op := range operators {
			if strings.HasPrefix(rest[i:], op) {
				opIdx = i
				break
			}
		}
		if opIdx >= 0 {
			break
		}
	}
	if opIdx >= 0 {
		req.Constraint = strings.TrimSpace(rest[opIdx:])
		rest = rest[:opIdx]
	}

	rest = strings.TrimSpace(rest)
	if i := strings.Index(rest, "["); i >= 0 {
		end := strings.Index(rest, "]")
		if end < i {
			return req, fmt.Errorf("unclosed extras bracket in %q", line)
		}
		for _, e := range strings.Split(rest[i+1:end], ",") {
			if e = strings.TrimSpace(e); e != "" {
				req.Extras = append(req.Extras, e)
			}
		}
		rest = rest[:i]
	}

	req.Name = strings.TrimSpace(rest)
	if !namePattern.MatchString(req.Name) {
		return req, fmt.Errorf("invalid requirement name %q", req.Name)
	}
	return req, nil
}

// stripComment removes a trailing "#" comment. A "#" that starts the line or
// follows whitespace opens a comment; pip treats URL fragments the same way,
// which this subset does not need to distinguish.
func stripComment(line string) string {
	if strings.HasPrefix(strings.TrimSpace(line), "#") {
		return ""
	}
	for i := 1; i < len(line); i++ {
		if line[i] == '#' && (line[i-1] == ' ' || line[i-1] == '\t') {
			return line[:i]
		}
	}
	return line
}
