package transaction

import (
	"errors"
	"fmt"
	"strings"
)

// Future is a deferred finalize call produced by a transition.
type Future struct {
	ProgramID    string
	FunctionName string
	Arguments    []string
}

// String returns the textual representation of the future used in
// transition outputs.
func (f Future) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	sb.WriteString("  program_id: " + f.ProgramID + ",\n")
	sb.WriteString("  function_name: " + f.FunctionName + ",\n")
	sb.WriteString("  arguments: [\n")
	for i, arg := range f.Arguments {
		sb.WriteString("    " + arg)
		if i != len(f.Arguments)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  ]\n}")
	return sb.String()
}

// ParseFuture parses the future from its textual representation. Nested
// futures in arguments are not supported.
func ParseFuture(s string) (Future, error) {
	var (
		f      Future
		inArgs bool
		closed bool
	)
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != "{" || strings.TrimSpace(lines[len(lines)-1]) != "}" {
		return f, errors.New("future must be enclosed in braces")
	}
	for _, line := range lines[1 : len(lines)-1] {
		line = strings.TrimSuffix(strings.TrimSpace(line), ",")
		switch {
		case inArgs && line == "]":
			inArgs, closed = false, true
		case inArgs:
			if strings.ContainsAny(line, "{}") {
				return f, errors.New("nested futures are not supported")
			}
			f.Arguments = append(f.Arguments, line)
		case strings.HasPrefix(line, "program_id:"):
			f.ProgramID = strings.TrimSpace(strings.TrimPrefix(line, "program_id:"))
		case strings.HasPrefix(line, "function_name:"):
			f.FunctionName = strings.TrimSpace(strings.TrimPrefix(line, "function_name:"))
		case line == "arguments: [":
			inArgs = true
		case line == "arguments: []":
			closed = true
		default:
			return f, fmt.Errorf("unexpected future line: %q", line)
		}
	}
	if inArgs || !closed || f.ProgramID == "" || f.FunctionName == "" {
		return f, errors.New("incomplete future")
	}
	return f, nil
}
