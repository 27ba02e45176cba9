package inference

import (
	"regexp"
	"strings"
)

var toolNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// InferCommand lets a tool be called by bare name: "customtools read_url
// url=..." becomes "call read_url url=...". known lists the real commands.
func InferCommand(args []string, known []string) (string, []string) {
	if len(args) == 0 {
		return "", args
	}

	first := args[0]
	if strings.HasPrefix(first, "-") {
		return "", args
	}
	for _, k := range known {
		if first == k {
			return "", args
		}
	}

	// A snake_case name or a name followed by key=value pairs is a tool call.
	if toolNamePattern.MatchString(first) && (strings.Contains(first, "_") || hasAssignment(args[1:])) {
		return "call", args
	}
	return "", args
}

func hasAssignment(args []string) bool {
	for _, a := range args {
		if strings.Contains(a, "=") && !strings.HasPrefix(a, "-") {
			return true
		}
	}
	return false
}
