package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferCommand(t *testing.T) {
	known := []string{"call", "list", "ls", "serve", "status", "help"}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"empty", nil, ""},
		{"known command", []string{"list", "--json"}, ""},
		{"flag first", []string{"--json", "read_url"}, ""},
		{"snake case tool", []string{"read_url", "url=https://example.com"}, "call"},
		{"bare tool without args", []string{"run_javascript"}, "call"},
		{"single word with pairs", []string{"search", "query=go"}, "call"},
		{"single word alone", []string{"lst"}, ""},
		{"not a tool name", []string{"Read-URL", "x=1"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := InferCommand(tt.args, known)
			assert.Equal(t, tt.want, got)
		})
	}
}
