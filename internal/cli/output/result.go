package output

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CallResult is the outcome of a one-shot tool call.
type CallResult struct {
	Tool   string      `json:"tool"`
	Result interface{} `json:"result"`
}

func NewCallResult(tool string, result interface{}) *CallResult {
	return &CallResult{Tool: tool, Result: result}
}

// Text renders string results as-is and anything else as indented JSON.
func (r *CallResult) Text() string {
	switch v := r.Result.(type) {
	case nil:
		return ""
	case string:
		return v
	}
	data, err := json.MarshalIndent(r.Result, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", r.Result)
	}
	return string(data)
}

func (r *CallResult) JSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *CallResult) Markdown() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("### %s\n\n", r.Tool))
	if s, ok := r.Result.(string); ok {
		sb.WriteString(s)
		return strings.TrimSpace(sb.String())
	}
	sb.WriteString("```json\n")
	sb.WriteString(r.Text())
	sb.WriteString("\n```")
	return sb.String()
}
