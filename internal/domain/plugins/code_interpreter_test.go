package plugins

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeInterpreter_HandleCall(t *testing.T) {
	ci := NewCodeInterpreter()
	require.NoError(t, ci.Initialize(context.Background()))

	tests := []struct {
		name   string
		args   map[string]interface{}
		expect interface{}
	}{
		{"arithmetic", map[string]interface{}{"script": "return 1 + 2;"}, 3},
		{"arguments", map[string]interface{}{
			"script":    "return args.a * 2;",
			"arguments": map[string]interface{}{"a": float64(21)},
		}, 42},
		{"string", map[string]interface{}{"script": "return ['a', 'b'].join('-');"}, "a-b"},
		{"no return", map[string]interface{}{"script": "var x = 1;"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ci.HandleCall(context.Background(), "run_javascript", tt.args)
			require.NoError(t, err)
			assert.EqualValues(t, tt.expect, res.(map[string]interface{})["result"])
		})
	}
}

func TestCodeInterpreter_ReturnsObjects(t *testing.T) {
	ci := NewCodeInterpreter()

	res, err := ci.Execute(context.Background(), "return {room: 'kitchen', on: true};", nil)
	require.NoError(t, err)

	obj := res.(map[string]interface{})
	assert.Equal(t, "kitchen", obj["room"])
	assert.Equal(t, true, obj["on"])
}

func TestCodeInterpreter_LogGoesToHost(t *testing.T) {
	var logged []string
	ci := NewCodeInterpreter()
	ci.logf = func(format string, args ...interface{}) {
		logged = append(logged, args[0].(string))
	}

	_, err := ci.Execute(context.Background(), "log('hello'); return 1;", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, logged)
}

func TestCodeInterpreter_Errors(t *testing.T) {
	ci := NewCodeInterpreter()

	_, err := ci.HandleCall(context.Background(), "run_javascript", map[string]interface{}{})
	assert.EqualError(t, err, "script is required")

	_, err = ci.Execute(context.Background(), "throw new Error('boom');", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestCodeInterpreter_Interrupted(t *testing.T) {
	ci := NewCodeInterpreter()
	ci.timeout = 50 * time.Millisecond

	_, err := ci.Execute(context.Background(), "while (true) {}", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
