package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/robbyt/go-loglater"
	"github.com/robbyt/go-polyscript/platform"
	"github.com/robbyt/go-polyscript/platform/constants"
	"github.com/robbyt/go-polyscript/platform/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func loadBasic(t *testing.T) *Set {
	t.Helper()
	set, err := Load(basicDir)
	require.NoError(t, err)
	return set
}

func TestTool_StarlarkCall(t *testing.T) {
	set := loadBasic(t)
	reverse, _ := set.Get("reverse")

	t.Run("reverses text", func(t *testing.T) {
		res := reverse.Call(t.Context(), map[string]any{"text": "stressed"})
		assert.False(t, res.IsError)
		assert.Equal(t, "desserts", resultText(t, res))
	})

	t.Run("uses manifest data", func(t *testing.T) {
		res := reverse.Call(t.Context(), map[string]any{"text": "far too long for it"})
		assert.True(t, res.IsError)
		assert.Equal(t, "input exceeds 10 characters", resultText(t, res))
	})

	t.Run("nil arguments", func(t *testing.T) {
		res := reverse.Call(t.Context(), nil)
		assert.False(t, res.IsError)
		assert.Empty(t, resultText(t, res))
	})
}

func TestTool_RisorCall(t *testing.T) {
	set := loadBasic(t)
	greet, _ := set.Get("greet")

	res := greet.Call(t.Context(), map[string]any{"name": "gopher"})
	assert.False(t, res.IsError)
	assert.Equal(t, "hello, gopher", resultText(t, res))
}

func TestTool_ScriptFailureIsErrorResult(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"boom.star": "def main():\n    fail(\"boom\")\n\n_ = main()\n",
	})
	set, err := Load(dir)
	require.NoError(t, err)
	boom, _ := set.Get("boom")

	res := boom.Call(t.Context(), map[string]any{})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "script execution failed")
}

func TestTool_TimeoutIsErrorResult(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"spin.star": "def spin():\n    n = 0\n    for i in range(1000000000):\n        n += i\n    return n\n\n_ = spin()\n",
		"spin.toml": `timeout = "50ms"`,
	})
	set, err := Load(dir, WithLogHandler(loglater.NewLogCollector(nil)))
	require.NoError(t, err)
	spin, ok := set.Get("spin")
	require.True(t, ok)
	assert.Equal(t, 50*time.Millisecond, spin.Timeout)

	start := time.Now()
	res := spin.Call(t.Context(), map[string]any{})
	assert.Less(t, time.Since(start), 10*time.Second)
	assert.True(t, res.IsError)
	assert.Equal(t, "tool timed out after 50ms", resultText(t, res))
}

// capturingEvaluator records the eval data it is handed.
type capturingEvaluator struct {
	got map[string]any
}

func (e *capturingEvaluator) Eval(ctx context.Context) (platform.EvaluatorResponse, error) {
	e.got, _ = ctx.Value(constants.EvalData).(map[string]any)
	return nil, nil
}

func (e *capturingEvaluator) AddDataToContext(ctx context.Context, d ...map[string]any) (context.Context, error) {
	return data.NewContextProvider(constants.EvalData).AddDataToContext(ctx, d...)
}

func TestScriptExecutor_DataDefaultsToEmptyMap(t *testing.T) {
	for name, manifestData := range map[string]map[string]any{
		"no manifest data": nil,
		"manifest data":    {"limit": int64(3)},
	} {
		t.Run(name, func(t *testing.T) {
			ev := &capturingEvaluator{}
			exec := &scriptExecutor{
				eval:    ev,
				data:    manifestData,
				timeout: time.Second,
				logger:  slog.New(loglater.NewLogCollector(nil)),
			}
			res := exec.execute(t.Context(), map[string]any{"x": "y"})
			assert.False(t, res.IsError)

			require.NotNil(t, ev.got)
			got, ok := ev.got[scriptKeyData].(map[string]any)
			require.True(t, ok, "data is %T", ev.got[scriptKeyData])
			require.NotNil(t, got)
			if manifestData == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, manifestData, got)
			}
			assert.Equal(t, map[string]any{"x": "y"}, ev.got[scriptKeyArgs])
		})
	}
}

func TestTool_StructuredResult(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"stats.star": "_ = {\"count\": len(ctx.get(\"args\", {}))}\n",
	})
	set, err := Load(dir)
	require.NoError(t, err)
	stats, _ := set.Get("stats")

	res := stats.Call(t.Context(), map[string]any{"a": 1, "b": 2})
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"count":2}`, resultText(t, res))
	assert.NotNil(t, res.StructuredContent)
}

func TestBuiltins(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "notes.txt"), []byte("remember the milk"), 0o644))
	dir := writeFiles(t, map[string]string{
		"echo.toml": `builtin = "echo"`,
		"calc.toml": `builtin = "calculation"`,
		"read.toml": "builtin = \"file_read\"\n[config]\nbase_directory = \"" + filepath.ToSlash(base) + "\"\n",
	})
	set, err := Load(dir)
	require.NoError(t, err)

	echo, _ := set.Get("echo")
	calc, _ := set.Get("calc")
	read, _ := set.Get("read")

	tests := []struct {
		name    string
		tool    *Tool
		args    map[string]any
		want    string
		wantErr bool
	}{
		{name: "echo message", tool: echo, args: map[string]any{"message": "hi"}, want: "hi"},
		{name: "echo all args", tool: echo, args: map[string]any{"x": 1.0}, want: `{"x":1}`},
		{name: "add", tool: calc, args: map[string]any{"a": 2.0, "b": 3.5, "op": "+"}, want: "5.5"},
		{name: "multiply strings", tool: calc, args: map[string]any{"a": "4", "b": "2.5", "op": "*"}, want: "10"},
		{name: "divide", tool: calc, args: map[string]any{"a": 9.0, "b": 3.0, "op": "/"}, want: "3"},
		{name: "divide by zero", tool: calc, args: map[string]any{"a": 1.0, "b": 0.0, "op": "/"}, want: "division by zero", wantErr: true},
		{name: "bad operator", tool: calc, args: map[string]any{"a": 1.0, "b": 1.0, "op": "^"}, wantErr: true},
		{name: "missing operand", tool: calc, args: map[string]any{"b": 1.0, "op": "+"}, wantErr: true},
		{name: "read file", tool: read, args: map[string]any{"path": "notes.txt"}, want: "remember the milk"},
		{name: "read escapes", tool: read, args: map[string]any{"path": "../outside.txt"}, wantErr: true},
		{name: "read missing", tool: read, args: map[string]any{"path": "absent.txt"}, wantErr: true},
		{name: "read without path", tool: read, args: map[string]any{}, want: "path argument required", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.tool.Call(t.Context(), tt.args)
			assert.Equal(t, tt.wantErr, res.IsError)
			if tt.want != "" {
				assert.Equal(t, tt.want, resultText(t, res))
			}
		})
	}
}

func TestTool_InputSchema(t *testing.T) {
	set := loadBasic(t)
	reverse, _ := set.Get("reverse")

	raw, err := json.Marshal(reverse.MCPTool().InputSchema)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {"text": {"type": "string", "description": "text to reverse"}},
		"required": ["text"]
	}`, string(raw))

	greet, _ := set.Get("greet")
	raw, err = json.Marshal(greet.InputSchema())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "object"}`, string(raw))
}

func TestDecodeArguments(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    map[string]any
		wantErr bool
	}{
		{name: "nil", input: nil, want: map[string]any{}},
		{name: "empty raw", input: json.RawMessage(nil), want: map[string]any{}},
		{name: "json null", input: json.RawMessage("null"), want: map[string]any{}},
		{name: "raw object", input: json.RawMessage(`{"a":1}`), want: map[string]any{"a": 1.0}},
		{name: "bytes", input: []byte(`{"b":"x"}`), want: map[string]any{"b": "x"}},
		{name: "string", input: `{"c":true}`, want: map[string]any{"c": true}},
		{name: "map", input: map[string]any{"d": 2}, want: map[string]any{"d": 2}},
		{name: "struct", input: struct {
			E string `json:"e"`
		}{E: "v"}, want: map[string]any{"e": "v"}},
		{name: "array", input: json.RawMessage(`[1,2]`), wantErr: true},
		{name: "garbage", input: "not json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeArguments(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArguments)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResultFromValue(t *testing.T) {
	t.Run("envelope with string", func(t *testing.T) {
		res := resultFromValue(map[string]any{"isError": true, "content": "nope"})
		assert.True(t, res.IsError)
		assert.Equal(t, "nope", resultText(t, res))
		assert.Nil(t, res.StructuredContent)
	})

	t.Run("envelope with structured content", func(t *testing.T) {
		res := resultFromValue(map[string]any{"content": []any{1, 2}})
		assert.False(t, res.IsError)
		assert.Equal(t, "[1,2]", resultText(t, res))
	})

	t.Run("plain map", func(t *testing.T) {
		res := resultFromValue(map[string]any{"k": "v"})
		assert.JSONEq(t, `{"k":"v"}`, resultText(t, res))
		assert.Equal(t, map[string]any{"k": "v"}, res.StructuredContent)
	})

	t.Run("scalars", func(t *testing.T) {
		assert.Equal(t, "text", resultText(t, resultFromValue("text")))
		assert.Equal(t, "42", resultText(t, resultFromValue(int64(42))))
		assert.Equal(t, "true", resultText(t, resultFromValue(true)))
		assert.Empty(t, resultText(t, resultFromValue(nil)))
	})
}

func TestManifest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr []error
	}{
		{name: "minimal", raw: `builtin = "echo"`},
		{name: "negative timeout", raw: `timeout = "-1s"`, wantErr: []error{ErrInvalidTimeout}},
		{name: "bad param type", raw: "[params.x]\ntype = \"date\"", wantErr: []error{ErrInvalidParamType}},
		{name: "bad name", raw: `name = "has space"`, wantErr: []error{ErrInvalidToolName}},
		{
			name:    "several problems",
			raw:     "builtin = \"file_read\"\ntimeout = \"later\"",
			wantErr: []error{ErrInvalidTimeout, ErrMissingBaseDirectory},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := parseManifest([]byte(tt.raw))
			require.NoError(t, err)
			err = m.Validate()
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				require.ErrorIs(t, err, want)
			}
		})
	}
}

func TestBundledScripts(t *testing.T) {
	examples, err := Load("../../example_tools")
	require.NoError(t, err)
	bundled, err := Load("../../tools")
	require.NoError(t, err)

	count, _ := examples.Get("word_count")
	res := count.Call(t.Context(), map[string]any{"text": "one two  three"})
	require.False(t, res.IsError)
	assert.JSONEq(t, `{"words":3,"characters":14}`, resultText(t, res))

	greet, _ := examples.Get("greet")
	assert.Equal(t, "hello, gopher", resultText(t, greet.Call(t.Context(), map[string]any{"name": "gopher"})))

	reverse, _ := bundled.Get("reverse")
	assert.Equal(t, "olleh", resultText(t, reverse.Call(t.Context(), map[string]any{"text": "hello"})))

	shout, _ := bundled.Get("shout")
	assert.Equal(t, "hey!", resultText(t, shout.Call(t.Context(), map[string]any{"text": "hey"})))
}
