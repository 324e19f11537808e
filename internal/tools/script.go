package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/robbyt/go-polyscript/engines/risor"
	"github.com/robbyt/go-polyscript/engines/starlark"
	"github.com/robbyt/go-polyscript/platform"
	"github.com/robbyt/go-polyscript/platform/constants"
	"github.com/robbyt/go-polyscript/platform/data"
	"github.com/robbyt/go-polyscript/platform/script/loader"
)

const (
	scriptKeyArgs = "args"
	scriptKeyData = "data"
)

// scriptExecutor evaluates a compiled go-polyscript program. Scripts see
// ctx["args"] with the call arguments and ctx["data"] with manifest data.
type scriptExecutor struct {
	eval    platform.Evaluator
	data    map[string]any
	timeout time.Duration
	logger  *slog.Logger
}

// compileScript loads path from disk and compiles it for the given engine.
// go-polyscript requires absolute paths for disk loaders.
func compileScript(kind Kind, path string, handler slog.Handler) (platform.Evaluator, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoaderCreation, err)
	}
	ld, err := loader.NewFromDisk(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoaderCreation, err)
	}

	switch kind {
	case KindRisor:
		ev, err := risor.FromRisorLoader(handler, ld)
		if err != nil {
			return nil, fmt.Errorf("%w: risor: %w", ErrCompilationFailed, err)
		}
		return ev, nil
	case KindStarlark:
		ev, err := starlark.FromStarlarkLoader(handler, ld)
		if err != nil {
			return nil, fmt.Errorf("%w: starlark: %w", ErrCompilationFailed, err)
		}
		return ev, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScriptKind, kind)
	}
}

func (s *scriptExecutor) execute(ctx context.Context, args map[string]any) *mcp.CallToolResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	manifestData := map[string]any{}
	if s.data != nil {
		manifestData = maps.Clone(s.data)
	}
	scriptData := map[string]any{
		scriptKeyArgs: args,
		scriptKeyData: manifestData,
	}

	provider := data.NewContextProvider(constants.EvalData)
	evalCtx, err := provider.AddDataToContext(ctx, scriptData)
	if err != nil {
		s.logger.Error("Failed to add script data", "error", err)
		return errorResult("failed to prepare script data: %v", err)
	}

	resp, err := s.eval.Eval(evalCtx)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return errorResult("tool timed out after %s", s.timeout)
		}
		s.logger.Warn("Script execution failed", "error", err)
		return errorResult("script execution failed: %v", err)
	}
	if resp == nil {
		return textResult("")
	}
	return resultFromValue(resp.Interface())
}
