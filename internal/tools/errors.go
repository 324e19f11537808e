package tools

import "errors"

var (
	ErrToolsDirectory         = errors.New("tools directory unavailable")
	ErrToolLoad               = errors.New("failed to load tools")
	ErrDuplicateTool          = errors.New("duplicate tool name")
	ErrInvalidToolName        = errors.New("invalid tool name")
	ErrManifestParse          = errors.New("failed to parse tool manifest")
	ErrManifestInterpolation  = errors.New("failed to interpolate tool manifest")
	ErrInvalidTimeout         = errors.New("invalid timeout")
	ErrInvalidParamType       = errors.New("invalid parameter type")
	ErrUnknownBuiltin         = errors.New("unknown builtin tool")
	ErrMissingBuiltin         = errors.New("manifest without a script must name a builtin")
	ErrConflictingDefinition  = errors.New("tool has both a script and a builtin")
	ErrMissingBaseDirectory   = errors.New("file_read requires config.base_directory")
	ErrLoaderCreation         = errors.New("failed to create script loader")
	ErrCompilationFailed      = errors.New("script compilation failed")
	ErrInvalidArguments       = errors.New("tool arguments must be a JSON object")
	ErrUnsupportedScriptKind  = errors.New("unsupported script kind")
	ErrDuplicateScriptForName = errors.New("more than one script for the same tool")
)
