package server

// Tool names advertised by tools/list.
const (
	ToolFormat = "gdscript_format"
	ToolLint   = "gdscript_lint"
)

func stringArray(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": description,
	}
}

func typed(kind, description string) map[string]any {
	return map[string]any{"type": kind, "description": description}
}

func bounded(minimum int, description string) map[string]any {
	return map[string]any{"type": "integer", "minimum": minimum, "description": description}
}

func targetProperties(filesDescription string) map[string]any {
	return map[string]any{
		"files":   stringArray(filesDescription),
		"dir":     typed("string", "Root directory to scan for files."),
		"include": stringArray("Glob patterns relative to dir to include (default: [\"**/*.gd\"])."),
		"exclude": stringArray("Glob patterns relative to dir to exclude."),
	}
}

func formatInputSchema() map[string]any {
	props := targetProperties("Paths to .gd files to format.")
	props["files"].(map[string]any)["minItems"] = 1
	props["check"] = typed("boolean", "Check formatting only; do not modify files.")
	props["stdout"] = typed("boolean", "Print formatted output to stdout instead of modifying files.")
	props["use_spaces"] = typed("boolean", "Use spaces for indentation.")
	props["indent_size"] = bounded(1, "Number of spaces for indentation when use_spaces is true.")
	props["reorder_code"] = typed("boolean", "Reorder code declarations according to the style guide.")
	props["safe"] = typed("boolean", "Enable safe mode.")
	props["continue_on_error"] = typed("boolean", "Deprecated compatibility flag. Formatting always continues per file.")

	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}

func lintInputSchema() map[string]any {
	props := targetProperties("Paths to .gd files to lint.")
	props["disable_rules"] = typed("string", "Comma-separated lint rule names to disable.")
	props["max_line_length"] = bounded(1, "Maximum allowed line length.")
	props["list_rules"] = typed("boolean", "List available lint rules.")
	props["pretty"] = typed("boolean", "Use pretty lint output.")
	props["include_raw_output"] = typed("boolean", "Include raw stdout/stderr in structuredContent.")
	props["max_diagnostics"] = bounded(0, "Maximum number of diagnostics to return.")

	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}

// toolDefinitions lists the tools in a fixed order.
func toolDefinitions() []map[string]any {
	return []map[string]any{
		{
			"name":        ToolFormat,
			"description": "Format one or more GDScript files using the latest GDQuest formatter binary.",
			"inputSchema": formatInputSchema(),
		},
		{
			"name":        ToolLint,
			"description": "Lint GDScript files using the latest GDQuest formatter binary.",
			"inputSchema": lintInputSchema(),
		},
	}
}
