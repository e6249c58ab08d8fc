package executor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gdscriptmcp/internal/targets"
)

// UsageError reports tool arguments that are malformed or inconsistent.
type UsageError = targets.UsageError

func usageErrorf(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// Arguments holds the raw members of a tools/call "arguments" object.
type Arguments map[string]json.RawMessage

// ParseArguments decodes the arguments member of a tools/call request. An
// absent member yields an empty set; ok is false for anything that is not a
// JSON object, including null.
func ParseArguments(raw json.RawMessage) (args Arguments, ok bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Arguments{}, true
	}
	if trimmed[0] != '{' {
		return nil, false
	}
	if err := json.Unmarshal(trimmed, &args); err != nil {
		return nil, false
	}
	return args, true
}

func (a Arguments) has(key string) bool {
	_, found := a[key]
	return found
}

// value decodes a member into a generic value with numbers kept verbatim.
func (a Arguments) value(key string) (any, bool) {
	raw, found := a[key]
	if !found {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, true
	}
	return v, true
}

// Bool returns the member as a boolean, false when absent.
func (a Arguments) Bool(key string) (bool, error) {
	v, found := a.value(key)
	if !found {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, usageErrorf("`%s` must be a boolean", key)
	}
	return b, nil
}

// Int returns the member as a signed integer. Fractional and out-of-range
// numbers are rejected.
func (a Arguments) Int(key string) (value int64, present bool, err error) {
	v, found := a.value(key)
	if !found {
		return 0, false, nil
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, true, usageErrorf("`%s` must be an integer", key)
	}
	i, convErr := n.Int64()
	if convErr != nil {
		return 0, true, usageErrorf("`%s` must be an integer", key)
	}
	return i, true, nil
}

// Count is Int restricted to non-negative values.
func (a Arguments) Count(key string) (value int, present bool, err error) {
	i, present, err := a.Int(key)
	if err != nil || !present {
		return 0, present, err
	}
	if i < 0 {
		return 0, true, usageErrorf("`%s` must be >= 0", key)
	}
	if int64(int(i)) != i {
		return 0, true, usageErrorf("`%s` is too large", key)
	}
	return int(i), true, nil
}

func (a Arguments) String(key string) (value string, present bool, err error) {
	v, found := a.value(key)
	if !found {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", true, usageErrorf("`%s` must be a string", key)
	}
	return s, true, nil
}

func (a Arguments) Strings(key string) (values []string, present bool, err error) {
	v, found := a.value(key)
	if !found {
		return nil, false, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, true, usageErrorf("`%s` must be an array of strings", key)
	}
	values = make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, true, usageErrorf("`%s` must be an array of strings", key)
		}
		values = append(values, s)
	}
	return values, true, nil
}

// TargetRequest extracts files, dir, include and exclude.
func (a Arguments) TargetRequest() (targets.Request, error) {
	var req targets.Request
	var err error

	if req.Files, _, err = a.Strings("files"); err != nil {
		return req, err
	}
	if req.Dir, req.HasDir, err = a.String("dir"); err != nil {
		return req, err
	}
	if req.Include, req.HasInclude, err = a.Strings("include"); err != nil {
		return req, err
	}
	if req.Exclude, req.HasExclude, err = a.Strings("exclude"); err != nil {
		return req, err
	}
	return req, nil
}

// resolveTargets parses and resolves the file set in one step.
func (a Arguments) resolveTargets(required bool) ([]string, error) {
	req, err := a.TargetRequest()
	if err != nil {
		return nil, err
	}
	return targets.Resolve(req, required)
}
