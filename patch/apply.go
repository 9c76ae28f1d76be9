package patch

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// Apply validates ops against allowedPaths and applies them to a copy of
// current. current itself is never modified.
func Apply[T any](current T, ops []Operation, allowedPaths map[string]bool) (T, error) {
	if err := ValidatePatchOperations(ops, allowedPaths); err != nil {
		var zero T
		return zero, err
	}
	return ApplyRFC6902(current, ops)
}

func ApplyRFC6902[T any](current T, ops []Operation) (T, error) {
	var zero T
	if len(ops) == 0 {
		return current, nil
	}

	currentJSON, err := json.Marshal(current)
	if err != nil {
		return zero, fmt.Errorf("failed to marshal current state: %w", err)
	}
	patchJSON, err := json.Marshal(normalizeOperations(currentJSON, ops))
	if err != nil {
		return zero, fmt.Errorf("failed to marshal patch operations: %w", err)
	}
	decoded, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return zero, fmt.Errorf("failed to decode patch: %w", err)
	}
	modifiedJSON, err := decoded.Apply(currentJSON)
	if err != nil {
		return zero, fmt.Errorf("failed to apply patch: %w", err)
	}

	var result T
	if err := json.Unmarshal(modifiedJSON, &result); err != nil {
		return zero, fmt.Errorf("type mismatch: patch would result in invalid type: %w", err)
	}
	return result, nil
}

// normalizeOperations turns a replace of a missing member into an add and
// drops removes of members that are already gone.
func normalizeOperations(currentJSON []byte, ops []Operation) []Operation {
	var doc any
	if err := json.Unmarshal(currentJSON, &doc); err != nil {
		return ops
	}
	out := make([]Operation, 0, len(ops))
	for _, op := range ops {
		switch op.Op {
		case OperationReplace:
			if !pathExists(doc, op.Path) {
				op.Op = OperationAdd
			}
		case OperationRemove:
			if !pathExists(doc, op.Path) {
				continue
			}
		}
		out = append(out, op)
	}
	return out
}

func pathExists(doc any, path string) bool {
	if path == "" {
		return true
	}
	if !strings.HasPrefix(path, "/") {
		return false
	}
	cur := doc
	for _, token := range strings.Split(path[1:], "/") {
		token = unescapeJSONPointer(token)
		switch node := cur.(type) {
		case map[string]any:
			value, ok := node[token]
			if !ok {
				return false
			}
			cur = value
		case []any:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(node) {
				return false
			}
			cur = node[index]
		default:
			return false
		}
	}
	return true
}

func escapeJSONPointer(token string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(token)
}

func unescapeJSONPointer(token string) string {
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(token)
}
