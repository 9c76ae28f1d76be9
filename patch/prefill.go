package patch

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// GeneratePatchesFromInitial diffs initial against current and returns the
// operations that carry every non-zero value of initial into current.
// Zero values in initial never overwrite current.
func GeneratePatchesFromInitial[T any](current, initial T) ([]Operation, error) {
	currentMap, err := toMap(current)
	if err != nil {
		return nil, fmt.Errorf("failed to convert current state: %w", err)
	}
	initialMap, err := toMap(initial)
	if err != nil {
		return nil, fmt.Errorf("failed to convert initial state: %w", err)
	}
	ops := make([]Operation, 0)
	diffMaps("", currentMap, initialMap, &ops)
	return ops, nil
}

func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func diffMaps(prefix string, current, initial map[string]any, ops *[]Operation) {
	keys := make([]string, 0, len(initial))
	for k := range initial {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		want := initial[key]
		if isZeroValue(want) {
			continue
		}
		path := prefix + Pointer(key)
		have, exists := current[key]

		if wantMap, ok := want.(map[string]any); ok {
			if haveMap, ok := have.(map[string]any); ok {
				diffMaps(path, haveMap, wantMap, ops)
				continue
			}
		}
		switch {
		case !exists:
			*ops = append(*ops, Operation{Op: OperationAdd, Path: path, Value: want})
		case !reflect.DeepEqual(have, want):
			*ops = append(*ops, Operation{Op: OperationReplace, Path: path, Value: want})
		}
	}
}

func isZeroValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case float64:
		return val == 0
	case bool:
		return !val
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}
