package patch

const (
	OperationAdd     = "add"
	OperationRemove  = "remove"
	OperationReplace = "replace"
)

// Operation is one RFC 6902 step.
type Operation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// Pointer returns the JSON pointer of a top-level member.
func Pointer(name string) string {
	return "/" + escapeJSONPointer(name)
}

// ReplaceField builds the single operation that sets one top-level member.
func ReplaceField(name string, value any) Operation {
	return Operation{Op: OperationReplace, Path: Pointer(name), Value: value}
}
