package types

// Phase is the submission state of one form session.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseProcessing Phase = "processing"
)

type FieldKind string

const (
	KindInput    FieldKind = "input"
	KindTextarea FieldKind = "textarea"
	KindSelect   FieldKind = "select"
	KindTel      FieldKind = "tel"
	KindEmail    FieldKind = "email"
)

type FieldInfo struct {
	Name        string    `json:"name"`
	JSONPointer string    `json:"json_pointer"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Section     string    `json:"section,omitempty"`
	Kind        FieldKind `json:"kind"`
	Options     []string  `json:"options,omitempty"`
	Required    bool      `json:"required"`
}

// FieldRow is one rendered line of a form: label, current value and the
// inline error shown under it, if any.
type FieldRow struct {
	Label string
	Value string
	Error string
}
