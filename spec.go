package briefing

import (
	"encoding/json"
	"fmt"

	"github.com/eino-contrib/jsonschema"
	"github.com/tbxark/briefing/agent"
	"github.com/tbxark/briefing/types"
)

var _ agent.FormSpec[FieldValues] = (*Spec)(nil)

// Spec plugs the briefing form into agent.FormFlow.
type Spec struct{}

func (Spec) JsonSchema() (string, error) {
	reflector := &jsonschema.Reflector{ExpandedStruct: true}
	schema := reflector.Reflect(&FieldValues{})
	schema.Title = "Briefing Inicial"
	schema.Description = "Dados da empresa para iniciar a configuração da estrutura: identificação, contato, serviços e identidade visual."
	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON schema: %w", err)
	}
	return string(schemaBytes), nil
}

func (Spec) Fields() []types.FieldInfo {
	return Catalog()
}

func (Spec) Initial() FieldValues {
	return NewFieldValues()
}

func (Spec) CheckFacts(current FieldValues) error {
	return CheckOptions(current)
}

func (Spec) ValidateFacts(current FieldValues) map[string]string {
	return Validate(current).Strings()
}

func (Spec) Summary(current FieldValues) string {
	return Compose(current)
}

func (Spec) Subject(current FieldValues) (string, string) {
	return current.CompanyName, current.Segment
}

// Rows pairs every catalog field with its value and inline error.
func Rows(values FieldValues, errs FieldErrors) []types.FieldRow {
	rows := make([]types.FieldRow, 0, len(catalog))
	for _, info := range catalog {
		f := Field(info.Name)
		rows = append(rows, types.FieldRow{
			Label: info.DisplayName,
			Value: values.Get(f),
			Error: errs[f],
		})
	}
	return rows
}
