package briefing

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecJsonSchema(t *testing.T) {
	t.Parallel()
	raw, err := Spec{}.JsonSchema()
	require.NoError(t, err)

	var schema struct {
		Title      string `json:"title"`
		Properties map[string]struct {
			Enum []string `json:"enum"`
		} `json:"properties"`
	}
	require.NoError(t, sonic.UnmarshalString(raw, &schema))
	assert.Equal(t, "Briefing Inicial", schema.Title)
	for _, f := range Fields() {
		assert.Contains(t, schema.Properties, string(f))
	}
	assert.Equal(t, ServiceTypes, schema.Properties[string(FieldServiceType)].Enum)
	assert.Equal(t, LogoOptions, schema.Properties[string(FieldHasLogo)].Enum)
}

func TestSpecDelegates(t *testing.T) {
	t.Parallel()
	s := Spec{}
	v := sampleValues()
	assert.Equal(t, NewFieldValues(), s.Initial())
	assert.Equal(t, Compose(v), s.Summary(v))
	assert.Empty(t, s.ValidateFacts(v))
	assert.Len(t, s.ValidateFacts(s.Initial()), 3)

	name, category := s.Subject(v)
	assert.Equal(t, "Padaria Sol", name)
	assert.Equal(t, "Alimentação", category)

	v.HasLogo = "Talvez"
	assert.ErrorIs(t, s.CheckFacts(v), ErrInvalidOption)
}

func TestRows(t *testing.T) {
	t.Parallel()
	v := NewFieldValues()
	rows := Rows(v, Validate(v))
	require.Len(t, rows, 12)
	assert.Equal(t, "1. Nome da empresa (como no site)", rows[0].Label)
	assert.Equal(t, "Nome da empresa é obrigatório", rows[0].Error)
	assert.Equal(t, "Local", rows[3].Value)
	assert.Empty(t, rows[1].Error)
}
