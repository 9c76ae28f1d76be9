package briefing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFieldValuesDefaults(t *testing.T) {
	t.Parallel()
	v := NewFieldValues()
	assert.Equal(t, "Local", v.ServiceType)
	assert.Equal(t, "Sim (Enviarei arquivo no WhatsApp)", v.HasLogo)
	for _, f := range Fields() {
		if f == FieldServiceType || f == FieldHasLogo {
			continue
		}
		assert.Empty(t, v.Get(f), "field %s", f)
	}
}

func TestWithReplacesExactlyOneField(t *testing.T) {
	t.Parallel()
	base := sampleValues()
	for _, f := range Fields() {
		if f == FieldServiceType || f == FieldHasLogo {
			continue
		}
		next, err := base.With(f, "novo valor")
		require.NoError(t, err)
		assert.Equal(t, "novo valor", next.Get(f))
		for _, other := range Fields() {
			if other != f {
				assert.Equal(t, base.Get(other), next.Get(other), "%s changed while setting %s", other, f)
			}
		}
	}
	assert.Equal(t, "Padaria Sol", base.CompanyName, "receiver must stay untouched")
}

func TestWithChoiceFields(t *testing.T) {
	t.Parallel()
	v := NewFieldValues()

	next, err := v.With(FieldServiceType, "Ambos (Local e Online)")
	require.NoError(t, err)
	assert.Equal(t, "Ambos (Local e Online)", next.ServiceType)

	next, err = next.With(FieldHasLogo, "Não (Preciso criar)")
	require.NoError(t, err)
	assert.Equal(t, "Não (Preciso criar)", next.HasLogo)

	_, err = v.With(FieldServiceType, "Delivery")
	assert.ErrorIs(t, err, ErrInvalidOption)

	_, err = v.With(FieldHasLogo, "")
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestWithUnknownField(t *testing.T) {
	t.Parallel()
	_, err := NewFieldValues().With(Field("budget"), "1000")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestFieldValuesJSONKeys(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(sampleValues())
	require.NoError(t, err)
	var m map[string]string
	require.NoError(t, json.Unmarshal(data, &m))
	for _, f := range Fields() {
		assert.Contains(t, m, string(f))
	}
	assert.Len(t, m, len(Fields()))
}

func TestCatalog(t *testing.T) {
	t.Parallel()
	infos := Catalog()
	require.Len(t, infos, 12)
	for i, info := range infos {
		assert.Equal(t, "/"+info.Name, info.JSONPointer)
		f, ok := LookupField(info.Name)
		require.True(t, ok)
		assert.Equal(t, Fields()[i], f)
	}
	_, ok := LookupField("budget")
	assert.False(t, ok)

	info, ok := FieldServiceType.Info()
	require.True(t, ok)
	assert.Equal(t, ServiceTypes, info.Options)
}
