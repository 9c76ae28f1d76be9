package briefing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*FieldValues)
		want   FieldErrors
	}{
		{
			name:   "defaults",
			mutate: func(*FieldValues) {},
			want: FieldErrors{
				FieldCompanyName: "Nome da empresa é obrigatório",
				FieldWhatsApp:    "WhatsApp é obrigatório",
				FieldServices:    "Serviços são obrigatórios",
			},
		},
		{
			name: "complete",
			mutate: func(v *FieldValues) {
				v.CompanyName = "Acme"
				v.WhatsApp = "11 90000-0000"
				v.Services = "Consultoria"
			},
			want: FieldErrors{},
		},
		{
			name: "whitespace only",
			mutate: func(v *FieldValues) {
				v.CompanyName = "   "
				v.WhatsApp = "\t\n"
				v.Services = "Consultoria"
			},
			want: FieldErrors{
				FieldCompanyName: "Nome da empresa é obrigatório",
				FieldWhatsApp:    "WhatsApp é obrigatório",
			},
		},
		{
			name: "optional fields never reported",
			mutate: func(v *FieldValues) {
				v.CompanyName = "Acme"
				v.Services = "Consultoria"
				v.Email = ""
			},
			want: FieldErrors{FieldWhatsApp: "WhatsApp é obrigatório"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := NewFieldValues()
			tt.mutate(&v)
			if diff := cmp.Diff(tt.want, Validate(v)); diff != "" {
				t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRequiredFieldsMatchCatalog(t *testing.T) {
	t.Parallel()
	var required []Field
	for _, info := range Catalog() {
		if info.Required {
			required = append(required, Field(info.Name))
		}
	}
	assert.Equal(t, required, RequiredFields())
}

func TestFieldErrorsHelpers(t *testing.T) {
	t.Parallel()
	errs := Validate(NewFieldValues())
	assert.Equal(t, []Field{FieldCompanyName, FieldWhatsApp, FieldServices}, errs.Fields())

	without := errs.Without(FieldWhatsApp)
	assert.False(t, without.Has(FieldWhatsApp))
	assert.True(t, errs.Has(FieldWhatsApp), "Without must not modify the receiver")

	roundTrip := FieldErrorsFromStrings(errs.Strings())
	assert.Equal(t, errs, roundTrip)
}
