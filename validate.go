package briefing

import "strings"

var requiredMessages = []struct {
	field   Field
	message string
}{
	{FieldCompanyName, "Nome da empresa é obrigatório"},
	{FieldWhatsApp, "WhatsApp é obrigatório"},
	{FieldServices, "Serviços são obrigatórios"},
}

// RequiredFields lists the fields enforced by Validate.
func RequiredFields() []Field {
	out := make([]Field, len(requiredMessages))
	for i, r := range requiredMessages {
		out[i] = r.field
	}
	return out
}

// Validate reports every required field that is empty after trimming.
// Whitespace alone never counts as a value.
func Validate(values FieldValues) FieldErrors {
	errs := FieldErrors{}
	for _, r := range requiredMessages {
		if strings.TrimSpace(values.Get(r.field)) == "" {
			errs[r.field] = r.message
		}
	}
	return errs
}
