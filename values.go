package briefing

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnknownField  = errors.New("unknown field")
	ErrInvalidOption = errors.New("value is not one of the allowed options")
)

// FieldValues is the full business profile collected by the form.
type FieldValues struct {
	CompanyName  string `json:"companyName" jsonschema:"description=Nome da empresa como aparece no site"`
	Segment      string `json:"segment" jsonschema:"description=Segmento ou nicho de atuação"`
	Location     string `json:"location" jsonschema:"description=Cidade e estado"`
	ServiceType  string `json:"serviceType" validate:"oneof='Local' 'Online' 'Ambos (Local e Online)'" jsonschema:"description=Tipo de atendimento,enum=Local,enum=Online,enum=Ambos (Local e Online)"`
	WhatsApp     string `json:"whatsapp" jsonschema:"description=WhatsApp principal com DDD"`
	Email        string `json:"email" jsonschema:"description=E-mail de contato"`
	Hours        string `json:"hours" jsonschema:"description=Horário de atendimento"`
	Tagline      string `json:"tagline" jsonschema:"description=Em uma frase o que a empresa faz"`
	Services     string `json:"services" jsonschema:"description=Principais serviços ou soluções"`
	Differential string `json:"differential" jsonschema:"description=Diferencial ou tempo de mercado"`
	HasLogo      string `json:"hasLogo" validate:"oneof='Sim (Enviarei arquivo no WhatsApp)' 'Não (Preciso criar)'" jsonschema:"description=Se a empresa já possui logotipo,enum=Sim (Enviarei arquivo no WhatsApp),enum=Não (Preciso criar)"`
	Colors       string `json:"colors" jsonschema:"description=Cores preferidas para o site"`
}

// NewFieldValues returns the start-of-session defaults: every text field
// empty and both choice fields on their first option.
func NewFieldValues() FieldValues {
	return FieldValues{
		ServiceType: ServiceTypes[0],
		HasLogo:     LogoOptions[0],
	}
}

func (v *FieldValues) ref(f Field) *string {
	switch f {
	case FieldCompanyName:
		return &v.CompanyName
	case FieldSegment:
		return &v.Segment
	case FieldLocation:
		return &v.Location
	case FieldServiceType:
		return &v.ServiceType
	case FieldWhatsApp:
		return &v.WhatsApp
	case FieldEmail:
		return &v.Email
	case FieldHours:
		return &v.Hours
	case FieldTagline:
		return &v.Tagline
	case FieldServices:
		return &v.Services
	case FieldDifferential:
		return &v.Differential
	case FieldHasLogo:
		return &v.HasLogo
	case FieldColors:
		return &v.Colors
	}
	return nil
}

func (v FieldValues) Get(f Field) string {
	if p := v.ref(f); p != nil {
		return *p
	}
	return ""
}

// With returns a copy of v with exactly one attribute replaced.
func (v FieldValues) With(f Field, value string) (FieldValues, error) {
	p := v.ref(f)
	if p == nil {
		return v, fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	*p = value
	if err := CheckOptions(v); err != nil {
		return FieldValues{}, err
	}
	return v, nil
}

var optionValidator = validator.New()

// CheckOptions reports whether both choice fields hold one of their
// allowed options.
func CheckOptions(v FieldValues) error {
	err := optionValidator.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s=%q", ErrInvalidOption, fe.StructField(), fe.Value())
	}
	return err
}

// FieldErrors maps a field to the message shown under it.
type FieldErrors map[Field]string

func (e FieldErrors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// Without returns a copy of e lacking f.
func (e FieldErrors) Without(f Field) FieldErrors {
	out := make(FieldErrors, len(e))
	for k, msg := range e {
		if k != f {
			out[k] = msg
		}
	}
	return out
}

// Fields lists the fields carrying an error, in catalog order.
func (e FieldErrors) Fields() []Field {
	out := make([]Field, 0, len(e))
	for _, f := range Fields() {
		if e.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (e FieldErrors) Strings() map[string]string {
	out := make(map[string]string, len(e))
	for k, msg := range e {
		out[string(k)] = msg
	}
	return out
}

func FieldErrorsFromStrings(m map[string]string) FieldErrors {
	out := make(FieldErrors, len(m))
	for k, msg := range m {
		out[Field(k)] = msg
	}
	return out
}
