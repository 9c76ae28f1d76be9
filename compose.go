package briefing

import (
	"fmt"
	"strings"
)

const greeting = "Olá, realizei a assinatura da minha estrutura e preenchi o formulário. Aqui estão os resultados:"

var messageSections = []struct {
	field Field
	label string
}{
	{FieldCompanyName, "Nome da Empresa:"},
	{FieldSegment, "Segmento:"},
	{FieldLocation, "Cidade/Estado:"},
	{FieldServiceType, "Tipo de Atendimento:"},
	{FieldWhatsApp, "WhatsApp:"},
	{FieldEmail, "E-mail:"},
	{FieldHours, "Horário:"},
	{FieldTagline, "O que faz (1 frase):"},
	{FieldServices, "Principais Serviços:"},
	{FieldDifferential, "Diferencial:"},
	{FieldHasLogo, "Possui Logotipo?"},
	{FieldColors, "Cores Preferidas:"},
}

// Compose renders values into the fixed WhatsApp message. Values are copied
// verbatim; an empty value leaves an empty line under its label.
func Compose(values FieldValues) string {
	var sb strings.Builder
	sb.WriteString(greeting)
	for i, s := range messageSections {
		fmt.Fprintf(&sb, "\n\n*%d. %s*\n%s", i+1, s.label, values.Get(s.field))
	}
	return sb.String()
}
