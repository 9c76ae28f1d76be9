package briefing

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleValues() FieldValues {
	v := NewFieldValues()
	v.CompanyName = "Padaria Sol"
	v.Segment = "Alimentação"
	v.Location = "Campinas - SP"
	v.WhatsApp = "(19) 99999-0000"
	v.Email = "contato@padariasol.com"
	v.Hours = "Seg a Sáb das 6h às 20h"
	v.Tagline = "Pães artesanais fresquinhos todos os dias."
	v.Services = "Pães\nBolos & Tortas"
	v.Differential = "20 anos de mercado"
	v.Colors = "Amarelo e marrom"
	return v
}

func TestComposeLayout(t *testing.T) {
	t.Parallel()
	msg := Compose(sampleValues())

	require.True(t, strings.HasPrefix(msg, greeting+"\n\n*1. Nome da Empresa:*\nPadaria Sol"))
	parts := strings.Split(msg, "\n\n")
	require.Len(t, parts, 13)
	assert.Equal(t, greeting, parts[0])

	want := []string{
		"*1. Nome da Empresa:*\nPadaria Sol",
		"*2. Segmento:*\nAlimentação",
		"*3. Cidade/Estado:*\nCampinas - SP",
		"*4. Tipo de Atendimento:*\nLocal",
		"*5. WhatsApp:*\n(19) 99999-0000",
		"*6. E-mail:*\ncontato@padariasol.com",
		"*7. Horário:*\nSeg a Sáb das 6h às 20h",
		"*8. O que faz (1 frase):*\nPães artesanais fresquinhos todos os dias.",
		"*9. Principais Serviços:*\nPães\nBolos & Tortas",
		"*10. Diferencial:*\n20 anos de mercado",
		"*11. Possui Logotipo?*\nSim (Enviarei arquivo no WhatsApp)",
		"*12. Cores Preferidas:*\nAmarelo e marrom",
	}
	if diff := cmp.Diff(want, parts[1:]); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	t.Parallel()
	v := sampleValues()
	assert.Equal(t, Compose(v), Compose(v))
}

func TestComposeEmptyOptionalFields(t *testing.T) {
	t.Parallel()
	v := NewFieldValues()
	v.CompanyName = "Acme"
	v.WhatsApp = "11 90000-0000"
	v.Services = "Consultoria"
	msg := Compose(v)

	assert.Contains(t, msg, "*2. Segmento:*\n\n\n*3. Cidade/Estado:*")
	assert.True(t, strings.HasSuffix(msg, "*12. Cores Preferidas:*\n"))
	assert.Contains(t, msg, "*4. Tipo de Atendimento:*\nLocal")
}

func TestComposeKeepsValuesVerbatim(t *testing.T) {
	t.Parallel()
	v := sampleValues()
	v.CompanyName = "  *Sol* & Cia #1  "
	msg := Compose(v)
	assert.Contains(t, msg, "*1. Nome da Empresa:*\n  *Sol* & Cia #1  \n\n*2.")
}

func TestComposeScenarioAcme(t *testing.T) {
	t.Parallel()
	v := FieldValues{CompanyName: "Acme", WhatsApp: "11999999999", Services: "Consulting"}
	require.Empty(t, Validate(v))

	msg := Compose(v)
	assert.Contains(t, msg, "*1. Nome da Empresa:*\nAcme\n\n")
	assert.Contains(t, msg, "*9. Principais Serviços:*\nConsulting\n\n")
	assert.Contains(t, msg, "*12. Cores Preferidas:*\n")
	assert.Equal(t, 12, strings.Count(msg, "\n\n*"))
}
