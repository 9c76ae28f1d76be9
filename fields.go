package briefing

import "github.com/tbxark/briefing/types"

// Field names one attribute of FieldValues. The value doubles as the JSON
// key and the HTML input name.
type Field string

const (
	FieldCompanyName  Field = "companyName"
	FieldSegment      Field = "segment"
	FieldLocation     Field = "location"
	FieldServiceType  Field = "serviceType"
	FieldWhatsApp     Field = "whatsapp"
	FieldEmail        Field = "email"
	FieldHours        Field = "hours"
	FieldTagline      Field = "tagline"
	FieldServices     Field = "services"
	FieldDifferential Field = "differential"
	FieldHasLogo      Field = "hasLogo"
	FieldColors       Field = "colors"
)

var ServiceTypes = []string{
	"Local",
	"Online",
	"Ambos (Local e Online)",
}

var LogoOptions = []string{
	"Sim (Enviarei arquivo no WhatsApp)",
	"Não (Preciso criar)",
}

const (
	sectionCompany  = "Sobre a Empresa"
	sectionContact  = "Contato e Horários"
	sectionBusiness = "Detalhes do Negócio"
	sectionVisual   = "Identidade Visual"
)

var catalog = []types.FieldInfo{
	{Name: string(FieldCompanyName), DisplayName: "1. Nome da empresa (como no site)", Placeholder: "Ex: Tech Solutions", Section: sectionCompany, Kind: types.KindInput, Required: true},
	{Name: string(FieldSegment), DisplayName: "2. Segmento / Nicho", Placeholder: "Ex: Odontologia, Moda...", Section: sectionCompany, Kind: types.KindInput},
	{Name: string(FieldLocation), DisplayName: "3. Cidade e Estado", Placeholder: "Ex: São Paulo - SP", Section: sectionCompany, Kind: types.KindInput},
	{Name: string(FieldServiceType), DisplayName: "4. Tipo de Atendimento", Section: sectionCompany, Kind: types.KindSelect, Options: ServiceTypes},
	{Name: string(FieldWhatsApp), DisplayName: "5. WhatsApp Principal (com DDD)", Placeholder: "(00) 00000-0000", Section: sectionContact, Kind: types.KindTel, Required: true},
	{Name: string(FieldEmail), DisplayName: "6. E-mail de Contato", Placeholder: "contato@empresa.com", Section: sectionContact, Kind: types.KindEmail},
	{Name: string(FieldHours), DisplayName: "7. Horário de Atendimento", Placeholder: "Ex: Seg a Sex das 9h às 18h", Section: sectionContact, Kind: types.KindInput},
	{Name: string(FieldTagline), DisplayName: "8. Em uma frase: o que sua empresa faz?", Placeholder: "Ex: Ajudamos pessoas a sorrir com mais confiança.", Section: sectionBusiness, Kind: types.KindInput},
	{Name: string(FieldServices), DisplayName: "9. Principais serviços ou soluções?", Placeholder: "Liste os principais serviços...", Section: sectionBusiness, Kind: types.KindTextarea, Required: true},
	{Name: string(FieldDifferential), DisplayName: "10. Diferencial / Tempo de mercado", Placeholder: "Ex: Atendimento humanizado, 10 anos de mercado...", Section: sectionBusiness, Kind: types.KindTextarea},
	{Name: string(FieldHasLogo), DisplayName: "11. Possui Logotipo?", Section: sectionVisual, Kind: types.KindSelect, Options: LogoOptions},
	{Name: string(FieldColors), DisplayName: "12. Cores preferidas para o site", Placeholder: "Ex: Azul marinho e Branco", Section: sectionVisual, Kind: types.KindInput},
}

// Catalog returns the form fields in display order.
func Catalog() []types.FieldInfo {
	out := make([]types.FieldInfo, len(catalog))
	for i, info := range catalog {
		info.JSONPointer = "/" + info.Name
		out[i] = info
	}
	return out
}

// Fields returns every field name in display order.
func Fields() []Field {
	out := make([]Field, len(catalog))
	for i, info := range catalog {
		out[i] = Field(info.Name)
	}
	return out
}

func LookupField(name string) (Field, bool) {
	for _, info := range catalog {
		if info.Name == name {
			return Field(info.Name), true
		}
	}
	return "", false
}

func (f Field) Info() (types.FieldInfo, bool) {
	for _, info := range Catalog() {
		if info.Name == string(f) {
			return info, true
		}
	}
	return types.FieldInfo{}, false
}
