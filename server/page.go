package server

import (
	"html/template"

	"github.com/tbxark/briefing"
	"github.com/tbxark/briefing/types"
)

type fieldView struct {
	types.FieldInfo
	Value string
	Error string
}

type sectionView struct {
	Title  string
	Fields []fieldView
}

type pageData struct {
	Sections   []sectionView
	Alert      string
	DeepLink   string
	Processing bool
}

func newPageData(values briefing.FieldValues, errs briefing.FieldErrors) pageData {
	var data pageData
	for _, info := range briefing.Catalog() {
		f := briefing.Field(info.Name)
		view := fieldView{FieldInfo: info, Value: values.Get(f), Error: errs[f]}
		n := len(data.Sections)
		if n == 0 || data.Sections[n-1].Title != info.Section {
			data.Sections = append(data.Sections, sectionView{Title: info.Section})
			n++
		}
		data.Sections[n-1].Fields = append(data.Sections[n-1].Fields, view)
	}
	return data
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Briefing Inicial</title>
</head>
<body>
<main>
<h1>Briefing Inicial</h1>
<p>Preencha os dados abaixo para iniciarmos a configuração da sua estrutura.</p>
{{if .Alert}}<p role="alert">{{.Alert}}</p>{{end}}
{{if .DeepLink}}
<p>Respostas prontas! Se o WhatsApp não abrir automaticamente, <a id="deeplink" href="{{.DeepLink}}" target="_blank" rel="noopener">clique aqui</a>.</p>
<script>window.open(document.getElementById("deeplink").href, "_blank");</script>
{{end}}
<form method="post" action="/">
{{range .Sections}}
<fieldset>
<legend>{{.Title}}</legend>
{{range .Fields}}
<label for="{{.Name}}">{{.DisplayName}}</label>
{{if eq .Kind "select"}}
<select id="{{.Name}}" name="{{.Name}}">
{{$v := .Value}}{{range .Options}}<option value="{{.}}"{{if eq . $v}} selected{{end}}>{{.}}</option>{{end}}
</select>
{{else if eq .Kind "textarea"}}
<textarea id="{{.Name}}" name="{{.Name}}" placeholder="{{.Placeholder}}">{{.Value}}</textarea>
{{else}}
<input id="{{.Name}}" name="{{.Name}}" type="{{if eq .Kind "tel"}}tel{{else if eq .Kind "email"}}email{{else}}text{{end}}" value="{{.Value}}" placeholder="{{.Placeholder}}">
{{end}}
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{end}}
</fieldset>
{{end}}
<button type="submit"{{if .Processing}} disabled{{end}}>{{if .Processing}}Enviando...{{else}}Enviar Respostas{{end}}</button>
<p>Ao clicar, seu WhatsApp será aberto com as respostas preenchidas.</p>
</form>
</main>
</body>
</html>
`))
