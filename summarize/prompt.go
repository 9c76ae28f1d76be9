package summarize

import "fmt"

const promptTemplate = `Atue como um assistente pessoal eficiente.
Reescreva a seguinte mensagem de contato para um formato de lista resumida e profissional para WhatsApp.

Dados do remetente:
Nome: %s
Categoria: %s

Mensagem original:
"%s"

Regras de formatação:
- Use emojis adequados.
- Mantenha o tom profissional mas direto.
- O formato deve ser:
  *Novo Contato* 🔔
  👤 *Nome:* [Nome]
  📂 *Assunto:* [Categoria]
  📝 *Resumo:* [Resumo em tópicos ou parágrafo curto]

Não adicione introduções ou conclusões fora desse formato.`

func BuildPrompt(name, category, message string) string {
	return fmt.Sprintf(promptTemplate, name, category, message)
}

// FormatCard lays out a structured summary in the same four lines the
// prompt asks free-text models for.
func FormatCard(name, subject, summary string) string {
	return fmt.Sprintf("*Novo Contato* 🔔\n👤 *Nome:* %s\n📂 *Assunto:* %s\n📝 *Resumo:* %s", name, subject, summary)
}
