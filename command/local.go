package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tbxark/briefing/types"
)

// LocalParser understands a small line syntax:
//
//	set <field> <value>     <field> = <value>     <field>: <value>
//	clear <field>
//	submit | show | reset | help | quit
//
// A literal \n inside a value becomes a line break.
type LocalParser[T any] struct {
	Fields   []string
	Keywords map[Kind][]string
}

func NewLocalParser[T any](fields []string) *LocalParser[T] {
	return &LocalParser[T]{
		Fields: fields,
		Keywords: map[Kind][]string{
			Submit: {"submit", "enviar", "send"},
			Show:   {"show", "mostrar", "ver"},
			Reset:  {"reset", "reiniciar"},
			Help:   {"help", "ajuda", "?"},
			Quit:   {"quit", "exit", "sair"},
		},
	}
}

func (p *LocalParser[T]) ParseCommand(ctx context.Context, req *types.ToolRequest[T]) ([]Command, error) {
	return p.Parse(req.Input)
}

func (p *LocalParser[T]) Parse(input string) ([]Command, error) {
	line := strings.TrimSpace(input)
	if line == "" {
		return nil, nil
	}
	word := strings.ToLower(strings.TrimLeft(line, ":/"))
	for kind, keywords := range p.Keywords {
		for _, keyword := range keywords {
			if word == keyword {
				return []Command{{Kind: kind}}, nil
			}
		}
	}

	verb, rest, _ := strings.Cut(line, " ")
	switch strings.ToLower(verb) {
	case "set", "definir":
		name, value, _ := strings.Cut(strings.TrimSpace(rest), " ")
		if name == "" {
			return nil, fmt.Errorf("%w: set needs a field name", ErrUnrecognized)
		}
		return []Command{{Kind: Set, Field: p.resolve(name), Value: unescapeValue(strings.TrimSpace(value))}}, nil
	case "clear", "limpar":
		name := strings.TrimSpace(rest)
		if name == "" {
			return nil, fmt.Errorf("%w: clear needs a field name", ErrUnrecognized)
		}
		return []Command{{Kind: Clear, Field: p.resolve(name)}}, nil
	}

	if i := strings.IndexAny(line, "=:"); i > 0 {
		if field, ok := p.lookup(strings.TrimSpace(line[:i])); ok {
			return []Command{{Kind: Set, Field: field, Value: unescapeValue(strings.TrimSpace(line[i+1:]))}}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnrecognized, line)
}

func (p *LocalParser[T]) lookup(name string) (string, bool) {
	for _, field := range p.Fields {
		if strings.EqualFold(field, name) {
			return field, true
		}
	}
	return "", false
}

func (p *LocalParser[T]) resolve(name string) string {
	if field, ok := p.lookup(name); ok {
		return field
	}
	return name
}

func (p *LocalParser[T]) Usage() string {
	var sb strings.Builder
	sb.WriteString("Comandos:\n")
	sb.WriteString("  set <campo> <valor>   ou   <campo> = <valor>\n")
	sb.WriteString("  clear <campo>         remove o erro exibido no campo\n")
	sb.WriteString("  show | submit | reset | help | quit\n")
	sb.WriteString("Use \\n para quebrar linha dentro de um valor.\n")
	if len(p.Fields) > 0 {
		sb.WriteString("Campos: ")
		sb.WriteString(strings.Join(p.Fields, ", "))
		sb.WriteString("\n")
	}
	return sb.String()
}

func unescapeValue(v string) string {
	return strings.ReplaceAll(v, `\n`, "\n")
}

// FailbackParser returns the first parser result that is not an error.
type FailbackParser[T any] struct {
	parsers []Parser[T]
}

func NewFailbackParser[T any](parsers ...Parser[T]) *FailbackParser[T] {
	return &FailbackParser[T]{parsers: parsers}
}

func (p *FailbackParser[T]) ParseCommand(ctx context.Context, req *types.ToolRequest[T]) ([]Command, error) {
	var lastErr error
	for _, parser := range p.parsers {
		cmds, err := parser.ParseCommand(ctx, req)
		if err == nil {
			return cmds, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
