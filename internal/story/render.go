// internal/story/render.go
package story

import (
	"errors"
	"fmt"
	"strings"
)

type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat accepts a format name case-insensitively. "md" is an alias for
// markdown.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// style holds the per-format decorations; the section layout is shared.
type style struct {
	title   func(string) string
	section func(string) string
	label   func(string) string
	heading func(string) string
}

var styles = map[Format]style{
	FormatMarkdown: {
		title:   func(s string) string { return "# " + s },
		section: func(s string) string { return "## " + s },
		label:   func(s string) string { return "**" + s + "**" },
		heading: func(s string) string { return "### " + s },
	},
	FormatText: {
		title:   strings.ToUpper,
		section: func(s string) string { return strings.ToUpper(s) + ":" },
		label:   func(s string) string { return s },
		heading: func(s string) string { return s },
	},
}

// Render lays out a story document for people to read.
func Render(doc StoryDocument, format Format) (string, error) {
	st, ok := styles[format]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}

	var b strings.Builder
	para := func(lines ...string) {
		for _, l := range lines {
			b.WriteString(l)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	para(st.title("História de Usuário"))
	para(st.label("Solicitado por:") + " " + doc.RequestedBy)
	para(st.label("Analista responsável:") + " " + doc.ResponsibleAnalyst)
	para(st.label("Casos de Uso:") + " " + doc.UseCasePath)

	para(st.section("Narrativa"))
	para(
		"Como "+doc.Role,
		"Posso "+doc.Goal,
		"Para "+doc.Rationale,
	)

	para(st.section("Critérios de Aceite"))
	for _, sc := range doc.AcceptanceCriteria {
		para(st.heading(sc.Name))
		para(st.label("Dado") + " " + sc.Given)
		para(st.label("Quando") + " " + sc.When)
		para(st.label("Então") + " " + sc.Then)
	}

	para(st.section("TAREFAS"), doc.TasksText())
	para(st.section("DEPENDÊNCIAS"), doc.DependenciesText())
	para(st.section("RISCOS"), doc.RisksText())

	return strings.TrimRight(b.String(), "\n") + "\n", nil
}
