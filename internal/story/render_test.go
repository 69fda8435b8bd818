// internal/story/render_test.go
package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"markdown", FormatMarkdown, false},
		{"MD", FormatMarkdown, false},
		{" text ", FormatText, false},
		{"txt", FormatText, false},
		{"html", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_Markdown(t *testing.T) {
	doc := NewGenerator().Process("")

	out, err := Render(doc, FormatMarkdown)
	require.NoError(t, err)

	assert.Contains(t, out, "# História de Usuário\n")
	assert.Contains(t, out, "**Solicitado por:** [Área Solicitante - a definir]")
	assert.Contains(t, out, "Como usuário do sistema\nPosso ")
	assert.Contains(t, out, "### Cenário 1: Funcionalidade Principal")
	assert.Contains(t, out, "**Dado** que o usuário possui as permissões adequadas")
	assert.Contains(t, out, "## TAREFAS\n• Realizar análise detalhada")
	assert.Contains(t, out, "## DEPENDÊNCIAS\n")
	assert.Contains(t, out, "## RISCOS\n")
}

func TestRender_Text(t *testing.T) {
	doc := NewGenerator().Process("Ajustar o relatório FEHIDRO")

	out, err := Render(doc, FormatText)
	require.NoError(t, err)

	assert.NotContains(t, out, "**")
	assert.NotContains(t, out, "## ")
	assert.Contains(t, out, "HISTÓRIA DE USUÁRIO\n")
	assert.Contains(t, out, "CRITÉRIOS DE ACEITE:\n")
	assert.Contains(t, out, "Então deve exibir:\n- Total de Agente Técnico: R$ 0,00 (zero)")
	assert.Contains(t, out, "TAREFAS:\n• Analisar a estrutura atual da query")
}

func TestRender_UnsupportedFormat(t *testing.T) {
	_, err := Render(StoryDocument{}, Format("pdf"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
