// internal/story/lists_test.go
package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasks(t *testing.T) {
	tests := []struct {
		name      string
		note      string
		wantLen   int
		wantFirst string
	}{
		{"generic without system", "", 10, "Realizar análise detalhada do código atual da funcionalidade"},
		{"fehidro report with system", "Reformatar o relatório FEHIDRO", 16,
			"Analisar a estrutura atual da query do relatório de liberações FEHIDRO no banco de dados"},
		{"reports area", "melhorar o relatório", 10,
			"Analisar a estrutura atual do relatório e identificar pontos de melhoria"},
		{"interface area", "ajustar a tela", 10,
			"Analisar a interface atual e mapear pontos de melhoria na experiência do usuário"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tasks(factsFor(tt.note))
			require.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantFirst, got[0])
			assert.Equal(t, taskTrailer, got[len(got)-2:])
		})
	}
}

func TestTasks_SystemBullets(t *testing.T) {
	got := tasks(factsFor("Reformatar o relatório FEHIDRO"))
	assert.Equal(t, "Atualizar documentação técnica completa do sistema FEHIDRO", got[12])
	assert.Equal(t, "Criar release notes detalhadas para a nova versão do FEHIDRO", got[13])

	for _, item := range tasks(factsFor("")) {
		assert.NotContains(t, item, UndefinedSystem)
	}
}

func TestDependencies(t *testing.T) {
	tests := []struct {
		name      string
		note      string
		wantLen   int
		wantFirst string
	}{
		{"trailer only", "", 5,
			"Disponibilidade completa da equipe de desenvolvimento durante o período de implementação"},
		{"high urgency", "urgente", 6, "Priorização imediata no cronograma de desenvolvimento da equipe"},
		{"fehidro, reports and financial stack", "relatório fehidro com pagamento", 17,
			"Acesso completo ao banco de dados GFESP para modificação das queries de relatório"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dependencies(factsFor(tt.note))
			require.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantFirst, got[0])
			assert.Equal(t, "Preparação de plano de comunicação para usuários sobre as mudanças", got[len(got)-1])
		})
	}
}

func TestRisks(t *testing.T) {
	tests := []struct {
		name    string
		note    string
		wantLen int
	}{
		{"trailer only", "", 5},
		{"high complexity", "integração com outro portal", 8},
		{"fehidro obsolete report", "O relatório FEHIDRO não faz mais sentido", 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := risks(factsFor(tt.note))
			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, "Impacto na produtividade dos usuários durante o período de adaptação às mudanças", got[len(got)-1])
		})
	}
}

func TestAcceptanceCriteria_ReturnsCopy(t *testing.T) {
	got := acceptanceCriteria(factsFor(""))
	got[0].Name = "changed"

	assert.Equal(t, "Cenário 1: Funcionalidade Principal", genericScenarios[0].Name)
}
