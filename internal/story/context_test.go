// internal/story/context_test.go
package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze_Defaults(t *testing.T) {
	ctx := Analyze("")

	assert.Equal(t, RequestImprovement, ctx.RequestType)
	assert.Equal(t, UrgencyNormal, ctx.Urgency)
	assert.Equal(t, ComplexityMedium, ctx.Complexity)
	assert.NotNil(t, ctx.ImpactedAreas)
	assert.Empty(t, ctx.ImpactedAreas)
	assert.NotNil(t, ctx.MonetaryAmounts)
	assert.Empty(t, ctx.MonetaryAmounts)
	assert.Empty(t, ctx.Stakeholders)
}

func TestAnalyze_RequestType(t *testing.T) {
	tests := []struct {
		name string
		note string
		want RequestType
	}{
		{"bug is a correction", "Encontramos um bug na exportação", RequestCorrection},
		{"correction beats new feature", "Criar validação pois o campo está incorreto", RequestCorrection},
		{"new feature", "Precisamos criar uma exportação", RequestNewFeature},
		{"improvement keyword", "Otimizar a consulta", RequestImprovement},
		{"no keyword defaults to improvement", "Conversa com a área", RequestImprovement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.note).RequestType)
		})
	}
}

func TestAnalyze_Urgency(t *testing.T) {
	tests := []struct {
		name string
		note string
		want Urgency
	}{
		{"urgente is high", "Isso é urgente, quando possível revisar", UrgencyHigh},
		{"uppercase still matches", "URGENTE", UrgencyHigh},
		{"low", "Pode ficar para a próxima versão", UrgencyLow},
		{"normal", "Revisar a exportação", UrgencyNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.note).Urgency)
		})
	}
}

func TestAnalyze_Complexity(t *testing.T) {
	tests := []struct {
		name string
		note string
		want Complexity
	}{
		{"low wins over high", "Apenas uma integração", ComplexityLow},
		{"high", "Envolve integração com o banco", ComplexityHigh},
		{"sistema counts as high", "Alteração no sistema", ComplexityHigh},
		{"medium", "Revisar a exportação", ComplexityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.note).Complexity)
		})
	}
}

func TestAnalyze_ImpactedAreas(t *testing.T) {
	ctx := Analyze("O relatório de pagamento na tela mostra dados antigos")
	assert.Equal(t, []Area{AreaReports, AreaFinancial, AreaInterface, AreaData}, ctx.ImpactedAreas)

	ctx = Analyze("Exportação de query")
	assert.Equal(t, []Area{AreaData}, ctx.ImpactedAreas)
	assert.True(t, ctx.HasArea(AreaData))
	assert.False(t, ctx.HasArea(AreaReports))
}

func TestAnalyze_MonetaryAmounts(t *testing.T) {
	ctx := Analyze("Pagar R$ 1.500,00 e R$ 200,00 ao agente, mais R$1.500,00 depois")
	assert.Equal(t, []string{"R$ 1.500,00", "R$ 200,00", "R$1.500,00"}, ctx.MonetaryAmounts)

	ctx = Analyze("Repasse de R$\u00a01.500,00 ao agente")
	assert.Equal(t, []string{"R$\u00a01.500,00"}, ctx.MonetaryAmounts)

	ctx = Analyze("Valor em USD 300")
	assert.Empty(t, ctx.MonetaryAmounts)
}

func TestAnalyze_Stakeholders(t *testing.T) {
	ctx := Analyze("A equipe e a secretária conversaram com o usuário")
	assert.Equal(t, []string{"Secretária", "Usuários finais", "Equipe de desenvolvimento"}, ctx.Stakeholders)
}
