// internal/story/context.go
package story

import (
	"regexp"
	"strings"
)

var (
	correctionKeywords  = []string{"erro", "bug", "problema", "falha", "não funciona", "incorreto"}
	newFeatureKeywords  = []string{"novo", "criar", "implementar", "adicionar", "desenvolver"}
	improvementKeywords = []string{"melhorar", "otimizar", "reformatar", "ajustar", "mudar", "revisitar"}

	highUrgencyKeywords = []string{"urgente", "imediato", "crítico", "prioridade", "já"}
	lowUrgencyKeywords  = []string{"quando possível", "futuro", "próxima versão", "eventualmente"}

	lowComplexityKeywords  = []string{"simples", "apenas", "só", "somente"}
	highComplexityKeywords = []string{"complexo", "múltiplos", "vários", "integração", "sistema"}

	financialKeywords = []string{"pagamento", "financeiro", "valor", "r$", "dinheiro"}
	interfaceKeywords = []string{"usuário", "interface", "tela", "navegação"}
	dataKeywords      = []string{"dados", "informação", "banco", "query"}
)

// Only literal "R$" amounts are recognised. The gap may hold any Unicode
// space, such as the no-break space pt-BR formatting puts after the symbol.
var monetaryPattern = regexp.MustCompile(`R\$[\s\p{Zs}]*[\p{Nd}.,]+`)

type stakeholderRule struct {
	keyword string
	label   string
}

var stakeholderRules = []stakeholderRule{
	{keyword: "secretária", label: "Secretária"},
	{keyword: "usuário", label: "Usuários finais"},
	{keyword: "equipe", label: "Equipe de desenvolvimento"},
}

// Analyze derives the request signals from a note. Keyword tests run against
// the lower-cased note; monetary amounts are taken from the note as written.
func Analyze(note string) Context {
	lower := strings.ToLower(note)

	ctx := Context{
		RequestType:     RequestImprovement,
		Urgency:         UrgencyNormal,
		Complexity:      ComplexityMedium,
		ImpactedAreas:   []Area{},
		MonetaryAmounts: []string{},
		Stakeholders:    []string{},
	}

	switch {
	case containsAny(lower, correctionKeywords):
		ctx.RequestType = RequestCorrection
	case containsAny(lower, newFeatureKeywords):
		ctx.RequestType = RequestNewFeature
	case containsAny(lower, improvementKeywords):
		ctx.RequestType = RequestImprovement
	}

	switch {
	case containsAny(lower, highUrgencyKeywords):
		ctx.Urgency = UrgencyHigh
	case containsAny(lower, lowUrgencyKeywords):
		ctx.Urgency = UrgencyLow
	}

	switch {
	case containsAny(lower, lowComplexityKeywords):
		ctx.Complexity = ComplexityLow
	case containsAny(lower, highComplexityKeywords):
		ctx.Complexity = ComplexityHigh
	}

	if strings.Contains(lower, "relatório") {
		ctx.ImpactedAreas = append(ctx.ImpactedAreas, AreaReports)
	}
	if containsAny(lower, financialKeywords) {
		ctx.ImpactedAreas = append(ctx.ImpactedAreas, AreaFinancial)
	}
	if containsAny(lower, interfaceKeywords) {
		ctx.ImpactedAreas = append(ctx.ImpactedAreas, AreaInterface)
	}
	if containsAny(lower, dataKeywords) {
		ctx.ImpactedAreas = append(ctx.ImpactedAreas, AreaData)
	}

	if amounts := monetaryPattern.FindAllString(note, -1); amounts != nil {
		ctx.MonetaryAmounts = amounts
	}

	for _, rule := range stakeholderRules {
		if strings.Contains(lower, rule.keyword) {
			ctx.Stakeholders = append(ctx.Stakeholders, rule.label)
		}
	}

	return ctx
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
