// internal/story/entities.go
package story

import "strings"

const (
	UndefinedSystem    = "Sistema [A definir]"
	fehidroSystem      = "GFESP (FEHIDRO)"
	fundocampSystem    = "SPF (FUNDOCAMP)"
	AnalystPlaceholder = "[Nome do Analista Responsável]"

	DefaultRole = "usuário do sistema"
)

var knownSystems = []string{"SPF", "GFESP", "FEHIDRO", "FUNDOCAMP", "FEAP"}

var knownRoles = []string{
	"usuário do sistema", "gestor", "analista", "administrador",
	"operador", "secretária", "coordenador", "diretor", "técnico",
	"usuário da secretaria", "usuário do setor financeiro", "usuário do FEHIDRO",
}

// IdentifySystem returns the first known system code present in the note.
func (g *Generator) IdentifySystem(note string) string {
	upper := strings.ToUpper(note)
	for _, code := range g.systems {
		if strings.Contains(upper, code) {
			return code
		}
	}

	lower := strings.ToLower(note)
	switch {
	case strings.Contains(lower, "fehidro"):
		return fehidroSystem
	case strings.Contains(lower, "fundocamp"):
		return fundocampSystem
	}
	return UndefinedSystem
}

// IdentifyRole returns the role the story is written for.
func (g *Generator) IdentifyRole(note string, ctx Context) string {
	lower := strings.ToLower(note)
	for _, role := range g.roles {
		if strings.Contains(lower, strings.ToLower(role)) {
			return role
		}
	}

	switch {
	case strings.Contains(lower, "secretária") || strings.Contains(lower, "secretaria"):
		return "usuário da secretaria"
	case strings.Contains(lower, "fehidro"):
		return "gestor FEHIDRO"
	case ctx.HasArea(AreaFinancial):
		return "usuário do setor financeiro"
	case ctx.HasArea(AreaReports):
		return "analista de relatórios"
	}
	return DefaultRole
}

var requesterRules = []textRule{
	{
		name:  "fehidro-secretariat",
		match: func(f *facts) bool { return f.mentions("secretária", "fehidro") },
		text:  literal("Secretaria FEHIDRO"),
	},
	{
		name:  "secretariat",
		match: func(f *facts) bool { return f.mentions("secretária") },
		text:  literal("Secretaria [Nome da Secretaria]"),
	},
	{
		name:  "fehidro-area",
		match: func(f *facts) bool { return f.mentions("fehidro") },
		text:  literal("Área FEHIDRO - Secretaria do Meio Ambiente"),
	},
	{
		name:  "named-area",
		match: func(f *facts) bool { return f.mentions("área") },
		text:  literal("Área Solicitante [Nome da Área]"),
	},
	{
		name:  "undefined",
		match: always,
		text:  literal("[Área Solicitante - a definir]"),
	},
}

var useCaseRules = []textRule{
	{
		name:  "fehidro-report",
		match: (*facts).fehidroReport,
		text:  literal("Módulo FEHIDRO → Relatórios → Liberações Não Reembolsáveis → Botão: Gerar Relatório"),
	},
	{
		name:  "report",
		match: func(f *facts) bool { return f.mentions("relatório") },
		text:  literal("Módulo Relatórios → [Tipo de Relatório] → Funcionalidade de Geração"),
	},
	{
		name:  "payment",
		match: func(f *facts) bool { return f.mentions("pagamento") },
		text:  literal("Módulo Financeiro → Ordem de Pagamento → Botão: Nova Ordem"),
	},
	{
		name:  "release",
		match: func(f *facts) bool { return f.mentions("liberação") },
		text:  literal("Módulo Liberações → Gestão de Liberações → Funcionalidade Específica"),
	},
	{
		name:  "undefined",
		match: always,
		text:  literal("Módulo [A definir] → Funcionalidade [A definir] → Ação Específica"),
	},
}

func requestedBy(f *facts) string {
	_, text := firstText(requesterRules, f)
	return text
}

func useCasePath(f *facts) string {
	_, text := firstText(useCaseRules, f)
	return f.system + " → " + text
}
