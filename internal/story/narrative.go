// internal/story/narrative.go
package story

import "strings"

const problemSuffix = " Esta situação impacta negativamente a operação e requer correção."

var problemSentenceKeywords = []string{"problema", "erro", "não", "incorreto", "falha"}

var problemRules = []textRule{
	{
		name:  "fehidro-report-obsolete",
		match: func(f *facts) bool { return f.fehidroReport() && f.mentions("não faz mais sentido") },
		text: literal(`O relatório de liberação não reembolsável FEHIDRO apresenta inconsistências na categorização de valores. ` +
			`Atualmente, o sistema exibe um campo "total de agente técnico" que não reflete adequadamente a realidade dos pagamentos, ` +
			`especialmente considerando as mudanças no tipo de agente e forma de pagamento. Por exemplo, valores que deveriam ser ` +
			`categorizados como "agente financeiro" estão sendo exibidos incorretamente como "agente técnico", causando confusão ` +
			`na interpretação dos dados financeiros.`),
	},
	{
		name:  "report-formatting",
		match: func(f *facts) bool { return f.mentions("formatação", "relatório") },
		text: literal("A formatação atual do relatório não atende às necessidades operacionais, apresentando informações de forma " +
			"confusa ou inadequada para a tomada de decisões."),
	},
	{
		name:  "confusion",
		match: func(f *facts) bool { return f.mentionsAny("confusão", "confuso") },
		text: literal("As informações apresentadas pelo sistema geram confusão entre os usuários, dificultando a interpretação " +
			"correta dos dados e impactando a eficiência operacional."),
	},
	{
		name:  "wrong-totals",
		match: func(f *facts) bool { return f.mentions("total") && f.mentionsAny("errado", "incorreto") },
		text: literal("Os cálculos de totais apresentados pelo sistema estão incorretos, não refletindo adequadamente os valores " +
			"reais das operações, o que compromete a confiabilidade das informações."),
	},
	{
		name:  "problem-sentences",
		match: func(f *facts) bool { return len(problemSentences(f.note)) > 0 },
		text: func(f *facts) string {
			return strings.Join(problemSentences(f.note), " ") + problemSuffix
		},
	},
	{
		name:  "generic",
		match: always,
		text: literal("Foi identificada uma necessidade de melhoria no sistema para atender melhor às demandas operacionais " +
			"e garantir maior eficiência nos processos."),
	},
}

// problemSentences returns the period-delimited sentences of the note that
// describe a defect, trimmed and in note order.
func problemSentences(note string) []string {
	var out []string
	for _, sentence := range strings.Split(note, ".") {
		if containsAny(strings.ToLower(sentence), problemSentenceKeywords) {
			out = append(out, strings.TrimSpace(sentence))
		}
	}
	return out
}

var solutionRules = []textRule{
	{
		name:  "fehidro-reformat",
		match: func(f *facts) bool { return f.mentions("fehidro", "reformatar") },
		text: literal(`Reformatar completamente a estrutura do relatório de liberações não reembolsáveis, separando ` +
			`adequadamente os totais por categoria: Total de Parcelas (somatório de todas as parcelas liberadas), ` +
			`Total de Agente Técnico (apenas quando aplicável, excluindo consórcios), e Total de Agente Financeiro ` +
			`(valores efetivamente pagos). Implementar regra específica para que quando o agente técnico for "CONSÓRCIO", ` +
			`o campo Total de Agente Técnico exiba R$ 0,00, garantindo a precisão das informações financeiras.`),
	},
	{
		name:  "reformat",
		match: func(f *facts) bool { return f.mentions("reformatar") },
		text: literal("Reformatar a estrutura atual para melhor organização e apresentação das informações, " +
			"garantindo maior clareza e facilidade de compreensão para os usuários."),
	},
	{
		name:  "separate",
		match: func(f *facts) bool { return f.mentions("separar") },
		text: literal("Implementar separação adequada das informações, categorizando-as de forma lógica e intuitiva " +
			"para facilitar a análise e tomada de decisões."),
	},
	{
		name:  "adjust",
		match: func(f *facts) bool { return f.mentions("ajustar") },
		text: literal("Realizar ajustes na funcionalidade atual para corrigir as inconsistências identificadas " +
			"e melhorar a experiência do usuário."),
	},
	{
		name:  "change",
		match: func(f *facts) bool { return f.mentions("mudar") },
		text: literal("Alterar a implementação atual para atender às novas demandas e requisitos operacionais, " +
			"garantindo maior eficiência e precisão."),
	},
	{
		name:  "generic",
		match: always,
		text: literal("Implementar melhorias abrangentes na funcionalidade para resolver os problemas identificados " +
			"e otimizar a experiência do usuário, garantindo maior eficiência operacional."),
	},
}

var goalRules = []textRule{
	{
		name:  "fehidro-report",
		match: (*facts).fehidroReport,
		text: literal("visualizar relatórios de liberações não reembolsáveis FEHIDRO com informações financeiras precisas, " +
			"categorizadas corretamente e organizadas de forma clara, permitindo análise eficiente dos dados de pagamentos " +
			"de agentes técnicos e financeiros"),
	},
	{
		name: "improved-reports",
		match: func(f *facts) bool {
			return f.ctx.RequestType == RequestImprovement && f.ctx.HasArea(AreaReports)
		},
		text: literal("acessar relatórios reformatados com informações organizadas de forma lógica e intuitiva, " +
			"facilitando a análise de dados e a tomada de decisões estratégicas"),
	},
	{
		name: "improved-financial",
		match: func(f *facts) bool {
			return f.ctx.RequestType == RequestImprovement && f.ctx.HasArea(AreaFinancial)
		},
		text: literal("visualizar informações financeiras precisas e bem categorizadas, garantindo transparência " +
			"e confiabilidade nos dados apresentados para análise e controle"),
	},
	{
		name:  "correction",
		match: func(f *facts) bool { return f.ctx.RequestType == RequestCorrection },
		text: literal("utilizar a funcionalidade corrigida sem erros ou inconsistências, garantindo operação " +
			"eficiente e confiável do sistema"),
	},
	{
		name:  "new-feature",
		match: func(f *facts) bool { return f.ctx.RequestType == RequestNewFeature },
		text: literal("acessar e utilizar a nova funcionalidade implementada de forma intuitiva e eficiente, " +
			"agregando valor aos processos operacionais"),
	},
	{
		name:  "generic",
		match: always,
		text: literal("utilizar o sistema de forma otimizada, com funcionalidades aprimoradas que garantem maior " +
			"eficiência, precisão e facilidade de uso"),
	},
}

var rationaleRules = []textRule{
	{
		name:  "fehidro-confusion",
		match: func(f *facts) bool { return f.mentions("fehidro") && f.problemMentions("confusão") },
		text: literal("eliminar confusões na interpretação de dados financeiros, garantir precisão nas informações " +
			"de pagamentos de agentes, facilitar a tomada de decisões baseada em dados confiáveis e melhorar a " +
			"transparência nos processos de liberação de recursos"),
	},
	{
		name:  "formatting",
		match: func(f *facts) bool { return f.problemMentions("formatação") },
		text: literal("ter acesso a informações bem organizadas e estruturadas, facilitando a compreensão e análise " +
			"dos dados, reduzindo tempo de processamento e minimizando erros de interpretação"),
	},
	{
		name:  "calculation",
		match: func(f *facts) bool { return f.problemMentions("cálculo", "total") },
		text: literal("garantir a precisão absoluta dos cálculos e valores apresentados, assegurar confiabilidade " +
			"nas informações financeiras e facilitar auditorias e controles internos"),
	},
	{
		name:  "reports",
		match: func(f *facts) bool { return f.ctx.HasArea(AreaReports) },
		text: literal("tomar decisões estratégicas baseadas em informações precisas e confiáveis, otimizar processos " +
			"de análise e controle, e garantir compliance com requisitos regulatórios"),
	},
	{
		name:  "financial",
		match: func(f *facts) bool { return f.ctx.HasArea(AreaFinancial) },
		text: literal("assegurar transparência e precisão nas informações financeiras, facilitar controles internos " +
			"e auditorias, e garantir conformidade com normas contábeis e regulamentares"),
	},
	{
		name:  "generic",
		match: always,
		text: literal("melhorar significativamente a eficiência operacional, reduzir retrabalho, minimizar erros " +
			"e garantir maior qualidade nos processos de trabalho"),
	},
}
