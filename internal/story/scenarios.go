// internal/story/scenarios.go
package story

import "strings"

// outcome formats a Then clause as a lead line followed by dash items and
// optional closing lines.
func outcome(lead string, items []string, closing ...string) string {
	var b strings.Builder
	b.WriteString(lead)
	for _, item := range items {
		b.WriteString("\n- ")
		b.WriteString(item)
	}
	for _, line := range closing {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}

var fehidroScenarios = []Scenario{
	{
		Name:  "Cenário 1: Nova Estrutura do Relatório FEHIDRO",
		Given: "que o usuário acessa o relatório de liberações não reembolsáveis FEHIDRO no sistema GFESP",
		When:  "o relatório for gerado e exibido",
		Then: outcome("deve apresentar as seguintes colunas separadas e claramente identificadas:",
			[]string{
				"Total de Parcelas: somatório de todas as parcelas liberadas",
				"Total de Agente Técnico: valores pagos a agentes técnicos (excluindo consórcios)",
				"Total de Agente Financeiro: valores efetivamente pagos a agentes financeiros",
			},
			"E deve aplicar formatação clara com cabeçalhos descritivos e valores em formato monetário brasileiro",
		),
	},
	{
		Name:  "Cenário 2: Regra Específica para Consórcios",
		Given: `que existe uma liberação onde o agente técnico é classificado como "CONSÓRCIO"`,
		When:  "o relatório for gerado para esta liberação",
		Then: outcome("deve exibir:", []string{
			"Total de Agente Técnico: R$ 0,00 (zero)",
			"Total de Agente Financeiro: valor real da taxa de agente financeiro (ex: R$ 1.522,50)",
			`Observação clara indicando "Consórcio - Sem pagamento de AT" ou similar`,
		}),
	},
	{
		Name:  "Cenário 3: Validação de Categorização de Valores",
		Given: "que existem dados de liberação com diferentes tipos de agentes no sistema",
		When:  "o relatório for processado e os valores calculados",
		Then: outcome("deve categorizar corretamente:", []string{
			`Valores de "Taxa Agente Financeiro" devem aparecer em "Total de Agente Financeiro"`,
			`Valores de agentes técnicos não-consórcio devem aparecer em "Total de Agente Técnico"`,
			`Somatório geral deve ser exibido em "Total de Parcelas"`,
			"Não deve haver sobreposição ou duplicação de valores entre categorias",
		}),
	},
}

var genericScenarios = []Scenario{
	{
		Name:  "Cenário 1: Funcionalidade Principal",
		Given: "que o usuário possui as permissões adequadas e acessa a funcionalidade no sistema",
		When:  "executar a operação principal conforme especificado",
		Then: outcome("deve funcionar conforme os requisitos estabelecidos, apresentando:", []string{
			"Interface responsiva e intuitiva",
			"Processamento correto dos dados",
			"Feedback adequado ao usuário sobre o status da operação",
			"Tratamento de erros com mensagens claras",
		}),
	},
	{
		Name:  "Cenário 2: Validação de Dados e Regras de Negócio",
		Given: "que existem dados válidos no sistema para processamento",
		When:  "a funcionalidade for executada com estes dados",
		Then: outcome("deve processar corretamente aplicando todas as regras de negócio:", []string{
			"Validação de integridade dos dados",
			"Aplicação de cálculos e transformações necessárias",
			"Verificação de consistência com outras funcionalidades",
			"Geração de logs de auditoria quando aplicável",
		}),
	},
	{
		Name:  "Cenário 3: Performance e Usabilidade",
		Given: "que o sistema está em operação normal com carga típica de usuários",
		When:  "a funcionalidade for utilizada",
		Then: outcome("deve atender aos critérios de performance:", []string{
			"Tempo de resposta inferior a 3 segundos para operações simples",
			"Interface responsiva em dispositivos móveis e desktop",
			"Compatibilidade com navegadores principais (Chrome, Firefox, Edge)",
			"Manutenção da sessão do usuário durante a operação",
		}),
	},
}

// acceptanceCriteria returns a copy of the scenario set selected for the note.
func acceptanceCriteria(f *facts) []Scenario {
	src := genericScenarios
	if scenarioSet(f) == ScenarioSetFehidro {
		src = fehidroScenarios
	}
	out := make([]Scenario, len(src))
	copy(out, src)
	return out
}

func scenarioSet(f *facts) ScenarioSet {
	if f.fehidroReport() {
		return ScenarioSetFehidro
	}
	return ScenarioSetGeneric
}
