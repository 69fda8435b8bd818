// internal/story/lists.go
package story

import "fmt"

// Tasks pick exactly one primary block.
var taskRules = []bulletRule{
	{
		name:  "fehidro-report",
		match: (*facts).fehidroReport,
		items: []string{
			"Analisar a estrutura atual da query do relatório de liberações FEHIDRO no banco de dados",
			"Modificar a query SQL para incluir colunas separadas: total_parcelas, total_agente_tecnico, total_agente_financeiro",
			"Implementar lógica condicional para identificar agentes técnicos do tipo 'CONSÓRCIO'",
			"Criar regra de negócio: IF agente_tecnico = 'CONSÓRCIO' THEN total_agente_tecnico = 0",
			"Ajustar o template do relatório (PDF/Excel) para incluir as novas colunas com formatação adequada",
			"Implementar formatação monetária brasileira (R$ X.XXX,XX) para todos os valores",
			"Adicionar cabeçalhos descritivos e legendas explicativas no relatório",
			"Criar testes unitários para validar a categorização correta dos valores",
			"Realizar testes de integração com dados reais do ambiente de homologação",
			"Validar performance da nova query com volume de dados de produção",
			"Atualizar documentação técnica do módulo FEHIDRO",
			"Criar manual do usuário com exemplos da nova estrutura do relatório",
		},
	},
	{
		name:  "reports",
		match: func(f *facts) bool { return f.ctx.HasArea(AreaReports) },
		items: []string{
			"Analisar a estrutura atual do relatório e identificar pontos de melhoria",
			"Modificar as queries do banco de dados para incluir os novos campos/colunas necessários",
			"Implementar lógica de categorização e organização dos dados conforme especificado",
			"Ajustar o layout e formatação do relatório (PDF/Excel) conforme novo modelo aprovado",
			"Implementar validações de dados para garantir consistência das informações",
			"Criar testes automatizados para validar a geração correta do relatório",
			"Realizar testes de performance com volume de dados de produção",
			"Atualizar documentação técnica e manual do usuário",
		},
	},
	{
		name:  "interface",
		match: func(f *facts) bool { return f.ctx.HasArea(AreaInterface) },
		items: []string{
			"Analisar a interface atual e mapear pontos de melhoria na experiência do usuário",
			"Desenvolver mockups e protótipos da nova interface",
			"Implementar as modificações no frontend conforme especificações de UX/UI",
			"Adicionar validações client-side e server-side necessárias",
			"Implementar feedback visual adequado para ações do usuário",
			"Ajustar responsividade para dispositivos móveis e tablets",
			"Realizar testes de usabilidade com usuários finais",
			"Implementar testes automatizados de interface (E2E)",
		},
	},
	{
		name:  "generic",
		match: always,
		items: []string{
			"Realizar análise detalhada do código atual da funcionalidade",
			"Mapear dependências e impactos da modificação em outros módulos",
			"Implementar as modificações necessárias seguindo padrões de código estabelecidos",
			"Criar ou atualizar testes unitários para cobrir as novas funcionalidades",
			"Realizar testes de integração para validar compatibilidade com outros sistemas",
			"Executar testes de regressão para garantir que funcionalidades existentes não foram afetadas",
			"Validar a implementação com stakeholders e usuários finais",
			"Preparar ambiente de homologação para testes finais",
		},
	},
}

var taskTrailer = []string{
	"Planejar estratégia de deploy e rollback em caso de problemas",
	"Preparar treinamento para usuários finais sobre as mudanças implementadas",
}

// Dependencies and risks append every block that fires.
var dependencyRules = []bulletRule{
	{
		name:  "fehidro",
		match: func(f *facts) bool { return f.mentions("fehidro") },
		items: []string{
			"Acesso completo ao banco de dados GFESP para modificação das queries de relatório",
			"Definição final e aprovação do layout do relatório pela Secretaria FEHIDRO",
			"Disponibilidade de ambiente de testes com dados representativos de produção",
			"Validação das novas regras de categorização com a área contábil/financeira",
			"Aprovação formal da Secretária FEHIDRO para as mudanças propostas",
		},
	},
	{
		name:  "reports",
		match: func(f *facts) bool { return f.ctx.HasArea(AreaReports) },
		items: []string{
			"Acesso ao banco de dados para modificação das queries de relatório",
			"Definição final do layout e estrutura do relatório pela área solicitante",
			"Ambiente de testes disponível com dados representativos",
			"Aprovação do novo modelo de relatório pelos stakeholders",
		},
	},
	{
		name:  "financial",
		match: func(f *facts) bool { return f.ctx.HasArea(AreaFinancial) },
		items: []string{
			"Validação das regras financeiras e contábeis com a área responsável",
			"Aprovação dos critérios de categorização de valores financeiros",
			"Verificação de compliance com normas regulatórias aplicáveis",
		},
	},
	{
		name:  "high-urgency",
		match: func(f *facts) bool { return f.ctx.Urgency == UrgencyHigh },
		items: []string{"Priorização imediata no cronograma de desenvolvimento da equipe"},
	},
	{
		name:  "trailer",
		match: always,
		items: []string{
			"Disponibilidade completa da equipe de desenvolvimento durante o período de implementação",
			"Aprovação final e sign-off da área solicitante após homologação",
			"Coordenação com equipe de infraestrutura para deploy em produção",
			"Agendamento de janela de manutenção para deploy (se necessário)",
			"Preparação de plano de comunicação para usuários sobre as mudanças",
		},
	},
}

var riskRules = []bulletRule{
	{
		name:  "fehidro",
		match: func(f *facts) bool { return f.mentions("fehidro") },
		items: []string{
			"Risco de inconsistência temporária nos dados durante a migração da estrutura do relatório",
			"Possível impacto em outros relatórios FEHIDRO que utilizam a mesma base de dados",
			"Necessidade de revalidação de relatórios históricos já gerados",
			"Risco de resistência dos usuários às mudanças na estrutura familiar do relatório",
		},
	},
	{
		name:  "data",
		match: func(f *facts) bool { return f.problemMentions("dados", "valor") },
		items: []string{
			"Risco de perda ou corrupção de dados durante a migração",
			"Possibilidade de inconsistências temporárias entre sistemas integrados",
			"Necessidade de sincronização com sistemas externos que consomem estes dados",
		},
	},
	{
		name:  "high-complexity",
		match: func(f *facts) bool { return f.ctx.Complexity == ComplexityHigh },
		items: []string{
			"Complexidade técnica elevada pode impactar significativamente o prazo de entrega",
			"Risco de efeitos colaterais não previstos em outras funcionalidades do sistema",
			"Necessidade de recursos técnicos especializados que podem não estar disponíveis",
		},
	},
	{
		name:  "reports",
		match: func(f *facts) bool { return f.ctx.HasArea(AreaReports) },
		items: []string{
			"Possível impacto em processos de auditoria que dependem da estrutura atual do relatório",
			"Risco de incompatibilidade com sistemas externos que importam estes relatórios",
			"Necessidade de atualização de documentação e procedimentos operacionais",
		},
	},
	{
		name:  "trailer",
		match: always,
		items: []string{
			"Mudanças de escopo durante o desenvolvimento que podem afetar cronograma e orçamento",
			"Necessidade extensiva de treinamento dos usuários para adaptação às mudanças",
			"Risco de bugs não detectados em homologação que podem aparecer em produção",
			"Possibilidade de rollback complexo caso a implementação apresente problemas críticos",
			"Impacto na produtividade dos usuários durante o período de adaptação às mudanças",
		},
	},
}

func tasks(f *facts) []string {
	_, primary := firstBullets(taskRules, f)
	out := make([]string, 0, len(primary)+len(taskTrailer)+2)
	out = append(out, primary...)
	if f.system != UndefinedSystem {
		out = append(out,
			fmt.Sprintf("Atualizar documentação técnica completa do sistema %s", f.system),
			fmt.Sprintf("Criar release notes detalhadas para a nova versão do %s", f.system),
		)
	}
	return append(out, taskTrailer...)
}

func dependencies(f *facts) []string { return allBullets(dependencyRules, f) }

func risks(f *facts) []string { return allBullets(riskRules, f) }
