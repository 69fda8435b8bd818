// internal/story/models.go
package story

import "strings"

type RequestType string

const (
	RequestCorrection  RequestType = "correção"
	RequestNewFeature  RequestType = "nova_funcionalidade"
	RequestImprovement RequestType = "melhoria"
)

type Urgency string

const (
	UrgencyLow    Urgency = "baixa"
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "alta"
)

type Complexity string

const (
	ComplexityLow    Complexity = "baixa"
	ComplexityMedium Complexity = "media"
	ComplexityHigh   Complexity = "alta"
)

// Area is a coarse category of the system touched by a request.
type Area string

const (
	AreaReports   Area = "relatórios"
	AreaFinancial Area = "financeiro"
	AreaInterface Area = "interface"
	AreaData      Area = "dados"
)

// Context holds the signals derived from a note. It is built once by Analyze
// and never modified afterwards.
type Context struct {
	RequestType     RequestType `json:"requestType" yaml:"requestType"`
	Urgency         Urgency     `json:"urgency" yaml:"urgency"`
	Complexity      Complexity  `json:"complexity" yaml:"complexity"`
	ImpactedAreas   []Area      `json:"impactedAreas" yaml:"impactedAreas"`
	MonetaryAmounts []string    `json:"monetaryAmounts" yaml:"monetaryAmounts"`
	Stakeholders    []string    `json:"stakeholders" yaml:"stakeholders"`
}

// HasArea reports whether the area was tagged for the note.
func (c Context) HasArea(a Area) bool {
	for _, area := range c.ImpactedAreas {
		if area == a {
			return true
		}
	}
	return false
}

// Scenario is one acceptance criterion in given/when/then form.
type Scenario struct {
	Name  string `json:"name" yaml:"name"`
	Given string `json:"given" yaml:"given"`
	When  string `json:"when" yaml:"when"`
	Then  string `json:"then" yaml:"then"`
}

// StoryDocument is the generated user story. Field order is part of the
// contract with callers.
type StoryDocument struct {
	RequestedBy        string     `json:"requestedBy" yaml:"requestedBy"`
	ResponsibleAnalyst string     `json:"responsibleAnalyst" yaml:"responsibleAnalyst"`
	UseCasePath        string     `json:"useCasePath" yaml:"useCasePath"`
	Role               string     `json:"role" yaml:"role"`
	Goal               string     `json:"goal" yaml:"goal"`
	Rationale          string     `json:"rationale" yaml:"rationale"`
	AcceptanceCriteria []Scenario `json:"acceptanceCriteria" yaml:"acceptanceCriteria"`
	Tasks              []string   `json:"tasks" yaml:"tasks"`
	Dependencies       []string   `json:"dependencies" yaml:"dependencies"`
	Risks              []string   `json:"risks" yaml:"risks"`
}

// Analysis exposes the intermediate signals behind a generated document.
type Analysis struct {
	Context  Context `json:"context" yaml:"context"`
	System   string  `json:"system" yaml:"system"`
	Problem  string  `json:"problem" yaml:"problem"`
	Solution string  `json:"solution" yaml:"solution"`

	// ScenarioSet names the acceptance criteria template used.
	ScenarioSet ScenarioSet `json:"scenarioSet" yaml:"scenarioSet"`
}

type ScenarioSet string

const (
	ScenarioSetFehidro ScenarioSet = "fehidro"
	ScenarioSetGeneric ScenarioSet = "generic"
)

const bullet = "• "

func (d StoryDocument) TasksText() string        { return bulletText(d.Tasks) }
func (d StoryDocument) DependenciesText() string { return bulletText(d.Dependencies) }
func (d StoryDocument) RisksText() string        { return bulletText(d.Risks) }

func bulletText(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = bullet + item
	}
	return strings.Join(lines, "\n")
}
