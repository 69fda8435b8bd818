// internal/story/generator.go
package story

import (
	"github.com/google/uuid"
)

// Generator turns analyst notes into user stories. It holds only the
// read-only vocabularies and is safe for concurrent use.
type Generator struct {
	systems []string
	roles   []string
}

func NewGenerator() *Generator {
	return &Generator{
		systems: append([]string(nil), knownSystems...),
		roles:   append([]string(nil), knownRoles...),
	}
}

// Process builds the story document for a note. Every field is populated for
// any input, including the empty string.
func (g *Generator) Process(note string) StoryDocument {
	doc, _ := g.Explain(note)
	return doc
}

// Explain is Process plus the intermediate signals used to build the document.
func (g *Generator) Explain(note string) (StoryDocument, Analysis) {
	ctx := Analyze(note)
	f := newFacts(note, ctx)
	f.system = g.IdentifySystem(note)
	_, f.problem = firstText(problemRules, f)
	_, f.solution = firstText(solutionRules, f)

	_, goal := firstText(goalRules, f)
	_, rationale := firstText(rationaleRules, f)

	doc := StoryDocument{
		RequestedBy:        requestedBy(f),
		ResponsibleAnalyst: AnalystPlaceholder,
		UseCasePath:        useCasePath(f),
		Role:               g.IdentifyRole(note, ctx),
		Goal:               goal,
		Rationale:          rationale,
		AcceptanceCriteria: acceptanceCriteria(f),
		Tasks:              tasks(f),
		Dependencies:       dependencies(f),
		Risks:              risks(f),
	}

	return doc, Analysis{
		Context:     ctx,
		System:      f.system,
		Problem:     f.problem,
		Solution:    f.solution,
		ScenarioSet: scenarioSet(f),
	}
}

// StoryID derives a stable identifier from the note text.
func StoryID(note string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(note)).String()
}
