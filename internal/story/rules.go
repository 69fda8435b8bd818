// internal/story/rules.go
package story

import "strings"

// facts is everything a rule may look at. It is built once per note.
type facts struct {
	note     string
	lower    string
	ctx      Context
	system   string
	problem  string
	solution string
}

func newFacts(note string, ctx Context) *facts {
	return &facts{
		note:  note,
		lower: strings.ToLower(note),
		ctx:   ctx,
	}
}

// mentions reports whether every keyword occurs in the lower-cased note.
func (f *facts) mentions(keywords ...string) bool {
	for _, kw := range keywords {
		if !strings.Contains(f.lower, kw) {
			return false
		}
	}
	return true
}

func (f *facts) mentionsAny(keywords ...string) bool {
	return containsAny(f.lower, keywords)
}

func (f *facts) problemMentions(keywords ...string) bool {
	return containsAny(strings.ToLower(f.problem), keywords)
}

func (f *facts) fehidroReport() bool {
	return f.mentions("fehidro", "relatório")
}

// textRule maps a predicate to a paragraph. Tables are evaluated top to
// bottom and the first match wins.
type textRule struct {
	name  string
	match func(f *facts) bool
	text  func(f *facts) string
}

// bulletRule maps a predicate to a block of bullets.
type bulletRule struct {
	name  string
	match func(f *facts) bool
	items []string
}

func always(*facts) bool { return true }

func literal(s string) func(*facts) string {
	return func(*facts) string { return s }
}

// firstText returns the rule name and paragraph of the first matching rule.
// Every table ends with an always rule, so the empty result is unreachable.
func firstText(rules []textRule, f *facts) (string, string) {
	for _, r := range rules {
		if r.match(f) {
			return r.name, r.text(f)
		}
	}
	return "", ""
}

// firstBullets returns the block of the first matching rule.
func firstBullets(rules []bulletRule, f *facts) (string, []string) {
	for _, r := range rules {
		if r.match(f) {
			return r.name, r.items
		}
	}
	return "", nil
}

// allBullets concatenates the blocks of every matching rule in table order.
func allBullets(rules []bulletRule, f *facts) []string {
	out := []string{}
	for _, r := range rules {
		if r.match(f) {
			out = append(out, r.items...)
		}
	}
	return out
}
