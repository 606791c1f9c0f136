// Package reason infers a topic from mention keywords and ranks reply
// candidates by how well they fit a post.
package reason

// Rule maps a set of keyword conditions to ordered topic conclusions.
type Rule struct {
	Name        string
	Conditions  map[string]struct{}
	Conclusions []string
}

// NewRule builds a rule; duplicate conditions collapse.
func NewRule(name string, conditions []string, conclusions ...string) Rule {
	set := make(map[string]struct{}, len(conditions))
	for _, c := range conditions {
		set[c] = struct{}{}
	}
	return Rule{Name: name, Conditions: set, Conclusions: conclusions}
}

// Inference is the result of matching facts against a rule.
type Inference struct {
	RuleName    string
	Confidence  float64
	Conclusions []string
}

// Topic returns the first conclusion, or "" when the rule has none.
func (i Inference) Topic() string {
	if len(i.Conclusions) == 0 {
		return ""
	}
	return i.Conclusions[0]
}

// Engine holds rules in registration order.
type Engine struct {
	rules []Rule
}

func NewEngine(rules ...Rule) *Engine {
	e := &Engine{}
	for _, r := range rules {
		e.Add(r)
	}
	return e
}

func (e *Engine) Add(r Rule) { e.rules = append(e.rules, r) }

func (e *Engine) Rules() []Rule { return e.rules }

// BestMatch scores each rule by the fraction of its conditions present in
// facts and returns the highest scoring one. Ties go to the rule registered
// first. ok is false when no rule shares a keyword with facts.
func (e *Engine) BestMatch(facts []string) (best Inference, ok bool) {
	set := make(map[string]struct{}, len(facts))
	for _, f := range facts {
		set[f] = struct{}{}
	}
	for _, r := range e.rules {
		if len(r.Conditions) == 0 {
			continue
		}
		matched := 0
		for c := range r.Conditions {
			if _, hit := set[c]; hit {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		conf := float64(matched) / float64(len(r.Conditions))
		if !ok || conf > best.Confidence {
			best = Inference{RuleName: r.Name, Confidence: conf, Conclusions: r.Conclusions}
			ok = true
		}
	}
	return best, ok
}
