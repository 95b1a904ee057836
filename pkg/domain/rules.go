package domain

// Violation reports a failed consistency rule evaluation.
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
	Indices []int  `json:"indices,omitempty"`
}

// Result aggregates violations from consistency evaluation.
type Result struct {
	Violations []Violation `json:"violations,omitempty"`
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// OK reports whether evaluation found no violations.
func (r Result) OK() bool {
	return len(r.Violations) == 0
}

// ConsistencyRule checks one collection-wide invariant over a list.
// Evaluation is a pure read: implementations must not mutate the list.
type ConsistencyRule interface {
	Name() string
	Evaluate(list *ExperimentList) Result
}

// RulesEngine orchestrates consistency rule evaluation.
type RulesEngine struct {
	rules []ConsistencyRule
}

// NewRulesEngine constructs an empty engine instance.
func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

// NewDefaultRulesEngine builds an engine with the built-in policy set.
func NewDefaultRulesEngine() *RulesEngine {
	engine := NewRulesEngine()
	engine.Register(NewSharedImagesetRule())
	return engine
}

// Register appends a rule to the engine.
func (e *RulesEngine) Register(rule ConsistencyRule) {
	e.rules = append(e.rules, rule)
}

// Evaluate executes all registered rules and aggregates their results.
func (e *RulesEngine) Evaluate(list *ExperimentList) Result {
	var combined Result
	for _, rule := range e.rules {
		combined.Merge(rule.Evaluate(list))
	}
	return combined
}

// Validate runs the default consistency rules against the list and returns
// every violation found.
func (l *ExperimentList) Validate() Result {
	return NewDefaultRulesEngine().Evaluate(l)
}

// IsConsistent reports whether Validate finds no violations. It is a pure
// predicate over current state: an inconsistent list is reported as false,
// never as an error, and the list is never mutated.
func (l *ExperimentList) IsConsistent() bool {
	return l.Validate().OK()
}
