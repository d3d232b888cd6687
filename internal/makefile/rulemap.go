package makefile

// Logger is the narrow capability RuleMap needs to report a non-fatal
// duplicate-rule warning. Kept minimal so this package does not import the
// logger package (which itself depends on makefile.Context) and create a
// cycle; internal/logger.Logger satisfies it.
type Logger interface {
	Warn(msg string, ctx *Context)
}

// ColonModeConflictError reports a target defined with both ':' and '::'.
type ColonModeConflictError struct {
	Target string
	Origin Context
}

func (e *ColonModeConflictError) Error() string {
	return "Cannot define rules using ':' and '::' on the same target."
}

// RuleMap is an append-only sequence of Rules plus a secondary index from
// each target name to the ordered list of indices of rules that produce it.
// Indices are stable because the sequence is append-only; removal is not
// supported, by design.
type RuleMap struct {
	rules    []Rule
	byTarget map[string][]int
}

// NewRuleMap returns an empty RuleMap.
func NewRuleMap() *RuleMap {
	return &RuleMap{byTarget: make(map[string][]int)}
}

// Insert appends rule to the storage sequence and updates the by-target
// index. A single-colon target may retain at most one rule: later
// single-colon definitions are ignored with a logged warning (the rule
// itself is still appended to storage, just not indexed again for this
// target). A double-colon target accumulates every rule in insertion
// order. Mixing ':' and '::' on the same target is an error.
func (m *RuleMap) Insert(rule Rule, logger Logger) error {
	index := len(m.rules)
	m.rules = append(m.rules, rule)
	stored := &m.rules[index]

	for _, target := range stored.Targets {
		existing, ok := m.byTarget[target]
		if !ok {
			m.byTarget[target] = []int{index}
			continue
		}

		first := m.rules[existing[0]]
		if first.DoubleColon != stored.DoubleColon {
			return &ColonModeConflictError{Target: target, Origin: stored.Origin}
		}

		if stored.DoubleColon {
			m.byTarget[target] = append(existing, index)
			continue
		}

		if logger != nil {
			origin := stored.Origin
			logger.Warn("Ignoring duplicate definition.", &origin)
		}
	}

	return nil
}

// RulesFor returns the ordered rules that produce target, or false if no
// rule defines it.
func (m *RuleMap) RulesFor(target string) ([]*Rule, bool) {
	indices, ok := m.byTarget[target]
	if !ok {
		return nil, false
	}
	rules := make([]*Rule, len(indices))
	for i, idx := range indices {
		rules[i] = &m.rules[idx]
	}
	return rules, true
}

// Targets returns every target name known to the map, in no particular
// order. Used by graph.BuildGraph.
func (m *RuleMap) Targets() []string {
	names := make([]string, 0, len(m.byTarget))
	for name := range m.byTarget {
		names = append(names, name)
	}
	return names
}

// Len returns the number of rules in storage (including any single-colon
// duplicates that were not indexed).
func (m *RuleMap) Len() int { return len(m.rules) }

// AllRules returns every rule in insertion order, for read-only inspection
// (graph rendering, safety scanning of the whole file).
func (m *RuleMap) AllRules() []*Rule {
	rules := make([]*Rule, len(m.rules))
	for i := range m.rules {
		rules[i] = &m.rules[i]
	}
	return rules
}
