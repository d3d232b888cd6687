package makefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mkrun-go/mkrun/internal/vars"
)

const commentIndicator = '#'

// Parser consumes makefile text line by line, updates the Variable Store,
// assembles Rule records, and inserts them into the RuleMap. It owns both
// the Store and the RuleMap exclusively for the duration of parsing.
type Parser struct {
	store    *vars.Store
	ruleMap  *RuleMap
	logger   Logger
	context  Context
	current  *Rule
	defaultT string
	hasDef   bool
}

// NewParser returns a Parser that will assign into store and ruleMap.
// logger (may be nil) receives "Ignoring duplicate definition." warnings.
func NewParser(store *vars.Store, ruleMap *RuleMap, logger Logger) *Parser {
	return &Parser{store: store, ruleMap: ruleMap, logger: logger}
}

// ParseFile opens path and parses it, per spec.md §4.3.
func (p *Parser) ParseFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not read makefile (%w)", err)
	}
	defer f.Close()

	p.context = FromPath(path)
	return p.Parse(f)
}

// Parse reads every physical line from r, joining backslash-continued
// lines into logical lines, and feeds each logical line through ParseLine.
// After all lines are consumed, two trailing blank lines are injected so
// any in-progress rule and any pending continuation are terminated.
func (p *Parser) Parse(r io.Reader) error {
	p.current = nil

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	var pending strings.Builder
	pendingStart := 0

	flush := func(text string, startLine int) error {
		p.context = p.context.WithLine(startLine, text)
		return p.ParseLine(text)
	}

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if pending.Len() == 0 {
			pendingStart = lineNo
		}
		pending.WriteString(line)

		trimmedRight := strings.TrimRight(pending.String(), " \t")
		if strings.HasSuffix(trimmedRight, "\\") {
			joined := strings.TrimSuffix(trimmedRight, "\\")
			pending.Reset()
			pending.WriteString(joined)
			continue
		}

		logical := pending.String()
		pending.Reset()
		if err := flush(logical, pendingStart); err != nil {
			return err
		}
	}

	if pending.Len() > 0 {
		if err := flush(pending.String(), pendingStart); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading makefile (%w)", err)
	}

	// Inject two trailing blank lines to terminate any in-progress rule or
	// dangling continuation.
	for i := 0; i < 2; i++ {
		lineNo++
		if err := flush("", lineNo); err != nil {
			return err
		}
	}

	return nil
}

// ParseLine dispatches a single logical line through the parser's state
// machine, per the table in spec.md §4.3.
func (p *Parser) ParseLine(line string) error {
	recipePrefix := p.store.Get(".RECIPEPREFIX").Value
	if recipePrefix == "" {
		recipePrefix = "\t"
	}

	// Recipe lines are only legal while a rule is in progress.
	if strings.HasPrefix(line, recipePrefix) {
		if p.current == nil {
			return p.errf("recipe without rule")
		}
		cmd := strings.TrimSpace(strings.TrimPrefix(line, recipePrefix))
		if cmd == "" {
			return nil
		}
		expanded, err := vars.Expand(cmd, p.store)
		if err != nil {
			return p.errf("%s", err)
		}
		p.current.Recipe = append(p.current.Recipe, expanded)
		return nil
	}

	// Any non-recipe line terminates a rule in progress.
	if p.current != nil {
		rule := *p.current
		p.current = nil

		if !p.hasDef {
			for _, t := range rule.Targets {
				if !strings.HasPrefix(t, ".") {
					p.defaultT = t
					p.hasDef = true
					break
				}
			}
		}

		if err := p.ruleMap.Insert(rule, p.logger); err != nil {
			return err
		}
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, string(commentIndicator)) {
		return nil
	}

	if idx := strings.IndexByte(line, ':'); idx >= 0 {
		return p.parseRuleHeader(line, idx)
	}

	if idx := strings.IndexByte(line, '='); idx >= 0 {
		return p.parseAssignment(line, idx)
	}

	return p.errf("Invalid line type.")
}

// parseRuleHeader handles a "targets : prereqs [; recipe]" or
// "targets :: prereqs [; recipe]" line, the first ':' already located at
// idx.
func (p *Parser) parseRuleHeader(line string, idx int) error {
	targets := line[:idx]
	rest := line[idx+1:]

	doubleColon := false
	if strings.HasPrefix(rest, ":") {
		doubleColon = true
		rest = rest[1:]
	}

	prereqs := rest
	var inlineRecipe string
	hasInline := false
	if semi := strings.IndexByte(rest, ';'); semi >= 0 {
		prereqs = rest[:semi]
		inlineRecipe = rest[semi+1:]
		hasInline = true
	}

	expTargets, err := vars.Expand(targets, p.store)
	if err != nil {
		return p.errf("%s", err)
	}
	expPrereqs, err := vars.Expand(prereqs, p.store)
	if err != nil {
		return p.errf("%s", err)
	}

	targetList := strings.Fields(expTargets)
	if len(targetList) == 0 {
		return p.errf("rule has no targets")
	}

	p.current = &Rule{
		Targets:       targetList,
		Prerequisites: strings.Fields(expPrereqs),
		DoubleColon:   doubleColon,
		Origin:        p.context,
	}

	if hasInline {
		recipePrefix := p.store.Get(".RECIPEPREFIX").Value
		if recipePrefix == "" {
			recipePrefix = "\t"
		}
		return p.ParseLine(recipePrefix + inlineRecipe)
	}

	return nil
}

// parseAssignment handles "NAME = VALUE", the first '=' already located at
// idx. The right-hand side is expanded immediately and stored as
// non-recursive, per the immediate semantics this spec covers.
func (p *Parser) parseAssignment(line string, idx int) error {
	name := line[:idx]
	value := strings.TrimLeft(line[idx+1:], " \t")

	expanded, err := vars.Expand(value, p.store)
	if err != nil {
		return p.errf("%s", err)
	}

	if err := p.store.Set(name, expanded, false); err != nil {
		return p.errf("%s", err)
	}
	return nil
}

// DefaultTarget returns the first rule's first non-dot target, set when
// the first rule is finalized, and whether one was ever recorded.
func (p *Parser) DefaultTarget() (string, bool) {
	return p.defaultT, p.hasDef
}

func (p *Parser) errf(format string, args ...interface{}) error {
	return &ParseError{Message: fmt.Sprintf(format, args...), Context: p.context}
}

// ParseError reports a malformed line, tagged with its source Context.
type ParseError struct {
	Message string
	Context Context
}

func (e *ParseError) Error() string {
	if label := e.Context.Label(); label != "" {
		return fmt.Sprintf("%s: %s", label, e.Message)
	}
	return e.Message
}
