// Package executor walks a parsed Rule Map, compares modification times,
// and dispatches the shell recipes needed to bring the requested targets
// up to date.
package executor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/mkrun-go/mkrun/internal/makefile"
	"github.com/mkrun-go/mkrun/internal/runopts"
	"github.com/mkrun-go/mkrun/internal/safety"
	"github.com/mkrun-go/mkrun/internal/vars"
)

// Logger is the narrow capability the Executor needs to report progress.
// internal/logger.Logger satisfies it structurally.
type Logger interface {
	Info(msg string, ctx *makefile.Context)
	Warn(msg string, ctx *makefile.Context)
	Error(msg string, ctx *makefile.Context)
}

// Result holds the outcome of a target execution for consumers that need
// more than a bare error: history recording, file export, shell integration.
// Run itself returns a plain error; callers driving a streamed execution
// (the TUI) assemble a Result from the output and timing they captured.
type Result struct {
	Output    string
	Err       error
	ExitCode  int
	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// ExecError reports a target that could not be built: no rule defined
// for it, a recipe's non-zero exit, a signal kill, or a spawn failure.
type ExecError struct {
	Message string
	Context makefile.Context
}

func (e *ExecError) Error() string {
	if label := e.Context.Label(); label != "" {
		return fmt.Sprintf("%s: %s", label, e.Message)
	}
	return e.Message
}

// Executor brings targets up to date by walking the Rule Map
// depth-first, comparing modification times against Options, and
// spawning the shell for any recipe that needs to run.
type Executor struct {
	rules   *makefile.RuleMap
	store   *vars.Store
	opts    *runopts.Options
	logger  Logger
	visited map[string]bool
	output  io.Writer // destination for echoed commands and recipe output

	safetyChecker *safety.Checker
	blockCritical bool

	mu        sync.Mutex
	cancelled bool
	current   *exec.Cmd
}

// New returns an Executor bound to a parsed Rule Map, its Variable Store,
// and the active Options. logger may be nil. A recipe's stdout and stderr
// both go to os.Stdout; use Streaming to redirect them elsewhere.
//
// New also seeds the store's MAKE and MAKEFLAGS entries from opts, so a
// recipe that invokes $(MAKE) recursively sees the same -B/-i/-n behavior
// as the run that spawned it.
func New(rules *makefile.RuleMap, store *vars.Store, opts *runopts.Options, logger Logger) *Executor {
	if opts == nil {
		opts = runopts.New()
	}
	if store != nil {
		if store.Get("MAKE").Value == "" {
			self := "make"
			if exe, err := os.Executable(); err == nil {
				self = exe
			}
			_ = store.Set("MAKE", self, false)
		}
		_ = store.Set("MAKEFLAGS", opts.Flags(), false)
	}
	return &Executor{rules: rules, store: store, opts: opts, logger: logger, output: os.Stdout}
}

// Streaming redirects echoed commands and recipe stdout/stderr to w instead
// of the process's own standard streams. Used by interactive callers (the
// TUI) that want to display output live rather than let it go to the
// terminal the whole program is running in.
func (e *Executor) Streaming(w io.Writer) *Executor {
	e.output = w
	return e
}

// WithSafety attaches a safety Checker the Executor consults before
// running each rule's recipe. A SeverityCritical match always produces a
// Logger Error event carrying the rule's origin Context; blockCritical
// additionally turns that match into an aborting ExecError rather than a
// warning the build continues past.
func (e *Executor) WithSafety(checker *safety.Checker, blockCritical bool) *Executor {
	e.safetyChecker = checker
	e.blockCritical = blockCritical
	return e
}

// Cancel aborts the currently running recipe, if any, by killing its
// process. Safe to call from a different goroutine than the one running Run.
func (e *Executor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelled = true
	if e.current != nil && e.current.Process != nil {
		_ = e.current.Process.Kill()
	}
}

func (e *Executor) isCancelled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancelled
}

// Run brings every target in targets up to date, in argument order. If
// targets is empty, defaultTarget is used instead; if that is also
// empty, Run fails.
func (e *Executor) Run(targets []string, defaultTarget string) error {
	if len(targets) == 0 {
		if defaultTarget == "" {
			return &ExecError{Message: "No targets specified and no makefile found."}
		}
		targets = []string{defaultTarget}
	}

	e.visited = make(map[string]bool)
	for _, t := range targets {
		if err := e.visit(t); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) visit(target string) error {
	if e.visited[target] {
		return nil
	}
	e.visited[target] = true

	if e.opts.OldFile[target] {
		e.info(fmt.Sprintf("%s is up to date (old).", target), nil)
		return nil
	}

	rules, ok := e.rules.RulesFor(target)
	if !ok {
		return &ExecError{Message: fmt.Sprintf("No rule to make target '%s'.", target)}
	}

	tMtime, tExists := e.mtime(target)
	executed := false

	for _, rule := range rules {
		should := e.opts.AlwaysMake

		for _, prereq := range rule.Prerequisites {
			if e.opts.AlwaysMake {
				if err := e.visit(prereq); err != nil {
					return err
				}
				continue
			}

			pMtime, pExists := e.mtime(prereq)
			if !pExists {
				if err := e.visit(prereq); err != nil {
					return err
				}
				should = true
				continue
			}
			if tExists && pMtime.After(tMtime) {
				should = true
			}
		}

		if !tExists || should {
			if err := e.executeRecipe(rule); err != nil {
				return err
			}
			executed = true
		}
	}

	if !executed {
		e.info(fmt.Sprintf("'%s' is up to date.", target), nil)
	}
	return nil
}

// mtime resolves name per Options.old_file/new_file pinning, falling back
// to the filesystem; it reports missing on any stat error (including
// permission errors — a documented limitation).
func (e *Executor) mtime(name string) (time.Time, bool) {
	if e.opts.OldFile[name] {
		return time.Unix(0, 0), true
	}
	if e.opts.NewFile[name] {
		return time.Now().AddDate(1, 0, 0), true
	}
	info, err := os.Stat(name)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

type lineModifiers struct {
	silent      bool
	ignoreError bool
	forceRun    bool
}

// parseModifiers strips any leading combination of '@', '-', '+' from a
// recipe line and returns the flags they set plus the remaining command,
// trimmed of the whitespace between the modifiers and the command text.
func parseModifiers(line string) (lineModifiers, string) {
	var m lineModifiers
	i := 0
	for i < len(line) {
		switch line[i] {
		case '@':
			m.silent = true
		case '-':
			m.ignoreError = true
		case '+':
			m.forceRun = true
		default:
			return m, strings.TrimLeft(line[i:], " \t")
		}
		i++
	}
	return m, ""
}

func (e *Executor) executeRecipe(rule *makefile.Rule) error {
	if err := e.checkSafety(rule); err != nil {
		return err
	}

	shell := e.store.Get("SHELL").Value
	if shell == "" {
		shell = "/bin/sh"
	}
	shellFlags := strings.Fields(e.store.Get(".SHELLFLAGS").Value)
	if len(shellFlags) == 0 {
		shellFlags = []string{"-c"}
	}

	for _, raw := range rule.Recipe {
		if e.isCancelled() {
			return &ExecError{Message: "Canceled.", Context: rule.Origin}
		}

		mods, cmd := parseModifiers(raw)

		if !mods.silent || e.opts.JustPrint {
			fmt.Fprintln(e.output, cmd)
		}

		if e.opts.JustPrint && !mods.forceRun {
			continue
		}

		args := append(append([]string{}, shellFlags...), cmd)
		c := exec.Command(shell, args...)
		c.Stdout = e.output
		c.Stderr = e.output
		c.Stdin = os.Stdin
		c.Env = append(os.Environ(),
			"MAKE="+e.store.Get("MAKE").Value,
			"MAKEFLAGS="+e.store.Get("MAKEFLAGS").Value,
		)

		e.mu.Lock()
		e.current = c
		e.mu.Unlock()

		err := c.Run()

		e.mu.Lock()
		e.current = nil
		e.mu.Unlock()

		if err == nil {
			continue
		}

		if e.isCancelled() {
			return &ExecError{Message: "Canceled.", Context: rule.Origin}
		}

		if mods.ignoreError || e.opts.IgnoreErrors {
			continue
		}

		origin := rule.Origin
		if exitErr, ok := err.(*exec.ExitError); ok {
			if exitErr.ProcessState.Exited() {
				return &ExecError{
					Message: fmt.Sprintf("Failed with code %d.", exitErr.ExitCode()),
					Context: origin,
				}
			}
			return &ExecError{Message: "Killed.", Context: origin}
		}
		return &ExecError{Message: err.Error(), Context: origin}
	}

	return nil
}

func (e *Executor) info(msg string, ctx *makefile.Context) {
	if e.logger != nil {
		e.logger.Info(msg, ctx)
	}
}

// checkSafety runs the attached safety Checker, if any, against rule before
// its recipe executes. A critical match is always logged as an Error; when
// blockCritical is set it also aborts the build instead of just warning.
func (e *Executor) checkSafety(rule *makefile.Rule) error {
	if e.safetyChecker == nil {
		return nil
	}

	result := e.safetyChecker.CheckRule(*rule)
	if result == nil {
		return nil
	}

	msg := fmt.Sprintf("%s: recipe matches %d safety rule(s), highest severity %s.",
		result.TargetName, len(result.Matches), result.DangerLevel)

	if result.DangerLevel == safety.SeverityCritical {
		if e.logger != nil {
			e.logger.Error(msg, &rule.Origin)
		}
		if e.blockCritical {
			return &ExecError{Message: "Blocked by safety check: " + msg, Context: rule.Origin}
		}
		return nil
	}

	e.warn(msg, &rule.Origin)
	return nil
}

func (e *Executor) warn(msg string, ctx *makefile.Context) {
	if e.logger != nil {
		e.logger.Warn(msg, ctx)
	}
}

// OutputChunk is a unit of streamed recipe output, or the terminal signal
// (Done) that carries the run's final error, if any. The channel ExecuteStreaming
// returns is closed immediately after the Done chunk is sent.
type OutputChunk struct {
	Data string
	Done bool
	Err  error
}

// ExecuteStreaming parses the Makefile at makefilePath and runs target
// through the same Rule Map executor the CLI uses, streaming its recipe
// output a line at a time instead of writing to the process's own stdout.
// The returned cancel func kills the currently running recipe command, if
// any, and causes the run to stop with a "Canceled." error.
func ExecuteStreaming(target, makefilePath string) (<-chan OutputChunk, func()) {
	out := make(chan OutputChunk)

	store := vars.New()
	ruleMap := makefile.NewRuleMap()
	e := New(ruleMap, store, runopts.New(), nil)

	go func() {
		defer close(out)

		p := makefile.NewParser(store, ruleMap, nil)
		if err := p.ParseFile(makefilePath); err != nil {
			out <- OutputChunk{Done: true, Err: err}
			return
		}

		pr, pw := io.Pipe()
		e.Streaming(pw)

		scanDone := make(chan struct{})
		go func() {
			defer close(scanDone)
			scanner := bufio.NewScanner(pr)
			scanner.Buffer(make([]byte, 64*1024), 1024*1024)
			for scanner.Scan() {
				out <- OutputChunk{Data: scanner.Text() + "\n"}
			}
		}()

		runErr := e.Run([]string{target}, "")
		_ = pw.Close()
		<-scanDone

		out <- OutputChunk{Done: true, Err: runErr}
	}()

	return out, e.Cancel
}
