package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mkrun-go/mkrun/config"
	"github.com/mkrun-go/mkrun/internal/executor"
	"github.com/mkrun-go/mkrun/internal/export"
	"github.com/mkrun-go/mkrun/internal/graph"
	"github.com/mkrun-go/mkrun/internal/history"
	"github.com/mkrun-go/mkrun/internal/logger"
	"github.com/mkrun-go/mkrun/internal/makefile"
	"github.com/mkrun-go/mkrun/internal/runopts"
	"github.com/mkrun-go/mkrun/internal/safety"
	"github.com/mkrun-go/mkrun/internal/shellintegration"
	"github.com/mkrun-go/mkrun/internal/tui"
	"github.com/mkrun-go/mkrun/internal/vars"
	"github.com/mkrun-go/mkrun/internal/workspace"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const licenseText = `mkrun - a make-compatible build core with a terminal front-end.
Distributed under the terms of its project license. There is NO WARRANTY,
to the extent permitted by law.`

var (
	flagFile         string
	flagDirectories  []string
	flagAlwaysMake   bool
	flagIgnoreErrors bool
	flagJustPrint    bool
	flagOldFiles     []string
	flagNewFiles     []string
	flagLicense      bool
	flagBrowseInto   string
	flagBrowseUp     bool
)

var rootCmd = &cobra.Command{
	Use:   "mkrun [targets...]",
	Short: "A make-compatible build core with a terminal front-end",
	Long:  `mkrun parses and executes Makefiles directly, or launches a terminal UI for browsing and running targets.`,
	RunE:  runBuild,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "Makefile", "Path to Makefile")
	rootCmd.PersistentFlags().StringVar(&flagFile, "makefile", "Makefile", "Path to Makefile (alias of --file)")
	rootCmd.Flags().StringArrayVarP(&flagDirectories, "directory", "C", nil, "Change to DIR before reading the makefile (repeatable)")
	rootCmd.Flags().BoolVarP(&flagAlwaysMake, "always-make", "B", false, "Unconditionally make all targets")
	rootCmd.Flags().BoolVarP(&flagIgnoreErrors, "ignore-errors", "i", false, "Ignore errors from recipes")
	rootCmd.Flags().BoolVarP(&flagJustPrint, "just-print", "n", false, "Print recipes without executing them")
	rootCmd.Flags().BoolVar(&flagJustPrint, "dry-run", false, "Alias of --just-print")
	rootCmd.Flags().BoolVar(&flagJustPrint, "recon", false, "Alias of --just-print")
	rootCmd.Flags().StringArrayVarP(&flagOldFiles, "old-file", "o", nil, "Consider FILE older than its dependents (repeatable)")
	rootCmd.Flags().StringArrayVar(&flagOldFiles, "assume-old", nil, "Alias of --old-file")
	rootCmd.Flags().StringArrayVarP(&flagNewFiles, "what-if", "W", nil, "Consider FILE newer than its dependents (repeatable)")
	rootCmd.Flags().StringArrayVar(&flagNewFiles, "new-file", nil, "Alias of --what-if")
	rootCmd.Flags().StringArrayVar(&flagNewFiles, "assume-new", nil, "Alias of --what-if")
	rootCmd.Flags().BoolVar(&flagLicense, "license", false, "Print license information and exit")

	if err := viper.BindPFlag("makefile", rootCmd.Flags().Lookup("file")); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error binding makefile flag: %v\n", err)
		os.Exit(1)
	}

	browseCmd.Flags().StringVar(&flagBrowseInto, "into", "", "Descend into the named directory entry before listing")
	browseCmd.Flags().BoolVar(&flagBrowseUp, "up", false, "Move to the parent directory before listing")

	rootCmd.AddCommand(tuiCmd, graphCmd, historyCmd, browseCmd)
}

// runBuild is the bare-invocation path: parse the makefile and execute the
// requested (or default) targets directly, without launching the TUI.
func runBuild(cmd *cobra.Command, args []string) error {
	if flagLicense {
		fmt.Println(licenseText)
		return nil
	}

	for _, dir := range flagDirectories {
		if err := os.Chdir(dir); err != nil {
			return err
		}
	}

	store := vars.NewFromEnv(environToMap(os.Environ()))
	ruleMap := makefile.NewRuleMap()
	log := logger.New(logger.NewStderrSink())

	p := makefile.NewParser(store, ruleMap, log)
	if err := p.ParseFile(flagFile); err != nil {
		logErr(log, err)
		os.Exit(2)
	}
	defaultTarget, _ := p.DefaultTarget()

	opts := runopts.New()
	opts.AlwaysMake = flagAlwaysMake
	opts.IgnoreErrors = flagIgnoreErrors
	opts.JustPrint = flagJustPrint
	for _, name := range flagOldFiles {
		opts.MarkOld(name)
	}
	for _, name := range flagNewFiles {
		opts.MarkNew(name)
	}

	runner := executor.New(ruleMap, store, opts, log)

	cfg, cfgErr := config.Load()
	if cfgErr == nil && cfg.Safety != nil {
		if checker, err := safety.NewChecker(cfg.Safety); err == nil {
			runner.WithSafety(checker, cfg.Safety.BlockCritical)
		}
	}

	targets := args
	if len(targets) == 0 && defaultTarget != "" {
		targets = []string{defaultTarget}
	}
	absPath, err := filepath.Abs(flagFile)
	if err != nil {
		absPath = flagFile
	}

	start := time.Now()
	runErr := runner.Run(args, defaultTarget)
	duration := time.Since(start)

	recordBuild(cfg, cfgErr, absPath, targets, duration, runErr)

	if runErr != nil {
		logErr(log, runErr)
		os.Exit(2)
	}

	return nil
}

// recordBuild mirrors the TUI's post-execution bookkeeping for the bare
// CLI build path: history is always updated (it has no user-facing
// configuration and degrades silently), while export and shell
// integration only run when explicitly enabled in cfg. Every target
// named on the command line (or the resolved default) shares the run's
// aggregate duration, since the bare path executes them as one Run call
// rather than the TUI's per-target streaming.
func recordBuild(cfg *config.Config, cfgErr error, makefilePath string, targets []string, duration time.Duration, runErr error) {
	hist, histErr := history.Load()
	if histErr == nil {
		for _, t := range targets {
			hist.RecordExecutionWithTiming(makefilePath, t, duration, runErr == nil)
		}
		_ = hist.Save()
	}

	if cfgErr != nil || cfg == nil {
		return
	}

	result := executor.Result{
		Err:      runErr,
		Duration: duration,
		EndTime:  time.Now(),
	}
	result.StartTime = result.EndTime.Add(-duration)
	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}

	if cfg.Export != nil && cfg.Export.Enabled {
		if exporter, err := export.NewExporter(cfg.Export); err == nil {
			for _, t := range targets {
				record := export.NewExecutionRecord(makefilePath, t, result)
				_ = exporter.Export(record)
			}
		}
	}

	if runErr == nil && cfg.ShellIntegration != nil && cfg.ShellIntegration.Enabled {
		if integ, err := shellintegration.NewIntegration(cfg.ShellIntegration); err == nil {
			for _, t := range targets {
				_ = integ.RecordExecution(shellintegration.ExecutionInfo{
					Target:       t,
					MakefilePath: makefilePath,
				})
			}
		}
	}
}

// logErr logs err through log, extracting the source Context carried by the
// core's own error types when present.
func logErr(log *logger.Logger, err error) {
	switch e := err.(type) {
	case *makefile.ParseError:
		log.Error(e.Message, &e.Context)
	case *executor.ExecError:
		log.Error(e.Message, &e.Context)
	default:
		log.Error(err.Error(), nil)
	}
}

func environToMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				env[kv[:i]] = kv[i+1:]
				break
			}
		}
	}
	return env
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if flagFile != "" && flagFile != "Makefile" {
			cfg.MakefilePath = flagFile
		}

		workspaceMgr, err := workspace.Load()
		if err != nil {
			workspaceMgr = workspace.NewEmpty()
		}

		m := tui.NewModel(cfg)
		m.WorkspaceManager = workspaceMgr

		p := tea.NewProgram(m, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

var graphCmd = &cobra.Command{
	Use:   "graph [target]",
	Short: "Render the dependency graph for a target (or the whole makefile)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, err := makefile.Describe(flagFile)
		if err != nil {
			return err
		}

		store := vars.New()
		ruleMap := makefile.NewRuleMap()
		p := makefile.NewParser(store, ruleMap, nil)
		if err := p.ParseFile(flagFile); err != nil {
			return err
		}

		g := graph.BuildGraph(ruleMap, targets)
		if len(args) == 1 {
			g = g.GetSubgraph(args[0], -1)
		}

		renderer := graph.TreeRenderer{ShowOrder: true, ShowCritical: true, ShowParallel: true}
		fmt.Print(g.RenderTree(renderer))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent and frequent targets recorded for the current makefile",
	RunE: func(cmd *cobra.Command, args []string) error {
		hist, err := history.Load()
		if err != nil {
			return err
		}

		absPath, err := filepath.Abs(flagFile)
		if err != nil {
			absPath = flagFile
		}
		recent := hist.GetRecent(absPath)
		if len(recent) == 0 {
			fmt.Println("No build history recorded yet.")
			return nil
		}

		for _, e := range recent {
			stats := hist.GetPerformanceStats(absPath, e.Name)
			if stats != nil {
				fmt.Printf("%-20s runs=%d avg=%s\n", e.Name, stats.ExecutionCount, stats.AvgDuration)
			} else {
				fmt.Printf("%-20s\n", e.Name)
			}
		}
		return nil
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse [dir]",
	Short: "List a directory's entries and flag any Makefiles found there",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := "."
		if len(args) == 1 {
			start = args[0]
		}

		browser, err := workspace.NewBrowser(start)
		if err != nil {
			return err
		}

		if flagBrowseUp {
			if err := browser.NavigateUp(); err != nil {
				return err
			}
		}
		if flagBrowseInto != "" {
			for i, e := range browser.Entries {
				if e.Name == flagBrowseInto {
					browser.SelectedIdx = i
					break
				}
			}
			if err := browser.NavigateInto(); err != nil {
				return err
			}
		}

		fmt.Println(browser.GetBreadcrumb())
		for i, e := range browser.Entries {
			marker := " "
			if i == browser.SelectedIdx {
				marker = ">"
			}
			label := e.Name
			if e.IsDir {
				label += "/"
			} else if e.IsMakefile {
				label += " (Makefile, " + workspace.FormatSize(e.Size) + ")"
			}
			fmt.Printf("%s %s\n", marker, label)
		}
		fmt.Printf("\n%d Makefile(s) in this directory.\n", browser.CountMakefiles())

		if sel := browser.GetCurrentSelection(); sel != nil {
			fmt.Println("\nSelected: " + sel.Path)
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
