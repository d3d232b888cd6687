package executor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mkrun-go/mkrun/internal/logger"
	"github.com/mkrun-go/mkrun/internal/makefile"
	"github.com/mkrun-go/mkrun/internal/runopts"
	"github.com/mkrun-go/mkrun/internal/safety"
	"github.com/mkrun-go/mkrun/internal/vars"
)

func build(t *testing.T, src string) (*makefile.RuleMap, *vars.Store) {
	t.Helper()
	store := vars.New()
	rm := makefile.NewRuleMap()
	p := makefile.NewParser(store, rm, nil)
	if err := p.Parse(strings.NewReader(src)); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return rm, store
}

func TestExecutorSimpleTargetNoPrereqs(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	rm, store := build(t, "all:\n\techo hi\n")
	ex := New(rm, store, nil, nil)

	if err := ex.Run([]string{"all"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExecutorNoRuleForTarget(t *testing.T) {
	rm, store := build(t, "all:\n\techo hi\n")
	ex := New(rm, store, nil, nil)

	err := ex.Run([]string{"missing"}, "")
	if err == nil {
		t.Fatalf("expected error for missing target")
	}
	ee, ok := err.(*ExecError)
	if !ok || ee.Message != "No rule to make target 'missing'." {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExecutorRebuildsWhenPrereqNewer(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	out := filepath.Join(dir, "out")
	src := filepath.Join(dir, "src")

	writeFile(t, src, "x")
	writeFile(t, out, "y")

	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(out, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	rm, store := build(t, "out: src\n\techo built > out\n")
	ex := New(rm, store, nil, nil)

	if err := ex.Run([]string{"out"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat out: %v", err)
	}
	if !info.ModTime().After(old) {
		t.Fatalf("expected out to be rebuilt")
	}
}

func TestExecutorUpToDateSkipsRecipe(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	src := filepath.Join(dir, "src")
	out := filepath.Join(dir, "out")
	writeFile(t, src, "x")
	writeFile(t, out, "y")

	now := time.Now()
	if err := os.Chtimes(src, now.Add(-time.Hour), now.Add(-time.Hour)); err != nil {
		t.Fatalf("chtimes src: %v", err)
	}

	rm, store := build(t, "out: src\n\ttouch out-should-not-exist\n")
	ex := New(rm, store, nil, nil)

	if err := ex.Run([]string{"out"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out-should-not-exist")); err == nil {
		t.Fatalf("expected recipe to be skipped when target is newer than prerequisite")
	}
}

func TestExecutorAlwaysMakeForcesRebuild(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	marker := filepath.Join(dir, "marker")

	rm, store := build(t, "all:\n\ttouch marker\n")
	opts := runopts.New()
	opts.AlwaysMake = true
	ex := New(rm, store, opts, nil)

	if err := ex.Run([]string{"all"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Fatalf("expected marker created by always_make rebuild: %v", err)
	}
}

func TestExecutorJustPrintSkipsExecution(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	marker := filepath.Join(dir, "marker")

	rm, store := build(t, "all:\n\ttouch marker\n")
	opts := runopts.New()
	opts.JustPrint = true
	ex := New(rm, store, opts, nil)

	if err := ex.Run([]string{"all"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(marker); err == nil {
		t.Fatalf("just_print must not spawn the shell")
	}
}

func TestExecutorJustPrintForceRunPlusModifier(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	marker := filepath.Join(dir, "marker")

	rm, store := build(t, "all:\n\t+touch marker\n")
	opts := runopts.New()
	opts.JustPrint = true
	ex := New(rm, store, opts, nil)

	if err := ex.Run([]string{"all"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Fatalf("expected '+' modifier to force execution under just_print: %v", err)
	}
}

func TestExecutorFailureAbortsWithCode(t *testing.T) {
	rm, store := build(t, "all:\n\texit 7\n")
	ex := New(rm, store, nil, nil)

	err := ex.Run([]string{"all"}, "")
	if err == nil {
		t.Fatalf("expected error")
	}
	ee, ok := err.(*ExecError)
	if !ok || ee.Message != "Failed with code 7." {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExecutorDashModifierIgnoresFailure(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	rm, store := build(t, "all:\n\t-exit 7\n\ttouch marker\n")
	ex := New(rm, store, nil, nil)

	if err := ex.Run([]string{"all"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "marker")); err != nil {
		t.Fatalf("expected execution to continue past a '-' modified failure")
	}
}

func TestExecutorIgnoreErrorsOptionContinuesBuild(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	rm, store := build(t, "all:\n\texit 7\n\ttouch marker\n")
	opts := runopts.New()
	opts.IgnoreErrors = true
	ex := New(rm, store, opts, nil)

	if err := ex.Run([]string{"all"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "marker")); err != nil {
		t.Fatalf("expected build to continue with ignore_errors set")
	}
}

func TestExecutorOldFileTreatsTargetAsUpToDate(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	rm, store := build(t, "generated:\n\ttouch generated-rebuilt\n")
	opts := runopts.New()
	opts.MarkOld("generated")
	ex := New(rm, store, opts, nil)

	if err := ex.Run([]string{"generated"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "generated-rebuilt")); err == nil {
		t.Fatalf("old_file target must not be rebuilt")
	}
}

func TestExecutorDefaultTargetUsedWhenNoneRequested(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	marker := filepath.Join(dir, "marker")

	rm, store := build(t, "all:\n\ttouch marker\n")
	ex := New(rm, store, nil, nil)

	if err := ex.Run(nil, "all"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Fatalf("expected default target to run: %v", err)
	}
}

func TestExecutorNoTargetsNoDefaultIsError(t *testing.T) {
	rm, store := build(t, "all:\n\techo hi\n")
	ex := New(rm, store, nil, nil)

	if err := ex.Run(nil, ""); err == nil {
		t.Fatalf("expected error when no targets and no default")
	}
}

func TestExecuteStreamingCollectsOutput(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	writeFile(t, filepath.Join(dir, "Makefile"), "all:\n\techo hi\n")

	chunks, cancel := ExecuteStreaming("all", filepath.Join(dir, "Makefile"))
	defer cancel()

	var output strings.Builder
	var finalErr error
	for chunk := range chunks {
		if chunk.Done {
			finalErr = chunk.Err
			continue
		}
		output.WriteString(chunk.Data)
	}

	if finalErr != nil {
		t.Fatalf("unexpected error: %v", finalErr)
	}
	if !strings.Contains(output.String(), "hi") {
		t.Fatalf("expected streamed output to contain 'hi', got %q", output.String())
	}
}

func TestExecuteStreamingReportsMissingTarget(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	writeFile(t, filepath.Join(dir, "Makefile"), "all:\n\techo hi\n")

	chunks, cancel := ExecuteStreaming("missing", filepath.Join(dir, "Makefile"))
	defer cancel()

	var finalErr error
	for chunk := range chunks {
		if chunk.Done {
			finalErr = chunk.Err
		}
	}

	if finalErr == nil {
		t.Fatalf("expected error for missing target")
	}
}

func TestExecutorCancelStopsRun(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	rm, store := build(t, "all:\n\tsleep 5\n")
	ex := New(rm, store, nil, nil)

	done := make(chan error, 1)
	go func() { done <- ex.Run([]string{"all"}, "") }()

	time.Sleep(50 * time.Millisecond)
	ex.Cancel()

	select {
	case err := <-done:
		ee, ok := err.(*ExecError)
		if !ok || ee.Message != "Canceled." {
			t.Fatalf("expected Canceled error, got: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Cancel")
	}
}

func TestExecutorSafetyBlocksCriticalWhenConfigured(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	rm, store := build(t, "nuke-prod:\n\techo \"drop database production\"\n")

	var buf logger.Buffer
	log := logger.New(&buf)

	checker, err := safety.NewChecker(safety.DefaultConfig())
	if err != nil {
		t.Fatalf("NewChecker: %v", err)
	}

	ex := New(rm, store, nil, log).WithSafety(checker, true)

	err = ex.Run([]string{"nuke-prod"}, "")
	if err == nil {
		t.Fatal("expected a critical safety match to block the build")
	}
	if !strings.Contains(err.Error(), "Blocked by safety check") {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buf.Lines) == 0 || !strings.Contains(buf.Lines[0], "ERROR") {
		t.Fatalf("expected an ERROR log event, got: %v", buf.Lines)
	}
}

func TestExecutorSafetyWarnsWithoutBlocking(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	target := filepath.Join(dir, "f")
	writeFile(t, target, "x")

	rm, store := build(t, "loosen:\n\tchmod 777 "+target+"\n")

	var buf logger.Buffer
	log := logger.New(&buf)

	checker, err := safety.NewChecker(safety.DefaultConfig())
	if err != nil {
		t.Fatalf("NewChecker: %v", err)
	}

	ex := New(rm, store, nil, log).WithSafety(checker, true)

	if err := ex.Run([]string{"loosen"}, ""); err != nil {
		t.Fatalf("a Warning-severity match must not block the build: %v", err)
	}
	if len(buf.Lines) == 0 || !strings.Contains(buf.Lines[0], "WARN") {
		t.Fatalf("expected a WARN log event, got: %v", buf.Lines)
	}
}

func TestExecutorWithoutSafetyCheckerRunsUnchecked(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	rm, store := build(t, "nuke-prod:\n\techo \"drop database production\"\n")
	ex := New(rm, store, nil, nil)

	if err := ex.Run([]string{"nuke-prod"}, ""); err != nil {
		t.Fatalf("no safety checker attached should mean no gating: %v", err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
