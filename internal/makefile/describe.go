package makefile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// CommentType classifies the comment, if any, associated with a target for
// presentation purposes. This is a display-only concept consumed by the
// TUI's target list; it has no bearing on the Rule Map or on whether a
// recipe runs.
type CommentType int

const (
	CommentNone   CommentType = iota // No comment
	CommentSingle                    // # comment
	CommentDouble                    // ## comment (documentation convention)
)

// Target is a target as seen by a front-end browsing the makefile: its
// name, an optional human-authored description pulled from a preceding or
// inline comment, and its recipe lines for preview. It deliberately does
// not carry double-colon/origin/prerequisite semantics — those live on
// Rule, the type the Parser and Executor actually operate on.
type Target struct {
	Name         string
	Description  string
	CommentType  CommentType
	Dependencies []string
	Recipe       []string
}

// commentInfo holds information about a comment
type commentInfo struct {
	text        string
	commentType CommentType
}

// Describe scans a makefile for display purposes: target names, their
// `#`/`##` descriptions, and a flattened dependency/recipe preview. It is
// independent of Parser/RuleMap — a front-end calls both Describe (for
// listing) and the real Parser (for building), never one in place of the
// other.
func Describe(filename string) ([]Target, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open Makefile: %w", err)
	}
	defer file.Close()

	var targets []Target
	var lastComment commentInfo
	var currentTargets []*Target
	var recipeLines []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			commitCurrentTargets(currentTargets, recipeLines)
			currentTargets = nil
			recipeLines = nil
			lastComment = commentInfo{}
			continue
		}

		if after, ok := strings.CutPrefix(line, "\t"); ok {
			if len(currentTargets) > 0 {
				recipeLines = append(recipeLines, after)
			}
			continue
		}

		if comment, commentType, found := parseCommentLine(trimmed); found {
			commitCurrentTargets(currentTargets, recipeLines)
			currentTargets = nil
			recipeLines = nil
			lastComment = commentInfo{text: comment, commentType: commentType}
			continue
		}

		if strings.Contains(line, ":") && !strings.HasPrefix(line, "\t") && !isVariableAssignment(line) {
			currentTargets = processTargetLine(line, &targets, currentTargets, recipeLines, lastComment)
			recipeLines = nil
			lastComment = commentInfo{}
		}
	}

	commitCurrentTargets(currentTargets, recipeLines)

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading Makefile: %w", err)
	}

	return targets, nil
}

func isVariableAssignment(line string) bool {
	return strings.Contains(line, ":=") ||
		strings.Contains(line, "?=") ||
		strings.Contains(line, "+=") ||
		(strings.Contains(line, "=") && strings.Index(line, "=") < strings.Index(line, ":"))
}

func commitCurrentTargets(currentTargets []*Target, recipeLines []string) {
	if len(currentTargets) > 0 {
		for _, target := range currentTargets {
			target.Recipe = recipeLines
		}
	}
}

func parseCommentLine(trimmed string) (text string, commentType CommentType, found bool) {
	if comment, ok := strings.CutPrefix(trimmed, "##"); ok {
		return strings.TrimSpace(comment), CommentDouble, true
	}
	if comment, ok := strings.CutPrefix(trimmed, "#"); ok {
		return strings.TrimSpace(comment), CommentSingle, true
	}
	return "", CommentNone, false
}

func processTargetLine(line string, targets *[]Target, currentTargets []*Target,
	recipeLines []string, lastComment commentInfo) []*Target {
	commitCurrentTargets(currentTargets, recipeLines)

	parts := strings.SplitN(line, ":", 2)
	targetName := strings.TrimSpace(parts[0])

	if strings.HasPrefix(targetName, ".") {
		return nil
	}

	dependencies := parts[1]
	inlineComment := extractInlineComment(dependencies)

	cleanDeps := dependencies
	if idx := strings.Index(dependencies, "#"); idx >= 0 {
		cleanDeps = dependencies[:idx]
	}
	depList := parseDependencies(cleanDeps)

	finalDesc := lastComment.text
	finalType := lastComment.commentType
	if inlineComment.text != "" {
		finalDesc = inlineComment.text
		finalType = inlineComment.commentType
	}

	startIdx := len(*targets)
	for _, name := range strings.Fields(targetName) {
		*targets = append(*targets, Target{
			Name:         name,
			Description:  finalDesc,
			CommentType:  finalType,
			Dependencies: depList,
		})
	}

	var newCurrentTargets []*Target
	for i := startIdx; i < len(*targets); i++ {
		newCurrentTargets = append(newCurrentTargets, &(*targets)[i])
	}

	return newCurrentTargets
}

func extractInlineComment(dependencies string) commentInfo {
	if idx := strings.Index(dependencies, "##"); idx >= 0 {
		return commentInfo{text: strings.TrimSpace(dependencies[idx+2:]), commentType: CommentDouble}
	}
	if idx := strings.Index(dependencies, "#"); idx >= 0 {
		return commentInfo{text: strings.TrimSpace(dependencies[idx+1:]), commentType: CommentSingle}
	}
	return commentInfo{}
}

// parseDependencies extracts dependency target names from the
// dependency section of a target line, skipping variable references,
// pattern rules, and anything that looks like a file path rather than a
// target name.
func parseDependencies(depStr string) []string {
	trimmed := strings.TrimSpace(depStr)
	if trimmed == "" {
		return nil
	}

	if idx := strings.Index(trimmed, "|"); idx >= 0 {
		trimmed = trimmed[:idx]
	}

	fields := strings.Fields(trimmed)

	var deps []string
	for _, field := range fields {
		if strings.HasPrefix(field, "$") {
			continue
		}
		if strings.Contains(field, "%") {
			continue
		}
		if strings.Count(field, "/") > 1 {
			continue
		}
		if strings.Contains(field, "/") && strings.Contains(field, ".") {
			continue
		}
		deps = append(deps, field)
	}

	return deps
}
