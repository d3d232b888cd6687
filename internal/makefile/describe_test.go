package makefile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDescribe(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "Makefile")

	content := `.PHONY: all build test clean

# Single hash comment
build:
	@echo "Building..."

## Double hash comment (industry standard)
test:
	@echo "Testing..."

clean: ## Inline double hash comment
	@echo "Cleaning..."

run: # Inline single hash comment
	@echo "Running..."

no-comment:
	@echo "No comment..."

all: build test ## Inline after deps
	@echo "All done!"
`

	if err := os.WriteFile(testFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	targets, err := Describe(testFile)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}

	tests := []struct {
		name         string
		expectedDesc string
		expectedType CommentType
	}{
		{"build", "Single hash comment", CommentSingle},
		{"test", "Double hash comment (industry standard)", CommentDouble},
		{"clean", "Inline double hash comment", CommentDouble},
		{"run", "Inline single hash comment", CommentSingle},
		{"no-comment", "", CommentNone},
		{"all", "Inline after deps", CommentDouble},
	}

	targetMap := make(map[string]Target)
	for _, target := range targets {
		targetMap[target.Name] = target
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, found := targetMap[tt.name]
			if !found {
				t.Fatalf("target %s not found", tt.name)
			}
			if target.Description != tt.expectedDesc {
				t.Errorf("target %s: expected description %q, got %q", tt.name, tt.expectedDesc, target.Description)
			}
			if target.CommentType != tt.expectedType {
				t.Errorf("target %s: expected comment type %v, got %v", tt.name, tt.expectedType, target.CommentType)
			}
		})
	}
}

func TestDescribeInlineCommentOverridesPreceding(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "Makefile")

	content := `## Preceding comment
target: ## Inline comment
	@echo "test"
`
	if err := os.WriteFile(testFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	targets, err := Describe(testFile)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if len(targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(targets))
	}
	if targets[0].Description != "Inline comment" {
		t.Errorf("expected inline comment to override, got %q", targets[0].Description)
	}
}

func TestDescribeRecipeLinesWithColonsAreNotTargets(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "Makefile")

	content := `release: ## Create a release
	@echo "To create a release:"
	@echo "1. Create and push a tag: git tag -a v0.1.0"

build: ## Build the app
	go build -o app
`
	if err := os.WriteFile(testFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	targets, err := Describe(testFile)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("expected 2 targets, got %d: %+v", len(targets), targets)
	}
}
