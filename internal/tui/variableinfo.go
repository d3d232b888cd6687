package tui

import (
	"sort"
	"strings"

	"github.com/mkrun-go/mkrun/internal/makefile"
	"github.com/mkrun-go/mkrun/internal/vars"
)

// VariableKind distinguishes an immediately-expanded variable from one
// whose value is re-expanded every time it is referenced, for display in
// the variable inspector.
type VariableKind int

const (
	KindImmediate VariableKind = iota
	KindRecursive
)

// Symbol returns the assignment operator conventionally associated with
// the kind ("=" for recursive, ":=" for immediate).
func (k VariableKind) Symbol() string {
	if k == KindRecursive {
		return "="
	}
	return ":="
}

func (k VariableKind) String() string {
	if k == KindRecursive {
		return "recursive"
	}
	return "immediate"
}

// VariableInfo is a single entry in the TUI's variable inspector: a name
// from the Variable Store plus its usage across the makefile's targets.
// This is presentation data built by the TUI, not a type the Store or
// Expander know about.
type VariableInfo struct {
	Name          string
	RawValue      string
	ExpandedValue string
	Type          VariableKind
	UsedByTargets []string
}

// BuildVariableInfos lists every variable explicitly set in store,
// alphabetically, and records which target recipes reference it (by
// $(NAME), ${NAME}, or $N for single-letter names).
func BuildVariableInfos(store *vars.Store, targets []makefile.Target) []VariableInfo {
	names := store.Names()
	sort.Strings(names)

	infos := make([]VariableInfo, 0, len(names))
	for _, name := range names {
		v := store.Get(name)
		kind := KindImmediate
		if v.Recursive {
			kind = KindRecursive
		}

		expanded := ""
		if v.Recursive {
			expanded = v.Value
		}

		infos = append(infos, VariableInfo{
			Name:          name,
			RawValue:      v.Value,
			ExpandedValue: expanded,
			Type:          kind,
			UsedByTargets: usedByTargets(name, targets),
		})
	}
	return infos
}

func usedByTargets(name string, targets []makefile.Target) []string {
	refs := []string{"$(" + name + ")", "${" + name + "}"}
	if len(name) == 1 {
		refs = append(refs, "$"+name)
	}

	var users []string
	for _, target := range targets {
		found := false
		for _, line := range target.Recipe {
			for _, ref := range refs {
				if strings.Contains(line, ref) {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if found {
			users = append(users, target.Name)
		}
	}
	return users
}
