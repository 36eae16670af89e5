// Package verify checks a loaded architecture graph, and the bindings made
// on it, against the invariants the binding engine promises.
//
// Two kinds of checks are run:
//
//  1. STRUCT checks look at the graph alone
//     - every wire, pip and bel is found again by its name
//     - no two bels share a location
//     - pip adjacency lists and bel pins point back at each other
//
//  2. BINDING checks look at the current bindings
//     - a bound pip and the wire it drives agree on the net and the pip
//     - the wire map of every net matches the wires bound to it
//     - bels and cells agree on placement
//     - the cells sharing a tile are compatible
//
// # Usage Example
//
//	a := arch.MustNew(db)
//	// ... place and route ...
//	issues := verify.Check(a)
//	if len(issues) > 0 {
//	    verify.NewReport(a, issues).Write(os.Stdout)
//	}
package verify

import (
	"github.com/sarchlab/fabricdb/arch"
)

// IssueType categorizes issues.
type IssueType string

const (
	IssueStruct  IssueType = "STRUCT"  // Graph is malformed
	IssueBinding IssueType = "BINDING" // Bindings disagree with each other
)

// Issue is one broken invariant.
type Issue struct {
	Type     IssueType              // STRUCT or BINDING
	Resource string                 // Name of the wire, pip, bel or net at fault
	X, Y     int                    // Grid position (-1 if not applicable)
	Message  string                 // Human-readable description
	Details  map[string]interface{} // Additional structured data
}

// Check runs every check on the architecture.
func Check(a *arch.Arch) []Issue {
	var issues []Issue

	issues = append(issues, CheckStruct(a)...)
	issues = append(issues, CheckBindings(a)...)

	return issues
}
