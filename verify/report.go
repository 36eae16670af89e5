package verify

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/sarchlab/fabricdb/arch"
)

// Report groups the issues found on one architecture.
type Report struct {
	Chip          string
	Wires         int
	Pips          int
	Bels          int
	StructIssues  []Issue
	BindingIssues []Issue
}

// NewReport sorts the issues into a report.
func NewReport(a *arch.Arch, issues []Issue) *Report {
	r := &Report{
		Chip:  a.ChipName(),
		Wires: len(a.Wires()),
		Pips:  len(a.Pips()),
		Bels:  len(a.Bels()),
	}

	for _, issue := range issues {
		if issue.Type == IssueStruct {
			r.StructIssues = append(r.StructIssues, issue)
		} else {
			r.BindingIssues = append(r.BindingIssues, issue)
		}
	}

	return r
}

// OK tells whether the report carries no issue at all.
func (r *Report) OK() bool {
	return len(r.StructIssues) == 0 && len(r.BindingIssues) == 0
}

// Write writes a formatted report to a writer.
func (r *Report) Write(w io.Writer) {
	separator := strings.Repeat("=", 60)
	dash := strings.Repeat("-", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "FABRIC CHECK REPORT: %s\n", r.Chip)
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "%d wires, %d pips, %d bels\n", r.Wires, r.Pips, r.Bels)

	writeIssues(w, dash, "STRUCT ISSUES", r.StructIssues)
	writeIssues(w, dash, "BINDING ISSUES", r.BindingIssues)

	fmt.Fprintln(w, "\n"+separator)
	if r.OK() {
		fmt.Fprintln(w, "✓ ALL CHECKS PASSED")
	} else {
		fmt.Fprintf(w, "⚠ %d issues detected (%d STRUCT, %d BINDING)\n",
			len(r.StructIssues)+len(r.BindingIssues),
			len(r.StructIssues), len(r.BindingIssues))
	}
	fmt.Fprintln(w)
}

func writeIssues(w io.Writer, dash, title string, issues []Issue) {
	if len(issues) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s (%d):\n", title, len(issues))
	fmt.Fprintln(w, dash)

	for _, issue := range issues {
		fmt.Fprintf(w, "  [%s X%dY%d] %s\n",
			issue.Resource, issue.X, issue.Y, issue.Message)

		keys := make([]string, 0, len(issue.Details))
		for k := range issue.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Fprintf(w, "    %s: %v\n", k, issue.Details[k])
		}
	}
}

// SaveToFile saves the report to a file.
func (r *Report) SaveToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create report file")
	}
	defer file.Close()

	r.Write(file)

	return nil
}
