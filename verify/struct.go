package verify

import (
	"fmt"

	"github.com/sarchlab/fabricdb/arch"
	"github.com/sarchlab/fabricdb/fabric"
)

// CheckStruct checks the graph without looking at bindings.
func CheckStruct(a *arch.Arch) []Issue {
	var issues []Issue

	issues = append(issues, checkNames(a)...)
	issues = append(issues, checkBelLocations(a)...)
	issues = append(issues, checkAdjacency(a)...)
	issues = append(issues, checkBelPins(a)...)

	return issues
}

func structIssue(resource string, x, y int, msg string) Issue {
	return Issue{
		Type:     IssueStruct,
		Resource: resource,
		X:        x,
		Y:        y,
		Message:  msg,
	}
}

func checkNames(a *arch.Arch) []Issue {
	var issues []Issue

	for _, w := range a.Wires() {
		name := a.WireName(w)
		if got := a.WireByName(name); got != w {
			x, y := a.WireLocation(w)
			issues = append(issues, structIssue(a.Str(name), x, y,
				fmt.Sprintf("wire name resolves to wire %d, not %d", got, w)))
		}
	}

	for _, p := range a.Pips() {
		name := a.PipName(p)
		if got := a.PipByName(name); got != p {
			loc := a.PipLocation(p)
			issues = append(issues, structIssue(a.Str(name), loc.X, loc.Y,
				fmt.Sprintf("pip name resolves to pip %d, not %d", got, p)))
		}
	}

	for _, b := range a.Bels() {
		name := a.BelName(b)
		if got := a.BelByName(name); got != b {
			loc := a.BelLocation(b)
			issues = append(issues, structIssue(a.Str(name), loc.X, loc.Y,
				fmt.Sprintf("bel name resolves to bel %d, not %d", got, b)))
		}
	}

	return issues
}

func checkBelLocations(a *arch.Arch) []Issue {
	var issues []Issue

	seen := make(map[fabric.Loc]fabric.BelID)
	for _, b := range a.Bels() {
		loc := a.BelLocation(b)

		if other, ok := seen[loc]; ok {
			issues = append(issues, Issue{
				Type:     IssueStruct,
				Resource: a.Str(a.BelName(b)),
				X:        loc.X,
				Y:        loc.Y,
				Message: fmt.Sprintf("bel shares location %s with %s",
					loc, a.Str(a.BelName(other))),
				Details: map[string]interface{}{"z": loc.Z},
			})

			continue
		}

		seen[loc] = b

		if a.BelByLocation(loc) != b {
			issues = append(issues, structIssue(a.Str(a.BelName(b)), loc.X, loc.Y,
				fmt.Sprintf("location %s does not lead back to the bel", loc)))
		}
	}

	return issues
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}

	return false
}

func checkAdjacency(a *arch.Arch) []Issue {
	var issues []Issue

	for _, p := range a.Pips() {
		name := a.Str(a.PipName(p))
		loc := a.PipLocation(p)

		if !contains(a.PipsDownhill(a.PipSrcWire(p)), p) {
			issues = append(issues, structIssue(name, loc.X, loc.Y,
				"pip is missing from the downhill list of its source wire"))
		}

		if !contains(a.PipsUphill(a.PipDstWire(p)), p) {
			issues = append(issues, structIssue(name, loc.X, loc.Y,
				"pip is missing from the uphill list of its destination wire"))
		}
	}

	for _, w := range a.Wires() {
		for _, p := range a.PipsDownhill(w) {
			if a.PipSrcWire(p) != w {
				x, y := a.WireLocation(w)
				issues = append(issues, structIssue(a.Str(a.WireName(w)), x, y,
					fmt.Sprintf("downhill pip %s starts elsewhere",
						a.Str(a.PipName(p)))))
			}
		}

		for _, p := range a.PipsUphill(w) {
			if a.PipDstWire(p) != w {
				x, y := a.WireLocation(w)
				issues = append(issues, structIssue(a.Str(a.WireName(w)), x, y,
					fmt.Sprintf("uphill pip %s ends elsewhere",
						a.Str(a.PipName(p)))))
			}
		}
	}

	return issues
}

func checkBelPins(a *arch.Arch) []Issue {
	var issues []Issue

	for _, b := range a.Bels() {
		loc := a.BelLocation(b)

		for _, pin := range a.BelPins(b) {
			w := a.BelPinWire(b, pin)
			bp := arch.BelPin{Bel: b, Pin: pin}

			if !contains(a.WireBelPins(w), bp) {
				issues = append(issues, structIssue(a.Str(a.BelName(b)), loc.X, loc.Y,
					fmt.Sprintf("pin %s is missing from wire %s",
						a.Str(pin), a.Str(a.WireName(w)))))
			}

			if a.BelPinType(b, pin) == fabric.PortOut && a.WireUphillBelPin(w) != bp {
				issues = append(issues, structIssue(a.Str(a.BelName(b)), loc.X, loc.Y,
					fmt.Sprintf("output pin %s does not drive wire %s",
						a.Str(pin), a.Str(a.WireName(w)))))
			}
		}
	}

	return issues
}
