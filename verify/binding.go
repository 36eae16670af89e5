package verify

import (
	"fmt"

	"github.com/sarchlab/fabricdb/arch"
	"github.com/sarchlab/fabricdb/netlist"
)

// CheckBindings checks that the bindings on the graph and the netlist agree.
func CheckBindings(a *arch.Arch) []Issue {
	var issues []Issue

	issues = append(issues, checkPipBindings(a)...)
	issues = append(issues, checkNetWires(a)...)
	issues = append(issues, checkBelBindings(a)...)
	issues = append(issues, checkTiles(a)...)

	return issues
}

func bindingIssue(resource string, x, y int, msg string, details map[string]interface{}) Issue {
	return Issue{
		Type:     IssueBinding,
		Resource: resource,
		X:        x,
		Y:        y,
		Message:  msg,
		Details:  details,
	}
}

func checkPipBindings(a *arch.Arch) []Issue {
	var issues []Issue
	nl := a.Netlist()

	for _, p := range a.Pips() {
		net := a.BoundPipNet(p)
		if !net.Valid() {
			continue
		}

		name := a.Str(a.PipName(p))
		loc := a.PipLocation(p)
		dst := a.PipDstWire(p)

		if wireNet := a.BoundWireNet(dst); wireNet != net {
			issues = append(issues, bindingIssue(name, loc.X, loc.Y,
				"pip and its destination wire are bound to different nets",
				map[string]interface{}{
					"pip_net":  nl.NetName(net),
					"wire_net": netName(nl, wireNet),
				}))

			continue
		}

		if drv := a.BoundWirePip(dst); drv != p {
			issues = append(issues, bindingIssue(name, loc.X, loc.Y,
				fmt.Sprintf("wire %s records another driving pip",
					a.Str(a.WireName(dst))),
				map[string]interface{}{"driving_pip": int(drv)}))
		}
	}

	return issues
}

func netName(nl *netlist.Netlist, net netlist.NetID) string {
	if !net.Valid() {
		return "<none>"
	}

	return nl.NetName(net)
}

func checkNetWires(a *arch.Arch) []Issue {
	var issues []Issue
	nl := a.Netlist()

	for _, id := range nl.Nets() {
		n := nl.Net(id)

		for w, pm := range n.Wires {
			x, y := a.WireLocation(w)

			if a.BoundWireNet(w) != id {
				issues = append(issues, bindingIssue(nl.NetName(id), x, y,
					fmt.Sprintf("net lists wire %s it does not own",
						a.Str(a.WireName(w))), nil))
			}

			if pm.Pip.Valid() && (a.BoundPipNet(pm.Pip) != id || a.PipDstWire(pm.Pip) != w) {
				issues = append(issues, bindingIssue(nl.NetName(id), x, y,
					fmt.Sprintf("net reaches wire %s through pip %s it does not own",
						a.Str(a.WireName(w)), a.Str(a.PipName(pm.Pip))), nil))
			}
		}
	}

	for _, w := range a.Wires() {
		net := a.BoundWireNet(w)
		if !net.Valid() {
			continue
		}

		if _, ok := nl.Net(net).Wires[w]; !ok {
			x, y := a.WireLocation(w)
			issues = append(issues, bindingIssue(a.Str(a.WireName(w)), x, y,
				fmt.Sprintf("wire is bound to net %s but missing from its wire map",
					nl.NetName(net)), nil))
		}
	}

	return issues
}

func checkBelBindings(a *arch.Arch) []Issue {
	var issues []Issue
	nl := a.Netlist()

	for _, b := range a.Bels() {
		cell := a.BoundBelCell(b)
		if !cell.Valid() {
			continue
		}

		if nl.Cell(cell).Bel != b {
			loc := a.BelLocation(b)
			issues = append(issues, bindingIssue(a.Str(a.BelName(b)), loc.X, loc.Y,
				fmt.Sprintf("bel is bound to cell %s placed elsewhere",
					nl.CellName(cell)), nil))
		}
	}

	for _, id := range nl.Cells() {
		bel := nl.Cell(id).Bel
		if bel.Valid() && a.BoundBelCell(bel) != id {
			loc := a.BelLocation(bel)
			issues = append(issues, bindingIssue(nl.CellName(id), loc.X, loc.Y,
				fmt.Sprintf("cell claims bel %s it does not own",
					a.Str(a.BelName(bel))), nil))
		}
	}

	return issues
}

func checkTiles(a *arch.Arch) []Issue {
	var issues []Issue

	for x := 0; x < a.GridDimX(); x++ {
		for y := 0; y < a.GridDimY(); y++ {
			bels := a.BelsByTile(x, y)
			if len(bels) == 0 || a.IsBelLocationValid(bels[0]) {
				continue
			}

			issues = append(issues, bindingIssue(fmt.Sprintf("R%dC%d", y+1, x+1), x, y,
				"cells placed in the tile are not compatible", nil))
		}
	}

	return issues
}
