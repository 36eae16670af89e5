package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/fabricdb/arch"
	"github.com/sarchlab/fabricdb/chipdb"
	"github.com/sarchlab/fabricdb/fabric"
	"github.com/sarchlab/fabricdb/netlist"
	"github.com/sarchlab/fabricdb/report"
	"github.com/sarchlab/fabricdb/verify"
)

// A pad feeds a LUT whose output drives another pad, all in one tile. The
// IOBs take z 0 and 1, so the LUT sits at z 2.
func passThroughFabric() *chipdb.Database {
	return chipdb.NewBuilder(arch.DefaultFamily, 1, 1).
		AddBel(0, 0, "IOBA",
			chipdb.Port{Wire: "PI0", Name: "I"},
			chipdb.Port{Wire: "PO0", Name: "O"},
			chipdb.Port{Wire: "POE0", Name: "OE"}).
		AddBel(0, 0, "IOBB",
			chipdb.Port{Wire: "PI1", Name: "I"},
			chipdb.Port{Wire: "PO1", Name: "O"},
			chipdb.Port{Wire: "POE1", Name: "OE"}).
		AddBel(0, 0, "LUT2").
		AddPip(0, 0, "PO0", "A2").
		AddPip(0, 0, "F2", "PI1").
		Build()
}

// constrainedPlacer puts every cell on the bel named by its BEL attribute.
type constrainedPlacer struct{}

func (constrainedPlacer) Place(a *arch.Arch) error {
	nl := a.Netlist()
	key := a.ID("BEL")

	for _, id := range nl.Cells() {
		name, ok := nl.Cell(id).Attrs[key]
		if !ok {
			return errors.Errorf("cell %s has no BEL constraint", nl.CellName(id))
		}

		bel := a.BelByName(a.ID(name))
		if !bel.Valid() || !a.IsValidBelForCell(id, bel) {
			return errors.Errorf("cannot place cell %s on %s", nl.CellName(id), name)
		}

		a.BindBel(bel, id, fabric.StrengthUser)
	}

	return nil
}

// directRouter connects every sink through a single pip.
type directRouter struct{}

func pinWire(a *arch.Arch, ref netlist.PortRef) fabric.WireID {
	return a.BelPinWire(a.Netlist().Cell(ref.Cell).Bel, ref.Port)
}

func (directRouter) Route(a *arch.Arch) error {
	nl := a.Netlist()

	for _, id := range nl.Nets() {
		n := nl.Net(id)
		src := pinWire(a, n.Driver)
		a.BindWire(src, id, fabric.StrengthStrong)

		for _, user := range n.Users {
			dst := pinWire(a, user)

			routed := false
			for _, pip := range a.PipsDownhill(src) {
				if a.PipDstWire(pip) == dst && a.CheckPipAvail(pip) {
					a.BindPip(pip, id, fabric.StrengthStrong)
					routed = true

					break
				}
			}

			if !routed {
				return errors.Errorf("no pip from %s to %s",
					a.Str(a.WireName(src)), a.Str(a.WireName(dst)))
			}
		}
	}

	return nil
}

func buildNetlist(nl *netlist.Netlist) {
	in := nl.AddCell("pad_in", "IOB")
	lut := nl.AddCell("buf", "SLICE")
	out := nl.AddCell("pad_out", "IOB")

	nl.SetAttr(in, "BEL", "R1C1_IOBA")
	nl.SetAttr(lut, "BEL", "R1C1_SLICE2")
	nl.SetAttr(out, "BEL", "R1C1_IOBB")

	din := nl.AddNet("din")
	nl.Connect(in, "O", fabric.PortOut, din)
	nl.Connect(lut, "A", fabric.PortIn, din)

	dout := nl.AddNet("dout")
	nl.Connect(lut, "F", fabric.PortOut, dout)
	nl.Connect(out, "I", fabric.PortIn, dout)
}

func main() {
	a, err := arch.NewBuilder().
		WithPlacerName("heap").
		WithPlacer("heap", constrainedPlacer{}).
		WithRouter("router1", directRouter{}).
		Build(passThroughFabric())
	if err != nil {
		atexit.Fatalf("%v", err)
	}

	activity := report.NewActivity()
	a.AcceptHook(activity)

	buildNetlist(a.Netlist())
	a.AssignArchInfo()

	if err := a.Place(); err != nil {
		atexit.Fatalf("%v", err)
	}

	if err := a.Route(); err != nil {
		atexit.Fatalf("%v", err)
	}

	report.Write(os.Stdout, a)
	fmt.Println()
	fmt.Println(activity.Table().Render())

	if issues := verify.Check(a); len(issues) > 0 {
		verify.NewReport(a, issues).Write(os.Stdout)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
