package arch

import (
	"errors"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/fabricdb/fabric"
	"github.com/sarchlab/fabricdb/netlist"
)

var _ = Describe("Flow", func() {
	var (
		mockCtrl *gomock.Controller
		sa       *MockPlacer
		heap     *MockPlacer
		router1  *MockRouter
		a        *Arch
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		sa = NewMockPlacer(mockCtrl)
		heap = NewMockPlacer(mockCtrl)
		router1 = NewMockRouter(mockCtrl)

		var err error
		a, err = NewBuilder().
			WithPlacer("sa", sa).
			WithPlacer("heap", heap).
			WithRouter("router1", router1).
			Build(aliasFabric())
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should pack without changes", func() {
		Expect(a.Pack()).To(Succeed())
	})

	It("should run the default placer and mark the design placed", func() {
		sa.EXPECT().Place(a).Return(nil)

		Expect(a.Place()).To(Succeed())
		Expect(a.Setting("place", "")).To(Equal("1"))
	})

	It("should fall back to sa when heap has no anchor", func() {
		a.SetSetting("placer", "heap")
		a.Netlist().AddCell("lut", "SLICE")
		sa.EXPECT().Place(a).Return(nil)

		Expect(a.Place()).To(Succeed())
	})

	It("should run heap when an IOB anchors the placement", func() {
		a.SetSetting("placer", "heap")
		a.Netlist().AddCell("pad", "IOB")
		heap.EXPECT().Place(a).Return(nil)

		Expect(a.Place()).To(Succeed())
	})

	It("should run heap when a cell carries a BEL constraint", func() {
		a.SetSetting("placer", "heap")
		nl := a.Netlist()
		c := nl.AddCell("lut", "SLICE")
		nl.SetAttr(c, "BEL", "R1C1_SLICE0")
		heap.EXPECT().Place(a).Return(nil)

		Expect(a.Place()).To(Succeed())
	})

	It("should report a failing placer and still mark the design placed", func() {
		sa.EXPECT().Place(a).Return(errors.New("no room"))

		err := a.Place()
		Expect(err).To(MatchError(ContainSubstring("placer sa: no room")))
		Expect(a.Setting("place", "")).To(Equal("1"))
	})

	It("should panic on an unsupported placer", func() {
		a.SetSetting("placer", "annealer")

		Expect(func() { _ = a.Place() }).To(Panic())
	})

	It("should route with the default router", func() {
		router1.EXPECT().Route(a).Return(nil)

		Expect(a.Route()).To(Succeed())
		Expect(a.Setting("route", "")).To(Equal("1"))
	})

	It("should fail on a router that is supported but not registered", func() {
		a.SetSetting("router", "router2")

		Expect(a.Route()).To(MatchError(ContainSubstring("router2")))
	})

	It("should refuse to register an unsupported implementation", func() {
		Expect(func() { NewBuilder().WithPlacer("foo", sa) }).To(Panic())
		Expect(func() { NewBuilder().WithRouterName("foo") }).To(Panic())
	})
})

var _ = Describe("Compatibility", func() {
	var (
		a  *Arch
		nl *netlist.Netlist
	)

	slice := func(name string, clk netlist.NetID) netlist.CellID {
		c := nl.AddCell(name, "SLICE")
		if clk.Valid() {
			nl.Connect(c, "CLK", fabric.PortIn, clk)
		}

		return c
	}

	BeforeEach(func() {
		a = MustNew(sliceFabric())
		nl = a.Netlist()
	})

	It("should record slice facts on every cell", func() {
		clk := nl.AddNet("clk")
		c := slice("ff", clk)
		io := nl.AddCell("pad", "IOB")
		nl.SetAttr(io, "PACK_GROUP", "3")

		a.AssignArchInfo()

		Expect(nl.Cell(c).IsSlice).To(BeTrue())
		Expect(nl.Cell(c).SliceClk).To(Equal(clk))
		Expect(nl.Cell(c).UserGroup).To(Equal(-1))
		Expect(nl.Cell(io).IsSlice).To(BeFalse())
		Expect(nl.Cell(io).UserGroup).To(Equal(3))
	})

	It("should require slices to share a clock", func() {
		clk0 := nl.AddNet("clk0")
		clk1 := nl.AddNet("clk1")
		c0 := slice("c0", clk0)
		c1 := slice("c1", clk1)
		c2 := slice("c2", clk0)
		comb := slice("comb", netlist.NoNet)
		a.AssignArchInfo()

		Expect(a.CellsCompatible(nil)).To(BeTrue())
		Expect(a.CellsCompatible([]netlist.CellID{c0, c2, comb})).To(BeTrue())
		Expect(a.CellsCompatible([]netlist.CellID{c0, c1})).To(BeFalse())
	})

	It("should require cells to share a packing group", func() {
		c0 := slice("c0", netlist.NoNet)
		c1 := slice("c1", netlist.NoNet)
		free := slice("free", netlist.NoNet)
		nl.SetAttr(c0, "PACK_GROUP", "1")
		nl.SetAttr(c1, "PACK_GROUP", "2")
		a.AssignArchInfo()

		Expect(a.CellsCompatible([]netlist.CellID{c0, free})).To(BeTrue())
		Expect(a.CellsCompatible([]netlist.CellID{c0, c1})).To(BeFalse())
	})

	It("should check a bel against the cells already in its tile", func() {
		b4 := a.BelByName(a.ID("R1C1_SLICE4"))
		b5 := a.BelByName(a.ID("R1C1_SLICE5"))
		c0 := slice("c0", nl.AddNet("clk0"))
		c1 := slice("c1", nl.AddNet("clk1"))
		a.AssignArchInfo()

		a.BindBel(b4, c0, fabric.StrengthStrong)

		Expect(a.IsValidBelForCell(c0, b4)).To(BeTrue())
		Expect(a.IsValidBelForCell(c1, b5)).To(BeFalse())
		Expect(a.IsBelLocationValid(b4)).To(BeTrue())

		a.BindBel(b5, c1, fabric.StrengthWeak)
		Expect(a.IsBelLocationValid(b4)).To(BeFalse())
	})
})
