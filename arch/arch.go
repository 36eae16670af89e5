// Package arch is the architecture graph of an FPGA fabric. It resolves a
// chip description into wires, pips and bels, and it owns the bindings that
// placement and routing make between those resources and a netlist.
//
// The graph is not safe for concurrent mutation. Loading must finish before
// any binding is made.
package arch

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/fabricdb/chipdb"
	"github.com/sarchlab/fabricdb/fabric"
	"github.com/sarchlab/fabricdb/netlist"
	"github.com/sarchlab/fabricdb/symbol"
	"github.com/sarchlab/fabricdb/timing"
)

// DefaultFamily is the device family an Arch is built for unless the
// builder says otherwise.
const DefaultFamily = "GW1N-9"

// Arch is the architecture graph of one device.
type Arch struct {
	sim.HookableBase

	syms *symbol.Interner
	nl   *netlist.Netlist

	family string
	device string

	wires  []*wireInfo
	pips   []*pipInfo
	bels   []*belInfo
	groups []*groupInfo

	wireByName  map[symbol.Symbol]fabric.WireID
	pipByName   map[symbol.Symbol]fabric.PipID
	belByName   map[symbol.Symbol]fabric.BelID
	groupByName map[symbol.Symbol]fabric.GroupID
	belByLoc    map[fabric.Loc]fabric.BelID
	tiles       map[tileKey]*tileInfo

	gridDimX, gridDimY int

	decalGraphics map[symbol.Symbol][]GraphicElement

	cellTiming *timing.DB

	lutK        int
	delayScale  float64
	delayOffset float64

	settings map[string]string

	defaultPlacer string
	defaultRouter string
	placers       map[string]Placer
	routers       map[string]Router
}

// Builder can create architectures.
type Builder struct {
	family      string
	syms        *symbol.Interner
	nl          *netlist.Netlist
	lutK        int
	delayScale  float64
	delayOffset float64
	placer      string
	router      string
	placers     map[string]Placer
	routers     map[string]Router
}

// NewBuilder creates a builder with the default family and delay model.
func NewBuilder() Builder {
	return Builder{
		family:     DefaultFamily,
		lutK:       4,
		delayScale: 0.1,
		placer:     DefaultPlacer,
		router:     DefaultRouter,
	}
}

// WithFamily sets the family the chip description must be for.
func (b Builder) WithFamily(family string) Builder {
	b.family = family
	return b
}

// WithSymbols sets the interner shared with the netlist.
func (b Builder) WithSymbols(syms *symbol.Interner) Builder {
	b.syms = syms
	return b
}

// WithNetlist sets the netlist that bindings refer to.
func (b Builder) WithNetlist(nl *netlist.Netlist) Builder {
	b.nl = nl
	return b
}

// WithLutK sets the number of LUT inputs.
func (b Builder) WithLutK(k int) Builder {
	b.lutK = k
	return b
}

// WithDelayScaling sets the linear delay model used by delay estimation.
func (b Builder) WithDelayScaling(scale, offset float64) Builder {
	b.delayScale = scale
	b.delayOffset = offset

	return b
}

// WithPlacerName selects the placer used when the settings do not name one.
func (b Builder) WithPlacerName(name string) Builder {
	mustBeKnown(name, AvailablePlacers, "placer")
	b.placer = name

	return b
}

// WithRouterName selects the router used when the settings do not name one.
func (b Builder) WithRouterName(name string) Builder {
	mustBeKnown(name, AvailableRouters, "router")
	b.router = name

	return b
}

// WithPlacer registers the implementation of a named placer.
func (b Builder) WithPlacer(name string, p Placer) Builder {
	mustBeKnown(name, AvailablePlacers, "placer")

	placers := make(map[string]Placer, len(b.placers)+1)
	for k, v := range b.placers {
		placers[k] = v
	}
	placers[name] = p
	b.placers = placers

	return b
}

// WithRouter registers the implementation of a named router.
func (b Builder) WithRouter(name string, r Router) Builder {
	mustBeKnown(name, AvailableRouters, "router")

	routers := make(map[string]Router, len(b.routers)+1)
	for k, v := range b.routers {
		routers[k] = v
	}
	routers[name] = r
	b.routers = routers

	return b
}

// BuildEmpty creates an architecture with no resources, to be filled with
// the construction methods.
func (b Builder) BuildEmpty() *Arch {
	syms := b.syms
	nl := b.nl

	switch {
	case nl != nil && syms == nil:
		syms = nl.Symbols()
	case nl != nil && syms != nl.Symbols():
		panic("netlist uses a different interner")
	case syms == nil:
		syms = symbol.NewInterner()
	}

	if nl == nil {
		nl = netlist.New(syms)
	}

	a := &Arch{
		syms:          syms,
		nl:            nl,
		family:        b.family,
		device:        b.family,
		wireByName:    make(map[symbol.Symbol]fabric.WireID),
		pipByName:     make(map[symbol.Symbol]fabric.PipID),
		belByName:     make(map[symbol.Symbol]fabric.BelID),
		groupByName:   make(map[symbol.Symbol]fabric.GroupID),
		belByLoc:      make(map[fabric.Loc]fabric.BelID),
		tiles:         make(map[tileKey]*tileInfo),
		decalGraphics: make(map[symbol.Symbol][]GraphicElement),
		cellTiming:    timing.NewDB(),
		lutK:          b.lutK,
		delayScale:    b.delayScale,
		delayOffset:   b.delayOffset,
		settings:      make(map[string]string),
		defaultPlacer: b.placer,
		defaultRouter: b.router,
		placers:       make(map[string]Placer),
		routers:       make(map[string]Router),
	}

	for k, v := range b.placers {
		a.placers[k] = v
	}

	for k, v := range b.routers {
		a.routers[k] = v
	}

	a.decalGraphics[symbol.Empty] = []GraphicElement{}

	return a
}

// Build creates an architecture from a chip description. It fails if the
// description is for another family or is malformed.
func (b Builder) Build(db *chipdb.Database) (*Arch, error) {
	if db.Family != b.family {
		return nil, errors.Errorf(
			"database is for family %q but provided device is family %q",
			db.Family, b.family)
	}

	if err := db.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid chip description")
	}

	a := b.BuildEmpty()
	a.device = db.Device

	if err := a.load(db); err != nil {
		return nil, err
	}

	return a, nil
}

// New creates an architecture of the default family from a chip
// description.
func New(db *chipdb.Database) (*Arch, error) {
	return NewBuilder().Build(db)
}

// MustNew is like New but panics on error.
func MustNew(db *chipdb.Database) *Arch {
	a, err := New(db)
	if err != nil {
		panic(err)
	}

	return a
}

// Symbols returns the interner that names every resource.
func (a *Arch) Symbols() *symbol.Interner {
	return a.syms
}

// ID interns a name.
func (a *Arch) ID(name string) symbol.Symbol {
	return a.syms.Intern(name)
}

// Str returns the string of a symbol.
func (a *Arch) Str(s symbol.Symbol) string {
	return a.syms.Str(s)
}

// Netlist returns the netlist that bindings refer to.
func (a *Arch) Netlist() *netlist.Netlist {
	return a.nl
}

// Family returns the device family.
func (a *Arch) Family() string {
	return a.family
}

// ChipName returns the device name.
func (a *Arch) ChipName() string {
	return a.device
}

// Setting returns a setting, or def when it is not set.
func (a *Arch) Setting(key, def string) string {
	if v, ok := a.settings[key]; ok {
		return v
	}

	return def
}

// SetSetting sets a setting.
func (a *Arch) SetSetting(key, value string) {
	a.settings[key] = value
}

func (a *Arch) wire(w fabric.WireID) *wireInfo {
	if w <= 0 || int(w) > len(a.wires) {
		panic(fmt.Sprintf("invalid wire handle %d", w))
	}

	return a.wires[w-1]
}

func (a *Arch) pip(p fabric.PipID) *pipInfo {
	if p <= 0 || int(p) > len(a.pips) {
		panic(fmt.Sprintf("invalid pip handle %d", p))
	}

	return a.pips[p-1]
}

func (a *Arch) bel(b fabric.BelID) *belInfo {
	if b <= 0 || int(b) > len(a.bels) {
		panic(fmt.Sprintf("invalid bel handle %d", b))
	}

	return a.bels[b-1]
}

func (a *Arch) group(g fabric.GroupID) *groupInfo {
	if g <= 0 || int(g) > len(a.groups) {
		panic(fmt.Sprintf("invalid group handle %d", g))
	}

	return a.groups[g-1]
}

func (a *Arch) tile(x, y int) *tileInfo {
	k := tileKey{x, y}

	t, ok := a.tiles[k]
	if !ok {
		t = &tileInfo{}
		a.tiles[k] = t
	}

	return t
}
