package chipdb

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

var magic = [4]byte{'F', 'D', 'B', 'C'}

// maxCount bounds every length prefix so that a corrupt file fails fast
// instead of allocating gigabytes.
const maxCount = 1 << 26

// reserveLimit caps the capacity reserved from a length prefix. Longer runs
// grow as their records arrive, so a truncated stream costs only what it
// holds.
const reserveLimit = 1024

func reserve(n int) int {
	if n > reserveLimit {
		return reserveLimit
	}

	return n
}

// Write encodes the database in the little-endian binary format.
func Write(w io.Writer, db *Database) error {
	bw := bufio.NewWriter(w)
	e := &encoder{w: bw}

	e.raw(magic)
	e.u32(db.Version)
	e.str(db.Family)
	e.str(db.Device)
	e.u32(uint32(db.Rows))
	e.u32(uint32(db.Cols))

	e.u32(uint32(len(db.Strings)))
	for _, s := range db.Strings {
		e.str(s)
	}

	e.u32(uint32(len(db.Grid)))
	for i := range db.Grid {
		e.tile(&db.Grid[i])
	}

	e.u32(uint32(len(db.Aliases)))
	for _, a := range db.Aliases {
		e.raw(a)
	}

	if e.err != nil {
		return errors.Wrap(e.err, "write chip description")
	}

	return errors.Wrap(bw.Flush(), "write chip description")
}

// Read decodes a database written by Write and validates it.
func Read(r io.Reader) (*Database, error) {
	d := &decoder{r: bufio.NewReader(r)}

	var m [4]byte
	d.raw(&m)
	if d.err == nil && m != magic {
		return nil, errors.New("not a chip description: bad magic")
	}

	db := &Database{}
	db.Version = d.u32()
	if d.err == nil && db.Version != Version {
		return nil, errors.Errorf("chip description version %d, expected %d",
			db.Version, Version)
	}

	db.Family = d.str()
	db.Device = d.str()
	db.Rows = d.count()
	db.Cols = d.count()

	n := d.count()
	db.Strings = make([]string, 0, reserve(n))
	for i := 0; i < n && d.err == nil; i++ {
		db.Strings = append(db.Strings, d.str())
	}

	n = d.count()
	if d.err == nil && int64(n) != int64(db.Rows)*int64(db.Cols) {
		return nil, errors.Errorf("chip description has %d tiles, grid is %dx%d",
			n, db.Rows, db.Cols)
	}

	db.Grid = make([]Tile, 0, reserve(n))
	for i := 0; i < n && d.err == nil; i++ {
		var t Tile
		d.tile(&t)
		db.Grid = append(db.Grid, t)
	}

	n = d.count()
	db.Aliases = make([]GlobalAlias, 0, reserve(n))
	for i := 0; i < n && d.err == nil; i++ {
		var a GlobalAlias
		d.raw(&a)
		db.Aliases = append(db.Aliases, a)
	}

	if d.err != nil {
		return nil, errors.Wrap(d.err, "read chip description")
	}

	if err := db.Validate(); err != nil {
		return nil, err
	}

	return db, nil
}

// WriteFile writes the database to a file.
func WriteFile(path string, db *Database) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create chip description")
	}

	if err := Write(f, db); err != nil {
		f.Close()
		return err
	}

	return errors.Wrap(f.Close(), "close chip description")
}

// ReadFile reads a binary database from a file.
func ReadFile(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open chip description")
	}
	defer f.Close()

	db, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	return db, nil
}

type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) raw(v any) {
	if e.err != nil {
		return
	}

	e.err = binary.Write(e.w, binary.LittleEndian, v)
}

func (e *encoder) u32(v uint32) {
	e.raw(v)
}

func (e *encoder) str(s string) {
	e.u32(uint32(len(s)))
	if e.err != nil {
		return
	}

	_, e.err = io.WriteString(e.w, s)
}

func (e *encoder) pairs(ps []Pair) {
	e.u32(uint32(len(ps)))
	for _, p := range ps {
		e.raw(p)
	}
}

func (e *encoder) tile(t *Tile) {
	e.pairs(t.Pips)
	e.pairs(t.ClockPips)

	e.u32(uint32(len(t.Bels)))
	for _, b := range t.Bels {
		e.raw(b.Type)
		e.pairs(b.Ports)
	}

	e.pairs(t.Aliases)
}

type decoder struct {
	r   io.Reader
	err error
}

func (d *decoder) raw(v any) {
	if d.err != nil {
		return
	}

	d.err = binary.Read(d.r, binary.LittleEndian, v)
}

func (d *decoder) u32() uint32 {
	var v uint32
	d.raw(&v)

	return v
}

func (d *decoder) count() int {
	n := d.u32()
	if d.err == nil && n > maxCount {
		d.err = errors.Errorf("length %d out of range", n)
	}

	if d.err != nil {
		return 0
	}

	return int(n)
}

func (d *decoder) str() string {
	n := d.count()
	if d.err != nil {
		return ""
	}

	buf, err := io.ReadAll(io.LimitReader(d.r, int64(n)))
	switch {
	case err != nil:
		d.err = err
	case len(buf) < n:
		d.err = io.ErrUnexpectedEOF
	}

	return string(buf)
}

func (d *decoder) pairs() []Pair {
	n := d.count()
	if n == 0 {
		return nil
	}

	ps := make([]Pair, 0, reserve(n))
	for i := 0; i < n && d.err == nil; i++ {
		var p Pair
		d.raw(&p)
		ps = append(ps, p)
	}

	return ps
}

func (d *decoder) tile(t *Tile) {
	t.Pips = d.pairs()
	t.ClockPips = d.pairs()

	n := d.count()
	if n > 0 {
		t.Bels = make([]Bel, 0, reserve(n))
	}
	for i := 0; i < n && d.err == nil; i++ {
		var b Bel
		d.raw(&b.Type)
		b.Ports = d.pairs()
		t.Bels = append(t.Bels, b)
	}

	t.Aliases = d.pairs()
}
