// Package symbol binds names to small integer identifiers.
package symbol

import "fmt"

// Symbol is an interned name. Two Symbols from the same Interner are equal
// if and only if their names are equal.
type Symbol int32

// Empty is the Symbol of the empty name. It is registered by every Interner
// and doubles as the "no name" value.
const Empty Symbol = 0

// Interner binds names with Symbols. Symbols are distributed in order and
// stay valid for the lifetime of the Interner.
type Interner struct {
	// nameToID maps a name to its Symbol
	nameToID map[string]Symbol
	// idToName maps a Symbol back to its name
	idToName []string
}

// NewInterner creates an Interner that only knows the empty name.
func NewInterner() *Interner {
	in := &Interner{
		nameToID: make(map[string]Symbol),
	}
	in.Intern("")

	return in
}

// Intern returns the Symbol of the name, registering the name if it has not
// been seen before.
func (in *Interner) Intern(name string) Symbol {
	if s, ok := in.nameToID[name]; ok {
		return s
	}

	s := Symbol(len(in.idToName))
	in.nameToID[name] = s
	in.idToName = append(in.idToName, name)

	return s
}

// Internf formats the name and interns it.
func (in *Interner) Internf(format string, args ...any) Symbol {
	return in.Intern(fmt.Sprintf(format, args...))
}

// InternAll interns every name and returns the Symbols in the same order.
func (in *Interner) InternAll(names ...string) []Symbol {
	syms := make([]Symbol, len(names))
	for i, n := range names {
		syms[i] = in.Intern(n)
	}

	return syms
}

// Lookup returns the Symbol of a name without registering it.
func (in *Interner) Lookup(name string) (Symbol, bool) {
	s, ok := in.nameToID[name]
	return s, ok
}

// Str returns the name of a Symbol. It panics if the Symbol was not
// distributed by this Interner.
func (in *Interner) Str(s Symbol) string {
	if s < 0 || int(s) >= len(in.idToName) {
		panic(fmt.Sprintf("symbol %d is not interned", s))
	}

	return in.idToName[s]
}

// Len returns the number of interned names, including the empty name.
func (in *Interner) Len() int {
	return len(in.idToName)
}
