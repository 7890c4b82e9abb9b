package session

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"ramen/internal/ast"
)

// Snapshot is a deterministic dump of the side tables. Node ids are
// process-global, so they are renumbered by creation order: the smallest id
// that appears anywhere becomes 1.
type Snapshot struct {
	Refs    []RefEntry    `msgpack:"refs"`
	Defs    []DefEntry    `msgpack:"defs"`
	Types   []TypeEntry   `msgpack:"types"`
	Symbols []SymbolEntry `msgpack:"symbols"`
	Errors  int           `msgpack:"errors"`
}

type RefEntry struct {
	Use uint64 `msgpack:"use"`
	Def uint64 `msgpack:"def"`
}

type DefEntry struct {
	Def  uint64 `msgpack:"def"`
	Kind string `msgpack:"kind"`
}

type TypeEntry struct {
	Node uint64 `msgpack:"node"`
	Type string `msgpack:"type"`
}

type SymbolEntry struct {
	Def  uint64 `msgpack:"def"`
	Name string `msgpack:"name"`
}

// Snapshot captures the current state of the side tables.
func (s *Session) Snapshot() Snapshot {
	var ids []ast.NodeID
	for use, def := range s.refs {
		ids = append(ids, use, def)
	}
	for def := range s.defs {
		ids = append(ids, def)
	}
	for id := range s.types {
		ids = append(ids, id)
	}
	for def := range s.symbols {
		ids = append(ids, def)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)
	ord := make(map[ast.NodeID]uint64, len(ids))
	for i, id := range ids {
		ord[id] = uint64(i) + 1
	}

	snap := Snapshot{Errors: s.errors}
	for use, def := range s.refs {
		snap.Refs = append(snap.Refs, RefEntry{Use: ord[use], Def: ord[def]})
	}
	for def, kind := range s.defs {
		snap.Defs = append(snap.Defs, DefEntry{Def: ord[def], Kind: kind.String()})
	}
	for id, t := range s.types {
		snap.Types = append(snap.Types, TypeEntry{Node: ord[id], Type: s.Types.Format(t)})
	}
	for def, name := range s.symbols {
		snap.Symbols = append(snap.Symbols, SymbolEntry{Def: ord[def], Name: name})
	}
	slices.SortFunc(snap.Refs, func(a, b RefEntry) int { return cmp.Compare(a.Use, b.Use) })
	slices.SortFunc(snap.Defs, func(a, b DefEntry) int { return cmp.Compare(a.Def, b.Def) })
	slices.SortFunc(snap.Types, func(a, b TypeEntry) int { return cmp.Compare(a.Node, b.Node) })
	slices.SortFunc(snap.Symbols, func(a, b SymbolEntry) int { return cmp.Compare(a.Def, b.Def) })
	return snap
}

// String renders the snapshot one entry per line.
func (snap Snapshot) String() string {
	var b strings.Builder
	for _, r := range snap.Refs {
		fmt.Fprintf(&b, "ref #%d -> #%d\n", r.Use, r.Def)
	}
	for _, d := range snap.Defs {
		fmt.Fprintf(&b, "def #%d %s\n", d.Def, d.Kind)
	}
	for _, t := range snap.Types {
		fmt.Fprintf(&b, "type #%d %s\n", t.Node, t.Type)
	}
	for _, sym := range snap.Symbols {
		fmt.Fprintf(&b, "symbol #%d %s\n", sym.Def, sym.Name)
	}
	fmt.Fprintf(&b, "errors %d\n", snap.Errors)
	return b.String()
}

// EncodeSnapshot serializes snap with msgpack.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(&snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
