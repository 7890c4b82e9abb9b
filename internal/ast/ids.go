package ast

import (
	"fmt"
	"sync/atomic"
)

// NodeID is the identity of a syntax node and, when minted by the session,
// of a definition. It is the join key between the tree and every table
// derived from it.
type NodeID uint64

// NoNodeID is never minted.
const NoNodeID NodeID = 0

var lastNodeID atomic.Uint64

// NextNodeID mints a fresh identity. IDs are unique within the process and
// ordered by creation.
func NextNodeID() NodeID {
	return NodeID(lastNodeID.Add(1))
}

func (id NodeID) IsValid() bool { return id != NoNodeID }

func (id NodeID) String() string {
	return fmt.Sprintf("ID:%d", uint64(id))
}
