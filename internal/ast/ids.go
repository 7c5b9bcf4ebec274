package ast

// NodeID indexes a Node inside its Tree's arena. IDs are 1-based and handed
// out in construction order; NoNodeID means "no node" (e.g. the root's parent).
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }
