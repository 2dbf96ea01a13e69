package common

// Cid is an opaque content-addressed reference. It names a vote topic or a
// voter's justification; the engine only stores and compares it, it never
// dereferences the content.
type Cid string

func (c Cid) Empty() bool {
	return len(c) == 0
}
