package cluster

import "errors"

// ErrInvalidSpec reports a malformed Dom0/DomU/disk spec passed to
// NewCluster — a programmer error, never a runtime condition a caller
// should retry on.
var ErrInvalidSpec = errors.New("invalid cluster spec")

// Structural invariant violations for Configuration, per spec §3. Each is
// a sentinel so callers can distinguish them with errors.Is when deciding
// whether a move generator bug produced the candidate.
var (
	ErrUnknownDom0           = errors.New("cluster: referenced dom0 does not exist")
	ErrUnknownDomU           = errors.New("cluster: referenced domU does not exist")
	ErrUnknownDisk           = errors.New("cluster: referenced dom0 disk does not exist")
	ErrPrimaryEqualsSecondary = errors.New("cluster: primary and secondary dom0 are the same host")
	ErrExtentMismatch        = errors.New("cluster: physical volume extents do not sum to disk total extents")
	ErrSamePVHost            = errors.New("cluster: primary and secondary physical volumes share a dom0")
	ErrMissingPrimary        = errors.New("cluster: domU has no primary placement")
)
