package search

import "errors"

var (
	errInvalidMinLevel = errors.New("search: MinLevel out of range")
	errNegativeNodeCap = errors.New("search: NodeCap must be >= 0")
)
