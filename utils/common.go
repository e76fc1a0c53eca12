package utils

const (
	// NODETOL is the geometric tolerance used when matching node coordinates
	// against boundary location predicates.
	NODETOL = 1.e-12
)
