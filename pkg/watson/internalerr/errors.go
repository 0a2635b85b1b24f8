// Package internalerr holds the sentinel errors shared across watson packages
// and re-exports the github.com/cockroachdb/errors helpers used to wrap them.
//
// Callers test for a category with Is:
//
//	if internalerr.Is(err, internalerr.ErrInvalidVocabulary) {
//	    // reject the authored content
//	}
package internalerr

import (
	crdb "github.com/cockroachdb/errors"
)

// Sentinel errors for common cases
var (
	ErrNotFound         = crdb.New("not found")
	ErrInvalidInput     = crdb.New("invalid input")
	ErrDuplicate        = crdb.New("duplicate entry")
	ErrStoreUnavailable = crdb.New("store unavailable")
	ErrInvalidConfig    = crdb.New("invalid configuration")
)

// Domain errors raised while constructing or consulting the knowledge base.
var (
	// ErrInvalidVocabulary marks an entity or relation id outside the vocabulary.
	ErrInvalidVocabulary = crdb.New("invalid vocabulary reference")
	// ErrIncompatibleSubgraph marks a character view asserting more than the main graph.
	ErrIncompatibleSubgraph = crdb.New("incompatible subgraph")
	ErrUnknownCharacter     = crdb.New("unknown character")
	ErrNoParse              = crdb.New("no parse")
)

var (
	New         = crdb.New
	Newf        = crdb.Newf
	Wrap        = crdb.Wrap
	Wrapf       = crdb.Wrapf
	Is          = crdb.Is
	As          = crdb.As
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	GetAllHints = crdb.GetAllHints
)
