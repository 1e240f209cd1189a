package chainarena

import "chainarena/internal/errs"

// Sentinel errors re-exported from internal/errs so callers can use
// errors.Is(err, chainarena.ErrChainMismatch) without importing an
// internal package.
var (
	ErrOutOfChain     = errs.ErrOutOfChain
	ErrCrossSegment   = errs.ErrCrossSegment
	ErrChainMismatch  = errs.ErrChainMismatch
	ErrNullDeref      = errs.ErrNullDeref
	ErrPrefixMismatch = errs.ErrPrefixMismatch
	ErrUnimplemented  = errs.ErrUnimplemented
	ErrRootShape      = errs.ErrRootShape
	ErrNoSpace        = errs.ErrNoSpace
	ErrClosed         = errs.ErrClosed
	ErrHasPointers    = errs.ErrHasPointers
)
