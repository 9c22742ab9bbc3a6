package tradesim

import "errors"

// Sentinel errors classifying every expected trade failure. The Engine wraps
// them with context (ticker, amounts) so callers can both render a one-line
// message and pattern-match the kind with errors.Is.

// Input errors: caller mistakes, always recoverable, no state change.
var (
	ErrInvalidTicker   = errors.New("invalid ticker")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidPrice    = errors.New("invalid price")
)

// Domain errors: expected business-rule rejections, no state change.
var (
	ErrMarketClosed         = errors.New("market closed")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
)

// Integration errors: external dependency failures, no state change. A caller
// can distinguish "can't trade" from "can't price".
var ErrPriceFetchFailed = errors.New("price fetch failed")
