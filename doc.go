// Package tradesim implements a single-account trading simulator: a cash and
// holdings ledger, a transaction engine that executes buy/sell orders at
// prices fetched from a market data provider, append-only audit and history
// stores, and average-cost profit/loss analytics replayed from the history.
//
// The ledger is mutated exclusively by the Engine. Every completed trade
// produces an immutable Transaction record, one audit Snapshot row, and one
// history entry; analytics and reporting read those stores independently.
package tradesim
