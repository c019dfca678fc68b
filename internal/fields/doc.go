// Package fields holds the grammar checks for every token of a record stream
// other than tax identifiers: payment keys (email, phone, quick key),
// transaction dates, clock times, currency amounts and security codes.
//
// All validators are pure predicates over a single token. They never panic,
// whatever the input.
package fields
