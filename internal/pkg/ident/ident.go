// Package ident mints the external identifiers used across the platform:
// BK-prefixed booking refs, TX-prefixed transaction refs and US-prefixed
// user refs, each a prefix followed by a 10-digit numeric suffix.
//
// The suffix is drawn from a monotonic counter seeded from the clock, so
// values are unique within a process even under concurrent minting. The
// suffix wraps at 10 digits to keep the wire format stable.
package ident

import (
	"fmt"
	"sync/atomic"
	"time"
)

type Kind string

const (
	KindBooking     Kind = "booking"
	KindTransaction Kind = "transaction"
	KindUser        Kind = "user"
)

const suffixMod = 10_000_000_000

var prefixes = map[Kind]string{
	KindBooking:     "BK",
	KindTransaction: "TX",
	KindUser:        "US",
}

var counter atomic.Int64

func init() {
	// Seed from epoch ms so restarts do not replay recent suffixes.
	counter.Store(time.Now().UnixMilli() % suffixMod)
}

// New returns the next identifier for the given kind, e.g. BK1756612345001.
func New(kind Kind) string {
	prefix, ok := prefixes[kind]
	if !ok {
		prefix = "ID"
	}
	n := counter.Add(1) % suffixMod
	return fmt.Sprintf("%s%010d", prefix, n)
}

// Prefix returns the fixed prefix for a kind.
func Prefix(kind Kind) string {
	return prefixes[kind]
}
