package dupescan

import (
	"fmt"
	"strconv"
	"strings"
)

// FactorKind selects how a bucket's size is compared against Factor.N
type FactorKind int

const (
	FactorUnder FactorKind = iota // fewer than N members
	FactorEqual                   // exactly N members
	FactorOver                    // more than N members
)

// Factor is a replication factor predicate on bucket cardinality
type Factor struct {
	Kind FactorKind
	N    int
}

// Under selects buckets with fewer than n members
func Under(n int) Factor { return Factor{Kind: FactorUnder, N: n} }

// Equal selects buckets with exactly n members
func Equal(n int) Factor { return Factor{Kind: FactorEqual, N: n} }

// Over selects buckets with more than n members
func Over(n int) Factor { return Factor{Kind: FactorOver, N: n} }

// DefaultFactor selects files that have at least one duplicate
var DefaultFactor = Over(1)

// Pass reports whether a bucket of the given size satisfies the factor
func (f Factor) Pass(size int) bool {
	switch f.Kind {
	case FactorUnder:
		return size < f.N
	case FactorEqual:
		return size == f.N
	default:
		return size > f.N
	}
}

// String returns the "kind:n" form accepted by ParseFactor
func (f Factor) String() string {
	var kind string
	switch f.Kind {
	case FactorUnder:
		kind = "under"
	case FactorEqual:
		kind = "equal"
	default:
		kind = "over"
	}
	return kind + ":" + strconv.Itoa(f.N)
}

// ParseFactor parses "under:n", "equal:n" or "over:n" (case-insensitive)
func ParseFactor(s string) (Factor, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return Factor{}, fmt.Errorf("%w '%s', expected [under|equal|over]:n", ErrInvalidFactor, s)
	}

	n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || n < 0 {
		return Factor{}, fmt.Errorf("%w '%s': count must be a non-negative integer", ErrInvalidFactor, s)
	}

	switch strings.ToLower(strings.TrimSpace(parts[0])) {
	case "under":
		return Under(n), nil
	case "equal":
		return Equal(n), nil
	case "over":
		return Over(n), nil
	default:
		return Factor{}, fmt.Errorf("%w '%s': unknown kind '%s'", ErrInvalidFactor, s, parts[0])
	}
}

// Replicates is a read-only view of the buckets of a Bag that satisfy a
// Factor. It never copies entries.
type Replicates[H HashValue[H], V any] struct {
	bag    *Bag[H, V]
	factor Factor
}

// Factor returns the predicate of this view
func (r Replicates[H, V]) Factor() Factor {
	return r.factor
}

// Each calls fn for every matching bucket in key order until fn returns false
func (r Replicates[H, V]) Each(fn func(key H, values []V) bool) {
	r.bag.Buckets(func(key H, values []V) bool {
		if !r.factor.Pass(len(values)) {
			return true
		}
		return fn(key, values)
	})
}

// Groups collects the matching buckets in key order
func (r Replicates[H, V]) Groups() [][]V {
	var groups [][]V
	r.Each(func(_ H, values []V) bool {
		groups = append(groups, values)
		return true
	})
	return groups
}

// Len counts the matching buckets
func (r Replicates[H, V]) Len() int {
	n := 0
	r.Each(func(_ H, _ []V) bool {
		n++
		return true
	})
	return n
}
