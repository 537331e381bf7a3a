package dupescan

import (
	zcsl "github.com/mattkeenan/zerocopyskiplist"
)

// bucket holds every value inserted under one key
type bucket[H HashValue[H], V any] struct {
	key    H
	values []V
}

// Bag is an ordered multimap from hash values to the entries that produced
// them. Buckets iterate in key order, which keeps output deterministic for
// identical inputs and algorithm. A Bag is not safe for concurrent writes;
// the scan pipeline funnels all inserts through a single collector.
type Bag[H HashValue[H], V any] struct {
	skiplist *zcsl.ZeroCopySkiplist[bucket[H, V], H, string]
	context  string
	count    int
}

// NewBag creates an empty bag. The context tags every bucket with the pass
// that created it (PartialContext or FullContext).
func NewBag[H HashValue[H], V any](context string) *Bag[H, V] {
	getKeyFromItem := func(b *bucket[H, V]) H {
		return b.key
	}

	// Size function is only used by the skiplist's serialisation helpers
	getItemSize := func(b *bucket[H, V]) int {
		return len(b.values)
	}

	cmpKey := func(a, b H) int {
		return a.Compare(b)
	}

	return &Bag[H, V]{
		skiplist: zcsl.MakeZeroCopySkiplist[bucket[H, V], H, string](
			skiplistLevels,
			getKeyFromItem,
			getItemSize,
			cmpKey,
		),
		context: context,
	}
}

// Insert appends value to the bucket for key, creating the bucket if absent
func (b *Bag[H, V]) Insert(key H, value V) {
	b.count++
	if node, _ := b.skiplist.Find(key); node != nil {
		existing := node.Item()
		existing.values = append(existing.values, value)
		return
	}
	b.skiplist.Insert(&bucket[H, V]{key: key, values: []V{value}}, b.context)
}

// Get returns the bucket for key, or nil when the key is absent
func (b *Bag[H, V]) Get(key H) []V {
	if node, _ := b.skiplist.Find(key); node != nil {
		return node.Item().values
	}
	return nil
}

// Len returns the number of buckets
func (b *Bag[H, V]) Len() int {
	return b.skiplist.Length()
}

// Count returns the number of values across all buckets
func (b *Bag[H, V]) Count() int {
	return b.count
}

// Context returns the pass that produced this bag
func (b *Bag[H, V]) Context() string {
	return b.context
}

// Buckets calls fn for every bucket in key order until fn returns false.
// The values slice must not be modified.
func (b *Bag[H, V]) Buckets(fn func(key H, values []V) bool) {
	for current := b.skiplist.First(); current != nil; current = current.Next() {
		item := current.Item()
		if !fn(item.key, item.values) {
			return
		}
	}
}

// Keys returns all bucket keys in order
func (b *Bag[H, V]) Keys() []H {
	keys := make([]H, 0, b.Len())
	b.Buckets(func(key H, _ []V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Replicates returns a lazy view over the buckets whose size satisfies factor
func (b *Bag[H, V]) Replicates(factor Factor) Replicates[H, V] {
	return Replicates[H, V]{bag: b, factor: factor}
}

// Duplicates is Replicates(Over(1)): buckets with at least two members
func (b *Bag[H, V]) Duplicates() Replicates[H, V] {
	return b.Replicates(Over(1))
}

// BagFromPairs builds a bag from key/value pairs, mostly useful in tests
func BagFromPairs[H HashValue[H], V any](context string, keys []H, values []V) *Bag[H, V] {
	bag := NewBag[H, V](context)
	for i := range keys {
		bag.Insert(keys[i], values[i])
	}
	return bag
}
