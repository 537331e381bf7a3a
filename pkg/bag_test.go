package dupescan

import (
	"reflect"
	"testing"
)

func newCounter() *Bag[Hash64, string] {
	return BagFromPairs[Hash64, string](FullContext,
		[]Hash64{77, 77, 1, 3, 3},
		[]string{"hello", "world", "ignored", "foo", "bar"},
	)
}

func TestBagInsertAndGet(t *testing.T) {
	bag := newCounter()

	if bag.Len() != 3 {
		t.Errorf("Expected 3 buckets, got %d", bag.Len())
	}
	if bag.Count() != 5 {
		t.Errorf("Expected 5 values, got %d", bag.Count())
	}
	if bag.Context() != FullContext {
		t.Errorf("Expected context %q, got %q", FullContext, bag.Context())
	}

	if got := bag.Get(77); !reflect.DeepEqual(got, []string{"hello", "world"}) {
		t.Errorf("Expected bucket 77 to be [hello world], got %v", got)
	}
	if got := bag.Get(42); got != nil {
		t.Errorf("Expected missing key to return nil, got %v", got)
	}
}

func TestBagKeyOrder(t *testing.T) {
	bag := newCounter()

	keys := bag.Keys()
	expected := []Hash64{1, 3, 77}
	if !reflect.DeepEqual(keys, expected) {
		t.Errorf("Expected keys %v, got %v", expected, keys)
	}
}

func TestBagBucketsStopsEarly(t *testing.T) {
	bag := newCounter()

	visited := 0
	bag.Buckets(func(key Hash64, values []string) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("Expected iteration to stop after 1 bucket, visited %d", visited)
	}
}

func TestBagDuplicates(t *testing.T) {
	bag := newCounter()

	groups := bag.Duplicates().Groups()
	expected := [][]string{{"foo", "bar"}, {"hello", "world"}}
	if !reflect.DeepEqual(groups, expected) {
		t.Errorf("Expected duplicate groups %v, got %v", expected, groups)
	}
}

func TestBagEmpty(t *testing.T) {
	bag := NewBag[Hash128, string](PartialContext)

	if bag.Len() != 0 || bag.Count() != 0 {
		t.Errorf("Expected empty bag, got %d buckets and %d values", bag.Len(), bag.Count())
	}
	if groups := bag.Duplicates().Groups(); len(groups) != 0 {
		t.Errorf("Expected no groups, got %v", groups)
	}
}

func TestBagWideKeys(t *testing.T) {
	low := Hash256{0x01}
	high := Hash256{0xff}
	bag := BagFromPairs[Hash256, int](FullContext,
		[]Hash256{high, low, high},
		[]int{1, 2, 3},
	)

	keys := bag.Keys()
	if len(keys) != 2 || keys[0] != low || keys[1] != high {
		t.Errorf("Expected keys ordered [low high], got %v", keys)
	}
	if got := bag.Get(high); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("Expected bucket [1 3], got %v", got)
	}
}
