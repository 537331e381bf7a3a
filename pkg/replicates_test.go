package dupescan

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseFactor(t *testing.T) {
	testCases := []struct {
		input    string
		expected Factor
		valid    bool
	}{
		{"over:1", Over(1), true},
		{"equal:1", Equal(1), true},
		{"under:10", Under(10), true},
		{"OVER:2", Over(2), true},
		{" equal : 3 ", Equal(3), true},
		{"over", Factor{}, false},
		{"over:", Factor{}, false},
		{"over:-1", Factor{}, false},
		{"between:2", Factor{}, false},
		{"", Factor{}, false},
	}

	for _, tc := range testCases {
		factor, err := ParseFactor(tc.input)
		if tc.valid {
			if err != nil {
				t.Errorf("Expected %q to parse, got error: %v", tc.input, err)
				continue
			}
			if factor != tc.expected {
				t.Errorf("Expected %q to parse as %v, got %v", tc.input, tc.expected, factor)
			}
		} else {
			if err == nil {
				t.Errorf("Expected %q to fail, got %v", tc.input, factor)
			} else if !errors.Is(err, ErrInvalidFactor) {
				t.Errorf("Expected ErrInvalidFactor for %q, got %v", tc.input, err)
			}
		}
	}
}

func TestFactorString(t *testing.T) {
	for _, factor := range []Factor{Under(10), Equal(1), Over(1)} {
		parsed, err := ParseFactor(factor.String())
		if err != nil {
			t.Fatalf("Failed to parse %s: %v", factor, err)
		}
		if parsed != factor {
			t.Errorf("Expected %v, got %v", factor, parsed)
		}
	}
	if DefaultFactor.String() != "over:1" {
		t.Errorf("Expected default factor over:1, got %s", DefaultFactor)
	}
}

func TestFactorPass(t *testing.T) {
	testCases := []struct {
		factor Factor
		size   int
		pass   bool
	}{
		{Over(1), 1, false},
		{Over(1), 2, true},
		{Equal(1), 1, true},
		{Equal(1), 2, false},
		{Under(3), 2, true},
		{Under(3), 3, false},
	}

	for _, tc := range testCases {
		if got := tc.factor.Pass(tc.size); got != tc.pass {
			t.Errorf("%s.Pass(%d): expected %v, got %v", tc.factor, tc.size, tc.pass, got)
		}
	}
}

func TestReplicatesViews(t *testing.T) {
	bag := newCounter()

	uniques := bag.Replicates(Equal(1))
	if uniques.Factor() != Equal(1) {
		t.Errorf("Expected factor equal:1, got %s", uniques.Factor())
	}
	if got := uniques.Groups(); !reflect.DeepEqual(got, [][]string{{"ignored"}}) {
		t.Errorf("Expected uniques [[ignored]], got %v", got)
	}

	if got := bag.Replicates(Under(2)).Len(); got != 1 {
		t.Errorf("Expected 1 bucket under 2, got %d", got)
	}
	if got := bag.Replicates(Over(2)).Len(); got != 0 {
		t.Errorf("Expected no bucket over 2, got %d", got)
	}
}

func TestReplicatesPartition(t *testing.T) {
	bag := BagFromPairs[Hash64, int](FullContext,
		[]Hash64{5, 5, 5, 9, 2, 2, 8},
		[]int{1, 2, 3, 4, 5, 6, 7},
	)

	seen := make(map[Hash64]int)
	for _, factor := range []Factor{Equal(1), Over(1)} {
		bag.Replicates(factor).Each(func(key Hash64, values []int) bool {
			seen[key]++
			return true
		})
	}

	if len(seen) != bag.Len() {
		t.Errorf("Expected every one of %d buckets to be selected, got %d", bag.Len(), len(seen))
	}
	for key, count := range seen {
		if count != 1 {
			t.Errorf("Expected bucket %s to be selected once, got %d", key, count)
		}
	}
}
