package discovery

import (
	"math"
	"testing"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	tests := []struct {
		name          string
		limit, offset uint32
		want          []int
	}{
		{"first page", 2, 0, []int{1, 2}},
		{"middle page", 2, 2, []int{3, 4}},
		{"partial last page", 2, 4, []int{5}},
		{"offset at end", 2, 5, []int{}},
		{"offset past end", 2, 50, []int{}},
		{"zero limit", 0, 0, []int{}},
		{"no overflow", math.MaxUint32, math.MaxUint32 - 1, []int{}},
		{"huge limit", math.MaxUint32, 1, []int{2, 3, 4, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paginate(items, tt.limit, tt.offset)
			if got == nil {
				t.Fatal("paginate returned nil")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}
