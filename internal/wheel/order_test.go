package wheel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackToFront(t *testing.T) {
	tests := []struct {
		name  string
		ranks []int
		want  []int
	}{
		{"empty", nil, []int{}},
		{"single", []int{3}, []int{0}},
		{"distinct descending", []int{7, 6, 5, 4, 3, 2, 1}, []int{6, 5, 4, 3, 2, 1, 0}},
		{"distinct mixed", []int{2, 5, 1}, []int{2, 0, 1}},
		{"equal ranks keep configured order", []int{1, 1, 1}, []int{0, 1, 2}},
		{"equal ranks among distinct", []int{2, 1, 2, 1}, []int{1, 3, 0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs := make([]LayerSpec, len(tt.ranks))
			for i, r := range tt.ranks {
				specs[i] = LayerSpec{Name: string(rune('a' + i)), Rank: r}
			}
			assert.Equal(t, tt.want, BackToFront(specs))
		})
	}
}

// Where every layer covers the center, the click must land on the layer that
// is painted last.
func TestHitTest_MatchesPaintOrder(t *testing.T) {
	tests := []struct {
		name  string
		specs []LayerSpec
	}{
		{"distinct ranks", []LayerSpec{
			{Name: "low", Rank: 1, Size: 300},
			{Name: "high", Rank: 3, Size: 100},
			{Name: "mid", Rank: 2, Size: 200},
		}},
		{"equal ranks", []LayerSpec{
			{Name: "first", Rank: 4, Size: 100},
			{Name: "second", Rank: 4, Size: 200},
			{Name: "under", Rank: 1, Size: 300},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.specs, Options{})
			order := BackToFront(tt.specs)
			front := tt.specs[order[len(order)-1]].Name
			assert.Equal(t, front, f.c.HitTest(200, 200))
		})
	}
}
