package dom

import "testing"

func TestCompareTreeOrder(t *testing.T) {
	first := NewElement("div", 1)
	second := NewElement("span", 2)
	tests := []struct {
		name string
		a, b *Element
		want int
	}{
		{"before", first, second, -1},
		{"after", second, first, 1},
		{"same", first, first, 0},
		{"nil first", nil, first, -1},
		{"nil second", first, nil, 1},
		{"both nil", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareTreeOrder(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareTreeOrder = %d, want %d", got, tt.want)
			}
		})
	}
}
