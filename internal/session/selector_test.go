package session

import (
	"errors"
	"testing"
)

func TestSelectNextItem(t *testing.T) {
	tests := []struct {
		name      string
		itemCount int
		mastered  map[int]bool
		current   int
		want      int
		wantErr   error
	}{
		{"next in window", 5, nil, 2, 3, nil},
		{"wraps to window start", 5, nil, 4, 0, nil},
		{"before first item", 5, nil, -1, 0, nil},
		{"skips mastered", 5, map[int]bool{3: true}, 2, 4, nil},
		{"window limited to five", 8, nil, 4, 0, nil},
		{"window slides past mastered", 8, map[int]bool{0: true, 1: true}, 5, 6, nil},
		{"current outside window", 8, nil, 6, 0, nil},
		{"single remaining item", 3, map[int]bool{0: true, 2: true}, 1, 1, nil},
		{"all mastered", 3, map[int]bool{0: true, 1: true, 2: true}, 0, 0, ErrNoItemsRemaining},
		{"empty deck", 0, nil, 0, 0, ErrNoItemsRemaining},
		{"negative count", -1, nil, 0, 0, ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectNextItem(tt.itemCount, tt.mastered, tt.current)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SelectNextItem() err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("SelectNextItem(%d, %v, %d) = %d, want %d", tt.itemCount, tt.mastered, tt.current, got, tt.want)
			}
		})
	}
}
