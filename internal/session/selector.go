package session

import "fmt"

// WindowSize is the number of unmastered items interleaved at a time.
const WindowSize = 5

// SelectNextItem picks the index of the next item to present.
//
// Mastered indices are dropped and the first WindowSize remaining items
// (by index) form the active window. The smallest window index greater
// than current is returned, wrapping to the start of the window. When
// every item is mastered the error is ErrNoItemsRemaining.
func SelectNextItem(itemCount int, mastered map[int]bool, current int) (int, error) {
	if itemCount < 0 {
		return 0, fmt.Errorf("%w: item count %d", ErrInvalidArgument, itemCount)
	}

	window := make([]int, 0, WindowSize)
	for i := 0; i < itemCount && len(window) < WindowSize; i++ {
		if !mastered[i] {
			window = append(window, i)
		}
	}
	if len(window) == 0 {
		return 0, ErrNoItemsRemaining
	}

	for _, idx := range window {
		if idx > current {
			return idx, nil
		}
	}
	return window[0], nil
}
