// Package carousel implements the looping, auto-advancing page index state
// machine behind the carousel widgets. It has no rendering dependencies.
package carousel

// Wrap returns the augmented sequence used for paging: the last item
// prepended and the first item appended. Empty input is returned unchanged
// with loopEligible false.
//
// The result never shares a backing array with items.
func Wrap[T any](items []T) (augmented []T, loopEligible bool) {
	if len(items) == 0 {
		return items, false
	}

	augmented = make([]T, 0, len(items)+2)
	augmented = append(augmented, items[len(items)-1])
	augmented = append(augmented, items...)
	augmented = append(augmented, items[0])
	return augmented, true
}

// startIndex is the index of the first real item.
func startIndex(loopEligible bool) int {
	if loopEligible {
		return 1
	}
	return 0
}

// realIndex maps an augmented index back to the caller's items.
// Returns -1 when there is no corresponding item.
func realIndex(index, length int, loopEligible bool) int {
	if index < 0 || index >= length {
		return -1
	}
	if !loopEligible {
		return index
	}

	n := length - 2
	switch index {
	case 0:
		return n - 1
	case length - 1:
		return 0
	default:
		return index - 1
	}
}
