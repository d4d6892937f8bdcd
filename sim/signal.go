package sim

// Assign drives a scalar signal. It returns true if the driven value differs
// from what was on the wire before.
func Assign[T comparable](wire *T, value T) bool {
	if *wire == value {
		return false
	}

	*wire = value

	return true
}

// AssignBytes drives a multi-byte signal. Both slices must have the same
// length. It returns true if any byte changed.
func AssignBytes(wire []byte, value []byte) bool {
	changed := false

	for i := range wire {
		if wire[i] != value[i] {
			wire[i] = value[i]
			changed = true
		}
	}

	return changed
}

// AssignBools drives a bit-vector signal, such as a byte-select mask. Both
// slices must have the same length. It returns true if any bit changed.
func AssignBools(wire []bool, value []bool) bool {
	changed := false

	for i := range wire {
		if wire[i] != value[i] {
			wire[i] = value[i]
			changed = true
		}
	}

	return changed
}

// FillBools drives every bit of a bit-vector signal to the same value.
func FillBools(wire []bool, value bool) bool {
	changed := false

	for i := range wire {
		if wire[i] != value {
			wire[i] = value
			changed = true
		}
	}

	return changed
}

// FillBytes drives every byte of a multi-byte signal to the same value.
func FillBytes(wire []byte, value byte) bool {
	changed := false

	for i := range wire {
		if wire[i] != value {
			wire[i] = value
			changed = true
		}
	}

	return changed
}
