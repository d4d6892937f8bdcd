package cache

// A line holds one cache line worth of state. The data block is as wide as
// the slave-facing bus.
type line struct {
	Tag       uint64
	IsValid   bool
	IsDirty   bool
	Data      []byte
	DirtyMask []bool
}

// A set is the group of ways that a line address can be stored in. The LRU
// queue lists way indices from least to most recently used.
type set struct {
	Lines    []*line
	LRUQueue []int
}

func (s *set) touch(way int) {
	for i, w := range s.LRUQueue {
		if w == way {
			s.LRUQueue = append(s.LRUQueue[:i], s.LRUQueue[i+1:]...)
			break
		}
	}

	s.LRUQueue = append(s.LRUQueue, way)
}

func (s *set) victim() int {
	for _, w := range s.LRUQueue {
		if !s.Lines[w].IsValid {
			return w
		}
	}

	return s.LRUQueue[0]
}

// splitLineID breaks a line address into set index and tag. With the reverse
// option the index bits come from the high end of the address instead of the
// low end, which changes the spatial-locality behavior but not correctness.
func (c *Comp) splitLineID(lineID uint64) (setID int, tag uint64) {
	if c.reverse {
		shift := uint(c.lineIDBits - c.setBits)
		setID = int(lineID >> shift)
		tag = lineID & ((1 << shift) - 1)

		return setID, tag
	}

	setID = int(lineID & uint64(c.numSets-1))
	tag = lineID >> uint(c.setBits)

	return setID, tag
}

// joinLineID is the inverse of splitLineID, used to rebuild the address of a
// victim line for its writeback.
func (c *Comp) joinLineID(setID int, tag uint64) uint64 {
	if c.reverse {
		shift := uint(c.lineIDBits - c.setBits)

		return uint64(setID)<<shift | tag
	}

	return tag<<uint(c.setBits) | uint64(setID)
}

func (c *Comp) lookup(lineID uint64) (*line, int, int) {
	setID, tag := c.splitLineID(lineID)
	s := c.sets[setID]

	for way, l := range s.Lines {
		if l.IsValid && l.Tag == tag {
			return l, setID, way
		}
	}

	return nil, setID, -1
}
