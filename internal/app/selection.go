package app

// Selection is a row cursor into a list whose length changes between ticks.
// The zero value has no selection; the first non-empty list selects row 0.
type Selection struct {
	index int
	valid bool
}

// Index returns the selected row, or false when nothing is selected.
func (s Selection) Index() (int, bool) { return s.index, s.valid }

// Row returns the selected row or -1.
func (s Selection) Row() int {
	if !s.valid {
		return -1
	}
	return s.index
}

// Clamp keeps the cursor inside [0, n-1]; an empty list clears it.
func (s *Selection) Clamp(n int) {
	switch {
	case n <= 0:
		s.index, s.valid = 0, false
	case !s.valid:
		s.index, s.valid = 0, true
	case s.index >= n:
		s.index = n - 1
	}
}

// Next moves down one row, stopping at the last.
func (s *Selection) Next(n int) {
	s.Clamp(n)
	if s.valid && s.index < n-1 {
		s.index++
	}
}

// Prev moves up one row, stopping at the first.
func (s *Selection) Prev(n int) {
	s.Clamp(n)
	if s.valid && s.index > 0 {
		s.index--
	}
}
