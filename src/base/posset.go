package base

import "strings"

// PositionSet is an unordered set of positions backed by a bit mask.
type PositionSet uint8

func SetOf(ps ...Position) PositionSet {
	var s PositionSet
	for _, p := range ps {
		s = s.Add(p)
	}
	return s
}

func (s PositionSet) Add(p Position) PositionSet {
	if !p.IsValid() {
		return s
	}
	return s | 1<<p
}

func (s PositionSet) Remove(p Position) PositionSet {
	if !p.IsValid() {
		return s
	}
	return s &^ (1 << p)
}

func (s PositionSet) Has(p Position) bool {
	return p.IsValid() && s&(1<<p) != 0
}

func (s PositionSet) Empty() bool {
	return s == 0
}

func (s PositionSet) Len() int {
	n := 0
	for v := s; v != 0; v &= v - 1 {
		n++
	}
	return n
}

// Slice returns members in canonical order.
func (s PositionSet) Slice() []Position {
	out := make([]Position, 0, s.Len())
	for i := 0; i < PositionCount; i++ {
		if s&(1<<i) != 0 {
			out = append(out, Position(i))
		}
	}
	return out
}

func (s PositionSet) String() string {
	labels := make([]string, 0, s.Len())
	for _, p := range s.Slice() {
		labels = append(labels, p.String())
	}
	return "{" + strings.Join(labels, ",") + "}"
}
