package emu

// reservationRange is a half-open [Begin, End) address interval reserved
// by a load-reserved instruction.
type reservationRange struct {
	Begin uint64
	End   uint64
}

func (r reservationRange) overlaps(o reservationRange) bool {
	return r.Begin < o.End && o.Begin < r.End
}

func (r reservationRange) contains(o reservationRange) bool {
	return o.Begin >= r.Begin && o.End <= r.End
}

// ReservationSet tracks the address ranges reserved by LR instructions
// for the matching SC to observe. A new reservation supersedes any
// existing one that overlaps it, matching single-hart LR/SC semantics
// where only the most recent reservation can ever be valid.
type ReservationSet struct {
	ranges []reservationRange
}

// NewReservationSet returns an empty reservation set.
func NewReservationSet() *ReservationSet {
	return &ReservationSet{}
}

// Push records a new reservation, discarding any existing reservation
// that overlaps it.
func (s *ReservationSet) Push(addr, size uint64) {
	next := reservationRange{Begin: addr, End: addr + size}
	kept := s.ranges[:0]
	for _, r := range s.ranges {
		if !r.overlaps(next) {
			kept = append(kept, r)
		}
	}
	s.ranges = append(kept, next)
}

// Pop removes and reports whether a reservation covering [addr, addr+size)
// is present; a successful SC consumes the reservation regardless of the
// outcome, since the ISA requires SC to always clear reservations held by
// the issuing hart.
func (s *ReservationSet) Pop(addr, size uint64) bool {
	target := reservationRange{Begin: addr, End: addr + size}
	found := false
	kept := s.ranges[:0]
	for _, r := range s.ranges {
		if r.contains(target) {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	s.ranges = kept
	return found
}

// Clear drops every outstanding reservation, used when any store (not
// just a foreign one, in this single-hart model) could invalidate them.
func (s *ReservationSet) Clear() {
	s.ranges = s.ranges[:0]
}
