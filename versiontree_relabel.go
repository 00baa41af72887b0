// SPDX-License-Identifier: MIT

package pds

import "math"

// allocateLabel assigns a label to ev, which must already be spliced
// into the event list (ev.prev and ev.next correctly set) but not yet
// present in slotEvent/openLabel/closeLabel. It implements the label
// allocation procedure of spec §4.2: take the midpoint of the gap to
// the right neighbor if the gap is wide enough, otherwise relabel and
// retry, re-reading the neighbors' labels live since relabel may have
// moved them.
func (t *VersionTree) allocateLabel(ev *event) {
	for {
		left := ev.prev.label
		right := t.m - 1
		if ev.next != nil {
			right = ev.next.label
		}

		if right-left >= 2 {
			t.commitLabel(ev, left+(right-left+1)/2)
			return
		}

		t.relabel(left, right)
	}
}

// relabel implements the hierarchical relabeling procedure of spec
// §4.2: find the smallest power-of-two window containing [left, right]
// whose occupancy density is below T^-s, and redistribute its occupants
// at equal spacing. If no window up to the full label space qualifies,
// grow the label space instead.
func (t *VersionTree) relabel(left, right int) {
	for s := 2; s <= t.m; s *= 2 {
		winLo := (left / s) * s
		winHi := winLo + s

		if (right/s)*s != winLo {
			// left and right fall in different windows of this size.
			continue
		}

		occupied := t.occupiedCount(winLo, winHi)
		density := float64(occupied) / float64(s)

		if density < t.densityThreshold(s) {
			t.redistribute(winLo, winHi)
			return
		}
	}

	t.grow()
}

func (t *VersionTree) densityThreshold(s int) float64 {
	return math.Pow(t.densityConstant, -float64(s))
}

// occupiedCount counts real events in [lo, hi), plus one for the
// permanently reserved sentinel slot M-1 if it falls in the range: the
// sentinel can never be relabeled away, so it counts toward density
// exactly as an occupant would.
func (t *VersionTree) occupiedCount(lo, hi int) int {
	n := 0
	for i := lo; i < hi; i++ {
		if t.slotEvent[i] != nil {
			n++
		}
	}
	sentinel := t.m - 1
	if sentinel >= lo && sentinel < hi {
		n++
	}
	return n
}

// redistribute spreads the real events occupying [lo, hi) at equal
// integer spacing across the same range, leaving the sentinel slot (if
// any) in place.
func (t *VersionTree) redistribute(lo, hi int) {
	effectiveHi := hi
	sentinel := t.m - 1
	if sentinel >= lo && sentinel < hi {
		effectiveHi = sentinel
	}

	var occupants []*event
	for i := lo; i < effectiveHi; i++ {
		if ev := t.slotEvent[i]; ev != nil {
			occupants = append(occupants, ev)
		}
	}
	if len(occupants) == 0 {
		return
	}

	step := (effectiveHi - lo) / len(occupants)
	// Vacate every old slot before committing any new label, so that a
	// moved event never lands on a slot that a later occupant then clears.
	for _, ev := range occupants {
		t.slotEvent[ev.label] = nil
	}
	for i, ev := range occupants {
		t.commitLabel(ev, lo+i*step)
	}
}

// grow doubles the label space, reserves the new top slot as the
// sentinel, and redistributes every currently registered event evenly
// across the enlarged space.
func (t *VersionTree) grow() {
	oldSlots := t.slotEvent
	newM := t.m * 2

	t.m = newM
	t.slotEvent = make([]*event, newM)
	for _, ev := range oldSlots {
		if ev != nil {
			t.slotEvent[ev.label] = ev
		}
	}

	t.redistribute(0, newM-1)
}
