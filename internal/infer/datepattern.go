package infer

// datepattern.go narrows the positional ambiguity of date tokens like
// "03-04-05". Each dash-separated slot keeps a set of still-possible format
// tokens, pruned by evidence as samples arrive:
//
//   - a 4-digit component can only be a full year
//   - a component > 31 can only be a 2-digit year
//   - a component > 12 cannot be a month
//   - a component with fewer than 4 digits cannot be a 4-digit year
//   - each role (day, month, year) occupies exactly one slot, so a slot that
//     narrows to one candidate removes that role everywhere else
//
// Propagation runs to a fixed point after every sample. When evidence alone
// leaves more than one candidate per slot, the remaining candidates are
// checked against the three component orderings that occur in practice
// (day-month-year, month-day-year, year-month-day); if exactly one of them is
// still consistent, the slots collapse to it. Ambiguity that survives both
// steps keeps the column unresolved.

import (
	"strconv"
	"strings"
)

// Format tokens for one positional component of a date.
const (
	tokDay   = "%d"
	tokMonth = "%m"
	tokYear2 = "%y"
	tokYear4 = "%Y"
)

var allDateTokens = []string{tokDay, tokMonth, tokYear2, tokYear4}

// The component orderings seen in real data. Year-middle orderings such as
// d-y-m do not occur and are only ever reached by direct evidence.
var conventionalOrderings = [][3]string{
	{tokDay, tokMonth, tokYear2},
	{tokMonth, tokDay, tokYear2},
	{tokYear2, tokMonth, tokDay},
}

// datePattern holds the per-slot candidate sets for one column.
type datePattern struct {
	slots  [][]string
	format string // resolved pattern, empty until every slot is pinned
}

// observe feeds one canonical date token ("03-04-05") into the narrowing
// algorithm. Tokens whose component count disagrees with earlier samples
// carry no usable evidence and are skipped; they will surface as a
// conversion failure once a pattern commits.
func (d *datePattern) observe(token string) {
	if d.format != "" {
		return
	}

	parts := strings.Split(token, "-")
	if d.slots == nil {
		d.slots = make([][]string, len(parts))
		for i := range d.slots {
			d.slots[i] = append([]string(nil), allDateTokens...)
		}
	}
	if len(parts) != len(d.slots) {
		return
	}

	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return
		}
		switch {
		case len(part) == 4:
			d.pinYear(i, tokYear4)
		case v > 31:
			d.pinYear(i, tokYear2)
		default:
			// A short component can never satisfy a 4-digit year token.
			d.remove(i, tokYear4)
			if v > 12 {
				d.remove(i, tokMonth)
			}
		}
	}

	d.propagate()
	if !d.resolved() {
		d.applyOrderings()
	}
	if d.resolved() {
		tokens := make([]string, len(d.slots))
		for i, slot := range d.slots {
			tokens[i] = slot[0]
		}
		d.format = strings.Join(tokens, "-")
	}
}

// pinYear fixes slot i to the given year token and removes both year tokens
// from every other slot, since only one slot may be the year.
func (d *datePattern) pinYear(i int, tok string) {
	d.slots[i] = []string{tok}
	for j := range d.slots {
		if j != i {
			d.remove(j, tokYear2)
			d.remove(j, tokYear4)
		}
	}
}

func (d *datePattern) remove(i int, tok string) {
	slot := d.slots[i]
	for k, t := range slot {
		if t == tok {
			d.slots[i] = append(slot[:k:k], slot[k+1:]...)
			return
		}
	}
}

// propagate runs the singleton rule to a fixed point: a slot with exactly
// one candidate owns that role, so the role is removed from all other slots.
// Year tokens count as one role regardless of digit width.
func (d *datePattern) propagate() {
	for changed := true; changed; {
		changed = false
		for i, slot := range d.slots {
			if len(slot) != 1 {
				continue
			}
			for j := range d.slots {
				if j == i {
					continue
				}
				before := len(d.slots[j])
				d.remove(j, slot[0])
				if slot[0] == tokYear2 || slot[0] == tokYear4 {
					d.remove(j, tokYear2)
					d.remove(j, tokYear4)
				}
				if len(d.slots[j]) != before {
					changed = true
				}
			}
		}
	}
}

// applyOrderings intersects the candidate sets with the conventional
// orderings. If the surviving evidence contradicts all three (the data
// really is year-middle), the sets are left untouched and only direct
// evidence can resolve the column.
func (d *datePattern) applyOrderings() {
	if len(d.slots) != len(conventionalOrderings[0]) {
		return
	}

	var surviving [][3]string
	for _, ord := range conventionalOrderings {
		ok := true
		for i, role := range ord {
			if d.yearFor(i, role) == "" {
				ok = false
				break
			}
		}
		if ok {
			surviving = append(surviving, ord)
		}
	}
	if len(surviving) != 1 {
		return
	}

	for i, role := range surviving[0] {
		d.slots[i] = []string{d.yearFor(i, role)}
	}
	d.propagate()
}

// yearFor returns the concrete token slot i holds for the given role, or ""
// when the role is no longer a candidate there. The year role matches either
// %y or %Y, preferring whichever the slot's evidence kept.
func (d *datePattern) yearFor(i int, role string) string {
	if role == tokYear2 {
		if d.contains(i, tokYear4) && !d.contains(i, tokYear2) {
			return tokYear4
		}
		if d.contains(i, tokYear2) {
			return tokYear2
		}
		return ""
	}
	if d.contains(i, role) {
		return role
	}
	return ""
}

func (d *datePattern) contains(i int, tok string) bool {
	for _, t := range d.slots[i] {
		if t == tok {
			return true
		}
	}
	return false
}

func (d *datePattern) resolved() bool {
	if d.slots == nil {
		return false
	}
	for _, slot := range d.slots {
		if len(slot) != 1 {
			return false
		}
	}
	return true
}
