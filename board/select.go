package board

import "whiteboard/canvas"

// HitTest returns the newest shape whose anchor lies within HitRadius of p.
func (b *Board) HitTest(p canvas.Point) Shape {
	return b.HitTestRadius(p, HitRadius)
}

// HitTestRadius is HitTest with an explicit radius in world units. Only the anchor
// point is considered, so a long stroke is selected by where it started.
func (b *Board) HitTestRadius(p canvas.Point, r float64) Shape {
	for i := len(b.shapes) - 1; i >= 0; i-- {
		s := b.shapes[i]
		if len(s.Points()) == 0 {
			continue
		}
		if s.Anchor().Dist(p) < r {
			return s
		}
	}
	return nil
}

// Toggle flips the selection flag of id and returns the new state.
func (b *Board) Toggle(id string) bool {
	s := b.Find(id)
	if s == nil {
		return false
	}
	a := s.Base()
	a.Selected = !a.Selected
	return a.Selected
}

// Selected returns the selected shapes in z-order.
func (b *Board) Selected() []Shape {
	var out []Shape
	for _, s := range b.shapes {
		if s.Base().Selected {
			out = append(out, s)
		}
	}
	return out
}

func (b *Board) ClearSelection() {
	for _, s := range b.shapes {
		s.Base().Selected = false
	}
}

// DeleteSelected removes every selected shape and returns how many went.
func (b *Board) DeleteSelected() int {
	kept := b.shapes[:0]
	removed := 0
	for _, s := range b.shapes {
		if s.Base().Selected {
			if s.Base().ID == b.active {
				b.active = ""
			}
			removed++
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(b.shapes); i++ {
		b.shapes[i] = nil
	}
	b.shapes = kept
	return removed
}

// MoveSelected translates every selected shape by dx, dy world units.
func (b *Board) MoveSelected(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	for _, s := range b.shapes {
		if s.Base().Selected {
			s.Translate(dx, dy)
		}
	}
}
