package gallium

import (
	"fmt"
	"slices"
)

// extractionRange is the removal range shared by delete and move: the
// element, its leading indentation back to the previous newline when
// only whitespace intervenes, and trailing spaces plus one newline, so
// no blank line is left behind.
func extractionRange(src []byte, el *Element) textRange {
	start := el.openStart
	ws := start
	for ws > 0 && (src[ws-1] == ' ' || src[ws-1] == '\t') {
		ws--
	}
	if ws == 0 || src[ws-1] == '\n' {
		start = ws
	}

	end := el.end
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	switch {
	case end < len(src) && src[end] == '\n':
		end++
	case end+1 < len(src) && src[end] == '\r' && src[end+1] == '\n':
		end += 2
	}
	return textRange{start: start, end: end}
}

func execDelete(src []byte, el *Element) (*editPlan, error) {
	return &editPlan{
		ranges:   []textRange{extractionRange(src, el)},
		newStart: -1,
	}, nil
}

// nearestSibling scans the located element's sibling list in the
// requested direction, skipping whitespace-only text and nothing
// else. A code run with content, or an expression container, between
// the two means there is no clean pair to reorder.
func nearestSibling(site *elementSite, dir Direction) (*Element, error) {
	step := 1
	if dir == DirectionPrev {
		step = -1
	}
	for i := site.index + step; i >= 0 && i < len(site.siblings); i += step {
		switch n := site.siblings[i].(type) {
		case *Element:
			return n, nil
		case *Text:
			if n.IsBlank() {
				continue
			}
		}
		break
	}
	return nil, fmt.Errorf("%w: %s of <%s>", ErrNoSibling, dir, site.el.name)
}

// execSwap reorders the element with its nearest sibling by replacing
// the composite span from the earlier to the later with later-source +
// original-between-text + earlier-source. Nothing outside the pair is
// touched.
func execSwap(src []byte, site *elementSite, op SwapSibling) (*editPlan, error) {
	sib, err := nearestSibling(site, op.Direction)
	if err != nil {
		return nil, err
	}

	earlier, later := site.el, sib
	if op.Direction == DirectionPrev {
		earlier, later = sib, site.el
	}

	earlierSrc := src[earlier.openStart:earlier.end]
	between := src[earlier.end:later.openStart]
	laterSrc := src[later.openStart:later.end]

	newStart := earlier.openStart
	if op.Direction == DirectionNext {
		newStart += len(laterSrc) + len(between)
	}

	return &editPlan{
		ranges: []textRange{{
			start: earlier.openStart,
			end:   later.end,
			repl:  slices.Concat(laterSrc, between, earlierSrc),
		}},
		newStart: newStart,
	}, nil
}

// execMove extracts the element with the delete range and re-inserts
// it relative to the target. Two disjoint ranges, applied through the
// common composer; nothing here does its own offset math.
func execMove(doc *Document, site *elementSite, op MoveElement) (*editPlan, error) {
	target, err := Locate(doc, op.Target)
	if err != nil {
		return nil, fmt.Errorf("move target %d:%d: %w", op.Target.Line, op.Target.Column, err)
	}

	src := doc.src
	el := site.el
	// offset containment: the target must not live inside the moved
	// element's own subtree (the element itself included)
	if el.openStart <= target.openStart && target.end <= el.end {
		return nil, fmt.Errorf("%w: <%s> into its own subtree", ErrStructuralInvalid, el.name)
	}

	rem := extractionRange(src, el)
	moved := src[el.openStart:el.end]

	var ins textRange
	var insOff int // where the element's '<' lands, pre-removal
	switch op.Position {
	case MoveBefore:
		ins = textRange{start: target.openStart, end: target.openStart, repl: moved}
		insOff = target.openStart
	case MoveAfter:
		ins = textRange{start: target.end, end: target.end, repl: moved}
		insOff = target.end
	case MoveInside:
		if target.selfClosing {
			ins = containerConversion(src, target, string(moved))
			insOff = ins.start + 1 // after the '>' the conversion introduces
		} else if target.closeStart < 0 {
			return nil, ErrNoClosingTag
		} else {
			// append as last child, right before the closing tag
			ins = textRange{start: target.closeStart, end: target.closeStart, repl: moved}
			insOff = target.closeStart
		}
	}

	newStart := insOff
	if rem.end <= insOff {
		newStart -= rem.end - rem.start
	}

	return &editPlan{
		ranges:   []textRange{rem, ins},
		newStart: newStart,
	}, nil
}
