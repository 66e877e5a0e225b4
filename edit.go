package gallium

import (
	"context"
	"fmt"
	"log/slog"
)

type EditMode int

const (
	// EditModeFull: the edit applied (or would apply) by plain text
	// substitution.
	EditModeFull EditMode = iota
	// EditModeLimited: the named attribute exists but its value is an
	// opaque expression; writing it would corrupt the source.
	EditModeLimited
	// EditModeReadOnly: a spread attribute makes the element
	// statically unanalyzable for attribute writes.
	EditModeReadOnly
)

func (m EditMode) String() string {
	switch m {
	case EditModeLimited:
		return "limited"
	case EditModeReadOnly:
		return "read-only"
	}
	return "full"
}

// EditResult is the outcome of a successful (or safety-degraded) Edit.
// Source is the complete new file text, nil when Mode reports a
// degraded capability and nothing was written. Location is populated
// only by relocating edits (swap, move): the fresh address the host
// must substitute for the stale one before the next operation on the
// same element.
type EditResult struct {
	Source   []byte
	Location *SourceLocation
	Mode     EditMode
}

// Edit is the public entry point: parse src, locate the element at
// loc, apply op, and return new source that differs from src only in
// the byte ranges the operation touched. Operations never partially
// apply: either a complete success with full new text, or a failure
// with none produced. The engine never retries internally; identical
// stale input reproduces the same failure, so retrying after
// re-resolving the address is the host's decision.
//
// By default attribute edits pre-check IsSafelyEditable and come back
// with Mode set (and no text) instead of corrupting an opaque value;
// WithForce skips the check for callers that verified safety
// independently.
func Edit(octx context.Context, src []byte, loc SourceLocation, op Operation, options ...EditOption) (*EditResult, error) {
	var force bool
	for _, option := range options {
		switch option.Ident().(type) {
		case identForce:
			force = true
		}
	}

	octx, span := StartSpan(octx, "gallium.Edit")
	defer span.End()
	TraceEvent(octx, "edit start",
		slog.String("op", fmt.Sprintf("%T", op)),
		slog.String("at", loc.String()),
	)

	doc, err := Parse(octx, src, WithFileName(loc.FileName))
	if err != nil {
		return nil, err
	}

	site, ok := locateSite(doc, loc)
	if !ok {
		// a swap miss is a stale reference, not a structurally absent
		// element; the caller reacts differently
		if _, isSwap := op.(SwapSibling); isSwap {
			return nil, fmt.Errorf("%w: %d:%d", ErrStaleLocation, loc.Line, loc.Column)
		}
		return nil, fmt.Errorf("%w: %d:%d", ErrNotFound, loc.Line, loc.Column)
	}

	if !force {
		var gated string
		switch op := op.(type) {
		case UpdateAttribute:
			gated = op.Name
		case RemoveAttribute:
			gated = op.Name
		}
		if gated != "" {
			if mode, unsafe := attrWriteGate(site.el, gated); unsafe {
				TraceEvent(octx, "edit degraded", slog.String("mode", mode.String()))
				return &EditResult{Mode: mode}, nil
			}
		}
	}

	var plan *editPlan
	switch op := op.(type) {
	case UpdateAttribute:
		plan, err = execUpdateAttribute(site.el, op)
	case RemoveAttribute:
		plan, err = execRemoveAttribute(doc.src, site.el, op)
	case InsertChild:
		plan, err = execInsertChild(doc.src, site.el, op)
	case UpdateText:
		plan, err = execUpdateText(site.el, op)
	case DeleteElement:
		plan, err = execDelete(doc.src, site.el)
	case SwapSibling:
		plan, err = execSwap(doc.src, site, op)
	case MoveElement:
		plan, err = execMove(doc, site, op)
	default:
		return nil, fmt.Errorf("unknown operation %T", op)
	}
	if err != nil {
		TraceError(octx, err, "edit failed")
		return nil, err
	}

	out, err := applyRanges(doc.src, plan.ranges)
	if err != nil {
		return nil, err
	}

	res := &EditResult{Source: out}
	if plan.newStart >= 0 {
		l := locationAt(out, plan.newStart, loc.FileName)
		res.Location = &l
	}
	TraceEvent(octx, "edit done", slog.Int("bytes", len(out)))
	return res, nil
}

// attrWriteGate decides whether a plain-text attribute write on el is
// provably safe for the named attribute.
func attrWriteGate(el *Element, name string) (EditMode, bool) {
	if el.HasSpread() {
		return EditModeReadOnly, true
	}
	if a, ok := el.Attribute(name); ok && !IsSafelyEditable(a.value) {
		return EditModeLimited, true
	}
	return EditModeFull, false
}
