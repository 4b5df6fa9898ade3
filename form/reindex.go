package form

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"formstate/dotpath"
)

// arrayOp identifies which structural mutation a reindex follows.
type arrayOp int

const (
	opInsert arrayOp = iota
	opRemove
	opMove
)

// reindex relocates field state after an array mutation at arrayPath so
// that flags and cached validity keep describing the same logical element
// rather than the same index. from/to are the operation's indices (to is
// only meaningful for opMove).
//
// Steps: collect affected registry entries, compute the old→new index
// mapping, snapshot flags keyed by new path, relocate the error map (which
// may hold entries for paths no Field was ever created for), reset every
// scanned field, apply the snapshots, prune entries beyond the new tail,
// and finally re-validate exactly the relocated fields that had been
// validated before.
func (f *Form) reindex(ctx context.Context, arrayPath string, op arrayOp, from, to int) {
	prefix := arrayPath + "."
	length := f.data.Len(arrayPath)

	var scanned []string
	relocated := make(map[string]flagSnapshot)

	for path, fld := range f.fields {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		index, rest, ok := splitIndex(path, prefix)
		if !ok {
			continue
		}
		scanned = append(scanned, path)

		newIndex, kept := remap(op, from, to, index)
		if !kept {
			// The element was removed; its state is discarded.
			continue
		}
		relocated[joinIndex(prefix, newIndex, rest)] = fld.snapshot()
	}

	// The error map is relocated on its own: full-form validation writes
	// entries for paths that were never registered, and those must move or
	// die with their elements just the same.
	movedErrs := make(map[string][]string)
	for path, errs := range f.validator.AllErrors() {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		index, rest, ok := splitIndex(path, prefix)
		if !ok {
			continue
		}
		f.validator.ClearFieldErrors(path)

		newIndex, kept := remap(op, from, to, index)
		if !kept || newIndex >= length {
			continue
		}
		movedErrs[joinIndex(prefix, newIndex, rest)] = errs
	}

	// Reset every scanned field regardless of fate so no stale flag
	// survives under its old path.
	for _, path := range scanned {
		f.fields[path].reset()
	}

	for newPath, errs := range movedErrs {
		f.validator.SetFieldErrors(newPath, errs)
	}
	for newPath, snap := range relocated {
		f.Field(newPath).applySnapshot(snap)
	}

	f.prune(prefix, length)
	bump(f.errorsVersion)

	// Re-validate relocated fields that had been validated before, so
	// their errors describe the new contextual position. Sorted for a
	// deterministic validator call order.
	var stale []string
	for path, snap := range relocated {
		if snap.wasValidated {
			stale = append(stale, path)
		}
	}
	sort.Strings(stale)
	f.runValidations(ctx, stale)
}

// remap translates an element index across an array operation. The second
// result is false when the element no longer exists.
func remap(op arrayOp, from, to, index int) (int, bool) {
	switch op {
	case opInsert:
		if index >= from {
			return index + 1, true
		}
		return index, true

	case opRemove:
		switch {
		case index < from:
			return index, true
		case index == from:
			return 0, false
		default:
			return index - 1, true
		}

	default: // opMove
		switch {
		case index == from:
			return to, true
		case from < to && index > from && index <= to:
			return index - 1, true
		case from > to && index >= to && index < from:
			return index + 1, true
		default:
			return index, true
		}
	}
}

// prune deletes registry entries whose array index lies at or beyond the
// new array length, along with their cached errors.
func (f *Form) prune(prefix string, length int) {
	removed := false
	for path := range f.fields {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		if index, _, ok := splitIndex(path, prefix); ok && index >= length {
			delete(f.fields, path)
			f.validator.ClearFieldErrors(path)
			removed = true
		}
	}
	if removed {
		bump(f.fieldsVersion)
	}
}

// splitIndex breaks "<prefix><index>.<rest>" into its index and remainder.
// The third result is false when the segment after prefix is not numeric.
func splitIndex(path, prefix string) (int, string, bool) {
	head, rest, _ := strings.Cut(path[len(prefix):], ".")
	index, ok := dotpath.Index(head)
	return index, rest, ok
}

func joinIndex(prefix string, index int, rest string) string {
	path := prefix + strconv.Itoa(index)
	if rest != "" {
		path += "." + rest
	}
	return path
}
