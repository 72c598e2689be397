package reorder

import "dragboard/internal/hierarchy"

// Apply returns a new hierarchy with in applied. h is left untouched: item
// handles are shared, list structs are copied. Instructions that do not fit h
// (stale indices) return a plain copy.
func Apply(h *hierarchy.Hierarchy, in Instruction) *hierarchy.Hierarchy {
	out := clone(h)
	if in == nil || !in.Valid() {
		return out
	}
	switch in := in.(type) {
	case ItemMove:
		if in.SourceList >= len(out.Lists) || in.DestList >= len(out.Lists) {
			return out
		}
		src := out.Lists[in.SourceList]
		if in.SourceItem >= len(src.Items) {
			return out
		}
		it := src.Items[in.SourceItem]
		src.Items = removeAt(src.Items, in.SourceItem)
		dst := out.Lists[in.DestList]
		dst.Items = insertAt(dst.Items, in.DestItem, it)
	case ItemInsert:
		if in.DestList >= len(out.Lists) {
			return out
		}
		dst := out.Lists[in.DestList]
		dst.Items = insertAt(dst.Items, in.DestItem, in.Item)
	case ListMove:
		if in.Source >= len(out.Lists) {
			return out
		}
		l := out.Lists[in.Source]
		out.Lists = insertAt(removeAt(out.Lists, in.Source), in.Dest, l)
	case ListInsert:
		out.Lists = insertAt(out.Lists, in.Dest, in.List)
	}
	return out
}

// clone copies the list structs so item slices can be rewritten without
// touching h.
func clone(h *hierarchy.Hierarchy) *hierarchy.Hierarchy {
	out := &hierarchy.Hierarchy{}
	if h == nil {
		return out
	}
	out.Lists = make([]*hierarchy.List, len(h.Lists))
	for i, l := range h.Lists {
		cp := *l
		cp.Items = append([]*hierarchy.Item(nil), l.Items...)
		out.Lists[i] = &cp
	}
	return out
}

func removeAt[T any](s []T, i int) []T {
	out := make([]T, 0, len(s))
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

func insertAt[T any](s []T, i int, v T) []T {
	if i > len(s) {
		i = len(s)
	}
	out := make([]T, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, v)
	return append(out, s[i:]...)
}
