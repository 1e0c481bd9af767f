package fallback

import "github.com/dmitrijs2005/jobkeeper/internal/client/models"

func indexOf[T models.Entity](items []T, id string) int {
	for i, it := range items {
		if it.EntityID() == id {
			return i
		}
	}
	return -1
}

// upsert replaces the row with item's id, or prepends item when absent.
func upsert[T models.Entity](items []T, item T) []T {
	if i := indexOf(items, item.EntityID()); i >= 0 {
		out := make([]T, len(items))
		copy(out, items)
		out[i] = item
		return out
	}
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

func remove[T models.Entity](items []T, id string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.EntityID() != id {
			out = append(out, it)
		}
	}
	return out
}

func filterByParent[T models.Entity](items []T, parentID string) []T {
	if parentID == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.ParentRef() == parentID {
			out = append(out, it)
		}
	}
	return out
}

func firstOr[T any](rows []T, def T) T {
	if len(rows) > 0 {
		return rows[0]
	}
	return def
}
