package crm

import (
	"sort"
	"strings"
)

// ListOptions reproduces the dashboard's client-side table controls:
// substring search, column sort, and pagination over an already-fetched
// slice. The server never sees any of it.
type ListOptions struct {
	// Query matches case-insensitively against name, email, and phone.
	Query string
	// SortBy is one of "name", "email", "status", "createdAt". Empty keeps
	// server order.
	SortBy string
	// Descending reverses the sort direction.
	Descending bool
	// Page is 1-based. Zero means no pagination.
	Page    int
	PerPage int
}

// ApplyLeads filters, sorts, and paginates a lead slice. The input is never
// mutated.
func (o ListOptions) ApplyLeads(leads []Lead) []Lead {
	out := make([]Lead, 0, len(leads))
	query := strings.ToLower(strings.TrimSpace(o.Query))
	for _, lead := range leads {
		if query == "" || leadMatches(lead, query) {
			out = append(out, lead)
		}
	}

	if o.SortBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			if o.Descending {
				return leadLess(out[j], out[i], o.SortBy)
			}
			return leadLess(out[i], out[j], o.SortBy)
		})
	}

	return Paginate(out, o.Page, o.PerPage)
}

// Paginate slices items down to one 1-based page. Zero page or per-page
// disables pagination; a page past the end is empty.
func Paginate[T any](items []T, page, perPage int) []T {
	if page <= 0 || perPage <= 0 {
		return items
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return items[:0]
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func leadMatches(lead Lead, query string) bool {
	return strings.Contains(strings.ToLower(lead.Name), query) ||
		strings.Contains(strings.ToLower(lead.Email), query) ||
		strings.Contains(strings.ToLower(lead.Phone), query)
}

func leadLess(a, b Lead, field string) bool {
	switch field {
	case "email":
		return strings.ToLower(a.Email) < strings.ToLower(b.Email)
	case "status":
		return strings.ToLower(a.Status) < strings.ToLower(b.Status)
	case "createdAt":
		return a.CreatedAt.Before(b.CreatedAt)
	default:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}
