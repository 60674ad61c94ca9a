package tasksrepo

import "strings"

// QueryFilter is the owner-scoped predicate for listing tasks. Stores render
// it in their own query language and always AND the owner.
type QueryFilter struct {
	OwnerID  string
	Search   *string
	Status   *Status
	Priority *Priority
}

// ParseQueryFilter builds a filter from raw query values. Unknown status and
// priority values are dropped rather than rejected, and a blank search is
// ignored.
func ParseQueryFilter(ownerID, search, status, priority string) QueryFilter {
	filter := QueryFilter{OwnerID: ownerID}

	if s := strings.TrimSpace(search); s != "" {
		filter.Search = &s
	}
	if st := Status(status); st.Valid() {
		filter.Status = &st
	}
	if p := Priority(priority); p.Valid() {
		filter.Priority = &p
	}

	return filter
}

// Matches reports whether t satisfies f. Search is a case-insensitive
// substring match on title or description.
func (f QueryFilter) Matches(t Task) bool {
	if t.UserID != f.OwnerID {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if f.Search != nil {
		needle := strings.ToLower(*f.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}
	return true
}
