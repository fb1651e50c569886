package domain

// StatusFilter restricts the dashboard by completion.
type StatusFilter string

// Possible status filter values
const (
	StatusFilterAll       StatusFilter = "all"
	StatusFilterCompleted StatusFilter = "completed"
	StatusFilterPending   StatusFilter = "pending"
)

// ParseStatusFilter maps a query value to a StatusFilter; unknown values mean all.
func ParseStatusFilter(s string) StatusFilter {
	switch StatusFilter(s) {
	case StatusFilterCompleted, StatusFilterPending:
		return StatusFilter(s)
	default:
		return StatusFilterAll
	}
}

// PriorityFilter restricts the dashboard to one priority, or "all".
type PriorityFilter string

// PriorityFilterAll disables priority filtering.
const PriorityFilterAll PriorityFilter = "all"

// ParsePriorityFilter maps a query value to a PriorityFilter; unknown values mean all.
func ParsePriorityFilter(s string) PriorityFilter {
	if s == "" {
		return PriorityFilterAll
	}
	if p, err := ParsePriority(s); err == nil {
		return PriorityFilter(p)
	}
	return PriorityFilterAll
}

// Priority returns the filtered priority and false when the filter is "all".
func (f PriorityFilter) Priority() (Priority, bool) {
	if f == PriorityFilterAll || f == "" {
		return "", false
	}
	return Priority(f), true
}

// SortKey selects the dashboard ordering.
type SortKey string

// Possible sort keys
const (
	// SortCreatedAt orders newest first.
	SortCreatedAt SortKey = "created_at"
	// SortDueDate orders by due date ascending, then newest first.
	SortDueDate SortKey = "due_date"
	// SortPriority orders urgent > high > medium > low, then newest first.
	SortPriority SortKey = "priority"
)

// ParseSortKey maps a query value to a SortKey; unknown values mean created_at.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortDueDate, SortPriority:
		return SortKey(s)
	default:
		return SortCreatedAt
	}
}

// DashboardQuery is the filter and sort selection for a user's task list.
type DashboardQuery struct {
	Status   StatusFilter   `json:"status"`
	Priority PriorityFilter `json:"priority"`
	Sort     SortKey        `json:"sort"`
}

// ParseDashboardQuery builds a query from raw request values.
func ParseDashboardQuery(status, priority, sort string) DashboardQuery {
	return DashboardQuery{
		Status:   ParseStatusFilter(status),
		Priority: ParsePriorityFilter(priority),
		Sort:     ParseSortKey(sort),
	}
}

// Matches reports whether t passes the query's filters.
func (q DashboardQuery) Matches(t *Task) bool {
	switch q.Status {
	case StatusFilterCompleted:
		if t.Status != StatusCompleted {
			return false
		}
	case StatusFilterPending:
		if t.Status == StatusCompleted {
			return false
		}
	}
	if p, ok := q.Priority.Priority(); ok && t.Priority != p {
		return false
	}
	return true
}
