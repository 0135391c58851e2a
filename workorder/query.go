package workorder

import "iwadcs/catalog"

type Query struct {
	WorkCenter       string   `form:"workCenter" json:"workCenter"`
	Statuses         []string `form:"status" json:"status"`
	LocationTypes    []string `form:"locationType" json:"locationType"`
	SpecificLocation string   `form:"location" json:"location"`
	SubmittedBy      string   `form:"submittedBy" json:"submittedBy"`
	Priorities       []string `form:"priority" json:"priority"`
}

func (q *Query) storeFilter() StoreFilter {
	filter := StoreFilter{Statuses: q.Statuses}
	if q.WorkCenter != catalog.WorkCenterAll {
		filter.WorkCenter = q.WorkCenter
	}
	return filter
}

// Matches applies the criteria the store does not evaluate. Empty criteria match everything.
func (q *Query) Matches(w *WorkOrder) bool {
	if len(q.LocationTypes) > 0 && !contains(q.LocationTypes, w.LocationType) {
		return false
	}
	if q.SpecificLocation != "" && q.SpecificLocation != w.SpecificLocation {
		return false
	}
	if q.SubmittedBy != "" && q.SubmittedBy != w.SubmittedBy {
		return false
	}
	if len(q.Priorities) > 0 && !contains(q.Priorities, priorityOf(w)) {
		return false
	}
	return true
}

func priorityOf(w *WorkOrder) string {
	if w.Priority == "" {
		return DefaultPriority
	}
	return w.Priority
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
