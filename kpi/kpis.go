// Package kpi aggregates work orders into performance indicators. Everything here is a pure
// function over work orders already loaded into memory.
package kpi

import (
	"iwadcs/catalog"
	"iwadcs/workorder"
)

// TargetKPI is the approval rate, in percent, the facility aims at.
const TargetKPI = 80.0

const unknownGroup = "Unknown"

type KPIs struct {
	TotalTasks        int     `json:"totalTasks"`
	CompletedTasks    int     `json:"completedTasks"`
	ApprovalRate      float64 `json:"approvalRate"`
	CompletionRate    float64 `json:"completionRate"`
	AvgCompletionTime float64 `json:"avgCompletionTime"`

	WorkCenterPerformance   map[string]float64 `json:"workCenterPerformance"`
	LocationPerformance     map[string]float64 `json:"locationPerformance"`
	LocationTypePerformance map[string]float64 `json:"locationTypePerformance"`
}

type tally struct {
	completed int
	approved  int
}

func (t *tally) add(w *workorder.WorkOrder) {
	if w.IsCompleted() {
		t.completed++
	}
	if w.Status == workorder.StatusApproved {
		t.approved++
	}
}

func (t *tally) approvalRate() float64 {
	return percent(t.approved, t.completed)
}

func percent(n, of int) float64 {
	if of <= 0 {
		return 0
	}
	return float64(n) / float64(of) * 100
}

// Calculate computes the indicators of a set of work orders. Approval rates only count
// completed (approved or rejected) work orders and are 0 when none is completed.
func Calculate(tasks []workorder.WorkOrder) KPIs {
	k := KPIs{
		WorkCenterPerformance:   map[string]float64{},
		LocationPerformance:     map[string]float64{},
		LocationTypePerformance: map[string]float64{},
	}
	if len(tasks) == 0 {
		return k
	}

	overall := tally{}
	byWorkCenter := map[string]*tally{}
	byLocation := map[string]*tally{}
	byLocationType := map[string]*tally{}
	durationSum, durationCount := 0, 0

	for i := range tasks {
		w := &tasks[i]
		overall.add(w)
		if w.IsCompleted() {
			durationSum += w.EstimatedDuration
			durationCount++
		}
		group(byWorkCenter, w.WorkCenter).add(w)
		group(byLocation, w.SpecificLocation).add(w)
		group(byLocationType, w.LocationType).add(w)
	}

	k.TotalTasks = len(tasks)
	k.CompletedTasks = overall.completed
	k.ApprovalRate = overall.approvalRate()
	k.CompletionRate = percent(overall.completed, len(tasks))
	if durationCount > 0 {
		k.AvgCompletionTime = float64(durationSum) / float64(durationCount)
	}
	for name, t := range byWorkCenter {
		k.WorkCenterPerformance[name] = t.approvalRate()
	}
	for name, t := range byLocation {
		k.LocationPerformance[name] = t.approvalRate()
	}
	for name, t := range byLocationType {
		k.LocationTypePerformance[name] = t.approvalRate()
	}
	return k
}

func group(groups map[string]*tally, key string) *tally {
	if key == "" {
		key = unknownGroup
	}
	t, found := groups[key]
	if !found {
		t = &tally{}
		groups[key] = t
	}
	return t
}

type PersonalStats struct {
	TotalTasks    int     `json:"totalTasks"`
	PendingTasks  int     `json:"pendingTasks"`
	ApprovedTasks int     `json:"approvedTasks"`
	RejectedTasks int     `json:"rejectedTasks"`
	ApprovalRate  float64 `json:"approvalRate"`
	OnshoreTasks  int     `json:"onshoreTasks"`
	OffshoreTasks int     `json:"offshoreTasks"`
}

// Personal summarizes the work orders of a single submitter.
func Personal(tasks []workorder.WorkOrder) PersonalStats {
	s := PersonalStats{TotalTasks: len(tasks)}
	for i := range tasks {
		switch tasks[i].Status {
		case workorder.StatusPending:
			s.PendingTasks++
		case workorder.StatusApproved:
			s.ApprovedTasks++
		case workorder.StatusRejected:
			s.RejectedTasks++
		}
		switch tasks[i].LocationType {
		case catalog.LocationTypeOnshore:
			s.OnshoreTasks++
		case catalog.LocationTypeOffshore:
			s.OffshoreTasks++
		}
	}
	s.ApprovalRate = percent(s.ApprovedTasks, s.ApprovedTasks+s.RejectedTasks)
	return s
}
