package kpi_test

import (
	"iwadcs/kpi"
	"iwadcs/workorder"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var day0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func workOrder(status, workCenter, location, locationType string, duration int) workorder.WorkOrder {
	return workorder.WorkOrder{Status: status, WorkCenter: workCenter, SpecificLocation: location,
		LocationType: locationType, EstimatedDuration: duration, SubmissionDate: day0}
}

var _ = Describe("Calculate", func() {
	It("should yield zero indicators for no work orders", func() {
		k := kpi.Calculate(nil)
		Expect(k.TotalTasks).To(BeZero())
		Expect(k.ApprovalRate).To(BeZero())
		Expect(k.AvgCompletionTime).To(BeZero())
		Expect(k.WorkCenterPerformance).To(BeEmpty())
	})

	It("should yield zero approval rate when nothing is completed", func() {
		k := kpi.Calculate([]workorder.WorkOrder{
			workOrder(workorder.StatusPending, "Electrical", "TGAST", "Onshore", 4),
			workOrder(workorder.StatusPending, "Mechanical", "Tiong", "Offshore", 6),
		})
		Expect(k.TotalTasks).To(Equal(2))
		Expect(k.CompletedTasks).To(BeZero())
		Expect(k.ApprovalRate).To(BeZero())
		Expect(k.CompletionRate).To(BeZero())
		Expect(k.AvgCompletionTime).To(BeZero())
		Expect(k.WorkCenterPerformance).To(Equal(map[string]float64{"Electrical": 0, "Mechanical": 0}))
	})

	It("should aggregate completed work orders by group", func() {
		k := kpi.Calculate([]workorder.WorkOrder{
			workOrder(workorder.StatusApproved, "Electrical", "TGAST", "Onshore", 4),
			workOrder(workorder.StatusApproved, "Electrical", "TCOT", "Onshore", 8),
			workOrder(workorder.StatusRejected, "Electrical", "TGAST", "Onshore", 12),
			workOrder(workorder.StatusApproved, "Mechanical", "Tiong", "Offshore", 6),
			workOrder(workorder.StatusPending, "Mechanical", "Tiong", "Offshore", 100),
		})
		Expect(k.TotalTasks).To(Equal(5))
		Expect(k.CompletedTasks).To(Equal(4))
		Expect(k.ApprovalRate).To(BeNumerically("~", 75.0, 1e-9))
		Expect(k.CompletionRate).To(BeNumerically("~", 80.0, 1e-9))
		Expect(k.AvgCompletionTime).To(BeNumerically("~", 7.5, 1e-9))
		Expect(k.WorkCenterPerformance["Electrical"]).To(BeNumerically("~", 200.0/3, 1e-9))
		Expect(k.WorkCenterPerformance["Mechanical"]).To(BeNumerically("~", 100.0, 1e-9))
		Expect(k.LocationPerformance).To(HaveLen(3))
		Expect(k.LocationPerformance["TGAST"]).To(BeNumerically("~", 50.0, 1e-9))
		Expect(k.LocationTypePerformance["Offshore"]).To(BeNumerically("~", 100.0, 1e-9))
	})

	It("should group work orders without location as Unknown", func() {
		k := kpi.Calculate([]workorder.WorkOrder{workOrder(workorder.StatusApproved, "Electrical", "", "", 4)})
		Expect(k.LocationPerformance).To(Equal(map[string]float64{"Unknown": 100}))
		Expect(k.LocationTypePerformance).To(Equal(map[string]float64{"Unknown": 100}))
	})

	It("should keep approval rates within [0,100]", func() {
		statuses := []string{workorder.StatusApproved, workorder.StatusRejected, workorder.StatusPending}
		for n := 1; n <= 12; n++ {
			var tasks []workorder.WorkOrder
			for i := 0; i < n; i++ {
				tasks = append(tasks, workOrder(statuses[(i*n)%3], "Electrical", "TGAST", "Onshore", 4))
			}
			k := kpi.Calculate(tasks)
			Expect(k.ApprovalRate).To(And(BeNumerically(">=", 0), BeNumerically("<=", 100)))
		}
	})
})

var _ = Describe("Personal", func() {
	It("should count own work orders by status and location type", func() {
		s := kpi.Personal([]workorder.WorkOrder{
			workOrder(workorder.StatusApproved, "Electrical", "TGAST", "Onshore", 4),
			workOrder(workorder.StatusRejected, "Electrical", "Tiong", "Offshore", 4),
			workOrder(workorder.StatusApproved, "Electrical", "Angsi", "Offshore", 4),
			workOrder(workorder.StatusPending, "Electrical", "TCOT", "Onshore", 4),
		})
		Expect(s.ApprovalRate).To(BeNumerically("~", 200.0/3, 1e-9))
		s.ApprovalRate = 0
		Expect(s).To(Equal(kpi.PersonalStats{TotalTasks: 4, PendingTasks: 1, ApprovedTasks: 2, RejectedTasks: 1,
			OnshoreTasks: 2, OffshoreTasks: 2}))
	})

	It("should yield zero approval rate without completed work orders", func() {
		s := kpi.Personal([]workorder.WorkOrder{workOrder(workorder.StatusPending, "Electrical", "TGAST", "Onshore", 4)})
		Expect(s.ApprovalRate).To(BeZero())
	})
})
