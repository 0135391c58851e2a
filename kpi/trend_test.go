package kpi_test

import (
	"iwadcs/kpi"
	"iwadcs/workorder"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// daily builds, for each day before now, work orders approved in the given proportion.
func daily(now time.Time, approvedPerDay []int, perDay int) []workorder.WorkOrder {
	var tasks []workorder.WorkOrder
	for i, approved := range approvedPerDay {
		submitted := now.AddDate(0, 0, i-len(approvedPerDay)+1)
		for j := 0; j < perDay; j++ {
			status := workorder.StatusRejected
			if j < approved {
				status = workorder.StatusApproved
			}
			tasks = append(tasks, workorder.WorkOrder{Status: status, SubmissionDate: submitted})
		}
	}
	return tasks
}

var _ = Describe("PredictTrend", func() {
	now := time.Date(2024, 3, 31, 15, 0, 0, 0, time.UTC)

	It("should yield zero result for a single day of data", func() {
		p := kpi.PredictTrend(daily(now, []int{3}, 4), 30, now)
		Expect(p.CurrentRate).To(BeZero())
		Expect(p.PredictedRate).To(BeZero())
		Expect(p.Trend).To(BeZero())
		Expect(p.AchievementProbability).To(BeZero())
		Expect(p.HistoricalData).To(BeEmpty())
	})

	It("should yield zero result without data", func() {
		p := kpi.PredictTrend(nil, 0, now)
		Expect(p.HistoricalData).ToNot(BeNil())
		Expect(p.HistoricalData).To(BeEmpty())
	})

	It("should fit a line over observed days", func() {
		p := kpi.PredictTrend(daily(now, []int{1, 2, 3}, 4), 30, now)
		Expect(p.HistoricalData).To(HaveLen(3))
		Expect(p.HistoricalData[0].Date).To(Equal(time.Date(2024, 3, 29, 0, 0, 0, 0, time.UTC)))
		Expect(p.HistoricalData[2].CompletionRate).To(BeNumerically("~", 100.0, 1e-9))
		Expect(p.CurrentRate).To(BeNumerically("~", 75.0, 1e-9))
		Expect(p.Trend).To(BeNumerically("~", 25.0, 1e-9))
		Expect(p.PredictedRate).To(BeNumerically("~", 100.0, 1e-9))
		Expect(p.AchievementProbability).To(BeNumerically("~", 0.0, 1e-9))
	})

	It("should clamp predictions for extreme slopes", func() {
		up := kpi.PredictTrend(daily(now, []int{0, 10}, 10), 30, now)
		Expect(up.Trend).To(BeNumerically("~", 100.0, 1e-9))
		Expect(up.PredictedRate).To(Equal(100.0))

		down := kpi.PredictTrend(daily(now, []int{10, 0}, 10), 30, now)
		Expect(down.Trend).To(BeNumerically("~", -100.0, 1e-9))
		Expect(down.PredictedRate).To(Equal(0.0))
	})

	It("should compute achievement probability over the last seven observed days", func() {
		approved := []int{0, 0, 0, 5, 5, 5, 5, 5, 4, 3}
		p := kpi.PredictTrend(daily(now, approved, 5), 30, now)
		Expect(p.HistoricalData).To(HaveLen(10))
		// last seven rates: 100,100,100,100,100,80,60
		Expect(p.AchievementProbability).To(BeNumerically("~", 600.0/7, 1e-9))
	})

	It("should ignore work orders outside of the window", func() {
		tasks := daily(now, []int{4, 4}, 4)
		tasks = append(tasks, workorder.WorkOrder{Status: workorder.StatusRejected, SubmissionDate: now.AddDate(0, 0, -40)})
		p := kpi.PredictTrend(tasks, 30, now)
		Expect(p.HistoricalData).To(HaveLen(2))
		Expect(p.Trend).To(BeZero())
		Expect(p.AchievementProbability).To(Equal(100.0))
	})

	It("should ignore work orders submitted after today", func() {
		tasks := daily(now, []int{4, 4}, 4)
		tasks = append(tasks, workorder.WorkOrder{Status: workorder.StatusRejected, SubmissionDate: now.AddDate(0, 0, 1)})
		p := kpi.PredictTrend(tasks, 30, now)
		Expect(p.HistoricalData).To(HaveLen(2))
		Expect(p.HistoricalData[1].Date).To(Equal(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)))
		Expect(p.CurrentRate).To(Equal(100.0))
	})
})

var _ = Describe("Recommend", func() {
	It("should pick advice tier by probability", func() {
		Expect(kpi.Recommend(10).Level).To(Equal(kpi.LevelCritical))
		Expect(kpi.Recommend(50).Level).To(Equal(kpi.LevelWarning))
		Expect(kpi.Recommend(69.9).Title).To(Equal("Improvement Needed"))
		Expect(kpi.Recommend(70).Level).To(Equal(kpi.LevelGood))
		Expect(kpi.Recommend(70).Actions).To(ContainElement("Maintain current processes"))
	})
})
