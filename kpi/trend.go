package kpi

import (
	"iwadcs/workorder"
	"time"
)

const (
	DefaultTrendWindowDays = 30
	predictionHorizonDays  = 7
	recentDays             = 7
	dayLayout              = "2006-01-02"
)

type DayRate struct {
	Date           time.Time `json:"date"`
	ApprovalRate   float64   `json:"approvalRate"`
	CompletionRate float64   `json:"completionRate"`
}

type Prediction struct {
	CurrentRate            float64   `json:"currentRate"`
	PredictedRate          float64   `json:"predictedRate"`
	Trend                  float64   `json:"trend"`
	AchievementProbability float64   `json:"achievementProbability"`
	HistoricalData         []DayRate `json:"historicalData"`
}

func zeroPrediction() Prediction {
	return Prediction{HistoricalData: []DayRate{}}
}

// PredictTrend buckets work orders by submission day over the trailing window of days ending
// today (in the location of now). Each day with at least one work order yields one point.
// Work orders submitted after today fall outside the window and are not counted.
// The approval rate series is fitted with a least squares line, and the prediction is the
// last observed rate moved 7 days along that line, clamped to [0,100].
func PredictTrend(tasks []workorder.WorkOrder, days int, now time.Time) Prediction {
	if days <= 0 {
		days = DefaultTrendWindowDays
	}
	buckets := map[string][]workorder.WorkOrder{}
	for _, w := range tasks {
		day := w.SubmissionDate.In(now.Location()).Format(dayLayout)
		buckets[day] = append(buckets[day], w)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var history []DayRate
	for offset := days; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset)
		dayTasks := buckets[day.Format(dayLayout)]
		if len(dayTasks) == 0 {
			continue
		}
		k := Calculate(dayTasks)
		history = append(history, DayRate{Date: day, ApprovalRate: k.ApprovalRate, CompletionRate: k.CompletionRate})
	}
	if len(history) < 2 {
		return zeroPrediction()
	}

	rates := make([]float64, len(history))
	for i, d := range history {
		rates[i] = d.ApprovalRate
	}
	slope, ok := leastSquaresSlope(rates)
	if !ok {
		return zeroPrediction()
	}

	current := rates[len(rates)-1]
	recent := rates
	if len(recent) > recentDays {
		recent = recent[len(recent)-recentDays:]
	}
	above := 0
	for _, r := range recent {
		if r >= TargetKPI {
			above++
		}
	}

	return Prediction{
		CurrentRate:            current,
		PredictedRate:          clamp(current+slope*predictionHorizonDays, 0, 100),
		Trend:                  slope,
		AchievementProbability: percent(above, len(recent)),
		HistoricalData:         history,
	}
}

// leastSquaresSlope fits y against x = 0..n-1 and returns the slope of the line.
func leastSquaresSlope(y []float64) (float64, bool) {
	n := float64(len(y))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denominator := n*sumXX - sumX*sumX
	if denominator == 0 {
		return 0, false
	}
	return (n*sumXY - sumX*sumY) / denominator, true
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
