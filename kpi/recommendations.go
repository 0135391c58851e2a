package kpi

const (
	LevelCritical = "critical"
	LevelWarning  = "warning"
	LevelGood     = "good"
)

type Recommendation struct {
	Level   string   `json:"level"`
	Title   string   `json:"title"`
	Actions []string `json:"actions"`
}

// Recommend turns the probability of reaching TargetKPI into advice.
func Recommend(achievementProbability float64) Recommendation {
	switch {
	case achievementProbability < 50:
		return Recommendation{Level: LevelCritical, Title: "Immediate Action Required", Actions: []string{
			"Review and accelerate pending work order approvals",
			"Identify bottlenecks in low-performing work centers",
			"Conduct training sessions for technicians",
			"Implement daily performance monitoring",
			"Focus on locations with lowest approval rates",
		}}
	case achievementProbability < 70:
		return Recommendation{Level: LevelWarning, Title: "Improvement Needed", Actions: []string{
			"Monitor trends closely",
			"Provide additional support to struggling teams",
			"Streamline approval processes",
			"Set weekly performance targets",
		}}
	default:
		return Recommendation{Level: LevelGood, Title: "Good Performance", Actions: []string{
			"Maintain current processes",
			"Share best practices across teams",
			"Continue regular monitoring",
			"Focus on continuous improvement",
		}}
	}
}
