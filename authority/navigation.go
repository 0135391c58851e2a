package authority

type Page struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

var (
	PageDashboard         = Page{Key: "dashboard", Title: "Dashboard Overview", Path: "/v1/dashboard"}
	PageSubmitWorkOrder   = Page{Key: "submit", Title: "Submit New Work Order", Path: "/v1/forms"}
	PageMyWorkOrders      = Page{Key: "my-work-orders", Title: "My Submitted Work Orders", Path: "/v1/my/work-orders"}
	PageWorkCenterQueue   = Page{Key: "work-center-queue", Title: "Work Center Queue", Path: "/v1/work-orders"}
	PageReviewCenter      = Page{Key: "review-center", Title: "Work Order Review Center", Path: "/v1/review/work-orders"}
	PageLocationAnalytics = Page{Key: "location-analytics", Title: "Location Analytics", Path: "/v1/analytics/locations"}
	PageCompliance        = Page{Key: "compliance", Title: "Compliance Dashboard", Path: "/v1/compliance-reports"}
	PagePerformanceTrends = Page{Key: "performance-trends", Title: "Performance Trends", Path: "/v1/analytics/trends"}
	PageKPIPredictions    = Page{Key: "kpi-predictions", Title: "KPI Predictions", Path: "/v1/analytics/predictions"}
	PageFindingsAnalysis  = Page{Key: "findings-analysis", Title: "Findings Analysis", Path: "/v1/analytics/findings"}
	PageUserManagement    = Page{Key: "user-management", Title: "User Management", Path: "/v1/users"}
	PageProfile           = Page{Key: "profile", Title: "My Profile", Path: "/v1/me"}
)

var userPages = []Page{PageDashboard, PageSubmitWorkOrder, PageMyWorkOrders, PageWorkCenterQueue, PageProfile}

// reviewer menu; user management stays admin-only at the route level
var reviewerPages = []Page{PageDashboard, PageSubmitWorkOrder, PageMyWorkOrders, PageWorkCenterQueue,
	PageReviewCenter, PageLocationAnalytics, PageCompliance, PagePerformanceTrends, PageKPIPredictions,
	PageFindingsAnalysis, PageUserManagement, PageProfile}

// NavigationOf returns the menu of a role. Unknown roles get no pages.
func NavigationOf(role string) []Page {
	switch {
	case IsReviewer(role):
		return append([]Page{}, reviewerPages...)
	case role == RoleUser:
		return append([]Page{}, userPages...)
	default:
		return []Page{}
	}
}
