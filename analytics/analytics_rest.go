package analytics

import (
	"iwadcs/authority"
	"iwadcs/session"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	DashboardFunc         = Dashboard
	LocationAnalyticsFunc = LocationAnalytics
	TrendsFunc            = Trends
	PredictionsFunc       = Predictions
	ProfileStatsFunc      = ProfileStats
)

func RegisterAnalyticsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	r.GET("/v1/dashboard", append(middleWares, handleDashboard)...)
	r.GET("/v1/profile/stats", append(middleWares, handleProfileStats)...)

	g := r.Group("/v1/analytics", middleWares...)
	g.Use(session.RequireRoles(authority.RoleSupervisor, authority.RoleAdmin))
	g.GET("locations", handleLocationAnalytics)
	g.GET("trends", handleTrends)
	g.GET("predictions", handlePredictions)
}

func handleDashboard(c *gin.Context) {
	view, err := DashboardFunc(session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, view)
}

func handleProfileStats(c *gin.Context) {
	stats, err := ProfileStatsFunc(session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, stats)
}

func handleLocationAnalytics(c *gin.Context) {
	view, err := LocationAnalyticsFunc(c.Query("locationType"), session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, view)
}

func handleTrends(c *gin.Context) {
	view, err := TrendsFunc(session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, view)
}

func handlePredictions(c *gin.Context) {
	view, err := PredictionsFunc(session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, view)
}
