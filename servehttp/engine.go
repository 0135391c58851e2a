package servehttp

import (
	"iwadcs/account"
	"iwadcs/analytics"
	"iwadcs/bizerror"
	"iwadcs/compliance"
	"iwadcs/findings"
	"iwadcs/infra/tracing"
	"iwadcs/misc"
	"iwadcs/notification"
	"iwadcs/report"
	"iwadcs/session"
	"iwadcs/sessions"
	"iwadcs/workorder"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewEngine builds the router of the service with every API registered behind the session filter.
func NewEngine() *gin.Engine {
	engine := gin.Default()
	engine.Use(tracing.TracingIngress(), bizerror.ErrorHandling())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, misc.GetServiceName())
	})

	auth := session.SimpleAuthFilter()
	sessions.RegisterSessionsHandler(engine)
	sessions.RegisterSessionHandler(engine, auth)
	account.RegisterUsersHandler(engine, auth)
	workorder.RegisterWorkOrdersRestAPI(engine, auth)
	report.RegisterReportsRestAPI(engine, auth)
	notification.RegisterNotificationsRestAPI(engine, auth)
	compliance.RegisterComplianceRestAPI(engine, auth)
	analytics.RegisterAnalyticsRestAPI(engine, auth)
	findings.RegisterFindingsRestAPI(engine, auth)
	return engine
}
