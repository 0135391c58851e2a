package compliance

import (
	"iwadcs/authority"
	"iwadcs/bizerror"
	"iwadcs/session"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	SubmitReportFunc = SubmitReport
	ListReportsFunc  = ListReports
)

type reportsQuery struct {
	Location string `form:"location" binding:"required"`
}

func RegisterComplianceRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/v1/compliance-reports", middleWares...)
	g.Use(session.RequireRoles(authority.RoleSupervisor, authority.RoleAdmin))
	g.POST("", handleSubmitReport)
	g.GET("", handleListReports)
}

func handleSubmitReport(c *gin.Context) {
	creation := ReportCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	r, err := SubmitReportFunc(&creation, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, r)
}

func handleListReports(c *gin.Context) {
	q := reportsQuery{}
	if err := c.ShouldBindQuery(&q); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	views, err := ListReportsFunc(q.Location, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, views)
}
