package findings

import (
	"iwadcs/authority"
	"iwadcs/bizerror"
	"iwadcs/session"
	"net/http"

	"github.com/gin-gonic/gin"
)

var AnalyzeFunc = Analyze

func RegisterFindingsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	r.GET("/v1/analytics/findings", append(middleWares,
		session.RequireRoles(authority.RoleSupervisor, authority.RoleAdmin), handleAnalyze)...)
	r.POST("/v1/index-requests", append(middleWares,
		session.RequireRoles(authority.RoleAdmin), handleIndexRequest)...)
}

func handleAnalyze(c *gin.Context) {
	q := Query{}
	if err := c.ShouldBindQuery(&q); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	analysis, err := AnalyzeFunc(&q, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, analysis)
}

func handleIndexRequest(c *gin.Context) {
	success, err := ScheduleNewSyncRunFunc(session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, gin.H{"result": success})
}
