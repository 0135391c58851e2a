package report

import (
	"iwadcs/authority"
	"iwadcs/bizerror"
	"iwadcs/misc"
	"iwadcs/session"
	"iwadcs/workorder"
	"net/http"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
)

const (
	pdfContentType  = "application/pdf"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	registerName    = "work_order_register.xlsx"
)

var (
	DetailWorkOrderFunc = workorder.DetailWorkOrder
	QueryWorkOrdersFunc = workorder.QueryWorkOrders
)

func RegisterReportsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/v1/work-orders", middleWares...)
	reviewer := session.RequireRoles(authority.RoleSupervisor, authority.RoleAdmin)
	g.GET(":id/report.pdf", reviewer, handleWorkOrderPDF)
	g.GET("export.xlsx", reviewer, handleRegisterXLSX)
}

func handleWorkOrderPDF(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	w, err := DetailWorkOrderFunc(id, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	data, err := RenderWorkOrderPDF(w, misc.Now())
	if err != nil {
		panic(err)
	}
	c.Header("Content-Disposition", `attachment; filename="`+FileName(w)+`"`)
	c.Data(http.StatusOK, pdfContentType, data)
}

func handleRegisterXLSX(c *gin.Context) {
	q := workorder.Query{}
	if err := c.ShouldBindQuery(&q); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	works, err := QueryWorkOrdersFunc(&q, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	data, err := RenderRegisterXLSX(works)
	if err != nil {
		panic(err)
	}
	c.Header("Content-Disposition", `attachment; filename="`+registerName+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
