package workorder

import (
	"iwadcs/authority"
	"iwadcs/bizerror"
	"iwadcs/catalog"
	"iwadcs/misc"
	"iwadcs/session"
	"net/http"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	CreateWorkOrderFunc  = CreateWorkOrder
	QueryWorkOrdersFunc  = QueryWorkOrders
	DetailWorkOrderFunc  = DetailWorkOrder
	MyWorkOrdersFunc     = MyWorkOrders
	PendingForReviewFunc = PendingForReview
	ReviewWorkOrderFunc  = ReviewWorkOrder
)

func RegisterWorkOrdersRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/v1/work-orders", middleWares...)
	g.POST("", handleCreateWorkOrder)
	g.GET("", handleQueryWorkOrders)
	g.GET(":id", handleDetailWorkOrder)

	r.GET("/v1/my/work-orders", append(middleWares, handleMyWorkOrders)...)
	r.GET("/v1/forms/:workCenter", append(middleWares, handleDetailForm)...)

	review := r.Group("/v1/review/work-orders", middleWares...)
	review.GET("", session.RequireRoles(authority.RoleSupervisor, authority.RoleAdmin), handlePendingForReview)
	review.POST(":id/approval", session.RequireRoles(authority.RoleSupervisor), handleApproveWorkOrder)
	review.POST(":id/rejection", session.RequireRoles(authority.RoleSupervisor), handleRejectWorkOrder)
}

func handleCreateWorkOrder(c *gin.Context) {
	creation := WorkOrderCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	w, err := CreateWorkOrderFunc(&creation, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, w)
}

func handleQueryWorkOrders(c *gin.Context) {
	q := Query{}
	if err := c.ShouldBindQuery(&q); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	results, err := QueryWorkOrdersFunc(&q, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &misc.PagedBody{List: results, Total: uint64(len(results))})
}

func handleDetailWorkOrder(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	w, err := DetailWorkOrderFunc(id, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, w)
}

func handleMyWorkOrders(c *gin.Context) {
	q := Query{}
	if err := c.ShouldBindQuery(&q); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	results, err := MyWorkOrdersFunc(q.Statuses, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &misc.PagedBody{List: results, Total: uint64(len(results))})
}

func handlePendingForReview(c *gin.Context) {
	q := Query{}
	if err := c.ShouldBindQuery(&q); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	results, err := PendingForReviewFunc(&q, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &misc.PagedBody{List: results, Total: uint64(len(results))})
}

func handleApproveWorkOrder(c *gin.Context) {
	handleReview(c, StatusApproved)
}

func handleRejectWorkOrder(c *gin.Context) {
	handleReview(c, StatusRejected)
}

func handleReview(c *gin.Context, status string) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	payload := ReviewFeedback{}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
			panic(&bizerror.ErrBadParam{Cause: err})
		}
	}
	w, err := ReviewWorkOrderFunc(id, status, payload.Feedback, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, w)
}

func handleDetailForm(c *gin.Context) {
	form, found := catalog.FormOf(c.Param("workCenter"))
	if !found {
		panic(bizerror.ErrNotFound)
	}
	c.JSON(http.StatusOK, form)
}
