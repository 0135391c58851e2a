package sessions

import (
	"iwadcs/authority"
	"iwadcs/bizerror"
	"iwadcs/session"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func RegisterSessionHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/v1/session", middleWares...)
	g.GET("", DetailSessionHandler)

	r.GET("/v1/navigation", append(middleWares, NavigationHandler)...)
}

// DetailSessionHandler returns the current session, or 401 once the token outlived its signing time.
func DetailSessionHandler(c *gin.Context) {
	sec := session.ExtractSessionFromGinContext(c)
	if time.Since(sec.SigningTime) >= session.TokenExpiration {
		session.TokenCache.Delete(sec.Token)
		panic(bizerror.ErrUnauthenticated)
	}
	c.JSON(http.StatusOK, sec)
}

func NavigationHandler(c *gin.Context) {
	sec := session.ExtractSessionFromGinContext(c)
	c.JSON(http.StatusOK, authority.NavigationOf(sec.Identity.Role))
}
