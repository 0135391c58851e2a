package sessions

import (
	"iwadcs/account"
	"iwadcs/bizerror"
	"iwadcs/session"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

var AuthenticateFunc = account.Authenticate

func RegisterSessionsHandler(r *gin.Engine) {
	g := r.Group("/v1/sessions")
	g.POST("", SimpleLoginHandler)
	g.DELETE("", SimpleLogoutHandler)
}

func SimpleLogoutHandler(c *gin.Context) {
	token, _ := c.Cookie(session.KeySecToken) // ErrNoCookie
	if token != "" {
		session.TokenCache.Delete(token)
	}
	c.SetCookie(session.KeySecToken, "", -1, "/", "", false, true)
	c.AbortWithStatus(http.StatusNoContent)
}

func SimpleLoginHandler(c *gin.Context) {
	login := session.LoginRequest{}
	if err := c.ShouldBindBodyWith(&login, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if !allowLogin(login.Name) {
		logrus.WithField("username", login.Name).Warn("login throttled")
		panic(bizerror.ErrTooManyAttempts)
	}

	user, err := AuthenticateFunc(c.Request.Context(), login.Name, login.Password)
	if err != nil {
		logrus.WithField("username", login.Name).WithError(err).Warn("login failed")
		panic(err)
	}

	token := uuid.New().String()
	s := session.Session{Token: token, SigningTime: time.Now(), Identity: session.Identity{
		Username: user.Username, Name: user.Name, Email: user.Email, Role: user.Role, WorkCenter: user.WorkCenter,
	}}
	session.TokenCache.Set(token, &s, cache.DefaultExpiration)

	c.SetCookie(session.KeySecToken, token, int(session.TokenExpiration/time.Second), "/", "", false, true)
	c.JSON(http.StatusOK, &s)
}
