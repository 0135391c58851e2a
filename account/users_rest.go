package account

import (
	"iwadcs/authority"
	"iwadcs/bizerror"
	"iwadcs/session"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	QueryUsersFunc     = QueryUsers
	DetailUserFunc     = DetailUser
	CreateUserFunc     = CreateUser
	DeleteUserFunc     = DeleteUser
	UpdateProfileFunc  = UpdateProfile
	UpdatePasswordFunc = UpdatePassword
)

func RegisterUsersHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	users := r.Group("/v1/users", append(middleWares, session.RequireRoles(authority.RoleAdmin))...)
	users.GET("", HandleQueryUsers)
	users.POST("", HandleCreateUser)
	users.DELETE(":username", HandleDeleteUser)

	me := r.Group("/v1/me", middleWares...)
	me.GET("", HandleDetailMe)
	me.PUT("profile", HandleUpdateProfile)
	me.PUT("password", HandleUpdatePassword)
}

func HandleQueryUsers(c *gin.Context) {
	results, err := QueryUsersFunc(session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, results)
}

func HandleCreateUser(c *gin.Context) {
	payload := UserCreation{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	user, err := CreateUserFunc(&payload, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, user)
}

func HandleDeleteUser(c *gin.Context) {
	if err := DeleteUserFunc(c.Param("username"), session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}

func HandleDetailMe(c *gin.Context) {
	sec := session.ExtractSessionFromGinContext(c)
	user, err := DetailUserFunc(sec.Identity.Username, sec)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, user)
}

func HandleUpdateProfile(c *gin.Context) {
	payload := ProfileUpdating{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	sec := session.ExtractSessionFromGinContext(c)
	user, err := UpdateProfileFunc(&payload, sec)
	if err != nil {
		panic(err)
	}
	identity := sec.Identity
	identity.Name = user.Name
	identity.Email = user.Email
	session.RefreshIdentity(sec.Token, identity)
	c.JSON(http.StatusOK, user)
}

func HandleUpdatePassword(c *gin.Context) {
	payload := PasswordUpdating{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := UpdatePasswordFunc(&payload, session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusOK)
}
