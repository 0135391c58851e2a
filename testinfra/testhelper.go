package testinfra

import (
	"context"
	"io"
	"iwadcs/session"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

func ExecuteRequest(req *http.Request, engine *gin.Engine) (int, string, *http.Response) {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body), resp
}

// BuildSession build a signed session, the display name is the capitalized username
func BuildSession(username, role, workCenter string) *session.Session {
	name := username
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return &session.Session{
		Token: uuid.New().String(),
		Identity: session.Identity{Username: username, Name: name, Email: username + "@facility.com",
			Role: role, WorkCenter: workCenter},
		SigningTime: time.Now(),
		Context:     context.Background(),
	}
}

// WithSession registers s in the token cache and attaches its token cookie to req.
func WithSession(req *http.Request, s *session.Session) *http.Request {
	session.TokenCache.Set(s.Token, s, cache.DefaultExpiration)
	req.AddCookie(&http.Cookie{Name: session.KeySecToken, Value: s.Token})
	return req
}
