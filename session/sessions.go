package session

import (
	"iwadcs/bizerror"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

const TokenExpiration = 24 * time.Hour

var TokenCache = cache.New(TokenExpiration, 1*time.Minute)

type LoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

const KeySecCtx = "SecCtx"
const KeySecToken = "sec_token"

func ExtractSessionFromGinContext(ctx *gin.Context) *Session {
	value, found := ctx.Get(KeySecCtx)
	if !found {
		return &Session{Context: ctx.Request.Context()}
	}
	s0, ok := value.(*Session)
	if !ok || s0.Token == "" {
		return &Session{Context: ctx.Request.Context()}
	}
	s := s0.Clone()
	s.Context = ctx.Request.Context() // trace context
	return &s
}

func SimpleAuthFilter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(KeySecToken)
		if err != nil {
			panic(bizerror.ErrUnauthenticated)
		}
		securityContextValue, found := TokenCache.Get(token)
		if !found {
			panic(bizerror.ErrUnauthenticated)
		}
		secCtx, ok := securityContextValue.(*Session)
		if !ok {
			panic(bizerror.ErrUnauthenticated)
		}
		InjectSessionIntoGinContext(ctx, secCtx)
		ctx.Next()
	}
}

// RequireRoles rejects requests whose session role is not listed. It must run after SimpleAuthFilter.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		s := ExtractSessionFromGinContext(ctx)
		for _, role := range roles {
			if s.Identity.Role == role {
				ctx.Next()
				return
			}
		}
		panic(bizerror.ErrForbidden)
	}
}

func InjectSessionIntoGinContext(ctx *gin.Context, secCtx *Session) {
	if secCtx != nil && secCtx.Token != "" {
		ctx.Set(KeySecCtx, secCtx)
	}
}

// RefreshIdentity replaces the identity of a cached session and keeps its remaining lifetime.
func RefreshIdentity(token string, identity Identity) {
	value, expiration, found := TokenCache.GetWithExpiration(token)
	if !found {
		return
	}
	s, ok := value.(*Session)
	if !ok {
		return
	}
	ttl := time.Until(expiration)
	if ttl <= 0 {
		return
	}
	refreshed := s.Clone()
	refreshed.Identity = identity
	TokenCache.Set(token, &refreshed, ttl)
}

// RevokeUser drops every cached session of username except the listed tokens.
func RevokeUser(username string, keepTokens ...string) int {
	keep := make(map[string]struct{}, len(keepTokens))
	for _, t := range keepTokens {
		keep[t] = struct{}{}
	}
	revoked := 0
	for token, item := range TokenCache.Items() {
		s, ok := item.Object.(*Session)
		if !ok || s.Identity.Username != username {
			continue
		}
		if _, found := keep[token]; found {
			continue
		}
		TokenCache.Delete(token)
		revoked++
	}
	return revoked
}
