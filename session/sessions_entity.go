package session

import (
	"context"
	"iwadcs/authority"
	"iwadcs/catalog"
	"time"
)

// Session is the request scoped identity of an authenticated user.
type Session struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`

	SigningTime time.Time       `json:"-"`
	Context     context.Context `json:"-"`
}

type Identity struct {
	Username   string `json:"username"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	WorkCenter string `json:"workCenter"`
}

func (s *Session) Clone() Session {
	return Session{Token: s.Token, Identity: s.Identity, SigningTime: s.SigningTime, Context: s.Context}
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Identity.Role == authority.RoleAdmin
}

func (s *Session) IsSupervisor() bool {
	return s != nil && s.Identity.Role == authority.RoleSupervisor
}

func (s *Session) IsReviewer() bool {
	return s != nil && authority.IsReviewer(s.Identity.Role)
}

// CanAccessWorkCenter reports whether the identity is assigned to the work center, or to All.
func (s *Session) CanAccessWorkCenter(workCenter string) bool {
	if s == nil {
		return false
	}
	return s.Identity.WorkCenter == catalog.WorkCenterAll || s.Identity.WorkCenter == workCenter
}

// Ctx returns the trace context of the request, never nil.
func (s *Session) Ctx() context.Context {
	if s == nil || s.Context == nil {
		return context.Background()
	}
	return s.Context
}
