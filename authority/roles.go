package authority

const (
	RoleUser       = "user"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

func IsRole(role string) bool {
	return role == RoleUser || role == RoleSupervisor || role == RoleAdmin
}

// IsReviewer reports whether the role may open the review, analytics and compliance pages.
func IsReviewer(role string) bool {
	return role == RoleSupervisor || role == RoleAdmin
}
