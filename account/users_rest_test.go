package account_test

import (
	"bytes"
	"errors"
	"iwadcs/account"
	"iwadcs/bizerror"
	"iwadcs/session"
	"iwadcs/testinfra"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("users rest", func() {
	var (
		router     *gin.Engine
		admin      *session.Session
		technician *session.Session
	)
	BeforeEach(func() {
		router = gin.Default()
		router.Use(bizerror.ErrorHandling())
		account.RegisterUsersHandler(router, session.SimpleAuthFilter())
		admin = testinfra.BuildSession("admin", "admin", "All")
		technician = testinfra.BuildSession("electrical_user", "user", "Electrical")
	})

	Describe("HandleQueryUsers", func() {
		It("should be forbidden for non admin", func() {
			req := testinfra.WithSession(httptest.NewRequest(http.MethodGet, "/v1/users", nil), technician)
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusForbidden))
			Expect(body).To(MatchJSON(`{"code":"security.forbidden","message":"access forbidden","data":null}`))
		})

		It("should list users without password hash", func() {
			account.QueryUsersFunc = func(sec *session.Session) ([]account.User, error) {
				return []account.User{{Username: "ann", Name: "Ann", Email: "ann@facility.com", Role: "user",
					WorkCenter: "Electrical", PasswordHash: "secret"}}, nil
			}
			req := testinfra.WithSession(httptest.NewRequest(http.MethodGet, "/v1/users", nil), admin)
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(MatchJSON(`[{"username":"ann","name":"Ann","email":"ann@facility.com","role":"user",
				"workCenter":"Electrical","createTime":"0001-01-01T00:00:00Z"}]`))
		})
	})

	Describe("HandleCreateUser", func() {
		It("should reject invalid body", func() {
			req := testinfra.WithSession(httptest.NewRequest(http.MethodPost, "/v1/users",
				bytes.NewReader([]byte(`{"username":"ann"}`))), admin)
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(body).To(ContainSubstring(`"code":"common.bad_param"`))
		})

		It("should create user", func() {
			var payload *account.UserCreation
			account.CreateUserFunc = func(c *account.UserCreation, sec *session.Session) (*account.User, error) {
				payload = c
				return &account.User{Username: c.Username, Name: c.Name, Email: c.Email, Role: c.Role, WorkCenter: c.WorkCenter}, nil
			}
			req := testinfra.WithSession(httptest.NewRequest(http.MethodPost, "/v1/users", bytes.NewReader([]byte(
				`{"username":"ann","password":"ann123","name":"Ann","email":"ann@facility.com","role":"user","workCenter":"Electrical"}`))), admin)
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusCreated))
			Expect(body).To(ContainSubstring(`"username":"ann"`))
			Expect(*payload).To(Equal(account.UserCreation{Username: "ann", Password: "ann123", Name: "Ann",
				Email: "ann@facility.com", Role: "user", WorkCenter: "Electrical"}))
		})
	})

	Describe("HandleDeleteUser", func() {
		It("should map errors", func() {
			account.DeleteUserFunc = func(username string, sec *session.Session) error {
				if username == "nobody" {
					return bizerror.ErrNotFound
				}
				return nil
			}
			req := testinfra.WithSession(httptest.NewRequest(http.MethodDelete, "/v1/users/nobody", nil), admin)
			status, _, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusNotFound))

			req = testinfra.WithSession(httptest.NewRequest(http.MethodDelete, "/v1/users/ann", nil), admin)
			status, _, _ = testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusNoContent))
		})
	})

	Describe("HandleUpdateProfile", func() {
		It("should refresh identity of the session", func() {
			account.UpdateProfileFunc = func(p *account.ProfileUpdating, sec *session.Session) (*account.User, error) {
				return &account.User{Username: sec.Identity.Username, Name: p.Name, Email: p.Email}, nil
			}
			req := testinfra.WithSession(httptest.NewRequest(http.MethodPut, "/v1/me/profile",
				bytes.NewReader([]byte(`{"name":"Elec Lead","email":"lead@facility.com"}`))), technician)
			status, _, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))

			cached, found := session.TokenCache.Get(technician.Token)
			Expect(found).To(BeTrue())
			Expect(cached.(*session.Session).Identity.Name).To(Equal("Elec Lead"))
			Expect(cached.(*session.Session).Identity.Email).To(Equal("lead@facility.com"))
		})
	})

	Describe("HandleUpdatePassword", func() {
		It("should return 400 when original password is wrong", func() {
			account.UpdatePasswordFunc = func(p *account.PasswordUpdating, sec *session.Session) error {
				return bizerror.ErrInvalidPassword
			}
			req := testinfra.WithSession(httptest.NewRequest(http.MethodPut, "/v1/me/password",
				bytes.NewReader([]byte(`{"originalPassword":"abc","newPassword":"abcdef"}`))), technician)
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(body).To(MatchJSON(`{"code":"security.invalid_password","message":"incorrect current password","data":null}`))
		})

		It("should return 500 on unexpected error", func() {
			account.UpdatePasswordFunc = func(p *account.PasswordUpdating, sec *session.Session) error {
				return errors.New("some error")
			}
			req := testinfra.WithSession(httptest.NewRequest(http.MethodPut, "/v1/me/password",
				bytes.NewReader([]byte(`{"originalPassword":"abc","newPassword":"abcdef"}`))), technician)
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusInternalServerError))
			Expect(body).To(MatchJSON(`{"code":"common.internal_server_error","message":"some error","data":null}`))
		})
	})
})
