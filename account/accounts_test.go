package account_test

import (
	"context"
	"iwadcs/account"
	"iwadcs/bizerror"
	"iwadcs/testinfra"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = Describe("accounts", func() {
	var (
		testDatabase *testinfra.TestDatabase
		admin        = testinfra.BuildSession("admin", "admin", "All")
		technician   = testinfra.BuildSession("electrical_user", "user", "Electrical")
	)
	BeforeEach(func() {
		account.PasswordCost = bcrypt.MinCost
		testDatabase = testinfra.StartSqliteTestDatabase(&account.User{})
		Expect(account.BootstrapSampleUsers(context.Background())).To(Succeed())
	})
	AfterEach(func() {
		testinfra.StopSqliteTestDatabase(testDatabase)
	})

	Describe("BootstrapSampleUsers", func() {
		It("should be idempotent", func() {
			Expect(account.BootstrapSampleUsers(context.Background())).To(Succeed())
			var count int
			Expect(testDatabase.DS.GormDB(context.Background()).Model(&account.User{}).Count(&count).Error).To(BeNil())
			Expect(count).To(Equal(5))
		})

		It("should never store plain passwords", func() {
			user := account.User{}
			Expect(testDatabase.DS.GormDB(context.Background()).Where(&account.User{Username: "admin"}).First(&user).Error).To(BeNil())
			Expect(user.PasswordHash).ToNot(Equal("admin123"))
			Expect(user.Role).To(Equal("admin"))
			Expect(user.WorkCenter).To(Equal("All"))
		})
	})

	Describe("Authenticate", func() {
		It("should return user when password matches", func() {
			user, err := account.Authenticate(context.Background(), "supervisor", "super123")
			Expect(err).To(BeNil())
			Expect(user.Name).To(Equal("Supervisor"))
			Expect(user.Email).To(Equal("supervisor@facility.com"))
		})

		It("should fail when user is unknown or password mismatch", func() {
			user, err := account.Authenticate(context.Background(), "supervisor", "super1234")
			Expect(err).To(Equal(bizerror.ErrUnauthenticated))
			Expect(user).To(BeNil())

			user, err = account.Authenticate(context.Background(), "nobody", "super123")
			Expect(err).To(Equal(bizerror.ErrUnauthenticated))
			Expect(user).To(BeNil())
		})
	})

	Describe("CreateUser", func() {
		creation := account.UserCreation{Username: "civil_user", Password: "civil123", Name: "Civil",
			Email: "civil@facility.com", Role: "user", WorkCenter: "Mechanical"}

		It("should be blocked when user is not admin", func() {
			u, err := account.CreateUser(&creation, technician)
			Expect(err).To(Equal(bizerror.ErrForbidden))
			Expect(u).To(BeNil())
		})

		It("should reject unknown role and work center", func() {
			c := creation
			c.Role = "operator"
			_, err := account.CreateUser(&c, admin)
			Expect(err).To(BeAssignableToTypeOf(&bizerror.ErrBadParam{}))
			Expect(err.Error()).To(Equal("unknown role 'operator'"))

			c = creation
			c.WorkCenter = "Civil"
			_, err = account.CreateUser(&c, admin)
			Expect(err.Error()).To(Equal("unknown work center 'Civil'"))
		})

		It("should be able to create users correctly", func() {
			u, err := account.CreateUser(&creation, admin)
			Expect(err).To(BeNil())
			Expect(u.Username).To(Equal("civil_user"))

			authenticated, err := account.Authenticate(context.Background(), "civil_user", "civil123")
			Expect(err).To(BeNil())
			Expect(authenticated.WorkCenter).To(Equal("Mechanical"))

			_, err = account.CreateUser(&creation, admin)
			Expect(err).To(BeAssignableToTypeOf(&bizerror.ErrBadParam{}))
			Expect(err.Error()).To(Equal("username 'civil_user' already exists"))
		})
	})

	Describe("QueryUsers", func() {
		It("should list users ordered by username", func() {
			users, err := account.QueryUsers(admin)
			Expect(err).To(BeNil())
			Expect(len(users)).To(Equal(5))
			Expect(users[0].Username).To(Equal("admin"))
			Expect(users[4].Username).To(Equal("supervisor"))

			users, err = account.QueryUsers(technician)
			Expect(err).To(Equal(bizerror.ErrForbidden))
			Expect(users).To(BeNil())
		})
	})

	Describe("DeleteUser", func() {
		It("should not delete own account", func() {
			err := account.DeleteUser("admin", admin)
			Expect(err).To(BeAssignableToTypeOf(&bizerror.ErrBadParam{}))
		})

		It("should return not found when user is missing", func() {
			Expect(account.DeleteUser("nobody", admin)).To(Equal(bizerror.ErrNotFound))
		})

		It("should delete user", func() {
			Expect(account.DeleteUser("mechanical_user", technician)).To(Equal(bizerror.ErrForbidden))
			Expect(account.DeleteUser("mechanical_user", admin)).To(Succeed())
			_, err := account.Authenticate(context.Background(), "mechanical_user", "mechanical123")
			Expect(err).To(Equal(bizerror.ErrUnauthenticated))
		})
	})

	Describe("UpdateProfile and UpdatePassword", func() {
		It("should update own profile", func() {
			user, err := account.UpdateProfile(&account.ProfileUpdating{Name: "Elec Lead", Email: "lead@facility.com"}, technician)
			Expect(err).To(BeNil())
			Expect(user.Name).To(Equal("Elec Lead"))

			detail, err := account.DetailUser("electrical_user", technician)
			Expect(err).To(BeNil())
			Expect(detail.Email).To(Equal("lead@facility.com"))
		})

		It("should check original password", func() {
			err := account.UpdatePassword(&account.PasswordUpdating{OriginalPassword: "wrong", NewPassword: "newpass1"}, technician)
			Expect(err).To(Equal(bizerror.ErrInvalidPassword))

			Expect(account.UpdatePassword(&account.PasswordUpdating{OriginalPassword: "electrical123", NewPassword: "newpass1"}, technician)).To(Succeed())
			_, err = account.Authenticate(context.Background(), "electrical_user", "newpass1")
			Expect(err).To(BeNil())
		})
	})
})
