package account

import (
	"context"
	"errors"
	"iwadcs/authority"
	"iwadcs/bizerror"
	"iwadcs/catalog"
	"iwadcs/misc"
	"iwadcs/persistence"
	"iwadcs/session"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor of stored password hashes.
var PasswordCost = bcrypt.DefaultCost

func HashPassword(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Authenticate loads the user and checks the password against the stored hash.
// An unknown user and a wrong password both fail with ErrUnauthenticated.
func Authenticate(ctx context.Context, username, password string) (*User, error) {
	db, err := persistence.ActiveDB(ctx)
	if err != nil {
		return nil, err
	}
	user := User{}
	if err := db.Where(&User{Username: username}).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bizerror.ErrUnauthenticated
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, bizerror.ErrUnauthenticated
	}
	return &user, nil
}

func QueryUsers(sec *session.Session) ([]User, error) {
	if !sec.IsAdmin() {
		return nil, bizerror.ErrForbidden
	}
	db, err := persistence.ActiveDB(sec.Ctx())
	if err != nil {
		return nil, err
	}
	users := []User{}
	if err := db.Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func DetailUser(username string, sec *session.Session) (*User, error) {
	if username != sec.Identity.Username && !sec.IsAdmin() {
		return nil, bizerror.ErrForbidden
	}
	db, err := persistence.ActiveDB(sec.Ctx())
	if err != nil {
		return nil, err
	}
	user := User{}
	if err := db.Where(&User{Username: username}).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(c *UserCreation, sec *session.Session) (*User, error) {
	if !sec.IsAdmin() {
		return nil, bizerror.ErrForbidden
	}
	if !authority.IsRole(c.Role) {
		return nil, &bizerror.ErrBadParam{Cause: errors.New("unknown role '" + c.Role + "'")}
	}
	if !catalog.IsUserWorkCenter(c.WorkCenter) {
		return nil, &bizerror.ErrBadParam{Cause: errors.New("unknown work center '" + c.WorkCenter + "'")}
	}
	hash, err := HashPassword(c.Password)
	if err != nil {
		return nil, err
	}
	db, err := persistence.ActiveDB(sec.Ctx())
	if err != nil {
		return nil, err
	}

	user := User{Username: c.Username, Name: c.Name, Email: c.Email, Role: c.Role, WorkCenter: c.WorkCenter,
		PasswordHash: hash, CreateTime: misc.Now()}
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int
		if err := tx.Model(&User{}).Where(&User{Username: c.Username}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &bizerror.ErrBadParam{Cause: errors.New("username '" + c.Username + "' already exists")}
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"username": user.Username, "role": user.Role, "operator": sec.Identity.Username}).
		Info("user created")
	return &user, nil
}

// DeleteUser removes an account. Admins can not remove their own account.
func DeleteUser(username string, sec *session.Session) error {
	if !sec.IsAdmin() {
		return bizerror.ErrForbidden
	}
	if username == sec.Identity.Username {
		return &bizerror.ErrBadParam{Cause: errors.New("you cannot delete your own account")}
	}
	db, err := persistence.ActiveDB(sec.Ctx())
	if err != nil {
		return err
	}
	result := db.Where("username = ?", username).Delete(&User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return bizerror.ErrNotFound
	}
	revoked := session.RevokeUser(username)
	logrus.WithFields(logrus.Fields{"username": username, "operator": sec.Identity.Username, "revokedSessions": revoked}).
		Info("user removed")
	return nil
}

func UpdateProfile(p *ProfileUpdating, sec *session.Session) (*User, error) {
	db, err := persistence.ActiveDB(sec.Ctx())
	if err != nil {
		return nil, err
	}
	user := User{}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&User{Username: sec.Identity.Username}).First(&user).Error; err != nil {
			return err
		}
		return tx.Model(&user).Updates(map[string]interface{}{"name": p.Name, "email": p.Email}).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func UpdatePassword(p *PasswordUpdating, sec *session.Session) error {
	db, err := persistence.ActiveDB(sec.Ctx())
	if err != nil {
		return err
	}
	user := User{}
	if err := db.Where(&User{Username: sec.Identity.Username}).First(&user).Error; err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(p.OriginalPassword)); err != nil {
		return bizerror.ErrInvalidPassword
	}
	hash, err := HashPassword(p.NewPassword)
	if err != nil {
		return err
	}
	if err := db.Model(&user).Update("password_hash", hash).Error; err != nil {
		return err
	}
	// sessions signed with the old password end, the current one stays
	session.RevokeUser(user.Username, sec.Token)
	return nil
}
