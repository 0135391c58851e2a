package account

import "time"

type User struct {
	Username     string    `json:"username" gorm:"primary_key;type:varchar(64)"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role" gorm:"type:varchar(16)"`
	WorkCenter   string    `json:"workCenter" gorm:"type:varchar(16)"`
	PasswordHash string    `json:"-"`
	CreateTime   time.Time `json:"createTime"`
}

func (User) TableName() string {
	return "users"
}

type UserCreation struct {
	Username   string `json:"username" binding:"required,lte=64"`
	Password   string `json:"password" binding:"required,gte=6,lte=72"`
	Name       string `json:"name" binding:"required,lte=64"`
	Email      string `json:"email" binding:"required,email"`
	Role       string `json:"role" binding:"required"`
	WorkCenter string `json:"workCenter" binding:"required"`
}

type ProfileUpdating struct {
	Name  string `json:"name" binding:"required,lte=64"`
	Email string `json:"email" binding:"required,email"`
}

type PasswordUpdating struct {
	OriginalPassword string `json:"originalPassword" binding:"required"`
	NewPassword      string `json:"newPassword" binding:"required,gte=6,lte=72"`
}
