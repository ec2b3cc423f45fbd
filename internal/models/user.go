// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Name         string     `json:"name" gorm:"size:100;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone        string     `json:"phone" gorm:"size:20"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	UserType     UserType   `json:"user_type" gorm:"type:varchar(20);not null"`
	ShopName     string     `json:"shop_name,omitempty" gorm:"size:150"`
	Location     Location   `json:"location" gorm:"embedded;embeddedPrefix:loc_"`
	Status       UserStatus `json:"status" gorm:"type:varchar(20);default:'active'"`

	// Relationships
	Requests  []PartRequest `json:"requests,omitempty" gorm:"foreignKey:CustomerID"`
	Parts     []SparePart   `json:"parts,omitempty" gorm:"foreignKey:ShopkeeperID"`
	Favorites []Favorite    `json:"favorites,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
