package models

import (
	"time"
)

type User struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
	Name       string    `gorm:"not null" json:"name"`
	Email      string    `gorm:"unique;not null" json:"email"`
	Username   string    `gorm:"unique;not null" json:"username"`
	Password   string    `gorm:"not null" json:"-"` // Don't expose password in JSON
	Bio        string    `json:"bio"`
	ProfilePic string    `json:"profilePic"`
	Posts      []Post    `json:"-" gorm:"foreignKey:UserID"`
	Replies    []Reply   `json:"-" gorm:"foreignKey:UserID"`
	Likes      []Like    `json:"-" gorm:"foreignKey:UserID"`
	Followers  []User    `json:"-" gorm:"many2many:follows;foreignKey:ID;joinForeignKey:FollowingUserID;References:ID;joinReferences:FollowerUserID"`
	Following  []User    `json:"-" gorm:"many2many:follows;foreignKey:ID;joinForeignKey:FollowerUserID;References:ID;joinReferences:FollowingUserID"`
}
