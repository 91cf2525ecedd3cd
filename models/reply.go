package models

import (
	"time"
)

// Username and UserProfilePic are snapshots of the author's display fields
// taken when the reply is written; they are not refreshed if the author
// later changes their profile.
type Reply struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID         uint      `gorm:"not null" json:"postId"`
	UserID         uint      `gorm:"not null" json:"userId"`
	Text           string    `gorm:"not null" json:"text"`
	Username       string    `json:"username"`
	UserProfilePic string    `json:"userProfilePic"`
	CreatedAt      time.Time `json:"createdAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"-"`
}
