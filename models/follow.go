package models

import (
	"time"
)

// A row means FollowerUser follows FollowingUser. The reverse direction is
// its own row, so a follow toggle is a single insert or delete.
type Follow struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerUserID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"followerUserId"`
	FollowingUserID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"followingUserId"`
	CreatedAt       time.Time `json:"createdAt"`

	FollowerUser  User `gorm:"foreignKey:FollowerUserID" json:"-"`
	FollowingUser User `gorm:"foreignKey:FollowingUserID" json:"-"`
}
