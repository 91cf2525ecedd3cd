package models

import (
	"time"
)

type Like struct {
	LikeID    uint      `gorm:"column:like_id;primaryKey;autoIncrement" json:"-"`
	PostID    uint      `gorm:"column:post_id;not null" json:"postId"`
	UserID    uint      `gorm:"column:user_id;not null" json:"userId"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"-"`
}
