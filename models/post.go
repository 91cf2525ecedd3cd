package models

import (
	"time"

	"github.com/lib/pq"
)

type Post struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint           `gorm:"not null" json:"postedBy"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	Text      string         `gorm:"not null;type:varchar(500)" json:"text"`
	Img       string         `json:"img,omitempty"`
	// Stored in array-literal form so the column stays portable across
	// the Postgres deployment and the sqlite-backed tests.
	Hashtags  pq.StringArray `gorm:"type:text" json:"hashtags,omitempty"`
	Likes     []Like         `gorm:"foreignKey:PostID" json:"likes"`
	Replies   []Reply        `gorm:"foreignKey:PostID" json:"replies"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
