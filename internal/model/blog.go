package model

import "time"

type BlogPost struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	SeoTitle    string    `gorm:"size:255" json:"seo_title"`
	Meta        string    `gorm:"size:255" json:"meta"`
	Slug        string    `gorm:"size:255;uniqueIndex" json:"slug"`
	Canonical   string    `gorm:"size:255" json:"canonical"`
	Image       string    `gorm:"size:255" json:"image"`
	Content     string    `gorm:"type:text" json:"content"`
	DateCreated time.Time `gorm:"autoCreateTime;index" json:"date_created"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (*BlogPost) TableName() string {
	return "blog_posts"
}

// Comment is listed publicly only once an admin flips Approved.
type Comment struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BlogID      int64     `gorm:"not null;index" json:"blog_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	PhoneNumber string    `gorm:"size:255" json:"phone_number"`
	Comment     string    `gorm:"size:900;not null" json:"comment"`
	Approved    bool      `gorm:"default:false;not null;index" json:"approved"`
	DateCreated time.Time `gorm:"autoCreateTime" json:"date_created"`
}

func (*Comment) TableName() string {
	return "comments"
}
