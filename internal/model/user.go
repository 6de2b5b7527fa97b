package model

import "time"

// User logs in with a mobile number and an SMS one-time code; there is no
// password-based flow.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Mobile    string    `gorm:"size:11;not null;uniqueIndex" json:"mobile"`
	Name      string    `gorm:"size:150" json:"name"`
	IsActive  bool      `gorm:"default:false;not null" json:"is_active"`
	IsStaff   bool      `gorm:"default:false;not null" json:"is_staff"`
	IsVendor  bool      `gorm:"default:false;not null" json:"is_vendor"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (*User) TableName() string {
	return "users"
}

type Province struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title string `gorm:"size:255;not null;uniqueIndex" json:"title"`
}

func (*Province) TableName() string {
	return "provinces"
}

type City struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string `gorm:"size:255;not null" json:"title"`
	ProvinceID int64  `gorm:"not null;index" json:"province_id"`
}

func (*City) TableName() string {
	return "cities"
}

// Profile carries the shipping details snapshotted onto orders at checkout.
type Profile struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	ProvinceID *int64    `json:"province_id"`
	CityID     *int64    `json:"city_id"`
	Name       string    `gorm:"size:500" json:"name"`
	Address    string    `gorm:"size:500" json:"address"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (*Profile) TableName() string {
	return "profiles"
}
