package dao

import (
	"context"
	"errors"

	"github.com/Rasouli77/ellenovastyle/internal/model"

	"gorm.io/gorm"
)

type UserDao struct {
	db *gorm.DB
}

func NewUserDao(db *gorm.DB) *UserDao {
	return &UserDao{db: db}
}

func (d *UserDao) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := d.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *UserDao) GetByMobile(ctx context.Context, mobile string) (*model.User, error) {
	var user model.User
	err := d.db.WithContext(ctx).Where("mobile = ?", mobile).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *UserDao) CreateUser(ctx context.Context, user *model.User) error {
	return d.db.WithContext(ctx).Create(user).Error
}

// ActivateUser marks a user verified after a correct OTP.
func (d *UserDao) ActivateUser(ctx context.Context, userID int64) error {
	return d.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("is_active", true).Error
}

func (d *UserDao) UpdateUser(ctx context.Context, userID int64, updates map[string]interface{}) error {
	return d.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(updates).Error
}

func (d *UserDao) GetProfileByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	var profile model.Profile
	err := d.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// EnsureProfile creates an empty profile the first time a user verifies.
// The original shop did this in a persistence signal; here it is an explicit
// call from the auth flow.
func (d *UserDao) EnsureProfile(ctx context.Context, userID int64) (*model.Profile, error) {
	profile, err := d.GetProfileByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	profile = &model.Profile{UserID: userID}
	if err := d.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (d *UserDao) UpdateProfile(ctx context.Context, userID int64, updates map[string]interface{}) error {
	return d.db.WithContext(ctx).Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}

func (d *UserDao) GetCityByID(ctx context.Context, id int64) (*model.City, error) {
	var city model.City
	err := d.db.WithContext(ctx).First(&city, id).Error
	if err != nil {
		return nil, err
	}
	return &city, nil
}
