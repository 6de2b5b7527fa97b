package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/Rasouli77/ellenovastyle/internal/client/kavenegar"
	"github.com/Rasouli77/ellenovastyle/internal/dao"
	"github.com/Rasouli77/ellenovastyle/internal/model"
	"github.com/Rasouli77/ellenovastyle/pkg/logger"
	"github.com/Rasouli77/ellenovastyle/pkg/utils"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrMobileInvalid = errors.New("mobile number invalid")
	ErrOTPExpired    = errors.New("otp expired")
	ErrOTPWrong      = errors.New("otp wrong")
	ErrUserNotFound  = errors.New("user not found")
)

var mobilePattern = regexp.MustCompile(`^09\d{9}$`)

// AuthService implements the passwordless login: a 4-digit code is texted to
// the mobile number and held in Redis for a short window. Verifying the code
// activates the account, ensures a profile and issues a JWT.
type AuthService struct {
	userDao *dao.UserDao
	rdb     redis.UniversalClient
	sms     *kavenegar.Client
	jwt     *utils.JWTUtil
	otpTTL  time.Duration
}

func NewAuthService(userDao *dao.UserDao, rdb redis.UniversalClient, sms *kavenegar.Client, jwt *utils.JWTUtil, otpTTL time.Duration) *AuthService {
	if otpTTL <= 0 {
		otpTTL = 30 * time.Second
	}
	return &AuthService{userDao: userDao, rdb: rdb, sms: sms, jwt: jwt, otpTTL: otpTTL}
}

func otpKey(mobile string) string {
	return "otp:" + mobile
}

// RequestOTP creates the user on first contact (inactive until verified) and
// texts a fresh code. SMS delivery problems are logged, not surfaced; the
// shopper can always request again.
func (s *AuthService) RequestOTP(ctx context.Context, mobile, name string) error {
	if !mobilePattern.MatchString(mobile) {
		return ErrMobileInvalid
	}

	_, err := s.userDao.GetByMobile(ctx, mobile)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.userDao.CreateUser(ctx, &model.User{Mobile: mobile, Name: name})
	}
	if err != nil {
		return err
	}

	code := utils.RandomOTP()
	if err := s.rdb.Set(ctx, otpKey(mobile), code, s.otpTTL).Err(); err != nil {
		return err
	}

	if err := s.sms.SendOTP(ctx, mobile, code); err != nil {
		logger.Error("otp sms delivery failed", "mobile", mobile, "error", err)
	}
	return nil
}

// VerifyOTP checks the code against Redis and logs the user in. The code is
// single-use: it is deleted the moment it matches.
func (s *AuthService) VerifyOTP(ctx context.Context, mobile, code string) (string, *model.User, error) {
	stored, err := s.rdb.Get(ctx, otpKey(mobile)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil, ErrOTPExpired
		}
		return "", nil, err
	}
	if stored != code {
		return "", nil, ErrOTPWrong
	}
	_ = s.rdb.Del(ctx, otpKey(mobile)).Err()

	user, err := s.userDao.GetByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, err
	}
	if !user.IsActive {
		if err := s.userDao.ActivateUser(ctx, user.ID); err != nil {
			return "", nil, err
		}
		user.IsActive = true
	}
	if _, err := s.userDao.EnsureProfile(ctx, user.ID); err != nil {
		return "", nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Mobile, user.IsStaff)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetProfile returns the shipping profile for the account page.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*model.Profile, error) {
	profile, err := s.userDao.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.userDao.EnsureProfile(ctx, userID)
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile saves the shipping details used to prefill checkout.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, name, address string, provinceID, cityID *int64) error {
	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if address != "" {
		updates["address"] = address
	}
	if provinceID != nil {
		updates["province_id"] = *provinceID
	}
	if cityID != nil {
		updates["city_id"] = *cityID
	}
	if len(updates) == 0 {
		return nil
	}
	return s.userDao.UpdateProfile(ctx, userID, updates)
}
