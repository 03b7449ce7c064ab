package repository

import (
	"errors"
	"time"

	"goalapp_backend/internal/model"
	"goalapp_backend/internal/util"

	"gorm.io/gorm"
)

// DeviceTokenRepository 设备令牌持久化
type DeviceTokenRepository struct {
	DB *gorm.DB
}

func NewDeviceTokenRepository(db *gorm.DB) *DeviceTokenRepository {
	return &DeviceTokenRepository{DB: db}
}

func (r *DeviceTokenRepository) Create(token *model.DeviceToken) error {
	return r.DB.Create(token).Error
}

func (r *DeviceTokenRepository) Save(token *model.DeviceToken) error {
	return r.DB.Save(token).Error
}

func (r *DeviceTokenRepository) FindByID(id string) (*model.DeviceToken, error) {
	var token model.DeviceToken
	err := r.DB.First(&token, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *DeviceTokenRepository) FindByFcmToken(fcmToken string) (*model.DeviceToken, error) {
	var token model.DeviceToken
	err := r.DB.First(&token, "fcm_token = ?", fcmToken).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// FindActive 所有仍在推送范围内的令牌
func (r *DeviceTokenRepository) FindActive() ([]model.DeviceToken, error) {
	var tokens []model.DeviceToken
	err := r.DB.Where("is_active = ?", true).Find(&tokens).Error
	return tokens, err
}

// Touch 刷新最近使用时间，尽力而为，丢失更新可接受
func (r *DeviceTokenRepository) Touch(id string, now time.Time) error {
	return r.DB.Model(&model.DeviceToken{}).
		Where("id = ?", id).
		Update("last_used_at", now).Error
}
