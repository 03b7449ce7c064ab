package service

import (
	"errors"
	"time"

	"goalapp_backend/internal/model"
	"goalapp_backend/internal/repository"
	"goalapp_backend/internal/util"
)

// DeviceTokenService 设备令牌的注册与生命周期管理
type DeviceTokenService struct {
	TokenRepo *repository.DeviceTokenRepository
}

func NewDeviceTokenService(tokenRepo *repository.DeviceTokenRepository) *DeviceTokenService {
	return &DeviceTokenService{TokenRepo: tokenRepo}
}

// RegisterTokenRequest 注册设备令牌的请求结构
type RegisterTokenRequest struct {
	FcmToken   string `json:"fcmToken" binding:"required,max=500"`
	DeviceID   string `json:"deviceId" binding:"max=255"`
	DeviceName string `json:"deviceName" binding:"max=255"`
	Platform   string `json:"platform" binding:"max=20"`
}

// Register 按fcmToken去重的upsert：已存在则更新设备信息并重新激活
func (s *DeviceTokenService) Register(req RegisterTokenRequest) (*model.DeviceToken, error) {
	now := time.Now()

	existing, err := s.TokenRepo.FindByFcmToken(req.FcmToken)
	if err != nil && !errors.Is(err, util.ErrTokenNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.DeviceID = req.DeviceID
		existing.DeviceName = req.DeviceName
		existing.Platform = req.Platform
		existing.Activate()
		existing.MarkAsUsed(now)
		return existing, s.TokenRepo.Save(existing)
	}

	token := &model.DeviceToken{
		FcmToken:   req.FcmToken,
		DeviceID:   req.DeviceID,
		DeviceName: req.DeviceName,
		Platform:   req.Platform,
		IsActive:   true,
		LastUsedAt: &now,
	}
	return token, s.TokenRepo.Create(token)
}

func (s *DeviceTokenService) GetToken(id string) (*model.DeviceToken, error) {
	return s.TokenRepo.FindByID(id)
}

func (s *DeviceTokenService) GetByFcmToken(fcmToken string) (*model.DeviceToken, error) {
	return s.TokenRepo.FindByFcmToken(fcmToken)
}

func (s *DeviceTokenService) GetActiveTokens() ([]model.DeviceToken, error) {
	return s.TokenRepo.FindActive()
}

// Deactivate 注销设备：仅停用，不删除记录
func (s *DeviceTokenService) Deactivate(id string) (*model.DeviceToken, error) {
	token, err := s.TokenRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	token.Deactivate()
	return token, s.TokenRepo.Save(token)
}
