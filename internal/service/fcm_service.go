package service

import (
	"context"
	"time"

	"goalapp_backend/internal/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Notifier 推送通道抽象，Send返回本次投递是否成功
type Notifier interface {
	Send(token, title, body string, data map[string]string) bool
}

// FcmService Firebase Cloud Messaging推送。
// 未配置凭证时client为nil，所有发送调用记录日志后跳过（开发环境）。
type FcmService struct {
	client *messaging.Client
	log    *zap.Logger
}

func NewFcmService(cfg *config.FirebaseConfig, log *zap.Logger) (*FcmService, error) {
	s := &FcmService{log: log}

	if !cfg.Enabled || cfg.CredentialsFile == "" {
		log.Info("FCM disabled, notifications will be skipped")
		return s, nil
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, err
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, err
	}

	s.client = client
	log.Info("FCM client initialized")
	return s, nil
}

// Enabled 是否真正连上了FCM
func (s *FcmService) Enabled() bool {
	return s.client != nil
}

func (s *FcmService) Send(token, title, body string, data map[string]string) bool {
	if s.client == nil {
		s.log.Debug("FCM disabled, skipping notification",
			zap.String("title", title))
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	id, err := s.client.Send(ctx, msg)
	if err != nil {
		s.log.Warn("FCM send failed", zap.Error(err))
		return false
	}

	s.log.Debug("FCM message sent", zap.String("messageId", id))
	return true
}
