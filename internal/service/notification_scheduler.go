package service

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"goalapp_backend/internal/repository"
	"goalapp_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// 提醒层级：每日提醒（24小时窗口）与紧急提醒（3小时窗口）
const (
	TierDaily  = "daily"
	TierUrgent = "urgent"
)

// NotificationScheduler 到期提醒派发。按窗口查询即将到期的目标，
// 过滤reminderEnabled，对(目标×活跃设备)做笛卡尔发送。
// 单条发送失败只记录日志，不中断本轮。
type NotificationScheduler struct {
	GoalRepo  *repository.GoalRepository
	TokenRepo *repository.DeviceTokenRepository
	Ledger    repository.NotificationLedger
	Notifier  Notifier
	log       *zap.Logger
}

func NewNotificationScheduler(
	goalRepo *repository.GoalRepository,
	tokenRepo *repository.DeviceTokenRepository,
	ledger repository.NotificationLedger,
	notifier Notifier,
	log *zap.Logger,
) *NotificationScheduler {
	return &NotificationScheduler{
		GoalRepo:  goalRepo,
		TokenRepo: tokenRepo,
		Ledger:    ledger,
		Notifier:  notifier,
		log:       log,
	}
}

// SendExpirationWarnings 执行一轮指定层级的到期提醒。
// horizon是提醒窗口（截止日期落在(now, now+horizon]的目标），
// 同时用作去重账本的TTL。返回(命中的目标数, 成功发送数)。
func (s *NotificationScheduler) SendExpirationWarnings(tier string, horizon time.Duration, now time.Time) (int, int) {
	goals, err := s.GoalRepo.FindExpiringSoon(now, now.Add(horizon))
	if err != nil {
		s.log.Error("expiring-soon query failed",
			zap.String("tier", tier), zap.Error(err))
		return 0, 0
	}

	tokens, err := s.TokenRepo.FindActive()
	if err != nil {
		s.log.Error("failed to load device tokens",
			zap.String("tier", tier), zap.Error(err))
		return 0, 0
	}

	matched := 0
	sent := 0
	for i := range goals {
		goal := &goals[i]
		if !goal.ReminderEnabled {
			continue
		}
		matched++

		hoursLeft := hoursUntil(*goal.DueDate, now)
		title, body := warningMessage(tier, goal.Title, hoursLeft)
		data := map[string]string{
			"type":       "GOAL_EXPIRING",
			"goal_title": goal.Title,
			"hours_left": strconv.Itoa(hoursLeft),
		}

		for _, token := range tokens {
			if !s.Ledger.Acquire(tier, goal.ID, token.ID, horizon) {
				continue
			}
			if s.Notifier.Send(token.FcmToken, title, body, data) {
				sent++
				monitoring.NotificationsSent.WithLabelValues(tier).Inc()
				if err := s.TokenRepo.Touch(token.ID, now); err != nil {
					s.log.Warn("failed to touch device token",
						zap.String("tokenId", token.ID), zap.Error(err))
				}
			} else {
				monitoring.NotificationsFailed.WithLabelValues(tier).Inc()
				s.log.Warn("notification delivery failed",
					zap.String("tier", tier),
					zap.Uint("goalId", goal.ID),
					zap.String("tokenId", token.ID))
			}
		}
	}

	if matched > 0 {
		s.log.Info("expiration warnings dispatched",
			zap.String("tier", tier),
			zap.Int("goals", matched),
			zap.Int("sent", sent))
	}
	return matched, sent
}

// SendTestNotification 向单个设备发送测试推送
func (s *NotificationScheduler) SendTestNotification(tokenID string) (bool, error) {
	token, err := s.TokenRepo.FindByID(tokenID)
	if err != nil {
		return false, err
	}
	ok := s.Notifier.Send(token.FcmToken, "Test notification",
		"Push notifications are working.", map[string]string{"type": "TEST"})
	if ok {
		if err := s.TokenRepo.Touch(token.ID, time.Now()); err != nil {
			s.log.Warn("failed to touch device token",
				zap.String("tokenId", token.ID), zap.Error(err))
		}
	}
	return ok, nil
}

// hoursUntil 距离截止剩余的整小时数，向上取整，最少1
func hoursUntil(due, now time.Time) int {
	hours := int(math.Ceil(due.Sub(now).Hours()))
	if hours < 1 {
		hours = 1
	}
	return hours
}

func warningMessage(tier, goalTitle string, hoursLeft int) (string, string) {
	if tier == TierUrgent {
		return "Goal deadline approaching!",
			fmt.Sprintf("\"%s\" expires in %d hours. Finish it now!", goalTitle, hoursLeft)
	}
	return "Goal expiring soon",
		fmt.Sprintf("\"%s\" expires in %d hours.", goalTitle, hoursLeft)
}
