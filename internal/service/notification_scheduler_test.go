package service

import (
	"fmt"
	"testing"
	"time"

	"goalapp_backend/internal/model"
	"goalapp_backend/internal/repository"

	"go.uber.org/zap"
)

type sentCall struct {
	token string
	title string
	body  string
	data  map[string]string
}

// fakeNotifier 记录所有发送调用，可配置失败
type fakeNotifier struct {
	calls []sentCall
	fail  bool
}

func (f *fakeNotifier) Send(token, title, body string, data map[string]string) bool {
	f.calls = append(f.calls, sentCall{token, title, body, data})
	return !f.fail
}

// memoryLedger 进程内的去重账本实现，测试用
type memoryLedger struct {
	seen map[string]bool
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{seen: make(map[string]bool)}
}

func (l *memoryLedger) Acquire(tier string, goalID uint, tokenID string, ttl time.Duration) bool {
	key := fmt.Sprintf("%s:%d:%s", tier, goalID, tokenID)
	if l.seen[key] {
		return false
	}
	l.seen[key] = true
	return true
}

func newNotificationTestEnv(t *testing.T, notifier Notifier, ledger repository.NotificationLedger) (*NotificationScheduler, *repository.GoalRepository, *repository.DeviceTokenRepository) {
	t.Helper()
	db := newTestDB(t)
	goalRepo := repository.NewGoalRepository(db)
	tokenRepo := repository.NewDeviceTokenRepository(db)
	sched := NewNotificationScheduler(goalRepo, tokenRepo, ledger, notifier, zap.NewNop())
	return sched, goalRepo, tokenRepo
}

func TestWarningsSkipReminderDisabled(t *testing.T) {
	notifier := &fakeNotifier{}
	sched, goalRepo, tokenRepo := newNotificationTestEnv(t, notifier, repository.NopNotificationLedger{})
	now := time.Now()
	due := now.Add(2 * time.Hour)

	if err := goalRepo.Create(&model.Goal{
		Title: "quiet", Type: model.GoalTypeDaily, Status: model.GoalStatusActive,
		DueDate: &due, ReminderEnabled: false,
	}); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if err := tokenRepo.Create(&model.DeviceToken{FcmToken: "tok", IsActive: true}); err != nil {
		t.Fatalf("create token: %v", err)
	}

	matched, sent := sched.SendExpirationWarnings(TierDaily, 24*time.Hour, now)
	if matched != 0 || sent != 0 {
		t.Errorf("matched=%d sent=%d, want 0/0 for reminder-disabled goal", matched, sent)
	}
	if len(notifier.calls) != 0 {
		t.Errorf("notifier called %d times, want 0", len(notifier.calls))
	}
}

func TestWarningsFanOut(t *testing.T) {
	notifier := &fakeNotifier{}
	sched, goalRepo, tokenRepo := newNotificationTestEnv(t, notifier, repository.NopNotificationLedger{})
	now := time.Now()
	due := now.Add(2 * time.Hour)

	if err := goalRepo.Create(&model.Goal{
		Title: "ship release", Type: model.GoalTypeDaily, Status: model.GoalStatusActive,
		DueDate: &due, ReminderEnabled: true,
	}); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	token := &model.DeviceToken{FcmToken: "tok-1", IsActive: true}
	if err := tokenRepo.Create(token); err != nil {
		t.Fatalf("create token: %v", err)
	}
	if err := tokenRepo.Create(&model.DeviceToken{FcmToken: "tok-off", IsActive: false}); err != nil {
		t.Fatalf("create token: %v", err)
	}

	matched, sent := sched.SendExpirationWarnings(TierDaily, 24*time.Hour, now)
	if matched != 1 || sent != 1 {
		t.Fatalf("matched=%d sent=%d, want 1/1", matched, sent)
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("notifier called %d times, want 1 (inactive token excluded)", len(notifier.calls))
	}

	call := notifier.calls[0]
	if call.token != "tok-1" {
		t.Errorf("sent to %q, want tok-1", call.token)
	}
	if call.data["type"] != "GOAL_EXPIRING" {
		t.Errorf("payload type = %q", call.data["type"])
	}
	if call.data["goal_title"] != "ship release" {
		t.Errorf("payload goal_title = %q", call.data["goal_title"])
	}
	if call.data["hours_left"] != "2" {
		t.Errorf("payload hours_left = %q, want 2", call.data["hours_left"])
	}

	// 成功投递后刷新令牌的最近使用时间
	reloaded, err := tokenRepo.FindByID(token.ID)
	if err != nil {
		t.Fatalf("reload token: %v", err)
	}
	if reloaded.LastUsedAt == nil {
		t.Error("lastUsedAt not touched after successful delivery")
	}
}

func TestWarningsDedupWithinWindow(t *testing.T) {
	notifier := &fakeNotifier{}
	sched, goalRepo, tokenRepo := newNotificationTestEnv(t, notifier, newMemoryLedger())
	now := time.Now()
	due := now.Add(2 * time.Hour)

	if err := goalRepo.Create(&model.Goal{
		Title: "g", Type: model.GoalTypeDaily, Status: model.GoalStatusActive,
		DueDate: &due, ReminderEnabled: true,
	}); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if err := tokenRepo.Create(&model.DeviceToken{FcmToken: "tok", IsActive: true}); err != nil {
		t.Fatalf("create token: %v", err)
	}

	_, sent := sched.SendExpirationWarnings(TierDaily, 24*time.Hour, now)
	if sent != 1 {
		t.Fatalf("first run sent = %d, want 1", sent)
	}

	// 同层级窗口内重跑被账本拦下
	_, sent = sched.SendExpirationWarnings(TierDaily, 24*time.Hour, now)
	if sent != 0 {
		t.Errorf("second run sent = %d, want 0", sent)
	}

	// 不同层级不互相抑制（渐进升级）
	_, sent = sched.SendExpirationWarnings(TierUrgent, 3*time.Hour, now)
	if sent != 1 {
		t.Errorf("urgent tier sent = %d, want 1", sent)
	}
}

func TestWarningsContinueOnDeliveryFailure(t *testing.T) {
	notifier := &fakeNotifier{fail: true}
	sched, goalRepo, tokenRepo := newNotificationTestEnv(t, notifier, repository.NopNotificationLedger{})
	now := time.Now()
	due := now.Add(time.Hour)

	for i := 0; i < 2; i++ {
		if err := goalRepo.Create(&model.Goal{
			Title: fmt.Sprintf("g%d", i), Type: model.GoalTypeDaily,
			Status: model.GoalStatusActive, DueDate: &due, ReminderEnabled: true,
		}); err != nil {
			t.Fatalf("create goal: %v", err)
		}
	}
	token := &model.DeviceToken{FcmToken: "tok", IsActive: true}
	if err := tokenRepo.Create(token); err != nil {
		t.Fatalf("create token: %v", err)
	}

	matched, sent := sched.SendExpirationWarnings(TierUrgent, 3*time.Hour, now)
	if matched != 2 {
		t.Errorf("matched = %d, want 2", matched)
	}
	if sent != 0 {
		t.Errorf("sent = %d, want 0 when all deliveries fail", sent)
	}
	// 单条失败不中断本轮，每个目标仍尝试投递
	if len(notifier.calls) != 2 {
		t.Errorf("notifier called %d times, want 2", len(notifier.calls))
	}

	reloaded, err := tokenRepo.FindByID(token.ID)
	if err != nil {
		t.Fatalf("reload token: %v", err)
	}
	if reloaded.LastUsedAt != nil {
		t.Error("lastUsedAt touched despite delivery failure")
	}
}
