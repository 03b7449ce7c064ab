package service

import (
	"testing"
	"time"

	"goalapp_backend/internal/model"
	"goalapp_backend/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newExpirationService(t *testing.T) (*GoalExpirationService, *repository.GoalRepository, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	repo := repository.NewGoalRepository(db)
	svc := NewGoalExpirationService(repo, 24*time.Hour, zap.NewNop())
	return svc, repo, db
}

func TestCheckAndExpireGoals(t *testing.T) {
	svc, repo, _ := newExpirationService(t)
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	overdue := &model.Goal{Title: "A", Type: model.GoalTypeDaily, Status: model.GoalStatusActive, DueDate: &past}
	upcoming := &model.Goal{Title: "B", Type: model.GoalTypeDaily, Status: model.GoalStatusActive, DueDate: &future}
	if err := repo.Create(overdue); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(upcoming); err != nil {
		t.Fatalf("create: %v", err)
	}

	count, err := svc.CheckAndExpireGoals(now)
	if err != nil {
		t.Fatalf("CheckAndExpireGoals: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	a, _ := repo.FindByID(overdue.ID)
	if a.Status != model.GoalStatusExpired {
		t.Errorf("A status = %s, want EXPIRED", a.Status)
	}
	b, _ := repo.FindByID(upcoming.ID)
	if b.Status != model.GoalStatusActive {
		t.Errorf("B status = %s, want ACTIVE (untouched)", b.Status)
	}

	// 立即重跑是无操作：A已不再是ACTIVE
	count, err = svc.CheckAndExpireGoals(now)
	if err != nil {
		t.Fatalf("rerun: %v", err)
	}
	if count != 0 {
		t.Errorf("rerun count = %d, want 0", count)
	}
}

func TestCheckAndExpireEmptyIsNoop(t *testing.T) {
	svc, _, _ := newExpirationService(t)
	count, err := svc.CheckAndExpireGoals(time.Now())
	if err != nil {
		t.Fatalf("CheckAndExpireGoals: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestArchiveExpiredGoals(t *testing.T) {
	svc, repo, db := newExpirationService(t)
	now := time.Now()

	stale := &model.Goal{Title: "stale", Type: model.GoalTypeDaily, Status: model.GoalStatusExpired}
	fresh := &model.Goal{Title: "fresh", Type: model.GoalTypeDaily, Status: model.GoalStatusExpired}
	if err := repo.Create(stale); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(fresh); err != nil {
		t.Fatalf("create: %v", err)
	}

	db.Model(&model.Goal{}).Where("id = ?", stale.ID).
		UpdateColumn("updated_at", now.Add(-25*time.Hour))
	db.Model(&model.Goal{}).Where("id = ?", fresh.ID).
		UpdateColumn("updated_at", now.Add(-time.Hour))

	count, err := svc.ArchiveExpiredGoals(now)
	if err != nil {
		t.Fatalf("ArchiveExpiredGoals: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	s, _ := repo.FindByID(stale.ID)
	if s.Status != model.GoalStatusArchived {
		t.Errorf("stale status = %s, want ARCHIVED", s.Status)
	}
	f, _ := repo.FindByID(fresh.ID)
	if f.Status != model.GoalStatusExpired {
		t.Errorf("fresh status = %s, want EXPIRED (kept)", f.Status)
	}
}

func TestGetExpiringSoonGoals(t *testing.T) {
	svc, repo, _ := newExpirationService(t)
	soon := time.Now().Add(2 * time.Hour)
	later := time.Now().Add(48 * time.Hour)

	if err := repo.Create(&model.Goal{Title: "soon", Type: model.GoalTypeDaily, Status: model.GoalStatusActive, DueDate: &soon}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(&model.Goal{Title: "later", Type: model.GoalTypeDaily, Status: model.GoalStatusActive, DueDate: &later}); err != nil {
		t.Fatalf("create: %v", err)
	}

	goals, err := svc.GetExpiringSoonGoals(24)
	if err != nil {
		t.Fatalf("GetExpiringSoonGoals: %v", err)
	}
	if len(goals) != 1 || goals[0].Title != "soon" {
		t.Errorf("got %d goals, want only the one due within 24h", len(goals))
	}
}
