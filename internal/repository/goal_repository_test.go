package repository

import (
	"testing"
	"time"

	"goalapp_backend/internal/model"
	"goalapp_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustCreateGoal(t *testing.T, repo *GoalRepository, goal *model.Goal) *model.Goal {
	t.Helper()
	if err := repo.Create(goal); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	return goal
}

func TestExpireIfActiveGuard(t *testing.T) {
	repo := NewGoalRepository(newTestDB(t))
	now := time.Now()
	past := now.Add(-time.Hour)

	goal := mustCreateGoal(t, repo, &model.Goal{
		Title: "overdue", Type: model.GoalTypeDaily,
		Status: model.GoalStatusActive, DueDate: &past,
	})

	ok, err := repo.ExpireIfActive(goal.ID, now)
	if err != nil || !ok {
		t.Fatalf("ExpireIfActive on active goal: ok=%v err=%v", ok, err)
	}

	// 第二次不再匹配，重复执行是无害的
	ok, err = repo.ExpireIfActive(goal.ID, now)
	if err != nil || ok {
		t.Fatalf("ExpireIfActive on expired goal: ok=%v err=%v", ok, err)
	}
}

func TestExpireIfActiveDoesNotClobberCompleted(t *testing.T) {
	repo := NewGoalRepository(newTestDB(t))
	now := time.Now()
	past := now.Add(-time.Hour)

	goal := mustCreateGoal(t, repo, &model.Goal{
		Title: "racing", Type: model.GoalTypeDaily,
		Status: model.GoalStatusActive, DueDate: &past,
	})

	// 模拟查询后、写入前用户完成了目标
	goal.MarkAsCompleted(now)
	if err := repo.Save(goal); err != nil {
		t.Fatalf("save: %v", err)
	}

	ok, err := repo.ExpireIfActive(goal.ID, now)
	if err != nil {
		t.Fatalf("ExpireIfActive: %v", err)
	}
	if ok {
		t.Fatal("conditional write expired a completed goal")
	}

	reloaded, err := repo.FindByID(goal.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != model.GoalStatusCompleted {
		t.Errorf("status = %s, want COMPLETED", reloaded.Status)
	}
}

func TestArchiveIfExpiredGuard(t *testing.T) {
	repo := NewGoalRepository(newTestDB(t))
	now := time.Now()

	active := mustCreateGoal(t, repo, &model.Goal{
		Title: "active", Type: model.GoalTypeWeekly, Status: model.GoalStatusActive,
	})
	expired := mustCreateGoal(t, repo, &model.Goal{
		Title: "expired", Type: model.GoalTypeWeekly, Status: model.GoalStatusExpired,
	})

	if ok, _ := repo.ArchiveIfExpired(active.ID, now); ok {
		t.Error("archived a non-expired goal")
	}
	if ok, err := repo.ArchiveIfExpired(expired.ID, now); err != nil || !ok {
		t.Errorf("ArchiveIfExpired: ok=%v err=%v", ok, err)
	}
}

func TestFindActiveOverdue(t *testing.T) {
	repo := NewGoalRepository(newTestDB(t))
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	overdue := mustCreateGoal(t, repo, &model.Goal{
		Title: "A", Type: model.GoalTypeDaily, Status: model.GoalStatusActive, DueDate: &past,
	})
	mustCreateGoal(t, repo, &model.Goal{
		Title: "B", Type: model.GoalTypeDaily, Status: model.GoalStatusActive, DueDate: &future,
	})
	mustCreateGoal(t, repo, &model.Goal{
		Title: "C", Type: model.GoalTypeDaily, Status: model.GoalStatusCompleted, DueDate: &past,
	})
	mustCreateGoal(t, repo, &model.Goal{
		Title: "D", Type: model.GoalTypeDaily, Status: model.GoalStatusActive,
	})

	goals, err := repo.FindActiveOverdue(now)
	if err != nil {
		t.Fatalf("FindActiveOverdue: %v", err)
	}
	if len(goals) != 1 || goals[0].ID != overdue.ID {
		t.Errorf("got %d goals, want only the overdue active one", len(goals))
	}
}

func TestFindExpiringSoonWindow(t *testing.T) {
	repo := NewGoalRepository(newTestDB(t))
	now := time.Now()
	until := now.Add(24 * time.Hour)

	inside := now.Add(2 * time.Hour)
	beyond := now.Add(25 * time.Hour)
	past := now.Add(-time.Hour)

	match := mustCreateGoal(t, repo, &model.Goal{
		Title: "inside", Type: model.GoalTypeDaily, Status: model.GoalStatusActive, DueDate: &inside,
	})
	mustCreateGoal(t, repo, &model.Goal{
		Title: "beyond", Type: model.GoalTypeDaily, Status: model.GoalStatusActive, DueDate: &beyond,
	})
	mustCreateGoal(t, repo, &model.Goal{
		Title: "past", Type: model.GoalTypeDaily, Status: model.GoalStatusActive, DueDate: &past,
	})
	mustCreateGoal(t, repo, &model.Goal{
		Title: "completed", Type: model.GoalTypeDaily, Status: model.GoalStatusCompleted, DueDate: &inside,
	})

	goals, err := repo.FindExpiringSoon(now, until)
	if err != nil {
		t.Fatalf("FindExpiringSoon: %v", err)
	}
	if len(goals) != 1 || goals[0].ID != match.ID {
		t.Errorf("got %d goals, want only the one inside the window", len(goals))
	}
}

func TestFindStaleExpired(t *testing.T) {
	db := newTestDB(t)
	repo := NewGoalRepository(db)
	now := time.Now()

	stale := mustCreateGoal(t, repo, &model.Goal{
		Title: "stale", Type: model.GoalTypeDaily, Status: model.GoalStatusExpired,
	})
	fresh := mustCreateGoal(t, repo, &model.Goal{
		Title: "fresh", Type: model.GoalTypeDaily, Status: model.GoalStatusExpired,
	})

	// UpdateColumn绕过钩子，构造陈旧的updated_at
	db.Model(&model.Goal{}).Where("id = ?", stale.ID).
		UpdateColumn("updated_at", now.Add(-25*time.Hour))
	db.Model(&model.Goal{}).Where("id = ?", fresh.ID).
		UpdateColumn("updated_at", now.Add(-time.Hour))

	goals, err := repo.FindStaleExpired(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("FindStaleExpired: %v", err)
	}
	if len(goals) != 1 || goals[0].ID != stale.ID {
		t.Errorf("got %d goals, want only the 25h-old one", len(goals))
	}
}

func TestFindStaleCompleted(t *testing.T) {
	repo := NewGoalRepository(newTestDB(t))
	now := time.Now()
	old := now.Add(-48 * time.Hour)
	recent := now.Add(-time.Hour)

	stale := mustCreateGoal(t, repo, &model.Goal{
		Title: "old done", Type: model.GoalTypeDaily,
		Status: model.GoalStatusCompleted, CompletedAt: &old,
	})
	mustCreateGoal(t, repo, &model.Goal{
		Title: "fresh done", Type: model.GoalTypeDaily,
		Status: model.GoalStatusCompleted, CompletedAt: &recent,
	})

	goals, err := repo.FindStaleCompleted(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("FindStaleCompleted: %v", err)
	}
	if len(goals) != 1 || goals[0].ID != stale.ID {
		t.Errorf("got %d goals, want only the stale one", len(goals))
	}
}

func TestCascadeDelete(t *testing.T) {
	repo := NewGoalRepository(newTestDB(t))

	root := mustCreateGoal(t, repo, &model.Goal{
		Title: "root", Type: model.GoalTypeYearly, Status: model.GoalStatusActive,
	})
	child := mustCreateGoal(t, repo, &model.Goal{
		Title: "child", Type: model.GoalTypeMonthly, Status: model.GoalStatusActive, ParentID: &root.ID,
	})
	grandchild := mustCreateGoal(t, repo, &model.Goal{
		Title: "grandchild", Type: model.GoalTypeWeekly, Status: model.GoalStatusActive, ParentID: &child.ID,
	})
	other := mustCreateGoal(t, repo, &model.Goal{
		Title: "unrelated", Type: model.GoalTypeYearly, Status: model.GoalStatusActive,
	})

	if err := repo.Delete(root.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	for _, id := range []uint{root.ID, child.ID, grandchild.ID} {
		if _, err := repo.FindByID(id); err == nil {
			t.Errorf("goal %d still exists after cascade delete", id)
		}
	}
	if _, err := repo.FindByID(other.ID); err != nil {
		t.Errorf("unrelated goal was deleted: %v", err)
	}
}

func TestFindRootsAndChildren(t *testing.T) {
	repo := NewGoalRepository(newTestDB(t))

	root := mustCreateGoal(t, repo, &model.Goal{
		Title: "root", Type: model.GoalTypeYearly, Status: model.GoalStatusActive,
	})
	mustCreateGoal(t, repo, &model.Goal{
		Title: "child", Type: model.GoalTypeMonthly, Status: model.GoalStatusActive, ParentID: &root.ID,
	})

	roots, err := repo.FindRoots()
	if err != nil {
		t.Fatalf("FindRoots: %v", err)
	}
	if len(roots) != 1 || roots[0].ID != root.ID {
		t.Errorf("FindRoots returned %d goals", len(roots))
	}

	children, err := repo.FindByParentID(root.ID)
	if err != nil {
		t.Fatalf("FindByParentID: %v", err)
	}
	if len(children) != 1 {
		t.Errorf("FindByParentID returned %d goals, want 1", len(children))
	}
}
