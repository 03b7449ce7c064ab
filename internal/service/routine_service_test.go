package service

import (
	"errors"
	"testing"
	"time"

	"goalapp_backend/internal/repository"
	"goalapp_backend/internal/util"
)

func newRoutineService(t *testing.T) *RoutineService {
	t.Helper()
	return NewRoutineService(repository.NewRoutineRepository(newTestDB(t)))
}

func TestCompleteTodayIsIdempotent(t *testing.T) {
	svc := newRoutineService(t)

	routine, err := svc.CreateRoutine(CreateRoutineRequest{Title: "run", Frequency: "DAILY"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	now := time.Now()
	first, err := svc.CompleteToday(routine.ID, now)
	if err != nil {
		t.Fatalf("first complete: %v", err)
	}

	// 当天第二次打卡返回同一条记录
	second, err := svc.CompleteToday(routine.ID, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("second complete: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second completion id = %d, want existing %d", second.ID, first.ID)
	}

	completions, err := svc.GetCompletions(routine.ID)
	if err != nil {
		t.Fatalf("GetCompletions: %v", err)
	}
	if len(completions) != 1 {
		t.Errorf("completions = %d, want 1", len(completions))
	}
}

func TestUncompleteTodayRemovesRecord(t *testing.T) {
	svc := newRoutineService(t)

	routine, err := svc.CreateRoutine(CreateRoutineRequest{Title: "read", Frequency: "DAILY"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	now := time.Now()
	if _, err := svc.CompleteToday(routine.ID, now); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := svc.UncompleteToday(routine.ID, now); err != nil {
		t.Fatalf("uncomplete: %v", err)
	}

	completions, err := svc.GetCompletions(routine.ID)
	if err != nil {
		t.Fatalf("GetCompletions: %v", err)
	}
	if len(completions) != 0 {
		t.Errorf("completions = %d, want 0", len(completions))
	}
}

func TestToggleActive(t *testing.T) {
	svc := newRoutineService(t)

	routine, err := svc.CreateRoutine(CreateRoutineRequest{Title: "meditate", Frequency: "WEEKLY"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	toggled, err := svc.ToggleActive(routine.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.IsActive {
		t.Error("routine still active after toggle")
	}

	active, err := svc.GetActiveRoutines()
	if err != nil {
		t.Fatalf("GetActiveRoutines: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active routines = %d, want 0", len(active))
	}
}

func TestDeleteRoutineRemovesCompletions(t *testing.T) {
	svc := newRoutineService(t)

	routine, err := svc.CreateRoutine(CreateRoutineRequest{Title: "gym", Frequency: "DAILY"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CompleteToday(routine.ID, time.Now()); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if err := svc.DeleteRoutine(routine.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetRoutine(routine.ID); !errors.Is(err, util.ErrRoutineNotFound) {
		t.Errorf("routine still present: %v", err)
	}
}
