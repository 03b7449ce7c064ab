package service

import (
	"time"

	"goalapp_backend/internal/model"
	"goalapp_backend/internal/repository"
	"goalapp_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// GoalExpirationService 时间驱动的目标状态转换：
// 过期探测（每小时）与过期归档（每天，EXPIRED保留一段时间后归档）。
type GoalExpirationService struct {
	GoalRepo  *repository.GoalRepository
	Retention time.Duration
	log       *zap.Logger
}

func NewGoalExpirationService(goalRepo *repository.GoalRepository, retention time.Duration, log *zap.Logger) *GoalExpirationService {
	return &GoalExpirationService{
		GoalRepo:  goalRepo,
		Retention: retention,
		log:       log,
	}
}

// CheckAndExpireGoals 过期探测。查询仍为ACTIVE且已过截止日期的目标，
// 条件写入保证与用户并发完成不冲突：查询后被完成的目标不会被改成EXPIRED。
// 返回真正发生转换的数量。
func (s *GoalExpirationService) CheckAndExpireGoals(now time.Time) (int, error) {
	goals, err := s.GoalRepo.FindActiveOverdue(now)
	if err != nil {
		s.log.Error("expire check query failed", zap.Error(err))
		return 0, err
	}
	if len(goals) == 0 {
		return 0, nil
	}

	expired := 0
	for i := range goals {
		goal := &goals[i]
		if goal.IsCompleted() {
			continue
		}
		ok, err := s.GoalRepo.ExpireIfActive(goal.ID, now)
		if err != nil {
			s.log.Error("failed to expire goal",
				zap.Uint("goalId", goal.ID), zap.Error(err))
			continue
		}
		if ok {
			expired++
			s.log.Info("goal expired",
				zap.Uint("goalId", goal.ID),
				zap.String("title", goal.Title))
		}
	}

	if expired > 0 {
		monitoring.GoalsExpired.Add(float64(expired))
		s.log.Info("expire check completed",
			zap.Int("matched", len(goals)), zap.Int("expired", expired))
	}
	return expired, nil
}

// ArchiveExpiredGoals 归档EXPIRED状态超过保留期的目标，返回归档数量
func (s *GoalExpirationService) ArchiveExpiredGoals(now time.Time) (int, error) {
	threshold := now.Add(-s.Retention)
	goals, err := s.GoalRepo.FindStaleExpired(threshold)
	if err != nil {
		s.log.Error("archive check query failed", zap.Error(err))
		return 0, err
	}
	if len(goals) == 0 {
		return 0, nil
	}

	archived := 0
	for i := range goals {
		goal := &goals[i]
		ok, err := s.GoalRepo.ArchiveIfExpired(goal.ID, now)
		if err != nil {
			s.log.Error("failed to archive goal",
				zap.Uint("goalId", goal.ID), zap.Error(err))
			continue
		}
		if ok {
			archived++
			s.log.Info("goal archived",
				zap.Uint("goalId", goal.ID),
				zap.String("title", goal.Title))
		}
	}

	if archived > 0 {
		monitoring.GoalsArchived.Add(float64(archived))
		s.log.Info("archive check completed",
			zap.Int("matched", len(goals)), zap.Int("archived", archived))
	}
	return archived, nil
}

// GetExpiringSoonGoals 未来hours小时内到期的ACTIVE目标
func (s *GoalExpirationService) GetExpiringSoonGoals(hours int) ([]model.Goal, error) {
	now := time.Now()
	return s.GoalRepo.FindExpiringSoon(now, now.Add(time.Duration(hours)*time.Hour))
}

// GetStaleCompletedGoals 完成已超过hours小时的目标，仅供运维查询
func (s *GoalExpirationService) GetStaleCompletedGoals(hours int) ([]model.Goal, error) {
	threshold := time.Now().Add(-time.Duration(hours) * time.Hour)
	return s.GoalRepo.FindStaleCompleted(threshold)
}
