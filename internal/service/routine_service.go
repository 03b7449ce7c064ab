package service

import (
	"time"

	"goalapp_backend/internal/model"
	"goalapp_backend/internal/repository"
)

// RoutineService 日常习惯的业务逻辑
type RoutineService struct {
	RoutineRepo *repository.RoutineRepository
}

func NewRoutineService(routineRepo *repository.RoutineRepository) *RoutineService {
	return &RoutineService{RoutineRepo: routineRepo}
}

// CreateRoutineRequest 创建习惯的请求结构
type CreateRoutineRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"max=1000"`
	Frequency   string `json:"frequency" binding:"required,oneof=DAILY WEEKLY MONTHLY"`
}

// UpdateRoutineRequest 更新习惯的请求结构，nil字段不修改
type UpdateRoutineRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Frequency   *string `json:"frequency" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY"`
}

func (s *RoutineService) CreateRoutine(req CreateRoutineRequest) (*model.Routine, error) {
	routine := &model.Routine{
		Title:       req.Title,
		Description: req.Description,
		Frequency:   model.RoutineFrequency(req.Frequency),
		IsActive:    true,
	}
	return routine, s.RoutineRepo.Create(routine)
}

func (s *RoutineService) UpdateRoutine(id uint, req UpdateRoutineRequest) (*model.Routine, error) {
	routine, err := s.RoutineRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		routine.Title = *req.Title
	}
	if req.Description != nil {
		routine.Description = *req.Description
	}
	if req.Frequency != nil {
		routine.Frequency = model.RoutineFrequency(*req.Frequency)
	}

	return routine, s.RoutineRepo.Save(routine)
}

func (s *RoutineService) GetRoutine(id uint) (*model.Routine, error) {
	return s.RoutineRepo.FindByID(id)
}

func (s *RoutineService) GetAllRoutines() ([]model.Routine, error) {
	return s.RoutineRepo.FindAll()
}

func (s *RoutineService) GetActiveRoutines() ([]model.Routine, error) {
	return s.RoutineRepo.FindActive()
}

// ToggleActive 启用/停用习惯
func (s *RoutineService) ToggleActive(id uint) (*model.Routine, error) {
	routine, err := s.RoutineRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	routine.IsActive = !routine.IsActive
	return routine, s.RoutineRepo.Save(routine)
}

// CompleteToday 今日打卡。当天已打卡时直接返回已有记录（幂等）。
func (s *RoutineService) CompleteToday(id uint, now time.Time) (*model.RoutineCompletion, error) {
	if _, err := s.RoutineRepo.FindByID(id); err != nil {
		return nil, err
	}

	day := startOfDay(now)
	existing, err := s.RoutineRepo.FindCompletionOn(id, day)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	completion := &model.RoutineCompletion{
		RoutineID:   id,
		CompletedOn: day,
	}
	return completion, s.RoutineRepo.CreateCompletion(completion)
}

// UncompleteToday 撤销今日打卡
func (s *RoutineService) UncompleteToday(id uint, now time.Time) error {
	if _, err := s.RoutineRepo.FindByID(id); err != nil {
		return err
	}
	return s.RoutineRepo.DeleteCompletionOn(id, startOfDay(now))
}

func (s *RoutineService) GetCompletions(id uint) ([]model.RoutineCompletion, error) {
	if _, err := s.RoutineRepo.FindByID(id); err != nil {
		return nil, err
	}
	return s.RoutineRepo.FindCompletions(id)
}

// DeleteRoutine 删除习惯及其打卡记录
func (s *RoutineService) DeleteRoutine(id uint) error {
	if _, err := s.RoutineRepo.FindByID(id); err != nil {
		return err
	}
	return s.RoutineRepo.Delete(id)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
