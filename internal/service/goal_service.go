package service

import (
	"time"

	"goalapp_backend/internal/model"
	"goalapp_backend/internal/repository"
	"goalapp_backend/internal/util"
)

// GoalService 处理目标的业务逻辑
type GoalService struct {
	GoalRepo *repository.GoalRepository
}

func NewGoalService(goalRepo *repository.GoalRepository) *GoalService {
	return &GoalService{GoalRepo: goalRepo}
}

// CreateGoalRequest 创建目标的请求结构
type CreateGoalRequest struct {
	Title             string     `json:"title" binding:"required,max=255"`
	Description       string     `json:"description" binding:"max=1000"`
	Type              string     `json:"type" binding:"required,oneof=LIFETIME LIFETIME_SUB YEARLY MONTHLY WEEKLY DAILY"`
	ParentID          *uint      `json:"parentId"`
	DueDate           *time.Time `json:"dueDate"`
	Priority          int        `json:"priority"`
	ReminderEnabled   bool       `json:"reminderEnabled"`
	ReminderFrequency string     `json:"reminderFrequency" binding:"max=50"`
}

// UpdateGoalRequest 更新目标的请求结构，nil字段不修改
type UpdateGoalRequest struct {
	Title             *string    `json:"title" binding:"omitempty,max=255"`
	Description       *string    `json:"description" binding:"omitempty,max=1000"`
	ParentID          *uint      `json:"parentId"`
	DueDate           *time.Time `json:"dueDate"`
	Priority          *int       `json:"priority"`
	ReminderEnabled   *bool      `json:"reminderEnabled"`
	ReminderFrequency *string    `json:"reminderFrequency" binding:"omitempty,max=50"`
}

// CreateGoal 创建目标，挂到父目标下时先校验层级规则
func (s *GoalService) CreateGoal(req CreateGoalRequest) (*model.Goal, error) {
	goalType := model.GoalType(req.Type)

	if req.ParentID != nil {
		parent, err := s.GoalRepo.FindByID(*req.ParentID)
		if err != nil {
			return nil, err
		}
		if !model.ValidChild(parent.Type, goalType) {
			return nil, util.ErrInvalidHierarchy
		}
	}

	priority := req.Priority
	if priority == 0 {
		priority = 1
	}

	goal := &model.Goal{
		Title:             req.Title,
		Description:       req.Description,
		Type:              goalType,
		Status:            model.GoalStatusActive,
		ParentID:          req.ParentID,
		DueDate:           req.DueDate,
		Priority:          priority,
		ReminderEnabled:   req.ReminderEnabled,
		ReminderFrequency: req.ReminderFrequency,
	}

	return goal, s.GoalRepo.Create(goal)
}

// UpdateGoal 更新目标，改挂父目标时重新校验层级规则
func (s *GoalService) UpdateGoal(id uint, req UpdateGoalRequest) (*model.Goal, error) {
	goal, err := s.GoalRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.GoalRepo.FindByID(*req.ParentID)
		if err != nil {
			return nil, err
		}
		if !model.ValidChild(parent.Type, goal.Type) {
			return nil, util.ErrInvalidHierarchy
		}
		goal.ParentID = req.ParentID
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.DueDate != nil {
		goal.DueDate = req.DueDate
	}
	if req.Priority != nil {
		goal.Priority = *req.Priority
	}
	if req.ReminderEnabled != nil {
		goal.ReminderEnabled = *req.ReminderEnabled
	}
	if req.ReminderFrequency != nil {
		goal.ReminderFrequency = *req.ReminderFrequency
	}

	return goal, s.GoalRepo.Save(goal)
}

func (s *GoalService) GetGoal(id uint) (*model.Goal, error) {
	return s.GoalRepo.FindByID(id)
}

func (s *GoalService) GetAllGoals() ([]model.Goal, error) {
	return s.GoalRepo.FindAll()
}

func (s *GoalService) GetGoalsByType(goalType model.GoalType) ([]model.Goal, error) {
	if !model.ValidGoalType(goalType) {
		return nil, util.ErrInvalidHierarchy
	}
	return s.GoalRepo.FindByType(goalType)
}

func (s *GoalService) GetGoalsByStatus(status model.GoalStatus) ([]model.Goal, error) {
	return s.GoalRepo.FindByStatus(status)
}

func (s *GoalService) GetRootGoals() ([]model.Goal, error) {
	return s.GoalRepo.FindRoots()
}

// GetChildGoals 获取直接子目标，目标不存在时返回ErrGoalNotFound
func (s *GoalService) GetChildGoals(id uint) ([]model.Goal, error) {
	if _, err := s.GoalRepo.FindByID(id); err != nil {
		return nil, err
	}
	return s.GoalRepo.FindByParentID(id)
}

// GetTodayGoals 截止日期在今天的目标
func (s *GoalService) GetTodayGoals(now time.Time) ([]model.Goal, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.GoalRepo.FindDueBetween(start, start.AddDate(0, 0, 1))
}

// GetProgress 目标进度百分比，由直接子目标推导
func (s *GoalService) GetProgress(id uint) (float64, error) {
	goal, err := s.GoalRepo.FindByID(id)
	if err != nil {
		return 0, err
	}
	children, err := s.GoalRepo.FindByParentID(id)
	if err != nil {
		return 0, err
	}
	return goal.ProgressPercentage(children), nil
}

// GetAvailableSubTypes 该目标下允许创建的子目标类型
func (s *GoalService) GetAvailableSubTypes(id uint) ([]model.GoalType, error) {
	goal, err := s.GoalRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return model.AvailableSubTypes(goal.Type), nil
}

// CompleteGoal 完成目标，重复调用刷新completedAt
func (s *GoalService) CompleteGoal(id uint) (*model.Goal, error) {
	goal, err := s.GoalRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	goal.MarkAsCompleted(time.Now())
	return goal, s.GoalRepo.Save(goal)
}

// UncompleteGoal 取消完成，回到ACTIVE
func (s *GoalService) UncompleteGoal(id uint) (*model.Goal, error) {
	goal, err := s.GoalRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	goal.MarkAsIncomplete()
	return goal, s.GoalRepo.Save(goal)
}

// ExpireGoal 手动标记过期，已完成的目标静默跳过
func (s *GoalService) ExpireGoal(id uint) (*model.Goal, error) {
	goal, err := s.GoalRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	goal.MarkAsExpired()
	return goal, s.GoalRepo.Save(goal)
}

// ArchiveGoal 手动归档
func (s *GoalService) ArchiveGoal(id uint) (*model.Goal, error) {
	goal, err := s.GoalRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	goal.Archive()
	return goal, s.GoalRepo.Save(goal)
}

// ExtendGoal 延长截止日期并重新激活
func (s *GoalService) ExtendGoal(id uint, days int) (*model.Goal, error) {
	goal, err := s.GoalRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := goal.ExtendDueDate(days); err != nil {
		return nil, err
	}
	return goal, s.GoalRepo.Save(goal)
}

// DeleteGoal 删除目标及全部后代
func (s *GoalService) DeleteGoal(id uint) error {
	if _, err := s.GoalRepo.FindByID(id); err != nil {
		return err
	}
	return s.GoalRepo.Delete(id)
}
