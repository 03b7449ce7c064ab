package repository

import (
	"errors"
	"time"

	"goalapp_backend/internal/model"
	"goalapp_backend/internal/util"

	"gorm.io/gorm"
)

// GoalRepository 目标持久化，调度相关查询与条件写入都在这里
type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

func (r *GoalRepository) Create(goal *model.Goal) error {
	return r.DB.Create(goal).Error
}

func (r *GoalRepository) Save(goal *model.Goal) error {
	return r.DB.Save(goal).Error
}

func (r *GoalRepository) FindByID(id uint) (*model.Goal, error) {
	var goal model.Goal
	err := r.DB.First(&goal, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *GoalRepository) FindAll() ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Order("priority desc, created_at asc").Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) FindByType(goalType model.GoalType) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Where("type = ?", goalType).Order("created_at asc").Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) FindByStatus(status model.GoalStatus) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Where("status = ?", status).Order("updated_at desc").Find(&goals).Error
	return goals, err
}

// FindRoots 顶层目标（无父目标）
func (r *GoalRepository) FindRoots() ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Where("parent_id IS NULL").Order("priority desc, created_at asc").Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) FindByParentID(parentID uint) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Where("parent_id = ?", parentID).Order("created_at asc").Find(&goals).Error
	return goals, err
}

// FindDueBetween 截止日期落在[from, to)的目标，今日目标查询用
func (r *GoalRepository) FindDueBetween(from, to time.Time) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Where("due_date >= ? AND due_date < ?", from, to).
		Order("due_date asc").Find(&goals).Error
	return goals, err
}

// FindActiveOverdue 探测新过期：ACTIVE且截止日期已过
func (r *GoalRepository) FindActiveOverdue(now time.Time) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Where("status = ? AND due_date IS NOT NULL AND due_date < ?",
		model.GoalStatusActive, now).Find(&goals).Error
	return goals, err
}

// FindExpiringSoon 截止日期落在(now, until]的ACTIVE目标
func (r *GoalRepository) FindExpiringSoon(now, until time.Time) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Where("status = ? AND due_date IS NOT NULL AND due_date > ? AND due_date <= ?",
		model.GoalStatusActive, now, until).Find(&goals).Error
	return goals, err
}

// FindStaleExpired EXPIRED超过保留期（updated_at早于threshold）的目标
func (r *GoalRepository) FindStaleExpired(threshold time.Time) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Where("status = ? AND updated_at < ?",
		model.GoalStatusExpired, threshold).Find(&goals).Error
	return goals, err
}

// FindStaleCompleted COMPLETED已久的目标，供运维查询，不做自动归档
func (r *GoalRepository) FindStaleCompleted(threshold time.Time) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Where("status = ? AND completed_at IS NOT NULL AND completed_at < ?",
		model.GoalStatusCompleted, threshold).Find(&goals).Error
	return goals, err
}

// ExpireIfActive 条件写入：仅当目标仍为ACTIVE时过期。
// 返回是否真正发生了状态转换，用户并发完成目标时保证不被误伤。
func (r *GoalRepository) ExpireIfActive(id uint, now time.Time) (bool, error) {
	result := r.DB.Model(&model.Goal{}).
		Where("id = ? AND status = ?", id, model.GoalStatusActive).
		Updates(map[string]interface{}{
			"status":     model.GoalStatusExpired,
			"updated_at": now,
		})
	return result.RowsAffected > 0, result.Error
}

// ArchiveIfExpired 条件写入：仅当目标仍为EXPIRED时归档
func (r *GoalRepository) ArchiveIfExpired(id uint, now time.Time) (bool, error) {
	result := r.DB.Model(&model.Goal{}).
		Where("id = ? AND status = ?", id, model.GoalStatusExpired).
		Updates(map[string]interface{}{
			"status":     model.GoalStatusArchived,
			"updated_at": now,
		})
	return result.RowsAffected > 0, result.Error
}

// Delete 删除目标及其全部后代，单个事务内完成
func (r *GoalRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		ids, err := collectDescendants(tx, id)
		if err != nil {
			return err
		}
		ids = append(ids, id)
		return tx.Delete(&model.Goal{}, ids).Error
	})
}

// collectDescendants 逐层收集后代ID
func collectDescendants(tx *gorm.DB, id uint) ([]uint, error) {
	var all []uint
	frontier := []uint{id}
	for len(frontier) > 0 {
		var childIDs []uint
		err := tx.Model(&model.Goal{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &childIDs).Error
		if err != nil {
			return nil, err
		}
		all = append(all, childIDs...)
		frontier = childIDs
	}
	return all, nil
}
