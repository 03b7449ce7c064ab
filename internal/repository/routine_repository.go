package repository

import (
	"errors"
	"time"

	"goalapp_backend/internal/model"
	"goalapp_backend/internal/util"

	"gorm.io/gorm"
)

// RoutineRepository 日常习惯及打卡记录持久化
type RoutineRepository struct {
	DB *gorm.DB
}

func NewRoutineRepository(db *gorm.DB) *RoutineRepository {
	return &RoutineRepository{DB: db}
}

func (r *RoutineRepository) Create(routine *model.Routine) error {
	return r.DB.Create(routine).Error
}

func (r *RoutineRepository) Save(routine *model.Routine) error {
	return r.DB.Save(routine).Error
}

func (r *RoutineRepository) FindByID(id uint) (*model.Routine, error) {
	var routine model.Routine
	err := r.DB.First(&routine, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrRoutineNotFound
	}
	if err != nil {
		return nil, err
	}
	return &routine, nil
}

func (r *RoutineRepository) FindAll() ([]model.Routine, error) {
	var routines []model.Routine
	err := r.DB.Order("created_at asc").Find(&routines).Error
	return routines, err
}

func (r *RoutineRepository) FindActive() ([]model.Routine, error) {
	var routines []model.Routine
	err := r.DB.Where("is_active = ?", true).Order("created_at asc").Find(&routines).Error
	return routines, err
}

// Delete 删除习惯及其打卡记录，单个事务内完成
func (r *RoutineRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("routine_id = ?", id).Delete(&model.RoutineCompletion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Routine{}, id).Error
	})
}

func (r *RoutineRepository) CreateCompletion(completion *model.RoutineCompletion) error {
	return r.DB.Create(completion).Error
}

// FindCompletionOn 查询某习惯当天的打卡记录，没有返回nil
func (r *RoutineRepository) FindCompletionOn(routineID uint, day time.Time) (*model.RoutineCompletion, error) {
	var completion model.RoutineCompletion
	err := r.DB.First(&completion, "routine_id = ? AND completed_on = ?", routineID, day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &completion, nil
}

func (r *RoutineRepository) DeleteCompletionOn(routineID uint, day time.Time) error {
	return r.DB.Where("routine_id = ? AND completed_on = ?", routineID, day).
		Delete(&model.RoutineCompletion{}).Error
}

func (r *RoutineRepository) FindCompletions(routineID uint) ([]model.RoutineCompletion, error) {
	var completions []model.RoutineCompletion
	err := r.DB.Where("routine_id = ?", routineID).
		Order("completed_on desc").Find(&completions).Error
	return completions, err
}
