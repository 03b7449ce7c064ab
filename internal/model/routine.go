package model

import "time"

// RoutineFrequency 日常习惯的周期
type RoutineFrequency string

const (
	RoutineFrequencyDaily   RoutineFrequency = "DAILY"
	RoutineFrequencyWeekly  RoutineFrequency = "WEEKLY"
	RoutineFrequencyMonthly RoutineFrequency = "MONTHLY"
)

// ValidRoutineFrequency 判断是否为已知周期
func ValidRoutineFrequency(f RoutineFrequency) bool {
	switch f {
	case RoutineFrequencyDaily, RoutineFrequencyWeekly, RoutineFrequencyMonthly:
		return true
	}
	return false
}

// Routine 独立于目标层级的日常习惯
type Routine struct {
	BaseModel
	Title       string           `gorm:"type:varchar(255);not null" json:"title"`
	Description string           `gorm:"type:text" json:"description"`
	Frequency   RoutineFrequency `gorm:"type:varchar(20);not null" json:"frequency"`
	IsActive    bool             `gorm:"default:true;index" json:"isActive"`
}

// RoutineCompletion 习惯打卡记录，CompletedOn为打卡当天零点
type RoutineCompletion struct {
	BaseModel
	RoutineID   uint      `gorm:"not null;index" json:"routineId"`
	CompletedOn time.Time `gorm:"not null;index" json:"completedOn"`
}
