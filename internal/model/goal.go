package model

import (
	"time"

	"goalapp_backend/internal/util"
)

// GoalType 目标粒度，从人生目标到每日目标
type GoalType string

const (
	GoalTypeLifetime    GoalType = "LIFETIME"
	GoalTypeLifetimeSub GoalType = "LIFETIME_SUB"
	GoalTypeYearly      GoalType = "YEARLY"
	GoalTypeMonthly     GoalType = "MONTHLY"
	GoalTypeWeekly      GoalType = "WEEKLY"
	GoalTypeDaily       GoalType = "DAILY"
)

// GoalStatus 目标状态
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "ACTIVE"
	GoalStatusCompleted GoalStatus = "COMPLETED"
	GoalStatusExpired   GoalStatus = "EXPIRED"
	GoalStatusArchived  GoalStatus = "ARCHIVED"
)

// validChildren 父类型到允许的子类型集合，顺序即创建界面的展示顺序
var validChildren = map[GoalType][]GoalType{
	GoalTypeLifetime:    {GoalTypeLifetimeSub},
	GoalTypeLifetimeSub: {GoalTypeYearly, GoalTypeMonthly, GoalTypeWeekly, GoalTypeDaily},
	GoalTypeYearly:      {GoalTypeMonthly, GoalTypeWeekly, GoalTypeDaily},
	GoalTypeMonthly:     {GoalTypeWeekly, GoalTypeDaily},
	GoalTypeWeekly:      {GoalTypeDaily},
	GoalTypeDaily:       {},
}

// ValidGoalType 判断是否为已知目标类型
func ValidGoalType(t GoalType) bool {
	_, ok := validChildren[t]
	return ok
}

// ValidChild 判断childType是否允许挂在parentType之下
func ValidChild(parentType, childType GoalType) bool {
	for _, allowed := range validChildren[parentType] {
		if allowed == childType {
			return true
		}
	}
	return false
}

// AvailableSubTypes 返回parentType允许的子类型列表，DAILY返回空
func AvailableSubTypes(parentType GoalType) []GoalType {
	allowed := validChildren[parentType]
	out := make([]GoalType, len(allowed))
	copy(out, allowed)
	return out
}

// IsIndependent 判断该类型是否可以脱离层级独立存在
func IsIndependent(goalType GoalType, parentID *uint) bool {
	if parentID != nil {
		return false
	}
	switch goalType {
	case GoalTypeYearly, GoalTypeMonthly, GoalTypeWeekly, GoalTypeDaily:
		return true
	}
	return false
}

// Goal 层级目标实体，status为状态唯一来源
type Goal struct {
	BaseModel
	Title             string     `gorm:"type:varchar(255);not null" json:"title"`
	Description       string     `gorm:"type:text" json:"description"`
	Type              GoalType   `gorm:"type:varchar(20);not null;index" json:"type"`
	Status            GoalStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`
	ParentID          *uint      `gorm:"index" json:"parentId"`
	DueDate           *time.Time `gorm:"index" json:"dueDate"`
	CompletedAt       *time.Time `json:"completedAt"`
	Priority          int        `gorm:"default:1" json:"priority"`
	ReminderEnabled   bool       `gorm:"default:false" json:"reminderEnabled"`
	ReminderFrequency string     `gorm:"type:varchar(50)" json:"reminderFrequency"`
}

// IsCompleted 由status推导，避免冗余布尔与状态脱节
func (g *Goal) IsCompleted() bool {
	return g.Status == GoalStatusCompleted
}

// MarkAsCompleted 完成目标，重复调用刷新completedAt
func (g *Goal) MarkAsCompleted(now time.Time) {
	g.Status = GoalStatusCompleted
	g.CompletedAt = &now
}

// MarkAsIncomplete 取消完成，任何状态下都合法
func (g *Goal) MarkAsIncomplete() {
	g.Status = GoalStatusActive
	g.CompletedAt = nil
}

// MarkAsExpired 标记过期，已完成的目标静默跳过
func (g *Goal) MarkAsExpired() {
	if g.IsCompleted() {
		return
	}
	g.Status = GoalStatusExpired
}

// Archive 归档，无条件
func (g *Goal) Archive() {
	g.Status = GoalStatusArchived
}

// ExtendDueDate 延长截止日期并重新激活（EXPIRED也会回到ACTIVE）
func (g *Goal) ExtendDueDate(days int) error {
	if g.DueDate == nil {
		return util.ErrMissingDueDate
	}
	extended := g.DueDate.AddDate(0, 0, days)
	g.DueDate = &extended
	g.Status = GoalStatusActive
	g.CompletedAt = nil
	return nil
}

// IsExpired 仅用于探测新过期的目标，非ACTIVE状态一律为false
func (g *Goal) IsExpired(now time.Time) bool {
	if g.DueDate == nil || g.IsCompleted() || g.Status != GoalStatusActive {
		return false
	}
	return g.DueDate.Before(now)
}

// IsExpiringSoon 截止日期落在 (now, now+horizon] 窗口内
func (g *Goal) IsExpiringSoon(now time.Time, horizon time.Duration) bool {
	if g.DueDate == nil || g.IsCompleted() || g.Status != GoalStatusActive {
		return false
	}
	due := *g.DueDate
	return now.Before(due) && !due.After(now.Add(horizon))
}

// ProgressPercentage 进度由子目标推导：叶子按自身完成度，父目标按直接子目标完成比例
func (g *Goal) ProgressPercentage(children []Goal) float64 {
	if len(children) == 0 {
		if g.IsCompleted() {
			return 100.0
		}
		return 0.0
	}
	completed := 0
	for i := range children {
		if children[i].IsCompleted() {
			completed++
		}
	}
	return float64(completed) / float64(len(children)) * 100.0
}
