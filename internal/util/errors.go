package util

import "errors"

var (
	ErrGoalNotFound     = errors.New("goal not found")
	ErrRoutineNotFound  = errors.New("routine not found")
	ErrTokenNotFound    = errors.New("device token not found")
	ErrInvalidHierarchy = errors.New("目标类型不符合层级规则")
	ErrMissingDueDate   = errors.New("目标没有截止日期，无法延期")
)
