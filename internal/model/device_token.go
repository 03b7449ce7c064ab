package model

import "time"

// DeviceToken FCM设备令牌，注销时仅停用不删除
type DeviceToken struct {
	UUIDBase
	FcmToken   string     `gorm:"type:varchar(500);not null;uniqueIndex" json:"fcmToken"`
	DeviceID   string     `gorm:"type:varchar(255)" json:"deviceId"`
	DeviceName string     `gorm:"type:varchar(255)" json:"deviceName"`
	Platform   string     `gorm:"type:varchar(20)" json:"platform"`
	IsActive   bool       `gorm:"default:true;index" json:"isActive"`
	LastUsedAt *time.Time `json:"lastUsedAt"`
}

// MarkAsUsed 刷新最近使用时间
func (t *DeviceToken) MarkAsUsed(now time.Time) {
	t.LastUsedAt = &now
}

func (t *DeviceToken) Activate() {
	t.IsActive = true
}

func (t *DeviceToken) Deactivate() {
	t.IsActive = false
}
