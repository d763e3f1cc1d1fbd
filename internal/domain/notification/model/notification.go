package model

import (
	baseModel "skillshare/pkg/model"
)

// 通知类型
const (
	TypeLike    = "LIKE"
	TypeComment = "COMMENT"
)

// Notification 通知模型
// 只作为互动事件的副作用写入，自己给自己的互动不产生通知
type Notification struct {
	baseModel.BaseModel
	RecipientID string `gorm:"index" json:"recipientId"`
	SenderID    string `json:"senderId"`
	SubjectID   string `gorm:"index" json:"subjectId"` // 帖子或进度更新的ID
	Type        string `json:"type"`
	Content     string `json:"content"`
	Read        bool   `json:"read"`
}
