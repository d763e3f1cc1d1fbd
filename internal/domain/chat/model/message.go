package model

import (
	baseModel "skillshare/pkg/model"
)

// Message 私信模型
type Message struct {
	baseModel.BaseModel
	SenderID    string `gorm:"index" json:"senderId"`
	RecipientID string `gorm:"index" json:"recipientId"`
	Content     string `json:"content"`
}

// PartnerOf 返回会话里相对 userID 的另一方
func (m *Message) PartnerOf(userID string) string {
	if m.SenderID == userID {
		return m.RecipientID
	}
	return m.SenderID
}
