package model

import (
	baseModel "skillshare/pkg/model"
)

// MonetizationRequest 变现申请模型
type MonetizationRequest struct {
	baseModel.BaseModel
	UserID           string `gorm:"index" json:"userId"`
	ContentType      string `json:"contentType"`
	Description      string `json:"description"`
	Platform         string `json:"platform"`
	ExpectedEarnings string `json:"expectedEarnings"`
}
