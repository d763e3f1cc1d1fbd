package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	baseModel "skillshare/pkg/model"
)

// 进度更新模板类型
const (
	TemplateCompletedTutorial = "completed_tutorial"
	TemplateNewSkill          = "new_skill"
	TemplateLearningGoal      = "learning_goal"
)

// ValidTemplate 模板类型是否合法
func ValidTemplate(t string) bool {
	switch t {
	case TemplateCompletedTutorial, TemplateNewSkill, TemplateLearningGoal:
		return true
	}
	return false
}

// ContentMap 模板自由字段，jsonb 整体读写
type ContentMap map[string]string

// Value 实现 driver.Valuer
func (c ContentMap) Value() (driver.Value, error) {
	if c == nil {
		return "{}", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner
func (c *ContentMap) Scan(value interface{}) error {
	if value == nil {
		*c = ContentMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for ContentMap")
	}
	return json.Unmarshal(data, c)
}

// Progress 进度更新模型
// commentCount 在每次评论增删后按实际评论数重算，不做增量维护
type Progress struct {
	baseModel.BaseModel
	UserID       string               `gorm:"index" json:"userId"`
	TemplateType string               `json:"templateType"`
	Content      ContentMap           `gorm:"type:jsonb" json:"content"`
	MediaURL     string               `json:"mediaUrl"`
	Likes        baseModel.StringList `gorm:"type:jsonb" json:"likes"`
	CommentCount int                  `json:"commentCount"`
}

// ProgressComment 进度评论，parentCommentId 非空表示一层回复
type ProgressComment struct {
	baseModel.BaseModel
	ProgressID      string `gorm:"index" json:"progressId"`
	UserID          string `json:"userId"`
	Content         string `json:"content"`
	ParentCommentID string `gorm:"index" json:"parentCommentId,omitempty"`
}

// IsRoot 是否根评论
func (c *ProgressComment) IsRoot() bool {
	return c.ParentCommentID == ""
}
