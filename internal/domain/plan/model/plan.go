package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	baseModel "skillshare/pkg/model"
)

// Topic 学习计划主题，顺序即列表顺序
type Topic struct {
	Name      string `json:"name"`
	Resources string `json:"resources"`
	Timeline  string `json:"timeline"`
	Completed bool   `json:"completed"`
}

// TopicList 主题列表，jsonb 整体读写
type TopicList []Topic

// Value 实现 driver.Valuer
func (t TopicList) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner
func (t *TopicList) Scan(value interface{}) error {
	if value == nil {
		*t = TopicList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for TopicList")
	}
	return json.Unmarshal(data, t)
}

// LearningPlan 学习计划模型
type LearningPlan struct {
	baseModel.BaseModel
	UserID      string    `gorm:"index" json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Topics      TopicList `gorm:"type:jsonb" json:"topics"`
}
