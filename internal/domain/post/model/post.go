package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	baseModel "skillshare/pkg/model"
)

// MaxMediaItems 每个帖子最多附带的媒体数量
const MaxMediaItems = 3

// MediaItem 媒体附件
type MediaItem struct {
	URL  string `json:"url"`
	Type string `json:"type"` // image | video
}

// MediaList 媒体列表，jsonb 整体读写
type MediaList []MediaItem

// Value 实现 driver.Valuer
func (m MediaList) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner
func (m *MediaList) Scan(value interface{}) error {
	if value == nil {
		*m = MediaList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for MediaList")
	}
	return json.Unmarshal(data, m)
}

// Post 帖子模型
// likedUserIds 以 jsonb 数组整体读写，likeCount 每次变更时按列表长度重算
type Post struct {
	baseModel.BaseModel
	UserID       string               `gorm:"index" json:"userId"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Category     string               `gorm:"index" json:"category"`
	Media        MediaList            `gorm:"type:jsonb" json:"media"`
	LikedUserIDs baseModel.StringList `gorm:"type:jsonb" json:"likedUserIds"`
	LikeCount    int                  `json:"likeCount"`
}

// Comment 帖子评论
type Comment struct {
	baseModel.BaseModel
	PostID  string `gorm:"index" json:"postId"`
	UserID  string `json:"userId"`
	Content string `json:"content"`
}
