package model

import (
	baseModel "skillshare/pkg/model"
)

// 角色常量，沿用前端识别的取值
const (
	RoleUser      = "USER"
	RoleAdmin     = "ROLE_ADMIN"
	RoleModerator = "ROLE_MODERATOR"
)

// User 用户模型
// followers/following 以 jsonb 数组整体读写，关注关系分别存在两条用户记录上，
// 两侧更新是独立的两次写，之间没有事务。
type User struct {
	baseModel.BaseModel
	Username       string               `gorm:"uniqueIndex" json:"username"`
	Email          string               `gorm:"uniqueIndex" json:"email"`
	Password       string               `json:"-"` // bcrypt 哈希，不返回给前端
	FirstName      string               `json:"firstName"`
	LastName       string               `json:"lastName"`
	Skills         baseModel.StringList `gorm:"type:jsonb" json:"skills"`
	ContactNumber  string               `json:"contactNumber"`
	Roles          baseModel.StringList `gorm:"type:jsonb" json:"roles"`
	ProfilePicture string               `json:"profilePicture"`
	Location       string               `json:"location"`
	SocialLinks    string               `json:"socialLinks"`
	Followers      baseModel.StringList `gorm:"type:jsonb" json:"followers"`
	Following      baseModel.StringList `gorm:"type:jsonb" json:"following"`
}

// DisplayName 通知文案里使用的展示名
func (u *User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Roles.Contains(RoleAdmin)
}
