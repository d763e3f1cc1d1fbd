package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	notifModel "skillshare/internal/domain/notification/model"
	notifService "skillshare/internal/domain/notification/service"
	"skillshare/internal/domain/progress/model"
	"skillshare/internal/domain/progress/repository"
	userRepository "skillshare/internal/domain/user/repository"
	"skillshare/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 服务层错误
var (
	ErrProgressNotFound = errors.New("progress update not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotOwner         = errors.New("only the owner can modify this resource")
	ErrEmptyContent     = errors.New("content cannot be empty")
	ErrBadTemplate      = errors.New("unknown template type")
	ErrReplyToReply     = errors.New("replies can only target a top-level comment")
)

// Template 模板目录条目
type Template struct {
	Type   string   `json:"type"`
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// templates 静态模板目录
var templates = []Template{
	{
		Type:   model.TemplateCompletedTutorial,
		Name:   "Completed Tutorial",
		Fields: []string{"tutorialName", "whatLearned", "duration"},
	},
	{
		Type:   model.TemplateNewSkill,
		Name:   "New Skill",
		Fields: []string{"skillName", "proficiency", "practiceTime"},
	},
	{
		Type:   model.TemplateLearningGoal,
		Name:   "Learning Goal",
		Fields: []string{"goalName", "targetDate", "milestones"},
	},
}

// CreateProgressInput 创建进度更新的输入
type CreateProgressInput struct {
	TemplateType string
	Content      model.ContentMap
	MediaURL     string
}

// UpdateProgressInput 更新输入，nil 字段不变
type UpdateProgressInput struct {
	TemplateType *string
	Content      model.ContentMap
	MediaURL     *string
}

// ProgressService 进度更新服务接口
type ProgressService interface {
	Templates() []Template
	CreateProgress(userID string, input CreateProgressInput) (*model.Progress, error)
	GetProgress(id string) (*model.Progress, error)
	GetAll(page, limit int) ([]model.Progress, int64, error)
	GetByUser(userID string) ([]model.Progress, error)
	UpdateProgress(id, callerID string, input UpdateProgressInput) (*model.Progress, error)
	DeleteProgress(id, callerID string) error
	ForceDeleteProgress(id string) error

	AddLike(progressID, userID string) (*model.Progress, error)
	RemoveLike(progressID, userID string) (*model.Progress, error)

	AddComment(progressID, userID, content string) (*model.ProgressComment, error)
	AddReply(parentCommentID, userID, content string) (*model.ProgressComment, error)
	GetComments(progressID string) ([]model.ProgressComment, error)
	GetReplies(parentCommentID string) ([]model.ProgressComment, error)
	UpdateComment(commentID, userID, content string) (*model.ProgressComment, error)
	DeleteComment(commentID, callerID string) error
	ForceDeleteComment(commentID string) error
}

type progressService struct {
	progresses repository.ProgressRepository
	comments   repository.ProgressCommentRepository
	users      userRepository.UserRepository
	notifier   notifService.NotificationService
	mediaPool  []string
}

// NewProgressService 创建进度更新服务
// mediaPool 是 completed_tutorial/new_skill 模板未带图时的默认配图池
func NewProgressService(
	progresses repository.ProgressRepository,
	comments repository.ProgressCommentRepository,
	users userRepository.UserRepository,
	notifier notifService.NotificationService,
	mediaPool []string,
) ProgressService {
	return &progressService{
		progresses: progresses,
		comments:   comments,
		users:      users,
		notifier:   notifier,
		mediaPool:  mediaPool,
	}
}

// Templates 模板目录
func (s *progressService) Templates() []Template {
	return templates
}

// CreateProgress 创建进度更新
// completed_tutorial/new_skill 模板未带图时从配图池随机分配
func (s *progressService) CreateProgress(userID string, input CreateProgressInput) (*model.Progress, error) {
	if !model.ValidTemplate(input.TemplateType) {
		return nil, ErrBadTemplate
	}

	mediaURL := input.MediaURL
	if mediaURL == "" && len(s.mediaPool) > 0 &&
		(input.TemplateType == model.TemplateCompletedTutorial || input.TemplateType == model.TemplateNewSkill) {
		mediaURL = s.mediaPool[rand.Intn(len(s.mediaPool))]
	}

	content := input.Content
	if content == nil {
		content = model.ContentMap{}
	}

	progress := &model.Progress{
		UserID:       userID,
		TemplateType: input.TemplateType,
		Content:      content,
		MediaURL:     mediaURL,
		Likes:        []string{},
	}
	if err := s.progresses.Create(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// GetProgress 获取单条进度更新
func (s *progressService) GetProgress(id string) (*model.Progress, error) {
	progress, err := s.progresses.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	return progress, nil
}

// GetAll 全部进度更新（分页，最新在前）
func (s *progressService) GetAll(page, limit int) ([]model.Progress, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.progresses.GetAll((page-1)*limit, limit)
}

func (s *progressService) GetByUser(userID string) ([]model.Progress, error) {
	return s.progresses.GetByUserID(userID)
}

// UpdateProgress 更新进度，只有作者可以改
func (s *progressService) UpdateProgress(id, callerID string, input UpdateProgressInput) (*model.Progress, error) {
	progress, err := s.GetProgress(id)
	if err != nil {
		return nil, err
	}
	if progress.UserID != callerID {
		return nil, ErrNotOwner
	}

	if input.TemplateType != nil {
		if !model.ValidTemplate(*input.TemplateType) {
			return nil, ErrBadTemplate
		}
		progress.TemplateType = *input.TemplateType
	}
	if input.Content != nil {
		progress.Content = input.Content
	}
	if input.MediaURL != nil {
		progress.MediaURL = *input.MediaURL
	}

	if err := s.progresses.Update(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// DeleteProgress 删除进度，连带清理评论和通知
func (s *progressService) DeleteProgress(id, callerID string) error {
	progress, err := s.GetProgress(id)
	if err != nil {
		return err
	}
	if progress.UserID != callerID {
		return ErrNotOwner
	}
	return s.purgeProgress(id)
}

// ForceDeleteProgress 管理端删除，跳过归属校验
func (s *progressService) ForceDeleteProgress(id string) error {
	if _, err := s.GetProgress(id); err != nil {
		return err
	}
	return s.purgeProgress(id)
}

func (s *progressService) purgeProgress(id string) error {
	if err := s.comments.DeleteByProgressID(id); err != nil {
		return err
	}
	if err := s.notifier.DeleteBySubject(id); err != nil {
		if logger.Log != nil {
			logger.Log.Warn("failed to clean up notifications for progress",
				zap.String("progress_id", id), zap.Error(err))
		}
	}
	return s.progresses.Delete(id)
}

// AddLike 点赞，幂等；新增点赞且不是作者时发 LIKE 通知
func (s *progressService) AddLike(progressID, userID string) (*model.Progress, error) {
	progress, err := s.GetProgress(progressID)
	if err != nil {
		return nil, err
	}

	if progress.Likes.Contains(userID) {
		return progress, nil
	}
	progress.Likes = progress.Likes.Add(userID)
	if err := s.progresses.Update(progress); err != nil {
		return nil, err
	}

	s.notifier.Notify(progress.UserID, userID, progress.ID, notifModel.TypeLike,
		fmt.Sprintf("%s liked your progress update", s.username(userID)))

	return progress, nil
}

// RemoveLike 取消点赞，幂等
func (s *progressService) RemoveLike(progressID, userID string) (*model.Progress, error) {
	progress, err := s.GetProgress(progressID)
	if err != nil {
		return nil, err
	}

	if !progress.Likes.Contains(userID) {
		return progress, nil
	}
	progress.Likes = progress.Likes.Remove(userID)
	if err := s.progresses.Update(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// AddComment 评论进度更新
// 评论写入后按实际评论数重算 commentCount（重数，不是加一），再同步通知作者
func (s *progressService) AddComment(progressID, userID, content string) (*model.ProgressComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	progress, err := s.GetProgress(progressID)
	if err != nil {
		return nil, err
	}

	comment := &model.ProgressComment{
		ProgressID: progressID,
		UserID:     userID,
		Content:    content,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}

	if err := s.recountComments(progress); err != nil {
		return nil, err
	}

	s.notifier.Notify(progress.UserID, userID, progress.ID, notifModel.TypeComment,
		fmt.Sprintf("%s commented on your progress update: %s",
			s.displayName(userID), notifService.Excerpt(content)))

	return comment, nil
}

// AddReply 回复评论，只支持一层嵌套
// 通知父评论作者；进度作者与双方都不同时再单独通知进度作者
func (s *progressService) AddReply(parentCommentID, userID, content string) (*model.ProgressComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	parent, err := s.getComment(parentCommentID)
	if err != nil {
		return nil, err
	}
	if !parent.IsRoot() {
		return nil, ErrReplyToReply
	}

	progress, err := s.GetProgress(parent.ProgressID)
	if err != nil {
		return nil, err
	}

	reply := &model.ProgressComment{
		ProgressID:      parent.ProgressID,
		UserID:          userID,
		Content:         content,
		ParentCommentID: parent.ID,
	}
	if err := s.comments.Create(reply); err != nil {
		return nil, err
	}

	if err := s.recountComments(progress); err != nil {
		return nil, err
	}

	name := s.displayName(userID)
	excerpt := notifService.Excerpt(content)
	s.notifier.Notify(parent.UserID, userID, progress.ID, notifModel.TypeComment,
		fmt.Sprintf("%s replied to your comment: %s", name, excerpt))
	if progress.UserID != parent.UserID {
		s.notifier.Notify(progress.UserID, userID, progress.ID, notifModel.TypeComment,
			fmt.Sprintf("%s commented on your progress update: %s", name, excerpt))
	}

	return reply, nil
}

// GetComments 根评论列表
func (s *progressService) GetComments(progressID string) ([]model.ProgressComment, error) {
	if _, err := s.GetProgress(progressID); err != nil {
		return nil, err
	}
	return s.comments.GetRootsByProgressID(progressID)
}

// GetReplies 某条评论的直接回复
func (s *progressService) GetReplies(parentCommentID string) ([]model.ProgressComment, error) {
	if _, err := s.getComment(parentCommentID); err != nil {
		return nil, err
	}
	return s.comments.GetByParentID(parentCommentID)
}

// UpdateComment 修改评论，只有作者可以改
func (s *progressService) UpdateComment(commentID, userID, content string) (*model.ProgressComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	comment, err := s.getComment(commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrNotOwner
	}

	comment.Content = content
	if err := s.comments.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment 删除评论，作者或进度作者可以删
// 根评论被删时其直接回复一并删除，然后重算 commentCount
func (s *progressService) DeleteComment(commentID, callerID string) error {
	comment, err := s.getComment(commentID)
	if err != nil {
		return err
	}

	progress, err := s.GetProgress(comment.ProgressID)
	if err != nil {
		return err
	}
	if comment.UserID != callerID && progress.UserID != callerID {
		return ErrNotOwner
	}

	if comment.IsRoot() {
		if err := s.comments.DeleteByParentID(comment.ID); err != nil {
			return err
		}
	}
	if err := s.comments.Delete(comment.ID); err != nil {
		return err
	}
	return s.recountComments(progress)
}

// ForceDeleteComment 管理端删除评论，跳过归属校验，级联与重算逻辑不变
func (s *progressService) ForceDeleteComment(commentID string) error {
	comment, err := s.getComment(commentID)
	if err != nil {
		return err
	}
	progress, err := s.GetProgress(comment.ProgressID)
	if err != nil {
		return err
	}

	if comment.IsRoot() {
		if err := s.comments.DeleteByParentID(comment.ID); err != nil {
			return err
		}
	}
	if err := s.comments.Delete(comment.ID); err != nil {
		return err
	}
	return s.recountComments(progress)
}

// recountComments 按存量评论数重算并持久化 commentCount
func (s *progressService) recountComments(progress *model.Progress) error {
	count, err := s.comments.CountByProgressID(progress.ID)
	if err != nil {
		return err
	}
	progress.CommentCount = int(count)
	return s.progresses.Update(progress)
}

func (s *progressService) getComment(id string) (*model.ProgressComment, error) {
	comment, err := s.comments.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *progressService) username(userID string) string {
	user, err := s.users.GetByID(userID)
	if err != nil {
		s.logActorMiss(userID, err)
		return "Someone"
	}
	return user.Username
}

func (s *progressService) displayName(userID string) string {
	user, err := s.users.GetByID(userID)
	if err != nil {
		s.logActorMiss(userID, err)
		return "Someone"
	}
	return user.DisplayName()
}

func (s *progressService) logActorMiss(userID string, err error) {
	if logger.Log != nil {
		logger.Log.Warn("failed to resolve actor for notification",
			zap.String("user_id", userID), zap.Error(err))
	}
}
