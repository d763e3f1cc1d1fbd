package service

import (
	"errors"
	"fmt"
	"strings"

	notifModel "skillshare/internal/domain/notification/model"
	notifService "skillshare/internal/domain/notification/service"
	"skillshare/internal/domain/post/model"
	"skillshare/internal/domain/post/repository"
	userRepository "skillshare/internal/domain/user/repository"
	"skillshare/internal/pkg/uploader"
	"skillshare/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 服务层错误
var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotOwner        = errors.New("only the owner can modify this resource")
	ErrEmptyContent    = errors.New("content cannot be empty")
	ErrTooManyMedia    = errors.New("a post can have at most 3 media items")
	ErrBadMediaType    = errors.New("media type must be image or video")
)

// CreatePostInput 发帖输入
type CreatePostInput struct {
	Title       string
	Description string
	Category    string
	Media       []model.MediaItem
}

// UpdatePostInput 帖子更新输入，nil 字段不变
type UpdatePostInput struct {
	Title       *string
	Description *string
	Category    *string
	Media       []model.MediaItem
}

// LikeResult 点赞切换结果
type LikeResult struct {
	LikeCount          int  `json:"likeCount"`
	LikedByCurrentUser bool `json:"likedByCurrentUser"`
}

// PostService 帖子服务接口
type PostService interface {
	CreatePost(userID string, input CreatePostInput) (*model.Post, error)
	GetPost(id string) (*model.Post, error)
	GetPosts(page, limit int) ([]model.Post, int64, error)
	GetPostsByUser(userID string) ([]model.Post, error)
	GetPostsByCategory(category string, page, limit int) ([]model.Post, error)
	SearchPosts(query string, page, limit int) ([]model.Post, error)
	UpdatePost(id, callerID string, input UpdatePostInput) (*model.Post, error)
	DeletePost(id, callerID string) error
	ForceDeletePost(id string) error
	ToggleLike(postID, userID string) (*LikeResult, error)

	AddComment(postID, userID, content string) (*model.Comment, error)
	GetComment(commentID string) (*model.Comment, error)
	GetComments(postID string) ([]model.Comment, error)
	UpdateComment(commentID, userID, content string) (*model.Comment, error)
	DeleteComment(commentID, callerID string) error
	ForceDeleteComment(commentID string) error
}

type postService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	users    userRepository.UserRepository
	notifier notifService.NotificationService
}

// NewPostService 创建帖子服务
func NewPostService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	users userRepository.UserRepository,
	notifier notifService.NotificationService,
) PostService {
	return &postService{
		posts:    posts,
		comments: comments,
		users:    users,
		notifier: notifier,
	}
}

// validateMedia 校验媒体数量和类型
func validateMedia(media []model.MediaItem) error {
	if len(media) > model.MaxMediaItems {
		return ErrTooManyMedia
	}
	for _, m := range media {
		if m.Type != uploader.MediaImage && m.Type != uploader.MediaVideo {
			return ErrBadMediaType
		}
	}
	return nil
}

// CreatePost 发帖
func (s *postService) CreatePost(userID string, input CreatePostInput) (*model.Post, error) {
	if strings.TrimSpace(input.Description) == "" && strings.TrimSpace(input.Title) == "" {
		return nil, ErrEmptyContent
	}
	if err := validateMedia(input.Media); err != nil {
		return nil, err
	}

	post := &model.Post{
		UserID:       userID,
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Media:        input.Media,
		LikedUserIDs: []string{},
		LikeCount:    0,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost 获取单个帖子
func (s *postService) GetPost(id string) (*model.Post, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// GetPosts 帖子列表（分页，最新在前）
func (s *postService) GetPosts(page, limit int) ([]model.Post, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.posts.GetList((page-1)*limit, limit)
}

func (s *postService) GetPostsByUser(userID string) ([]model.Post, error) {
	return s.posts.GetByUserID(userID)
}

func (s *postService) GetPostsByCategory(category string, page, limit int) ([]model.Post, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.posts.GetByCategory(category, (page-1)*limit, limit)
}

func (s *postService) SearchPosts(query string, page, limit int) ([]model.Post, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.posts.SearchByTitle(strings.TrimSpace(query), (page-1)*limit, limit)
}

// UpdatePost 更新帖子，只有作者可以改
func (s *postService) UpdatePost(id, callerID string, input UpdatePostInput) (*model.Post, error) {
	post, err := s.GetPost(id)
	if err != nil {
		return nil, err
	}
	if post.UserID != callerID {
		return nil, ErrNotOwner
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Description != nil {
		post.Description = *input.Description
	}
	if input.Category != nil {
		post.Category = *input.Category
	}
	if input.Media != nil {
		if err := validateMedia(input.Media); err != nil {
			return nil, err
		}
		post.Media = input.Media
	}

	if err := s.posts.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost 删除帖子，连带清理评论和通知
func (s *postService) DeletePost(id, callerID string) error {
	post, err := s.GetPost(id)
	if err != nil {
		return err
	}
	if post.UserID != callerID {
		return ErrNotOwner
	}
	return s.purgePost(id)
}

// ForceDeletePost 管理端删除，跳过归属校验
func (s *postService) ForceDeletePost(id string) error {
	if _, err := s.GetPost(id); err != nil {
		return err
	}
	return s.purgePost(id)
}

func (s *postService) purgePost(id string) error {
	if err := s.comments.DeleteByPostID(id); err != nil {
		return err
	}
	if err := s.notifier.DeleteBySubject(id); err != nil {
		if logger.Log != nil {
			logger.Log.Warn("failed to clean up notifications for post",
				zap.String("post_id", id), zap.Error(err))
		}
	}
	return s.posts.Delete(id)
}

// ToggleLike 点赞切换
// 翻转用户在点赞列表里的成员关系，likeCount 按列表长度重算；
// 转为已赞且点赞者不是作者时同步发一条 LIKE 通知。
func (s *postService) ToggleLike(postID, userID string) (*LikeResult, error) {
	post, err := s.GetPost(postID)
	if err != nil {
		return nil, err
	}

	liked := !post.LikedUserIDs.Contains(userID)
	if liked {
		post.LikedUserIDs = post.LikedUserIDs.Add(userID)
	} else {
		post.LikedUserIDs = post.LikedUserIDs.Remove(userID)
	}
	post.LikeCount = len(post.LikedUserIDs)

	if err := s.posts.Update(post); err != nil {
		return nil, err
	}

	if liked {
		s.notifier.Notify(post.UserID, userID, post.ID, notifModel.TypeLike,
			fmt.Sprintf("%s liked your post", s.actorName(userID, false)))
	}

	return &LikeResult{
		LikeCount:          post.LikeCount,
		LikedByCurrentUser: liked,
	}, nil
}

// AddComment 添加评论并通知作者
func (s *postService) AddComment(postID, userID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	post, err := s.GetPost(postID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}

	s.notifier.Notify(post.UserID, userID, post.ID, notifModel.TypeComment,
		fmt.Sprintf("%s commented on your post: %s",
			s.actorName(userID, true), notifService.Excerpt(content)))

	return comment, nil
}

// GetComment 获取单条评论
func (s *postService) GetComment(commentID string) (*model.Comment, error) {
	return s.getComment(commentID)
}

// GetComments 帖子评论列表
func (s *postService) GetComments(postID string) ([]model.Comment, error) {
	if _, err := s.GetPost(postID); err != nil {
		return nil, err
	}
	return s.comments.GetByPostID(postID)
}

// UpdateComment 修改评论，只有作者可以改
func (s *postService) UpdateComment(commentID, userID, content string) (*model.Comment, error) {
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

// DeleteComment 删除评论，作者或帖子作者可以删
func (s *postService) DeleteComment(commentID, callerID string) error {
	comment, err := s.getComment(commentID)
	if err != nil {
		return err
	}

	if comment.UserID != callerID {
		post, err := s.GetPost(comment.PostID)
		if err != nil {
			return err
		}
		if post.UserID != callerID {
			return ErrNotOwner
		}
	}
	return s.comments.Delete(commentID)
}

// ForceDeleteComment 管理端删除评论，跳过归属校验
func (s *postService) ForceDeleteComment(commentID string) error {
	if _, err := s.getComment(commentID); err != nil {
		return err
	}
	return s.comments.Delete(commentID)
}

func (s *postService) getComment(id string) (*model.Comment, error) {
	comment, err := s.comments.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

// actorName 通知文案里的操作者名字；点赞用用户名，评论用展示名
func (s *postService) actorName(userID string, display bool) string {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if logger.Log != nil {
			logger.Log.Warn("failed to resolve actor for notification",
				zap.String("user_id", userID), zap.Error(err))
		}
		return "Someone"
	}
	if display {
		return user.DisplayName()
	}
	return user.Username
}
