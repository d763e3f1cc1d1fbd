package service

import (
	"context"
	"fmt"
	"time"

	"skillshare/internal/domain/user/model"
	"skillshare/pkg/cache"
	"skillshare/pkg/logger"

	"go.uber.org/zap"
)

// 缓存键常量
const (
	userCacheKeyPrefix = "user:"
	userCacheTTL       = time.Hour * 2
)

// CachedUserService 带缓存的用户服务，装饰基础实现
// 只缓存单用户读取；所有涉及该用户的写操作失效对应缓存
type CachedUserService struct {
	UserService
	cache cache.CacheService
}

// NewCachedUserService 创建带缓存的用户服务
func NewCachedUserService(inner UserService, cacheService cache.CacheService) UserService {
	return &CachedUserService{
		UserService: inner,
		cache:       cacheService,
	}
}

func userCacheKey(id string) string {
	return fmt.Sprintf("%s%s", userCacheKeyPrefix, id)
}

// invalidate 清除用户缓存，失败只记日志不阻断请求
func (s *CachedUserService) invalidate(ids ...string) {
	ctx := context.Background()
	for _, id := range ids {
		if err := s.cache.Delete(ctx, userCacheKey(id)); err != nil && logger.Log != nil {
			logger.Log.Warn("failed to invalidate user cache",
				zap.String("user_id", id), zap.Error(err))
		}
	}
}

// GetUser 优先读缓存
func (s *CachedUserService) GetUser(id string) (*model.User, error) {
	ctx := context.Background()

	var cached model.User
	if err := s.cache.Get(ctx, userCacheKey(id), &cached); err == nil {
		return &cached, nil
	}

	user, err := s.UserService.GetUser(id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, userCacheKey(id), user, userCacheTTL); err != nil && logger.Log != nil {
		logger.Log.Warn("failed to cache user", zap.String("user_id", id), zap.Error(err))
	}
	return user, nil
}

func (s *CachedUserService) UpdateUser(id string, input UpdateInput) (*model.User, error) {
	user, err := s.UserService.UpdateUser(id, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(id)
	return user, nil
}

func (s *CachedUserService) DeleteUser(id string) error {
	if err := s.UserService.DeleteUser(id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

func (s *CachedUserService) ChangePassword(id, currentPassword, newPassword string) error {
	if err := s.UserService.ChangePassword(id, currentPassword, newPassword); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

// Follow 关注涉及两条用户记录，两侧缓存都失效
func (s *CachedUserService) Follow(actorID, targetID string) (*model.User, error) {
	user, err := s.UserService.Follow(actorID, targetID)
	if err != nil {
		return nil, err
	}
	s.invalidate(actorID, targetID)
	return user, nil
}

func (s *CachedUserService) Unfollow(actorID, targetID string) (*model.User, error) {
	user, err := s.UserService.Unfollow(actorID, targetID)
	if err != nil {
		return nil, err
	}
	s.invalidate(actorID, targetID)
	return user, nil
}
