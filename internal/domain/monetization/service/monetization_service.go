package service

import (
	"errors"
	"strings"

	"skillshare/internal/domain/monetization/model"
	"skillshare/internal/domain/monetization/repository"

	"gorm.io/gorm"
)

// 服务层错误
var (
	ErrRequestNotFound = errors.New("monetization request not found")
	ErrNotOwner        = errors.New("only the owner can delete this request")
	ErrMissingFields   = errors.New("contentType and description are required")
)

// SubmitInput 变现申请输入
type SubmitInput struct {
	ContentType      string
	Description      string
	Platform         string
	ExpectedEarnings string
}

// MonetizationService 变现申请服务接口
type MonetizationService interface {
	Submit(userID string, input SubmitInput) (*model.MonetizationRequest, error)
	GetAll() ([]model.MonetizationRequest, error)
	GetByUser(userID string) ([]model.MonetizationRequest, error)
	Delete(id, callerID string) error
}

type monetizationService struct {
	repo repository.MonetizationRepository
}

// NewMonetizationService 创建变现申请服务
func NewMonetizationService(repo repository.MonetizationRepository) MonetizationService {
	return &monetizationService{repo: repo}
}

// Submit 提交变现申请
func (s *monetizationService) Submit(userID string, input SubmitInput) (*model.MonetizationRequest, error) {
	if strings.TrimSpace(input.ContentType) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, ErrMissingFields
	}

	request := &model.MonetizationRequest{
		UserID:           userID,
		ContentType:      input.ContentType,
		Description:      input.Description,
		Platform:         input.Platform,
		ExpectedEarnings: input.ExpectedEarnings,
	}
	if err := s.repo.Create(request); err != nil {
		return nil, err
	}
	return request, nil
}

// GetAll 全部申请，最新在前
func (s *monetizationService) GetAll() ([]model.MonetizationRequest, error) {
	return s.repo.GetAll()
}

func (s *monetizationService) GetByUser(userID string) ([]model.MonetizationRequest, error) {
	return s.repo.GetByUserID(userID)
}

// Delete 删除申请，只有提交者可以删
func (s *monetizationService) Delete(id, callerID string) error {
	request, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}
	if request.UserID != callerID {
		return ErrNotOwner
	}
	return s.repo.Delete(id)
}
