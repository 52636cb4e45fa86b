// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"

	"github.com/ecodeclub/storefront/internal/marketing/internal/domain"
	"github.com/ecodeclub/storefront/internal/marketing/internal/repository"
)

type DiscountCodeAdminService interface {
	CreateDiscountCode(ctx context.Context, c domain.DiscountCode) (int64, error)
	ListDiscountCodes(ctx context.Context, offset, limit int) ([]domain.DiscountCode, int64, error)
	FindDiscountCode(ctx context.Context, id int64) (domain.DiscountCode, error)
	SetDiscountCodeStatus(ctx context.Context, id int64, status domain.Status) error
}

type discountCodeAdminService struct {
	repo repository.DiscountRepository
}

func NewDiscountCodeAdminService(repo repository.DiscountRepository) DiscountCodeAdminService {
	return &discountCodeAdminService{repo: repo}
}

func (s *discountCodeAdminService) CreateDiscountCode(ctx context.Context, c domain.DiscountCode) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	c.UsageCount = 0
	if c.Status == 0 {
		c.Status = domain.StatusActive
	}
	return s.repo.Create(ctx, c)
}

func (s *discountCodeAdminService) ListDiscountCodes(ctx context.Context, offset, limit int) ([]domain.DiscountCode, int64, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *discountCodeAdminService) FindDiscountCode(ctx context.Context, id int64) (domain.DiscountCode, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *discountCodeAdminService) SetDiscountCodeStatus(ctx context.Context, id int64, status domain.Status) error {
	switch status {
	case domain.StatusActive, domain.StatusInactive, domain.StatusDeleted:
		return s.repo.UpdateStatus(ctx, id, status)
	default:
		return domain.ErrInvalidDiscountCode
	}
}
