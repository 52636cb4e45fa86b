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

package repository

import (
	"context"
	"errors"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/storefront/internal/marketing/internal/domain"
	"github.com/ecodeclub/storefront/internal/marketing/internal/repository/dao"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUsageNotFound     = errors.New("使用记录不存在")
	ErrUsageExists       = dao.ErrUsageExists
	ErrUsageLimitReached = dao.ErrUsageLimitReached
	ErrDuplicateCode     = dao.ErrDuplicateCode
)

//go:generate mockgen -source=./discount.go -package=repomocks -destination=mocks/discount.mock.go DiscountRepository
type DiscountRepository interface {
	Create(ctx context.Context, c domain.DiscountCode) (int64, error)
	FindByID(ctx context.Context, id int64) (domain.DiscountCode, error)
	FindByCode(ctx context.Context, code string) (domain.DiscountCode, error)
	List(ctx context.Context, offset, limit int) ([]domain.DiscountCode, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error

	FindUsage(ctx context.Context, codeID, uid int64) (domain.DiscountUsage, error)
	RecordUsage(ctx context.Context, u domain.DiscountUsage) error
	DeleteUsage(ctx context.Context, codeID, uid int64, orderSN string) (bool, error)
}

type discountRepository struct {
	dao dao.DiscountDAO
}

func NewDiscountRepository(d dao.DiscountDAO) DiscountRepository {
	return &discountRepository{dao: d}
}

func (r *discountRepository) Create(ctx context.Context, c domain.DiscountCode) (int64, error) {
	return r.dao.Create(ctx, r.toEntity(c))
}

func (r *discountRepository) FindByID(ctx context.Context, id int64) (domain.DiscountCode, error) {
	c, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.DiscountCode{}, r.translate(err)
	}
	return r.toDomain(c), nil
}

func (r *discountRepository) FindByCode(ctx context.Context, code string) (domain.DiscountCode, error) {
	c, err := r.dao.FindByCode(ctx, code)
	if err != nil {
		return domain.DiscountCode{}, r.translate(err)
	}
	return r.toDomain(c), nil
}

func (r *discountRepository) List(ctx context.Context, offset, limit int) ([]domain.DiscountCode, int64, error) {
	var (
		eg    errgroup.Group
		codes []dao.DiscountCode
		total int64
	)
	eg.Go(func() error {
		var err error
		codes, err = r.dao.List(ctx, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = r.dao.Count(ctx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, 0, err
	}
	return slice.Map(codes, func(idx int, src dao.DiscountCode) domain.DiscountCode {
		return r.toDomain(src)
	}), total, nil
}

func (r *discountRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	return r.translate(r.dao.UpdateStatus(ctx, id, status.ToUint8()))
}

func (r *discountRepository) FindUsage(ctx context.Context, codeID, uid int64) (domain.DiscountUsage, error) {
	u, err := r.dao.FindUsage(ctx, codeID, uid)
	if errors.Is(err, dao.ErrRecordNotFound) {
		return domain.DiscountUsage{}, ErrUsageNotFound
	}
	if err != nil {
		return domain.DiscountUsage{}, err
	}
	return domain.DiscountUsage{
		ID:      u.Id,
		CodeID:  u.CodeID,
		UID:     u.UID,
		OrderSN: u.OrderSN,
		Amount:  u.Amount,
		Ctime:   u.Ctime,
	}, nil
}

func (r *discountRepository) RecordUsage(ctx context.Context, u domain.DiscountUsage) error {
	return r.dao.RecordUsage(ctx, dao.DiscountCodeUsage{
		CodeID:  u.CodeID,
		UID:     u.UID,
		OrderSN: u.OrderSN,
		Amount:  u.Amount,
	})
}

func (r *discountRepository) DeleteUsage(ctx context.Context, codeID, uid int64, orderSN string) (bool, error) {
	return r.dao.DeleteUsage(ctx, codeID, uid, orderSN)
}

func (r *discountRepository) translate(err error) error {
	if errors.Is(err, dao.ErrRecordNotFound) {
		return domain.ErrDiscountCodeNotFound
	}
	return err
}

func (r *discountRepository) toDomain(c dao.DiscountCode) domain.DiscountCode {
	return domain.DiscountCode{
		ID:                c.Id,
		Code:              c.Code,
		Type:              domain.DiscountType(c.Type),
		Value:             c.Value,
		MinPurchaseAmount: c.MinPurchaseAmount,
		MaxDiscountAmount: c.MaxDiscountAmount,
		StartAt:           c.StartAt,
		EndAt:             c.EndAt,
		UsageLimit:        c.UsageLimit,
		UsageCount:        c.UsageCount,
		Status:            domain.Status(c.Status),
		Ctime:             c.Ctime,
		Utime:             c.Utime,
	}
}

func (r *discountRepository) toEntity(c domain.DiscountCode) dao.DiscountCode {
	return dao.DiscountCode{
		Id:                c.ID,
		Code:              c.Code,
		Type:              c.Type.ToUint8(),
		Value:             c.Value,
		MinPurchaseAmount: c.MinPurchaseAmount,
		MaxDiscountAmount: c.MaxDiscountAmount,
		StartAt:           c.StartAt,
		EndAt:             c.EndAt,
		UsageLimit:        c.UsageLimit,
		UsageCount:        c.UsageCount,
		Status:            c.Status.ToUint8(),
	}
}
