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
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/storefront/internal/marketing/internal/domain"
	"github.com/ecodeclub/storefront/internal/marketing/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

// DiscountLedger 记录优惠码的使用情况, 同一个用户对同一个码只能使用一次
//
//go:generate mockgen -source=./ledger.go -package=marketingmocks -destination=../../mocks/ledger.mock.go DiscountLedger
type DiscountLedger interface {
	// Apply 码不满足使用条件时返回 Applied=false, 不返回错误.
	// 新建订单时用户已经用过该码返回 ErrCodeAlreadyUsed
	Apply(ctx context.Context, app domain.DiscountApplication) (domain.DiscountResult, error)
	// Revert 归还订单占用的优惠码, 重复调用没有副作用
	Revert(ctx context.Context, code string, uid int64, orderSN string) error
}

type discountLedger struct {
	repo   repository.DiscountRepository
	now    func() time.Time
	logger *elog.Component
}

func NewDiscountLedger(repo repository.DiscountRepository) DiscountLedger {
	return &discountLedger{
		repo:   repo,
		now:    time.Now,
		logger: elog.DefaultLogger.With(elog.FieldComponent("DiscountLedger")),
	}
}

func (l *discountLedger) Apply(ctx context.Context, app domain.DiscountApplication) (domain.DiscountResult, error) {
	notApplied := domain.DiscountResult{Code: app.Code}
	if app.Code == "" {
		return notApplied, nil
	}
	code, err := l.repo.FindByCode(ctx, app.Code)
	if errors.Is(err, domain.ErrDiscountCodeNotFound) {
		return notApplied, nil
	}
	if err != nil {
		return notApplied, fmt.Errorf("查询优惠码失败: %w", err)
	}
	if !code.Applicable(app.PurchaseAmount, l.now()) {
		return notApplied, nil
	}
	applied := domain.DiscountResult{
		CodeID:  code.ID,
		Code:    code.Code,
		Amount:  code.Compute(app.PurchaseAmount),
		Applied: true,
	}

	usage, err := l.repo.FindUsage(ctx, code.ID, app.UID)
	switch {
	case err == nil:
		if app.Mode == domain.ApplyModeCreate {
			return notApplied, domain.ErrCodeAlreadyUsed
		}
		if usage.OrderSN == app.OrderSN {
			// 订单自己占用的码, 只重新计算金额
			return applied, nil
		}
		return notApplied, nil
	case !errors.Is(err, repository.ErrUsageNotFound):
		return notApplied, fmt.Errorf("查询优惠码使用记录失败: %w", err)
	}

	err = l.repo.RecordUsage(ctx, domain.DiscountUsage{
		CodeID:  code.ID,
		UID:     app.UID,
		OrderSN: app.OrderSN,
		Amount:  applied.Amount,
	})
	switch {
	case err == nil:
		return applied, nil
	case errors.Is(err, repository.ErrUsageExists):
		// 并发下被同一个用户的另一个订单抢先占用
		if app.Mode == domain.ApplyModeCreate {
			return notApplied, domain.ErrCodeAlreadyUsed
		}
		return notApplied, nil
	case errors.Is(err, repository.ErrUsageLimitReached):
		l.logger.Info("优惠码使用次数已达上限", elog.String("code", code.Code))
		return notApplied, nil
	default:
		return notApplied, fmt.Errorf("记录优惠码使用失败: %w", err)
	}
}

func (l *discountLedger) Revert(ctx context.Context, code string, uid int64, orderSN string) error {
	if code == "" {
		return nil
	}
	c, err := l.repo.FindByCode(ctx, code)
	if errors.Is(err, domain.ErrDiscountCodeNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("查询优惠码失败: %w", err)
	}
	deleted, err := l.repo.DeleteUsage(ctx, c.ID, uid, orderSN)
	if err != nil {
		return fmt.Errorf("归还优惠码失败: %w", err)
	}
	if !deleted {
		l.logger.Debug("优惠码没有被该订单占用",
			elog.String("code", code),
			elog.String("orderSN", orderSN))
	}
	return nil
}
