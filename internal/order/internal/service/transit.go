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

	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/gotomicro/ego/core/elog"
)

func (s *service) CancelOrder(ctx context.Context, id int64, reason string) (domain.Order, error) {
	return s.transit(ctx, id, domain.ActionCancel, func(o *domain.Order) error {
		o.CancelReason = reason
		return nil
	})
}

func (s *service) ConfirmOrder(ctx context.Context, id int64) (domain.Order, error) {
	return s.transit(ctx, id, domain.ActionConfirm, nil)
}

func (s *service) DeliverOrder(ctx context.Context, id int64) (domain.Order, error) {
	return s.transit(ctx, id, domain.ActionDeliver, nil)
}

func (s *service) RequestReturn(ctx context.Context, id int64, reason string, media []string) (domain.Order, error) {
	return s.transit(ctx, id, domain.ActionRequestReturn, func(o *domain.Order) error {
		o.Return.Reason = reason
		o.Return.Media = media
		return nil
	})
}

func (s *service) CompleteReturn(ctx context.Context, id int64) (domain.Order, error) {
	return s.transit(ctx, id, domain.ActionApproveReturn, nil)
}

func (s *service) RejectReturn(ctx context.Context, id int64, reason string) (domain.Order, error) {
	return s.transit(ctx, id, domain.ActionRejectReturn, func(o *domain.Order) error {
		o.Return.RejectReason = reason
		return nil
	})
}

func (s *service) DeleteOrder(ctx context.Context, id int64) (domain.Order, error) {
	return s.transit(ctx, id, domain.ActionDelete, nil)
}

func (s *service) AbandonOrder(ctx context.Context, id int64) (domain.Order, error) {
	return s.transit(ctx, id, domain.ActionDelete, func(o *domain.Order) error {
		live := o.Status == domain.StatusPendingConfirmation || o.Status == domain.StatusAwaitingPickup
		if o.PaymentMethod != domain.PaymentMethodOnline || !o.PaymentStatus.Abandonable() || !live {
			return fmt.Errorf("%w: sn=%s, status=%s, paymentStatus=%d",
				domain.ErrNotAbandonable, o.SN, o.Status, o.PaymentStatus)
		}
		return nil
	})
}

// transit 读取订单, 查状态表, 修改并以版本号持久化, 之后执行认领的补偿动作并发送通知.
// mutate 在状态表校验通过之后执行, 返回错误时不会持久化
func (s *service) transit(ctx context.Context, id int64, action domain.Action, mutate func(o *domain.Order) error) (domain.Order, error) {
	var (
		res     domain.Order
		effects domain.Effect
	)
	err := s.withRetry(ctx, func() error {
		o, er := s.repo.FindOrderByID(ctx, id)
		if er != nil {
			return er
		}
		effects, er = o.Apply(action)
		if er != nil {
			return er
		}
		if mutate != nil {
			if er = mutate(&o); er != nil {
				return er
			}
		}
		if er = s.repo.UpdateOrder(ctx, o, false); er != nil {
			return er
		}
		o.Version++
		res = o
		return nil
	})
	recordTransition(action.String(), err)
	if err != nil {
		return domain.Order{}, err
	}

	dctx, cancel := s.detach(ctx)
	defer cancel()
	res, err = s.settle(dctx, res)
	if err != nil {
		// 订单保持 releasing/reverting, 由定时任务重试
		s.logger.Error("执行订单补偿动作失败",
			elog.Int64("orderID", res.ID),
			elog.String("orderSN", res.SN),
			elog.String("action", action.String()),
			elog.FieldErr(err))
	}
	if effects.Has(domain.EffectNotifyReturnCompleted) {
		s.notifier.NotifyReturnCompleted(ctx, res)
	}
	if effects.Has(domain.EffectNotifyReturnRejected) {
		s.notifier.NotifyReturnRejected(ctx, res)
	}
	return res, nil
}

func (s *service) SettleOrder(ctx context.Context, id int64) (domain.Order, error) {
	o, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	return s.settle(ctx, o)
}

// settle 执行已经认领的库存释放和优惠码归还. 释放使用订单固定的 key, 重复执行不会重复归还库存
func (s *service) settle(ctx context.Context, o domain.Order) (domain.Order, error) {
	var errs []error
	if len(o.Adjustments) > 0 {
		var err error
		if o, err = s.settleAdjustments(ctx, o); err != nil {
			errs = append(errs, err)
		}
	}
	if o.StockStatus == domain.StockStatusReleasing {
		if err := s.releaseAll(ctx, o); err != nil {
			errs = append(errs, err)
		} else if err = s.repo.MarkStockReleased(ctx, o.ID); err != nil && !errors.Is(err, domain.ErrPersistenceConflict) {
			errs = append(errs, fmt.Errorf("标记库存已释放失败: %w", err))
		} else {
			o.StockStatus = domain.StockStatusReleased
		}
	}
	if o.DiscountStatus == domain.DiscountStatusReverting {
		if err := s.discount.Revert(ctx, o.DiscountCode, o.BuyerID, o.SN); err != nil {
			errs = append(errs, fmt.Errorf("归还优惠码失败: %w", err))
		} else if err = s.repo.MarkDiscountReverted(ctx, o.ID); err != nil && !errors.Is(err, domain.ErrPersistenceConflict) {
			errs = append(errs, fmt.Errorf("标记优惠码已归还失败: %w", err))
		} else {
			o.DiscountStatus = domain.DiscountStatusReverted
		}
	}
	return o, errors.Join(errs...)
}

// settleAdjustments 执行修改订单时认领的补偿动作, 执行成功的以版本号从订单中移除.
// 返回的订单是移除之后重新读取的结果
func (s *service) settleAdjustments(ctx context.Context, o domain.Order) (domain.Order, error) {
	var (
		errs    []error
		settled = make(map[string]struct{}, len(o.Adjustments))
	)
	for _, adj := range o.Adjustments {
		if err := s.executeAdjustment(ctx, o, adj); err != nil {
			errs = append(errs, err)
			continue
		}
		settled[adj.BizKey] = struct{}{}
	}
	if len(settled) == 0 {
		return o, errors.Join(errs...)
	}
	err := s.withRetry(ctx, func() error {
		latest, er := s.repo.FindOrderByID(ctx, o.ID)
		if er != nil {
			return er
		}
		remaining := make([]domain.Adjustment, 0, len(latest.Adjustments))
		for _, adj := range latest.Adjustments {
			if _, ok := settled[adj.BizKey]; !ok {
				remaining = append(remaining, adj)
			}
		}
		if len(remaining) == len(latest.Adjustments) {
			o = latest
			return nil
		}
		latest.Adjustments = remaining
		if er = s.repo.UpdateOrder(ctx, latest, false); er != nil {
			return er
		}
		latest.Version++
		o = latest
		return nil
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("移除已执行的补偿动作失败: %w", err))
	}
	return o, errors.Join(errs...)
}

// executeAdjustment 库存释放使用 Adjustment 自己的 key, 重复执行是安全的.
// 被替换的优惠码如果又被订单重新使用, 就不再归还
func (s *service) executeAdjustment(ctx context.Context, o domain.Order, adj domain.Adjustment) error {
	var errs []error
	for _, r := range adj.Releases {
		item := domain.OrderItem{SPUID: r.SPUID, SKUID: r.SKUID}
		if err := s.stock.Release(ctx, stockOperation(adj.BizKey, item, r.Quantity)); err != nil {
			errs = append(errs, fmt.Errorf("释放减少的库存失败 key=%s, sku=%d: %w", adj.BizKey, r.SKUID, err))
		}
	}
	reused := o.DiscountStatus == domain.DiscountStatusApplied && o.DiscountCode == adj.RevertCode
	if adj.RevertCode != "" && !reused {
		if err := s.discount.Revert(ctx, adj.RevertCode, o.BuyerID, o.SN); err != nil {
			errs = append(errs, fmt.Errorf("归还被替换的优惠码失败 code=%s: %w", adj.RevertCode, err))
		}
	}
	return errors.Join(errs...)
}

func (s *service) releaseAll(ctx context.Context, o domain.Order) error {
	var errs []error
	for _, item := range o.Items {
		if err := s.stock.Release(ctx, stockOperation(o.ReleaseKey(), item, item.Quantity)); err != nil {
			errs = append(errs, fmt.Errorf("释放库存失败 sku=%s: %w", item.SKUSN, err))
		}
	}
	return errors.Join(errs...)
}

func (s *service) UpdatePaymentStatus(ctx context.Context, sn string, status domain.PaymentStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %d", domain.ErrInvalidPaymentStatus, status)
	}
	err := s.withRetry(ctx, func() error {
		o, er := s.repo.FindOrderBySN(ctx, sn)
		if er != nil {
			return er
		}
		if o.PaymentStatus == status {
			return nil
		}
		if !o.PaymentStatus.CanChangeTo(status) {
			return fmt.Errorf("%w: sn=%s, %d -> %d", domain.ErrInvalidPaymentStatus, sn, o.PaymentStatus, status)
		}
		if status == domain.PaymentStatusPaid && (o.Deleted || o.Status == domain.StatusCancelled) {
			return fmt.Errorf("%w: sn=%s, status=%s, deleted=%t", domain.ErrOrderClosed, sn, o.Status, o.Deleted)
		}
		o.PaymentStatus = status
		return s.repo.UpdateOrder(ctx, o, false)
	})
	recordTransition("UpdatePaymentStatus", err)
	return err
}
