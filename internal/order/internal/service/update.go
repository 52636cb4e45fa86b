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

	"github.com/ecodeclub/storefront/internal/marketing"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/pkg/saga"
	"github.com/ecodeclub/storefront/internal/pkg/snowflake"
	"github.com/ecodeclub/storefront/internal/product"
	"github.com/gotomicro/ego/core/elog"
)

type quantityDelta struct {
	item  domain.OrderItem
	delta int64
}

func (s *service) UpdateOrder(ctx context.Context, id int64, patch domain.OrderPatch) (domain.Order, error) {
	if err := s.validateItems(patch.Items, 0); err != nil {
		return domain.Order{}, err
	}
	var res domain.Order
	err := s.withRetry(ctx, func() error {
		var er error
		res, er = s.updateOrder(ctx, id, patch)
		return er
	})
	recordTransition(domain.ActionUpdate.String(), err)
	return res, err
}

// updateOrder 新增的预占和新占用的优惠码在持久化失败时回滚.
// 减少数量的库存释放和被替换的优惠码归还作为 Adjustment 和订单一起保存, 之后再执行
func (s *service) updateOrder(ctx context.Context, id int64, patch domain.OrderPatch) (domain.Order, error) {
	o, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if _, err = o.Apply(domain.ActionUpdate); err != nil {
		return domain.Order{}, err
	}
	items, increases, decreases, err := s.patchItems(o.Items, patch.Items)
	if err != nil {
		return domain.Order{}, err
	}
	opID, err := s.idGen.Generate(snowflake.BizStockAdjust)
	if err != nil {
		return domain.Order{}, fmt.Errorf("生成库存操作ID失败: %w", err)
	}
	adjustKey := o.AdjustKey(opID.String())

	oldCode := ""
	if o.DiscountStatus == domain.DiscountStatusApplied {
		oldCode = o.DiscountCode
	}
	newCode := oldCode
	if patch.DiscountCode != nil {
		newCode = *patch.DiscountCode
	}
	o.Items = items
	if patch.Shipping != nil {
		o.Shipping = *patch.Shipping
	}
	total := totalPrice(items)

	var (
		discount marketing.DiscountResult
		raced    []domain.UnavailableItem
	)
	sg := saga.New("修改订单:"+o.SN, s.cfg.CompensateTimeout)
	for _, inc := range increases {
		op := stockOperation(adjustKey, inc.item, inc.delta)
		sg.AddStep("追加预占:"+inc.item.SKUSN, func(ctx context.Context) error {
			er := s.stock.Reserve(ctx, op)
			if errors.Is(er, product.ErrInsufficientStock) || errors.Is(er, product.ErrSKUNotFound) {
				raced = append(raced, s.unavailable(ctx, inc.item, inc.delta))
			}
			return er
		}, func(ctx context.Context) error {
			return s.stock.Release(ctx, op)
		})
	}
	if newCode != "" {
		sg.AddStep("重新计算优惠", func(ctx context.Context) error {
			var er error
			discount, er = s.discount.Apply(ctx, marketing.DiscountApplication{
				Code:           newCode,
				UID:            o.BuyerID,
				OrderSN:        o.SN,
				PurchaseAmount: total,
				Mode:           marketing.ApplyModeUpdate,
			})
			return er
		}, func(ctx context.Context) error {
			// 订单原本占用的码不归还
			if !discount.Applied || discount.Code == oldCode {
				return nil
			}
			return s.discount.Revert(ctx, discount.Code, o.BuyerID, o.SN)
		})
	}
	sg.AddStep("保存订单", func(ctx context.Context) error {
		o.DiscountCode, o.DiscountStatus = "", domain.DiscountStatusNone
		if discount.Applied {
			o.DiscountCode, o.DiscountStatus = discount.Code, domain.DiscountStatusApplied
		}
		pricing, er := domain.NewPricing(o.Items, discount.Amount, s.cfg.Shipping.Compute(total))
		if er != nil {
			return er
		}
		o.SetPricing(pricing)
		adjust := domain.Adjustment{BizKey: adjustKey}
		for _, dec := range decreases {
			adjust.Releases = append(adjust.Releases, domain.StockDelta{
				SPUID:    dec.item.SPUID,
				SKUID:    dec.item.SKUID,
				Quantity: dec.delta,
			})
		}
		if oldCode != "" && (!discount.Applied || discount.Code != oldCode) {
			adjust.RevertCode = oldCode
		}
		if !adjust.Empty() {
			o.Adjustments = append(o.Adjustments, adjust)
		}
		return s.repo.UpdateOrder(ctx, o, len(patch.Items) > 0)
	}, nil)

	if err = sg.Execute(ctx); err != nil {
		if len(raced) > 0 {
			return domain.Order{}, &domain.OutOfStockError{Items: raced}
		}
		return domain.Order{}, err
	}
	o.Version++

	dctx, cancel := s.detach(ctx)
	defer cancel()
	if o, err = s.settleAdjustments(dctx, o); err != nil {
		// 补偿动作已经随订单保存, 由定时任务重试
		s.logger.Error("执行修改订单的补偿动作失败",
			elog.Int64("orderID", o.ID),
			elog.String("orderSN", o.SN),
			elog.String("bizKey", adjustKey),
			elog.FieldErr(err))
	}
	return o, nil
}

// patchItems 只允许修改已有商品的数量, 数量为 0 表示删除该商品
func (s *service) patchItems(current []domain.OrderItem, patch []domain.ItemReq) ([]domain.OrderItem, []quantityDelta, []quantityDelta, error) {
	quantities := make(map[string]int64, len(patch))
	for _, p := range patch {
		quantities[p.SKUSN] = p.Quantity
	}
	var (
		items     = make([]domain.OrderItem, 0, len(current))
		increases []quantityDelta
		decreases []quantityDelta
	)
	for _, item := range current {
		q, ok := quantities[item.SKUSN]
		if !ok {
			items = append(items, item)
			continue
		}
		delete(quantities, item.SKUSN)
		switch {
		case q > item.Quantity:
			increases = append(increases, quantityDelta{item: item, delta: q - item.Quantity})
		case q < item.Quantity:
			decreases = append(decreases, quantityDelta{item: item, delta: item.Quantity - q})
		}
		if q > 0 {
			item.Quantity = q
			items = append(items, item)
		}
	}
	if len(quantities) > 0 {
		return nil, nil, nil, fmt.Errorf("%w: 只能修改订单中已有的商品", domain.ErrInvalidOrderItems)
	}
	if len(items) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: 不能删除全部商品, 请取消订单", domain.ErrInvalidOrderItems)
	}
	return items, increases, decreases, nil
}
