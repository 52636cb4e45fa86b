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
	"github.com/ecodeclub/storefront/internal/product"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

func (s *service) CreateOrder(ctx context.Context, req domain.CreateOrderReq) (domain.CreateResult, error) {
	res, err := s.createOrder(ctx, req)
	recordTransition("Create", err)
	return res, err
}

func (s *service) createOrder(ctx context.Context, req domain.CreateOrderReq) (domain.CreateResult, error) {
	if err := s.validateItems(req.Items, 1); err != nil {
		return domain.CreateResult{}, err
	}
	if !req.PaymentMethod.Valid() {
		return domain.CreateResult{}, fmt.Errorf("%w: %d", domain.ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	// 预检查只读不写, 并发下单导致的库存不足由预占阶段兜底
	items, unavailable, err := s.snapshot(ctx, req.Items)
	if err != nil {
		return domain.CreateResult{}, err
	}
	if len(unavailable) > 0 && !req.AllowPartial {
		return domain.CreateResult{}, &domain.OutOfStockError{Items: unavailable}
	}
	if len(items) == 0 {
		return domain.CreateResult{}, domain.ErrAllItemsUnavailable
	}

	sn, err := s.snGen.Generate(req.BuyerID)
	if err != nil {
		return domain.CreateResult{}, fmt.Errorf("生成订单序列号失败: %w", err)
	}
	order := domain.Order{
		SN:             sn,
		BuyerID:        req.BuyerID,
		Items:          items,
		Shipping:       req.Shipping,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  domain.PaymentStatusUnpaid,
		Status:         domain.StatusPendingConfirmation,
		DiscountStatus: domain.DiscountStatusNone,
		StockStatus:    domain.StockStatusReserved,
	}
	total := totalPrice(items)

	var (
		discount marketing.DiscountResult
		raced    []domain.UnavailableItem
	)
	sg := saga.New("创建订单:"+sn, s.cfg.CompensateTimeout)
	if req.DiscountCode != "" {
		sg.AddStep("应用优惠码", func(ctx context.Context) error {
			var er error
			discount, er = s.discount.Apply(ctx, marketing.DiscountApplication{
				Code:           req.DiscountCode,
				UID:            req.BuyerID,
				OrderSN:        sn,
				PurchaseAmount: total,
				Mode:           marketing.ApplyModeCreate,
			})
			return er
		}, func(ctx context.Context) error {
			if !discount.Applied {
				return nil
			}
			return s.discount.Revert(ctx, discount.Code, req.BuyerID, sn)
		})
	}
	for _, item := range items {
		op := stockOperation(order.ReserveKey(), item, item.Quantity)
		sg.AddStep("预占库存:"+item.SKUSN, func(ctx context.Context) error {
			er := s.stock.Reserve(ctx, op)
			if errors.Is(er, product.ErrInsufficientStock) || errors.Is(er, product.ErrSKUNotFound) {
				raced = append(raced, s.unavailable(ctx, item, item.Quantity))
			}
			return er
		}, func(ctx context.Context) error {
			return s.stock.Release(ctx, op)
		})
	}
	sg.AddStep("保存订单", func(ctx context.Context) error {
		if discount.Applied {
			order.DiscountCode = discount.Code
			order.DiscountStatus = domain.DiscountStatusApplied
		}
		pricing, er := domain.NewPricing(order.Items, discount.Amount, s.cfg.Shipping.Compute(total))
		if er != nil {
			return er
		}
		order.SetPricing(pricing)
		order, er = s.repo.CreateOrder(ctx, order)
		return er
	}, nil)

	if err = sg.Execute(ctx); err != nil {
		if len(raced) > 0 {
			s.logger.Warn("预占库存失败, 已回滚",
				elog.String("orderSN", sn),
				elog.FieldErr(err))
			return domain.CreateResult{}, &domain.OutOfStockError{Items: raced}
		}
		return domain.CreateResult{}, fmt.Errorf("创建订单失败: %w", err)
	}
	s.notifier.NotifyOrderCreated(ctx, order)
	return domain.CreateResult{Order: order, DroppedItems: unavailable}, nil
}

// validateItems minQuantity 为 1 时用于下单, 为 0 时用于修改订单
func (s *service) validateItems(items []domain.ItemReq, minQuantity int64) error {
	if minQuantity > 0 && len(items) == 0 {
		return fmt.Errorf("%w: 商品为空", domain.ErrInvalidOrderItems)
	}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.SKUSN == "" || item.Quantity < minQuantity {
			return fmt.Errorf("%w: sku=%q, quantity=%d", domain.ErrInvalidOrderItems, item.SKUSN, item.Quantity)
		}
		if _, ok := seen[item.SKUSN]; ok {
			return fmt.Errorf("%w: sku=%q 重复", domain.ErrInvalidOrderItems, item.SKUSN)
		}
		seen[item.SKUSN] = struct{}{}
	}
	return nil
}

// snapshot 并发查询商品并复制下单时的商品信息, 返回值保持请求中的顺序
func (s *service) snapshot(ctx context.Context, reqs []domain.ItemReq) ([]domain.OrderItem, []domain.UnavailableItem, error) {
	type result struct {
		item        domain.OrderItem
		unavailable *domain.UnavailableItem
	}
	results := make([]result, len(reqs))
	var eg errgroup.Group
	for i, req := range reqs {
		eg.Go(func() error {
			spu, err := s.productSvc.FindSKUBySN(ctx, req.SKUSN)
			if errors.Is(err, product.ErrSKUNotFound) {
				results[i].unavailable = &domain.UnavailableItem{SKUSN: req.SKUSN, Requested: req.Quantity}
				return nil
			}
			if err != nil {
				return fmt.Errorf("查询商品 %s 失败: %w", req.SKUSN, err)
			}
			sku := spu.SKUs[0]
			available := sku.Stock
			if !sku.OnShelf() || spu.Status != product.StatusOnShelf {
				available = 0
			}
			if available < req.Quantity {
				results[i].unavailable = &domain.UnavailableItem{
					SKUSN:     sku.SN,
					SPUID:     spu.ID,
					SKUID:     sku.ID,
					Requested: req.Quantity,
					Available: available,
				}
				return nil
			}
			results[i].item = domain.OrderItem{
				SPUID:         spu.ID,
				SKUID:         sku.ID,
				SKUSN:         sku.SN,
				CategoryID:    spu.CategoryID,
				BrandID:       spu.BrandID,
				Name:          sku.Name,
				Image:         sku.Image,
				Color:         sku.Color,
				Size:          sku.Size,
				Attrs:         sku.Attrs,
				Quantity:      req.Quantity,
				OriginalPrice: sku.OriginalPrice,
				DiscountPrice: sku.Price,
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	items := make([]domain.OrderItem, 0, len(reqs))
	var unavailable []domain.UnavailableItem
	for _, r := range results {
		if r.unavailable != nil {
			unavailable = append(unavailable, *r.unavailable)
			continue
		}
		items = append(items, r.item)
	}
	return items, unavailable, nil
}

// unavailable 预占失败时重新查询库存, 查询失败按 0 处理
func (s *service) unavailable(ctx context.Context, item domain.OrderItem, requested int64) domain.UnavailableItem {
	stock, err := s.productSvc.GetVariantStock(ctx, item.SKUID)
	if err != nil {
		stock = 0
	}
	return domain.UnavailableItem{
		SKUSN:     item.SKUSN,
		SPUID:     item.SPUID,
		SKUID:     item.SKUID,
		Requested: requested,
		Available: stock,
	}
}

func totalPrice(items []domain.OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}

func stockOperation(bizKey string, item domain.OrderItem, quantity int64) product.StockOperation {
	return product.StockOperation{
		BizKey: bizKey,
		Item: product.StockItem{
			SPUID:    item.SPUID,
			SKUID:    item.SKUID,
			Quantity: quantity,
		},
	}
}
