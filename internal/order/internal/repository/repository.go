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
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/order/internal/repository/dao"
)

//go:generate mockgen -source=./repository.go -package=repomocks -destination=./mocks/order.mock.go OrderRepository
type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	// UpdateOrder 以 order.Version 做乐观锁, 冲突时返回 domain.ErrPersistenceConflict
	UpdateOrder(ctx context.Context, order domain.Order, withItems bool) error
	MarkStockReleased(ctx context.Context, id int64) error
	MarkDiscountReverted(ctx context.Context, id int64) error

	FindOrderByID(ctx context.Context, id int64) (domain.Order, error)
	FindOrderBySN(ctx context.Context, sn string) (domain.Order, error)
	ListUserOrders(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, error)
	TotalUserOrders(ctx context.Context, uid int64) (int64, error)
	ListProductOrders(ctx context.Context, spuID int64, offset, limit int) ([]domain.Order, error)
	TotalProductOrders(ctx context.Context, spuID int64) (int64, error)
	ListOrders(ctx context.Context, status domain.OrderStatus, offset, limit int) ([]domain.Order, error)
	TotalOrders(ctx context.Context, status domain.OrderStatus) (int64, error)
	// ListSweepCandidates 返回的订单不包含订单项
	ListSweepCandidates(ctx context.Context, q domain.SweepQuery) ([]domain.Order, error)
}

const (
	adjustStatusNone    uint8 = 0
	adjustStatusPending uint8 = 1
)

func NewRepository(d dao.OrderDAO) OrderRepository {
	return &orderRepository{d: d}
}

type orderRepository struct {
	d dao.OrderDAO
}

func (o *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	order.Version = 1
	id, err := o.d.Create(ctx, o.toOrderEntity(order), o.toOrderItemEntities(order.Items))
	if err != nil {
		return domain.Order{}, err
	}
	order.ID = id
	return order, nil
}

func (o *orderRepository) UpdateOrder(ctx context.Context, order domain.Order, withItems bool) error {
	var items []dao.OrderItem
	if withItems {
		items = o.toOrderItemEntities(order.Items)
	}
	return o.translate(o.d.Update(ctx, o.toOrderEntity(order), items))
}

func (o *orderRepository) MarkStockReleased(ctx context.Context, id int64) error {
	return o.translate(o.d.MarkStockReleased(ctx, id,
		domain.StockStatusReleasing.ToUint8(), domain.StockStatusReleased.ToUint8()))
}

func (o *orderRepository) MarkDiscountReverted(ctx context.Context, id int64) error {
	return o.translate(o.d.MarkDiscountReverted(ctx, id,
		domain.DiscountStatusReverting.ToUint8(), domain.DiscountStatusReverted.ToUint8()))
}

func (o *orderRepository) FindOrderByID(ctx context.Context, id int64) (domain.Order, error) {
	order, err := o.d.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, o.translate(err)
	}
	return o.withItems(ctx, order)
}

func (o *orderRepository) FindOrderBySN(ctx context.Context, sn string) (domain.Order, error) {
	order, err := o.d.FindBySN(ctx, sn)
	if err != nil {
		return domain.Order{}, o.translate(err)
	}
	return o.withItems(ctx, order)
}

func (o *orderRepository) withItems(ctx context.Context, order dao.Order) (domain.Order, error) {
	items, err := o.d.FindItemsByOrderIDs(ctx, []int64{order.Id})
	if err != nil {
		return domain.Order{}, fmt.Errorf("查找订单项失败: %w", err)
	}
	return o.toOrderDomain(order, items), nil
}

func (o *orderRepository) ListUserOrders(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, error) {
	orders, err := o.d.ListByBuyer(ctx, uid, offset, limit)
	if err != nil {
		return nil, err
	}
	return o.batchWithItems(ctx, orders)
}

func (o *orderRepository) TotalUserOrders(ctx context.Context, uid int64) (int64, error) {
	return o.d.CountByBuyer(ctx, uid)
}

func (o *orderRepository) ListProductOrders(ctx context.Context, spuID int64, offset, limit int) ([]domain.Order, error) {
	orders, err := o.d.ListBySPU(ctx, spuID, offset, limit)
	if err != nil {
		return nil, err
	}
	return o.batchWithItems(ctx, orders)
}

func (o *orderRepository) TotalProductOrders(ctx context.Context, spuID int64) (int64, error) {
	return o.d.CountBySPU(ctx, spuID)
}

func (o *orderRepository) ListOrders(ctx context.Context, status domain.OrderStatus, offset, limit int) ([]domain.Order, error) {
	orders, err := o.d.List(ctx, status.ToUint8(), offset, limit)
	if err != nil {
		return nil, err
	}
	return o.batchWithItems(ctx, orders)
}

func (o *orderRepository) TotalOrders(ctx context.Context, status domain.OrderStatus) (int64, error) {
	return o.d.Count(ctx, status.ToUint8())
}

// batchWithItems 一次查询出所有订单的订单项
func (o *orderRepository) batchWithItems(ctx context.Context, orders []dao.Order) ([]domain.Order, error) {
	ids := slice.Map(orders, func(idx int, src dao.Order) int64 {
		return src.Id
	})
	items, err := o.d.FindItemsByOrderIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("查找订单项失败: %w", err)
	}
	grouped := make(map[int64][]dao.OrderItem, len(orders))
	for _, item := range items {
		grouped[item.OrderId] = append(grouped[item.OrderId], item)
	}
	return slice.Map(orders, func(idx int, src dao.Order) domain.Order {
		return o.toOrderDomain(src, grouped[src.Id])
	}), nil
}

func (o *orderRepository) ListSweepCandidates(ctx context.Context, q domain.SweepQuery) ([]domain.Order, error) {
	var (
		orders []dao.Order
		err    error
	)
	live := []uint8{
		domain.StatusPendingConfirmation.ToUint8(),
		domain.StatusAwaitingPickup.ToUint8(),
	}
	switch q.Kind {
	case domain.SweepKindConfirm:
		orders, err = o.d.ListCreatedBefore(ctx, live[:1], q.Before, q.Cursor, q.Limit)
	case domain.SweepKindAbandon:
		orders, err = o.d.ListUnpaidBefore(ctx,
			domain.PaymentMethodOnline.ToUint8(),
			[]uint8{
				domain.PaymentStatusUnpaid.ToUint8(),
				domain.PaymentStatusCancelledByCustomer.ToUint8(),
				domain.PaymentStatusFailed.ToUint8(),
			},
			live, q.Before, q.Cursor, q.Limit)
	case domain.SweepKindSettle:
		orders, err = o.d.ListUnsettledBefore(ctx,
			domain.StockStatusReleasing.ToUint8(),
			domain.DiscountStatusReverting.ToUint8(),
			adjustStatusPending,
			q.Before, q.Cursor, q.Limit)
	default:
		return nil, fmt.Errorf("未知的清理类型: %d", q.Kind)
	}
	if err != nil {
		return nil, err
	}
	return slice.Map(orders, func(idx int, src dao.Order) domain.Order {
		return o.toOrderDomain(src, nil)
	}), nil
}

func (o *orderRepository) translate(err error) error {
	switch {
	case errors.Is(err, dao.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", domain.ErrOrderNotFound, err)
	case errors.Is(err, dao.ErrVersionConflict):
		return fmt.Errorf("%w: %w", domain.ErrPersistenceConflict, err)
	default:
		return err
	}
}

func (o *orderRepository) toOrderEntity(order domain.Order) dao.Order {
	return dao.Order{
		Id:                 order.ID,
		SN:                 order.SN,
		BuyerId:            order.BuyerID,
		ShippingReceiver:   order.Shipping.Receiver,
		ShippingPhone:      order.Shipping.Phone,
		ShippingEmail:      order.Shipping.Email,
		ShippingProvince:   order.Shipping.Province,
		ShippingCity:       order.Shipping.City,
		ShippingAddress:    order.Shipping.Address,
		ShippingNote:       order.Shipping.Note,
		PaymentMethod:      order.PaymentMethod.ToUint8(),
		PaymentStatus:      order.PaymentStatus.ToUint8(),
		Status:             order.Status.ToUint8(),
		TotalPrice:         order.TotalPrice,
		ShippingPrice:      order.ShippingPrice,
		DiscountCode:       order.DiscountCode,
		DiscountAmount:     order.DiscountAmount,
		FinalPrice:         order.FinalPrice,
		DiscountStatus:     order.DiscountStatus.ToUint8(),
		StockStatus:        order.StockStatus.ToUint8(),
		Adjustments:        o.toAdjustmentEntities(order.Adjustments),
		AdjustStatus:       o.adjustStatus(order.Adjustments),
		CancelReason:       order.CancelReason,
		ReturnReason:       order.Return.Reason,
		ReturnMedia:        sqlx.JsonColumn[[]string]{Val: order.Return.Media, Valid: len(order.Return.Media) != 0},
		ReturnRejectReason: order.Return.RejectReason,
		ReturnApproved:     order.Return.Approved,
		Deleted:            order.Deleted,
		Version:            order.Version,
	}
}

func (o *orderRepository) toOrderItemEntities(items []domain.OrderItem) []dao.OrderItem {
	return slice.Map(items, func(idx int, src domain.OrderItem) dao.OrderItem {
		return dao.OrderItem{
			SPUId:         src.SPUID,
			SKUId:         src.SKUID,
			SKUSN:         src.SKUSN,
			CategoryId:    src.CategoryID,
			BrandId:       src.BrandID,
			Name:          src.Name,
			Image:         src.Image,
			Color:         src.Color,
			Size:          src.Size,
			Attrs:         src.Attrs,
			Quantity:      src.Quantity,
			OriginalPrice: src.OriginalPrice,
			DiscountPrice: src.DiscountPrice,
		}
	})
}

func (o *orderRepository) toOrderDomain(order dao.Order, items []dao.OrderItem) domain.Order {
	return domain.Order{
		ID:      order.Id,
		SN:      order.SN,
		BuyerID: order.BuyerId,
		Items: slice.Map(items, func(idx int, src dao.OrderItem) domain.OrderItem {
			return domain.OrderItem{
				SPUID:         src.SPUId,
				SKUID:         src.SKUId,
				SKUSN:         src.SKUSN,
				CategoryID:    src.CategoryId,
				BrandID:       src.BrandId,
				Name:          src.Name,
				Image:         src.Image,
				Color:         src.Color,
				Size:          src.Size,
				Attrs:         src.Attrs,
				Quantity:      src.Quantity,
				OriginalPrice: src.OriginalPrice,
				DiscountPrice: src.DiscountPrice,
			}
		}),
		Shipping: domain.Shipping{
			Receiver: order.ShippingReceiver,
			Phone:    order.ShippingPhone,
			Email:    order.ShippingEmail,
			Province: order.ShippingProvince,
			City:     order.ShippingCity,
			Address:  order.ShippingAddress,
			Note:     order.ShippingNote,
		},
		PaymentMethod:  domain.PaymentMethod(order.PaymentMethod),
		PaymentStatus:  domain.PaymentStatus(order.PaymentStatus),
		Status:         domain.OrderStatus(order.Status),
		TotalPrice:     order.TotalPrice,
		ShippingPrice:  order.ShippingPrice,
		DiscountCode:   order.DiscountCode,
		DiscountAmount: order.DiscountAmount,
		FinalPrice:     order.FinalPrice,
		DiscountStatus: domain.DiscountStatus(order.DiscountStatus),
		StockStatus:    domain.StockStatus(order.StockStatus),
		Adjustments:    o.toAdjustmentDomains(order.Adjustments.Val),
		CancelReason:   order.CancelReason,
		Return: domain.Return{
			Reason:       order.ReturnReason,
			Media:        order.ReturnMedia.Val,
			RejectReason: order.ReturnRejectReason,
			Approved:     order.ReturnApproved,
		},
		Deleted: order.Deleted,
		Version: order.Version,
		Ctime:   order.Ctime,
		Utime:   order.Utime,
	}
}

func (o *orderRepository) adjustStatus(adjustments []domain.Adjustment) uint8 {
	if len(adjustments) == 0 {
		return adjustStatusNone
	}
	return adjustStatusPending
}

func (o *orderRepository) toAdjustmentEntities(adjustments []domain.Adjustment) sqlx.JsonColumn[[]dao.Adjustment] {
	val := slice.Map(adjustments, func(idx int, src domain.Adjustment) dao.Adjustment {
		releases := slice.Map(src.Releases, func(idx int, src domain.StockDelta) dao.AdjustRelease {
			return dao.AdjustRelease{SPUId: src.SPUID, SKUId: src.SKUID, Quantity: src.Quantity}
		})
		return dao.Adjustment{BizKey: src.BizKey, Releases: releases, RevertCode: src.RevertCode}
	})
	return sqlx.JsonColumn[[]dao.Adjustment]{Val: val, Valid: len(adjustments) != 0}
}

func (o *orderRepository) toAdjustmentDomains(adjustments []dao.Adjustment) []domain.Adjustment {
	if len(adjustments) == 0 {
		return nil
	}
	return slice.Map(adjustments, func(idx int, src dao.Adjustment) domain.Adjustment {
		releases := slice.Map(src.Releases, func(idx int, src dao.AdjustRelease) domain.StockDelta {
			return domain.StockDelta{SPUID: src.SPUId, SKUID: src.SKUId, Quantity: src.Quantity}
		})
		return domain.Adjustment{BizKey: src.BizKey, Releases: releases, RevertCode: src.RevertCode}
	})
}
