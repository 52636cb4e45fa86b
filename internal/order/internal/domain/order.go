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

package domain

import (
	"fmt"
	"strings"
)

type OrderStatus uint8

func (s OrderStatus) ToUint8() uint8 {
	return uint8(s)
}

func (s OrderStatus) String() string {
	switch s {
	case StatusPendingConfirmation:
		return "PendingConfirmation"
	case StatusAwaitingPickup:
		return "AwaitingPickup"
	case StatusDelivered:
		return "Delivered"
	case StatusReturnRequested:
		return "ReturnRequested"
	case StatusReturned:
		return "Returned"
	case StatusReturnRejected:
		return "ReturnRejected"
	case StatusCancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("OrderStatus(%d)", uint8(s))
	}
}

const (
	StatusPendingConfirmation OrderStatus = 1 // 待确认
	StatusAwaitingPickup      OrderStatus = 2 // 待取货
	StatusDelivered           OrderStatus = 3 // 已送达
	StatusReturnRequested     OrderStatus = 4 // 申请退货
	StatusReturned            OrderStatus = 5 // 已退货
	StatusReturnRejected      OrderStatus = 6 // 退货被拒
	StatusCancelled           OrderStatus = 7 // 已取消
)

// StockStatus 订单预占库存的状态. releasing 表示已经认领了释放动作但还没有执行完
type StockStatus uint8

func (s StockStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	StockStatusReserved  StockStatus = 1
	StockStatusReleasing StockStatus = 2
	StockStatusReleased  StockStatus = 3
)

type DiscountStatus uint8

func (s DiscountStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	DiscountStatusNone      DiscountStatus = 0
	DiscountStatusApplied   DiscountStatus = 1
	DiscountStatusReverting DiscountStatus = 2
	DiscountStatusReverted  DiscountStatus = 3
)

type PaymentMethod uint8

func (m PaymentMethod) ToUint8() uint8 {
	return uint8(m)
}

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodOnline
}

const (
	PaymentMethodCOD    PaymentMethod = 1 // 货到付款
	PaymentMethodOnline PaymentMethod = 2 // 在线支付, 支付结果异步回调
)

type PaymentStatus uint8

func (s PaymentStatus) ToUint8() uint8 {
	return uint8(s)
}

func (s PaymentStatus) Valid() bool {
	return s >= PaymentStatusUnpaid && s <= PaymentStatusFailed
}

// CanChangeTo 已支付状态不可逆, 未支付的几种子状态之间可以互相转换
func (s PaymentStatus) CanChangeTo(to PaymentStatus) bool {
	if !to.Valid() {
		return false
	}
	if s == PaymentStatusPaid {
		return to == PaymentStatusPaid
	}
	return true
}

// Abandonable 超时未支付时可以被清理的状态
func (s PaymentStatus) Abandonable() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusCancelledByCustomer, PaymentStatusFailed:
		return true
	default:
		return false
	}
}

const (
	PaymentStatusUnpaid              PaymentStatus = 1
	PaymentStatusPaid                PaymentStatus = 2
	PaymentStatusCancelledByCustomer PaymentStatus = 3
	PaymentStatusSuspectedFraud      PaymentStatus = 4
	PaymentStatusFailed              PaymentStatus = 5
)

type Order struct {
	ID            int64
	SN            string
	BuyerID       int64
	Items         []OrderItem
	Shipping      Shipping
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Status        OrderStatus

	// 金额单位为分
	TotalPrice     int64
	ShippingPrice  int64
	DiscountCode   string
	DiscountAmount int64
	FinalPrice     int64

	DiscountStatus DiscountStatus
	StockStatus    StockStatus
	// Adjustments 修改订单时认领的库存释放和优惠码归还, 执行完之后移除
	Adjustments    []Adjustment
	CancelReason   string
	Return         Return
	Deleted        bool
	// Version 乐观锁版本号, 每次持久化加一
	Version        int64
	Ctime          int64
	Utime          int64
}

func (o Order) Pricing() Pricing {
	return Pricing{
		TotalPrice:     o.TotalPrice,
		DiscountAmount: o.DiscountAmount,
		ShippingPrice:  o.ShippingPrice,
		FinalPrice:     o.FinalPrice,
	}
}

func (o *Order) SetPricing(p Pricing) {
	o.TotalPrice = p.TotalPrice
	o.DiscountAmount = p.DiscountAmount
	o.ShippingPrice = p.ShippingPrice
	o.FinalPrice = p.FinalPrice
}

// Apply 按照状态表执行 action, 只修改内存中的订单.
// 需要在持久化之后执行的动作通过 StockStatus 和 DiscountStatus 标记出来
func (o *Order) Apply(action Action) (Effect, error) {
	to, effects, err := Transition(o.Status, o.Deleted, action)
	if err != nil {
		return 0, err
	}
	o.Status = to
	if effects.Has(EffectMarkPaid) {
		o.PaymentStatus = PaymentStatusPaid
	}
	if effects.Has(EffectMarkReturnApproved) {
		o.Return.Approved = true
	}
	if effects.Has(EffectSoftDelete) {
		o.Deleted = true
	}
	if effects.Has(EffectReleaseStock) && o.StockStatus == StockStatusReserved {
		o.StockStatus = StockStatusReleasing
	}
	// 已支付的订单不归还优惠码
	if effects.Has(EffectRevertDiscount) &&
		o.DiscountStatus == DiscountStatusApplied &&
		o.PaymentStatus != PaymentStatusPaid {
		o.DiscountStatus = DiscountStatusReverting
	}
	return effects, nil
}

// Unsettled 是否还有已经认领但没有执行完的补偿动作
func (o Order) Unsettled() bool {
	return o.StockStatus == StockStatusReleasing ||
		o.DiscountStatus == DiscountStatusReverting ||
		len(o.Adjustments) > 0
}

// Adjustment 修改订单之后需要执行的补偿动作, 和修改一起持久化.
// BizKey 是库存账本的幂等 key, RevertCode 为空表示没有需要归还的优惠码
type Adjustment struct {
	BizKey     string
	Releases   []StockDelta
	RevertCode string
}

func (a Adjustment) Empty() bool {
	return len(a.Releases) == 0 && a.RevertCode == ""
}

type StockDelta struct {
	SPUID    int64
	SKUID    int64
	Quantity int64
}

func (o Order) ReserveKey() string {
	return fmt.Sprintf("order:%s:reserve", o.SN)
}

// ReleaseKey 整单释放库存使用固定的 key, 重复释放会被库存账本识别出来
func (o Order) ReleaseKey() string {
	return fmt.Sprintf("order:%s:release", o.SN)
}

func (o Order) AdjustKey(opID string) string {
	return fmt.Sprintf("order:%s:adjust:%s", o.SN, opID)
}

func (o Order) FindItem(skuSN string) (OrderItem, bool) {
	for _, item := range o.Items {
		if item.SKUSN == skuSN {
			return item, true
		}
	}
	return OrderItem{}, false
}

type OrderItem struct {
	SPUID         int64
	SKUID         int64
	SKUSN         string
	CategoryID    int64
	BrandID       int64
	Name          string
	Image         string
	Color         string
	Size          string
	Attrs         string
	Quantity      int64
	// 下单时的单价快照
	OriginalPrice int64
	DiscountPrice int64
}

func (i OrderItem) LineTotal() int64 {
	return i.Quantity * i.DiscountPrice
}

type Shipping struct {
	Receiver string
	Phone    string
	Email    string
	Province string
	City     string
	Address  string
	Note     string
}

func (s Shipping) FullAddress() string {
	return strings.Join([]string{s.Province, s.City, s.Address}, " ")
}

type Return struct {
	Reason       string
	Media        []string
	RejectReason string
	Approved     bool
}

// ItemReq 下单或者修改订单时的商品及数量
type ItemReq struct {
	SKUSN    string
	Quantity int64
}

type CreateOrderReq struct {
	BuyerID       int64
	Items         []ItemReq
	Shipping      Shipping
	PaymentMethod PaymentMethod
	DiscountCode  string
	// AllowPartial 为 true 时丢弃库存不足的商品继续下单
	AllowPartial  bool
}

type CreateResult struct {
	Order        Order
	DroppedItems []UnavailableItem
}

// OrderPatch 修改订单. Items 中数量为 0 表示删除该商品, 没有出现的商品保持不变.
// Shipping 和 DiscountCode 为 nil 表示不修改
type OrderPatch struct {
	Items        []ItemReq
	Shipping     *Shipping
	DiscountCode *string
}

// UnavailableItem 库存不足或者已下架的商品
type UnavailableItem struct {
	SKUSN     string
	SPUID     int64
	SKUID     int64
	Requested int64
	Available int64
}

type SweepKind uint8

const (
	SweepKindConfirm SweepKind = 1 // 超时自动确认
	SweepKindAbandon SweepKind = 2 // 超时未支付
	SweepKindSettle  SweepKind = 3 // 补偿动作未完成
)

// SweepQuery 按 ID 游标分页, Before 为毫秒时间戳
type SweepQuery struct {
	Kind   SweepKind
	Before int64
	Cursor int64
	Limit  int
}
