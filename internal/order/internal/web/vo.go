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

package web

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
)

type ItemReq struct {
	SKUSN    string `json:"skuSN"`
	Quantity int64  `json:"quantity"`
}

type Shipping struct {
	Receiver string `json:"receiver"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Province string `json:"province"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Note     string `json:"note,omitempty"`
}

func (s Shipping) toDomain() domain.Shipping {
	return domain.Shipping{
		Receiver: s.Receiver,
		Phone:    s.Phone,
		Email:    s.Email,
		Province: s.Province,
		City:     s.City,
		Address:  s.Address,
		Note:     s.Note,
	}
}

func newShipping(s domain.Shipping) Shipping {
	return Shipping{
		Receiver: s.Receiver,
		Phone:    s.Phone,
		Email:    s.Email,
		Province: s.Province,
		City:     s.City,
		Address:  s.Address,
		Note:     s.Note,
	}
}

type CreateOrderReq struct {
	// RequestID 前端生成, 用于防止重复提交
	RequestID     string    `json:"requestID"`
	Items         []ItemReq `json:"items"`
	Shipping      Shipping  `json:"shipping"`
	PaymentMethod uint8     `json:"paymentMethod"`
	DiscountCode  string    `json:"discountCode,omitempty"`
	AllowPartial  bool      `json:"allowPartial"`
}

type CreateOrderResp struct {
	Order        Order             `json:"order"`
	DroppedItems []UnavailableItem `json:"droppedItems,omitempty"`
}

type UpdateOrderReq struct {
	SN           string    `json:"sn"`
	Items        []ItemReq `json:"items,omitempty"`
	Shipping     *Shipping `json:"shipping,omitempty"`
	DiscountCode *string   `json:"discountCode,omitempty"`
}

type SNReq struct {
	SN string `json:"sn"`
}

type CancelOrderReq struct {
	SN     string `json:"sn"`
	Reason string `json:"reason"`
}

type ReturnOrderReq struct {
	SN     string   `json:"sn"`
	Reason string   `json:"reason"`
	Media  []string `json:"media,omitempty"`
}

type RejectReturnReq struct {
	SN     string `json:"sn"`
	Reason string `json:"reason"`
}

type ListOrdersReq struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type AdminListOrdersReq struct {
	// Status 为 0 时查询全部状态
	Status uint8 `json:"status"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

type ListProductOrdersReq struct {
	SPUID  int64 `json:"spuID"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

type ListOrdersResp struct {
	Total  int64   `json:"total"`
	Orders []Order `json:"orders"`
}

type Order struct {
	ID             int64       `json:"id"`
	SN             string      `json:"sn"`
	BuyerID        int64       `json:"buyerID"`
	Items          []OrderItem `json:"items"`
	Shipping       Shipping    `json:"shipping"`
	PaymentMethod  uint8       `json:"paymentMethod"`
	PaymentStatus  uint8       `json:"paymentStatus"`
	Status         uint8       `json:"status"`
	TotalPrice     int64       `json:"totalPrice"`
	ShippingPrice  int64       `json:"shippingPrice"`
	DiscountCode   string      `json:"discountCode,omitempty"`
	DiscountAmount int64       `json:"discountAmount"`
	FinalPrice     int64       `json:"finalPrice"`
	CancelReason   string      `json:"cancelReason,omitempty"`
	Return         *Return     `json:"return,omitempty"`
	Ctime          int64       `json:"ctime"`
	Utime          int64       `json:"utime"`
}

type OrderItem struct {
	SPUID         int64  `json:"spuID"`
	SKUSN         string `json:"skuSN"`
	Name          string `json:"name"`
	Image         string `json:"image"`
	Color         string `json:"color,omitempty"`
	Size          string `json:"size,omitempty"`
	Attrs         string `json:"attrs,omitempty"`
	Quantity      int64  `json:"quantity"`
	OriginalPrice int64  `json:"originalPrice"`
	DiscountPrice int64  `json:"discountPrice"`
}

type Return struct {
	Reason       string   `json:"reason"`
	Media        []string `json:"media,omitempty"`
	RejectReason string   `json:"rejectReason,omitempty"`
	Approved     bool     `json:"approved"`
}

type UnavailableItem struct {
	SKUSN     string `json:"skuSN"`
	SPUID     int64  `json:"spuID"`
	Requested int64  `json:"requested"`
	Available int64  `json:"available"`
}

type Transition struct {
	Status     uint8  `json:"status"`
	StatusName string `json:"statusName"`
	Action     string `json:"action"`
	Deleted    bool   `json:"deleted,omitempty"`
}

func newOrder(o domain.Order) Order {
	vo := Order{
		ID:      o.ID,
		SN:      o.SN,
		BuyerID: o.BuyerID,
		Items: slice.Map(o.Items, func(idx int, src domain.OrderItem) OrderItem {
			return OrderItem{
				SPUID:         src.SPUID,
				SKUSN:         src.SKUSN,
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
		Shipping:       newShipping(o.Shipping),
		PaymentMethod:  uint8(o.PaymentMethod),
		PaymentStatus:  uint8(o.PaymentStatus),
		Status:         o.Status.ToUint8(),
		TotalPrice:     o.TotalPrice,
		ShippingPrice:  o.ShippingPrice,
		DiscountCode:   o.DiscountCode,
		DiscountAmount: o.DiscountAmount,
		FinalPrice:     o.FinalPrice,
		CancelReason:   o.CancelReason,
		Ctime:          o.Ctime,
		Utime:          o.Utime,
	}
	if o.Return.Reason != "" || o.Return.Approved {
		vo.Return = &Return{
			Reason:       o.Return.Reason,
			Media:        o.Return.Media,
			RejectReason: o.Return.RejectReason,
			Approved:     o.Return.Approved,
		}
	}
	return vo
}

func newUnavailableItem(src domain.UnavailableItem) UnavailableItem {
	return UnavailableItem{
		SKUSN:     src.SKUSN,
		SPUID:     src.SPUID,
		Requested: src.Requested,
		Available: src.Available,
	}
}

func toItemReqs(items []ItemReq) []domain.ItemReq {
	return slice.Map(items, func(idx int, src ItemReq) domain.ItemReq {
		return domain.ItemReq{SKUSN: src.SKUSN, Quantity: src.Quantity}
	})
}
