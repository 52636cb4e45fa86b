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

package event

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
)

const (
	OrderEventsTopic   = "order_events"
	PaymentEventsTopic = "payment_events"
)

const (
	OrderEventTypeCreated         = "created"
	OrderEventTypeReturnCompleted = "return_completed"
	OrderEventTypeReturnRejected  = "return_rejected"
)

// OrderEvent 通知类事件, 消费方只用于展示
type OrderEvent struct {
	EventID    string           `json:"eventId"`
	Type       string           `json:"type"`
	OrderSN    string           `json:"orderSn"`
	BuyerID    int64            `json:"buyerId"`
	Receiver   string           `json:"receiver"`
	Email      string           `json:"email"`
	Address    string           `json:"address"`
	Status     string           `json:"status"`
	FinalPrice int64            `json:"finalPrice"`
	Items      []OrderEventItem `json:"items"`
	// Reason 退货被拒时为拒绝原因, 其他情况为退货原因
	Reason string `json:"reason"`
	Ctime  int64  `json:"ctime"`
}

type OrderEventItem struct {
	SKUSN    string `json:"skuSn"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Price    int64  `json:"price"`
}

func newOrderEvent(typ string, o domain.Order) OrderEvent {
	reason := o.Return.Reason
	if typ == OrderEventTypeReturnRejected {
		reason = o.Return.RejectReason
	}
	return OrderEvent{
		Type:       typ,
		OrderSN:    o.SN,
		BuyerID:    o.BuyerID,
		Receiver:   o.Shipping.Receiver,
		Email:      o.Shipping.Email,
		Address:    o.Shipping.FullAddress(),
		Status:     o.Status.String(),
		FinalPrice: o.FinalPrice,
		Items: slice.Map(o.Items, func(idx int, src domain.OrderItem) OrderEventItem {
			return OrderEventItem{
				SKUSN:    src.SKUSN,
				Name:     src.Name,
				Quantity: src.Quantity,
				Price:    src.DiscountPrice,
			}
		}),
		Reason: reason,
		Ctime:  o.Ctime,
	}
}

// PaymentEvent 由支付网关发送, Status 取值与 domain.PaymentStatus 一致
type PaymentEvent struct {
	OrderSN string `json:"orderSn"`
	Status  uint8  `json:"status"`
}
