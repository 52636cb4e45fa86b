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

package order

import (
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/order/internal/event"
	"github.com/ecodeclub/storefront/internal/order/internal/job"
	"github.com/ecodeclub/storefront/internal/order/internal/service"
	"github.com/ecodeclub/storefront/internal/order/internal/web"
)

type (
	Handler         = web.Handler
	AdminHandler    = web.AdminHandler
	Service         = service.Service
	Order           = domain.Order
	OrderItem       = domain.OrderItem
	OrderStatus     = domain.OrderStatus
	PaymentMethod   = domain.PaymentMethod
	PaymentStatus   = domain.PaymentStatus
	CreateOrderReq  = domain.CreateOrderReq
	ItemReq         = domain.ItemReq
	Shipping        = domain.Shipping
	UnavailableItem = domain.UnavailableItem

	OrderEvent     = event.OrderEvent
	OrderEventItem = event.OrderEventItem
	PaymentEvent   = event.PaymentEvent

	PaymentEventConsumer    = event.PaymentEventConsumer
	ConfirmPendingOrdersJob = job.ConfirmPendingOrdersJob
	AbandonUnpaidOrdersJob  = job.AbandonUnpaidOrdersJob
	SettleOrdersJob         = job.SettleOrdersJob
)

const (
	OrderEventsTopic   = event.OrderEventsTopic
	PaymentEventsTopic = event.PaymentEventsTopic

	OrderEventTypeCreated         = event.OrderEventTypeCreated
	OrderEventTypeReturnCompleted = event.OrderEventTypeReturnCompleted
	OrderEventTypeReturnRejected  = event.OrderEventTypeReturnRejected
)

var (
	ErrOrderNotFound       = domain.ErrOrderNotFound
	ErrOutOfStock          = domain.ErrOutOfStock
	ErrInvalidTransition   = domain.ErrInvalidTransition
	ErrPersistenceConflict = domain.ErrPersistenceConflict
	ErrOrderClosed         = domain.ErrOrderClosed
)

type Module struct {
	Hdl             *Handler
	AdminHdl        *AdminHandler
	Svc             Service
	PaymentConsumer *PaymentEventConsumer
	ConfirmJob      *ConfirmPendingOrdersJob
	AbandonJob      *AbandonUnpaidOrdersJob
	SettleJob       *SettleOrdersJob
}
