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
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/order/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

var _ ginx.Handler = &Handler{}

// Handler 买家接口, 所有操作只能作用于当前登录用户自己的订单
type Handler struct {
	svc   service.Service
	cache ecache.Cache
	// requestTTL 下单请求ID的去重时间窗口
	requestTTL time.Duration
	logger     *elog.Component
}

func NewHandler(svc service.Service, cache ecache.Cache) *Handler {
	return &Handler{
		svc:        svc,
		cache:      cache,
		requestTTL: 24 * time.Hour,
		logger:     elog.DefaultLogger.With(elog.FieldComponent("OrderHandler")),
	}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/create", ginx.BS[CreateOrderReq](h.CreateOrder))
	g.POST("/update", ginx.BS[UpdateOrderReq](h.UpdateOrder))
	g.POST("/cancel", ginx.BS[CancelOrderReq](h.CancelOrder))
	g.POST("/return", ginx.BS[ReturnOrderReq](h.RequestReturn))
	g.POST("/delete", ginx.BS[SNReq](h.DeleteOrder))
	g.POST("/detail", ginx.BS[SNReq](h.RetrieveOrderDetail))
	g.POST("/list", ginx.BS[ListOrdersReq](h.ListOrders))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

// CreateOrder 下单, 同一个 requestID 只会创建一次订单
func (h *Handler) CreateOrder(ctx *ginx.Context, req CreateOrderReq, sess session.Session) (ginx.Result, error) {
	if req.RequestID == "" {
		return invalidParameterResult, nil
	}
	ok, err := h.cache.SetNX(ctx.Request.Context(), h.createOrderRequestKey(req.RequestID), req.RequestID, h.requestTTL)
	if err != nil {
		return systemErrorResult, fmt.Errorf("缓存请求ID失败: %w", err)
	}
	if !ok {
		return duplicateRequestResult, nil
	}

	res, err := h.svc.CreateOrder(ctx.Request.Context(), domain.CreateOrderReq{
		BuyerID:       sess.Claims().Uid,
		Items:         toItemReqs(req.Items),
		Shipping:      req.Shipping.toDomain(),
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		DiscountCode:  req.DiscountCode,
		AllowPartial:  req.AllowPartial,
	})
	if err != nil {
		// 失败后允许使用同一个 requestID 重新提交
		key := h.createOrderRequestKey(req.RequestID)
		if _, er := h.cache.Delete(context.WithoutCancel(ctx.Request.Context()), key); er != nil {
			// 请求ID要等到过期之后才能重新使用
			h.logger.Error("删除下单请求ID失败",
				elog.String("key", key),
				elog.Int64("uid", sess.Claims().Uid),
				elog.FieldErr(er))
		}
		return errorResult(err)
	}
	return ginx.Result{
		Data: CreateOrderResp{
			Order: newOrder(res.Order),
			DroppedItems: slice.Map(res.DroppedItems, func(idx int, src domain.UnavailableItem) UnavailableItem {
				return newUnavailableItem(src)
			}),
		},
	}, nil
}

func (h *Handler) createOrderRequestKey(requestID string) string {
	return fmt.Sprintf("order:create:%s", requestID)
}

func (h *Handler) UpdateOrder(ctx *ginx.Context, req UpdateOrderReq, sess session.Session) (ginx.Result, error) {
	order, err := h.svc.FindUserOrderBySN(ctx.Request.Context(), sess.Claims().Uid, req.SN)
	if err != nil {
		return errorResult(err)
	}
	patch := domain.OrderPatch{
		Items:        toItemReqs(req.Items),
		DiscountCode: req.DiscountCode,
	}
	if req.Shipping != nil {
		s := req.Shipping.toDomain()
		patch.Shipping = &s
	}
	order, err = h.svc.UpdateOrder(ctx.Request.Context(), order.ID, patch)
	if err != nil {
		return errorResult(err)
	}
	return ginx.Result{Data: newOrder(order)}, nil
}

func (h *Handler) CancelOrder(ctx *ginx.Context, req CancelOrderReq, sess session.Session) (ginx.Result, error) {
	return h.transit(ctx, sess, req.SN, func(ctx context.Context, id int64) (domain.Order, error) {
		return h.svc.CancelOrder(ctx, id, req.Reason)
	})
}

func (h *Handler) RequestReturn(ctx *ginx.Context, req ReturnOrderReq, sess session.Session) (ginx.Result, error) {
	if req.Reason == "" {
		return invalidParameterResult, nil
	}
	return h.transit(ctx, sess, req.SN, func(ctx context.Context, id int64) (domain.Order, error) {
		return h.svc.RequestReturn(ctx, id, req.Reason, req.Media)
	})
}

func (h *Handler) DeleteOrder(ctx *ginx.Context, req SNReq, sess session.Session) (ginx.Result, error) {
	res, err := h.transit(ctx, sess, req.SN, h.svc.DeleteOrder)
	if err != nil || res.Code != 0 {
		return res, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) transit(ctx *ginx.Context, sess session.Session, sn string,
	fn func(ctx context.Context, id int64) (domain.Order, error)) (ginx.Result, error) {
	order, err := h.svc.FindUserOrderBySN(ctx.Request.Context(), sess.Claims().Uid, sn)
	if err != nil {
		return errorResult(err)
	}
	order, err = fn(ctx.Request.Context(), order.ID)
	if err != nil {
		return errorResult(err)
	}
	return ginx.Result{Data: newOrder(order)}, nil
}

func (h *Handler) RetrieveOrderDetail(ctx *ginx.Context, req SNReq, sess session.Session) (ginx.Result, error) {
	order, err := h.svc.FindUserOrderBySN(ctx.Request.Context(), sess.Claims().Uid, req.SN)
	if err != nil {
		return errorResult(err)
	}
	return ginx.Result{Data: newOrder(order)}, nil
}

// ListOrders 分页查询用户订单, 不包含已删除的订单
func (h *Handler) ListOrders(ctx *ginx.Context, req ListOrdersReq, sess session.Session) (ginx.Result, error) {
	orders, total, err := h.svc.ListUserOrders(ctx.Request.Context(), sess.Claims().Uid, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListOrdersResp{
			Total: total,
			Orders: slice.Map(orders, func(idx int, src domain.Order) Order {
				return newOrder(src)
			}),
		},
	}, nil
}
