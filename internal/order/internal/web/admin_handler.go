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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/order/internal/service"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{
		svc: svc,
	}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/list", ginx.B[AdminListOrdersReq](h.List))
	g.POST("/product/list", ginx.B[ListProductOrdersReq](h.ListProductOrders))
	g.POST("/detail", ginx.B[SNReq](h.Detail))
	g.POST("/deliver", ginx.B[SNReq](h.Deliver))
	g.POST("/return/approve", ginx.B[SNReq](h.ApproveReturn))
	g.POST("/return/reject", ginx.B[RejectReturnReq](h.RejectReturn))
}

func (h *AdminHandler) List(ctx *ginx.Context, req AdminListOrdersReq) (ginx.Result, error) {
	list, count, err := h.svc.ListOrders(ctx.Request.Context(), domain.OrderStatus(req.Status), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListOrdersResp{
			Total: count,
			Orders: slice.Map(list, func(idx int, src domain.Order) Order {
				return newOrder(src)
			}),
		},
	}, nil
}

// ListProductOrders 包含该商品的全部订单
func (h *AdminHandler) ListProductOrders(ctx *ginx.Context, req ListProductOrdersReq) (ginx.Result, error) {
	list, count, err := h.svc.ListProductOrders(ctx.Request.Context(), req.SPUID, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListOrdersResp{
			Total: count,
			Orders: slice.Map(list, func(idx int, src domain.Order) Order {
				return newOrder(src)
			}),
		},
	}, nil
}

func (h *AdminHandler) Detail(ctx *ginx.Context, req SNReq) (ginx.Result, error) {
	order, err := h.svc.FindOrderBySN(ctx.Request.Context(), req.SN)
	if err != nil {
		return errorResult(err)
	}
	return ginx.Result{Data: newOrder(order)}, nil
}

func (h *AdminHandler) Deliver(ctx *ginx.Context, req SNReq) (ginx.Result, error) {
	return h.transit(ctx, req.SN, h.svc.DeliverOrder)
}

func (h *AdminHandler) ApproveReturn(ctx *ginx.Context, req SNReq) (ginx.Result, error) {
	return h.transit(ctx, req.SN, h.svc.CompleteReturn)
}

func (h *AdminHandler) RejectReturn(ctx *ginx.Context, req RejectReturnReq) (ginx.Result, error) {
	return h.transit(ctx, req.SN, func(ctx context.Context, id int64) (domain.Order, error) {
		return h.svc.RejectReturn(ctx, id, req.Reason)
	})
}

func (h *AdminHandler) transit(ctx *ginx.Context, sn string,
	fn func(ctx context.Context, id int64) (domain.Order, error)) (ginx.Result, error) {
	order, err := h.svc.FindOrderBySN(ctx.Request.Context(), sn)
	if err != nil {
		return errorResult(err)
	}
	order, err = fn(ctx.Request.Context(), order.ID)
	if err != nil {
		return errorResult(err)
	}
	return ginx.Result{Data: newOrder(order)}, nil
}
