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
	"errors"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/storefront/internal/product/internal/domain"
	"github.com/ecodeclub/storefront/internal/product/internal/service"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/product")
	g.POST("/sku/stock/adjust", ginx.BS[AdjustStockReq](h.AdjustStock))
}

func (h *AdminHandler) AdjustStock(ctx *ginx.Context, req AdjustStockReq, _ session.Session) (ginx.Result, error) {
	spu, err := h.svc.FindSKUBySN(ctx.Request.Context(), req.SN)
	if errors.Is(err, domain.ErrSKUNotFound) {
		return skuNotFoundResult, nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	skuID := spu.SKUs[0].ID
	err = h.svc.AdjustVariantStock(ctx.Request.Context(), skuID, req.Delta)
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return insufficientStockResult, nil
	case errors.Is(err, domain.ErrSKUNotFound):
		return skuNotFoundResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	stock, err := h.svc.GetVariantStock(ctx.Request.Context(), skuID)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: AdjustStockResp{Stock: stock}}, nil
}
