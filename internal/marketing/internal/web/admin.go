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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/storefront/internal/marketing/internal/domain"
	"github.com/ecodeclub/storefront/internal/marketing/internal/repository"
	"github.com/ecodeclub/storefront/internal/marketing/internal/service"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc service.DiscountCodeAdminService
}

func NewAdminHandler(svc service.DiscountCodeAdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/discount")
	g.POST("/create", ginx.BS[CreateDiscountCodeReq](h.Create))
	g.POST("/list", ginx.BS[ListReq](h.List))
	g.POST("/detail", ginx.BS[IDReq](h.Detail))
	g.POST("/status", ginx.BS[SetStatusReq](h.SetStatus))
}

func (h *AdminHandler) Create(ctx *ginx.Context, req CreateDiscountCodeReq, _ session.Session) (ginx.Result, error) {
	id, err := h.svc.CreateDiscountCode(ctx.Request.Context(), req.DiscountCode.toDomain())
	switch {
	case errors.Is(err, domain.ErrInvalidDiscountCode):
		return invalidDiscountCodeResult, nil
	case errors.Is(err, repository.ErrDuplicateCode):
		return duplicateCodeResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{Data: id}, nil
}

func (h *AdminHandler) List(ctx *ginx.Context, req ListReq, _ session.Session) (ginx.Result, error) {
	codes, total, err := h.svc.ListDiscountCodes(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListResp{
			DiscountCodes: slice.Map(codes, func(idx int, src domain.DiscountCode) DiscountCode {
				return newDiscountCode(src)
			}),
			Total: total,
		},
	}, nil
}

func (h *AdminHandler) Detail(ctx *ginx.Context, req IDReq, _ session.Session) (ginx.Result, error) {
	c, err := h.svc.FindDiscountCode(ctx.Request.Context(), req.ID)
	if errors.Is(err, domain.ErrDiscountCodeNotFound) {
		return codeNotFoundResult, nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: newDiscountCode(c)}, nil
}

func (h *AdminHandler) SetStatus(ctx *ginx.Context, req SetStatusReq, _ session.Session) (ginx.Result, error) {
	err := h.svc.SetDiscountCodeStatus(ctx.Request.Context(), req.ID, domain.Status(req.Status))
	switch {
	case errors.Is(err, domain.ErrInvalidDiscountCode):
		return invalidDiscountCodeResult, nil
	case errors.Is(err, domain.ErrDiscountCodeNotFound):
		return codeNotFoundResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}
