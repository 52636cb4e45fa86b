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
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/order/internal/errs"
	ordermocks "github.com/ecodeclub/storefront/internal/order/mocks"
	"github.com/ecodeclub/storefront/internal/test"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testUID = int64(123)

func newServer(t *testing.T, ctrl *gomock.Controller, before func(svc *ordermocks.MockService)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := ordermocks.NewMockService(ctrl)
	before(svc)
	server := gin.New()
	server.Use(func(ctx *gin.Context) {
		ctx.Set("_session", session.NewMemorySession(session.Claims{
			Uid:  testUID,
			Data: map[string]string{"creator": "true"},
		}))
	})
	NewHandler(svc, nil).PrivateRoutes(server)
	return server
}

func TestHandler_Transit(t *testing.T) {
	pending := domain.Order{ID: 1, SN: "SO001", BuyerID: testUID, Status: domain.StatusPendingConfirmation}
	testCases := []struct {
		name     string
		path     string
		req      any
		before   func(svc *ordermocks.MockService)
		wantCode int
		assert   func(t *testing.T, res test.Result[any])
	}{
		{
			name: "取消订单",
			path: "/order/cancel",
			req:  CancelOrderReq{SN: "SO001", Reason: "不想要了"},
			before: func(svc *ordermocks.MockService) {
				svc.EXPECT().FindUserOrderBySN(gomock.Any(), testUID, "SO001").Return(pending, nil)
				svc.EXPECT().CancelOrder(gomock.Any(), int64(1), "不想要了").Return(domain.Order{
					ID: 1, SN: "SO001", Status: domain.StatusCancelled,
				}, nil)
			},
			assert: func(t *testing.T, res test.Result[any]) {
				data := res.Data.(map[string]any)
				assert.Equal(t, float64(domain.StatusCancelled), data["status"])
			},
		},
		{
			name: "不是自己的订单",
			path: "/order/cancel",
			req:  CancelOrderReq{SN: "SO002"},
			before: func(svc *ordermocks.MockService) {
				svc.EXPECT().FindUserOrderBySN(gomock.Any(), testUID, "SO002").
					Return(domain.Order{}, domain.ErrOrderNotFound)
			},
			wantCode: errs.OrderNotFound.Code,
		},
		{
			name: "状态不允许",
			path: "/order/cancel",
			req:  CancelOrderReq{SN: "SO001"},
			before: func(svc *ordermocks.MockService) {
				svc.EXPECT().FindUserOrderBySN(gomock.Any(), testUID, "SO001").Return(pending, nil)
				svc.EXPECT().CancelOrder(gomock.Any(), int64(1), "").Return(domain.Order{},
					&domain.InvalidTransitionError{Status: domain.StatusDelivered, Action: domain.ActionCancel})
			},
			wantCode: errs.InvalidTransition.Code,
			assert: func(t *testing.T, res test.Result[any]) {
				assert.Equal(t, map[string]any{
					"status":     float64(domain.StatusDelivered),
					"statusName": domain.StatusDelivered.String(),
					"action":     domain.ActionCancel.String(),
				}, res.Data)
			},
		},
		{
			name: "修改订单_库存不足",
			path: "/order/update",
			req:  UpdateOrderReq{SN: "SO001", Items: []ItemReq{{SKUSN: "sku-1", Quantity: 10}}},
			before: func(svc *ordermocks.MockService) {
				svc.EXPECT().FindUserOrderBySN(gomock.Any(), testUID, "SO001").Return(pending, nil)
				svc.EXPECT().UpdateOrder(gomock.Any(), int64(1), domain.OrderPatch{
					Items: []domain.ItemReq{{SKUSN: "sku-1", Quantity: 10}},
				}).Return(domain.Order{}, &domain.OutOfStockError{Items: []domain.UnavailableItem{
					{SKUSN: "sku-1", SPUID: 1, SKUID: 11, Requested: 7, Available: 3},
				}})
			},
			wantCode: errs.OutOfStock.Code,
			assert: func(t *testing.T, res test.Result[any]) {
				assert.Equal(t, []any{map[string]any{
					"skuSN":     "sku-1",
					"spuID":     float64(1),
					"requested": float64(7),
					"available": float64(3),
				}}, res.Data)
			},
		},
		{
			name: "申请退货_原因为空",
			path: "/order/return",
			req:  ReturnOrderReq{SN: "SO001"},
			before: func(svc *ordermocks.MockService) {
			},
			wantCode: errs.InvalidParameter.Code,
		},
		{
			name: "删除订单",
			path: "/order/delete",
			req:  SNReq{SN: "SO001"},
			before: func(svc *ordermocks.MockService) {
				svc.EXPECT().FindUserOrderBySN(gomock.Any(), testUID, "SO001").Return(pending, nil)
				svc.EXPECT().DeleteOrder(gomock.Any(), int64(1)).Return(domain.Order{ID: 1, Deleted: true}, nil)
			},
			assert: func(t *testing.T, res test.Result[any]) {
				assert.Equal(t, "OK", res.Msg)
			},
		},
		{
			name: "并发修改",
			path: "/order/delete",
			req:  SNReq{SN: "SO001"},
			before: func(svc *ordermocks.MockService) {
				svc.EXPECT().FindUserOrderBySN(gomock.Any(), testUID, "SO001").Return(pending, nil)
				svc.EXPECT().DeleteOrder(gomock.Any(), int64(1)).Return(domain.Order{}, domain.ErrPersistenceConflict)
			},
			wantCode: errs.ConcurrentModification.Code,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			server := newServer(t, ctrl, tc.before)

			req, err := http.NewRequest(http.MethodPost, tc.path, iox.NewJSONReader(tc.req))
			require.NoError(t, err)
			req.Header.Set("content-type", "application/json")
			recorder := test.NewJSONResponseRecorder[any]()
			server.ServeHTTP(recorder, req)
			require.Equal(t, http.StatusOK, recorder.Code)
			res := recorder.MustScan()
			assert.Equal(t, tc.wantCode, res.Code)
			if tc.assert != nil {
				tc.assert(t, res)
			}
		})
	}
}

// requestIDCache 只实现下单去重用到的两个方法
type requestIDCache struct {
	ecache.Cache
	deleteErr error
	deleted   []string
}

func (c *requestIDCache) SetNX(ctx context.Context, key string, val any, expiration time.Duration) (bool, error) {
	return true, nil
}

func (c *requestIDCache) Delete(ctx context.Context, key ...string) (int64, error) {
	c.deleted = append(c.deleted, key...)
	return 0, c.deleteErr
}

func TestHandler_CreateOrderFailed(t *testing.T) {
	testCases := []struct {
		name      string
		deleteErr error
	}{
		{
			name: "删除请求ID成功",
		},
		{
			name:      "删除请求ID失败_仍然返回下单的错误",
			deleteErr: errors.New("mock redis error"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			gin.SetMode(gin.TestMode)
			svc := ordermocks.NewMockService(ctrl)
			svc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
				Return(domain.CreateResult{}, domain.ErrAllItemsUnavailable)
			cache := &requestIDCache{deleteErr: tc.deleteErr}
			server := gin.New()
			server.Use(func(ctx *gin.Context) {
				ctx.Set("_session", session.NewMemorySession(session.Claims{Uid: testUID}))
			})
			NewHandler(svc, cache).PrivateRoutes(server)

			req, err := http.NewRequest(http.MethodPost, "/order/create", iox.NewJSONReader(CreateOrderReq{
				RequestID: "req-1",
				Items:     []ItemReq{{SKUSN: "sku-1", Quantity: 1}},
			}))
			require.NoError(t, err)
			req.Header.Set("content-type", "application/json")
			recorder := test.NewJSONResponseRecorder[any]()
			server.ServeHTTP(recorder, req)
			require.Equal(t, http.StatusOK, recorder.Code)
			res := recorder.MustScan()
			assert.Equal(t, errs.AllItemsUnavailable.Code, res.Code)
			assert.Equal(t, []string{"order:create:req-1"}, cache.deleted)
		})
	}
}

func TestHandler_ListOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	server := newServer(t, ctrl, func(svc *ordermocks.MockService) {
		svc.EXPECT().ListUserOrders(gomock.Any(), testUID, 0, 2).Return([]domain.Order{
			{ID: 2, SN: "SO002", Items: []domain.OrderItem{{SKUSN: "sku-1", Quantity: 1}}},
			{ID: 1, SN: "SO001", Return: domain.Return{Reason: "坏了"}},
		}, int64(5), nil)
	})

	req, err := http.NewRequest(http.MethodPost, "/order/list", iox.NewJSONReader(ListOrdersReq{Offset: 0, Limit: 2}))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[ListOrdersResp]()
	server.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)
	res := recorder.MustScan()
	assert.Equal(t, int64(5), res.Data.Total)
	require.Len(t, res.Data.Orders, 2)
	assert.Equal(t, "SO002", res.Data.Orders[0].SN)
	assert.Nil(t, res.Data.Orders[0].Return)
	assert.Equal(t, "坏了", res.Data.Orders[1].Return.Reason)
}

func TestAdminHandler(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		req      any
		before   func(svc *ordermocks.MockService)
		wantCode int
	}{
		{
			name: "发货送达",
			path: "/order/deliver",
			req:  SNReq{SN: "SO001"},
			before: func(svc *ordermocks.MockService) {
				svc.EXPECT().FindOrderBySN(gomock.Any(), "SO001").Return(domain.Order{ID: 1}, nil)
				svc.EXPECT().DeliverOrder(gomock.Any(), int64(1)).Return(domain.Order{ID: 1}, nil)
			},
		},
		{
			name: "拒绝退货",
			path: "/order/return/reject",
			req:  RejectReturnReq{SN: "SO001", Reason: "已拆封"},
			before: func(svc *ordermocks.MockService) {
				svc.EXPECT().FindOrderBySN(gomock.Any(), "SO001").Return(domain.Order{ID: 1}, nil)
				svc.EXPECT().RejectReturn(gomock.Any(), int64(1), "已拆封").Return(domain.Order{ID: 1}, nil)
			},
		},
		{
			name: "按状态分页_系统错误",
			path: "/order/list",
			req:  AdminListOrdersReq{Status: uint8(domain.StatusReturnRequested), Limit: 10},
			before: func(svc *ordermocks.MockService) {
				svc.EXPECT().ListOrders(gomock.Any(), domain.StatusReturnRequested, 0, 10).
					Return(nil, int64(0), errors.New("mock db error"))
			},
			wantCode: errs.SystemError.Code,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			gin.SetMode(gin.TestMode)
			svc := ordermocks.NewMockService(ctrl)
			tc.before(svc)
			server := gin.New()
			NewAdminHandler(svc).PrivateRoutes(server)

			req, err := http.NewRequest(http.MethodPost, tc.path, iox.NewJSONReader(tc.req))
			require.NoError(t, err)
			req.Header.Set("content-type", "application/json")
			recorder := test.NewJSONResponseRecorder[any]()
			server.ServeHTTP(recorder, req)
			res := recorder.MustScan()
			assert.Equal(t, tc.wantCode, res.Code)
		})
	}
}
