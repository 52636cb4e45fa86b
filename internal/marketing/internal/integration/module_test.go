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

//go:build e2e

package integration

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/storefront/internal/marketing"
	"github.com/ecodeclub/storefront/internal/marketing/internal/domain"
	"github.com/ecodeclub/storefront/internal/marketing/internal/errs"
	"github.com/ecodeclub/storefront/internal/marketing/internal/repository/dao"
	"github.com/ecodeclub/storefront/internal/marketing/internal/web"
	"github.com/ecodeclub/storefront/internal/test"
	testioc "github.com/ecodeclub/storefront/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestMarketingModule(t *testing.T) {
	suite.Run(t, new(MarketingModuleTestSuite))
}

type MarketingModuleTestSuite struct {
	suite.Suite
	server *egin.Component
	db     *egorm.Component
	mou    *marketing.Module
}

func (s *MarketingModuleTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	s.mou = marketing.InitModule(s.db)
	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	server.Use(func(ctx *gin.Context) {
		ctx.Set("_session", session.NewMemorySession(session.Claims{
			Uid:  1,
			Data: map[string]string{"creator": "true"},
		}))
	})
	s.mou.AdminHdl.PrivateRoutes(server.Engine)
	s.server = server
}

func (s *MarketingModuleTestSuite) TearDownSuite() {
	s.NoError(s.db.Exec("DROP TABLE `discount_codes`").Error)
	s.NoError(s.db.Exec("DROP TABLE `discount_code_usages`").Error)
}

func (s *MarketingModuleTestSuite) TearDownTest() {
	s.NoError(s.db.Exec("TRUNCATE TABLE `discount_codes`").Error)
	s.NoError(s.db.Exec("TRUNCATE TABLE `discount_code_usages`").Error)
}

func (s *MarketingModuleTestSuite) createSave10(usageLimit int64) int64 {
	id, err := s.mou.AdminSvc.CreateDiscountCode(context.Background(), domain.DiscountCode{
		Code:              "SAVE10",
		Type:              domain.DiscountTypePercentage,
		Value:             10,
		MinPurchaseAmount: 100000,
		MaxDiscountAmount: 50000,
		UsageLimit:        usageLimit,
	})
	require.NoError(s.T(), err)
	return id
}

func (s *MarketingModuleTestSuite) usageCount(id int64) int64 {
	var c dao.DiscountCode
	require.NoError(s.T(), s.db.Where("id = ?", id).First(&c).Error)
	return c.UsageCount
}

func (s *MarketingModuleTestSuite) TestApplyAndRevert() {
	t := s.T()
	ctx := context.Background()
	id := s.createSave10(0)

	res, err := s.mou.Ledger.Apply(ctx, marketing.DiscountApplication{
		Code: "SAVE10", UID: 123, OrderSN: "SO001", PurchaseAmount: 300000, Mode: marketing.ApplyModeCreate,
	})
	require.NoError(t, err)
	assert.Equal(t, marketing.DiscountResult{CodeID: id, Code: "SAVE10", Amount: 30000, Applied: true}, res)

	_, err = s.mou.Ledger.Apply(ctx, marketing.DiscountApplication{
		Code: "SAVE10", UID: 123, OrderSN: "SO002", PurchaseAmount: 600000, Mode: marketing.ApplyModeCreate,
	})
	assert.ErrorIs(t, err, marketing.ErrCodeAlreadyUsed)

	// 修改订单时不会把自己占用的码当成重复使用
	res, err = s.mou.Ledger.Apply(ctx, marketing.DiscountApplication{
		Code: "SAVE10", UID: 123, OrderSN: "SO001", PurchaseAmount: 600000, Mode: marketing.ApplyModeUpdate,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50000), res.Amount)
	assert.Equal(t, int64(1), s.usageCount(id))

	require.NoError(t, s.mou.Ledger.Revert(ctx, "SAVE10", 123, "SO001"))
	require.NoError(t, s.mou.Ledger.Revert(ctx, "SAVE10", 123, "SO001"))
	assert.Equal(t, int64(0), s.usageCount(id))

	res, err = s.mou.Ledger.Apply(ctx, marketing.DiscountApplication{
		Code: "SAVE10", UID: 123, OrderSN: "SO002", PurchaseAmount: 600000, Mode: marketing.ApplyModeCreate,
	})
	require.NoError(t, err)
	assert.True(t, res.Applied)
}

func (s *MarketingModuleTestSuite) TestConcurrentApplySameUser() {
	t := s.T()
	id := s.createSave10(0)
	const n = 10
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := s.mou.Ledger.Apply(context.Background(), marketing.DiscountApplication{
				Code:           "SAVE10",
				UID:            123,
				OrderSN:        fmt.Sprintf("SO%03d", i),
				PurchaseAmount: 300000,
				Mode:           marketing.ApplyModeCreate,
			})
			if err != nil {
				assert.ErrorIs(t, err, marketing.ErrCodeAlreadyUsed)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if res.Applied {
				applied++
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, applied)
	assert.Equal(t, int64(1), s.usageCount(id))
}

func (s *MarketingModuleTestSuite) TestUsageLimit() {
	t := s.T()
	ctx := context.Background()
	id := s.createSave10(1)
	res, err := s.mou.Ledger.Apply(ctx, marketing.DiscountApplication{
		Code: "SAVE10", UID: 1, OrderSN: "SO001", PurchaseAmount: 300000, Mode: marketing.ApplyModeCreate,
	})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	res, err = s.mou.Ledger.Apply(ctx, marketing.DiscountApplication{
		Code: "SAVE10", UID: 2, OrderSN: "SO002", PurchaseAmount: 300000, Mode: marketing.ApplyModeCreate,
	})
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, int64(1), s.usageCount(id))
}

func (s *MarketingModuleTestSuite) TestAdminHandler_Create() {
	t := s.T()
	testCases := []struct {
		name     string
		req      web.CreateDiscountCodeReq
		wantResp test.Result[int64]
	}{
		{
			name: "创建成功",
			req: web.CreateDiscountCodeReq{DiscountCode: web.DiscountCode{
				Code: "FIXED20", Type: domain.DiscountTypeFixed.ToUint8(), Value: 2000,
			}},
			wantResp: test.Result[int64]{Data: 1},
		},
		{
			name: "重复创建",
			req: web.CreateDiscountCodeReq{DiscountCode: web.DiscountCode{
				Code: "FIXED20", Type: domain.DiscountTypeFixed.ToUint8(), Value: 2000,
			}},
			wantResp: test.Result[int64]{Code: errs.DuplicateCode.Code, Msg: errs.DuplicateCode.Msg},
		},
		{
			name: "参数非法",
			req: web.CreateDiscountCodeReq{DiscountCode: web.DiscountCode{
				Code: "BAD", Type: domain.DiscountTypePercentage.ToUint8(), Value: 101,
			}},
			wantResp: test.Result[int64]{Code: errs.InvalidDiscountCode.Code, Msg: errs.InvalidDiscountCode.Msg},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/discount/create", iox.NewJSONReader(tc.req))
			require.NoError(t, err)
			req.Header.Set("content-type", "application/json")
			recorder := test.NewJSONResponseRecorder[int64]()
			s.server.ServeHTTP(recorder, req)
			require.Equal(t, 200, recorder.Code)
			assert.Equal(t, tc.wantResp, recorder.MustScan())
		})
	}
}
