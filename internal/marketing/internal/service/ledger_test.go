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

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ecodeclub/storefront/internal/marketing/internal/domain"
	"github.com/ecodeclub/storefront/internal/marketing/internal/repository"
	repomocks "github.com/ecodeclub/storefront/internal/marketing/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var save10 = domain.DiscountCode{
	ID:                1,
	Code:              "SAVE10",
	Type:              domain.DiscountTypePercentage,
	Value:             10,
	MinPurchaseAmount: 100000,
	MaxDiscountAmount: 50000,
	Status:            domain.StatusActive,
}

func TestDiscountLedger_Apply(t *testing.T) {
	testCases := []struct {
		name    string
		app     domain.DiscountApplication
		mock    func(ctrl *gomock.Controller) repository.DiscountRepository
		want    domain.DiscountResult
		wantErr error
	}{
		{
			name: "首次使用",
			app: domain.DiscountApplication{
				Code: "SAVE10", UID: 123, OrderSN: "SO001", PurchaseAmount: 300000, Mode: domain.ApplyModeCreate,
			},
			mock: func(ctrl *gomock.Controller) repository.DiscountRepository {
				repo := repomocks.NewMockDiscountRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(save10, nil)
				repo.EXPECT().FindUsage(gomock.Any(), int64(1), int64(123)).
					Return(domain.DiscountUsage{}, repository.ErrUsageNotFound)
				repo.EXPECT().RecordUsage(gomock.Any(), domain.DiscountUsage{
					CodeID: 1, UID: 123, OrderSN: "SO001", Amount: 30000,
				}).Return(nil)
				return repo
			},
			want: domain.DiscountResult{CodeID: 1, Code: "SAVE10", Amount: 30000, Applied: true},
		},
		{
			name: "超过优惠上限",
			app: domain.DiscountApplication{
				Code: "SAVE10", UID: 123, OrderSN: "SO001", PurchaseAmount: 600000, Mode: domain.ApplyModeCreate,
			},
			mock: func(ctrl *gomock.Controller) repository.DiscountRepository {
				repo := repomocks.NewMockDiscountRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(save10, nil)
				repo.EXPECT().FindUsage(gomock.Any(), int64(1), int64(123)).
					Return(domain.DiscountUsage{}, repository.ErrUsageNotFound)
				repo.EXPECT().RecordUsage(gomock.Any(), gomock.Any()).Return(nil)
				return repo
			},
			want: domain.DiscountResult{CodeID: 1, Code: "SAVE10", Amount: 50000, Applied: true},
		},
		{
			name: "新建订单_用户已用过",
			app: domain.DiscountApplication{
				Code: "SAVE10", UID: 123, OrderSN: "SO002", PurchaseAmount: 300000, Mode: domain.ApplyModeCreate,
			},
			mock: func(ctrl *gomock.Controller) repository.DiscountRepository {
				repo := repomocks.NewMockDiscountRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(save10, nil)
				repo.EXPECT().FindUsage(gomock.Any(), int64(1), int64(123)).
					Return(domain.DiscountUsage{CodeID: 1, UID: 123, OrderSN: "SO001"}, nil)
				return repo
			},
			want:    domain.DiscountResult{Code: "SAVE10"},
			wantErr: domain.ErrCodeAlreadyUsed,
		},
		{
			name: "修改订单_订单自己占用的码",
			app: domain.DiscountApplication{
				Code: "SAVE10", UID: 123, OrderSN: "SO001", PurchaseAmount: 400000, Mode: domain.ApplyModeUpdate,
			},
			mock: func(ctrl *gomock.Controller) repository.DiscountRepository {
				repo := repomocks.NewMockDiscountRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(save10, nil)
				repo.EXPECT().FindUsage(gomock.Any(), int64(1), int64(123)).
					Return(domain.DiscountUsage{CodeID: 1, UID: 123, OrderSN: "SO001"}, nil)
				return repo
			},
			want: domain.DiscountResult{CodeID: 1, Code: "SAVE10", Amount: 40000, Applied: true},
		},
		{
			name: "修改订单_码被其他订单占用",
			app: domain.DiscountApplication{
				Code: "SAVE10", UID: 123, OrderSN: "SO002", PurchaseAmount: 400000, Mode: domain.ApplyModeUpdate,
			},
			mock: func(ctrl *gomock.Controller) repository.DiscountRepository {
				repo := repomocks.NewMockDiscountRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(save10, nil)
				repo.EXPECT().FindUsage(gomock.Any(), int64(1), int64(123)).
					Return(domain.DiscountUsage{CodeID: 1, UID: 123, OrderSN: "SO001"}, nil)
				return repo
			},
			want: domain.DiscountResult{Code: "SAVE10"},
		},
		{
			name: "未达到最低消费",
			app: domain.DiscountApplication{
				Code: "SAVE10", UID: 123, OrderSN: "SO001", PurchaseAmount: 99999, Mode: domain.ApplyModeCreate,
			},
			mock: func(ctrl *gomock.Controller) repository.DiscountRepository {
				repo := repomocks.NewMockDiscountRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(save10, nil)
				return repo
			},
			want: domain.DiscountResult{Code: "SAVE10"},
		},
		{
			name: "码不存在",
			app: domain.DiscountApplication{
				Code: "NOPE", UID: 123, OrderSN: "SO001", PurchaseAmount: 300000, Mode: domain.ApplyModeCreate,
			},
			mock: func(ctrl *gomock.Controller) repository.DiscountRepository {
				repo := repomocks.NewMockDiscountRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "NOPE").
					Return(domain.DiscountCode{}, domain.ErrDiscountCodeNotFound)
				return repo
			},
			want: domain.DiscountResult{Code: "NOPE"},
		},
		{
			name: "使用次数已达上限",
			app: domain.DiscountApplication{
				Code: "SAVE10", UID: 123, OrderSN: "SO001", PurchaseAmount: 300000, Mode: domain.ApplyModeCreate,
			},
			mock: func(ctrl *gomock.Controller) repository.DiscountRepository {
				repo := repomocks.NewMockDiscountRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(save10, nil)
				repo.EXPECT().FindUsage(gomock.Any(), int64(1), int64(123)).
					Return(domain.DiscountUsage{}, repository.ErrUsageNotFound)
				repo.EXPECT().RecordUsage(gomock.Any(), gomock.Any()).Return(repository.ErrUsageLimitReached)
				return repo
			},
			want: domain.DiscountResult{Code: "SAVE10"},
		},
		{
			name: "并发下被抢先使用",
			app: domain.DiscountApplication{
				Code: "SAVE10", UID: 123, OrderSN: "SO003", PurchaseAmount: 300000, Mode: domain.ApplyModeCreate,
			},
			mock: func(ctrl *gomock.Controller) repository.DiscountRepository {
				repo := repomocks.NewMockDiscountRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(save10, nil)
				repo.EXPECT().FindUsage(gomock.Any(), int64(1), int64(123)).
					Return(domain.DiscountUsage{}, repository.ErrUsageNotFound)
				repo.EXPECT().RecordUsage(gomock.Any(), gomock.Any()).Return(repository.ErrUsageExists)
				return repo
			},
			want:    domain.DiscountResult{Code: "SAVE10"},
			wantErr: domain.ErrCodeAlreadyUsed,
		},
		{
			name: "没有码",
			app:  domain.DiscountApplication{UID: 123, OrderSN: "SO001", PurchaseAmount: 300000},
			mock: func(ctrl *gomock.Controller) repository.DiscountRepository {
				return repomocks.NewMockDiscountRepository(ctrl)
			},
			want: domain.DiscountResult{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			ledger := NewDiscountLedger(tc.mock(ctrl))
			res, err := ledger.Apply(context.Background(), tc.app)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.want, res)
		})
	}
}

func TestDiscountLedger_Revert(t *testing.T) {
	testCases := []struct {
		name    string
		code    string
		mock    func(ctrl *gomock.Controller) repository.DiscountRepository
		wantErr error
	}{
		{
			name: "归还成功",
			code: "SAVE10",
			mock: func(ctrl *gomock.Controller) repository.DiscountRepository {
				repo := repomocks.NewMockDiscountRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(save10, nil)
				repo.EXPECT().DeleteUsage(gomock.Any(), int64(1), int64(123), "SO001").Return(true, nil)
				return repo
			},
		},
		{
			name: "重复归还",
			code: "SAVE10",
			mock: func(ctrl *gomock.Controller) repository.DiscountRepository {
				repo := repomocks.NewMockDiscountRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(save10, nil)
				repo.EXPECT().DeleteUsage(gomock.Any(), int64(1), int64(123), "SO001").Return(false, nil)
				return repo
			},
		},
		{
			name: "码已被删除",
			code: "SAVE10",
			mock: func(ctrl *gomock.Controller) repository.DiscountRepository {
				repo := repomocks.NewMockDiscountRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").
					Return(domain.DiscountCode{}, domain.ErrDiscountCodeNotFound)
				return repo
			},
		},
		{
			name: "数据库错误",
			code: "SAVE10",
			mock: func(ctrl *gomock.Controller) repository.DiscountRepository {
				repo := repomocks.NewMockDiscountRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(save10, nil)
				repo.EXPECT().DeleteUsage(gomock.Any(), int64(1), int64(123), "SO001").
					Return(false, errMockDB)
				return repo
			},
			wantErr: errMockDB,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			ledger := NewDiscountLedger(tc.mock(ctrl))
			err := ledger.Revert(context.Background(), tc.code, 123, "SO001")
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

var errMockDB = errors.New("mock db error")
