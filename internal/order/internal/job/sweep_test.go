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

package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	ordermocks "github.com/ecodeclub/storefront/internal/order/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)

func TestAbandonUnpaidOrdersJob_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := ordermocks.NewMockService(ctrl)
	before := fixedNow.Add(-24 * time.Hour).UnixMilli()

	gomock.InOrder(
		svc.EXPECT().ListSweepCandidates(gomock.Any(), domain.SweepQuery{
			Kind: domain.SweepKindAbandon, Before: before, Cursor: 0, Limit: 2,
		}).Return([]domain.Order{{ID: 1, SN: "SO1"}, {ID: 3, SN: "SO3"}}, nil),
		svc.EXPECT().ListSweepCandidates(gomock.Any(), domain.SweepQuery{
			Kind: domain.SweepKindAbandon, Before: before, Cursor: 3, Limit: 2,
		}).Return([]domain.Order{{ID: 7, SN: "SO7"}}, nil),
	)
	svc.EXPECT().AbandonOrder(gomock.Any(), int64(1)).Return(domain.Order{}, nil)
	// 已经被买家支付或取消
	svc.EXPECT().AbandonOrder(gomock.Any(), int64(3)).Return(domain.Order{}, domain.ErrNotAbandonable)
	// 失败不影响后续订单
	svc.EXPECT().AbandonOrder(gomock.Any(), int64(7)).Return(domain.Order{}, errors.New("mock db error"))

	job := NewAbandonUnpaidOrdersJob(svc, Config{AbandonAfter: 24 * time.Hour, BatchSize: 2})
	job.now = func() time.Time { return fixedNow }
	assert.Equal(t, "abandon_unpaid_orders_job", job.Name())
	assert.NoError(t, job.Run(context.Background()))
}

func TestConfirmPendingOrdersJob_Run(t *testing.T) {
	testCases := []struct {
		name    string
		before  func(svc *ordermocks.MockService)
		wantErr bool
	}{
		{
			name: "确认超时订单_跳过已取消的订单",
			before: func(svc *ordermocks.MockService) {
				svc.EXPECT().ListSweepCandidates(gomock.Any(), gomock.Any()).
					Return([]domain.Order{{ID: 1}, {ID: 2}}, nil)
				svc.EXPECT().ConfirmOrder(gomock.Any(), int64(1)).Return(domain.Order{}, nil)
				svc.EXPECT().ConfirmOrder(gomock.Any(), int64(2)).
					Return(domain.Order{}, &domain.InvalidTransitionError{
						Status: domain.StatusCancelled,
						Action: domain.ActionConfirm,
					})
			},
		},
		{
			name: "查询失败",
			before: func(svc *ordermocks.MockService) {
				svc.EXPECT().ListSweepCandidates(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("mock db error"))
			},
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			svc := ordermocks.NewMockService(ctrl)
			tc.before(svc)
			job := NewConfirmPendingOrdersJob(svc, DefaultConfig())
			err := job.Run(context.Background())
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSettleOrdersJob_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := ordermocks.NewMockService(ctrl)
	svc.EXPECT().ListSweepCandidates(gomock.Any(), gomock.Cond(func(x any) bool {
		q := x.(domain.SweepQuery)
		return q.Kind == domain.SweepKindSettle && q.Before == fixedNow.Add(-time.Minute).UnixMilli()
	})).Return([]domain.Order{{ID: 5}}, nil)
	svc.EXPECT().SettleOrder(gomock.Any(), int64(5)).Return(domain.Order{}, nil)

	job := NewSettleOrdersJob(svc, DefaultConfig())
	job.now = func() time.Time { return fixedNow }
	assert.NoError(t, job.Run(context.Background()))
}
