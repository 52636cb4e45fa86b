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

	"github.com/ecodeclub/storefront/internal/product/internal/domain"
	"github.com/ecodeclub/storefront/internal/product/internal/repository"
	repomocks "github.com/ecodeclub/storefront/internal/product/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestStockLedger_Reserve(t *testing.T) {
	op := domain.StockOperation{
		BizKey: "order:SO001:reserve",
		Item:   domain.StockItem{SPUID: 1, SKUID: 2, Quantity: 3},
	}
	testCases := []struct {
		name    string
		op      domain.StockOperation
		mock    func(ctrl *gomock.Controller) repository.ProductRepository
		wantErr error
	}{
		{
			name: "预占成功",
			op:   op,
			mock: func(ctrl *gomock.Controller) repository.ProductRepository {
				repo := repomocks.NewMockProductRepository(ctrl)
				repo.EXPECT().ApplyStock(gomock.Any(), domain.StockLogTypeReserve, op).Return(nil)
				return repo
			},
		},
		{
			name: "重复预占视为成功",
			op:   op,
			mock: func(ctrl *gomock.Controller) repository.ProductRepository {
				repo := repomocks.NewMockProductRepository(ctrl)
				repo.EXPECT().ApplyStock(gomock.Any(), domain.StockLogTypeReserve, op).
					Return(repository.ErrDuplicateStockOperation)
				return repo
			},
		},
		{
			name: "库存不足",
			op:   op,
			mock: func(ctrl *gomock.Controller) repository.ProductRepository {
				repo := repomocks.NewMockProductRepository(ctrl)
				repo.EXPECT().ApplyStock(gomock.Any(), domain.StockLogTypeReserve, op).
					Return(domain.ErrInsufficientStock)
				return repo
			},
			wantErr: domain.ErrInsufficientStock,
		},
		{
			name: "数量非法",
			op: domain.StockOperation{
				BizKey: "order:SO001:reserve",
				Item:   domain.StockItem{SPUID: 1, SKUID: 2, Quantity: 0},
			},
			mock: func(ctrl *gomock.Controller) repository.ProductRepository {
				return repomocks.NewMockProductRepository(ctrl)
			},
			wantErr: domain.ErrInvalidStockOp,
		},
		{
			name: "缺少业务键",
			op: domain.StockOperation{
				Item: domain.StockItem{SPUID: 1, SKUID: 2, Quantity: 1},
			},
			mock: func(ctrl *gomock.Controller) repository.ProductRepository {
				return repomocks.NewMockProductRepository(ctrl)
			},
			wantErr: domain.ErrInvalidStockOp,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			ledger := NewStockLedger(tc.mock(ctrl))
			err := ledger.Reserve(context.Background(), tc.op)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestStockLedger_Release(t *testing.T) {
	op := domain.StockOperation{
		BizKey: "order:SO001:release",
		Item:   domain.StockItem{SPUID: 1, SKUID: 2, Quantity: 3},
	}
	testCases := []struct {
		name    string
		mock    func(ctrl *gomock.Controller) repository.ProductRepository
		wantErr error
	}{
		{
			name: "释放成功",
			mock: func(ctrl *gomock.Controller) repository.ProductRepository {
				repo := repomocks.NewMockProductRepository(ctrl)
				repo.EXPECT().ApplyStock(gomock.Any(), domain.StockLogTypeRelease, op).Return(nil)
				return repo
			},
		},
		{
			name: "已经释放过",
			mock: func(ctrl *gomock.Controller) repository.ProductRepository {
				repo := repomocks.NewMockProductRepository(ctrl)
				repo.EXPECT().ApplyStock(gomock.Any(), domain.StockLogTypeRelease, op).
					Return(repository.ErrDuplicateStockOperation)
				return repo
			},
		},
		{
			name: "数据库错误",
			mock: func(ctrl *gomock.Controller) repository.ProductRepository {
				repo := repomocks.NewMockProductRepository(ctrl)
				repo.EXPECT().ApplyStock(gomock.Any(), domain.StockLogTypeRelease, op).
					Return(errors.New("mock db error"))
				return repo
			},
			wantErr: errors.New("mock db error"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			ledger := NewStockLedger(tc.mock(ctrl))
			err := ledger.Release(context.Background(), op)
			assert.Equal(t, tc.wantErr, err)
		})
	}
}
