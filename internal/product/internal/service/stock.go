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
	"fmt"

	"github.com/ecodeclub/storefront/internal/product/internal/domain"
	"github.com/ecodeclub/storefront/internal/product/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

// StockLedger 库存账本. 同一个 BizKey 重复调用不会重复扣减或者归还库存
//
//go:generate mockgen -source=./stock.go -package=productmocks -destination=../../mocks/stock.mock.go StockLedger
type StockLedger interface {
	// Reserve 库存不足时返回 ErrInsufficientStock
	Reserve(ctx context.Context, op domain.StockOperation) error
	Release(ctx context.Context, op domain.StockOperation) error
}

type stockLedger struct {
	repo   repository.ProductRepository
	logger *elog.Component
}

func NewStockLedger(repo repository.ProductRepository) StockLedger {
	return &stockLedger{
		repo:   repo,
		logger: elog.DefaultLogger.With(elog.FieldComponent("StockLedger")),
	}
}

func (s *stockLedger) Reserve(ctx context.Context, op domain.StockOperation) error {
	return s.apply(ctx, domain.StockLogTypeReserve, op)
}

func (s *stockLedger) Release(ctx context.Context, op domain.StockOperation) error {
	return s.apply(ctx, domain.StockLogTypeRelease, op)
}

func (s *stockLedger) apply(ctx context.Context, typ domain.StockLogType, op domain.StockOperation) error {
	if op.BizKey == "" || op.Item.Quantity <= 0 {
		return fmt.Errorf("%w: bizKey=%q, quantity=%d", domain.ErrInvalidStockOp, op.BizKey, op.Item.Quantity)
	}
	err := s.repo.ApplyStock(ctx, typ, op)
	if errors.Is(err, repository.ErrDuplicateStockOperation) {
		s.logger.Warn("库存操作已执行过",
			elog.String("bizKey", op.BizKey),
			elog.Int64("skuID", op.Item.SKUID),
			elog.Int("type", int(typ)))
		return nil
	}
	return err
}
