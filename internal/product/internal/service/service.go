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
	"fmt"

	"github.com/ecodeclub/storefront/internal/pkg/snowflake"
	"github.com/ecodeclub/storefront/internal/product/internal/domain"
	"github.com/ecodeclub/storefront/internal/product/internal/repository"
)

//go:generate mockgen -source=./service.go -package=productmocks -destination=../../mocks/product.mock.go Service
type Service interface {
	FindSPUByID(ctx context.Context, id int64) (domain.SPU, error)
	FindSKUBySN(ctx context.Context, sn string) (domain.SPU, error)
	FindSKUByID(ctx context.Context, id int64) (domain.SKU, error)
	// CreateSPU 仅用于初始化数据
	CreateSPU(ctx context.Context, spu domain.SPU) (domain.SPU, error)
	// CreateSKU 给已有的 SPU 增加 SKU, 同样仅用于初始化数据
	CreateSKU(ctx context.Context, spuID int64, sku domain.SKU) (domain.SKU, error)

	GetVariantStock(ctx context.Context, skuID int64) (int64, error)
	// AdjustVariantStock 补货或者纠正库存, 调整后的库存不能为负数
	AdjustVariantStock(ctx context.Context, skuID, delta int64) error
	IncrementTotalSold(ctx context.Context, spuID, delta int64) error
}

type service struct {
	repo  repository.ProductRepository
	idGen *snowflake.Generator
}

func NewService(repo repository.ProductRepository, idGen *snowflake.Generator) Service {
	return &service{repo: repo, idGen: idGen}
}

func (s *service) FindSPUByID(ctx context.Context, id int64) (domain.SPU, error) {
	return s.repo.FindSPUByID(ctx, id)
}

func (s *service) FindSKUBySN(ctx context.Context, sn string) (domain.SPU, error) {
	return s.repo.FindSKUBySN(ctx, sn)
}

func (s *service) FindSKUByID(ctx context.Context, id int64) (domain.SKU, error) {
	return s.repo.FindSKUByID(ctx, id)
}

func (s *service) CreateSPU(ctx context.Context, spu domain.SPU) (domain.SPU, error) {
	return s.repo.CreateSPU(ctx, spu)
}

func (s *service) CreateSKU(ctx context.Context, spuID int64, sku domain.SKU) (domain.SKU, error) {
	if _, err := s.repo.FindSPUByID(ctx, spuID); err != nil {
		return domain.SKU{}, err
	}
	sku.SPUID = spuID
	return s.repo.CreateSKU(ctx, sku)
}

func (s *service) GetVariantStock(ctx context.Context, skuID int64) (int64, error) {
	return s.repo.GetStock(ctx, skuID)
}

func (s *service) AdjustVariantStock(ctx context.Context, skuID, delta int64) error {
	if delta == 0 {
		return nil
	}
	sku, err := s.repo.FindSKUByID(ctx, skuID)
	if err != nil {
		return err
	}
	id, err := s.idGen.Generate(snowflake.BizStockAdjust)
	if err != nil {
		return fmt.Errorf("生成库存调整ID失败: %w", err)
	}
	return s.repo.ApplyStock(ctx, domain.StockLogTypeAdjust, domain.StockOperation{
		BizKey: fmt.Sprintf("sku:%d:adjust:%s", skuID, id.String()),
		Item: domain.StockItem{
			SPUID:    sku.SPUID,
			SKUID:    skuID,
			Quantity: delta,
		},
	})
}

func (s *service) IncrementTotalSold(ctx context.Context, spuID, delta int64) error {
	return s.repo.IncrementTotalSold(ctx, spuID, delta)
}
