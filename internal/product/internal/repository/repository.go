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

package repository

import (
	"context"
	"errors"

	"github.com/ecodeclub/storefront/internal/product/internal/domain"
	"github.com/ecodeclub/storefront/internal/product/internal/repository/dao"
	"github.com/lithammer/shortuuid/v4"
)

// ErrDuplicateStockOperation 同一个业务键已经作用于该 SKU
var ErrDuplicateStockOperation = dao.ErrDuplicateStockLog

//go:generate mockgen -source=./repository.go -package=repomocks -destination=mocks/product.mock.go ProductRepository
type ProductRepository interface {
	FindSPUByID(ctx context.Context, id int64) (domain.SPU, error)
	// FindSKUBySN 返回 SKU 所属的 SPU, SKUs 中只有这一个 SKU
	FindSKUBySN(ctx context.Context, sn string) (domain.SPU, error)
	FindSKUByID(ctx context.Context, id int64) (domain.SKU, error)
	// CreateSPU 同时创建 SPU 下的 SKU, SN 为空时自动生成
	CreateSPU(ctx context.Context, spu domain.SPU) (domain.SPU, error)
	CreateSKU(ctx context.Context, sku domain.SKU) (domain.SKU, error)
	GetStock(ctx context.Context, skuID int64) (int64, error)
	IncrementTotalSold(ctx context.Context, spuID, delta int64) error
	ApplyStock(ctx context.Context, typ domain.StockLogType, op domain.StockOperation) error
}

type productRepository struct {
	dao dao.ProductDAO
}

func NewProductRepository(d dao.ProductDAO) ProductRepository {
	return &productRepository{dao: d}
}

func (p *productRepository) FindSPUByID(ctx context.Context, id int64) (domain.SPU, error) {
	spu, err := p.dao.FindSPUByID(ctx, id)
	if err != nil {
		return domain.SPU{}, err
	}
	return p.toDomainSPU(spu), nil
}

func (p *productRepository) FindSKUBySN(ctx context.Context, sn string) (domain.SPU, error) {
	sku, err := p.dao.FindSKUBySN(ctx, sn)
	if err != nil {
		return domain.SPU{}, p.translate(err)
	}
	spu, err := p.dao.FindSPUByID(ctx, sku.SPUID)
	if err != nil {
		return domain.SPU{}, p.translate(err)
	}
	res := p.toDomainSPU(spu)
	res.SKUs = []domain.SKU{p.toDomainSKU(sku)}
	return res, nil
}

func (p *productRepository) FindSKUByID(ctx context.Context, id int64) (domain.SKU, error) {
	sku, err := p.dao.FindSKUByID(ctx, id)
	if err != nil {
		return domain.SKU{}, p.translate(err)
	}
	return p.toDomainSKU(sku), nil
}

func (p *productRepository) CreateSPU(ctx context.Context, spu domain.SPU) (domain.SPU, error) {
	if spu.SN == "" {
		spu.SN = shortuuid.New()
	}
	id, err := p.dao.CreateSPU(ctx, p.toSPUEntity(spu))
	if err != nil {
		return domain.SPU{}, err
	}
	spu.ID = id
	for i := range spu.SKUs {
		spu.SKUs[i].SPUID = id
		spu.SKUs[i], err = p.CreateSKU(ctx, spu.SKUs[i])
		if err != nil {
			return domain.SPU{}, err
		}
	}
	return spu, nil
}

func (p *productRepository) CreateSKU(ctx context.Context, sku domain.SKU) (domain.SKU, error) {
	if sku.SN == "" {
		sku.SN = shortuuid.New()
	}
	id, err := p.dao.CreateSKU(ctx, p.toSKUEntity(sku))
	if err != nil {
		return domain.SKU{}, err
	}
	sku.ID = id
	return sku, nil
}

func (p *productRepository) GetStock(ctx context.Context, skuID int64) (int64, error) {
	stock, err := p.dao.GetStock(ctx, skuID)
	return stock, p.translate(err)
}

func (p *productRepository) IncrementTotalSold(ctx context.Context, spuID, delta int64) error {
	return p.dao.IncrementTotalSold(ctx, spuID, delta)
}

func (p *productRepository) ApplyStock(ctx context.Context, typ domain.StockLogType, op domain.StockOperation) error {
	l := dao.StockLog{
		BizKey:   op.BizKey,
		SKUID:    op.Item.SKUID,
		SPUID:    op.Item.SPUID,
		Type:     typ.ToUint8(),
		Quantity: op.Item.Quantity,
	}
	var err error
	switch typ {
	case domain.StockLogTypeReserve:
		err = p.dao.Reserve(ctx, l)
	case domain.StockLogTypeRelease:
		err = p.dao.Release(ctx, l)
	default:
		err = p.dao.Adjust(ctx, l)
	}
	return p.translate(err)
}

func (p *productRepository) translate(err error) error {
	switch {
	case errors.Is(err, dao.ErrSKUNotFound):
		return domain.ErrSKUNotFound
	case errors.Is(err, dao.ErrInsufficientStock):
		return domain.ErrInsufficientStock
	default:
		return err
	}
}

func (p *productRepository) toDomainSPU(spu dao.SPU) domain.SPU {
	return domain.SPU{
		ID:         spu.Id,
		SN:         spu.SN,
		Name:       spu.Name,
		Desc:       spu.Description,
		CategoryID: spu.CategoryID,
		BrandID:    spu.BrandID,
		TotalSold:  spu.TotalSold,
		Status:     domain.Status(spu.Status),
	}
}

func (p *productRepository) toDomainSKU(sku dao.SKU) domain.SKU {
	return domain.SKU{
		ID:            sku.Id,
		SPUID:         sku.SPUID,
		SN:            sku.SN,
		Name:          sku.Name,
		Desc:          sku.Description,
		Color:         sku.Color,
		Size:          sku.Size,
		Attrs:         sku.Attrs,
		Image:         sku.Image,
		OriginalPrice: sku.OriginalPrice,
		Price:         sku.Price,
		Stock:         sku.Stock,
		Status:        domain.Status(sku.Status),
	}
}

func (p *productRepository) toSPUEntity(spu domain.SPU) dao.SPU {
	return dao.SPU{
		Id:          spu.ID,
		SN:          spu.SN,
		Name:        spu.Name,
		Description: spu.Desc,
		CategoryID:  spu.CategoryID,
		BrandID:     spu.BrandID,
		Status:      spu.Status.ToUint8(),
	}
}

func (p *productRepository) toSKUEntity(sku domain.SKU) dao.SKU {
	return dao.SKU{
		Id:            sku.ID,
		SN:            sku.SN,
		SPUID:         sku.SPUID,
		Name:          sku.Name,
		Description:   sku.Desc,
		Color:         sku.Color,
		Size:          sku.Size,
		Attrs:         sku.Attrs,
		Image:         sku.Image,
		OriginalPrice: sku.OriginalPrice,
		Price:         sku.Price,
		Stock:         sku.Stock,
		Status:        sku.Status.ToUint8(),
	}
}
