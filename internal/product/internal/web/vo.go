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

import "github.com/ecodeclub/storefront/internal/product/internal/domain"

type SNReq struct {
	SN string `json:"sn"`
}

type AdjustStockReq struct {
	SN    string `json:"sn"`
	Delta int64  `json:"delta"`
}

type AdjustStockResp struct {
	Stock int64 `json:"stock"`
}

type SPU struct {
	ID         int64  `json:"id,omitempty"`
	SN         string `json:"sn"`
	Name       string `json:"name"`
	Desc       string `json:"desc"`
	CategoryID int64  `json:"categoryId"`
	BrandID    int64  `json:"brandId"`
	TotalSold  int64  `json:"totalSold"`
	SKUs       []SKU  `json:"skus,omitempty"`
}

type SKU struct {
	ID            int64  `json:"id,omitempty"`
	SN            string `json:"sn"`
	Name          string `json:"name"`
	Desc          string `json:"desc"`
	Color         string `json:"color,omitempty"`
	Size          string `json:"size,omitempty"`
	Attrs         string `json:"attrs,omitempty"`
	Image         string `json:"image"`
	OriginalPrice int64  `json:"originalPrice"`
	Price         int64  `json:"price"`
	Stock         int64  `json:"stock"`
}

func newSPU(spu domain.SPU) SPU {
	res := SPU{
		ID:         spu.ID,
		SN:         spu.SN,
		Name:       spu.Name,
		Desc:       spu.Desc,
		CategoryID: spu.CategoryID,
		BrandID:    spu.BrandID,
		TotalSold:  spu.TotalSold,
		SKUs:       make([]SKU, 0, len(spu.SKUs)),
	}
	for _, sku := range spu.SKUs {
		res.SKUs = append(res.SKUs, newSKU(sku))
	}
	return res
}

func newSKU(sku domain.SKU) SKU {
	return SKU{
		ID:            sku.ID,
		SN:            sku.SN,
		Name:          sku.Name,
		Desc:          sku.Desc,
		Color:         sku.Color,
		Size:          sku.Size,
		Attrs:         sku.Attrs,
		Image:         sku.Image,
		OriginalPrice: sku.OriginalPrice,
		Price:         sku.Price,
		Stock:         sku.Stock,
	}
}
