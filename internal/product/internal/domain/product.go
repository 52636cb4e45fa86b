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

package domain

import "errors"

var (
	ErrInsufficientStock = errors.New("库存不足")
	ErrSKUNotFound       = errors.New("商品SKU不存在")
	ErrInvalidStockOp    = errors.New("非法的库存操作")
)

type Status uint8

func (s Status) ToUint8() uint8 {
	return uint8(s)
}

const (
	StatusOffShelf Status = 1 // 下架
	StatusOnShelf  Status = 2 // 上架
)

type SPU struct {
	ID         int64
	SN         string
	Name       string
	Desc       string
	CategoryID int64
	BrandID    int64
	// TotalSold 已售出数量, 随库存预占和释放变化
	TotalSold int64
	Status    Status
	SKUs      []SKU
}

type SKU struct {
	ID    int64
	SPUID int64
	SN    string
	Name  string
	Desc  string
	Color string
	Size  string
	Attrs string
	Image string

	// 单位为分
	OriginalPrice int64
	Price         int64
	Stock         int64
	Status        Status
}

func (s SKU) OnShelf() bool {
	return s.Status == StatusOnShelf
}
