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

type StockItem struct {
	SPUID    int64
	SKUID    int64
	Quantity int64
}

// StockOperation 同一个 BizKey 对同一个 SKU 只会生效一次
type StockOperation struct {
	BizKey string
	Item   StockItem
}

type StockLogType uint8

func (t StockLogType) ToUint8() uint8 {
	return uint8(t)
}

const (
	StockLogTypeReserve StockLogType = 1 // 预占
	StockLogTypeRelease StockLogType = 2 // 释放
	StockLogTypeAdjust  StockLogType = 3 // 人工调整
)
