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

import "fmt"

// Pricing 订单金额, 只能通过 NewPricing 构造
type Pricing struct {
	TotalPrice     int64
	DiscountAmount int64
	ShippingPrice  int64
	FinalPrice     int64
}

func NewPricing(items []OrderItem, discountAmount, shippingPrice int64) (Pricing, error) {
	var total int64
	for _, item := range items {
		if item.Quantity <= 0 || item.DiscountPrice < 0 {
			return Pricing{}, fmt.Errorf("%w: sku=%s", ErrInvalidPricing, item.SKUSN)
		}
		total += item.LineTotal()
	}
	if discountAmount < 0 || discountAmount > total || shippingPrice < 0 {
		return Pricing{}, fmt.Errorf("%w: total=%d, discount=%d, shipping=%d",
			ErrInvalidPricing, total, discountAmount, shippingPrice)
	}
	return Pricing{
		TotalPrice:     total,
		DiscountAmount: discountAmount,
		ShippingPrice:  shippingPrice,
		FinalPrice:     total - discountAmount + shippingPrice,
	}, nil
}

func (p Pricing) Valid() bool {
	return p.DiscountAmount >= 0 &&
		p.DiscountAmount <= p.TotalPrice &&
		p.ShippingPrice >= 0 &&
		p.FinalPrice == p.TotalPrice-p.DiscountAmount+p.ShippingPrice
}

// ShippingPolicy 运费规则, 商品总价达到 FreeThreshold 时免运费. FreeThreshold 为 0 表示始终收取运费
type ShippingPolicy struct {
	Fee           int64 `yaml:"fee"`
	FreeThreshold int64 `yaml:"freeThreshold"`
}

func (p ShippingPolicy) Compute(totalPrice int64) int64 {
	if p.FreeThreshold > 0 && totalPrice >= p.FreeThreshold {
		return 0
	}
	return p.Fee
}
