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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPricing(t *testing.T) {
	items := []OrderItem{
		{SKUSN: "sku-1", Quantity: 3, DiscountPrice: 100000},
		{SKUSN: "sku-2", Quantity: 1, DiscountPrice: 2500},
	}
	testCases := []struct {
		name     string
		items    []OrderItem
		discount int64
		shipping int64
		want     Pricing
		wantErr  error
	}{
		{
			name:     "正常",
			items:    items,
			discount: 30000,
			shipping: 1000,
			want: Pricing{
				TotalPrice:     302500,
				DiscountAmount: 30000,
				ShippingPrice:  1000,
				FinalPrice:     273500,
			},
		},
		{
			name:     "优惠等于总价",
			items:    items[1:],
			discount: 2500,
			want: Pricing{
				TotalPrice:     2500,
				DiscountAmount: 2500,
			},
		},
		{
			name:     "优惠超过总价",
			items:    items[1:],
			discount: 2501,
			wantErr:  ErrInvalidPricing,
		},
		{
			name:     "负数运费",
			items:    items,
			shipping: -1,
			wantErr:  ErrInvalidPricing,
		},
		{
			name:    "数量非法",
			items:   []OrderItem{{SKUSN: "sku-3", Quantity: 0, DiscountPrice: 10}},
			wantErr: ErrInvalidPricing,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewPricing(tc.items, tc.discount, tc.shipping)
			assert.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				return
			}
			require.True(t, p.Valid())
			assert.Equal(t, tc.want, p)
		})
	}
}

func TestShippingPolicy_Compute(t *testing.T) {
	p := ShippingPolicy{Fee: 1000, FreeThreshold: 99900}
	assert.Equal(t, int64(1000), p.Compute(99899))
	assert.Equal(t, int64(0), p.Compute(99900))
	assert.Equal(t, int64(1000), ShippingPolicy{Fee: 1000}.Compute(1<<40))
}
