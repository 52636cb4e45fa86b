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
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiscountCode_Compute(t *testing.T) {
	save10 := DiscountCode{
		Code:              "SAVE10",
		Type:              DiscountTypePercentage,
		Value:             10,
		MinPurchaseAmount: 100000,
		MaxDiscountAmount: 50000,
		Status:            StatusActive,
	}
	testCases := []struct {
		name     string
		code     DiscountCode
		purchase int64
		want     int64
	}{
		{
			name:     "按比例_未达上限",
			code:     save10,
			purchase: 300000,
			want:     30000,
		},
		{
			name:     "按比例_达到上限",
			code:     save10,
			purchase: 600000,
			want:     50000,
		},
		{
			name: "按比例_向下取整",
			code: DiscountCode{
				Type:  DiscountTypePercentage,
				Value: 15,
			},
			purchase: 999,
			want:     149,
		},
		{
			name: "固定金额",
			code: DiscountCode{
				Type:  DiscountTypeFixed,
				Value: 2000,
			},
			purchase: 5000,
			want:     2000,
		},
		{
			name: "固定金额_不超过订单金额",
			code: DiscountCode{
				Type:  DiscountTypeFixed,
				Value: 8000,
			},
			purchase: 5000,
			want:     5000,
		},
		{
			name: "百分百优惠",
			code: DiscountCode{
				Type:  DiscountTypePercentage,
				Value: 100,
			},
			purchase: 5000,
			want:     5000,
		},
		{
			name:     "订单金额为0",
			code:     save10,
			purchase: 0,
			want:     0,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.code.Compute(tc.purchase))
		})
	}
}

func TestDiscountCode_Applicable(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	testCases := []struct {
		name     string
		code     DiscountCode
		purchase int64
		want     bool
	}{
		{
			name:     "满足条件",
			code:     DiscountCode{Status: StatusActive, MinPurchaseAmount: 100},
			purchase: 100,
			want:     true,
		},
		{
			name:     "未达到最低金额",
			code:     DiscountCode{Status: StatusActive, MinPurchaseAmount: 100},
			purchase: 99,
		},
		{
			name:     "已停用",
			code:     DiscountCode{Status: StatusInactive},
			purchase: 100,
		},
		{
			name:     "已删除",
			code:     DiscountCode{Status: StatusDeleted},
			purchase: 100,
		},
		{
			name:     "未开始",
			code:     DiscountCode{Status: StatusActive, StartAt: now.UnixMilli() + 1},
			purchase: 100,
		},
		{
			name:     "已过期",
			code:     DiscountCode{Status: StatusActive, EndAt: now.UnixMilli() - 1},
			purchase: 100,
		},
		{
			name: "有效期内",
			code: DiscountCode{
				Status:  StatusActive,
				StartAt: now.UnixMilli() - 1,
				EndAt:   now.UnixMilli() + 1,
			},
			purchase: 100,
			want:     true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.code.Applicable(tc.purchase, now))
		})
	}
}

func TestDiscountCode_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		code    DiscountCode
		wantErr error
	}{
		{
			name: "合法",
			code: DiscountCode{Code: "SAVE10", Type: DiscountTypePercentage, Value: 10},
		},
		{
			name:    "比例超过100",
			code:    DiscountCode{Code: "SAVE200", Type: DiscountTypePercentage, Value: 200},
			wantErr: ErrInvalidDiscountCode,
		},
		{
			name:    "未知类型",
			code:    DiscountCode{Code: "X", Type: 9, Value: 1},
			wantErr: ErrInvalidDiscountCode,
		},
		{
			name:    "结束时间早于开始时间",
			code:    DiscountCode{Code: "X", Type: DiscountTypeFixed, Value: 1, StartAt: 10, EndAt: 5},
			wantErr: ErrInvalidDiscountCode,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantErr, tc.code.Validate())
		})
	}
}
