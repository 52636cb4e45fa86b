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

package mail

import (
	"testing"

	"github.com/ecodeclub/storefront/internal/notification/internal/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	evt := event.OrderEvent{
		OrderSN:    "SO001",
		Receiver:   "张三",
		Email:      "a@example.com",
		Address:    "广东 深圳 南山区",
		Status:     "RETURN_REJECTED",
		FinalPrice: 39850,
		Items: []event.OrderEventItem{
			{SKUSN: "sku-1", Name: "键盘<script>alert(1)</script>", Quantity: 2, Price: 19925},
		},
		Reason: `<img src=x onerror="alert(1)">包装已拆封`,
	}

	testCases := []struct {
		name        string
		typ         string
		wantSubject string
		wantErr     bool
		contains    []string
		notContains []string
	}{
		{
			name:        "下单_不展示原因",
			typ:         event.OrderEventTypeCreated,
			wantSubject: "订单已提交: SO001",
			contains:    []string{"张三", "SO001", "398.50", "199.25", "键盘"},
			notContains: []string{"<script>", "包装已拆封"},
		},
		{
			name:        "退货被拒_原因被清理",
			typ:         event.OrderEventTypeReturnRejected,
			wantSubject: "退货申请未通过: SO001",
			contains:    []string{"拒绝原因: 包装已拆封"},
			notContains: []string{"<img", "onerror"},
		},
		{
			name:        "退货完成",
			typ:         event.OrderEventTypeReturnCompleted,
			wantSubject: "退货已完成: SO001",
			contains:    []string{"退货原因: 包装已拆封"},
		},
		{
			name:    "未知类型",
			typ:     "paid",
			wantErr: true,
		},
	}
	r := NewRenderer()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := evt
			e.Type = tc.typ
			subject, body, err := r.Render(e)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantSubject, subject)
			for _, s := range tc.contains {
				assert.Contains(t, string(body), s)
			}
			for _, s := range tc.notContains {
				assert.NotContains(t, string(body), s)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		limit    int
		expected string
	}{
		{
			name:     "纯ASCII",
			content:  "Hello, World!",
			limit:    5,
			expected: "Hello",
		},
		{
			name:     "截断位置在中文字符中间",
			content:  "你好，世界",
			limit:    7,
			expected: "你好",
		},
		{
			name:     "截断位置刚好在中文字符之后",
			content:  "Go语言编程",
			limit:    8,
			expected: "Go语言",
		},
		{
			name:     "截断位置在Emoji中间",
			content:  "Go语言很酷👍",
			limit:    16,
			expected: "Go语言很酷",
		},
		{
			name:     "长度小于限制",
			content:  "short string",
			limit:    20,
			expected: "short string",
		},
		{
			name:     "长度等于限制",
			content:  "exact length",
			limit:    12,
			expected: "exact length",
		},
		{
			name:     "限制为0",
			content:  "any string",
			limit:    0,
			expected: "",
		},
		{
			name:     "空字符串",
			content:  "",
			limit:    10,
			expected: "",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, truncate(tc.content, tc.limit))
		})
	}
}
