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

// Package mail 把订单事件渲染成邮件
package mail

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"unicode/utf8"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/storefront/internal/notification/internal/event"
	"github.com/microcosm-cc/bluemonday"
)

// maxReasonBytes 退货原因由用户填写, 超过部分截断
const maxReasonBytes = 512

var (
	//go:embed order.html
	orderHTML string
	orderTpl  = template.Must(template.New("order").Funcs(template.FuncMap{
		"yuan": yuan,
	}).Parse(orderHTML))
)

var subjects = map[string]string{
	event.OrderEventTypeCreated:         "订单已提交",
	event.OrderEventTypeReturnCompleted: "退货已完成",
	event.OrderEventTypeReturnRejected:  "退货申请未通过",
}

type Renderer struct {
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	return &Renderer{policy: bluemonday.StrictPolicy()}
}

// orderView 用户填写的内容经过 sanitize 之后作为 template.HTML 输出, 避免重复转义
type orderView struct {
	Title      string
	Receiver   template.HTML
	OrderSN    string
	Status     string
	Address    template.HTML
	FinalPrice int64
	Items      []itemView
	Reason     template.HTML
	Rejected   bool
}

type itemView struct {
	Name     template.HTML
	Quantity int64
	Price    int64
}

// Render 返回邮件主题和 HTML 正文. 未知的事件类型返回错误
func (r *Renderer) Render(evt event.OrderEvent) (string, []byte, error) {
	title, ok := subjects[evt.Type]
	if !ok {
		return "", nil, fmt.Errorf("未知的订单事件类型: %s", evt.Type)
	}
	view := orderView{
		Title:      title,
		Receiver:   r.sanitize(evt.Receiver),
		OrderSN:    evt.OrderSN,
		Status:     evt.Status,
		Address:    r.sanitize(evt.Address),
		FinalPrice: evt.FinalPrice,
		Items: slice.Map(evt.Items, func(idx int, src event.OrderEventItem) itemView {
			return itemView{
				Name:     r.sanitize(src.Name),
				Quantity: src.Quantity,
				Price:    src.Price,
			}
		}),
		Rejected: evt.Type == event.OrderEventTypeReturnRejected,
	}
	if evt.Type != event.OrderEventTypeCreated {
		view.Reason = r.sanitize(truncate(evt.Reason, maxReasonBytes))
	}
	var buf bytes.Buffer
	if err := orderTpl.Execute(&buf, view); err != nil {
		return "", nil, fmt.Errorf("渲染邮件失败: %w", err)
	}
	return fmt.Sprintf("%s: %s", title, evt.OrderSN), buf.Bytes(), nil
}

func (r *Renderer) sanitize(s string) template.HTML {
	return template.HTML(r.policy.Sanitize(s))
}

// truncate 按字节截断, 不会截断到多字节字符中间
func truncate(content string, limit int) string {
	if len(content) <= limit {
		return content
	}
	if limit <= 0 {
		return ""
	}
	end := limit
	for end > 0 && !utf8.RuneStart(content[end]) {
		end--
	}
	return content[:end]
}

func yuan(fen int64) string {
	return fmt.Sprintf("%d.%02d", fen/100, fen%100)
}
