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

package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/storefront/internal/email"
	"github.com/ecodeclub/storefront/internal/notification/internal/event"
	"github.com/ecodeclub/storefront/internal/notification/internal/mail"
	"github.com/gotomicro/ego/core/elog"
)

// OrderEventConsumer 订单事件转成邮件发给收货人
type OrderEventConsumer struct {
	consumer mq.Consumer
	renderer *mail.Renderer
	emailSvc email.Service
	from     string
	logger   *elog.Component
}

func NewOrderEventConsumer(q mq.MQ, renderer *mail.Renderer, emailSvc email.Service, from string) (*OrderEventConsumer, error) {
	groupID := "notification.email"
	consumer, err := q.Consumer(event.OrderEventsTopic, groupID)
	if err != nil {
		return nil, err
	}
	return &OrderEventConsumer{
		consumer: consumer,
		renderer: renderer,
		emailSvc: emailSvc,
		from:     from,
		logger:   elog.DefaultLogger.With(elog.FieldComponent("notification.email.consumer")),
	}, nil
}

func (c *OrderEventConsumer) Start(ctx context.Context) {
	go func() {
		for {
			err := c.Consume(ctx)
			if err != nil {
				c.logger.Error("消费订单事件失败", elog.FieldErr(err))
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
}

func (c *OrderEventConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}
	var evt event.OrderEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}
	if evt.Email == "" {
		c.logger.Warn("收货人没有邮箱, 不发送通知", elog.String("orderSN", evt.OrderSN))
		return nil
	}
	subject, body, err := c.renderer.Render(evt)
	if err != nil {
		return err
	}
	err = c.emailSvc.SendMail(ctx, email.Mail{
		From:    c.from,
		To:      evt.Email,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("发送订单 %s 的邮件失败: %w", evt.OrderSN, err)
	}
	return nil
}
