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

package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/order/internal/service"
	"github.com/gotomicro/ego/core/elog"
)

type PaymentEventConsumer struct {
	svc      service.Service
	consumer mq.Consumer
	logger   *elog.Component
}

func NewPaymentEventConsumer(svc service.Service, q mq.MQ) (*PaymentEventConsumer, error) {
	const groupID = "order"
	consumer, err := q.Consumer(PaymentEventsTopic, groupID)
	if err != nil {
		return nil, err
	}
	return &PaymentEventConsumer{
		svc:      svc,
		consumer: consumer,
		logger:   elog.DefaultLogger.With(elog.FieldComponent("PaymentEventConsumer")),
	}, nil
}

// Start ctx 被取消后退出
func (c *PaymentEventConsumer) Start(ctx context.Context) {
	go func() {
		for ctx.Err() == nil {
			if er := c.Consume(ctx); er != nil {
				c.logger.Error("消费支付事件失败", elog.FieldErr(er))
			}
		}
	}()
}

func (c *PaymentEventConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}

	var evt PaymentEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}

	err = c.svc.UpdatePaymentStatus(ctx, evt.OrderSN, domain.PaymentStatus(evt.Status))
	switch {
	case errors.Is(err, domain.ErrInvalidPaymentStatus), errors.Is(err, domain.ErrOrderNotFound):
		// 重试也不会成功, 丢弃
		c.logger.Warn("忽略支付事件",
			elog.String("orderSN", evt.OrderSN),
			elog.Any("status", evt.Status),
			elog.FieldErr(err))
		return nil
	case errors.Is(err, domain.ErrOrderClosed):
		// 订单已经关闭, 库存和优惠码可能已经归还, 需要人工退款
		c.logger.Error("已关闭的订单收到支付成功事件",
			elog.String("orderSN", evt.OrderSN),
			elog.FieldErr(err))
		return nil
	case err != nil:
		return fmt.Errorf("更新订单 %s 支付状态失败: %w", evt.OrderSN, err)
	}
	return nil
}
