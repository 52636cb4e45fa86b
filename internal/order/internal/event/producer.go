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
	"time"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/order/internal/service"
	"github.com/ecodeclub/storefront/internal/pkg/mqx"
	"github.com/ecodeclub/storefront/internal/pkg/snowflake"
	"github.com/gotomicro/ego/core/elog"
)

var _ service.Notifier = (*OrderEventNotifier)(nil)

// OrderEventNotifier 把通知转成 order_events 消息. 发送在独立的 goroutine 中进行,
// 失败只记录日志, 不影响订单操作本身
type OrderEventNotifier struct {
	producer mqx.Producer[OrderEvent]
	idGen    *snowflake.Generator
	timeout  time.Duration
	logger   *elog.Component
}

func NewOrderEventNotifier(q mq.MQ, idGen *snowflake.Generator) (*OrderEventNotifier, error) {
	p, err := mqx.NewJSONProducer[OrderEvent](q, OrderEventsTopic)
	if err != nil {
		return nil, err
	}
	return newOrderEventNotifier(p, idGen, 3*time.Second), nil
}

func newOrderEventNotifier(p mqx.Producer[OrderEvent], idGen *snowflake.Generator, timeout time.Duration) *OrderEventNotifier {
	return &OrderEventNotifier{
		producer: p,
		idGen:    idGen,
		timeout:  timeout,
		logger:   elog.DefaultLogger.With(elog.FieldComponent("OrderEventNotifier")),
	}
}

func (n *OrderEventNotifier) NotifyOrderCreated(ctx context.Context, o domain.Order) {
	n.send(ctx, newOrderEvent(OrderEventTypeCreated, o))
}

func (n *OrderEventNotifier) NotifyReturnCompleted(ctx context.Context, o domain.Order) {
	n.send(ctx, newOrderEvent(OrderEventTypeReturnCompleted, o))
}

func (n *OrderEventNotifier) NotifyReturnRejected(ctx context.Context, o domain.Order) {
	n.send(ctx, newOrderEvent(OrderEventTypeReturnRejected, o))
}

func (n *OrderEventNotifier) send(ctx context.Context, evt OrderEvent) {
	id, err := n.idGen.Generate(snowflake.BizOrderEvent)
	if err != nil {
		n.logger.Error("生成事件ID失败", elog.String("orderSN", evt.OrderSN), elog.FieldErr(err))
		return
	}
	evt.EventID = id.String()
	// 请求结束后 ctx 会被取消, 这里只保留其中的 trace 信息
	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, n.timeout)
		defer cancel()
		if er := n.producer.Produce(ctx, evt.OrderSN, evt); er != nil {
			n.logger.Error("发送订单事件失败",
				elog.String("type", evt.Type),
				elog.String("orderSN", evt.OrderSN),
				elog.FieldErr(er))
		}
	}()
}
