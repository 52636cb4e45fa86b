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
	"testing"
	"time"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/memory"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	ordermocks "github.com/ecodeclub/storefront/internal/order/mocks"
	"github.com/ecodeclub/storefront/internal/pkg/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type chanProducer struct {
	ch  chan OrderEvent
	err error
}

func (p *chanProducer) Produce(ctx context.Context, key string, evt OrderEvent) error {
	if key != evt.OrderSN {
		return errors.New("key 应该是订单序列号")
	}
	p.ch <- evt
	return p.err
}

func TestOrderEventNotifier(t *testing.T) {
	idGen, err := snowflake.NewGenerator(1, 2)
	require.NoError(t, err)
	o := domain.Order{
		SN:      "SO001",
		BuyerID: 123,
		Items: []domain.OrderItem{
			{SKUSN: "sku-1", Name: "键盘", Quantity: 2, DiscountPrice: 19900},
		},
		Shipping:   domain.Shipping{Receiver: "张三", Email: "a@example.com", Province: "广东", City: "深圳", Address: "南山区"},
		Status:     domain.StatusReturnRejected,
		FinalPrice: 39800,
		Return:     domain.Return{Reason: "不喜欢", RejectReason: "已拆封"},
	}

	testCases := []struct {
		name       string
		notify     func(n *OrderEventNotifier, ctx context.Context)
		wantType   string
		wantReason string
	}{
		{
			name: "下单",
			notify: func(n *OrderEventNotifier, ctx context.Context) {
				n.NotifyOrderCreated(ctx, o)
			},
			wantType:   OrderEventTypeCreated,
			wantReason: "不喜欢",
		},
		{
			name: "退货完成",
			notify: func(n *OrderEventNotifier, ctx context.Context) {
				n.NotifyReturnCompleted(ctx, o)
			},
			wantType:   OrderEventTypeReturnCompleted,
			wantReason: "不喜欢",
		},
		{
			name: "退货被拒_携带拒绝原因",
			notify: func(n *OrderEventNotifier, ctx context.Context) {
				n.NotifyReturnRejected(ctx, o)
			},
			wantType:   OrderEventTypeReturnRejected,
			wantReason: "已拆封",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := &chanProducer{ch: make(chan OrderEvent, 1)}
			n := newOrderEventNotifier(p, idGen, time.Second)
			ctx, cancel := context.WithCancel(context.Background())
			tc.notify(n, ctx)
			// 调用方返回后 ctx 会被取消, 事件仍然要发出去
			cancel()

			select {
			case evt := <-p.ch:
				assert.NotEmpty(t, evt.EventID)
				assert.Equal(t, tc.wantType, evt.Type)
				assert.Equal(t, tc.wantReason, evt.Reason)
				assert.Equal(t, "SO001", evt.OrderSN)
				assert.Equal(t, "a@example.com", evt.Email)
				assert.Equal(t, domain.StatusReturnRejected.String(), evt.Status)
				assert.Equal(t, []OrderEventItem{
					{SKUSN: "sku-1", Name: "键盘", Quantity: 2, Price: 19900},
				}, evt.Items)
			case <-time.After(3 * time.Second):
				t.Fatal("没有收到订单事件")
			}
		})
	}
}

func TestOrderEventNotifier_ProduceError(t *testing.T) {
	idGen, err := snowflake.NewGenerator(1, 2)
	require.NoError(t, err)
	p := &chanProducer{ch: make(chan OrderEvent, 1), err: errors.New("mock mq error")}
	n := newOrderEventNotifier(p, idGen, time.Second)
	// 发送失败不会影响调用方
	n.NotifyOrderCreated(context.Background(), domain.Order{SN: "SO002"})
	select {
	case evt := <-p.ch:
		assert.Equal(t, "SO002", evt.OrderSN)
	case <-time.After(3 * time.Second):
		t.Fatal("没有尝试发送订单事件")
	}
}

func TestPaymentEventConsumer_Consume(t *testing.T) {
	testCases := []struct {
		name    string
		evt     PaymentEvent
		before  func(svc *ordermocks.MockService)
		wantErr bool
	}{
		{
			name: "支付成功",
			evt:  PaymentEvent{OrderSN: "SO001", Status: uint8(domain.PaymentStatusPaid)},
			before: func(svc *ordermocks.MockService) {
				svc.EXPECT().UpdatePaymentStatus(gomock.Any(), "SO001", domain.PaymentStatusPaid).Return(nil)
			},
		},
		{
			name: "已支付订单收到失败_丢弃",
			evt:  PaymentEvent{OrderSN: "SO002", Status: uint8(domain.PaymentStatusFailed)},
			before: func(svc *ordermocks.MockService) {
				svc.EXPECT().UpdatePaymentStatus(gomock.Any(), "SO002", domain.PaymentStatusFailed).
					Return(domain.ErrInvalidPaymentStatus)
			},
		},
		{
			name: "订单不存在_丢弃",
			evt:  PaymentEvent{OrderSN: "SO003", Status: uint8(domain.PaymentStatusPaid)},
			before: func(svc *ordermocks.MockService) {
				svc.EXPECT().UpdatePaymentStatus(gomock.Any(), "SO003", domain.PaymentStatusPaid).
					Return(domain.ErrOrderNotFound)
			},
		},
		{
			name: "已取消订单收到支付成功_丢弃",
			evt:  PaymentEvent{OrderSN: "SO005", Status: uint8(domain.PaymentStatusPaid)},
			before: func(svc *ordermocks.MockService) {
				svc.EXPECT().UpdatePaymentStatus(gomock.Any(), "SO005", domain.PaymentStatusPaid).
					Return(fmt.Errorf("%w: sn=SO005", domain.ErrOrderClosed))
			},
		},
		{
			name: "数据库错误",
			evt:  PaymentEvent{OrderSN: "SO004", Status: uint8(domain.PaymentStatusPaid)},
			before: func(svc *ordermocks.MockService) {
				svc.EXPECT().UpdatePaymentStatus(gomock.Any(), "SO004", domain.PaymentStatusPaid).
					Return(errors.New("mock db error"))
			},
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			svc := ordermocks.NewMockService(ctrl)
			tc.before(svc)

			q := memory.NewMQ()
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			require.NoError(t, q.CreateTopic(ctx, PaymentEventsTopic, 1))
			c, err := NewPaymentEventConsumer(svc, q)
			require.NoError(t, err)

			producer, err := q.Producer(PaymentEventsTopic)
			require.NoError(t, err)
			data, err := json.Marshal(tc.evt)
			require.NoError(t, err)
			_, err = producer.Produce(ctx, &mq.Message{Value: data})
			require.NoError(t, err)

			err = c.Consume(ctx)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
