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
	"errors"
	"testing"
	"time"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/memory"
	"github.com/ecodeclub/storefront/internal/email"
	emailmocks "github.com/ecodeclub/storefront/internal/email/mocks"
	"github.com/ecodeclub/storefront/internal/notification/internal/event"
	"github.com/ecodeclub/storefront/internal/notification/internal/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestOrderEventConsumer_Consume(t *testing.T) {
	testCases := []struct {
		name    string
		evt     event.OrderEvent
		before  func(svc *emailmocks.MockService)
		wantErr bool
	}{
		{
			name: "发送下单邮件",
			evt:  event.OrderEvent{Type: event.OrderEventTypeCreated, OrderSN: "SO001", Email: "a@example.com"},
			before: func(svc *emailmocks.MockService) {
				svc.EXPECT().SendMail(gomock.Any(), gomock.Cond(func(x any) bool {
					m := x.(email.Mail)
					return m.To == "a@example.com" && m.From == "storefront" &&
						m.Subject == "订单已提交: SO001" && len(m.Body) > 0
				})).Return(nil)
			},
		},
		{
			name:   "没有邮箱_跳过",
			evt:    event.OrderEvent{Type: event.OrderEventTypeCreated, OrderSN: "SO002"},
			before: func(svc *emailmocks.MockService) {},
		},
		{
			name:    "未知事件",
			evt:     event.OrderEvent{Type: "unknown", OrderSN: "SO003", Email: "a@example.com"},
			before:  func(svc *emailmocks.MockService) {},
			wantErr: true,
		},
		{
			name: "发送失败",
			evt:  event.OrderEvent{Type: event.OrderEventTypeReturnCompleted, OrderSN: "SO004", Email: "a@example.com"},
			before: func(svc *emailmocks.MockService) {
				svc.EXPECT().SendMail(gomock.Any(), gomock.Any()).Return(errors.New("mock email error"))
			},
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			svc := emailmocks.NewMockService(ctrl)
			tc.before(svc)

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			q := memory.NewMQ()
			require.NoError(t, q.CreateTopic(ctx, event.OrderEventsTopic, 1))
			c, err := NewOrderEventConsumer(q, mail.NewRenderer(), svc, "storefront")
			require.NoError(t, err)

			producer, err := q.Producer(event.OrderEventsTopic)
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
