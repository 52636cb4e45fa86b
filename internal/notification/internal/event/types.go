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

const (
	OrderEventsTopic = "order_events"

	OrderEventTypeCreated         = "created"
	OrderEventTypeReturnCompleted = "return_completed"
	OrderEventTypeReturnRejected  = "return_rejected"
)

// OrderEvent 只解析发送邮件需要的字段
type OrderEvent struct {
	EventID    string           `json:"eventId"`
	Type       string           `json:"type"`
	OrderSN    string           `json:"orderSn"`
	Receiver   string           `json:"receiver"`
	Email      string           `json:"email"`
	Address    string           `json:"address"`
	Status     string           `json:"status"`
	FinalPrice int64            `json:"finalPrice"`
	Items      []OrderEventItem `json:"items"`
	Reason     string           `json:"reason"`
}

type OrderEventItem struct {
	SKUSN    string `json:"skuSn"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Price    int64  `json:"price"`
}
