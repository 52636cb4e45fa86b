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
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOrderNotFound        = errors.New("订单不存在")
	ErrOutOfStock           = errors.New("商品库存不足")
	ErrAllItemsUnavailable  = errors.New("所有商品均不可购买")
	ErrInvalidTransition    = errors.New("订单状态不允许该操作")
	ErrPersistenceConflict  = errors.New("订单已被并发修改")
	ErrInvalidOrderItems    = errors.New("订单商品非法")
	ErrInvalidPricing       = errors.New("订单金额非法")
	ErrInvalidPaymentStatus = errors.New("支付状态非法")
	ErrInvalidPaymentMethod = errors.New("支付方式非法")
	// ErrNotAbandonable 订单已支付或者不是在线支付订单, 清理任务直接跳过
	ErrNotAbandonable       = errors.New("订单不满足超时清理条件")
	// ErrOrderClosed 已取消或已删除的订单不再接受支付成功
	ErrOrderClosed          = errors.New("订单已关闭")
)

type OutOfStockError struct {
	Items []UnavailableItem
}

func (e *OutOfStockError) Error() string {
	sns := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		sns = append(sns, item.SKUSN)
	}
	return fmt.Sprintf("%s: %s", ErrOutOfStock.Error(), strings.Join(sns, ","))
}

func (e *OutOfStockError) Unwrap() error {
	return ErrOutOfStock
}

type InvalidTransitionError struct {
	Status  OrderStatus
	Action  Action
	Deleted bool
}

func (e *InvalidTransitionError) Error() string {
	if e.Deleted {
		return fmt.Sprintf("%s: 订单已删除, action=%s", ErrInvalidTransition.Error(), e.Action)
	}
	return fmt.Sprintf("%s: status=%s, action=%s", ErrInvalidTransition.Error(), e.Status, e.Action)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
