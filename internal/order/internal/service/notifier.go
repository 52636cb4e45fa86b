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

package service

import (
	"context"

	"github.com/ecodeclub/storefront/internal/order/internal/domain"
)

// Notifier 尽力而为的通知, 实现方自行处理失败, 不能阻塞调用方
//
//go:generate mockgen -source=./notifier.go -package=svcmocks -destination=./mocks/notifier.mock.go Notifier
type Notifier interface {
	NotifyOrderCreated(ctx context.Context, order domain.Order)
	NotifyReturnCompleted(ctx context.Context, order domain.Order)
	NotifyReturnRejected(ctx context.Context, order domain.Order)
}
