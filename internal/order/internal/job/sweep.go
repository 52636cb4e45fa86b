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

package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/order/internal/service"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/task/ecron"
)

type Config struct {
	ConfirmAfter time.Duration `yaml:"confirmAfter"`
	AbandonAfter time.Duration `yaml:"abandonAfter"`
	SettleAfter  time.Duration `yaml:"settleAfter"`
	BatchSize    int           `yaml:"batchSize"`
}

func DefaultConfig() Config {
	return Config{
		ConfirmAfter: 30 * time.Minute,
		AbandonAfter: 24 * time.Hour,
		SettleAfter:  time.Minute,
		BatchSize:    100,
	}
}

// sweeper 按 ID 游标遍历候选订单. 单个订单失败只记录日志, 不影响后续订单
type sweeper struct {
	name   string
	kind   domain.SweepKind
	after  time.Duration
	limit  int
	handle func(ctx context.Context, id int64) (domain.Order, error)
	svc    service.Service
	now    func() time.Time
	l      *elog.Component
}

func newSweeper(svc service.Service, name string, kind domain.SweepKind, after time.Duration, limit int,
	handle func(ctx context.Context, id int64) (domain.Order, error)) sweeper {
	if limit <= 0 {
		limit = DefaultConfig().BatchSize
	}
	return sweeper{
		name:   name,
		kind:   kind,
		after:  after,
		limit:  limit,
		handle: handle,
		svc:    svc,
		now:    time.Now,
		l:      elog.DefaultLogger.With(elog.FieldComponent(name)),
	}
}

func (s *sweeper) Name() string {
	return s.name
}

func (s *sweeper) Run(ctx context.Context) error {
	start := time.Now()
	before := s.now().Add(-s.after).UnixMilli()
	var cursor int64
	var handled, skipped, failed int
	for {
		orders, err := s.svc.ListSweepCandidates(ctx, domain.SweepQuery{
			Kind:   s.kind,
			Before: before,
			Cursor: cursor,
			Limit:  s.limit,
		})
		if err != nil {
			return fmt.Errorf("查询待处理订单失败: %w", err)
		}
		for _, o := range orders {
			cursor = o.ID
			if ctx.Err() != nil {
				return ctx.Err()
			}
			_, er := s.handle(ctx, o.ID)
			switch {
			case er == nil:
				handled++
			case errors.Is(er, domain.ErrInvalidTransition), errors.Is(er, domain.ErrNotAbandonable):
				// 订单已经被其他请求处理
				skipped++
			default:
				failed++
				s.l.Error("处理订单失败",
					elog.Int64("orderID", o.ID),
					elog.String("orderSN", o.SN),
					elog.FieldErr(er))
			}
		}
		if len(orders) < s.limit {
			break
		}
	}
	s.l.Info("扫描订单结束",
		elog.Int("handled", handled),
		elog.Int("skipped", skipped),
		elog.Int("failed", failed),
		elog.FieldCost(time.Since(start)))
	return nil
}

var (
	_ ecron.NamedJob = (*ConfirmPendingOrdersJob)(nil)
	_ ecron.NamedJob = (*AbandonUnpaidOrdersJob)(nil)
	_ ecron.NamedJob = (*SettleOrdersJob)(nil)
)

// ConfirmPendingOrdersJob 待确认超过 ConfirmAfter 的订单自动确认
type ConfirmPendingOrdersJob struct {
	sweeper
}

func NewConfirmPendingOrdersJob(svc service.Service, cfg Config) *ConfirmPendingOrdersJob {
	return &ConfirmPendingOrdersJob{
		sweeper: newSweeper(svc, "confirm_pending_orders_job", domain.SweepKindConfirm,
			cfg.ConfirmAfter, cfg.BatchSize, svc.ConfirmOrder),
	}
}

// AbandonUnpaidOrdersJob 在线支付超过 AbandonAfter 仍未支付的订单释放库存并删除
type AbandonUnpaidOrdersJob struct {
	sweeper
}

func NewAbandonUnpaidOrdersJob(svc service.Service, cfg Config) *AbandonUnpaidOrdersJob {
	return &AbandonUnpaidOrdersJob{
		sweeper: newSweeper(svc, "abandon_unpaid_orders_job", domain.SweepKindAbandon,
			cfg.AbandonAfter, cfg.BatchSize, svc.AbandonOrder),
	}
}

// SettleOrdersJob 重新执行中断的库存释放和优惠码归还
type SettleOrdersJob struct {
	sweeper
}

func NewSettleOrdersJob(svc service.Service, cfg Config) *SettleOrdersJob {
	return &SettleOrdersJob{
		sweeper: newSweeper(svc, "settle_orders_job", domain.SweepKindSettle,
			cfg.SettleAfter, cfg.BatchSize, svc.SettleOrder),
	}
}
