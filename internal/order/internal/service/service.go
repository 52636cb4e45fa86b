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
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/ecodeclub/storefront/internal/marketing"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/order/internal/repository"
	"github.com/ecodeclub/storefront/internal/pkg/sequencenumber"
	"github.com/ecodeclub/storefront/internal/pkg/snowflake"
	"github.com/ecodeclub/storefront/internal/product"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=./service.go -package=ordermocks -destination=../../mocks/order.mock.go Service
type Service interface {
	// CreateOrder 库存不足时返回 *domain.OutOfStockError, 用户已经用过优惠码时返回 marketing.ErrCodeAlreadyUsed
	CreateOrder(ctx context.Context, req domain.CreateOrderReq) (domain.CreateResult, error)
	UpdateOrder(ctx context.Context, id int64, patch domain.OrderPatch) (domain.Order, error)

	CancelOrder(ctx context.Context, id int64, reason string) (domain.Order, error)
	ConfirmOrder(ctx context.Context, id int64) (domain.Order, error)
	DeliverOrder(ctx context.Context, id int64) (domain.Order, error)
	RequestReturn(ctx context.Context, id int64, reason string, media []string) (domain.Order, error)
	CompleteReturn(ctx context.Context, id int64) (domain.Order, error)
	RejectReturn(ctx context.Context, id int64, reason string) (domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) (domain.Order, error)
	// AbandonOrder 清理超时未支付的在线支付订单, 不满足条件时返回 domain.ErrNotAbandonable
	AbandonOrder(ctx context.Context, id int64) (domain.Order, error)
	// UpdatePaymentStatus 支付结果回调, 已支付的订单不会再变更支付状态
	UpdatePaymentStatus(ctx context.Context, sn string, status domain.PaymentStatus) error
	// SettleOrder 重新执行没有完成的库存释放和优惠码归还
	SettleOrder(ctx context.Context, id int64) (domain.Order, error)

	FindOrderByID(ctx context.Context, id int64) (domain.Order, error)
	FindOrderBySN(ctx context.Context, sn string) (domain.Order, error)
	// FindUserOrderBySN 订单不属于该用户或者已删除时返回 domain.ErrOrderNotFound
	FindUserOrderBySN(ctx context.Context, uid int64, sn string) (domain.Order, error)
	ListUserOrders(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, int64, error)
	ListProductOrders(ctx context.Context, spuID int64, offset, limit int) ([]domain.Order, int64, error)
	ListOrders(ctx context.Context, status domain.OrderStatus, offset, limit int) ([]domain.Order, int64, error)
	ListSweepCandidates(ctx context.Context, q domain.SweepQuery) ([]domain.Order, error)
}

type RetryConfig struct {
	InitialInterval time.Duration `yaml:"initialInterval"`
	MaxInterval     time.Duration `yaml:"maxInterval"`
	MaxRetries      int32         `yaml:"maxRetries"`
}

type Config struct {
	Shipping          domain.ShippingPolicy
	Retry             RetryConfig
	// CompensateTimeout 补偿动作和持久化之后的副作用使用独立的超时
	CompensateTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Retry: RetryConfig{
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			MaxRetries:      3,
		},
		CompensateTimeout: 5 * time.Second,
	}
}

type service struct {
	repo       repository.OrderRepository
	productSvc product.Service
	stock      product.StockLedger
	discount   marketing.DiscountLedger
	notifier   Notifier
	snGen      *sequencenumber.Generator
	idGen      *snowflake.Generator
	cfg        Config
	logger     *elog.Component
}

func NewService(
	repo repository.OrderRepository,
	productSvc product.Service,
	stock product.StockLedger,
	discount marketing.DiscountLedger,
	notifier Notifier,
	snGen *sequencenumber.Generator,
	idGen *snowflake.Generator,
	cfg Config,
) Service {
	return &service{
		repo:       repo,
		productSvc: productSvc,
		stock:      stock,
		discount:   discount,
		notifier:   notifier,
		snGen:      snGen,
		idGen:      idGen,
		cfg:        cfg,
		logger:     elog.DefaultLogger.With(elog.FieldComponent("OrderService")),
	}
}

// withRetry 只有乐观锁冲突才会重试, 每次重试 fn 都需要重新读取订单
func (s *service) withRetry(ctx context.Context, fn func() error) error {
	strategy, err := retry.NewExponentialBackoffRetryStrategy(
		s.cfg.Retry.InitialInterval, s.cfg.Retry.MaxInterval, s.cfg.Retry.MaxRetries)
	if err != nil {
		return fmt.Errorf("重试策略配置错误: %w", err)
	}
	for {
		err = fn()
		if !errors.Is(err, domain.ErrPersistenceConflict) {
			return err
		}
		next, ok := strategy.Next()
		if !ok {
			return fmt.Errorf("超过最大重试次数: %w", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(next):
		}
	}
}

// detach 持久化之后的副作用不受调用方取消的影响
func (s *service) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.cfg.CompensateTimeout)
}

func (s *service) FindOrderByID(ctx context.Context, id int64) (domain.Order, error) {
	return s.repo.FindOrderByID(ctx, id)
}

func (s *service) FindOrderBySN(ctx context.Context, sn string) (domain.Order, error) {
	return s.repo.FindOrderBySN(ctx, sn)
}

func (s *service) FindUserOrderBySN(ctx context.Context, uid int64, sn string) (domain.Order, error) {
	o, err := s.repo.FindOrderBySN(ctx, sn)
	if err != nil {
		return domain.Order{}, err
	}
	if o.BuyerID != uid || o.Deleted {
		return domain.Order{}, fmt.Errorf("%w: sn=%s, uid=%d", domain.ErrOrderNotFound, sn, uid)
	}
	return o, nil
}

func (s *service) ListUserOrders(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, int64, error) {
	return s.list(
		func() ([]domain.Order, error) { return s.repo.ListUserOrders(ctx, uid, offset, limit) },
		func() (int64, error) { return s.repo.TotalUserOrders(ctx, uid) },
	)
}

func (s *service) ListProductOrders(ctx context.Context, spuID int64, offset, limit int) ([]domain.Order, int64, error) {
	return s.list(
		func() ([]domain.Order, error) { return s.repo.ListProductOrders(ctx, spuID, offset, limit) },
		func() (int64, error) { return s.repo.TotalProductOrders(ctx, spuID) },
	)
}

func (s *service) ListOrders(ctx context.Context, status domain.OrderStatus, offset, limit int) ([]domain.Order, int64, error) {
	return s.list(
		func() ([]domain.Order, error) { return s.repo.ListOrders(ctx, status, offset, limit) },
		func() (int64, error) { return s.repo.TotalOrders(ctx, status) },
	)
}

func (s *service) list(find func() ([]domain.Order, error), count func() (int64, error)) ([]domain.Order, int64, error) {
	var (
		eg    errgroup.Group
		os    []domain.Order
		total int64
	)
	eg.Go(func() error {
		var err error
		os, err = find()
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = count()
		return err
	})
	return os, total, eg.Wait()
}

func (s *service) ListSweepCandidates(ctx context.Context, q domain.SweepQuery) ([]domain.Order, error) {
	return s.repo.ListSweepCandidates(ctx, q)
}
