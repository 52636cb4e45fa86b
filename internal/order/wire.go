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

//go:build wireinject

package order

import (
	"sync"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/storefront/internal/marketing"
	"github.com/ecodeclub/storefront/internal/order/internal/event"
	"github.com/ecodeclub/storefront/internal/order/internal/job"
	"github.com/ecodeclub/storefront/internal/order/internal/repository"
	"github.com/ecodeclub/storefront/internal/order/internal/repository/dao"
	"github.com/ecodeclub/storefront/internal/order/internal/service"
	"github.com/ecodeclub/storefront/internal/order/internal/web"
	"github.com/ecodeclub/storefront/internal/pkg/sequencenumber"
	"github.com/ecodeclub/storefront/internal/pkg/snowflake"
	"github.com/ecodeclub/storefront/internal/product"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
)

func InitModule(db *egorm.Component,
	cache ecache.Cache,
	q mq.MQ,
	idGen *snowflake.Generator,
	pm *product.Module,
	mm *marketing.Module) (*Module, error) {
	wire.Build(
		InitTablesOnce,
		repository.NewRepository,
		sequencenumber.NewGenerator,
		initServiceConfig,
		initNotifier,
		wire.FieldsOf(new(*product.Module), "Svc", "Ledger"),
		wire.FieldsOf(new(*marketing.Module), "Ledger"),
		service.NewService,
		event.NewPaymentEventConsumer,
		initJobConfig,
		job.NewConfirmPendingOrdersJob,
		job.NewAbandonUnpaidOrdersJob,
		job.NewSettleOrdersJob,
		web.NewHandler,
		web.NewAdminHandler,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.OrderDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewOrderGORMDAO(db)
}

func initNotifier(q mq.MQ, idGen *snowflake.Generator) (service.Notifier, error) {
	n, err := event.NewOrderEventNotifier(q, idGen)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// initServiceConfig 未配置的项使用默认值
func initServiceConfig() service.Config {
	cfg := service.DefaultConfig()
	unmarshalIfPresent("order.shipping", &cfg.Shipping)
	unmarshalIfPresent("order.retry", &cfg.Retry)
	if d := econf.GetDuration("order.compensateTimeout"); d > 0 {
		cfg.CompensateTimeout = d
	}
	return cfg
}

func initJobConfig() job.Config {
	cfg := job.DefaultConfig()
	unmarshalIfPresent("order.sweep", &cfg)
	return cfg
}

func unmarshalIfPresent(key string, val any) {
	if econf.Get(key) == nil {
		return
	}
	if err := econf.UnmarshalKey(key, val); err != nil {
		panic(err)
	}
}
