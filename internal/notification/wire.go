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

package notification

import (
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/storefront/internal/email"
	"github.com/ecodeclub/storefront/internal/notification/internal/consumer"
	"github.com/ecodeclub/storefront/internal/notification/internal/mail"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
)

func InitModule(q mq.MQ, emailSvc email.Service) (*Module, error) {
	wire.Build(
		mail.NewRenderer,
		initOrderEventConsumer,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

func initOrderEventConsumer(q mq.MQ, renderer *mail.Renderer, emailSvc email.Service) (*consumer.OrderEventConsumer, error) {
	from := econf.GetString("notification.email.from")
	if from == "" {
		from = "storefront"
	}
	return consumer.NewOrderEventConsumer(q, renderer, emailSvc, from)
}
