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

package database

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	instrumentationName = "internal/pkg/database/tracing"
	spanKey             = "tracing:span"
)

// GormTracingPlugin 为 GORM 的每一次数据库操作创建一个 span
type GormTracingPlugin struct {
	tracer trace.Tracer
	system string
}

func NewGormTracingPlugin() *GormTracingPlugin {
	return &GormTracingPlugin{
		tracer: otel.GetTracerProvider().Tracer(instrumentationName),
		system: "mysql",
	}
}

func (p *GormTracingPlugin) Name() string {
	return "GormTracingPlugin"
}

func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	steps := []func() error{
		func() error { return cb.Query().Before("gorm:query").Register("tracing:before_query", p.before("SELECT")) },
		func() error { return cb.Query().After("gorm:query").Register("tracing:after_query", p.after("SELECT")) },
		func() error { return cb.Create().Before("gorm:create").Register("tracing:before_create", p.before("INSERT")) },
		func() error { return cb.Create().After("gorm:create").Register("tracing:after_create", p.after("INSERT")) },
		func() error { return cb.Update().Before("gorm:update").Register("tracing:before_update", p.before("UPDATE")) },
		func() error { return cb.Update().After("gorm:update").Register("tracing:after_update", p.after("UPDATE")) },
		func() error { return cb.Delete().Before("gorm:delete").Register("tracing:before_delete", p.before("DELETE")) },
		func() error { return cb.Delete().After("gorm:delete").Register("tracing:after_delete", p.after("DELETE")) },
		func() error { return cb.Raw().Before("gorm:raw").Register("tracing:before_raw", p.before("RAW")) },
		func() error { return cb.Raw().After("gorm:raw").Register("tracing:after_raw", p.after("RAW")) },
	}
	for _, register := range steps {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

func (p *GormTracingPlugin) before(op string) func(db *gorm.DB) {
	return func(db *gorm.DB) {
		ctx := context.Background()
		if db.Statement != nil && db.Statement.Context != nil {
			ctx = db.Statement.Context
		}
		ctx, span := p.tracer.Start(ctx, fmt.Sprintf("%s %s", db.Statement.Table, op),
			trace.WithSpanKind(trace.SpanKindClient))
		db.Statement.Context = ctx
		db.InstanceSet(spanKey, span)
	}
}

func (p *GormTracingPlugin) after(op string) func(db *gorm.DB) {
	return func(db *gorm.DB) {
		val, ok := db.InstanceGet(spanKey)
		if !ok {
			return
		}
		span, ok := val.(trace.Span)
		if !ok {
			return
		}
		defer span.End()
		span.SetAttributes(p.attributes(op, db)...)
		// 没找到记录是业务语义, 不算错误
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, db.Error.Error())
			return
		}
		span.SetStatus(codes.Ok, "")
	}
}

func (p *GormTracingPlugin) attributes(op string, db *gorm.DB) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", p.system),
		attribute.String("db.operation", op),
		attribute.Int64("db.rows_affected", db.Statement.RowsAffected),
	}
	switch {
	case db.Statement.Schema != nil:
		attrs = append(attrs, attribute.String("db.table", db.Statement.Schema.Table))
	case db.Statement.Table != "":
		attrs = append(attrs, attribute.String("db.table", db.Statement.Table))
	}
	if sql := db.Statement.SQL.String(); sql != "" {
		attrs = append(attrs, attribute.String("db.statement", sql))
	}
	return attrs
}
