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

// Package saga 按顺序执行一组本地操作, 任何一步失败都会逆序执行已完成步骤的补偿操作
package saga

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gotomicro/ego/core/elog"
)

type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

type Saga struct {
	name              string
	steps             []Step
	executed          []Step
	// 补偿使用独立的超时, 避免原始 ctx 已经超时导致补偿无法执行
	compensateTimeout time.Duration
	logger            *elog.Component
}

func New(name string, compensateTimeout time.Duration) *Saga {
	return &Saga{
		name:              name,
		compensateTimeout: compensateTimeout,
		logger:            elog.DefaultLogger,
	}
}

// AddStep 按添加顺序执行, 按逆序补偿. action 和 compensate 都允许为 nil
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) *Saga {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
	return s
}

// Execute 返回的错误包含失败步骤的原始错误, 可以用 errors.Is 判定.
// 补偿失败的错误会被一并合并返回
func (s *Saga) Execute(ctx context.Context) error {
	for _, step := range s.steps {
		if err := ctx.Err(); err != nil {
			return errors.Join(fmt.Errorf("%s 在步骤[%s]前超时: %w", s.name, step.Name, err), s.compensate())
		}
		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				return errors.Join(fmt.Errorf("%s 步骤[%s]执行失败: %w", s.name, step.Name, err), s.compensate())
			}
		}
		s.executed = append(s.executed, step)
	}
	return nil
}

func (s *Saga) compensate() error {
	ctx := context.Background()
	if s.compensateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.compensateTimeout)
		defer cancel()
	}
	var errs []error
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			s.logger.Error("补偿失败",
				elog.String("saga", s.name),
				elog.String("step", step.Name),
				elog.FieldErr(err))
			errs = append(errs, fmt.Errorf("%s 步骤[%s]补偿失败: %w", s.name, step.Name, err))
		}
	}
	s.executed = nil
	return errors.Join(errs...)
}
