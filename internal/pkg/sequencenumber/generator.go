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

// Package sequencenumber 生成面向用户展示的订单编号
package sequencenumber

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

const (
	DefaultPrefix = "SO"
	randomLength  = 8
	// 前缀 + 12 位时间 + 4 位用户尾号 + 8 位随机串
	timeLayout = "060102150405"
)

var ErrRandomTooShort = errors.New("随机串长度不足")

type Generator struct {
	prefix string
	now    func() time.Time
	random func() string
}

func NewGenerator() *Generator {
	return NewGeneratorWith(DefaultPrefix, time.Now, shortuuid.New)
}

func NewGeneratorWith(prefix string, now func() time.Time, random func() string) *Generator {
	return &Generator{prefix: prefix, now: now, random: random}
}

// Generate 用户尾号让客服可以根据编号快速定位用户, 随机串保证唯一
func (g *Generator) Generate(uid int64) (string, error) {
	r := g.random()
	if len(r) < randomLength {
		return "", fmt.Errorf("%w: %q", ErrRandomTooShort, r)
	}
	if uid < 0 {
		uid = -uid
	}
	return fmt.Sprintf("%s%s%04d%s",
		g.prefix,
		g.now().Format(timeLayout),
		uid%10000,
		strings.ToUpper(r[:randomLength])), nil
}

// Len 生成的编号长度
func (g *Generator) Len() int {
	return len(g.prefix) + len(timeLayout) + 4 + randomLength
}
