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

package snowflake

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/ecodeclub/ekit/syncx"
)

// Biz 区分使用 ID 的业务, 不同业务使用独立的节点, 互不抢占序列号
type Biz uint

const (
	BizStockAdjust Biz = 0 // 库存调整操作
	BizOrderEvent  Biz = 1 // 订单事件
)

const (
	maxNode uint = 31
	maxBiz  uint = 31
)

var (
	ErrExceedNode = errors.New("node超出限制")
	ErrExceedBiz  = errors.New("biz超出限制")
	ErrUnknownBiz = errors.New("未知的biz")
)

// +---------------------------------------------------------------------------------------+
// | 1 Bit Unused | 41 Bit Timestamp |  5 Bit Biz    | 5 Bit NodeID  |   12 Bit Sequence ID |
// +---------------------------------------------------------------------------------------+

type Generator struct {
	nodes syncx.Map[Biz, *snowflake.Node]
}

// NewGenerator bizCount 表示需要支持的业务个数, 业务从 0 开始编号
func NewGenerator(nodeID uint, bizCount uint) (*Generator, error) {
	if nodeID > maxNode {
		return nil, fmt.Errorf("%w: %d", ErrExceedNode, nodeID)
	}
	if bizCount > maxBiz+1 {
		return nil, fmt.Errorf("%w: %d", ErrExceedBiz, bizCount)
	}
	g := &Generator{}
	for i := uint(0); i < bizCount; i++ {
		n, err := snowflake.NewNode(int64(i<<5 | nodeID))
		if err != nil {
			return nil, err
		}
		g.nodes.Store(Biz(i), n)
	}
	return g, nil
}

func (g *Generator) Generate(biz Biz) (ID, error) {
	n, ok := g.nodes.Load(biz)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownBiz, biz)
	}
	return ID(n.Generate()), nil
}

type ID int64

func (id ID) Biz() Biz {
	return Biz(snowflake.ID(id).Node() >> 5)
}

func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
