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
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrCodeAlreadyUsed 用户已经使用过该优惠码
	ErrCodeAlreadyUsed      = errors.New("优惠码已被该用户使用")
	ErrDiscountCodeNotFound = errors.New("优惠码不存在")
	ErrInvalidDiscountCode  = errors.New("优惠码参数非法")
)

type DiscountType uint8

func (t DiscountType) ToUint8() uint8 {
	return uint8(t)
}

const (
	DiscountTypePercentage DiscountType = 1 // 按比例
	DiscountTypeFixed      DiscountType = 2 // 固定金额
)

type Status uint8

func (s Status) ToUint8() uint8 {
	return uint8(s)
}

const (
	StatusActive   Status = 1
	StatusInactive Status = 2
	StatusDeleted  Status = 3
)

type DiscountCode struct {
	ID   int64
	Code string
	Type DiscountType
	// Value 按比例时为百分数, 10 表示 10%; 固定金额时单位为分
	Value             int64
	MinPurchaseAmount int64
	// MaxDiscountAmount 按比例优惠的上限, 0 表示不限
	MaxDiscountAmount int64
	// StartAt EndAt 毫秒时间戳, 0 表示不限
	StartAt int64
	EndAt   int64
	// UsageLimit 总共可以使用的次数, 0 表示不限
	UsageLimit int64
	UsageCount int64
	Status     Status
	Ctime      int64
	Utime      int64
}

func (c DiscountCode) Validate() error {
	if c.Code == "" || c.Value <= 0 || c.MinPurchaseAmount < 0 ||
		c.MaxDiscountAmount < 0 || c.UsageLimit < 0 {
		return ErrInvalidDiscountCode
	}
	if c.EndAt != 0 && c.EndAt < c.StartAt {
		return ErrInvalidDiscountCode
	}
	switch c.Type {
	case DiscountTypePercentage:
		if c.Value > 100 {
			return ErrInvalidDiscountCode
		}
	case DiscountTypeFixed:
	default:
		return ErrInvalidDiscountCode
	}
	return nil
}

// Applicable 不满足条件时该码不产生优惠, 但是不算错误
func (c DiscountCode) Applicable(purchaseAmount int64, now time.Time) bool {
	if c.Status != StatusActive {
		return false
	}
	ts := now.UnixMilli()
	if c.StartAt != 0 && ts < c.StartAt {
		return false
	}
	if c.EndAt != 0 && ts > c.EndAt {
		return false
	}
	return purchaseAmount >= c.MinPurchaseAmount
}

// Compute 计算优惠金额, 结果不会超过 purchaseAmount
func (c DiscountCode) Compute(purchaseAmount int64) int64 {
	if purchaseAmount <= 0 {
		return 0
	}
	purchase := decimal.NewFromInt(purchaseAmount)
	var amount decimal.Decimal
	switch c.Type {
	case DiscountTypePercentage:
		amount = purchase.Mul(decimal.NewFromInt(c.Value)).Div(decimal.NewFromInt(100)).Floor()
		if c.MaxDiscountAmount > 0 {
			amount = decimal.Min(amount, decimal.NewFromInt(c.MaxDiscountAmount))
		}
	case DiscountTypeFixed:
		amount = decimal.NewFromInt(c.Value)
	}
	amount = decimal.Min(amount, purchase)
	if amount.IsNegative() {
		return 0
	}
	return amount.IntPart()
}

type ApplyMode uint8

const (
	// ApplyModeCreate 新建订单, 用户用过该码直接报错
	ApplyModeCreate ApplyMode = 1
	// ApplyModeUpdate 修改订单, 订单自己已经占用的码不算重复使用
	ApplyModeUpdate ApplyMode = 2
)

type DiscountApplication struct {
	Code           string
	UID            int64
	OrderSN        string
	PurchaseAmount int64
	Mode           ApplyMode
}

type DiscountResult struct {
	CodeID  int64
	Code    string
	Amount  int64
	Applied bool
}

type DiscountUsage struct {
	ID      int64
	CodeID  int64
	UID     int64
	OrderSN string
	Amount  int64
	Ctime   int64
}
