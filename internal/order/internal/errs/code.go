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

package errs

var (
	SystemError             = ErrorCode{Code: 509001, Msg: "系统错误"}
	InvalidParameter        = ErrorCode{Code: 409001, Msg: "参数错误"}
	OrderNotFound           = ErrorCode{Code: 409002, Msg: "订单不存在"}
	OutOfStock              = ErrorCode{Code: 409003, Msg: "商品库存不足"}
	AllItemsUnavailable     = ErrorCode{Code: 409004, Msg: "所有商品均不可购买"}
	InvalidTransition       = ErrorCode{Code: 409005, Msg: "订单当前状态不允许该操作"}
	DiscountCodeAlreadyUsed = ErrorCode{Code: 409006, Msg: "优惠码已被使用"}
	ConcurrentModification  = ErrorCode{Code: 409007, Msg: "订单已被修改, 请刷新后重试"}
	DuplicateRequest        = ErrorCode{Code: 409008, Msg: "重复请求"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
