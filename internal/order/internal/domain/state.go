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

import "fmt"

type Action uint8

func (a Action) String() string {
	switch a {
	case ActionConfirm:
		return "Confirm"
	case ActionCancel:
		return "Cancel"
	case ActionDeliver:
		return "Deliver"
	case ActionRequestReturn:
		return "RequestReturn"
	case ActionApproveReturn:
		return "ApproveReturn"
	case ActionRejectReturn:
		return "RejectReturn"
	case ActionUpdate:
		return "Update"
	case ActionDelete:
		return "Delete"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

const (
	ActionConfirm       Action = 1
	ActionCancel        Action = 2
	ActionDeliver       Action = 3
	ActionRequestReturn Action = 4
	ActionApproveReturn Action = 5
	ActionRejectReturn  Action = 6
	ActionUpdate        Action = 7
	ActionDelete        Action = 8
)

// Effect 状态转换附带的副作用
type Effect uint16

func (e Effect) Has(f Effect) bool {
	return e&f == f
}

const (
	EffectReleaseStock Effect = 1 << iota
	EffectRevertDiscount
	EffectMarkPaid
	EffectMarkReturnApproved
	EffectSoftDelete
	EffectNotifyReturnCompleted
	EffectNotifyReturnRejected
)

type transitionKey struct {
	from   OrderStatus
	action Action
}

type transition struct {
	to      OrderStatus
	effects Effect
}

var allStatuses = []OrderStatus{
	StatusPendingConfirmation,
	StatusAwaitingPickup,
	StatusDelivered,
	StatusReturnRequested,
	StatusReturned,
	StatusReturnRejected,
	StatusCancelled,
}

var transitions = buildTransitions()

func buildTransitions() map[transitionKey]transition {
	t := map[transitionKey]transition{
		{StatusPendingConfirmation, ActionConfirm}: {to: StatusAwaitingPickup},
		{StatusPendingConfirmation, ActionCancel}: {
			to:      StatusCancelled,
			effects: EffectReleaseStock | EffectRevertDiscount,
		},
		{StatusAwaitingPickup, ActionCancel}: {
			to:      StatusCancelled,
			effects: EffectReleaseStock | EffectRevertDiscount,
		},
		{StatusAwaitingPickup, ActionDeliver}: {
			to:      StatusDelivered,
			effects: EffectMarkPaid,
		},
		{StatusDelivered, ActionRequestReturn}: {to: StatusReturnRequested},
		{StatusReturnRequested, ActionApproveReturn}: {
			to:      StatusReturned,
			effects: EffectReleaseStock | EffectMarkReturnApproved | EffectNotifyReturnCompleted,
		},
		{StatusReturnRequested, ActionRejectReturn}: {
			to:      StatusReturnRejected,
			effects: EffectNotifyReturnRejected,
		},
		{StatusPendingConfirmation, ActionUpdate}: {to: StatusPendingConfirmation},
		{StatusAwaitingPickup, ActionUpdate}:      {to: StatusAwaitingPickup},
	}
	for _, s := range allStatuses {
		if s == StatusCancelled {
			continue
		}
		// 库存是否真的需要释放由 StockStatus 决定, 已退货的订单不会重复释放
		t[transitionKey{s, ActionDelete}] = transition{
			to:      s,
			effects: EffectSoftDelete | EffectReleaseStock | EffectRevertDiscount,
		}
	}
	return t
}

// Transition 查询状态表, 不修改任何状态. 已删除的订单不允许任何操作
func Transition(status OrderStatus, deleted bool, action Action) (OrderStatus, Effect, error) {
	if deleted {
		return status, 0, &InvalidTransitionError{Status: status, Action: action, Deleted: true}
	}
	t, ok := transitions[transitionKey{from: status, action: action}]
	if !ok {
		return status, 0, &InvalidTransitionError{Status: status, Action: action}
	}
	return t.to, t.effects, nil
}
