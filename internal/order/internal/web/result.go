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

package web

import (
	"errors"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/storefront/internal/marketing"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/order/internal/errs"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	invalidParameterResult = ginx.Result{
		Code: errs.InvalidParameter.Code,
		Msg:  errs.InvalidParameter.Msg,
	}
	orderNotFoundResult = ginx.Result{
		Code: errs.OrderNotFound.Code,
		Msg:  errs.OrderNotFound.Msg,
	}
	allItemsUnavailableResult = ginx.Result{
		Code: errs.AllItemsUnavailable.Code,
		Msg:  errs.AllItemsUnavailable.Msg,
	}
	discountCodeAlreadyUsedResult = ginx.Result{
		Code: errs.DiscountCodeAlreadyUsed.Code,
		Msg:  errs.DiscountCodeAlreadyUsed.Msg,
	}
	concurrentModificationResult = ginx.Result{
		Code: errs.ConcurrentModification.Code,
		Msg:  errs.ConcurrentModification.Msg,
	}
	duplicateRequestResult = ginx.Result{
		Code: errs.DuplicateRequest.Code,
		Msg:  errs.DuplicateRequest.Msg,
	}
)

// errorResult 业务错误转换为对应的错误码, 不再向上返回 error. 其余错误按系统错误处理
func errorResult(err error) (ginx.Result, error) {
	var (
		oos *domain.OutOfStockError
		ite *domain.InvalidTransitionError
	)
	switch {
	case errors.As(err, &oos):
		return ginx.Result{
			Code: errs.OutOfStock.Code,
			Msg:  errs.OutOfStock.Msg,
			Data: slice.Map(oos.Items, func(idx int, src domain.UnavailableItem) UnavailableItem {
				return newUnavailableItem(src)
			}),
		}, nil
	case errors.As(err, &ite):
		return ginx.Result{
			Code: errs.InvalidTransition.Code,
			Msg:  errs.InvalidTransition.Msg,
			Data: Transition{
				Status:     ite.Status.ToUint8(),
				StatusName: ite.Status.String(),
				Action:     ite.Action.String(),
				Deleted:    ite.Deleted,
			},
		}, nil
	case errors.Is(err, domain.ErrOrderNotFound):
		return orderNotFoundResult, nil
	case errors.Is(err, domain.ErrAllItemsUnavailable):
		return allItemsUnavailableResult, nil
	case errors.Is(err, marketing.ErrCodeAlreadyUsed):
		return discountCodeAlreadyUsedResult, nil
	case errors.Is(err, domain.ErrPersistenceConflict):
		return concurrentModificationResult, nil
	case errors.Is(err, domain.ErrInvalidOrderItems),
		errors.Is(err, domain.ErrInvalidPaymentMethod),
		errors.Is(err, domain.ErrInvalidPricing):
		return invalidParameterResult, nil
	default:
		return systemErrorResult, err
	}
}
