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

import "github.com/ecodeclub/storefront/internal/marketing/internal/domain"

type DiscountCode struct {
	ID                int64  `json:"id,omitempty"`
	Code              string `json:"code"`
	Type              uint8  `json:"type"`
	Value             int64  `json:"value"`
	MinPurchaseAmount int64  `json:"minPurchaseAmount"`
	MaxDiscountAmount int64  `json:"maxDiscountAmount"`
	StartAt           int64  `json:"startAt"`
	EndAt             int64  `json:"endAt"`
	UsageLimit        int64  `json:"usageLimit"`
	UsageCount        int64  `json:"usageCount"`
	Status            uint8  `json:"status"`
	Ctime             int64  `json:"ctime,omitempty"`
	Utime             int64  `json:"utime,omitempty"`
}

func newDiscountCode(c domain.DiscountCode) DiscountCode {
	return DiscountCode{
		ID:                c.ID,
		Code:              c.Code,
		Type:              c.Type.ToUint8(),
		Value:             c.Value,
		MinPurchaseAmount: c.MinPurchaseAmount,
		MaxDiscountAmount: c.MaxDiscountAmount,
		StartAt:           c.StartAt,
		EndAt:             c.EndAt,
		UsageLimit:        c.UsageLimit,
		UsageCount:        c.UsageCount,
		Status:            c.Status.ToUint8(),
		Ctime:             c.Ctime,
		Utime:             c.Utime,
	}
}

func (c DiscountCode) toDomain() domain.DiscountCode {
	return domain.DiscountCode{
		Code:              c.Code,
		Type:              domain.DiscountType(c.Type),
		Value:             c.Value,
		MinPurchaseAmount: c.MinPurchaseAmount,
		MaxDiscountAmount: c.MaxDiscountAmount,
		StartAt:           c.StartAt,
		EndAt:             c.EndAt,
		UsageLimit:        c.UsageLimit,
		Status:            domain.Status(c.Status),
	}
}

type CreateDiscountCodeReq struct {
	DiscountCode DiscountCode `json:"discountCode"`
}

type IDReq struct {
	ID int64 `json:"id"`
}

type ListReq struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type ListResp struct {
	DiscountCodes []DiscountCode `json:"discountCodes"`
	Total         int64          `json:"total"`
}

type SetStatusReq struct {
	ID     int64 `json:"id"`
	Status uint8 `json:"status"`
}
