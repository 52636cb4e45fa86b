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

package dao

import (
	"context"
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound    = gorm.ErrRecordNotFound
	ErrDuplicateCode     = errors.New("优惠码重复")
	ErrUsageExists       = errors.New("用户已使用该优惠码")
	ErrUsageLimitReached = errors.New("优惠码使用次数已达上限")
)

type DiscountDAO interface {
	Create(ctx context.Context, c DiscountCode) (int64, error)
	FindByID(ctx context.Context, id int64) (DiscountCode, error)
	FindByCode(ctx context.Context, code string) (DiscountCode, error)
	List(ctx context.Context, offset, limit int) ([]DiscountCode, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status uint8) error

	FindUsage(ctx context.Context, codeID, uid int64) (DiscountCodeUsage, error)
	// RecordUsage 插入使用记录并增加使用次数
	RecordUsage(ctx context.Context, u DiscountCodeUsage) error
	// DeleteUsage 删除订单占用的使用记录并减少使用次数, 返回是否删除了记录
	DeleteUsage(ctx context.Context, codeID, uid int64, orderSN string) (bool, error)
}

type discountGORMDAO struct {
	db *egorm.Component
}

func NewDiscountGORMDAO(db *egorm.Component) DiscountDAO {
	return &discountGORMDAO{db: db}
}

func (d *discountGORMDAO) Create(ctx context.Context, c DiscountCode) (int64, error) {
	now := time.Now().UnixMilli()
	c.Ctime, c.Utime = now, now
	err := d.db.WithContext(ctx).Create(&c).Error
	if d.isMySQLUniqueIndexError(err) {
		return 0, ErrDuplicateCode
	}
	return c.Id, err
}

func (d *discountGORMDAO) FindByID(ctx context.Context, id int64) (DiscountCode, error) {
	var res DiscountCode
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *discountGORMDAO) FindByCode(ctx context.Context, code string) (DiscountCode, error) {
	var res DiscountCode
	err := d.db.WithContext(ctx).Where("code = ?", code).First(&res).Error
	return res, err
}

func (d *discountGORMDAO) List(ctx context.Context, offset, limit int) ([]DiscountCode, error) {
	var res []DiscountCode
	err := d.db.WithContext(ctx).Order("id DESC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (d *discountGORMDAO) Count(ctx context.Context) (int64, error) {
	var res int64
	err := d.db.WithContext(ctx).Model(&DiscountCode{}).Count(&res).Error
	return res, err
}

func (d *discountGORMDAO) UpdateStatus(ctx context.Context, id int64, status uint8) error {
	res := d.db.WithContext(ctx).Model(&DiscountCode{}).Where("id = ?", id).Updates(map[string]any{
		"status": status,
		"utime":  time.Now().UnixMilli(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (d *discountGORMDAO) FindUsage(ctx context.Context, codeID, uid int64) (DiscountCodeUsage, error) {
	var res DiscountCodeUsage
	err := d.db.WithContext(ctx).Where("code_id = ? AND uid = ?", codeID, uid).First(&res).Error
	return res, err
}

func (d *discountGORMDAO) RecordUsage(ctx context.Context, u DiscountCodeUsage) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		u.Ctime, u.Utime = now, now
		if err := tx.Create(&u).Error; err != nil {
			if d.isMySQLUniqueIndexError(err) {
				return ErrUsageExists
			}
			return err
		}
		res := tx.Model(&DiscountCode{}).
			Where("id = ? AND (usage_limit = 0 OR usage_count < usage_limit)", u.CodeID).
			Updates(map[string]any{
				"usage_count": gorm.Expr("usage_count + 1"),
				"utime":       now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUsageLimitReached
		}
		return nil
	})
}

func (d *discountGORMDAO) DeleteUsage(ctx context.Context, codeID, uid int64, orderSN string) (bool, error) {
	deleted := false
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("code_id = ? AND uid = ? AND order_sn = ?", codeID, uid, orderSN).
			Delete(&DiscountCodeUsage{})
		if res.Error != nil || res.RowsAffected == 0 {
			return res.Error
		}
		deleted = true
		return tx.Model(&DiscountCode{}).
			Where("id = ? AND usage_count > 0", codeID).
			Updates(map[string]any{
				"usage_count": gorm.Expr("usage_count - 1"),
				"utime":       time.Now().UnixMilli(),
			}).Error
	})
	return deleted && err == nil, err
}

func (d *discountGORMDAO) isMySQLUniqueIndexError(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		return me.Number == uniqueIndexErrNo
	}
	return false
}

type DiscountCode struct {
	Id                int64  `gorm:"primaryKey;autoIncrement;comment:优惠码自增ID"`
	Code              string `gorm:"type:varchar(64);not null;uniqueIndex:uniq_code;comment:优惠码"`
	Type              uint8  `gorm:"type:tinyint unsigned;not null;comment:类型 1=按比例 2=固定金额"`
	Value             int64  `gorm:"not null;comment:按比例时为百分数,固定金额时单位为分"`
	MinPurchaseAmount int64  `gorm:"not null;default:0;comment:最低消费金额,单位为分"`
	MaxDiscountAmount int64  `gorm:"not null;default:0;comment:最多优惠金额,0表示不限"`
	StartAt           int64  `gorm:"not null;default:0;comment:生效时间,0表示不限"`
	EndAt             int64  `gorm:"not null;default:0;comment:失效时间,0表示不限"`
	UsageLimit        int64  `gorm:"not null;default:0;comment:总使用次数上限,0表示不限"`
	UsageCount        int64  `gorm:"not null;default:0;comment:已使用次数"`
	Status            uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:状态 1=启用 2=停用 3=删除"`
	Ctime             int64
	Utime             int64
}

// DiscountCodeUsage 同一个用户对同一个码只会有一条记录
type DiscountCodeUsage struct {
	Id      int64  `gorm:"primaryKey;autoIncrement;comment:使用记录自增ID"`
	CodeID  int64  `gorm:"column:code_id;not null;uniqueIndex:uniq_code_uid;comment:优惠码自增ID"`
	UID     int64  `gorm:"column:uid;not null;uniqueIndex:uniq_code_uid;comment:用户ID"`
	OrderSN string `gorm:"type:varchar(64);not null;index:idx_order_sn;comment:占用该码的订单序列号"`
	Amount  int64  `gorm:"not null;comment:优惠金额,单位为分"`
	Ctime   int64
	Utime   int64
}
