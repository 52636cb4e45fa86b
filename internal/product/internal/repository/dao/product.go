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
	ErrSKUNotFound       = gorm.ErrRecordNotFound
	ErrInsufficientStock = errors.New("库存不足")
	// ErrDuplicateStockLog 同一个业务键已经操作过该 SKU
	ErrDuplicateStockLog = errors.New("库存流水已存在")
)

type ProductDAO interface {
	FindSPUByID(ctx context.Context, id int64) (SPU, error)
	FindSKUBySN(ctx context.Context, sn string) (SKU, error)
	FindSKUByID(ctx context.Context, id int64) (SKU, error)
	CreateSPU(ctx context.Context, spu SPU) (int64, error)
	CreateSKU(ctx context.Context, sku SKU) (int64, error)
	GetStock(ctx context.Context, skuID int64) (int64, error)
	IncrementTotalSold(ctx context.Context, spuID, delta int64) error

	// Reserve 记录流水并扣减库存, 同时增加销量
	Reserve(ctx context.Context, l StockLog) error
	// Release 记录流水并归还库存, 同时减少销量
	Release(ctx context.Context, l StockLog) error
	// Adjust 人工调整库存, 不影响销量
	Adjust(ctx context.Context, l StockLog) error
}

type ProductGORMDAO struct {
	db *egorm.Component
}

func NewProductGORMDAO(db *egorm.Component) ProductDAO {
	return &ProductGORMDAO{db: db}
}

func (d *ProductGORMDAO) FindSPUByID(ctx context.Context, id int64) (SPU, error) {
	var res SPU
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindSKUBySN(ctx context.Context, sn string) (SKU, error) {
	var res SKU
	err := d.db.WithContext(ctx).Where("sn = ?", sn).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindSKUByID(ctx context.Context, id int64) (SKU, error) {
	var res SKU
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) CreateSPU(ctx context.Context, spu SPU) (int64, error) {
	now := time.Now().UnixMilli()
	spu.Utime, spu.Ctime = now, now
	err := d.db.WithContext(ctx).Create(&spu).Error
	return spu.Id, err
}

func (d *ProductGORMDAO) CreateSKU(ctx context.Context, sku SKU) (int64, error) {
	now := time.Now().UnixMilli()
	sku.Utime, sku.Ctime = now, now
	err := d.db.WithContext(ctx).Create(&sku).Error
	return sku.Id, err
}

func (d *ProductGORMDAO) GetStock(ctx context.Context, skuID int64) (int64, error) {
	var res SKU
	err := d.db.WithContext(ctx).Select("id", "stock").Where("id = ?", skuID).First(&res).Error
	return res.Stock, err
}

func (d *ProductGORMDAO) IncrementTotalSold(ctx context.Context, spuID, delta int64) error {
	res := d.db.WithContext(ctx).Model(&SPU{}).Where("id = ?", spuID).Updates(map[string]any{
		"total_sold": gorm.Expr("total_sold + ?", delta),
		"utime":      time.Now().UnixMilli(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (d *ProductGORMDAO) Reserve(ctx context.Context, l StockLog) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		if err := d.createLog(tx, &l, now); err != nil {
			return err
		}
		// 以条件更新保证库存不会被扣成负数
		res := tx.Model(&SKU{}).
			Where("id = ? AND stock >= ?", l.SKUID, l.Quantity).
			Updates(map[string]any{
				"stock": gorm.Expr("stock - ?", l.Quantity),
				"utime": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return d.missError(tx, l.SKUID)
		}
		return d.updateTotalSold(tx, l.SPUID, l.Quantity, now)
	})
}

func (d *ProductGORMDAO) Release(ctx context.Context, l StockLog) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		if err := d.createLog(tx, &l, now); err != nil {
			return err
		}
		res := tx.Model(&SKU{}).
			Where("id = ?", l.SKUID).
			Updates(map[string]any{
				"stock": gorm.Expr("stock + ?", l.Quantity),
				"utime": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSKUNotFound
		}
		return d.updateTotalSold(tx, l.SPUID, -l.Quantity, now)
	})
}

func (d *ProductGORMDAO) Adjust(ctx context.Context, l StockLog) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		if err := d.createLog(tx, &l, now); err != nil {
			return err
		}
		query := tx.Model(&SKU{}).Where("id = ?", l.SKUID)
		if l.Quantity < 0 {
			query = query.Where("stock >= ?", -l.Quantity)
		}
		res := query.Updates(map[string]any{
			"stock": gorm.Expr("stock + ?", l.Quantity),
			"utime": now,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return d.missError(tx, l.SKUID)
		}
		return nil
	})
}

func (d *ProductGORMDAO) createLog(tx *gorm.DB, l *StockLog, now int64) error {
	l.Ctime, l.Utime = now, now
	err := tx.Create(l).Error
	if d.isMySQLUniqueIndexError(err) {
		return ErrDuplicateStockLog
	}
	return err
}

func (d *ProductGORMDAO) updateTotalSold(tx *gorm.DB, spuID, delta, now int64) error {
	return tx.Model(&SPU{}).Where("id = ?", spuID).Updates(map[string]any{
		"total_sold": gorm.Expr("total_sold + ?", delta),
		"utime":      now,
	}).Error
}

// missError 条件更新没有命中时区分 SKU 不存在和库存不足
func (d *ProductGORMDAO) missError(tx *gorm.DB, skuID int64) error {
	var cnt int64
	if err := tx.Model(&SKU{}).Where("id = ?", skuID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return ErrSKUNotFound
	}
	return ErrInsufficientStock
}

func (d *ProductGORMDAO) isMySQLUniqueIndexError(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		return me.Number == uniqueIndexErrNo
	}
	return false
}

type SPU struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:商品SPU自增ID"`
	SN          string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_product_spu_sn;comment:商品SPU序列号"`
	Name        string `gorm:"type:varchar(255);not null;comment:商品名称"`
	Description string `gorm:"not null;comment:商品描述"`
	CategoryID  int64  `gorm:"not null;default:0;index:idx_category_id;comment:类目ID"`
	BrandID     int64  `gorm:"not null;default:0;comment:品牌ID"`
	TotalSold   int64  `gorm:"not null;default:0;comment:已售数量"`
	Status      uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:状态 1=下架 2=上架"`
	Ctime       int64
	Utime       int64
}

type SKU struct {
	Id            int64  `gorm:"primaryKey;autoIncrement;comment:商品SKU自增ID"`
	SN            string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_product_sku_sn;comment:商品SKU序列号"`
	SPUID         int64  `gorm:"column:spu_id;not null;index:idx_spu_id;comment:商品SPU自增ID"`
	Name          string `gorm:"type:varchar(255);not null;comment:SKU名称"`
	Description   string `gorm:"not null;comment:商品描述"`
	Color         string `gorm:"type:varchar(64);not null;default:'';comment:颜色"`
	Size          string `gorm:"type:varchar(64);not null;default:'';comment:尺码"`
	Attrs         string `gorm:"type:varchar(1024);not null;default:'';comment:商品销售属性,JSON格式"`
	Image         string `gorm:"type:varchar(512);not null;default:'';comment:商品缩略图,CDN绝对路径"`
	OriginalPrice int64  `gorm:"not null;comment:原价,单位为分"`
	Price         int64  `gorm:"not null;comment:售价,单位为分, 999表示9.99元"`
	Stock         int64  `gorm:"not null;comment:可售库存"`
	Status        uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:状态 1=下架 2=上架"`
	Ctime         int64
	Utime         int64
}

// StockLog 库存流水, (biz_key, sku_id, type) 唯一, 用于保证同一操作只生效一次
type StockLog struct {
	Id       int64  `gorm:"primaryKey;autoIncrement;comment:库存流水自增ID"`
	BizKey   string `gorm:"type:varchar(128);not null;uniqueIndex:uniq_biz_sku_type;comment:业务幂等键"`
	SKUID    int64  `gorm:"column:sku_id;not null;uniqueIndex:uniq_biz_sku_type;comment:商品SKU自增ID"`
	Type     uint8  `gorm:"type:tinyint unsigned;not null;uniqueIndex:uniq_biz_sku_type;comment:类型 1=预占 2=释放 3=调整"`
	SPUID    int64  `gorm:"column:spu_id;not null;comment:商品SPU自增ID"`
	Quantity int64  `gorm:"not null;comment:数量,调整时可以为负"`
	Ctime    int64
	Utime    int64
}
