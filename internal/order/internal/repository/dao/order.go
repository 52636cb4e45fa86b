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

	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound  = gorm.ErrRecordNotFound
	// ErrVersionConflict 版本号不匹配, 订单已经被其他请求修改
	ErrVersionConflict = errors.New("订单版本冲突")
	ErrDuplicateSN     = errors.New("订单序列号重复")
)

type OrderDAO interface {
	Create(ctx context.Context, o Order, items []OrderItem) (int64, error)
	FindByID(ctx context.Context, id int64) (Order, error)
	FindBySN(ctx context.Context, sn string) (Order, error)
	FindItemsByOrderIDs(ctx context.Context, orderIDs []int64) ([]OrderItem, error)

	// Update 以 version 做 CAS, items 为 nil 时不修改订单项
	Update(ctx context.Context, o Order, items []OrderItem) error
	// MarkStockReleased 只把 releasing 的订单标记为 released
	MarkStockReleased(ctx context.Context, id int64, releasing, released uint8) error
	MarkDiscountReverted(ctx context.Context, id int64, reverting, reverted uint8) error

	ListByBuyer(ctx context.Context, uid int64, offset, limit int) ([]Order, error)
	CountByBuyer(ctx context.Context, uid int64) (int64, error)
	ListBySPU(ctx context.Context, spuID int64, offset, limit int) ([]Order, error)
	CountBySPU(ctx context.Context, spuID int64) (int64, error)
	// List status 为 0 时不过滤状态
	List(ctx context.Context, status uint8, offset, limit int) ([]Order, error)
	Count(ctx context.Context, status uint8) (int64, error)

	ListCreatedBefore(ctx context.Context, statuses []uint8, before, cursor int64, limit int) ([]Order, error)
	ListUnpaidBefore(ctx context.Context, method uint8, paymentStatuses, statuses []uint8, before, cursor int64, limit int) ([]Order, error)
	ListUnsettledBefore(ctx context.Context, stockStatus, discountStatus, adjustStatus uint8, before, cursor int64, limit int) ([]Order, error)
}

type OrderGORMDAO struct {
	db *egorm.Component
}

func NewOrderGORMDAO(db *egorm.Component) OrderDAO {
	return &OrderGORMDAO{db: db}
}

func (d *OrderGORMDAO) Create(ctx context.Context, o Order, items []OrderItem) (int64, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		o.Ctime, o.Utime = now, now
		if err := tx.Create(&o).Error; err != nil {
			if d.isMySQLUniqueIndexError(err) {
				return ErrDuplicateSN
			}
			return err
		}
		return d.createItems(tx, o.Id, items, now)
	})
	return o.Id, err
}

func (d *OrderGORMDAO) createItems(tx *gorm.DB, orderID int64, items []OrderItem, now int64) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].Id = 0
		items[i].OrderId = orderID
		items[i].Ctime, items[i].Utime = now, now
	}
	return tx.Create(&items).Error
}

func (d *OrderGORMDAO) isMySQLUniqueIndexError(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		return me.Number == uniqueIndexErrNo
	}
	return false
}

func (d *OrderGORMDAO) FindByID(ctx context.Context, id int64) (Order, error) {
	var res Order
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *OrderGORMDAO) FindBySN(ctx context.Context, sn string) (Order, error) {
	var res Order
	err := d.db.WithContext(ctx).Where("sn = ?", sn).First(&res).Error
	return res, err
}

func (d *OrderGORMDAO) FindItemsByOrderIDs(ctx context.Context, orderIDs []int64) ([]OrderItem, error) {
	var res []OrderItem
	if len(orderIDs) == 0 {
		return res, nil
	}
	err := d.db.WithContext(ctx).Where("order_id IN ?", orderIDs).Order("id ASC").Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) Update(ctx context.Context, o Order, items []OrderItem) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		res := tx.Model(&Order{}).
			Where("id = ? AND version = ?", o.Id, o.Version).
			Updates(map[string]any{
				"shipping_receiver":    o.ShippingReceiver,
				"shipping_phone":       o.ShippingPhone,
				"shipping_email":       o.ShippingEmail,
				"shipping_province":    o.ShippingProvince,
				"shipping_city":        o.ShippingCity,
				"shipping_address":     o.ShippingAddress,
				"shipping_note":        o.ShippingNote,
				"payment_status":       o.PaymentStatus,
				"status":               o.Status,
				"total_price":          o.TotalPrice,
				"shipping_price":       o.ShippingPrice,
				"discount_code":        o.DiscountCode,
				"discount_amount":      o.DiscountAmount,
				"final_price":          o.FinalPrice,
				"discount_status":      o.DiscountStatus,
				"stock_status":         o.StockStatus,
				"adjustments":          o.Adjustments,
				"adjust_status":        o.AdjustStatus,
				"cancel_reason":        o.CancelReason,
				"return_reason":        o.ReturnReason,
				"return_media":         o.ReturnMedia,
				"return_reject_reason": o.ReturnRejectReason,
				"return_approved":      o.ReturnApproved,
				"deleted":              o.Deleted,
				"version":              gorm.Expr("version + 1"),
				"utime":                now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}
		if items == nil {
			return nil
		}
		if err := tx.Where("order_id = ?", o.Id).Delete(&OrderItem{}).Error; err != nil {
			return err
		}
		return d.createItems(tx, o.Id, items, now)
	})
}

func (d *OrderGORMDAO) MarkStockReleased(ctx context.Context, id int64, releasing, released uint8) error {
	return d.mark(ctx, id, "stock_status", releasing, released)
}

func (d *OrderGORMDAO) MarkDiscountReverted(ctx context.Context, id int64, reverting, reverted uint8) error {
	return d.mark(ctx, id, "discount_status", reverting, reverted)
}

// mark 同样会增加版本号, 让持有旧版本的并发请求重新读取
func (d *OrderGORMDAO) mark(ctx context.Context, id int64, column string, from, to uint8) error {
	res := d.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND "+column+" = ?", id, from).
		Updates(map[string]any{
			column:    to,
			"version": gorm.Expr("version + 1"),
			"utime":   time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (d *OrderGORMDAO) ListByBuyer(ctx context.Context, uid int64, offset, limit int) ([]Order, error) {
	var res []Order
	err := d.db.WithContext(ctx).
		Where("buyer_id = ? AND deleted = ?", uid, false).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) CountByBuyer(ctx context.Context, uid int64) (int64, error) {
	var res int64
	err := d.db.WithContext(ctx).Model(&Order{}).
		Where("buyer_id = ? AND deleted = ?", uid, false).
		Count(&res).Error
	return res, err
}

func (d *OrderGORMDAO) ListBySPU(ctx context.Context, spuID int64, offset, limit int) ([]Order, error) {
	var res []Order
	db := d.db.WithContext(ctx)
	err := db.Where("id IN (?)", d.orderIDsBySPU(db, spuID)).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) CountBySPU(ctx context.Context, spuID int64) (int64, error) {
	var res int64
	db := d.db.WithContext(ctx)
	err := db.Model(&Order{}).Where("id IN (?)", d.orderIDsBySPU(db, spuID)).Count(&res).Error
	return res, err
}

func (d *OrderGORMDAO) orderIDsBySPU(db *gorm.DB, spuID int64) *gorm.DB {
	return db.Model(&OrderItem{}).Distinct("order_id").Where("spu_id = ?", spuID)
}

func (d *OrderGORMDAO) List(ctx context.Context, status uint8, offset, limit int) ([]Order, error) {
	var res []Order
	err := d.withStatus(d.db.WithContext(ctx), status).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) Count(ctx context.Context, status uint8) (int64, error) {
	var res int64
	err := d.withStatus(d.db.WithContext(ctx).Model(&Order{}), status).Count(&res).Error
	return res, err
}

func (d *OrderGORMDAO) withStatus(db *gorm.DB, status uint8) *gorm.DB {
	if status == 0 {
		return db
	}
	return db.Where("status = ?", status)
}

func (d *OrderGORMDAO) ListCreatedBefore(ctx context.Context, statuses []uint8, before, cursor int64, limit int) ([]Order, error) {
	var res []Order
	err := d.db.WithContext(ctx).
		Where("status IN ? AND deleted = ? AND ctime < ? AND id > ?", statuses, false, before, cursor).
		Order("id ASC").Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) ListUnpaidBefore(ctx context.Context, method uint8, paymentStatuses, statuses []uint8, before, cursor int64, limit int) ([]Order, error) {
	var res []Order
	err := d.db.WithContext(ctx).
		Where("payment_method = ? AND payment_status IN ? AND status IN ?", method, paymentStatuses, statuses).
		Where("deleted = ? AND ctime < ? AND id > ?", false, before, cursor).
		Order("id ASC").Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) ListUnsettledBefore(ctx context.Context, stockStatus, discountStatus, adjustStatus uint8, before, cursor int64, limit int) ([]Order, error) {
	var res []Order
	err := d.db.WithContext(ctx).
		Where("(stock_status = ? OR discount_status = ? OR adjust_status = ?)", stockStatus, discountStatus, adjustStatus).
		Where("utime < ? AND id > ?", before, cursor).
		Order("id ASC").Limit(limit).
		Find(&res).Error
	return res, err
}

type Order struct {
	Id      int64  `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	SN      string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_order_sn;comment:订单序列号"`
	BuyerId int64  `gorm:"not null;index:idx_buyer_id;comment:购买者ID"`

	ShippingReceiver string `gorm:"type:varchar(64);not null;default:'';comment:收货人"`
	ShippingPhone    string `gorm:"type:varchar(32);not null;default:'';comment:收货人电话"`
	ShippingEmail    string `gorm:"type:varchar(255);not null;default:'';comment:通知邮箱"`
	ShippingProvince string `gorm:"type:varchar(64);not null;default:'';comment:省份"`
	ShippingCity     string `gorm:"type:varchar(64);not null;default:'';comment:城市"`
	ShippingAddress  string `gorm:"type:varchar(512);not null;default:'';comment:详细地址"`
	ShippingNote     string `gorm:"type:varchar(512);not null;default:'';comment:备注"`

	PaymentMethod uint8 `gorm:"type:tinyint unsigned;not null;comment:支付方式 1=货到付款 2=在线支付"`
	PaymentStatus uint8 `gorm:"type:tinyint unsigned;not null;default:1;comment:支付状态 1=未支付 2=已支付 3=用户取消 4=疑似欺诈 5=支付失败"`
	Status        uint8 `gorm:"type:tinyint unsigned;not null;default:1;index:idx_status_ctime,priority:1;comment:订单状态"`

	TotalPrice     int64  `gorm:"not null;comment:商品总价;单位为分, 999表示9.99元"`
	ShippingPrice  int64  `gorm:"not null;comment:运费;单位为分"`
	DiscountCode   string `gorm:"type:varchar(64);not null;default:'';comment:优惠码"`
	DiscountAmount int64  `gorm:"not null;comment:优惠金额;单位为分"`
	FinalPrice     int64  `gorm:"not null;comment:实付金额;单位为分"`
	DiscountStatus uint8  `gorm:"type:tinyint unsigned;not null;default:0;comment:优惠码状态 0=未使用 1=已使用 2=归还中 3=已归还"`
	StockStatus    uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:库存状态 1=已预占 2=释放中 3=已释放"`

	Adjustments  sqlx.JsonColumn[[]Adjustment] `gorm:"type:json;comment:修改订单后待执行的补偿动作"`
	AdjustStatus uint8                         `gorm:"type:tinyint unsigned;not null;default:0;comment:修改补偿状态 0=无 1=待执行"`

	CancelReason       string                    `gorm:"type:varchar(512);not null;default:'';comment:取消原因"`
	ReturnReason       string                    `gorm:"type:varchar(512);not null;default:'';comment:退货原因"`
	ReturnMedia        sqlx.JsonColumn[[]string] `gorm:"type:json;comment:退货凭证URL"`
	ReturnRejectReason string                    `gorm:"type:varchar(512);not null;default:'';comment:拒绝退货原因"`
	ReturnApproved     bool                      `gorm:"not null;default:false;comment:是否同意退货"`

	Deleted bool  `gorm:"not null;default:false;comment:软删除标记"`
	Version int64 `gorm:"not null;default:1;comment:乐观锁版本号"`
	Ctime   int64 `gorm:"index:idx_status_ctime,priority:2"`
	Utime   int64
}

type Adjustment struct {
	BizKey     string          `json:"bizKey"`
	Releases   []AdjustRelease `json:"releases"`
	RevertCode string          `json:"revertCode"`
}

type AdjustRelease struct {
	SPUId    int64 `json:"spuId"`
	SKUId    int64 `json:"skuId"`
	Quantity int64 `json:"quantity"`
}

type OrderItem struct {
	Id            int64  `gorm:"primaryKey;autoIncrement;comment:订单项自增ID"`
	OrderId       int64  `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	SPUId         int64  `gorm:"column:spu_id;not null;index:idx_spu_id;comment:SPU自增ID"`
	SKUId         int64  `gorm:"column:sku_id;not null;comment:SKU自增ID"`
	SKUSN         string `gorm:"column:sku_sn;type:varchar(255);not null;comment:SKU序列号"`
	CategoryId    int64  `gorm:"not null;default:0;comment:类目ID"`
	BrandId       int64  `gorm:"not null;default:0;comment:品牌ID"`
	Name          string `gorm:"type:varchar(255);not null;comment:商品名称快照"`
	Image         string `gorm:"type:varchar(512);not null;default:'';comment:商品图片快照"`
	Color         string `gorm:"type:varchar(64);not null;default:'';comment:颜色"`
	Size          string `gorm:"type:varchar(64);not null;default:'';comment:尺码"`
	Attrs         string `gorm:"type:varchar(1024);not null;default:'';comment:其他规格"`
	Quantity      int64  `gorm:"not null;comment:购买数量"`
	OriginalPrice int64  `gorm:"not null;comment:商品原始单价;单位为分, 999表示9.99元"`
	DiscountPrice int64  `gorm:"not null;comment:商品售价;单位为分"`
	Ctime         int64
	Utime         int64
}
