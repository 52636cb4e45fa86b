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
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestOrderGORMDAO_Create(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(t *testing.T) (*sql.DB, sqlmock.Sqlmock)
		wantID  int64
		wantErr error
	}{
		{
			name: "创建成功",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `orders`").WillReturnResult(sqlmock.NewResult(7, 1))
				mock.ExpectExec("INSERT INTO `order_items`").WillReturnResult(sqlmock.NewResult(1, 2))
				mock.ExpectCommit()
				return db, mock
			},
			wantID: 7,
		},
		{
			name: "序列号重复",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `orders`").WillReturnError(&mysql.MySQLError{Number: 1062})
				mock.ExpectRollback()
				return db, mock
			},
			wantErr: ErrDuplicateSN,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sqlDB, mock := tc.mock(t)
			d := NewOrderGORMDAO(newGormDB(t, sqlDB))
			id, err := d.Create(context.Background(), Order{
				SN:         "SO001",
				BuyerId:    1,
				TotalPrice: 300,
				FinalPrice: 300,
				Version:    1,
			}, []OrderItem{
				{SKUId: 1, SPUId: 1, SKUSN: "sku-1", Quantity: 1, DiscountPrice: 100},
				{SKUId: 2, SPUId: 1, SKUSN: "sku-2", Quantity: 2, DiscountPrice: 100},
			})
			assert.Equal(t, tc.wantErr, err)
			if err == nil {
				assert.Equal(t, tc.wantID, id)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOrderGORMDAO_Update(t *testing.T) {
	testCases := []struct {
		name    string
		items   []OrderItem
		mock    func(t *testing.T) (*sql.DB, sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "只更新订单",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE `orders` SET .* WHERE id = \\? AND version = \\?").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
				return db, mock
			},
		},
		{
			name:  "同时替换订单项",
			items: []OrderItem{{SKUId: 1, SPUId: 1, SKUSN: "sku-1", Quantity: 5, DiscountPrice: 100}},
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE `orders` SET").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("DELETE FROM `order_items`").WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec("INSERT INTO `order_items`").WillReturnResult(sqlmock.NewResult(3, 1))
				mock.ExpectCommit()
				return db, mock
			},
		},
		{
			name:  "版本冲突_不修改订单项",
			items: []OrderItem{{SKUId: 1, SPUId: 1, SKUSN: "sku-1", Quantity: 5, DiscountPrice: 100}},
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE `orders` SET").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
				return db, mock
			},
			wantErr: ErrVersionConflict,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sqlDB, mock := tc.mock(t)
			d := NewOrderGORMDAO(newGormDB(t, sqlDB))
			err := d.Update(context.Background(), Order{
				Id:      7,
				SN:      "SO001",
				Status:  7,
				Version: 3,
			}, tc.items)
			assert.Equal(t, tc.wantErr, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOrderGORMDAO_MarkStockReleased(t *testing.T) {
	testCases := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{
			name:     "标记成功",
			affected: 1,
		},
		{
			name:     "已经不是释放中",
			affected: 0,
			wantErr:  ErrVersionConflict,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sqlDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			mock.ExpectExec("UPDATE `orders` SET .* WHERE id = \\? AND stock_status = \\?").
				WithArgs(3, sqlmock.AnyArg(), 7, 2).
				WillReturnResult(sqlmock.NewResult(0, tc.affected))
			d := NewOrderGORMDAO(newGormDB(t, sqlDB))
			err = d.MarkStockReleased(context.Background(), 7, 2, 3)
			assert.Equal(t, tc.wantErr, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOrderGORMDAO_ListUnsettledBefore(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	rows := sqlmock.NewRows([]string{"id", "sn", "stock_status", "adjustments", "adjust_status"}).
		AddRow(8, "SO008", 1, `[{"bizKey":"order:SO008:adjust:1","releases":[{"spuId":2,"skuId":21,"quantity":1}],"revertCode":"SAVE10"}]`, 1)
	mock.ExpectQuery("SELECT \\* FROM `orders` WHERE .*stock_status = \\? OR discount_status = \\? OR adjust_status = \\?.*utime < \\? AND id > \\?").
		WillReturnRows(rows)
	d := NewOrderGORMDAO(newGormDB(t, sqlDB))
	res, err := d.ListUnsettledBefore(context.Background(), 2, 2, 1, 1000, 0, 10)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, []Adjustment{
		{
			BizKey:     "order:SO008:adjust:1",
			Releases:   []AdjustRelease{{SPUId: 2, SKUId: 21, Quantity: 1}},
			RevertCode: "SAVE10",
		},
	}, res[0].Adjustments.Val)
	assert.Equal(t, uint8(1), res[0].AdjustStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func newGormDB(t *testing.T, sqlDB *sql.DB) *gorm.DB {
	db, err := gorm.Open(gormMysql.New(gormMysql.Config{
		Conn: sqlDB,
		// 如果为 false ，则GORM在初始化时，会先调用 show version
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		// 如果为 false ，则即使是单一语句，也会开启事务
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)
	return db
}
