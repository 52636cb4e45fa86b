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
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestProductGORMDAO_Reserve(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(t *testing.T) (*sql.DB, sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "预占成功",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `stock_logs`").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("UPDATE `skus` SET").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("UPDATE `spus` SET").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
				return db, mock
			},
		},
		{
			name: "流水重复_不再扣减",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `stock_logs`").WillReturnError(&mysql.MySQLError{Number: 1062})
				mock.ExpectRollback()
				return db, mock
			},
			wantErr: ErrDuplicateStockLog,
		},
		{
			name: "库存不足",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `stock_logs`").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("UPDATE `skus` SET").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT count").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				mock.ExpectRollback()
				return db, mock
			},
			wantErr: ErrInsufficientStock,
		},
		{
			name: "SKU不存在",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `stock_logs`").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("UPDATE `skus` SET").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT count").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectRollback()
				return db, mock
			},
			wantErr: ErrSKUNotFound,
		},
		{
			name: "更新销量失败_整体回滚",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `stock_logs`").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("UPDATE `skus` SET").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("UPDATE `spus` SET").WillReturnError(errors.New("mock db error"))
				mock.ExpectRollback()
				return db, mock
			},
			wantErr: errors.New("mock db error"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sqlDB, mock := tc.mock(t)
			d := NewProductGORMDAO(newGormDB(t, sqlDB))
			err := d.Reserve(context.Background(), StockLog{
				BizKey:   "order:SO001:reserve",
				SKUID:    1,
				SPUID:    2,
				Type:     1,
				Quantity: 3,
			})
			assert.Equal(t, tc.wantErr, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductGORMDAO_Release(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(t *testing.T) (*sql.DB, sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "释放成功",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `stock_logs`").WillReturnResult(sqlmock.NewResult(2, 1))
				mock.ExpectExec("UPDATE `skus` SET").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("UPDATE `spus` SET").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
				return db, mock
			},
		},
		{
			name: "重复释放",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `stock_logs`").WillReturnError(&mysql.MySQLError{Number: 1062})
				mock.ExpectRollback()
				return db, mock
			},
			wantErr: ErrDuplicateStockLog,
		},
		{
			name: "SKU不存在",
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `stock_logs`").WillReturnResult(sqlmock.NewResult(2, 1))
				mock.ExpectExec("UPDATE `skus` SET").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
				return db, mock
			},
			wantErr: ErrSKUNotFound,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sqlDB, mock := tc.mock(t)
			d := NewProductGORMDAO(newGormDB(t, sqlDB))
			err := d.Release(context.Background(), StockLog{
				BizKey:   "order:SO001:release",
				SKUID:    1,
				SPUID:    2,
				Type:     2,
				Quantity: 3,
			})
			assert.Equal(t, tc.wantErr, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductGORMDAO_Adjust(t *testing.T) {
	testCases := []struct {
		name     string
		quantity int64
		mock     func(t *testing.T) (*sql.DB, sqlmock.Sqlmock)
		wantErr  error
	}{
		{
			name:     "补货",
			quantity: 10,
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `stock_logs`").WillReturnResult(sqlmock.NewResult(3, 1))
				mock.ExpectExec("UPDATE `skus` SET").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
				return db, mock
			},
		},
		{
			name:     "扣减后为负数",
			quantity: -10,
			mock: func(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `stock_logs`").WillReturnResult(sqlmock.NewResult(3, 1))
				mock.ExpectExec("UPDATE `skus` SET .* WHERE id = \\? AND stock >= \\?").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT count").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				mock.ExpectRollback()
				return db, mock
			},
			wantErr: ErrInsufficientStock,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sqlDB, mock := tc.mock(t)
			d := NewProductGORMDAO(newGormDB(t, sqlDB))
			err := d.Adjust(context.Background(), StockLog{
				BizKey:   "sku:1:adjust:123",
				SKUID:    1,
				SPUID:    2,
				Type:     3,
				Quantity: tc.quantity,
			})
			assert.Equal(t, tc.wantErr, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func newGormDB(t *testing.T, sqlDB *sql.DB) *gorm.DB {
	db, err := gorm.Open(gormMysql.New(gormMysql.Config{
		Conn: sqlDB,
		// 如果为 false ，则GORM在初始化时，会先调用 show version
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		// 如果为 true ，则不允许 Ping数据库
		DisableAutomaticPing: true,
		// 如果为 false ，则即使是单一语句，也会开启事务
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db
}
