package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusReady   OrderStatus = "ready"
	OrderStatusPaid    OrderStatus = "paid"
)

// ValidOrderStatus は列挙に含まれるかだけを見る。遷移の制限は無い。
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusReady, OrderStatusPaid:
		return true
	}
	return false
}

// Order はテーブル単位の注文。
// TotalPrice はキャッシュ済みの導出値で、明細を変更するたびにゼロから再計算して保存する。
type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	TableNumber int             `gorm:"not null;index" json:"table_number"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
