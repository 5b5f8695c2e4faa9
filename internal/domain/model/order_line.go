package model

import "time"

// OrderLine は注文1件に含まれる料理1種とその数量。
// (OrderID, DishID) で一意。数量が0になる操作では行ごと削除する。
type OrderLine struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64     `gorm:"not null;index;uniqueIndex:idx_order_lines_order_dish" json:"order_id"`
	DishID    int64     `gorm:"not null;index;uniqueIndex:idx_order_lines_order_dish" json:"dish_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
