package market

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusDiscovered = "Discovered"
	StatusCompleted  = "Completed"
)

// Transaction is a black-market listing bridging a sponsor's inventory and a
// dictator's. BuyerID stays nil until the sale completes.
type Transaction struct {
	gorm.Model
	Item            string    `gorm:"not null" json:"item"`
	Amount          int       `gorm:"not null" json:"amount"`
	Status          string    `gorm:"default:Discovered;index" json:"status"`
	SellerID        uint      `gorm:"not null;index" json:"seller_id"`
	BuyerID         *uint     `json:"buyer_id"`
	TransactionDate time.Time `gorm:"autoCreateTime" json:"transaction_date"`
}
