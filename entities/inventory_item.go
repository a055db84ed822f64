package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index:idx_inventory_owner_expiration,priority:1" json:"user_id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Category        string    `gorm:"size:20;not null" json:"category"`
	Quantity        float64   `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Unit            string    `gorm:"size:20;not null" json:"unit"`
	ExpirationDate  time.Time `gorm:"type:date;not null;index:idx_inventory_owner_expiration,priority:2" json:"expiration_date"`
	Emoji           string    `gorm:"size:10" json:"emoji"`
	BackgroundColor string    `gorm:"size:20" json:"background_color"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
