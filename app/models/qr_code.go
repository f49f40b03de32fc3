package models

import "time"

// QRCode is a registry record associating a menu with its QR image URL.
type QRCode struct {
	MenuID    string    `bson:"menuId" json:"menuId" validate:"required"`
	QRCodeURL string    `bson:"qrCodeUrl" json:"qrCodeUrl" validate:"required,url"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
