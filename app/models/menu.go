package models

import "time"

type MenuCategory struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
}

type Theme struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	FontFamily     string `json:"fontFamily"`
	Preview        string `json:"preview"`
}

type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description" validate:"max=2000"`
	Price       float64  `json:"price" validate:"gte=0"`
	Category    string   `json:"category" validate:"required"`
	Image       string   `json:"image,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Menu is one business's menu. Categories is a copy of the catalog
// entries in use when the menu was last written.
type Menu struct {
	ID           string         `json:"id"`
	UserID       string         `json:"userId"`
	BusinessName string         `json:"businessName"`
	Logo         string         `json:"logo,omitempty"`
	ThemeID      string         `json:"themeId"`
	QRCodeURL    string         `json:"qrCodeUrl"`
	MenuURL      string         `json:"menuUrl"`
	Categories   []MenuCategory `json:"categories"`
	Items        []MenuItem     `json:"items"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// MenuInput is the payload for creating a menu.
type MenuInput struct {
	BusinessName string         `json:"businessName" validate:"required,max=255"`
	Logo         string         `json:"logo"`
	ThemeID      string         `json:"themeId" validate:"required"`
	Categories   []MenuCategory `json:"categories" validate:"dive"`
	Items        []MenuItem     `json:"items" validate:"required,min=1,dive"`
}

// MenuPatch carries the fields an owner may change. Nil means unchanged.
type MenuPatch struct {
	BusinessName *string         `json:"businessName" validate:"omitempty,min=1,max=255"`
	Logo         *string         `json:"logo"`
	ThemeID      *string         `json:"themeId" validate:"omitempty,min=1"`
	Categories   *[]MenuCategory `json:"categories" validate:"omitempty,dive"`
	Items        *[]MenuItem     `json:"items" validate:"omitempty,min=1,dive"`
}

// PublicMenu is what the customer-facing page reads: the menu plus its
// resolved theme.
type PublicMenu struct {
	Menu  Menu   `json:"menu"`
	Theme *Theme `json:"theme"`
}
