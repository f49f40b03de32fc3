package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/qrmenu/app/services"
	"github.com/shashiranjanraj/qrmenu/pkg/ctx"
	"github.com/shashiranjanraj/qrmenu/pkg/logger"
)

// QRCodeController is the QR registry API served by `qrmenu registry`.
type QRCodeController struct {
	qrcodes *services.QRCodeService
}

func NewQRCodeController(qrcodes *services.QRCodeService) *QRCodeController {
	return &QRCodeController{qrcodes: qrcodes}
}

// Store handles POST /api/qr-codes.
func (q *QRCodeController) Store(c *ctx.Context) {
	var in services.QRCodeInput
	if !c.BindJSON(&in) {
		return
	}

	if _, err := q.qrcodes.Save(c.Context(), in); err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			c.ValidationError(ve.Fields)
			return
		}
		logger.WithCtx(c.Context()).Error("saving qr code", "menu_id", in.MenuID, "error", err)
		c.Error(http.StatusInternalServerError, "Failed to save QR code")
		return
	}
	c.Message(http.StatusCreated, "QR code saved successfully")
}

// Show handles GET /api/qr-codes/{menuId}.
func (q *QRCodeController) Show(c *ctx.Context) {
	qr, err := q.qrcodes.Find(c.Context(), c.Param("menuId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(qr)
}
