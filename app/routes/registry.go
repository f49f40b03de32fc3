package routes

import (
	"github.com/shashiranjanraj/qrmenu/app/controllers"
	"github.com/shashiranjanraj/qrmenu/app/services"
	"github.com/shashiranjanraj/qrmenu/pkg/ctx"
	"github.com/shashiranjanraj/qrmenu/pkg/router"
)

// RegisterRegistry mounts the QR registry endpoints.
func RegisterRegistry(r *router.Router, qrcodes *services.QRCodeService) {
	c := controllers.NewQRCodeController(qrcodes)

	api := r.Group("/api")
	api.Post("/qr-codes", "qrcodes.store", ctx.Wrap(c.Store))
	api.Get("/qr-codes/{menuId}", "qrcodes.show", ctx.Wrap(c.Show))
}
