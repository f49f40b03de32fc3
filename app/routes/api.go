package routes

import (
	"github.com/shashiranjanraj/qrmenu/app/controllers"
	"github.com/shashiranjanraj/qrmenu/app/services"
	"github.com/shashiranjanraj/qrmenu/pkg/ctx"
	"github.com/shashiranjanraj/qrmenu/pkg/middleware"
	"github.com/shashiranjanraj/qrmenu/pkg/router"
	"github.com/shashiranjanraj/qrmenu/pkg/storage"
)

// APIDeps are the services the public API is built from.
type APIDeps struct {
	Auth  *services.AuthService
	Menus *services.MenuService
	Disk  storage.Disk
}

// RegisterAPI mounts the menu builder and public menu endpoints.
func RegisterAPI(r *router.Router, d APIDeps) {
	authC := controllers.NewAuthController(d.Auth)
	catalogC := controllers.NewCatalogController(d.Menus)
	menuC := controllers.NewMenuController(d.Menus, d.Auth)
	uploadC := controllers.NewUploadController(d.Disk, d.Auth)

	api := r.Group("/api")

	api.Post("/auth/register", "auth.register", ctx.Wrap(authC.Register))
	api.Post("/auth/login", "auth.login", ctx.Wrap(authC.Login))

	api.Get("/categories", "categories.index", ctx.Wrap(catalogC.Categories))
	api.Get("/themes", "themes.index", ctx.Wrap(catalogC.Themes))
	api.Get("/themes/{id}", "themes.show", ctx.Wrap(catalogC.Theme))

	public := api.Group("/public")
	public.Get("/menus/{id}", "public.menus.show", ctx.Wrap(menuC.PublicShow))
	public.Get("/menus/{id}/qr", "public.menus.qr", ctx.Wrap(menuC.PublicQR))

	protected := api.Group("", middleware.RequireAuth)
	protected.Get("/profile", "profile.show", ctx.Wrap(authC.Profile))
	protected.Put("/profile", "profile.update", ctx.Wrap(authC.UpdateProfile))

	protected.Get("/menus", "menus.index", ctx.Wrap(menuC.Index))
	protected.Post("/menus", "menus.store", ctx.Wrap(menuC.Store))
	protected.Get("/menus/{id}", "menus.show", ctx.Wrap(menuC.Show))
	protected.Patch("/menus/{id}", "menus.update", ctx.Wrap(menuC.Update))
	protected.Delete("/menus/{id}", "menus.destroy", ctx.Wrap(menuC.Destroy))

	protected.Post("/uploads", "uploads.store", ctx.Wrap(uploadC.Store))
}
