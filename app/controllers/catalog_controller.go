package controllers

import (
	"github.com/shashiranjanraj/qrmenu/app/services"
	"github.com/shashiranjanraj/qrmenu/pkg/ctx"
)

// CatalogController serves the shared category and theme catalogs.
type CatalogController struct {
	menus *services.MenuService
}

func NewCatalogController(menus *services.MenuService) *CatalogController {
	return &CatalogController{menus: menus}
}

func (cc *CatalogController) Categories(c *ctx.Context) {
	cats, err := cc.menus.ListCategories(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(cats)
}

func (cc *CatalogController) Themes(c *ctx.Context) {
	themes, err := cc.menus.ListThemes(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(themes)
}

func (cc *CatalogController) Theme(c *ctx.Context) {
	theme, ok, err := cc.menus.GetThemeByID(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if !ok {
		fail(c, services.ErrNotFound)
		return
	}
	c.Success(theme)
}
