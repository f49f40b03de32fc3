package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/qrmenu/app/models"
	"github.com/shashiranjanraj/qrmenu/app/services"
	"github.com/shashiranjanraj/qrmenu/pkg/ctx"
)

// MenuController is the owner-facing menu API.
type MenuController struct {
	menus *services.MenuService
	auth  *services.AuthService
}

func NewMenuController(menus *services.MenuService, auth *services.AuthService) *MenuController {
	return &MenuController{menus: menus, auth: auth}
}

// Index lists the caller's menus.
func (m *MenuController) Index(c *ctx.Context) {
	sess, ok := sessionOf(c, m.auth)
	if !ok {
		return
	}
	user, ok := sess.CurrentUser()
	if !ok {
		fail(c, services.ErrAuthenticationRequired)
		return
	}

	menus, err := m.menus.GetUserMenus(c.Context(), user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(menus)
}

func (m *MenuController) Store(c *ctx.Context) {
	sess, ok := sessionOf(c, m.auth)
	if !ok {
		return
	}

	var in models.MenuInput
	if !c.BindJSON(&in) {
		return
	}

	menu, err := m.menus.CreateMenu(c.Context(), sess, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.W.Header().Set("Location", "/api/menus/"+menu.ID)
	c.Created(menu)
}

func (m *MenuController) Show(c *ctx.Context) {
	menu, ok, err := m.menus.GetMenuByID(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if !ok {
		fail(c, services.ErrNotFound)
		return
	}
	c.Success(menu)
}

func (m *MenuController) Update(c *ctx.Context) {
	sess, ok := sessionOf(c, m.auth)
	if !ok {
		return
	}

	var patch models.MenuPatch
	if !c.BindJSON(&patch) {
		return
	}

	menu, err := m.menus.UpdateMenu(c.Context(), sess, c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(menu)
}

func (m *MenuController) Destroy(c *ctx.Context) {
	sess, ok := sessionOf(c, m.auth)
	if !ok {
		return
	}

	if err := m.menus.DeleteMenu(c.Context(), sess, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.NoContent()
}

// PublicShow serves the customer-facing page data: the menu and its theme.
// Theme is null when the menu's theme has been removed from the catalog.
func (m *MenuController) PublicShow(c *ctx.Context) {
	menu, ok, err := m.menus.GetPublicMenu(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if !ok {
		fail(c, services.ErrNotFound)
		return
	}

	out := models.PublicMenu{Menu: menu}
	theme, found, err := m.menus.GetThemeByID(c.Context(), menu.ThemeID)
	if err != nil {
		fail(c, err)
		return
	}
	if found {
		out.Theme = &theme
	}
	c.Success(out)
}

// PublicQR redirects to the menu's QR image.
func (m *MenuController) PublicQR(c *ctx.Context) {
	menu, ok, err := m.menus.GetPublicMenu(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if !ok {
		fail(c, services.ErrNotFound)
		return
	}
	c.Redirect(http.StatusFound, menu.QRCodeURL)
}
