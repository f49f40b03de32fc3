package seeders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/qrmenu/app/models"
	"github.com/shashiranjanraj/qrmenu/app/repositories"
	"github.com/shashiranjanraj/qrmenu/app/services"
	"github.com/shashiranjanraj/qrmenu/pkg/database"
	"github.com/shashiranjanraj/qrmenu/pkg/kvstore"
	"github.com/shashiranjanraj/qrmenu/pkg/qrcode"
)

func TestRunWithDemoIsIdempotent(t *testing.T) {
	db, err := database.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	require.NoError(t, db.AutoMigrate(&models.User{}))

	store := kvstore.NewMemory()
	d := Deps{
		Auth: services.NewAuthService(repositories.NewUserRepository(db)),
		Menus: services.NewMenuService(store, services.MenuOptions{
			AppURL:   "http://localhost:8080",
			Renderer: qrcode.NewRenderer("https://qr.example.com/", "200x200"),
		}),
	}
	ctx := context.Background()

	require.NoError(t, Run(ctx, d, true, "password123"))
	require.NoError(t, Run(ctx, d, true, "password123"))

	_, present, err := store.Get(ctx, services.KeyThemes)
	require.NoError(t, err)
	assert.True(t, present)

	user, _, err := d.Auth.Login(ctx, services.LoginInput{Email: DemoEmail, Password: "password123"})
	require.NoError(t, err)

	menus, err := d.Menus.GetUserMenus(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.Len(t, menus[0].Categories, 4)
}
