// Package seeders fills a fresh deployment with its catalogs and, on
// request, a demo account:
//
//	qrmenu seed          // categories and themes
//	qrmenu seed --demo   // plus demo@qrmenu.local and a sample menu
package seeders

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/qrmenu/app/models"
	"github.com/shashiranjanraj/qrmenu/app/services"
	"github.com/shashiranjanraj/qrmenu/pkg/logger"
)

// Deps are the services seeders write through.
type Deps struct {
	Auth  *services.AuthService
	Menus *services.MenuService
}

type SeederFunc func(ctx context.Context, d Deps) error

type entry struct {
	name string
	fn   SeederFunc
}

// DemoEmail is the account SeedDemo creates.
const DemoEmail = "demo@qrmenu.local"

// Run executes the catalog seeder, then the demo seeder when demo is set.
// It stops at the first failure.
func Run(ctx context.Context, d Deps, demo bool, demoPassword string) error {
	list := []entry{{"catalog", SeedCatalog}}
	if demo {
		list = append(list, entry{"demo", func(ctx context.Context, d Deps) error {
			return SeedDemo(ctx, d, demoPassword)
		}})
	}

	for _, e := range list {
		logger.Info("seeding", "seeder", e.name)
		if err := e.fn(ctx, d); err != nil {
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
	}
	return nil
}

// SeedCatalog writes the default categories and themes if the store has
// none yet.
func SeedCatalog(ctx context.Context, d Deps) error {
	if _, err := d.Menus.ListCategories(ctx); err != nil {
		return err
	}
	_, err := d.Menus.ListThemes(ctx)
	return err
}

// SeedDemo registers the demo account with one sample menu. Running it
// twice is a no-op.
func SeedDemo(ctx context.Context, d Deps, password string) error {
	user, _, err := d.Auth.Register(ctx, services.RegisterInput{
		Email:        DemoEmail,
		Password:     password,
		BusinessName: "Cafe Italiano",
	})
	if errors.Is(err, services.ErrEmailTaken) {
		logger.Info("demo account already present", "email", DemoEmail)
		return nil
	}
	if err != nil {
		return err
	}

	_, err = d.Menus.CreateMenu(ctx, services.NewSession(user), models.MenuInput{
		BusinessName: "Cafe Italiano",
		ThemeID:      "1",
		Items: []models.MenuItem{
			{Name: "Bruschetta", Description: "Grilled bread, tomato, basil", Price: 6.5, Category: "1"},
			{Name: "Pizza Margherita", Description: "San Marzano tomato, fior di latte", Price: 9.99, Category: "2", Tags: []string{"vegetarian"}},
			{Name: "Tiramisu", Price: 5.5, Category: "3"},
			{Name: "Espresso", Price: 2.2, Category: "4"},
		},
	})
	return err
}
