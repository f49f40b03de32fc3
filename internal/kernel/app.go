package kernel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/qrmenu/app/repositories"
	"github.com/shashiranjanraj/qrmenu/app/routes"
	"github.com/shashiranjanraj/qrmenu/app/services"
	"github.com/shashiranjanraj/qrmenu/config"
	"github.com/shashiranjanraj/qrmenu/pkg/database"
	"github.com/shashiranjanraj/qrmenu/pkg/kvstore"
	"github.com/shashiranjanraj/qrmenu/pkg/logger"
	"github.com/shashiranjanraj/qrmenu/pkg/migration"
	"github.com/shashiranjanraj/qrmenu/pkg/qrcode"
	"github.com/shashiranjanraj/qrmenu/pkg/router"
	"github.com/shashiranjanraj/qrmenu/pkg/storage"
)

// App holds the open handles and services of the menu API.
type App struct {
	DB    *gorm.DB
	Store kvstore.Store
	Disk  storage.Disk
	Auth  *services.AuthService
	Menus *services.MenuService

	// LocalRoot is set when uploads live on the local disk and should be
	// served under /storage/uploads.
	LocalRoot string
}

type BootOptions struct {
	// Migrate runs pending migrations before the services start.
	Migrate bool
}

// Boot opens the database, the file disk and the menu store from config
// and wires the services on top.
func Boot(ctx context.Context, opts BootOptions) (*App, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	policy, err := qrcode.ParsePolicy(config.QRRegistryPolicy())
	if err != nil {
		return nil, err
	}

	db, err := database.Connect()
	if err != nil {
		return nil, err
	}
	closeDB := func() error { return database.Close(db) }

	if opts.Migrate {
		if _, err := migration.NewDefault(db).Run(); err != nil {
			return nil, abort(err, closeDB)
		}
	}

	disk, err := storage.Open(ctx, config.StorageDefault())
	if err != nil {
		return nil, abort(err, closeDB)
	}

	store, err := kvstore.Open(ctx, kvstore.Options{
		Driver:        config.KVDriver(),
		Prefix:        config.KVPrefix(),
		RedisAddr:     config.RedisAddr(),
		RedisPassword: config.RedisPassword(),
	}, kvstore.Deps{DB: db, Disk: disk})
	if err != nil {
		return nil, abort(err, closeDB)
	}

	app := &App{
		DB:    db,
		Store: store,
		Disk:  disk,
		Auth:  services.NewAuthService(repositories.NewUserRepository(db)),
		Menus: services.NewMenuService(store, services.MenuOptions{
			AppURL:   config.AppURL(),
			Renderer: qrcode.NewRenderer(config.QRRendererURL(), config.QRSize()),
			Notifier: notifier(),
			Policy:   policy,
		}),
	}
	if disk.Name() == "local" {
		app.LocalRoot = config.StorageLocalRoot()
	}

	logger.Info("booted",
		"db", config.DatabaseDriver(),
		"kv", store.Driver(),
		"disk", disk.Name(),
		"registry_policy", string(policy),
	)
	return app, nil
}

// abort releases what Boot opened so far and reports err together with
// any failure to close.
func abort(err error, closers ...func() error) error {
	errs := []error{err}
	for _, c := range closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// notifier returns the registry client. QR_REGISTRY_URL=off disables it.
func notifier() qrcode.Notifier {
	endpoint := config.QRRegistryURL()
	switch strings.ToLower(endpoint) {
	case "off", "none", "disabled":
		return qrcode.NopNotifier{}
	}
	return &qrcode.HTTPNotifier{
		Endpoint: endpoint,
		Timeout:  config.QRRegistryTimeout(),
		Attempts: config.QRRegistryAttempts(),
	}
}

// Router builds the menu API.
func (a *App) Router() *router.Router {
	r := NewRouter()
	routes.RegisterAPI(r, routes.APIDeps{Auth: a.Auth, Menus: a.Menus, Disk: a.Disk})

	if a.LocalRoot != "" {
		dir := filepath.Join(a.LocalRoot, "uploads")
		r.Handle(http.MethodGet, "/storage/uploads/*", "storage.uploads",
			http.StripPrefix("/storage/uploads", http.FileServer(http.Dir(dir))))
	}
	return r
}

func (a *App) Close() error {
	return errors.Join(a.Store.Close(), database.Close(a.DB))
}
