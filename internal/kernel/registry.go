package kernel

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/qrmenu/app/repositories"
	"github.com/shashiranjanraj/qrmenu/app/routes"
	"github.com/shashiranjanraj/qrmenu/app/services"
	"github.com/shashiranjanraj/qrmenu/config"
	"github.com/shashiranjanraj/qrmenu/pkg/database"
	"github.com/shashiranjanraj/qrmenu/pkg/logger"
	"github.com/shashiranjanraj/qrmenu/pkg/router"
)

// Registry is the QR registry process.
type Registry struct {
	QRCodes *services.QRCodeService
	client  *mongo.Client
}

// BootRegistry connects to MongoDB, or keeps records in memory when
// REGISTRY_DRIVER=memory.
func BootRegistry(ctx context.Context) (*Registry, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	if config.RegistryDriver() == "memory" {
		logger.Warn("registry records are kept in memory and lost on restart")
		return &Registry{QRCodes: services.NewQRCodeService(repositories.NewMemoryQRCodeRepository())}, nil
	}

	client, db, err := database.ConnectMongo(ctx)
	if err != nil {
		return nil, err
	}
	if err := repositories.EnsureQRCodeIndexes(ctx, db); err != nil {
		client.Disconnect(ctx) //nolint:errcheck
		return nil, err
	}

	logger.Info("registry booted", "mongo_database", db.Name())
	return &Registry{
		QRCodes: services.NewQRCodeService(repositories.NewMongoQRCodeRepository(db)),
		client:  client,
	}, nil
}

func (g *Registry) Router() *router.Router {
	r := NewRouter()
	routes.RegisterRegistry(r, g.QRCodes)
	return r
}

func (g *Registry) Close(ctx context.Context) error {
	if g.client == nil {
		return nil
	}
	return g.client.Disconnect(ctx)
}
