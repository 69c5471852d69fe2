package tracking

import (
	"github.com/redis/go-redis/v9"

	catalogpersistence "github.com/pixelport/pixelport/modules/catalog/infrastructure/persistence"
	"github.com/pixelport/pixelport/modules/tracking/domain/entities/catalogmapping"
	"github.com/pixelport/pixelport/modules/tracking/handlers"
	"github.com/pixelport/pixelport/modules/tracking/infrastructure/capi"
	"github.com/pixelport/pixelport/modules/tracking/infrastructure/persistence"
	"github.com/pixelport/pixelport/modules/tracking/presentation/controllers"
	"github.com/pixelport/pixelport/modules/tracking/services"
	"github.com/pixelport/pixelport/pkg/application"
	"github.com/pixelport/pixelport/pkg/configuration"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	var mappings catalogmapping.Repository = persistence.NewCatalogMappingRepository()
	if conf.Redis.Enabled {
		mappings = persistence.NewCachedCatalogMappingRepository(
			mappings,
			redis.NewClient(&redis.Options{Addr: conf.Redis.URL}),
			"",
			conf.Redis.TTL,
		)
	}

	auditRepo := persistence.NewAuditLogRepository()

	app.RegisterServices(
		services.NewPipelineService(
			mappings,
			services.NewOwnershipValidator(catalogpersistence.NewCatalogRepository()),
			capi.NewClient(conf.AdsAPI),
			app.EventBus(),
		),
		services.NewAuditService(auditRepo),
	)
	app.RegisterControllers(
		controllers.NewTrackController(app, "/api/track"),
		controllers.NewAuditLogsController(app, "/api/audit-logs"),
	)
	handlers.RegisterAuditHandler(app, auditRepo)
	return nil
}

func (m *Module) Name() string {
	return "tracking"
}
