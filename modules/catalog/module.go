package catalog

import (
	"github.com/pixelport/pixelport/modules/catalog/infrastructure/persistence"
	"github.com/pixelport/pixelport/modules/catalog/presentation/controllers"
	"github.com/pixelport/pixelport/modules/catalog/services"
	"github.com/pixelport/pixelport/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	catalogRepo := persistence.NewCatalogRepository()
	pixelRepo := persistence.NewPixelRepository()
	storeRepo := persistence.NewStoreRepository()

	app.RegisterServices(
		services.NewCatalogService(catalogRepo),
		services.NewPixelService(pixelRepo, catalogRepo),
		services.NewStoreService(storeRepo),
	)
	app.RegisterControllers(
		controllers.NewStoresController(app, "/api/stores"),
		controllers.NewCatalogsController(app, "/api/catalogs"),
		controllers.NewPixelsController(app, "/api/pixels"),
	)
	return nil
}

func (m *Module) Name() string {
	return "catalog"
}
