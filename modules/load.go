package modules

import (
	"github.com/pixelport/pixelport/modules/catalog"
	"github.com/pixelport/pixelport/modules/tracking"
	"github.com/pixelport/pixelport/pkg/application"
)

var BuiltInModules = []application.Module{
	catalog.NewModule(),
	tracking.NewModule(),
}

// Load registers every built-in module on the application.
func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range append(BuiltInModules, externalModules...) {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
