package mocks

import (
	"github.com/ooni/torbridge/internal/cargv"
	"github.com/ooni/torbridge/internal/libtor"
)

// TorAPI is a mockable libtor.API.
type TorAPI struct {
	MockConfigurationNew  func() libtor.Configuration
	MockSetCommandLine    func(config libtor.Configuration, argv *cargv.Buffer) int
	MockRunMain           func(config libtor.Configuration) int
	MockConfigurationFree func(config libtor.Configuration)
}

var _ libtor.API = &TorAPI{}

// ConfigurationNew calls MockConfigurationNew.
func (api *TorAPI) ConfigurationNew() libtor.Configuration {
	return api.MockConfigurationNew()
}

// SetCommandLine calls MockSetCommandLine.
func (api *TorAPI) SetCommandLine(config libtor.Configuration, argv *cargv.Buffer) int {
	return api.MockSetCommandLine(config, argv)
}

// RunMain calls MockRunMain.
func (api *TorAPI) RunMain(config libtor.Configuration) int {
	return api.MockRunMain(config)
}

// ConfigurationFree calls MockConfigurationFree.
func (api *TorAPI) ConfigurationFree(config libtor.Configuration) {
	api.MockConfigurationFree(config)
}
