package app

import (
	"github.com/vk/compilekit/internal/registry"
	"github.com/vk/compilekit/internal/tasks"
	"github.com/vk/compilekit/modules/env_vars"
	"github.com/vk/compilekit/modules/print"
)

// coreModules is the definitive list of all task modules that are compiled
// into the compilekit binary.
var coreModules = []registry.Module{
	&tasks.Module{},
	&env_vars.Module{},
	&print.Module{},
}
