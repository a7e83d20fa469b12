package tasks

import (
	"fmt"

	"github.com/vk/compilekit/internal/config"
	"github.com/vk/compilekit/internal/registry"
	"github.com/vk/compilekit/internal/task"
)

// Task type names registered by Module.
const (
	TypeParse        = "parse"
	TypePartialParse = "partial_parse"
	TypeTokenParse   = "token_parse"
	TypeCompile      = "compile"
	TypeSourceLength = "source_length"
	TypeReferences   = "references"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the stock task factories.
func (m *Module) Register(r *registry.Registry) {
	r.Register(TypeParse, func(def *config.Task, env registry.Env) (task.Task, error) {
		typ, err := registry.ParserType(def, env)
		if err != nil {
			return nil, err
		}
		return Parse(def.Name, typ), nil
	})
	r.Register(TypePartialParse, func(def *config.Task, env registry.Env) (task.Task, error) {
		typ, err := registry.ParserType(def, env)
		if err != nil {
			return nil, err
		}
		return PartialParse(def.Name, typ), nil
	})
	r.Register(TypeTokenParse, func(def *config.Task, env registry.Env) (task.Task, error) {
		if env.Types == nil {
			return nil, fmt.Errorf("task '%s': no parser types available", def.Name)
		}
		return TokenParse(def.Name, env.Types), nil
	})
	r.Register(TypeCompile, func(def *config.Task, env registry.Env) (task.Task, error) {
		typ, err := registry.ParserType(def, env)
		if err != nil {
			return nil, err
		}
		if typ.Compile == nil {
			return nil, fmt.Errorf("task '%s': parser type '%s' cannot compile", def.Name, typ.Name)
		}
		return Compile(def.Name, typ, CompileOptions{
			FromParseResult: def.FromParseResult,
			SaveParseResult: def.SaveParseResult,
			ResultType:      def.ResultType,
		}), nil
	})
	r.Register(TypeSourceLength, func(def *config.Task, _ registry.Env) (task.Task, error) {
		return SourceLength(def.Name), nil
	})
	r.Register(TypeReferences, func(def *config.Task, _ registry.Env) (task.Task, error) {
		return References(def.Name), nil
	})
}
