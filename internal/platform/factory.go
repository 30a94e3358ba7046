package platform

import (
	"log/slog"

	"github.com/aretw0/koconv/pkg/convert"
	"github.com/aretw0/koconv/pkg/core"
)

// Options translates settings into converter options.
func (s Settings) Options() ([]convert.Option, error) {
	policy, err := core.ParsePolicy(s.Policy.Default)
	if err != nil {
		return nil, err
	}
	mode, err := core.ParseURLMode(s.URLMode)
	if err != nil {
		return nil, err
	}

	opts := []convert.Option{
		convert.WithPolicy(policy),
		convert.WithURLMode(mode),
		convert.WithContexts(core.Contexts{
			Object:         s.Context.Object,
			Implementation: s.Context.Implementation,
		}),
		convert.WithSpecNames(core.SpecNames{
			Service:    s.Specs.Service,
			Deployment: s.Specs.Deployment,
		}),
	}

	for name, value := range s.Policy.Branches {
		branch, err := core.ParseBranch(name)
		if err != nil {
			return nil, err
		}
		p, err := core.ParsePolicy(value)
		if err != nil {
			return nil, err
		}
		opts = append(opts, convert.WithBranchPolicy(branch, p))
	}

	return opts, nil
}

// New wires a Converter for one version folder from settings.
func New(sourceDir, target string, s Settings, logger *slog.Logger) (*convert.Converter, error) {
	opts, err := s.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, convert.WithLogger(logger))
	return convert.New(sourceDir, target, opts...)
}
