// Package targets maps target names to emitters.
package targets

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/createdom/internal/emit"
	"github.com/cmmoran/createdom/internal/emit/cpp"
	"github.com/cmmoran/createdom/internal/emit/golang"
	"github.com/cmmoran/createdom/internal/emit/jsonschema"
	"github.com/cmmoran/createdom/internal/emit/protobuf"
	"github.com/cmmoran/createdom/internal/emit/python"
	"github.com/cmmoran/createdom/internal/emit/typescript"
)

// Config carries the settings individual emitters need.
type Config struct {
	GoPackage string
	OutDir    string
}

var registry = map[string]func(Config) emit.Emitter{
	cpp.Target:        func(Config) emit.Emitter { return cpp.New() },
	typescript.Target: func(Config) emit.Emitter { return typescript.New() },
	python.Target:     func(Config) emit.Emitter { return python.New() },
	protobuf.Target:   func(Config) emit.Emitter { return protobuf.New() },
	jsonschema.Target: func(Config) emit.Emitter { return jsonschema.New() },
	golang.Target: func(cfg Config) emit.Emitter {
		return golang.New(golang.Config{Package: cfg.GoPackage, OutDir: cfg.OutDir})
	},
}

// ErrUnknownTarget is returned for names with no registered emitter.
var ErrUnknownTarget = errors.New("unknown target")

// New returns the emitter registered under name.
func New(name string, cfg Config) (emit.Emitter, error) {
	mk, ok := registry[name]
	if !ok {
		return nil, errors.WithHintf(errors.Wrapf(ErrUnknownTarget, "%q", name), "known targets: %v", Names())
	}
	return mk(cfg), nil
}

// Names lists the registered targets in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
