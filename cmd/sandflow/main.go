//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"strings"

	"sandflow/internal/app"
	"sandflow/internal/core"
	_ "sandflow/internal/sims/sand"

	"github.com/hajimehoshi/ebiten/v2"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	var overrides kvList
	flag.Var(&overrides, "set", "simulation override in key=value form (repeatable)")
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q", cfg.Sim)
	}

	simCfg := make(map[string]string, len(overrides))
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		simCfg[key] = value
	}

	sim := factory(simCfg)
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg)
	size := sim.Size()

	ebiten.SetWindowTitle("sandflow - " + sim.Name())
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.Panel, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
