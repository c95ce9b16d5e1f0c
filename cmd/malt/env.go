package main

import (
	"context"
	"os"
	"time"

	"github.com/maltbrew/malt/internal/cellar"
	"github.com/maltbrew/malt/internal/config"
	"github.com/maltbrew/malt/internal/doctor"
	"github.com/maltbrew/malt/internal/platform"
	"github.com/maltbrew/malt/internal/toolchain"
	"github.com/maltbrew/malt/internal/volumes"
)

// hostCommandTimeout bounds a single command run on behalf of a check.
const hostCommandTimeout = 30 * time.Second

// buildEnv assembles the live provider stack the checks read through. The
// toolchain probes are warmed concurrently up front so the strictly
// sequential check run that follows reads memoized answers.
func buildEnv(ctx context.Context) (*doctor.Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	runner := toolchain.ExecRunner{}
	osVersion := toolchain.MacOSVersion(ctx, runner)

	xcode := toolchain.NewXcode(runner, osVersion)
	clt := toolchain.NewCLT(runner, osVersion)
	xquartz := toolchain.NewXQuartz(runner)
	// Probe failures memoize as absent; checks degrade to no finding.
	_ = toolchain.Preload(ctx, xcode, clt, xquartz)

	return &doctor.Env{
		Paths:      cfg,
		Xcode:      xcode,
		CLT:        clt,
		XQuartz:    xquartz,
		Host:       platform.NewFacts(osVersion, os.Getenv),
		Packages:   cellarLookup{cellar.New(cfg.Cellar, cfg.LinkedRecordsDir())},
		Volumes:    volumes.New(),
		RunCommand: hostRunCommand,
	}, nil
}

// cellarLookup adapts the cellar's concrete keg type to the lookup surface
// the checks consume.
type cellarLookup struct {
	cellar *cellar.Cellar
}

func (c cellarLookup) Lookup(name string) (doctor.Package, error) {
	keg, err := c.cellar.Lookup(name)
	if err != nil {
		return nil, err
	}
	return keg, nil
}

// hostRunCommand executes one command for checks that inspect output and
// exit status together.
func hostRunCommand(name string, args ...string) (string, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), hostCommandTimeout)
	defer cancel()
	return toolchain.ExecRunner{}.Run(ctx, name, args...)
}
