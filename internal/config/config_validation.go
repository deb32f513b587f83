// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants shared by every binary. Only the log level is checked here;
// per-binary requirements live on the derived configs.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.LogLevel == "" {
		return nil
	}
	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.App.LogLevel)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.IPC.Enabled && cfg.IPC.ID == "" {
		return ErrInvalidIPCConfigs
	}

	return nil
}

func (cfg *DriverConfig) validate() error {
	if cfg.IPC.ID == "" {
		return ErrInvalidIPCConfigs
	}
	return nil
}

func (cfg *MockAPIConfig) validate() error {
	if cfg.HTTPAddress == "" || cfg.FixturesPath == "" {
		return ErrInvalidServerConfigs
	}
	return nil
}
