// Package cliutil wires config, session storage, and client construction
// for the CLI actions.
package cliutil

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yopmail-tools/go-yopmail-cli/internal/config"
	"github.com/yopmail-tools/go-yopmail-cli/internal/platform/yopmail"
	"github.com/yopmail-tools/go-yopmail-cli/internal/storage"
)

// LoadConfig loads process config and applies its log level, optionally
// forced down to debug.
func LoadConfig(debug bool) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(cfg.ParseLogLevel())
	}
	return cfg, nil
}

// BuildClient constructs a client for a mailbox and restores any fresh
// stored session so the bootstrap can be skipped. Storage failures are
// not fatal; the client just bootstraps from scratch.
func BuildClient(mailbox string, cfg *config.Config) (*yopmail.Client, *storage.Storage, error) {
	client, err := yopmail.NewClient(mailbox, cfg.ClientConfig())
	if err != nil {
		return nil, nil, err
	}

	st, err := storage.NewSessionStorage()
	if err != nil {
		logrus.WithError(err).Debug("session storage unavailable")
		return client, nil, nil
	}

	if state, err := st.LoadFreshSession(client.Mailbox); err == nil && state != nil {
		client.RestoreSession(state)
		logrus.WithField("mailbox", client.Mailbox).Debug("restored stored session")
	}

	return client, st, nil
}

// PersistSession saves the client's session state for the next
// invocation. Best effort.
func PersistSession(st *storage.Storage, client *yopmail.Client) {
	if st == nil || client.Token() == "" {
		return
	}
	if err := st.SaveSession(client.Session()); err != nil {
		logrus.WithError(err).Debug("failed to persist session")
	}
}
