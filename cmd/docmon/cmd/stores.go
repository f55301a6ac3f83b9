// Copyright © 2018 One Concern

package cmd

import (
	"path/filepath"

	context2 "github.com/oneconcern/docmon/pkg/context"
	"github.com/oneconcern/docmon/pkg/core"
	"github.com/oneconcern/docmon/pkg/snapshot"
	"github.com/oneconcern/docmon/pkg/snapshot/bdgr"
	"github.com/oneconcern/docmon/pkg/status"
	"github.com/oneconcern/docmon/pkg/storage"
	"github.com/oneconcern/docmon/pkg/storage/localfs"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func noClose() error { return nil }

// workspacePaths resolves the workspace root and metadata directory
func workspacePaths(cfg *CLIConfig) (root, meta string, err error) {
	root, err = filepath.Abs(cfg.Root)
	if err != nil {
		return "", "", err
	}
	meta = cfg.Meta
	if !filepath.IsAbs(meta) {
		meta = filepath.Join(root, meta)
	}
	return root, meta, nil
}

// openSnapshots opens the configured snapshot store, decorated with a read cache
func openSnapshots(cfg *CLIConfig, fs afero.Fs, meta string) (snapshot.Store, func() error, error) {
	var (
		store  snapshot.Store
		closer = noClose
	)

	switch cfg.Backend {
	case backendLocalFS, "":
		blobs, err := localfs.NewAtomic(afero.NewBasePathFs(fs, filepath.Join(meta, "snapshots")))
		if err != nil {
			return nil, nil, err
		}
		store = snapshot.NewBlobStore(storage.Instrument(logger, blobs))
	case backendBadger:
		db, err := bdgr.Open(bdgr.Path(filepath.Join(meta, "badger")))
		if err != nil {
			return nil, nil, err
		}
		store, closer = db, db.Close
	default:
		return nil, nil, status.ErrValidation.WrapMessage("unsupported snapshot backend %q: use %s or %s", cfg.Backend, backendLocalFS, backendBadger)
	}

	return snapshot.WithCache(store, cfg.Cache), closer, nil
}

// openStores opens the stores of the workspace: documents live under the root,
// metadata and snapshots under the metadata directory.
func openStores(cfg *CLIConfig) (context2.Stores, func() error, error) {
	root, meta, err := workspacePaths(cfg)
	if err != nil {
		return nil, nil, err
	}
	fs := afero.NewOsFs()

	metadata, err := localfs.NewAtomic(afero.NewBasePathFs(fs, meta))
	if err != nil {
		return nil, nil, err
	}
	snapshots, closer, err := openSnapshots(cfg, fs, meta)
	if err != nil {
		return nil, nil, err
	}

	stores := context2.NewStores(
		storage.Instrument(logger, localfs.New(afero.NewBasePathFs(fs, root))),
		storage.Instrument(logger, metadata),
		snapshots,
	)
	logger.Debug("opened stores",
		zap.String("documents", root),
		zap.String("metadata", meta),
		zap.String("snapshots", snapshots.String()),
	)
	return stores, closer, nil
}

// openManager opens the workspace stores and builds a document manager.
//
// The returned function releases the stores.
func openManager() (*core.Manager, func(), error) {
	stores, closer, err := openStores(config)
	if err != nil {
		return nil, nil, err
	}
	m, err := core.NewManager(stores,
		core.Logger(logger),
		core.DefaultAuthor(config.Author),
		core.WithMetrics(config.Metrics),
	)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}
	return m, func() {
		if e := closer(); e != nil {
			logger.Warn("closing snapshot store", zap.Error(e))
		}
	}, nil
}
