// Package app wires repositories and services on top of an open store.
package app

import (
	"log/slog"

	"github.com/joseph-ayodele/catalog-cms/internal/catalog"
	"github.com/joseph-ayodele/catalog-cms/internal/export"
	repo "github.com/joseph-ayodele/catalog-cms/internal/repository"
	"github.com/joseph-ayodele/catalog-cms/internal/services/category"
	"github.com/joseph-ayodele/catalog-cms/internal/services/display"
	"github.com/joseph-ayodele/catalog-cms/internal/services/harddrive"
)

// App is the set of catalog services shared by cmsd and cmsctl.
type App struct {
	Store      *repo.Store
	Options    *catalog.Options
	Categories *category.Service
	HardDrives *harddrive.Service
	Displays   *display.Service
	Export     *export.Service

	CategoryRepo  repo.CategoryRepository
	HardDriveRepo repo.HardDriveRepository
	DisplayRepo   repo.DisplayRepository
}

func New(store *repo.Store, options *catalog.Options, logger *slog.Logger) *App {
	if options == nil {
		options = catalog.Default()
	}
	categories := repo.NewCategoryRepository(store, logger)
	hardDrives := repo.NewHardDriveRepository(store, logger)
	displays := repo.NewDisplayRepository(store, logger)

	return &App{
		Store:         store,
		Options:       options,
		Categories:    category.NewService(categories, logger),
		HardDrives:    harddrive.NewService(hardDrives, options.HardDrives, logger),
		Displays:      display.NewService(displays, options.Displays, logger),
		Export:        export.NewService(categories, hardDrives, displays, logger),
		CategoryRepo:  categories,
		HardDriveRepo: hardDrives,
		DisplayRepo:   displays,
	}
}
