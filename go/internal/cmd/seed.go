package main

import (
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newSeedMenuCommand(opts *rootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "seed-menu",
		Short: "Upsert the menu catalog from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.envFile)
			if err != nil {
				return err
			}
			setupLogging(cfg.LogLevel)
			if path == "" {
				path = cfg.CatalogPath
			}

			ctx := cmd.Context()
			pool, err := setupDatabase(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			services, err := setupServices(pool, cfg, clockwork.NewRealClock())
			if err != nil {
				return err
			}

			items, err := services.MenuApp.SeedCatalog(ctx, path)
			if err != nil {
				return err
			}
			for _, item := range items {
				log.Debug().
					Str("menu_item_id", item.ID.String()).
					Str("name", item.Name).
					Str("price", item.Price.StringFixed(2)).
					Msg("menu item seeded")
			}
			log.Info().Int("count", len(items)).Str("path", path).Msg("menu catalog seeded")
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "file", "", "catalog YAML file (defaults to CATALOG_PATH)")
	return cmd
}
