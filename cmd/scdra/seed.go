package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/procurea/scdra/internal/config"
	"github.com/procurea/scdra/providers/vectorstore"
)

func newSeedCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the supplier document index",
		Long: `Create (or reset) the SQLite vector store and load the supplier
qualification corpus into it. Seeding is idempotent: running it twice leaves
the store in the same state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}

			store, err := vectorstore.Open(cfg.VectorStorePath, vectorstore.HashingEmbedder{})
			if err != nil {
				return err
			}
			defer store.Close()

			docs := vectorstore.SupplierDocuments()
			if err := store.Seed(cmd.Context(), docs); err != nil {
				return err
			}

			fmt.Printf("Seeded %d supplier documents into %s\n", len(docs), cfg.VectorStorePath)
			return nil
		},
	}
}
