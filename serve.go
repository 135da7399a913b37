// serve.go
//
// The `serve` command: read-only HTTP API over stored tournament runs.

package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/httpserver"
	"github.com/sonder-art/rtorneo-wordle-p26/internal/store"
)

var serveFlags struct {
	port   string
	dbPath string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored tournament results over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.NewSQLiteStore(serveFlags.dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		srv := httpserver.New(st)
		log.Info().Str("port", serveFlags.port).Str("db", serveFlags.dbPath).
			Msg("starting results server")
		return srv.Start(":" + serveFlags.port)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.port, "port", getEnv("PORT", "5175"), "listen port")
	serveCmd.Flags().StringVar(&serveFlags.dbPath, "db", getEnv("RESULTS_DB", "data/results.db"), "SQLite results database")
	rootCmd.AddCommand(serveCmd)
}
