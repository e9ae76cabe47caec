// Comando migrate aplica las migraciones SQL embebidas y sale.
//
//	go run ./cmd/migrate          aplica las pendientes
//	go run ./cmd/migrate -list    muestra versión y checksum de cada archivo
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/textil-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/textil-erp/pkg/config"
	"github.com/jhoicas/textil-erp/pkg/logger"
)

func main() {
	list := flag.Bool("list", false, "listar migraciones embebidas sin conectar")
	timeout := flag.Duration("timeout", 2*time.Minute, "tiempo máximo para aplicar migraciones")
	flag.Parse()

	if *list {
		migs, err := postgres.LoadMigrations()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, m := range migs {
			fmt.Printf("%s  %s  %s\n", m.Version, m.Checksum[:12], m.Filename)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Service: "migrate", Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	n, err := postgres.Migrate(ctx, pool, log.Zerolog())
	if err != nil {
		log.Error().Err(err).Msg("migraciones")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Int("applied", n).Msg("migraciones al día")
}
