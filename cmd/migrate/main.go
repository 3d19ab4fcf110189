// migrate aplica las migraciones embebidas (goose) sobre la base configurada.
//
// Uso: go run ./cmd/migrate [-cmd up|down|status|version|redo|reset] [-to versión]
// La conexión sale de DATABASE_URL o de DB_HOST, DB_PORT, DB_USER, etc.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

func main() {
	cmd := flag.String("cmd", "up", "comando goose: up|down|status|version|redo|reset")
	to := flag.String("to", "", "versión destino para up-to / down-to")
	flag.Parse()

	log := logger.New(logger.Config{Env: os.Getenv("APP_ENV"), Level: "info"})

	command := *cmd
	var args []string
	if *to != "" {
		switch command {
		case "up", "down":
			command += "-to"
			args = append(args, *to)
		default:
			fmt.Fprintf(os.Stderr, "-to solo aplica a up/down\n")
			os.Exit(2)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.OpenMigrationDB(config.LoadDB().ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir base de datos")
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, command, args...); err != nil {
		log.Error().Err(err).Str("cmd", command).Msg("migración fallida")
		os.Exit(1)
	}
	log.Info().Str("cmd", command).Msg("migración completada")
}
