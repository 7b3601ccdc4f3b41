// migrate aplica o revierte las migraciones embebidas.
//
// Uso: go run ./cmd/migrate [up|down|version|steps N]
// Sin argumentos equivale a "up". Lee DATABASE_URL o DB_* igual que la API.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/Distribucion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Distribucion-api/pkg/config"
	"github.com/jhoicas/Distribucion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	mg, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("preparar migraciones")
	}
	defer mg.Close()

	switch cmd {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	case "steps":
		if len(os.Args) < 3 {
			log.Fatal().Msg("uso: migrate steps N")
		}
		n, convErr := strconv.Atoi(os.Args[2])
		if convErr != nil {
			log.Fatal().Err(convErr).Msg("N debe ser un entero")
		}
		err = mg.Steps(n)
	case "version":
		v, dirty, verr := mg.Version()
		if verr != nil {
			log.Fatal().Err(verr).Msg("leer versión")
		}
		fmt.Printf("versión %d (dirty=%t)\n", v, dirty)
		return
	default:
		log.Fatal().Str("cmd", cmd).Msg("comando desconocido: up, down, version, steps N")
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migración fallida")
	}
}
