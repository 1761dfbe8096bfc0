package main

import (
	"context"
	"database/sql"
	"strings"

	"dock-allocation-service/internal/adapters/repositories"
	"dock-allocation-service/internal/config"
	"dock-allocation-service/internal/platform/db"
	"dock-allocation-service/internal/platform/obs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	log := obs.NewLogger("dbtool", config.Get("LOG_LEVEL", "info"), "")

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", config.Get("DOCK_DATABASE__URL", ""))
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	ctx := log.WithContext(context.Background())
	importPath := config.Get("IMPORT_PATH", "")
	if err := initAndImport(ctx, conn, importPath); err != nil {
		log.Fatal().Err(err).Msg("dbtool failed")
	}
}

func initAndImport(ctx context.Context, conn *sql.DB, importPath string) error {
	log := zerolog.Ctx(ctx)

	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}
	log.Info().Msg("schema ready")

	if importPath == "" {
		return nil
	}

	log.Info().Str("path", importPath).Msg("importing reports")
	n, err := repositories.ImportReportsJSON(ctx, conn, importPath)
	if err != nil {
		return err
	}
	log.Info().Int("reports", n).Msg("import complete")

	return nil
}
