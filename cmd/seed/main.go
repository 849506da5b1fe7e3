// cmd/seed/main.go
package main

// Génère l'historique de démonstration pour un utilisateur depuis la ligne
// de commande, sans passer par l'API. Avec -dry-run, les lots sont générés
// et comptés mais rien n'est écrit en base.

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"foyer-finance/internal/config"
	"foyer-finance/internal/demodata"
	"foyer-finance/internal/domain"
	"foyer-finance/internal/storage/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// dryStore laisse passer les lectures et absorbe les écritures.
type dryStore struct {
	*postgres.Storage
	txCount     int
	refundCount int
	nextID      int
}

func (d *dryStore) InsertTransactionBatch(_ context.Context, batch []domain.Transaction) ([]string, error) {
	d.txCount += len(batch)
	ids := make([]string, len(batch))
	for i := range ids {
		d.nextID++
		ids[i] = fmt.Sprintf("dry-%d", d.nextID) // jamais persisté
	}
	return ids, nil
}

func (d *dryStore) InsertRefundBatch(_ context.Context, batch []domain.Refund) error {
	d.refundCount += len(batch)
	return nil
}

func main() {
	userID := flag.String("user", "", "identifiant de l'utilisateur (uuid)")
	seed := flag.Int64("seed", 0, "graine aléatoire, 0 = horloge")
	dry := flag.Bool("dry-run", false, "générer sans écrire en base")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if *userID == "" {
		slog.Error("-user est obligatoire")
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg := config.MustLoad()

	pool, err := pgxpool.New(context.Background(), cfg.DBConn)
	if err != nil {
		slog.Error("Connexion à la base impossible", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	pg := postgres.NewStorage(pool)

	var opts []demodata.Option
	if *seed != 0 {
		opts = append(opts, demodata.WithRand(rand.New(rand.NewSource(*seed))))
	}

	var store demodata.Store = pg
	var dryCounter *dryStore
	if *dry {
		dryCounter = &dryStore{Storage: pg}
		store = dryCounter
	}

	gen := demodata.New(store, logger, opts...)
	if err := gen.Run(context.Background(), *userID); err != nil {
		slog.Error("La génération a échoué", "error", err, "user_id", *userID)
		os.Exit(1)
	}

	if *dry {
		slog.Info("🧪 Répétition à blanc terminée",
			"transactions", dryCounter.txCount,
			"remboursements", dryCounter.refundCount,
		)
	}
}
