// internal/demodata/generator_test.go
package demodata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"foyer-finance/internal/domain"
)

// fakeStore enregistre ce que le générateur insère et attribue des
// identifiants séquentiels, dans l'ordre des lignes reçues.
type fakeStore struct {
	user       *domain.User
	users      []domain.User
	categories []domain.Category
	subs       []domain.Subcategory

	txs              []domain.Transaction
	refunds          []domain.Refund
	txBatchSizes     []int
	refundBatchSizes []int
	nextID           int
}

func (f *fakeStore) UserByID(_ context.Context, id string) (*domain.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeStore) UsersByOrganization(_ context.Context, _ string) ([]domain.User, error) {
	return f.users, nil
}

func (f *fakeStore) Categories(_ context.Context) ([]domain.Category, error) {
	return f.categories, nil
}

func (f *fakeStore) Subcategories(_ context.Context) ([]domain.Subcategory, error) {
	return f.subs, nil
}

func (f *fakeStore) InsertTransactionBatch(_ context.Context, batch []domain.Transaction) ([]string, error) {
	f.txBatchSizes = append(f.txBatchSizes, len(batch))
	ids := make([]string, len(batch))
	for i, tx := range batch {
		f.nextID++
		tx.ID = fmt.Sprintf("tx-%d", f.nextID)
		f.txs = append(f.txs, tx)
		ids[i] = tx.ID
	}
	return ids, nil
}

func (f *fakeStore) InsertRefundBatch(_ context.Context, batch []domain.Refund) error {
	f.refundBatchSizes = append(f.refundBatchSizes, len(batch))
	f.refunds = append(f.refunds, batch...)
	return nil
}

func newFakeStore() *fakeStore {
	names := []string{
		"Revenus", "Logement", "Alimentation", "Transport", "Santé",
		"Loisirs", "Shopping", "Voyages", "Frais bancaires", "Autres",
		"Habitat", "Services", "Personnel",
	}
	var categories []domain.Category
	for i, n := range names {
		categories = append(categories, domain.Category{ID: fmt.Sprintf("c%d", i+1), Name: n, Type: "expense"})
	}
	return &fakeStore{
		user:       &domain.User{ID: "u1", Name: "Alice", OrganizationID: "org1"},
		users:      []domain.User{{ID: "u1", Name: "Alice"}, {ID: "u2", Name: "Bob"}},
		categories: categories,
		subs: []domain.Subcategory{
			{ID: "s1", Name: "Salaire", CategoryID: "c1"},
			{ID: "s2", Name: "Avantages", CategoryID: "c1"},
			{ID: "s3", Name: "Loyer", CategoryID: "c2"},
			{ID: "s4", Name: "Loyer", CategoryID: "c11"},
			{ID: "s5", Name: "Supermarché", CategoryID: "c3"},
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedNow() time.Time {
	return time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
}

func newTestGenerator(store Store, seed int64) *Generator {
	return New(store, testLogger(),
		WithRand(rand.New(rand.NewSource(seed))),
		WithNow(fixedNow),
	)
}

func TestGenerator_Run(t *testing.T) {
	store := newFakeStore()
	gen := newTestGenerator(store, 1)

	if err := gen.Run(context.Background(), "u1"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(store.txs) == 0 {
		t.Fatal("aucune transaction insérée")
	}
	if len(store.refunds) == 0 {
		t.Fatal("aucun remboursement inséré")
	}

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := fixedNow()
	byID := make(map[string]domain.Transaction, len(store.txs))
	for _, tx := range store.txs {
		byID[tx.ID] = tx
		if tx.TransactionDate.Before(start) || tx.TransactionDate.After(end) {
			t.Errorf("transaction hors fenêtre: %q le %s", tx.Description, tx.TransactionDate.Format("2006-01-02"))
		}
		if tx.Amount <= 0 {
			t.Errorf("montant non positif: %.2f (%q)", tx.Amount, tx.Description)
		}
		if round2(tx.Amount) != tx.Amount {
			t.Errorf("montant non arrondi au centime: %v (%q)", tx.Amount, tx.Description)
		}
		if tx.OrganizationID != "org1" {
			t.Errorf("organisation = %q, attendu org1", tx.OrganizationID)
		}
	}

	for _, r := range store.refunds {
		parent, ok := byID[r.TransactionID]
		if !ok {
			t.Fatalf("remboursement lié à un identifiant inconnu: %q", r.TransactionID)
		}
		if parent.IsIncome {
			t.Errorf("remboursement lié à un revenu: %q", parent.Description)
		}
		if r.Amount >= parent.Amount {
			t.Errorf("remboursement %.2f >= dépense %.2f (%q)", r.Amount, parent.Amount, parent.Description)
		}
		if r.RefundDate.Before(parent.TransactionDate) {
			t.Errorf("remboursement antérieur à la dépense (%q)", parent.Description)
		}
		if r.RefundDate.After(end) {
			t.Errorf("remboursement après la fin de fenêtre (%q)", parent.Description)
		}
		if r.Description != "Remboursement: "+parent.Description {
			t.Errorf("libellé du remboursement = %q", r.Description)
		}
	}
}

func TestGenerator_BatchesAreBounded(t *testing.T) {
	store := newFakeStore()
	gen := newTestGenerator(store, 2)

	if err := gen.Run(context.Background(), "u1"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, n := range store.txBatchSizes {
		if n == 0 || n > batchSize {
			t.Errorf("lot de transactions de taille %d", n)
		}
	}
	for _, n := range store.refundBatchSizes {
		if n == 0 || n > batchSize {
			t.Errorf("lot de remboursements de taille %d", n)
		}
	}
	// Seul le dernier lot peut être partiel
	for i, n := range store.txBatchSizes[:len(store.txBatchSizes)-1] {
		if n != batchSize {
			t.Errorf("lot intermédiaire %d de taille %d, attendu %d", i, n, batchSize)
		}
	}
}

func TestGenerator_GuaranteedMonthlyFloor(t *testing.T) {
	store := newFakeStore()
	gen := newTestGenerator(store, 3)

	if err := gen.Run(context.Background(), "u1"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	salaries := map[time.Month]int{}
	rents := map[time.Month]int{}
	for _, tx := range store.txs {
		switch tx.Description {
		case "Salaire mensuel":
			if tx.TransactionDate.Day() != 25 {
				t.Errorf("salaire le %d du mois, attendu le 25", tx.TransactionDate.Day())
			}
			if tx.UserID != "u1" {
				t.Errorf("salaire principal attribué à %q, attendu u1", tx.UserID)
			}
			if !tx.IsIncome {
				t.Error("salaire marqué comme dépense")
			}
			if tx.Amount < 2500 || tx.Amount > 2800 {
				t.Errorf("salaire de %.2f hors fourchette", tx.Amount)
			}
			salaries[tx.TransactionDate.Month()]++
		case "Loyer mensuel":
			if tx.Amount != 1200 {
				t.Errorf("loyer de %.2f, attendu 1200", tx.Amount)
			}
			rents[tx.TransactionDate.Month()]++
		}
	}

	for m := time.January; m <= time.June; m++ {
		if salaries[m] == 0 {
			t.Errorf("aucun salaire en %s", m)
		}
		if rents[m] == 0 {
			t.Errorf("aucun loyer en %s", m)
		}
	}
}

func TestGenerator_RerunDuplicates(t *testing.T) {
	store := newFakeStore()
	gen := newTestGenerator(store, 4)

	if err := gen.Run(context.Background(), "u1"); err != nil {
		t.Fatalf("premier Run: %v", err)
	}
	first := len(store.txs)

	if err := gen.Run(context.Background(), "u1"); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	// Pas de clé de déduplication : chaque exécution ajoute un jeu complet
	if len(store.txs) <= first {
		t.Errorf("seconde exécution sans nouvelles lignes: %d puis %d", first, len(store.txs))
	}
}

func TestGenerator_SetupErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*fakeStore)
		userID  string
		wantErr error
	}{
		{
			name:    "utilisateur inconnu",
			mutate:  func(f *fakeStore) {},
			userID:  "u404",
			wantErr: ErrUserNotFound,
		},
		{
			name: "sans organisation",
			mutate: func(f *fakeStore) {
				f.user.OrganizationID = ""
			},
			userID:  "u1",
			wantErr: ErrNoOrganization,
		},
		{
			name: "organisation vide",
			mutate: func(f *fakeStore) {
				f.users = nil
			},
			userID:  "u1",
			wantErr: ErrNoUsers,
		},
		{
			name: "sans catégories",
			mutate: func(f *fakeStore) {
				f.categories = nil
			},
			userID:  "u1",
			wantErr: ErrNoCategories,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			tt.mutate(store)
			gen := newTestGenerator(store, 5)

			err := gen.Run(context.Background(), tt.userID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Run = %v, attendu %v", err, tt.wantErr)
			}
			if len(store.txs) != 0 {
				t.Error("des transactions ont été insérées malgré l'échec de préparation")
			}
		})
	}
}
