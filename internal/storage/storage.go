// internal/storage/storage.go
package storage

import (
	"context"

	"foyer-finance/internal/domain"
)

// DirectoryStorage couvre les lectures d'annuaire : membres du foyer,
// catégories et sous-catégories.
type DirectoryStorage interface {
	UserByID(ctx context.Context, id string) (*domain.User, error)
	UsersByOrganization(ctx context.Context, orgID string) ([]domain.User, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Subcategories(ctx context.Context) ([]domain.Subcategory, error)
}

type TransactionStorage interface {
	CreateTransaction(ctx context.Context, tx domain.Transaction) (string, error)
	UpdateTransaction(ctx context.Context, tx domain.Transaction) error
	// DeleteTransaction supprime la transaction et, en cascade, ses remboursements.
	DeleteTransaction(ctx context.Context, orgID, id string) error
	TransactionsByMonth(ctx context.Context, orgID string, month string) ([]domain.NetTransaction, error)
	// InsertTransactionBatch insère un lot et renvoie les identifiants
	// attribués, dans l'ordre du lot.
	InsertTransactionBatch(ctx context.Context, batch []domain.Transaction) ([]string, error)
}

type RefundStorage interface {
	InsertRefundBatch(ctx context.Context, batch []domain.Refund) error
	RefundsByTransaction(ctx context.Context, transactionID string) ([]domain.Refund, error)
}

type AccountingStorage interface {
	// AccountingRows renvoie les lignes nettes (montant moins remboursements)
	// d'une organisation pour une année comptable.
	AccountingRows(ctx context.Context, orgID string, year int) ([]domain.NetTransaction, error)
	AccountingYears(ctx context.Context, orgID string) ([]int, error)
}

type EventStorage interface {
	CreateEvent(ctx context.Context, ev domain.Event) (string, error)
	UpdateEvent(ctx context.Context, ev domain.Event) error
	DeleteEvent(ctx context.Context, orgID, id string) error
	EventsByOrganization(ctx context.Context, orgID string) ([]domain.Event, error)
	AddParticipant(ctx context.Context, eventID, userID string) error
	RemoveParticipant(ctx context.Context, eventID, userID string) error
	// WatchEvents écoute les changements de la table events et signale
	// chaque modification sur le canal renvoyé, jusqu'à annulation du contexte.
	WatchEvents(ctx context.Context) (<-chan struct{}, error)
}

type PreferenceStorage interface {
	Preferences(ctx context.Context, userID string) (*domain.Preferences, error)
	SetOnboardingCompleted(ctx context.Context, userID string) error
	AddCompletedFeatureRelease(ctx context.Context, userID, version string) error
}
