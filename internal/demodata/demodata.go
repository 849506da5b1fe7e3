// internal/demodata/demodata.go

// Package demodata génère un historique financier plausible pour un foyer :
// transactions récurrentes pilotées par un catalogue de motifs, remboursements
// partiels, puis insertion par lots dans le stockage.
package demodata

import (
	"context"
	"time"

	"foyer-finance/internal/domain"

	"github.com/google/uuid"
)

// Frequency gouverne l'expansion d'un motif en dates concrètes.
type Frequency string

const (
	Daily     Frequency = "daily"
	Workdays  Frequency = "workdays"
	Weekly    Frequency = "weekly"
	Biweekly  Frequency = "biweekly"
	Monthly   Frequency = "monthly"
	Bimonthly Frequency = "bimonthly"
	Yearly    Frequency = "yearly"
	Random    Frequency = "random"
)

type AmountRange struct {
	Min float64
	Max float64
}

// SeasonalMultiplier : facteur d'échelle par saison, 0 = non renseigné (1.0).
type SeasonalMultiplier struct {
	Winter float64
	Spring float64
	Summer float64
	Autumn float64
}

// Pattern décrit un type de mouvement financier récurrent. Les champs
// optionnels gardent la sémantique du catalogue : la valeur zéro vaut
// "non renseigné" et déclenche le défaut propre à chaque fréquence.
type Pattern struct {
	Name        string
	Description string
	Category    string
	Subcategory string
	Frequency   Frequency
	Amount      AmountRange
	ExpenseType domain.ExpenseType // vide = couple

	DayOfMonth int  // monthly/bimonthly ; 0 = 1er du mois
	DayOfWeek  *int // weekly, 0=dimanche..6=samedi ; nil = vendredi
	Variance   int  // jours de jitter autour de la date théorique

	Probability  float64 // workdays ; 0 = 0.7
	OddsPerWeek  float64
	OddsPerMonth float64
	OddsPerYear  float64

	Seasonal          *SeasonalMultiplier
	RefundProbability float64
}

// GeneratedTransaction est une transaction en mémoire, pas encore insérée.
// ClientRef est un identifiant de corrélation attribué côté client : le
// stockage n'attribue les vrais identifiants qu'à l'insertion, et les
// remboursements référencent leur parent via ce ClientRef.
type GeneratedTransaction struct {
	ClientRef       uuid.UUID
	Amount          float64
	Description     string
	TransactionDate time.Time
	AccountingDate  time.Time
	CategoryID      string
	SubcategoryID   string // vide = aucune
	UserID          string
	ExpenseType     domain.ExpenseType
	IsIncome        bool
	OrganizationID  string
}

type GeneratedRefund struct {
	TransactionRef uuid.UUID
	Amount         float64
	RefundDate     time.Time
	Description    string
	UserID         string
	OrganizationID string
}

// Setup est la configuration d'une exécution, construite une fois au début
// puis traitée en lecture seule.
type Setup struct {
	Start          time.Time
	End            time.Time
	Users          []domain.User
	OrganizationID string
	Categories     *CategoryIndex
}

// Store est la façade du stockage consommée par le générateur ; injectée
// pour permettre les doublures de test.
type Store interface {
	UserByID(ctx context.Context, id string) (*domain.User, error)
	UsersByOrganization(ctx context.Context, orgID string) ([]domain.User, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Subcategories(ctx context.Context) ([]domain.Subcategory, error)
	InsertTransactionBatch(ctx context.Context, batch []domain.Transaction) ([]string, error)
	InsertRefundBatch(ctx context.Context, batch []domain.Refund) error
}
