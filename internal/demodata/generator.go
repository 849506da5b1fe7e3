// internal/demodata/generator.go
package demodata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"foyer-finance/internal/domain"

	"github.com/google/uuid"
)

// batchSize borne la taille des requêtes d'insertion.
const batchSize = 20

var (
	ErrUserNotFound    = errors.New("utilisateur introuvable")
	ErrNoOrganization  = errors.New("utilisateur sans organisation")
	ErrNoUsers         = errors.New("aucun utilisateur dans l'organisation")
	ErrNoCategories    = errors.New("aucune catégorie")
	ErrNoSubcategories = errors.New("sous-catégories indisponibles")
)

// Generator peuple le stockage d'un historique financier de démonstration
// pour le foyer de l'utilisateur demandé. Chaque exécution ajoute un jeu
// complet de données, sans déduplication avec les exécutions précédentes.
type Generator struct {
	store    Store
	log      *slog.Logger
	rng      *rand.Rand
	now      func() time.Time
	expenses []Pattern
	incomes  []Pattern
}

// Option configure le générateur, surtout pour rendre les tests rejouables.
type Option func(*Generator)

// WithRand remplace la source aléatoire.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// WithNow fige la borne de fin de la fenêtre de génération.
func WithNow(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithCatalog remplace les catalogues de motifs.
func WithCatalog(expenses, incomes []Pattern) Option {
	return func(g *Generator) {
		g.expenses = expenses
		g.incomes = incomes
	}
}

func New(store Store, log *slog.Logger, opts ...Option) *Generator {
	g := &Generator{
		store:    store,
		log:      log,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
		expenses: ExpensePatterns,
		incomes:  IncomePatterns,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run génère et insère l'historique complet pour le foyer de l'utilisateur.
func (g *Generator) Run(ctx context.Context, userID string) error {
	setup, err := g.loadSetup(ctx, userID)
	if err != nil {
		return fmt.Errorf("préparation de la génération: %w", err)
	}

	txs, refunds := g.generate(setup)

	g.log.Info("💾 insertion des données de démonstration",
		"transactions", len(txs),
		"remboursements", len(refunds),
		"organization_id", setup.OrganizationID,
	)

	ids, err := g.persistTransactions(ctx, txs)
	if err != nil {
		return fmt.Errorf("insertion des transactions: %w", err)
	}
	if err := g.persistRefunds(ctx, refunds, ids); err != nil {
		return fmt.Errorf("insertion des remboursements: %w", err)
	}

	g.log.Info("✅ données de démonstration générées", "user_id", userID)
	return nil
}

// loadSetup résout l'organisation de l'utilisateur et charge le référentiel.
// La fenêtre de génération va du 1er janvier 2024 à maintenant.
func (g *Generator) loadSetup(ctx context.Context, userID string) (*Setup, error) {
	user, err := g.store.UserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lecture de l'utilisateur: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.OrganizationID == "" {
		return nil, ErrNoOrganization
	}

	users, err := g.store.UsersByOrganization(ctx, user.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("lecture des membres: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}

	categories, err := g.store.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("lecture des catégories: %w", err)
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}

	subcategories, err := g.store.Subcategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSubcategories, err)
	}

	now := g.now()
	return &Setup{
		Start:          time.Date(2024, time.January, 1, 0, 0, 0, 0, now.Location()),
		End:            now,
		Users:          users,
		OrganizationID: user.OrganizationID,
		Categories:     NewCategoryIndex(categories, subcategories),
	}, nil
}

// generate déroule toutes les passes dans un ordre fixe. Les passes
// garanties tournent avant les passes catalogue, qui les recouvrent en
// partie : la redondance est voulue, elle densifie l'historique.
func (g *Generator) generate(s *Setup) ([]GeneratedTransaction, []GeneratedRefund) {
	var txs []GeneratedTransaction

	txs = g.regularIncomes(s, txs)
	txs = g.exceptionalIncomes(s, txs)
	txs = g.catalogIncomes(s, txs)
	txs = g.essentialExpenses(s, txs)
	txs = g.surpriseExpenses(s, txs)
	txs = g.catalogExpenses(s, txs)

	refunds := synthesizeRefunds(g.rng, g.expenses, txs, s.Users, s.OrganizationID, s.End)
	return txs, refunds
}

// === Passes de revenus ===

// regularIncomes garantit un salaire chaque mois : tous les revenus
// mensuels de type Salaire ou Avantages, au jour du mois du motif (25 par
// défaut), sans variance. Le salaire principal va au premier membre, le
// salaire secondaire au second s'il existe.
func (g *Generator) regularIncomes(s *Setup, txs []GeneratedTransaction) []GeneratedTransaction {
	for _, p := range g.incomes {
		if p.Frequency != Monthly || (p.Subcategory != "Salaire" && p.Subcategory != "Avantages") {
			continue
		}
		entry := s.Categories.Resolve(p.Category)
		if entry == nil {
			g.log.Warn("catégorie introuvable pour le revenu", "pattern", p.Name, "category", p.Category)
			continue
		}
		subID := entry.ResolveSub(p.Subcategory)

		userID := s.Users[0].ID
		if p.Name == "Salaire secondaire" && len(s.Users) > 1 {
			userID = s.Users[1].ID
		}

		day := p.DayOfMonth
		if day == 0 {
			day = 25
		}
		for cur := s.Start; !cur.After(s.End); cur = cur.AddDate(0, 1, 0) {
			d := time.Date(cur.Year(), cur.Month(), day, 0, 0, 0, 0, cur.Location())
			if !inWindow(d, s.Start, s.End) {
				continue
			}
			txs = append(txs, g.newTransaction(p, d, randomAmount(g.rng, p.Amount), userID, entry.Category.ID, subID, s.OrganizationID, true))
		}
	}
	return txs
}

// exceptionalIncomes : les revenus non mensuels (primes, ventes, cadeaux),
// attribués à un membre au hasard.
func (g *Generator) exceptionalIncomes(s *Setup, txs []GeneratedTransaction) []GeneratedTransaction {
	for _, p := range g.incomes {
		if p.Frequency == Monthly {
			continue
		}
		entry := s.Categories.Exact(p.Category)
		if entry == nil {
			continue
		}
		subID := entry.ExactSub(p.Subcategory)
		userID := s.Users[g.rng.Intn(len(s.Users))].ID

		for _, d := range expandDates(g.rng, p, s.Start, s.End) {
			txs = append(txs, g.newTransaction(p, d, randomAmount(g.rng, p.Amount), userID, entry.Category.ID, subID, s.OrganizationID, true))
		}
	}
	return txs
}

// catalogIncomes repasse sur tout le catalogue de revenus, attribué au
// premier membre. Recouvre en partie les passes précédentes.
func (g *Generator) catalogIncomes(s *Setup, txs []GeneratedTransaction) []GeneratedTransaction {
	for _, p := range g.incomes {
		entry := s.Categories.Exact(p.Category)
		if entry == nil {
			continue
		}
		subID := entry.ExactSub(p.Subcategory)
		userID := s.Users[0].ID

		for _, d := range expandDates(g.rng, p, s.Start, s.End) {
			amount := randomAmount(g.rng, p.Amount)
			if p.Frequency != Yearly {
				amount = applySeasonal(amount, d, p.Seasonal)
			}
			txs = append(txs, g.newTransaction(p, d, amount, userID, entry.Category.ID, subID, s.OrganizationID, true))
		}
	}
	return txs
}

// === Passes de dépenses ===

// essentialExpenses garantit les charges fixes du foyer chaque mois, avec
// une résolution de catégorie approximative pour tolérer les variantes de
// libellés du référentiel.
func (g *Generator) essentialExpenses(s *Setup, txs []GeneratedTransaction) []GeneratedTransaction {
	for _, p := range essentialExpensePatterns {
		entry := s.Categories.Resolve(p.Category)
		if entry == nil {
			g.log.Warn("catégorie introuvable pour la dépense essentielle", "category", p.Category)
			continue
		}
		subID := entry.ResolveSub(p.Subcategory)
		userID := g.userForExpense(s.Users, p.ExpenseType)

		for _, d := range monthlyDates(g.rng, p, s.Start, s.End, 1) {
			txs = append(txs, g.newTransaction(p, d, randomAmount(g.rng, p.Amount), userID, entry.Category.ID, subID, s.OrganizationID, false))
		}
	}
	return txs
}

// surpriseExpenses garantit une à deux dépenses plaisir par mois, tirées
// d'une courte liste mélangée, à une date au hasard dans le mois.
func (g *Generator) surpriseExpenses(s *Setup, txs []GeneratedTransaction) []GeneratedTransaction {
	for cur := s.Start; !cur.After(s.End); cur = cur.AddDate(0, 1, 0) {
		n := g.rng.Intn(2) + 1

		shuffled := make([]Pattern, len(surprisePatterns))
		copy(shuffled, surprisePatterns)
		g.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		for i := 0; i < n && i < len(shuffled); i++ {
			p := shuffled[i]
			entry := s.Categories.Resolve(p.Category)
			if entry == nil {
				continue
			}
			subID := entry.ResolveSub(p.Subcategory)
			userID := g.userForExpense(s.Users, p.ExpenseType)

			day := g.rng.Intn(28) + 1
			d := time.Date(cur.Year(), cur.Month(), day, 0, 0, 0, 0, cur.Location())
			if !inWindow(d, s.Start, s.End) {
				continue
			}
			txs = append(txs, g.newTransaction(p, d, randomAmount(g.rng, p.Amount), userID, entry.Category.ID, subID, s.OrganizationID, false))
		}
	}
	return txs
}

// catalogExpenses déroule tout le catalogue de dépenses. Le porteur est
// tiré à pile ou face entre les deux premiers membres. Les motifs annuels
// ne sont pas expansés dans cette passe.
func (g *Generator) catalogExpenses(s *Setup, txs []GeneratedTransaction) []GeneratedTransaction {
	for _, p := range g.expenses {
		if p.Frequency == Yearly {
			continue
		}
		entry := s.Categories.Exact(p.Category)
		if entry == nil {
			continue
		}
		subID := entry.ExactSub(p.Subcategory)

		userID := s.Users[0].ID
		if g.rng.Float64() > 0.5 && len(s.Users) > 1 {
			userID = s.Users[1].ID
		}

		for _, d := range expandDates(g.rng, p, s.Start, s.End) {
			amount := applySeasonal(randomAmount(g.rng, p.Amount), d, p.Seasonal)
			txs = append(txs, g.newTransaction(p, d, amount, userID, entry.Category.ID, subID, s.OrganizationID, false))
		}
	}
	return txs
}

// userForExpense : les dépenses de couple vont au premier membre, les
// dépenses individuelles à un membre au hasard.
func (g *Generator) userForExpense(users []domain.User, t domain.ExpenseType) string {
	if t == domain.ExpenseCouple || len(users) == 1 {
		return users[0].ID
	}
	return users[g.rng.Intn(len(users))].ID
}

func (g *Generator) newTransaction(p Pattern, date time.Time, amount float64, userID, categoryID, subID, orgID string, isIncome bool) GeneratedTransaction {
	desc := p.Description
	if desc == "" {
		desc = p.Name
	}
	expenseType := p.ExpenseType
	if expenseType == "" {
		expenseType = domain.ExpenseCouple
	}
	if isIncome {
		expenseType = domain.ExpenseIndividual
	}
	return GeneratedTransaction{
		ClientRef:       uuid.New(),
		Amount:          amount,
		Description:     desc,
		TransactionDate: date,
		AccountingDate:  date,
		CategoryID:      categoryID,
		SubcategoryID:   subID,
		UserID:          userID,
		ExpenseType:     expenseType,
		IsIncome:        isIncome,
		OrganizationID:  orgID,
	}
}

// === Persistance ===

// persistTransactions insère les transactions par lots et retourne la
// correspondance ClientRef vers identifiant réel, pour recâbler les
// remboursements.
func (g *Generator) persistTransactions(ctx context.Context, txs []GeneratedTransaction) (map[uuid.UUID]string, error) {
	ids := make(map[uuid.UUID]string, len(txs))
	for i := 0; i < len(txs); i += batchSize {
		end := i + batchSize
		if end > len(txs) {
			end = len(txs)
		}
		chunk := txs[i:end]

		batch := make([]domain.Transaction, len(chunk))
		for j, tx := range chunk {
			batch[j] = domain.Transaction{
				Amount:          tx.Amount,
				Description:     tx.Description,
				TransactionDate: tx.TransactionDate,
				AccountingDate:  tx.AccountingDate,
				CategoryID:      tx.CategoryID,
				SubcategoryID:   tx.SubcategoryID,
				UserID:          tx.UserID,
				ExpenseType:     tx.ExpenseType,
				IsIncome:        tx.IsIncome,
				OrganizationID:  tx.OrganizationID,
			}
		}

		inserted, err := g.store.InsertTransactionBatch(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("lot %d: %w", i/batchSize, err)
		}
		for j, id := range inserted {
			ids[chunk[j].ClientRef] = id
		}
	}
	return ids, nil
}

// persistRefunds recâble chaque remboursement sur l'identifiant réel de sa
// transaction parente puis insère par lots.
func (g *Generator) persistRefunds(ctx context.Context, refunds []GeneratedRefund, ids map[uuid.UUID]string) error {
	resolved := make([]domain.Refund, 0, len(refunds))
	for _, r := range refunds {
		parentID, ok := ids[r.TransactionRef]
		if !ok {
			g.log.Warn("remboursement orphelin ignoré", "description", r.Description)
			continue
		}
		resolved = append(resolved, domain.Refund{
			TransactionID:  parentID,
			Amount:         r.Amount,
			RefundDate:     r.RefundDate,
			Description:    r.Description,
			UserID:         r.UserID,
			OrganizationID: r.OrganizationID,
		})
	}

	for i := 0; i < len(resolved); i += batchSize {
		end := i + batchSize
		if end > len(resolved) {
			end = len(resolved)
		}
		if err := g.store.InsertRefundBatch(ctx, resolved[i:end]); err != nil {
			return fmt.Errorf("lot %d: %w", i/batchSize, err)
		}
	}
	return nil
}
