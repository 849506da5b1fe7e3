// internal/demodata/refund.go
package demodata

import (
	"fmt"
	"math/rand"
	"time"

	"foyer-finance/internal/domain"
)

// synthesizeRefunds produit des remboursements partiels pour une partie des
// dépenses générées. Chaque dépense est rapprochée de son motif par son
// libellé ; seuls les motifs dotés d'une probabilité de remboursement en
// produisent. Le remboursement vient d'un autre membre du foyer quand il y
// en a un, et il est abandonné en silence s'il tombe après la fin de la
// fenêtre.
func synthesizeRefunds(rng *rand.Rand, patterns []Pattern, txs []GeneratedTransaction, users []domain.User, orgID string, end time.Time) []GeneratedRefund {
	var refunds []GeneratedRefund
	for _, tx := range txs {
		if tx.IsIncome {
			continue
		}
		pattern := matchPattern(patterns, tx.Description)
		if pattern == nil || pattern.RefundProbability == 0 {
			continue
		}
		if rng.Float64() > pattern.RefundProbability {
			continue
		}

		// Remboursement partiel, entre 30% et 80% du montant
		ratio := rng.Float64()*0.5 + 0.3
		amount := round2(tx.Amount * ratio)

		refundDate := tx.TransactionDate.AddDate(0, 0, rng.Intn(7)+3)
		if refundDate.After(end) {
			continue
		}

		refunds = append(refunds, GeneratedRefund{
			TransactionRef: tx.ClientRef,
			Amount:         amount,
			RefundDate:     refundDate,
			Description:    fmt.Sprintf("Remboursement: %s", tx.Description),
			UserID:         refundingUser(rng, users, tx.UserID),
			OrganizationID: orgID,
		})
	}
	return refunds
}

// matchPattern retrouve le motif d'origine d'une transaction par son
// libellé, en comparant d'abord la description puis le nom.
func matchPattern(patterns []Pattern, description string) *Pattern {
	for i := range patterns {
		if patterns[i].Description == description || patterns[i].Name == description {
			return &patterns[i]
		}
	}
	return nil
}

// refundingUser choisit un autre membre du foyer que le payeur ; à défaut
// le payeur se rembourse lui-même.
func refundingUser(rng *rand.Rand, users []domain.User, payerID string) string {
	var others []domain.User
	for _, u := range users {
		if u.ID != payerID {
			others = append(others, u)
		}
	}
	if len(others) == 0 {
		return payerID
	}
	return others[rng.Intn(len(others))].ID
}
