// internal/accounting/grid.go

// Package accounting agrège les dépenses nettes de remboursement en grille
// annuelle : catégorie, sous-catégorie, mois.
package accounting

import (
	"fmt"
	"sort"

	"foyer-finance/internal/domain"

	"github.com/shopspring/decimal"
)

// Months liste les clés de colonnes de la grille, invariantes quelle que
// soit l'année.
var Months = []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}

const (
	uncategorizedID   = "uncategorized"
	uncategorizedName = "Non catégorisé"
)

// SubcategoryRow est une ligne de sous-catégorie de la grille.
type SubcategoryRow struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Total   float64            `json:"total"`
	Monthly map[string]float64 `json:"monthly_data"`
}

// CategoryRow est une ligne de catégorie, avec ses sous-catégories.
type CategoryRow struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Total         float64            `json:"total"`
	Monthly       map[string]float64 `json:"monthly_data"`
	Subcategories []SubcategoryRow   `json:"subcategories"`
}

// Grid est la grille comptable d'une année.
type Grid struct {
	Year       int           `json:"year"`
	Total      float64       `json:"total"`
	Categories []CategoryRow `json:"categories"`
}

type bucket struct {
	total   decimal.Decimal
	monthly map[string]decimal.Decimal
}

func newBucket() *bucket {
	b := &bucket{monthly: make(map[string]decimal.Decimal, len(Months))}
	for _, m := range Months {
		b.monthly[m] = decimal.Zero
	}
	return b
}

func (b *bucket) add(month string, amount decimal.Decimal) {
	b.total = b.total.Add(amount)
	b.monthly[month] = b.monthly[month].Add(amount)
}

func (b *bucket) export() (float64, map[string]float64) {
	out := make(map[string]float64, len(Months))
	for _, m := range Months {
		out[m] = b.monthly[m].Round(2).InexactFloat64()
	}
	return b.total.Round(2).InexactFloat64(), out
}

// BuildGrid agrège les dépenses de l'année en grille. Les revenus et les
// lignes des autres années sont ignorés. Chaque montant est la dépense
// nette de ses remboursements, en valeur absolue, et les sommes sont
// exactes au centime. Tous les mois sont présents, à zéro si vides.
func BuildGrid(year int, rows []domain.NetTransaction) Grid {
	type catAgg struct {
		id, name string
		bucket   *bucket
		subs     map[string]*struct {
			id, name string
			bucket   *bucket
		}
	}
	cats := make(map[string]*catAgg)
	yearTotal := decimal.Zero

	for _, row := range rows {
		if row.IsIncome || row.AccountingDate.Year() != year {
			continue
		}
		month := fmt.Sprintf("%02d", int(row.AccountingDate.Month()))
		net := decimal.NewFromFloat(row.Amount).Sub(decimal.NewFromFloat(row.RefundTotal)).Abs()

		yearTotal = yearTotal.Add(net)

		catName := row.CategoryName
		if catName == "" {
			catName = uncategorizedName
		}
		cat, ok := cats[row.CategoryID]
		if !ok {
			cat = &catAgg{
				id:     row.CategoryID,
				name:   catName,
				bucket: newBucket(),
				subs: make(map[string]*struct {
					id, name string
					bucket   *bucket
				}),
			}
			cats[row.CategoryID] = cat
		}
		cat.bucket.add(month, net)

		subID, subName := row.SubcategoryID, row.SubcategoryName
		if subID == "" {
			subID, subName = uncategorizedID, uncategorizedName
		}
		sub, ok := cat.subs[subID]
		if !ok {
			sub = &struct {
				id, name string
				bucket   *bucket
			}{id: subID, name: subName, bucket: newBucket()}
			cat.subs[subID] = sub
		}
		sub.bucket.add(month, net)
	}

	grid := Grid{Year: year, Total: yearTotal.Round(2).InexactFloat64()}
	for _, cat := range cats {
		total, monthly := cat.bucket.export()
		catRow := CategoryRow{ID: cat.id, Name: cat.name, Total: total, Monthly: monthly}
		for _, sub := range cat.subs {
			subTotal, subMonthly := sub.bucket.export()
			catRow.Subcategories = append(catRow.Subcategories, SubcategoryRow{
				ID:      sub.id,
				Name:    sub.name,
				Total:   subTotal,
				Monthly: subMonthly,
			})
		}
		sort.Slice(catRow.Subcategories, func(i, j int) bool {
			return catRow.Subcategories[i].Name < catRow.Subcategories[j].Name
		})
		grid.Categories = append(grid.Categories, catRow)
	}
	sort.Slice(grid.Categories, func(i, j int) bool {
		return grid.Categories[i].Name < grid.Categories[j].Name
	})
	return grid
}
