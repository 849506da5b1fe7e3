// internal/accounting/grid_test.go
package accounting

import (
	"testing"
	"time"

	"foyer-finance/internal/domain"
)

func row(amount, refund float64, date string, catID, catName, subID, subName string, income bool) domain.NetTransaction {
	d, _ := time.Parse("2006-01-02", date)
	return domain.NetTransaction{
		Amount:          amount,
		RefundTotal:     refund,
		AccountingDate:  d,
		CategoryID:      catID,
		CategoryName:    catName,
		SubcategoryID:   subID,
		SubcategoryName: subName,
		IsIncome:        income,
	}
}

func TestBuildGrid(t *testing.T) {
	rows := []domain.NetTransaction{
		row(100, 30, "2024-01-10", "c1", "Logement", "s1", "Loyer", false),
		row(50, 0, "2024-01-20", "c1", "Logement", "s1", "Loyer", false),
		row(80, 0, "2024-03-05", "c1", "Logement", "s2", "Électricité", false),
		row(40, 0, "2024-02-14", "c2", "Loisirs", "", "", false),
		// Ignorées : revenu et autre année
		row(2500, 0, "2024-01-25", "c3", "Revenus", "", "", true),
		row(60, 0, "2023-12-31", "c1", "Logement", "s1", "Loyer", false),
	}

	grid := BuildGrid(2024, rows)

	if grid.Year != 2024 {
		t.Errorf("Year = %d", grid.Year)
	}
	if grid.Total != 240 {
		t.Errorf("Total = %.2f, attendu 240.00", grid.Total)
	}
	if len(grid.Categories) != 2 {
		t.Fatalf("nombre de catégories = %d, attendu 2", len(grid.Categories))
	}

	logement := grid.Categories[0]
	if logement.Name != "Logement" {
		t.Fatalf("tri des catégories: première = %q", logement.Name)
	}
	if logement.Total != 200 {
		t.Errorf("total Logement = %.2f, attendu 200.00", logement.Total)
	}
	if logement.Monthly["01"] != 120 {
		t.Errorf("Logement janvier = %.2f, attendu 120.00", logement.Monthly["01"])
	}
	if logement.Monthly["03"] != 80 {
		t.Errorf("Logement mars = %.2f, attendu 80.00", logement.Monthly["03"])
	}
	if len(logement.Monthly) != 12 {
		t.Errorf("tous les mois doivent être présents, %d trouvés", len(logement.Monthly))
	}
	for _, m := range []string{"02", "04", "12"} {
		if logement.Monthly[m] != 0 {
			t.Errorf("mois vide %s = %.2f, attendu 0", m, logement.Monthly[m])
		}
	}

	if len(logement.Subcategories) != 2 {
		t.Fatalf("sous-catégories Logement = %d, attendu 2", len(logement.Subcategories))
	}
	var loyer *SubcategoryRow
	for i := range logement.Subcategories {
		if logement.Subcategories[i].Name == "Loyer" {
			loyer = &logement.Subcategories[i]
		}
	}
	if loyer == nil {
		t.Fatal("sous-catégorie Loyer absente")
	}
	if loyer.Total != 120 {
		t.Errorf("total Loyer = %.2f, attendu 120.00", loyer.Total)
	}

	loisirs := grid.Categories[1]
	if len(loisirs.Subcategories) != 1 || loisirs.Subcategories[0].Name != "Non catégorisé" {
		t.Errorf("ligne sans sous-catégorie non repliée sur %q", "Non catégorisé")
	}
	if loisirs.Subcategories[0].ID != "uncategorized" {
		t.Errorf("identifiant de repli = %q", loisirs.Subcategories[0].ID)
	}
}

func TestBuildGrid_CentExactSums(t *testing.T) {
	// 0.1 + 0.2 en flottant ne fait pas 0.3 : la somme doit être exacte
	rows := []domain.NetTransaction{
		row(0.1, 0, "2024-05-01", "c1", "Divers", "", "", false),
		row(0.2, 0, "2024-05-02", "c1", "Divers", "", "", false),
	}

	grid := BuildGrid(2024, rows)

	if grid.Total != 0.3 {
		t.Errorf("Total = %v, attendu 0.3", grid.Total)
	}
	if grid.Categories[0].Monthly["05"] != 0.3 {
		t.Errorf("mai = %v, attendu 0.3", grid.Categories[0].Monthly["05"])
	}
}

func TestBuildGrid_Empty(t *testing.T) {
	grid := BuildGrid(2024, nil)

	if grid.Total != 0 {
		t.Errorf("Total = %.2f, attendu 0", grid.Total)
	}
	if len(grid.Categories) != 0 {
		t.Errorf("catégories = %d, attendu 0", len(grid.Categories))
	}
}

func TestBuildGrid_NetOfRefunds(t *testing.T) {
	rows := []domain.NetTransaction{
		row(100, 100, "2024-07-01", "c1", "Santé", "s1", "Consultation", false),
		row(25.50, 20.25, "2024-07-15", "c1", "Santé", "s1", "Consultation", false),
	}

	grid := BuildGrid(2024, rows)

	if grid.Total != 5.25 {
		t.Errorf("Total = %v, attendu 5.25", grid.Total)
	}
}
