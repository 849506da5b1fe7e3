// internal/demodata/resolver_test.go
package demodata

import (
	"testing"

	"foyer-finance/internal/domain"
)

func testIndex() *CategoryIndex {
	categories := []domain.Category{
		{ID: "c1", Name: "Logement", Type: "fixed_expense"},
		{ID: "c2", Name: "Transport en commun", Type: "expense"},
		{ID: "c3", Name: "Transport", Type: "expense"},
		{ID: "c4", Name: "Revenus", Type: "income"},
	}
	subcategories := []domain.Subcategory{
		{ID: "s1", Name: "Loyer", CategoryID: "c1"},
		{ID: "s2", Name: "Assurance habitation", CategoryID: "c1"},
		{ID: "s3", Name: "Salaire", CategoryID: "c4"},
	}
	return NewCategoryIndex(categories, subcategories)
}

func TestCategoryIndex_Resolve(t *testing.T) {
	idx := testIndex()

	tests := []struct {
		name    string
		lookup  string
		wantID  string
		wantNil bool
	}{
		{name: "correspondance exacte", lookup: "Logement", wantID: "c1"},
		{name: "exacte prioritaire sur la partielle", lookup: "Transport", wantID: "c3"},
		{name: "le nom demandé contient la catégorie", lookup: "Transport en commun parisien", wantID: "c2"},
		{name: "la catégorie contient le nom demandé", lookup: "Transp", wantID: "c2"},
		{name: "aucune inclusion dans aucun sens", lookup: "Habitat", wantNil: true},
		{name: "sensible à la casse", lookup: "logement", wantNil: true},
		{name: "inconnu", lookup: "Crypto", wantNil: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := idx.Resolve(tt.lookup)
			if tt.wantNil {
				if entry != nil {
					t.Fatalf("Resolve(%q) = %q, attendu nil", tt.lookup, entry.Category.ID)
				}
				return
			}
			if entry == nil {
				t.Fatalf("Resolve(%q) = nil, attendu %q", tt.lookup, tt.wantID)
			}
			if entry.Category.ID != tt.wantID {
				t.Errorf("Resolve(%q) = %q, attendu %q", tt.lookup, entry.Category.ID, tt.wantID)
			}
		})
	}
}

func TestCategoryIndex_ResolveOrderBreaksTies(t *testing.T) {
	// "Transp" correspond partiellement à "Transport en commun" (c2) et à
	// "Transport" (c3) : la première insérée gagne.
	idx := testIndex()

	if entry := idx.Resolve("Transp"); entry == nil || entry.Category.ID != "c2" {
		t.Fatal("Resolve(Transp) devrait rendre la première catégorie insérée (c2)")
	}
}

func TestCategoryIndex_Exact(t *testing.T) {
	idx := testIndex()

	if entry := idx.Exact("Logement"); entry == nil || entry.Category.ID != "c1" {
		t.Fatal("Exact(Logement) devrait rendre c1")
	}
	if entry := idx.Exact("Habitat"); entry != nil {
		t.Fatalf("Exact(Habitat) = %q, attendu nil", entry.Category.ID)
	}
	if entry := idx.Exact("Logemen"); entry != nil {
		t.Fatal("Exact ne doit pas faire de repli partiel")
	}
}

func TestCategoryEntry_ResolveSub(t *testing.T) {
	idx := testIndex()
	entry := idx.Resolve("Logement")
	if entry == nil {
		t.Fatal("catégorie Logement introuvable")
	}

	tests := []struct {
		name   string
		lookup string
		want   string
	}{
		{name: "exacte", lookup: "Loyer", want: "s1"},
		{name: "partielle", lookup: "Assurance", want: "s2"},
		{name: "vide", lookup: "", want: ""},
		{name: "inconnue", lookup: "Chauffage", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entry.ResolveSub(tt.lookup); got != tt.want {
				t.Errorf("ResolveSub(%q) = %q, attendu %q", tt.lookup, got, tt.want)
			}
		})
	}

	if got := entry.ExactSub("Assurance"); got != "" {
		t.Errorf("ExactSub(Assurance) = %q, attendu vide", got)
	}
}
