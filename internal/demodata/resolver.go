// internal/demodata/resolver.go
package demodata

import (
	"strings"

	"foyer-finance/internal/domain"
)

// CategoryEntry regroupe une catégorie et ses sous-catégories indexées par
// nom, dans l'ordre d'insertion en base.
type CategoryEntry struct {
	Category domain.Category

	subNames []string
	subs     map[string]domain.Subcategory
}

// ExactSub retourne l'identifiant de la sous-catégorie portant exactement
// ce nom, chaîne vide sinon.
func (e *CategoryEntry) ExactSub(name string) string {
	if sub, ok := e.subs[name]; ok {
		return sub.ID
	}
	return ""
}

// ResolveSub retourne l'identifiant de la sous-catégorie correspondant au
// nom demandé, par correspondance exacte puis par inclusion dans un sens ou
// dans l'autre. Chaîne vide si rien ne correspond.
func (e *CategoryEntry) ResolveSub(name string) string {
	if name == "" {
		return ""
	}
	if sub, ok := e.subs[name]; ok {
		return sub.ID
	}
	for _, n := range e.subNames {
		if strings.Contains(n, name) || strings.Contains(name, n) {
			return e.subs[n].ID
		}
	}
	return ""
}

// CategoryIndex indexe les catégories d'une organisation par nom en
// conservant l'ordre d'insertion, qui départage les correspondances
// partielles.
type CategoryIndex struct {
	names   []string
	entries map[string]*CategoryEntry
}

// NewCategoryIndex construit l'index à partir des catégories et
// sous-catégories telles que listées par le stockage (ordre de création).
func NewCategoryIndex(categories []domain.Category, subcategories []domain.Subcategory) *CategoryIndex {
	idx := &CategoryIndex{entries: make(map[string]*CategoryEntry, len(categories))}
	for _, c := range categories {
		if _, ok := idx.entries[c.Name]; ok {
			continue
		}
		idx.names = append(idx.names, c.Name)
		idx.entries[c.Name] = &CategoryEntry{
			Category: c,
			subs:     make(map[string]domain.Subcategory),
		}
	}
	byID := make(map[string]*CategoryEntry, len(categories))
	for _, e := range idx.entries {
		byID[e.Category.ID] = e
	}
	for _, s := range subcategories {
		e, ok := byID[s.CategoryID]
		if !ok {
			continue
		}
		if _, dup := e.subs[s.Name]; dup {
			continue
		}
		e.subNames = append(e.subNames, s.Name)
		e.subs[s.Name] = s
	}
	return idx
}

// Exact retourne la catégorie portant exactement ce nom, nil sinon. Les
// passes catalogue complètes l'utilisent, sans repli approximatif.
func (idx *CategoryIndex) Exact(name string) *CategoryEntry {
	return idx.entries[name]
}

// Resolve retourne la catégorie correspondant au nom demandé : exacte
// d'abord, puis la première catégorie (ordre d'insertion) dont le nom
// contient ou est contenu dans le nom demandé. La comparaison est sensible
// à la casse. Nil si aucune correspondance.
func (idx *CategoryIndex) Resolve(name string) *CategoryEntry {
	if e, ok := idx.entries[name]; ok {
		return e
	}
	for _, n := range idx.names {
		if strings.Contains(n, name) || strings.Contains(name, n) {
			return idx.entries[n]
		}
	}
	return nil
}

// Len retourne le nombre de catégories indexées.
func (idx *CategoryIndex) Len() int { return len(idx.names) }
