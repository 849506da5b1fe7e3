// internal/demodata/catalog.go
package demodata

import "foyer-finance/internal/domain"

func intp(n int) *int { return &n }

// ExpensePatterns est le catalogue des dépenses récurrentes du foyer de
// démonstration. Les libellés sont ceux affichés dans l'application.
var ExpensePatterns = []Pattern{
	// LOGEMENT
	{
		Name:        "Loyer",
		Description: "Loyer mensuel",
		Category:    "Logement",
		Subcategory: "Loyer",
		Frequency:   Monthly,
		DayOfMonth:  5,
		Variance:    0, // pas de variance pour le loyer
		Amount:      AmountRange{Min: 1200, Max: 1200},
		ExpenseType: domain.ExpenseCouple,
	},
	{
		Name:        "Électricité",
		Description: "Facture EDF",
		Category:    "Logement",
		Subcategory: "Électricité",
		Frequency:   Bimonthly,
		DayOfMonth:  15,
		Variance:    3,
		Amount:      AmountRange{Min: 70, Max: 120},
		Seasonal:    &SeasonalMultiplier{Winter: 1.5, Summer: 0.7}, // plus cher en hiver
		ExpenseType: domain.ExpenseCouple,
	},
	{
		Name:        "Internet",
		Description: "Abonnement fibre Free",
		Category:    "Logement",
		Subcategory: "Internet",
		Frequency:   Monthly,
		DayOfMonth:  12,
		Variance:    1,
		Amount:      AmountRange{Min: 39.99, Max: 39.99},
		ExpenseType: domain.ExpenseCouple,
	},
	{
		Name:        "Assurance habitation",
		Description: "Assurance habitation AXA",
		Category:    "Logement",
		Subcategory: "Assurance",
		Frequency:   Monthly,
		DayOfMonth:  8,
		Variance:    1,
		Amount:      AmountRange{Min: 25, Max: 25},
		ExpenseType: domain.ExpenseCouple,
	},
	{
		Name:         "Réparations",
		Description:  "Réparations diverses",
		Category:     "Logement",
		Subcategory:  "Réparations",
		Frequency:    Random,
		OddsPerMonth: 0.5, // environ une fois tous les deux mois
		Amount:       AmountRange{Min: 20, Max: 150},
		ExpenseType:  domain.ExpenseCouple,
	},
	{
		Name:              "Meubles",
		Description:       "Achat meubles",
		Category:          "Logement",
		Subcategory:       "Meubles",
		Frequency:         Random,
		OddsPerYear:       4,
		Amount:            AmountRange{Min: 50, Max: 300},
		ExpenseType:       domain.ExpenseCouple,
		RefundProbability: 0.3,
	},

	// ALIMENTATION
	{
		Name:              "Supermarché",
		Description:       "Courses alimentaires",
		Category:          "Alimentation",
		Subcategory:       "Supermarché",
		Frequency:         Weekly,
		DayOfWeek:         intp(6), // samedi
		Variance:          1,
		Amount:            AmountRange{Min: 60, Max: 120},
		ExpenseType:       domain.ExpenseCouple,
		RefundProbability: 0.5,
	},
	{
		Name:        "Restaurant",
		Description: "Sorties restaurant",
		Category:    "Alimentation",
		Subcategory: "Restaurant",
		Frequency:   Biweekly,
		Variance:    2,
		Amount:      AmountRange{Min: 40, Max: 90},
		ExpenseType: domain.ExpenseCouple,
	},
	{
		Name:        "Livraison repas",
		Description: "Uber Eats",
		Category:    "Alimentation",
		Subcategory: "Livraison",
		Frequency:   Weekly,
		DayOfWeek:   intp(5), // vendredi soir
		Variance:    2,
		Amount:      AmountRange{Min: 25, Max: 45},
		ExpenseType: domain.ExpenseCouple,
	},
	{
		Name:        "Café",
		Description: "Pause café",
		Category:    "Alimentation",
		Subcategory: "Café",
		Frequency:   Workdays,
		Probability: 0.6, // 60% des jours de travail
		Amount:      AmountRange{Min: 2.5, Max: 5.5},
		ExpenseType: domain.ExpenseIndividual,
	},

	// TRANSPORT
	{
		Name:        "Transports en commun",
		Description: "Navigo mensuel",
		Category:    "Transport",
		Subcategory: "Transports en commun",
		Frequency:   Monthly,
		DayOfMonth:  3,
		Variance:    2,
		Amount:      AmountRange{Min: 75.20, Max: 75.20},
		ExpenseType: domain.ExpenseIndividual,
	},
	{
		Name:        "Essence",
		Description: "Carburant",
		Category:    "Transport",
		Subcategory: "Carburant",
		Frequency:   Biweekly,
		Variance:    3,
		Amount:      AmountRange{Min: 40, Max: 70},
		Seasonal:    &SeasonalMultiplier{Summer: 1.3}, // plus en été pour les vacances
		ExpenseType: domain.ExpenseCouple,
	},
	{
		Name:        "Entretien voiture",
		Description: "Révision voiture",
		Category:    "Transport",
		Subcategory: "Entretien",
		Frequency:   Random,
		OddsPerYear: 2,
		Amount:      AmountRange{Min: 120, Max: 350},
		ExpenseType: domain.ExpenseCouple,
	},
	{
		Name:         "Péage",
		Description:  "Péage autoroute",
		Category:     "Transport",
		Subcategory:  "Péage",
		Frequency:    Random,
		OddsPerMonth: 1,
		Amount:       AmountRange{Min: 8, Max: 30},
		Seasonal:     &SeasonalMultiplier{Summer: 2.0}, // beaucoup plus en été
		ExpenseType:  domain.ExpenseCouple,
	},
	{
		Name:              "Taxi/VTC",
		Description:       "Uber",
		Category:          "Transport",
		Subcategory:       "Taxi/VTC",
		Frequency:         Biweekly,
		Variance:          4,
		Amount:            AmountRange{Min: 15, Max: 35},
		ExpenseType:       domain.ExpenseIndividual,
		RefundProbability: 0.2,
	},

	// SANTÉ
	{
		Name:              "Médecin généraliste",
		Description:       "Consultation médecin",
		Category:          "Santé",
		Subcategory:       "Consultation",
		Frequency:         Random,
		OddsPerMonth:      0.8,
		Amount:            AmountRange{Min: 25, Max: 30},
		ExpenseType:       domain.ExpenseIndividual,
		RefundProbability: 0.9,
	},
	{
		Name:              "Pharmacie",
		Description:       "Médicaments",
		Category:          "Santé",
		Subcategory:       "Pharmacie",
		Frequency:         Random,
		OddsPerMonth:      1.5,
		Amount:            AmountRange{Min: 10, Max: 50},
		Seasonal:          &SeasonalMultiplier{Winter: 1.4}, // plus en hiver
		ExpenseType:       domain.ExpenseIndividual,
		RefundProbability: 0.7,
	},
	{
		Name:              "Dentiste",
		Description:       "Soins dentaires",
		Category:          "Santé",
		Subcategory:       "Dentiste",
		Frequency:         Random,
		OddsPerYear:       2,
		Amount:            AmountRange{Min: 70, Max: 300},
		ExpenseType:       domain.ExpenseIndividual,
		RefundProbability: 0.8,
	},
	{
		Name:              "Optique",
		Description:       "Lunettes/Lentilles",
		Category:          "Santé",
		Subcategory:       "Optique",
		Frequency:         Random,
		OddsPerYear:       1,
		Amount:            AmountRange{Min: 150, Max: 400},
		ExpenseType:       domain.ExpenseIndividual,
		RefundProbability: 0.6,
	},

	// LOISIRS
	{
		Name:        "Cinéma",
		Description: "Séance cinéma",
		Category:    "Loisirs",
		Subcategory: "Cinéma",
		Frequency:   Biweekly,
		Variance:    4,
		Amount:      AmountRange{Min: 10, Max: 25},
		ExpenseType: domain.ExpenseCouple,
	},
	{
		Name:        "Abonnements",
		Description: "Netflix",
		Category:    "Loisirs",
		Subcategory: "Abonnements",
		Frequency:   Monthly,
		DayOfMonth:  15,
		Variance:    1,
		Amount:      AmountRange{Min: 13.49, Max: 13.49},
		ExpenseType: domain.ExpenseCouple,
	},
	{
		Name:        "Abonnements",
		Description: "Spotify",
		Category:    "Loisirs",
		Subcategory: "Abonnements",
		Frequency:   Monthly,
		DayOfMonth:  10,
		Variance:    1,
		Amount:      AmountRange{Min: 9.99, Max: 9.99},
		ExpenseType: domain.ExpenseIndividual,
	},
	{
		Name:        "Sport",
		Description: "Abonnement salle de sport",
		Category:    "Loisirs",
		Subcategory: "Sport",
		Frequency:   Monthly,
		DayOfMonth:  5,
		Variance:    1,
		Amount:      AmountRange{Min: 35, Max: 35},
		ExpenseType: domain.ExpenseIndividual,
	},
	{
		Name:         "Livres",
		Description:  "Achat livres",
		Category:     "Loisirs",
		Subcategory:  "Livres",
		Frequency:    Random,
		OddsPerMonth: 1.5,
		Amount:       AmountRange{Min: 10, Max: 35},
		ExpenseType:  domain.ExpenseIndividual,
	},
	{
		Name:         "Concert",
		Description:  "Billets concert",
		Category:     "Loisirs",
		Subcategory:  "Sorties",
		Frequency:    Random,
		OddsPerMonth: 0.5,
		Amount:       AmountRange{Min: 30, Max: 80},
		ExpenseType:  domain.ExpenseCouple,
	},

	// SHOPPING
	{
		Name:         "Vêtements",
		Description:  "Achat vêtements",
		Category:     "Shopping",
		Subcategory:  "Vêtements",
		Frequency:    Random,
		OddsPerMonth: 2,
		Amount:       AmountRange{Min: 20, Max: 120},
		Seasonal:     &SeasonalMultiplier{Spring: 1.3, Autumn: 1.3}, // plus au changement de saison
		ExpenseType:  domain.ExpenseIndividual,
	},
	{
		Name:         "Chaussures",
		Description:  "Achat chaussures",
		Category:     "Shopping",
		Subcategory:  "Chaussures",
		Frequency:    Random,
		OddsPerMonth: 0.5,
		Amount:       AmountRange{Min: 60, Max: 150},
		ExpenseType:  domain.ExpenseIndividual,
	},
	{
		Name:        "Électronique",
		Description: "Achats tech",
		Category:    "Shopping",
		Subcategory: "Électronique",
		Frequency:   Random,
		OddsPerYear: 4,
		Amount:      AmountRange{Min: 50, Max: 250},
		ExpenseType: domain.ExpenseIndividual,
	},
	{
		Name:         "Cadeaux",
		Description:  "Cadeaux",
		Category:     "Shopping",
		Subcategory:  "Cadeaux",
		Frequency:    Random,
		OddsPerMonth: 1,
		Amount:       AmountRange{Min: 20, Max: 100},
		Seasonal:     &SeasonalMultiplier{Winter: 2.0}, // beaucoup plus en hiver (Noël)
		ExpenseType:  domain.ExpenseIndividual,
	},

	// VOYAGES
	{
		Name:              "Hôtel",
		Description:       "Réservation hôtel",
		Category:          "Voyages",
		Subcategory:       "Hébergement",
		Frequency:         Random,
		OddsPerYear:       6,
		Amount:            AmountRange{Min: 80, Max: 250},
		Seasonal:          &SeasonalMultiplier{Summer: 1.5, Winter: 1.3},
		ExpenseType:       domain.ExpenseCouple,
		RefundProbability: 0.3,
	},
	{
		Name:              "Avion",
		Description:       "Billets d'avion",
		Category:          "Voyages",
		Subcategory:       "Transport",
		Frequency:         Random,
		OddsPerYear:       4,
		Amount:            AmountRange{Min: 100, Max: 400},
		Seasonal:          &SeasonalMultiplier{Summer: 1.5},
		ExpenseType:       domain.ExpenseIndividual,
		RefundProbability: 0.4,
	},
	{
		Name:        "Activités touristiques",
		Description: "Visites et activités",
		Category:    "Voyages",
		Subcategory: "Activités",
		Frequency:   Random,
		OddsPerYear: 10,
		Amount:      AmountRange{Min: 15, Max: 80},
		Seasonal:    &SeasonalMultiplier{Summer: 1.8, Winter: 1.4},
		ExpenseType: domain.ExpenseCouple,
	},

	// FRAIS BANCAIRES
	{
		Name:        "Frais bancaires",
		Description: "Frais de tenue de compte",
		Category:    "Frais bancaires",
		Subcategory: "Frais bancaires",
		Frequency:   Monthly,
		DayOfMonth:  2,
		Variance:    0,
		Amount:      AmountRange{Min: 6.50, Max: 6.50},
		ExpenseType: domain.ExpenseIndividual,
	},
	{
		Name:        "Assurance moyens de paiement",
		Description: "Assurance CB",
		Category:    "Frais bancaires",
		Subcategory: "Assurance",
		Frequency:   Yearly,
		Amount:      AmountRange{Min: 30, Max: 30},
		ExpenseType: domain.ExpenseIndividual,
	},

	// AUTRES
	{
		Name:         "Dons",
		Description:  "Don association",
		Category:     "Autres",
		Subcategory:  "Dons",
		Frequency:    Random,
		OddsPerMonth: 0.5,
		Amount:       AmountRange{Min: 10, Max: 50},
		ExpenseType:  domain.ExpenseIndividual,
	},
	{
		Name:        "Impôts sur le revenu",
		Description: "Impôts sur le revenu",
		Category:    "Autres",
		Subcategory: "Impôts",
		Frequency:   Monthly,
		DayOfMonth:  15,
		Variance:    1,
		Amount:      AmountRange{Min: 250, Max: 300},
		ExpenseType: domain.ExpenseIndividual,
	},
	{
		Name:        "Taxe d'habitation",
		Description: "Taxe d'habitation",
		Category:    "Autres",
		Subcategory: "Impôts",
		Frequency:   Yearly,
		Amount:      AmountRange{Min: 400, Max: 450},
		ExpenseType: domain.ExpenseCouple,
	},
}

// IncomePatterns est le catalogue des revenus.
var IncomePatterns = []Pattern{
	// REVENUS RÉGULIERS
	{
		Name:        "Salaire principal",
		Description: "Salaire mensuel",
		Category:    "Revenus",
		Subcategory: "Salaire",
		Frequency:   Monthly,
		DayOfMonth:  25, // virement le 25 du mois
		Variance:    0,
		Amount:      AmountRange{Min: 2500, Max: 2800}, // heures supp. selon les mois
	},
	{
		Name:        "Salaire secondaire",
		Description: "Salaire conjoint",
		Category:    "Revenus",
		Subcategory: "Salaire",
		Frequency:   Monthly,
		DayOfMonth:  28, // virement en fin de mois
		Variance:    0,
		Amount:      AmountRange{Min: 2100, Max: 2300},
	},
	{
		Name:        "Coverflex",
		Description: "Tickets restaurant",
		Category:    "Revenus",
		Subcategory: "Avantages",
		Frequency:   Monthly,
		DayOfMonth:  10,
		Variance:    1,
		Amount:      AmountRange{Min: 160, Max: 180}, // selon les jours travaillés
	},

	// REVENUS EXCEPTIONNELS
	{
		Name:        "Prime annuelle",
		Description: "Prime de fin d'année",
		Category:    "Revenus",
		Subcategory: "Prime",
		Frequency:   Yearly,
		Amount:      AmountRange{Min: 1800, Max: 2500},
	},
	{
		Name:         "Vente occasion",
		Description:  "Vente Le Bon Coin",
		Category:     "Revenus",
		Subcategory:  "Vente",
		Frequency:    Random,
		OddsPerMonth: 0.4, // environ une fois tous les 2-3 mois
		Amount:       AmountRange{Min: 20, Max: 150},
	},
	{
		Name:        "Cadeau anniversaire",
		Description: "Cadeau argent anniversaire",
		Category:    "Revenus",
		Subcategory: "Cadeaux",
		Frequency:   Random,
		OddsPerYear: 2,
		Amount:      AmountRange{Min: 50, Max: 200},
	},
}

// essentialExpensePatterns : dépenses garanties chaque mois, quelle que
// soit la production du catalogue probabiliste, pour densifier la démo.
var essentialExpensePatterns = []Pattern{
	{
		Name:        "Loyer",
		Description: "Loyer mensuel",
		Category:    "Habitat",
		Subcategory: "Loyer",
		Frequency:   Monthly,
		DayOfMonth:  5,
		Variance:    0,
		Amount:      AmountRange{Min: 1200, Max: 1200},
		ExpenseType: domain.ExpenseCouple,
	},
	{
		Name:        "Abonnements",
		Description: "Netflix",
		Category:    "Services",
		Subcategory: "Abonnements",
		Frequency:   Monthly,
		DayOfMonth:  15,
		Variance:    1,
		Amount:      AmountRange{Min: 13.49, Max: 13.49},
		ExpenseType: domain.ExpenseCouple,
	},
	{
		Name:        "Internet",
		Description: "Abonnement fibre Free",
		Category:    "Habitat",
		Subcategory: "Internet",
		Frequency:   Monthly,
		DayOfMonth:  12,
		Variance:    1,
		Amount:      AmountRange{Min: 39.99, Max: 39.99},
		ExpenseType: domain.ExpenseCouple,
	},
	{
		Name:        "Assurance habitation",
		Description: "Assurance habitation",
		Category:    "Services",
		Subcategory: "Assurance habitation",
		Frequency:   Monthly,
		DayOfMonth:  8,
		Variance:    1,
		Amount:      AmountRange{Min: 25, Max: 25},
		ExpenseType: domain.ExpenseCouple,
	},
	{
		Name:        "Transports en commun",
		Description: "Navigo mensuel",
		Category:    "Transport",
		Subcategory: "Transport en commun",
		Frequency:   Monthly,
		DayOfMonth:  3,
		Variance:    2,
		Amount:      AmountRange{Min: 75.20, Max: 75.20},
		ExpenseType: domain.ExpenseIndividual,
	},
}

// surprisePatterns : dépenses "surprises" dont 1 à 2 sont garanties chaque
// mois (loisirs, cadeaux, etc.).
var surprisePatterns = []Pattern{
	{
		Name:        "Weekend/Vacances",
		Description: "Weekend en Bretagne",
		Category:    "Loisirs",
		Subcategory: "Weekends/Vacances",
		Amount:      AmountRange{Min: 150, Max: 450},
		ExpenseType: domain.ExpenseCouple,
	},
	{
		Name:        "Cadeau",
		Description: "Cadeau anniversaire",
		Category:    "Personnel",
		Subcategory: "Cadeaux",
		Amount:      AmountRange{Min: 30, Max: 120},
		ExpenseType: domain.ExpenseIndividual,
	},
	{
		Name:        "Shopping",
		Description: "Vêtements",
		Category:    "Personnel",
		Subcategory: "Shopping",
		Amount:      AmountRange{Min: 50, Max: 200},
		ExpenseType: domain.ExpenseIndividual,
	},
	{
		Name:        "Sortie",
		Description: "Restaurant entre amis",
		Category:    "Loisirs",
		Subcategory: "Loisirs et sorties",
		Amount:      AmountRange{Min: 35, Max: 120},
		ExpenseType: domain.ExpenseCouple,
	},
}
