// internal/domain/models.go
package domain

import "time"

// ExpenseType dit si une dépense est portée par un membre ou par le couple.
type ExpenseType string

const (
	ExpenseIndividual ExpenseType = "individual"
	ExpenseCouple     ExpenseType = "couple"
)

type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID             string `json:"id"`
	Email          string `json:"email,omitempty"`
	Name           string `json:"name"`
	Avatar         string `json:"avatar,omitempty"`
	OrganizationID string `json:"-"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Type: "income", "expense" ou "fixed_expense"
	Type string `json:"type"`
}

type Subcategory struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

// CategoryWithSubcategories regroupe une catégorie et ses sous-catégories
// pour l'affichage des formulaires et de la grille comptable.
type CategoryWithSubcategories struct {
	Category      Category      `json:"category"`
	Subcategories []Subcategory `json:"subcategories"`
}

type Transaction struct {
	ID              string      `json:"id"`
	Amount          float64     `json:"amount"`
	Description     string      `json:"description"`
	TransactionDate time.Time   `json:"transaction_date"`
	AccountingDate  time.Time   `json:"accounting_date"`
	CategoryID      string      `json:"category_id"`
	SubcategoryID   string      `json:"subcategory_id,omitempty"` // vide = aucune
	UserID          string      `json:"user_id"`
	ExpenseType     ExpenseType `json:"expense_type"`
	IsIncome        bool        `json:"is_income"`
	OrganizationID  string      `json:"-"`
}

type Refund struct {
	ID             string    `json:"id"`
	TransactionID  string    `json:"transaction_id"`
	Amount         float64   `json:"amount"`
	RefundDate     time.Time `json:"refund_date"`
	Description    string    `json:"description"`
	UserID         string    `json:"user_id"`
	OrganizationID string    `json:"-"`
}

// NetTransaction est une ligne de la vue transactions_with_refunds :
// la transaction avec le total remboursé déjà agrégé.
type NetTransaction struct {
	ID              string
	Amount          float64
	RefundTotal     float64
	Description     string
	AccountingDate  time.Time
	CategoryID      string
	CategoryName    string
	SubcategoryID   string
	SubcategoryName string
	UserID          string
	IsIncome        bool
}

// EventFrequency gouverne la récurrence d'un événement du calendrier partagé.
type EventFrequency string

const (
	EventOnce    EventFrequency = "once"
	EventDaily   EventFrequency = "daily"
	EventWeekly  EventFrequency = "weekly"
	EventMonthly EventFrequency = "monthly"
	EventYearly  EventFrequency = "yearly"
)

type Event struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	Location       string         `json:"location,omitempty"`
	StartDate      time.Time      `json:"start_date"`
	EndDate        *time.Time     `json:"end_date,omitempty"`
	StartTime      string         `json:"start_time,omitempty"` // "HH:MM", vide = journée entière
	Frequency      EventFrequency `json:"frequency"`
	CreatedBy      string         `json:"created_by"`
	OrganizationID string         `json:"-"`
	Participants   []User         `json:"participants,omitempty"`
}

// Preferences porte l'état d'onboarding d'un utilisateur.
type Preferences struct {
	UserID                   string   `json:"-"`
	CompletedOnboarding      bool     `json:"completed_onboarding"`
	CompletedFeatureReleases []string `json:"completed_feature_releases"`
}
