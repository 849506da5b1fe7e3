// internal/handler/transactions.go
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"foyer-finance/internal/domain"
	"foyer-finance/internal/middleware"
	"foyer-finance/internal/storage"

	val "foyer-finance/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type CombinedStorage interface {
	storage.DirectoryStorage
	storage.TransactionStorage
	storage.RefundStorage
}

type TransactionHandler struct {
	store CombinedStorage
}

func NewTransactionHandler(store CombinedStorage) *TransactionHandler {
	return &TransactionHandler{store: store}
}

// organizationOf résout l'organisation du porteur du jeton. Chaque requête
// est bornée à cette organisation, jamais à celle du corps de requête.
func organizationOf(c *gin.Context, store storage.DirectoryStorage) (string, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "user_id missing"})
		return "", false
	}
	user, err := store.UserByID(context.Background(), userID)
	if err != nil || user == nil || user.OrganizationID == "" {
		slog.Error("Failed to resolve organization", "error", err, "user_id", userID)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "No organization"})
		return "", false
	}
	return user.OrganizationID, true
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Accept json
// @Produce json
// @Param request body TransactionRequest true "Transaction data"
// @Success 200 {object} map[string]string{"id":"..."}
// @Failure 400 {object} map[string]string
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orgID, ok := organizationOf(c, h.store)
	if !ok {
		return
	}

	tx, err := req.toDomain(orgID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.store.CreateTransaction(context.Background(), tx)
	if err != nil {
		slog.Error("Failed to create transaction", "error", err, "organization_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	slog.Info("Transaction created", "id", id, "organization_id", orgID)
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Param id path string true "Transaction ID"
// @Param request body TransactionRequest true "Transaction data"
// @Success 200 {object} map[string]string{"status":"ok"}
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id path param required"})
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orgID, ok := organizationOf(c, h.store)
	if !ok {
		return
	}

	tx, err := req.toDomain(orgID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tx.ID = id

	if err := h.store.UpdateTransaction(context.Background(), tx); err != nil {
		slog.Error("Failed to update transaction", "error", err, "id", id, "organization_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DeleteTransaction godoc
// @Summary Delete a transaction and its refunds
// @Param id path string true "Transaction ID"
// @Success 200 {object} map[string]string{"status":"ok"}
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id path param required"})
		return
	}

	orgID, ok := organizationOf(c, h.store)
	if !ok {
		return
	}

	if err := h.store.DeleteTransaction(context.Background(), orgID, id); err != nil {
		slog.Error("Failed to delete transaction", "error", err, "id", id, "organization_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListMonth godoc
// @Summary List transactions of a month, net of refunds
// @Param month query string true "Month in YYYY-MM format"
// @Success 200 {array} domain.NetTransaction
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) ListMonth(c *gin.Context) {
	month := c.Query("month")
	if month == "" || len(month) != 7 || month[4] != '-' {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month query param required in YYYY-MM format"})
		return
	}

	orgID, ok := organizationOf(c, h.store)
	if !ok {
		return
	}

	txs, err := h.store.TransactionsByMonth(context.Background(), orgID, month)
	if err != nil {
		slog.Error("Failed to list transactions", "error", err, "organization_id", orgID, "month", month)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if txs == nil {
		txs = []domain.NetTransaction{}
	}
	c.JSON(http.StatusOK, txs)
}

// ListRefunds godoc
// @Summary List refunds of a transaction
// @Param id path string true "Transaction ID"
// @Success 200 {array} domain.Refund
// @Router /api/v1/transactions/{id}/refunds [get]
func (h *TransactionHandler) ListRefunds(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id path param required"})
		return
	}

	if _, ok := organizationOf(c, h.store); !ok {
		return
	}

	refunds, err := h.store.RefundsByTransaction(context.Background(), id)
	if err != nil {
		slog.Error("Failed to list refunds", "error", err, "transaction_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if refunds == nil {
		refunds = []domain.Refund{}
	}
	c.JSON(http.StatusOK, refunds)
}

// Members godoc
// @Summary List household members
// @Success 200 {array} domain.User
// @Router /api/v1/members [get]
func (h *TransactionHandler) Members(c *gin.Context) {
	orgID, ok := organizationOf(c, h.store)
	if !ok {
		return
	}

	users, err := h.store.UsersByOrganization(context.Background(), orgID)
	if err != nil {
		slog.Error("Failed to list members", "error", err, "organization_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// Categories godoc
// @Summary List categories with their subcategories
// @Success 200 {array} domain.CategoryWithSubcategories
// @Router /api/v1/categories [get]
func (h *TransactionHandler) Categories(c *gin.Context) {
	categories, err := h.store.Categories(context.Background())
	if err != nil {
		slog.Error("Failed to list categories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	subcategories, err := h.store.Subcategories(context.Background())
	if err != nil {
		slog.Error("Failed to list subcategories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	bySub := make(map[string][]domain.Subcategory)
	for _, s := range subcategories {
		bySub[s.CategoryID] = append(bySub[s.CategoryID], s)
	}

	out := make([]domain.CategoryWithSubcategories, 0, len(categories))
	for _, cat := range categories {
		subs := bySub[cat.ID]
		if subs == nil {
			subs = []domain.Subcategory{}
		}
		out = append(out, domain.CategoryWithSubcategories{Category: cat, Subcategories: subs})
	}
	c.JSON(http.StatusOK, out)
}

// === DTO ===

type TransactionRequest struct {
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Description     string  `json:"description" validate:"required,notblank"`
	TransactionDate string  `json:"transaction_date" validate:"required,isodate"`
	AccountingDate  string  `json:"accounting_date" validate:"required,isodate"`
	CategoryID      string  `json:"category_id" validate:"required,uuid"`
	SubcategoryID   string  `json:"subcategory_id" validate:"omitempty,uuid"`
	UserID          string  `json:"user_id" validate:"required,uuid"`
	ExpenseType     string  `json:"expense_type" validate:"required,oneof=individual couple"`
	IsIncome        bool    `json:"is_income"`
}

func (r TransactionRequest) toDomain(orgID string) (domain.Transaction, error) {
	txDate, err := time.Parse("2006-01-02", r.TransactionDate)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("transaction_date must be in YYYY-MM-DD format")
	}
	accDate, err := time.Parse("2006-01-02", r.AccountingDate)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("accounting_date must be in YYYY-MM-DD format")
	}
	return domain.Transaction{
		Amount:          r.Amount,
		Description:     r.Description,
		TransactionDate: txDate,
		AccountingDate:  accDate,
		CategoryID:      r.CategoryID,
		SubcategoryID:   r.SubcategoryID,
		UserID:          r.UserID,
		ExpenseType:     domain.ExpenseType(r.ExpenseType),
		IsIncome:        r.IsIncome,
		OrganizationID:  orgID,
	}, nil
}

func validateStruct(v any) error {
	if err := val.Validate.Struct(v); err != nil {
		var errs []string
		for _, e := range err.(validator.ValidationErrors) {
			errs = append(errs, fieldErrorToString(e))
		}
		return fmt.Errorf("invalid input: %s", strings.Join(errs, "; "))
	}
	return nil
}

func fieldErrorToString(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "isodate":
		return fmt.Sprintf("%s must be in YYYY-MM-DD format", e.Field())
	case "yearmonth":
		return fmt.Sprintf("%s must be in YYYY-MM format", e.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field())
	case "uuid":
		return fmt.Sprintf("%s must be a UUID", e.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
