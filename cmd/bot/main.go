// cmd/bot/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"foyer-finance/internal/config"
	"foyer-finance/internal/demodata"
	"foyer-finance/internal/domain"
	"foyer-finance/internal/storage/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/text/encoding/charmap"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// SanitizeInput normalise les espaces exotiques que Telegram laisse passer.
func SanitizeInput(s string) string {
	result := ""
	for _, r := range s {
		if unicode.IsSpace(r) {
			result += " "
		} else {
			result += string(r)
		}
	}
	return strings.Join(strings.Fields(result), " ")
}

func main() {
	_ = godotenv.Load()

	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN not set")
	}

	// L'utilisateur applicatif au nom duquel le bot saisit les mouvements
	botUserID := os.Getenv("BOT_USER_ID")
	if botUserID == "" {
		log.Fatal("BOT_USER_ID not set")
	}

	cfg := config.MustLoad()
	db, err := pgxpool.New(context.Background(), cfg.DBConn)
	if err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}
	defer db.Close()

	store := postgres.NewStorage(db)

	user, err := store.UserByID(context.Background(), botUserID)
	if err != nil || user == nil {
		log.Fatal("BOT_USER_ID inconnu en base")
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Panic(err)
	}

	log.Printf("Bot started: @%s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		chatID := update.Message.Chat.ID
		text := SanitizeInput(strings.TrimSpace(fixEncoding(update.Message.Text)))

		log.Printf("📥 Received: %q", text)

		var msgText string
		var err error

		switch {
		case text == "/start" || text == "/help":
			msgText = "🏠 *Finances du foyer*\n\n" +
				"Commandes :\n" +
				"`/depense 12.50 Café #Alimentation` — saisir une dépense\n" +
				"`/revenu 2500 Salaire` — saisir un revenu\n" +
				"`/mois` — résumé du mois courant\n" +
				"`/demo` — générer des données de démonstration"

		case text == "/mois":
			msgText, err = handleMonth(store, user)

		case text == "/demo":
			err = handleDemo(store, user)
			if err == nil {
				msgText = "✅ Données de démonstration générées"
			}

		case strings.HasPrefix(text, "/depense "):
			msgText, err = handleEntry(store, user, strings.TrimSpace(text[9:]), false)

		case strings.HasPrefix(text, "/revenu "):
			msgText, err = handleEntry(store, user, strings.TrimSpace(text[8:]), true)

		default:
			msgText = "Commande inconnue. Tape /help"
		}

		if err != nil {
			msgText = "❌ Erreur : " + err.Error()
		}

		msg := tgbotapi.NewMessage(chatID, msgText)
		msg.ParseMode = "Markdown"
		bot.Send(msg)
	}
}

// handleEntry saisit un mouvement. Format : montant, libellé, et en option
// une catégorie préfixée par # qui est résolue contre le référentiel.
func handleEntry(store *postgres.Storage, user *domain.User, input string, isIncome bool) (string, error) {
	fields := strings.Fields(input)
	if len(fields) < 2 {
		return "", fmt.Errorf("utilise : montant libellé [#Catégorie]")
	}

	amount, err := strconv.ParseFloat(strings.Replace(fields[0], ",", ".", 1), 64)
	if err != nil || amount <= 0 {
		return "", fmt.Errorf("montant invalide : %q", fields[0])
	}

	categoryName := ""
	var descParts []string
	for _, f := range fields[1:] {
		if strings.HasPrefix(f, "#") {
			categoryName = strings.TrimPrefix(f, "#")
			continue
		}
		descParts = append(descParts, f)
	}
	description := strings.Join(descParts, " ")
	if description == "" {
		return "", fmt.Errorf("le libellé ne peut pas être vide")
	}

	categoryID, err := resolveCategory(store, categoryName, isIncome)
	if err != nil {
		return "", err
	}

	now := time.Now()
	id, err := store.CreateTransaction(context.Background(), domain.Transaction{
		Amount:          amount,
		Description:     description,
		TransactionDate: now,
		AccountingDate:  now,
		CategoryID:      categoryID,
		UserID:          user.ID,
		ExpenseType:     domain.ExpenseCouple,
		IsIncome:        isIncome,
		OrganizationID:  user.OrganizationID,
	})
	if err != nil {
		return "", err
	}

	log.Printf("💶 Mouvement saisi: id=%s montant=%.2f", id, amount)
	if isIncome {
		return fmt.Sprintf("✅ Revenu de %.2f € enregistré", amount), nil
	}
	return fmt.Sprintf("✅ Dépense de %.2f € enregistrée", amount), nil
}

// resolveCategory retrouve la catégorie demandée avec le même repli
// approximatif que le générateur. Sans nom, les revenus vont dans
// "Revenus" et les dépenses dans "Autres", à défaut la première catégorie.
func resolveCategory(store *postgres.Storage, name string, isIncome bool) (string, error) {
	categories, err := store.Categories(context.Background())
	if err != nil {
		return "", err
	}
	if len(categories) == 0 {
		return "", fmt.Errorf("aucune catégorie en base")
	}
	subcategories, err := store.Subcategories(context.Background())
	if err != nil {
		return "", err
	}
	idx := demodata.NewCategoryIndex(categories, subcategories)

	if name != "" {
		entry := idx.Resolve(name)
		if entry == nil {
			return "", fmt.Errorf("catégorie inconnue : %q", name)
		}
		return entry.Category.ID, nil
	}

	fallback := "Autres"
	if isIncome {
		fallback = "Revenus"
	}
	if entry := idx.Resolve(fallback); entry != nil {
		return entry.Category.ID, nil
	}
	return categories[0].ID, nil
}

func handleMonth(store *postgres.Storage, user *domain.User) (string, error) {
	month := time.Now().Format("2006-01")
	txs, err := store.TransactionsByMonth(context.Background(), user.OrganizationID, month)
	if err != nil {
		return "", err
	}
	if len(txs) == 0 {
		return "📭 Aucun mouvement en " + month, nil
	}

	var income, expense float64
	for _, tx := range txs {
		if tx.IsIncome {
			income += tx.Amount
		} else {
			expense += tx.Amount - tx.RefundTotal
		}
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("🏠 *Foyer, %s*", month))
	lines = append(lines, fmt.Sprintf("Revenus : %.2f €", income))
	lines = append(lines, fmt.Sprintf("Dépenses nettes : %.2f €", expense))
	lines = append(lines, fmt.Sprintf("Solde : %.2f €", income-expense))
	lines = append(lines, fmt.Sprintf("\n%d mouvements", len(txs)))
	return strings.Join(lines, "\n"), nil
}

func handleDemo(store *postgres.Storage, user *domain.User) error {
	gen := demodata.New(store, slog.Default())
	return gen.Run(context.Background(), user.ID)
}

func fixEncoding(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	// Certains clients envoient encore du windows-1252
	decoder := charmap.Windows1252.NewDecoder()
	fixed, err := decoder.String(s)
	if err == nil && utf8.ValidString(fixed) {
		return fixed
	}

	return strings.ToValidUTF8(s, "")
}
