// internal/demodata/schedule.go
package demodata

import (
	"math"
	"math/rand"
	"strings"
	"time"
)

// Les fonctions de ce fichier transforment un motif en dates concrètes.
// Elles sont pures au tirage près : le rand est injecté pour rendre la
// génération rejouable en test.

func round2(a float64) float64 {
	return math.Round(a*100) / 100
}

// randomAmount tire un montant uniforme dans la fourchette, arrondi au
// centime.
func randomAmount(rng *rand.Rand, r AmountRange) float64 {
	return round2(rng.Float64()*(r.Max-r.Min) + r.Min)
}

// applySeasonal applique le facteur de la saison de la date. Un facteur à
// zéro vaut 1.0.
func applySeasonal(amount float64, date time.Time, m *SeasonalMultiplier) float64 {
	if m == nil {
		return amount
	}
	var factor float64
	switch int(date.Month()) - 1 {
	case 0, 1, 2:
		factor = m.Winter
	case 3, 4, 5:
		factor = m.Spring
	case 6, 7, 8:
		factor = m.Summer
	default:
		factor = m.Autumn
	}
	if factor == 0 {
		factor = 1.0
	}
	return round2(amount * factor)
}

// jitter décale la date de quelques jours, uniformément dans
// [-variance, +variance]. Sans variance la date est rendue telle quelle.
func jitter(rng *rand.Rand, date time.Time, variance int) time.Time {
	if variance == 0 {
		return date
	}
	return date.AddDate(0, 0, rng.Intn(variance*2+1)-variance)
}

func inWindow(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

// monthlyDates : une occurrence par pas de stepMonths, fixée au jour du
// mois du motif (plafonné à 28 pour sécuriser février) puis décalée par la
// variance. Les dates sorties de la fenêtre par le décalage sont écartées.
func monthlyDates(rng *rand.Rand, p Pattern, start, end time.Time, stepMonths int) []time.Time {
	day := p.DayOfMonth
	if day == 0 {
		day = 1
	}
	if day > 28 {
		day = 28
	}
	var dates []time.Time
	for cur := start; !cur.After(end); cur = cur.AddDate(0, stepMonths, 0) {
		d := time.Date(cur.Year(), cur.Month(), day, 0, 0, 0, 0, cur.Location())
		d = jitter(rng, d, p.Variance)
		if inWindow(d, start, end) {
			dates = append(dates, d)
		}
	}
	return dates
}

// weeklyDates : alignement sur le jour de semaine du motif (vendredi par
// défaut) puis une occurrence tous les 7 jours, décalée par la variance.
func weeklyDates(rng *rand.Rand, p Pattern, start, end time.Time) []time.Time {
	target := 5 // vendredi
	if p.DayOfWeek != nil {
		target = *p.DayOfWeek
	}
	cur := start.AddDate(0, 0, (target-int(start.Weekday())+7)%7)
	var dates []time.Time
	for ; !cur.After(end); cur = cur.AddDate(0, 0, 7) {
		d := jitter(rng, cur, p.Variance)
		if inWindow(d, start, end) {
			dates = append(dates, d)
		}
	}
	return dates
}

// biweeklyDates : une occurrence tous les 14 jours depuis le début de la
// fenêtre, sans alignement sur un jour de semaine.
func biweeklyDates(rng *rand.Rand, p Pattern, start, end time.Time) []time.Time {
	var dates []time.Time
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 14) {
		d := jitter(rng, cur, p.Variance)
		if inWindow(d, start, end) {
			dates = append(dates, d)
		}
	}
	return dates
}

// workdayDates : un tirage de Bernoulli chaque jour ouvré (lundi à
// vendredi). Probabilité par défaut : 0.7.
func workdayDates(rng *rand.Rand, p Pattern, start, end time.Time) []time.Time {
	prob := p.Probability
	if prob == 0 {
		prob = 0.7
	}
	var dates []time.Time
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		wd := cur.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		if rng.Float64() <= prob {
			dates = append(dates, cur)
		}
	}
	return dates
}

// dailyDates : une occurrence chaque jour de la fenêtre.
func dailyDates(start, end time.Time) []time.Time {
	var dates []time.Time
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		dates = append(dates, cur)
	}
	return dates
}

// yearlyDates : une occurrence par année civile couverte, à une date tirée
// au hasard. Les primes tombent en décembre.
func yearlyDates(rng *rand.Rand, p Pattern, start, end time.Time) []time.Time {
	var dates []time.Time
	for year := start.Year(); year <= end.Year(); year++ {
		month := rng.Intn(12)
		if strings.Contains(strings.ToLower(p.Name), "prime") {
			month = 11
		}
		day := rng.Intn(28) + 1
		d := time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, start.Location())
		if inWindow(d, start, end) {
			dates = append(dates, d)
		}
	}
	return dates
}

// dailyOdds convertit les cadences du motif en probabilité journalière.
// Premier champ renseigné gagnant, 0.05 par défaut.
func dailyOdds(p Pattern) float64 {
	switch {
	case p.OddsPerWeek != 0:
		return p.OddsPerWeek / 7
	case p.OddsPerMonth != 0:
		return p.OddsPerMonth / 30
	case p.OddsPerYear != 0:
		return p.OddsPerYear / 365
	default:
		return 0.05
	}
}

// randomDates : un tirage de Bernoulli par jour entier de la fenêtre, le
// dernier jour exclu.
func randomDates(rng *rand.Rand, p Pattern, start, end time.Time) []time.Time {
	odds := dailyOdds(p)
	totalDays := int(end.Sub(start).Hours() / 24)
	var dates []time.Time
	for i := 0; i < totalDays; i++ {
		if rng.Float64() <= odds {
			dates = append(dates, start.AddDate(0, 0, i))
		}
	}
	return dates
}

// expandDates dispatche sur la fréquence du motif. Les montants ne sont pas
// tirés ici : l'appelant tire un montant par date rendue, dans l'ordre.
func expandDates(rng *rand.Rand, p Pattern, start, end time.Time) []time.Time {
	switch p.Frequency {
	case Daily:
		return dailyDates(start, end)
	case Workdays:
		return workdayDates(rng, p, start, end)
	case Weekly:
		return weeklyDates(rng, p, start, end)
	case Biweekly:
		return biweeklyDates(rng, p, start, end)
	case Monthly:
		return monthlyDates(rng, p, start, end, 1)
	case Bimonthly:
		return monthlyDates(rng, p, start, end, 2)
	case Yearly:
		return yearlyDates(rng, p, start, end)
	case Random:
		return randomDates(rng, p, start, end)
	default:
		return nil
	}
}
