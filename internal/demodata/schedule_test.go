// internal/demodata/schedule_test.go
package demodata

import (
	"math/rand"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthlyDates_FixedDay(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := Pattern{
		Frequency:  Monthly,
		DayOfMonth: 5,
		Variance:   0,
		Amount:     AmountRange{Min: 1200, Max: 1200},
	}

	dates := monthlyDates(rng, p, date(2024, time.January, 1), date(2024, time.March, 31), 1)

	want := []time.Time{
		date(2024, time.January, 5),
		date(2024, time.February, 5),
		date(2024, time.March, 5),
	}
	if len(dates) != len(want) {
		t.Fatalf("nombre de dates = %d, attendu %d", len(dates), len(want))
	}
	for i, d := range dates {
		if !d.Equal(want[i]) {
			t.Errorf("date[%d] = %s, attendu %s", i, d.Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}

	for i := 0; i < 20; i++ {
		amount := randomAmount(rng, p.Amount)
		if amount != 1200.00 {
			t.Fatalf("montant = %.2f, attendu 1200.00", amount)
		}
	}
}

func TestMonthlyDates_DayCappedAt28(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := Pattern{Frequency: Monthly, DayOfMonth: 31, Variance: 0}

	dates := monthlyDates(rng, p, date(2024, time.January, 1), date(2024, time.December, 31), 1)

	if len(dates) != 12 {
		t.Fatalf("nombre de dates = %d, attendu 12", len(dates))
	}
	for _, d := range dates {
		if d.Day() != 28 {
			t.Errorf("jour du mois = %d, attendu 28 (%s)", d.Day(), d.Format("2006-01-02"))
		}
	}
}

func TestMonthlyDates_BimonthlyStep(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := Pattern{Frequency: Bimonthly, DayOfMonth: 15, Variance: 0}

	dates := monthlyDates(rng, p, date(2024, time.January, 1), date(2024, time.June, 30), 2)

	want := []time.Time{
		date(2024, time.January, 15),
		date(2024, time.March, 15),
		date(2024, time.May, 15),
	}
	if len(dates) != len(want) {
		t.Fatalf("nombre de dates = %d, attendu %d", len(dates), len(want))
	}
	for i, d := range dates {
		if !d.Equal(want[i]) {
			t.Errorf("date[%d] = %s, attendu %s", i, d.Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}

func TestWeeklyDates_AlignedOnDayOfWeek(t *testing.T) {
	tests := []struct {
		name      string
		dayOfWeek *int
		want      time.Weekday
	}{
		{name: "samedi explicite", dayOfWeek: intp(6), want: time.Saturday},
		{name: "vendredi par défaut", dayOfWeek: nil, want: time.Friday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			p := Pattern{Frequency: Weekly, DayOfWeek: tt.dayOfWeek, Variance: 0}

			// Le 1er janvier 2024 est un lundi
			dates := weeklyDates(rng, p, date(2024, time.January, 1), date(2024, time.February, 29))

			if len(dates) == 0 {
				t.Fatal("aucune date émise")
			}
			for _, d := range dates {
				if d.Weekday() != tt.want {
					t.Errorf("jour de semaine = %s, attendu %s (%s)", d.Weekday(), tt.want, d.Format("2006-01-02"))
				}
			}
			for i := 1; i < len(dates); i++ {
				if dates[i].Sub(dates[i-1]) != 7*24*time.Hour {
					t.Errorf("écart entre occurrences = %s, attendu 7 jours", dates[i].Sub(dates[i-1]))
				}
			}
		})
	}
}

func TestWorkdayDates_FullWeekAtCertainty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := Pattern{Frequency: Workdays, Probability: 1.0}

	// Semaine du lundi 8 au dimanche 14 janvier 2024
	dates := workdayDates(rng, p, date(2024, time.January, 8), date(2024, time.January, 14))

	if len(dates) != 5 {
		t.Fatalf("nombre de dates = %d, attendu 5 (lundi à vendredi)", len(dates))
	}
	for _, d := range dates {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("date en weekend: %s", d.Format("2006-01-02"))
		}
	}
}

func TestExpandDates_AllInsideWindow(t *testing.T) {
	start, end := date(2024, time.January, 1), date(2024, time.December, 31)
	rng := rand.New(rand.NewSource(42))

	patterns := []Pattern{
		{Name: "mensuel", Frequency: Monthly, DayOfMonth: 28, Variance: 5},
		{Name: "hebdo", Frequency: Weekly, Variance: 3},
		{Name: "quinzaine", Frequency: Biweekly, Variance: 4},
		{Name: "ouvrés", Frequency: Workdays, Probability: 0.5},
		{Name: "annuel", Frequency: Yearly},
		{Name: "prime de fin d'année", Frequency: Yearly},
		{Name: "aléatoire", Frequency: Random, OddsPerWeek: 2},
	}

	for _, p := range patterns {
		for _, d := range expandDates(rng, p, start, end) {
			if d.Before(start) || d.After(end) {
				t.Errorf("%s: date hors fenêtre: %s", p.Name, d.Format("2006-01-02"))
			}
		}
	}
}

func TestYearlyDates_PrimeInDecember(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := Pattern{Name: "Prime annuelle", Frequency: Yearly}

	for i := 0; i < 50; i++ {
		for _, d := range yearlyDates(rng, p, date(2024, time.January, 1), date(2025, time.December, 31)) {
			if d.Month() != time.December {
				t.Fatalf("prime émise en %s, attendu décembre", d.Month())
			}
			if d.Day() < 1 || d.Day() > 28 {
				t.Fatalf("jour = %d, attendu entre 1 et 28", d.Day())
			}
		}
	}
}

func TestRandomAmount_BoundedAndRounded(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	r := AmountRange{Min: 10, Max: 50}

	for i := 0; i < 1000; i++ {
		a := randomAmount(rng, r)
		if a < r.Min || a > r.Max {
			t.Fatalf("montant %.4f hors fourchette [%.2f, %.2f]", a, r.Min, r.Max)
		}
		if round2(a) != a {
			t.Fatalf("montant %v non arrondi au centime", a)
		}
	}
}

func TestApplySeasonal(t *testing.T) {
	m := &SeasonalMultiplier{Winter: 1.5, Summer: 0.7}

	tests := []struct {
		name string
		date time.Time
		want float64
	}{
		{name: "janvier hiver", date: date(2024, time.January, 10), want: 150},
		{name: "juillet été", date: date(2024, time.July, 10), want: 70},
		{name: "avril sans facteur", date: date(2024, time.April, 10), want: 100},
		{name: "octobre sans facteur", date: date(2024, time.October, 10), want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applySeasonal(100, tt.date, m); got != tt.want {
				t.Errorf("applySeasonal = %.2f, attendu %.2f", got, tt.want)
			}
		})
	}

	if got := applySeasonal(100, date(2024, time.January, 10), nil); got != 100 {
		t.Errorf("sans multiplicateur = %.2f, attendu 100", got)
	}
}

func TestDailyOdds(t *testing.T) {
	tests := []struct {
		name string
		p    Pattern
		want float64
	}{
		{name: "hebdo prioritaire", p: Pattern{OddsPerWeek: 7, OddsPerMonth: 30}, want: 1},
		{name: "mensuel", p: Pattern{OddsPerMonth: 3}, want: 0.1},
		{name: "annuel", p: Pattern{OddsPerYear: 365}, want: 1},
		{name: "défaut", p: Pattern{}, want: 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dailyOdds(tt.p); got != tt.want {
				t.Errorf("dailyOdds = %v, attendu %v", got, tt.want)
			}
		})
	}
}
