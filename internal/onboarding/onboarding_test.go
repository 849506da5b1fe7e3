// internal/onboarding/onboarding_test.go
package onboarding

import (
	"context"
	"testing"

	"foyer-finance/internal/domain"
)

type fakePrefs struct {
	prefs              map[string]*domain.Preferences
	onboardingDone     []string
	releasesRegistered []string
}

func (f *fakePrefs) Preferences(_ context.Context, userID string) (*domain.Preferences, error) {
	return f.prefs[userID], nil
}

func (f *fakePrefs) SetOnboardingCompleted(_ context.Context, userID string) error {
	f.onboardingDone = append(f.onboardingDone, userID)
	return nil
}

func (f *fakePrefs) AddCompletedFeatureRelease(_ context.Context, userID, version string) error {
	f.releasesRegistered = append(f.releasesRegistered, userID+":"+version)
	return nil
}

func TestFlow(t *testing.T) {
	f := NewFlow(3)

	if f.Step != 0 {
		t.Errorf("étape initiale = %d", f.Step)
	}

	f = f.Prev()
	if f.Step != 0 {
		t.Errorf("Prev sous la première étape: %d", f.Step)
	}

	f = f.Next().Next()
	if f.Step != 2 {
		t.Errorf("après deux Next: %d", f.Step)
	}

	f = f.Next()
	if f.Step != 2 {
		t.Errorf("Next au-delà de la dernière étape: %d", f.Step)
	}

	if g := NewFlow(0); g.Total != 1 {
		t.Errorf("Total forcé = %d, attendu 1", g.Total)
	}
}

func TestService_Active(t *testing.T) {
	prefs := &fakePrefs{prefs: map[string]*domain.Preferences{
		"done":     {UserID: "done", CompletedOnboarding: true, CompletedFeatureReleases: []string{"1.2.0"}},
		"partial":  {UserID: "partial", CompletedOnboarding: false, CompletedFeatureReleases: []string{"1.1.0"}},
		"releases": {UserID: "releases", CompletedOnboarding: true},
	}}
	svc := NewService(prefs, "1.2.0")

	tests := []struct {
		name   string
		userID string
		kind   Kind
		want   bool
	}{
		{name: "nouvel utilisateur sans préférences", userID: "fresh", kind: NewUser, want: true},
		{name: "onboarding déjà complété", userID: "done", kind: NewUser, want: false},
		{name: "onboarding pas encore complété", userID: "partial", kind: NewUser, want: true},
		{name: "version déjà vue", userID: "done", kind: FeatureRelease, want: false},
		{name: "autre version vue seulement", userID: "partial", kind: FeatureRelease, want: true},
		{name: "aucune version vue", userID: "releases", kind: FeatureRelease, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Active(context.Background(), tt.userID, tt.kind)
			if err != nil {
				t.Fatalf("Active: %v", err)
			}
			if got != tt.want {
				t.Errorf("Active = %v, attendu %v", got, tt.want)
			}
		})
	}

	if _, err := svc.Active(context.Background(), "fresh", Kind("autre")); err == nil {
		t.Error("parcours inconnu accepté")
	}
}

func TestService_Complete(t *testing.T) {
	prefs := &fakePrefs{prefs: map[string]*domain.Preferences{}}
	svc := NewService(prefs, "1.2.0")

	if err := svc.Complete(context.Background(), "u1", NewUser); err != nil {
		t.Fatalf("Complete new-user: %v", err)
	}
	if len(prefs.onboardingDone) != 1 || prefs.onboardingDone[0] != "u1" {
		t.Errorf("onboarding enregistré = %v", prefs.onboardingDone)
	}

	if err := svc.Complete(context.Background(), "u1", FeatureRelease); err != nil {
		t.Fatalf("Complete feature-release: %v", err)
	}
	if len(prefs.releasesRegistered) != 1 || prefs.releasesRegistered[0] != "u1:1.2.0" {
		t.Errorf("version enregistrée = %v", prefs.releasesRegistered)
	}

	// Sans version applicative, rien à enregistrer
	empty := NewService(prefs, "")
	if err := empty.Complete(context.Background(), "u1", FeatureRelease); err != nil {
		t.Fatalf("Complete sans version: %v", err)
	}
	if len(prefs.releasesRegistered) != 1 {
		t.Errorf("enregistrement inattendu: %v", prefs.releasesRegistered)
	}

	if err := svc.Complete(context.Background(), "u1", Kind("autre")); err == nil {
		t.Error("parcours inconnu accepté")
	}
}
