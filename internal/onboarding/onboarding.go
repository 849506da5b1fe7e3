// internal/onboarding/onboarding.go

// Package onboarding pilote les parcours de découverte : celui des nouveaux
// utilisateurs et ceux qui accompagnent une nouvelle version.
package onboarding

import (
	"context"
	"fmt"

	"foyer-finance/internal/storage"
)

// Kind distingue le parcours initial des parcours de nouveautés.
type Kind string

const (
	NewUser        Kind = "new-user"
	FeatureRelease Kind = "feature-release"
)

// Flow est la progression d'un parcours à étapes bornées.
type Flow struct {
	Step  int `json:"step"`
	Total int `json:"total"`
}

// NewFlow démarre un parcours à la première étape. Moins d'une étape n'a
// pas de sens, on force un minimum de 1.
func NewFlow(total int) Flow {
	if total < 1 {
		total = 1
	}
	return Flow{Step: 0, Total: total}
}

// Next avance d'une étape, sans dépasser la dernière.
func (f Flow) Next() Flow {
	if f.Step < f.Total-1 {
		f.Step++
	}
	return f
}

// Prev recule d'une étape, sans passer sous la première.
func (f Flow) Prev() Flow {
	if f.Step > 0 {
		f.Step--
	}
	return f
}

// Service décide si un parcours doit s'afficher et enregistre sa
// complétion. La version applicative identifie les parcours de nouveautés.
type Service struct {
	prefs      storage.PreferenceStorage
	appVersion string
}

func NewService(prefs storage.PreferenceStorage, appVersion string) *Service {
	return &Service{prefs: prefs, appVersion: appVersion}
}

// Active dit si le parcours demandé doit s'afficher pour l'utilisateur.
// Sans préférences enregistrées, le parcours s'affiche.
func (s *Service) Active(ctx context.Context, userID string, kind Kind) (bool, error) {
	switch kind {
	case NewUser, FeatureRelease:
	default:
		return false, fmt.Errorf("parcours inconnu: %q", kind)
	}

	prefs, err := s.prefs.Preferences(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("lecture des préférences: %w", err)
	}
	if prefs == nil {
		return true, nil
	}

	if kind == NewUser {
		return !prefs.CompletedOnboarding, nil
	}
	for _, v := range prefs.CompletedFeatureReleases {
		if v == s.appVersion {
			return false, nil
		}
	}
	return true, nil
}

// Complete enregistre la complétion du parcours. Passer un parcours le
// complète aussi : les deux gestes convergent ici.
func (s *Service) Complete(ctx context.Context, userID string, kind Kind) error {
	switch kind {
	case NewUser:
		if err := s.prefs.SetOnboardingCompleted(ctx, userID); err != nil {
			return fmt.Errorf("enregistrement de l'onboarding: %w", err)
		}
		return nil
	case FeatureRelease:
		if s.appVersion == "" {
			return nil
		}
		if err := s.prefs.AddCompletedFeatureRelease(ctx, userID, s.appVersion); err != nil {
			return fmt.Errorf("enregistrement de la version vue: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("parcours inconnu: %q", kind)
	}
}
