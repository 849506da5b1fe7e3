// internal/storage/postgres/preferences.go
package postgres

import (
	"context"
	"fmt"

	"foyer-finance/internal/domain"

	"github.com/jackc/pgx/v5"
)

// === PreferenceStorage ===

func (s *Storage) Preferences(ctx context.Context, userID string) (*domain.Preferences, error) {
	p := domain.Preferences{UserID: userID}
	err := s.db.QueryRow(ctx, `
		SELECT completed_onboarding, COALESCE(completed_feature_releases, '{}')
		FROM user_preferences WHERE user_id = $1
	`, userID).Scan(&p.CompletedOnboarding, &p.CompletedFeatureReleases)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find preferences: %w", err)
	}
	return &p, nil
}

func (s *Storage) SetOnboardingCompleted(ctx context.Context, userID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO user_preferences (user_id, completed_onboarding)
		VALUES ($1, TRUE)
		ON CONFLICT (user_id) DO UPDATE SET completed_onboarding = TRUE
	`, userID)
	if err != nil {
		return fmt.Errorf("set onboarding completed: %w", err)
	}
	return nil
}

func (s *Storage) AddCompletedFeatureRelease(ctx context.Context, userID, version string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO user_preferences (user_id, completed_feature_releases)
		VALUES ($1, ARRAY[$2::text])
		ON CONFLICT (user_id) DO UPDATE
		SET completed_feature_releases = array_append(COALESCE(user_preferences.completed_feature_releases, '{}'), $2)
		WHERE NOT ($2 = ANY(COALESCE(user_preferences.completed_feature_releases, '{}')))
	`, userID, version)
	if err != nil {
		return fmt.Errorf("add completed feature release: %w", err)
	}
	return nil
}
