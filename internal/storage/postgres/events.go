// internal/storage/postgres/events.go
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"foyer-finance/internal/domain"
)

// === EventStorage ===

func (s *Storage) CreateEvent(ctx context.Context, ev domain.Event) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO events
			(title, description, location, start_date, end_date, start_time,
			 frequency, created_by, organization_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, ev.Title, ev.Description, ev.Location, ev.StartDate, ev.EndDate, nullable(ev.StartTime),
		ev.Frequency, ev.CreatedBy, ev.OrganizationID).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}

	for _, p := range ev.Participants {
		if err := s.AddParticipant(ctx, id, p.ID); err != nil {
			return "", err
		}
	}
	return id, nil
}

func (s *Storage) UpdateEvent(ctx context.Context, ev domain.Event) error {
	result, err := s.db.Exec(ctx, `
		UPDATE events
		SET title = $1, description = $2, location = $3, start_date = $4,
			end_date = $5, start_time = $6, frequency = $7
		WHERE id = $8 AND organization_id = $9
	`, ev.Title, ev.Description, ev.Location, ev.StartDate, ev.EndDate, nullable(ev.StartTime),
		ev.Frequency, ev.ID, ev.OrganizationID)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %q not found", ev.ID)
	}
	return nil
}

func (s *Storage) DeleteEvent(ctx context.Context, orgID, id string) error {
	result, err := s.db.Exec(ctx, `
		DELETE FROM events WHERE id = $1 AND organization_id = $2
	`, id, orgID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %q not found", id)
	}
	return nil
}

func (s *Storage) EventsByOrganization(ctx context.Context, orgID string) ([]domain.Event, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, COALESCE(description, ''), COALESCE(location, ''),
			start_date, end_date, COALESCE(to_char(start_time, 'HH24:MI'), ''), frequency, created_by, organization_id
		FROM events
		WHERE organization_id = $1
		ORDER BY start_date, id
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var ev domain.Event
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Location,
			&ev.StartDate, &ev.EndDate, &ev.StartTime, &ev.Frequency, &ev.CreatedBy, &ev.OrganizationID); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("events rows: %w", err)
	}

	for i := range events {
		participants, err := s.eventParticipants(ctx, events[i].ID)
		if err != nil {
			return nil, err
		}
		events[i].Participants = participants
	}
	return events, nil
}

func (s *Storage) eventParticipants(ctx context.Context, eventID string) ([]domain.User, error) {
	rows, err := s.db.Query(ctx, `
		SELECT u.id, u.name, COALESCE(u.avatar, '')
		FROM event_participants ep
		JOIN users u ON u.id = ep.user_id
		WHERE ep.event_id = $1
		ORDER BY u.name
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("query participants: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Avatar); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Storage) AddParticipant(ctx context.Context, eventID, userID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO event_participants (event_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`, eventID, userID)
	if err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	return nil
}

func (s *Storage) RemoveParticipant(ctx context.Context, eventID, userID string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM event_participants WHERE event_id = $1 AND user_id = $2
	`, eventID, userID)
	if err != nil {
		return fmt.Errorf("remove participant: %w", err)
	}
	return nil
}

// WatchEvents s'abonne au canal NOTIFY alimenté par le trigger de la table
// events. Tous les abonnés partagent une seule connexion d'écoute : le
// nombre de flux ouverts ne pèse pas sur le pool.
func (s *Storage) WatchEvents(ctx context.Context) (<-chan struct{}, error) {
	ch := s.events.subscribe(ctx)
	if s.events.start() {
		go s.listenEvents()
	}
	return ch, nil
}

func (s *Storage) listenEvents() {
	ctx := context.Background()
	for {
		if err := s.waitForEvents(ctx); err != nil {
			slog.Error("events notification listener interrupted", "error", err)
			time.Sleep(5 * time.Second)
		}
	}
}

func (s *Storage) waitForEvents(ctx context.Context) error {
	conn, err := s.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN events_changed"); err != nil {
		return fmt.Errorf("listen events_changed: %w", err)
	}

	for {
		if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		s.events.broadcast()
	}
}
