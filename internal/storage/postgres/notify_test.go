// internal/storage/postgres/notify_test.go
package postgres

import (
	"context"
	"testing"
	"time"
)

func TestNotifyHub_BroadcastReachesAllSubscribers(t *testing.T) {
	var hub notifyHub
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := hub.subscribe(ctx)
	b := hub.subscribe(ctx)

	hub.broadcast()

	for name, ch := range map[string]<-chan struct{}{"a": a, "b": b} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Errorf("abonné %s sans signal", name)
		}
	}
}

func TestNotifyHub_BroadcastNeverBlocks(t *testing.T) {
	var hub notifyHub
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := hub.subscribe(ctx)

	// Personne ne lit : les signaux se cumulent en un seul
	hub.broadcast()
	hub.broadcast()
	hub.broadcast()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("signal attendu")
	}
	select {
	case <-ch:
		t.Error("les signaux devraient se cumuler en un seul")
	default:
	}
}

func TestNotifyHub_SubscriberClosedOnCancel(t *testing.T) {
	var hub notifyHub
	ctx, cancel := context.WithCancel(context.Background())

	ch := hub.subscribe(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("signal reçu au lieu d'une fermeture")
		}
	case <-time.After(time.Second):
		t.Fatal("canal jamais fermé après annulation")
	}

	// Un abonné parti ne reçoit plus rien
	hub.broadcast()
}

func TestNotifyHub_StartReportsOnlyOnce(t *testing.T) {
	var hub notifyHub
	if !hub.start() {
		t.Fatal("le premier appel doit lancer le listener")
	}
	if hub.start() {
		t.Error("le listener ne doit être lancé qu'une fois")
	}
}
