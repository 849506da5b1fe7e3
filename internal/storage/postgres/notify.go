// internal/storage/postgres/notify.go
package postgres

import (
	"context"
	"sync"
)

// notifyHub répartit les notifications d'un listener partagé vers ses
// abonnés. Chaque abonné garde un canal, pas une connexion du pool.
type notifyHub struct {
	mu      sync.Mutex
	subs    map[chan struct{}]struct{}
	started bool
}

// subscribe enregistre un abonné et le retire à l'annulation du contexte.
// Le canal est alors fermé pour signaler la fin du flux.
func (h *notifyHub) subscribe(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	if h.subs == nil {
		h.subs = make(map[chan struct{}]struct{})
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}()
	return ch
}

// start indique si l'appelant doit lancer le listener partagé. Un seul
// appel le rapporte, les suivants trouvent le listener déjà en place.
func (h *notifyHub) start() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.started {
		return false
	}
	h.started = true
	return true
}

// broadcast signale tous les abonnés sans bloquer : un re-fetch couvre
// plusieurs notifications.
func (h *notifyHub) broadcast() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
