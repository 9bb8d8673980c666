package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.CartStore = (*CartStore)(nil)

// CartStore guarda los carritos en memoria, uno por sesión.
// Cada sesión tiene su propio mutex: las peticiones concurrentes de la misma sesión
// (doble clic en "agregar") se serializan sin bloquear a las demás sesiones.
type CartStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionCart
	ttl      time.Duration
	now      func() time.Time
}

type sessionCart struct {
	mu       sync.Mutex
	cart     *entity.Cart
	lastSeen time.Time
	deleted  bool
}

// NewCartStore construye el store. Un carrito sin uso por más de ttl se descarta; ttl <= 0 = sin expiración.
func NewCartStore(ttl time.Duration) *CartStore {
	return &CartStore{
		sessions: make(map[string]*sessionCart),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Update aplica fn sobre una copia del carrito y solo la guarda si fn no devuelve error.
func (s *CartStore) Update(ctx context.Context, sessionID string, fn func(cart *entity.Cart) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		sc := s.session(sessionID)
		sc.mu.Lock()
		if sc.deleted {
			// Purge la quitó entre session() y Lock(); tomar la nueva.
			sc.mu.Unlock()
			continue
		}
		now := s.now()
		if s.expired(sc, now) {
			sc.cart = &entity.Cart{}
		}
		work := sc.cart.Clone()
		if err := fn(work); err != nil {
			sc.mu.Unlock()
			return err
		}
		sc.cart = work
		sc.lastSeen = now
		sc.mu.Unlock()
		return nil
	}
}

// Delete descarta el carrito de la sesión.
func (s *CartStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	sc, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()
	if ok {
		sc.mu.Lock()
		sc.deleted = true
		sc.mu.Unlock()
	}
	return nil
}

// PurgeExpired elimina los carritos vencidos y devuelve cuántos quitó.
// Las sesiones en uso en ese momento se omiten.
func (s *CartStore) PurgeExpired() int {
	if s.ttl <= 0 {
		return 0
	}
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sc := range s.sessions {
		if !sc.mu.TryLock() {
			continue
		}
		if s.expired(sc, now) {
			sc.deleted = true
			delete(s.sessions, id)
			removed++
		}
		sc.mu.Unlock()
	}
	return removed
}

// Len devuelve la cantidad de sesiones con carrito.
func (s *CartStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *CartStore) session(id string) *sessionCart {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.sessions[id]
	if !ok {
		sc = &sessionCart{cart: &entity.Cart{}, lastSeen: s.now()}
		s.sessions[id] = sc
	}
	return sc
}

func (s *CartStore) expired(sc *sessionCart, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sc.lastSeen) > s.ttl
}
