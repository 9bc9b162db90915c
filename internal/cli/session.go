package cli

import (
	"sync"

	"shop_companion/internal/cart"
	"shop_companion/internal/nearby"

	"go.uber.org/zap"
)

// Session holds what a screen would keep in state: the current cart snapshot,
// the user location and the last nearby-store listing. Snapshots are replaced
// wholesale; the map server callbacks read them from another goroutine.
type Session struct {
	mu       sync.Mutex
	cart     cart.Cart
	origin   nearby.Point
	listings []nearby.Listing
	logger   *zap.Logger
}

func NewSession(origin nearby.Point, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		origin: origin,
		logger: logger,
	}
}

func (s *Session) Cart() cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

func (s *Session) ReplaceCart(c cart.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = c
	s.logger.Debug("cart replaced", zap.Int("stores", len(c)))
}

// Apply swaps the cart for fn(cart) and returns both snapshots.
func (s *Session) Apply(fn func(cart.Cart) cart.Cart) (before, after cart.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before = s.cart
	s.cart = fn(before)
	return before, s.cart
}

func (s *Session) Origin() nearby.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.origin
}

func (s *Session) SetOrigin(p nearby.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.origin = p
}

func (s *Session) Listings() []nearby.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listings
}

func (s *Session) SetListings(listings []nearby.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = listings
}

func (s *Session) FindListing(storeID string) (nearby.Listing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listings {
		if l.Store.ID == storeID {
			return l, true
		}
	}
	return nearby.Listing{}, false
}
