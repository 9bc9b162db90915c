package mapbridge

import (
	"sync"

	"go.uber.org/zap"
)

// Bridge delivers messages to whichever renderer handle is currently
// attached. Sends without a handle are dropped; delivery failures are logged
// and never returned, so map commands can fire from any point of the screen
// lifecycle.
type Bridge struct {
	mu        sync.Mutex
	handle    Handle
	transport Transport
	logger    *zap.Logger
}

func NewBridge(transport Transport, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{
		transport: transport,
		logger:    logger.Named("mapbridge"),
	}
}

func (b *Bridge) Transport() Transport {
	return b.transport
}

// Attach makes h the live handle, replacing any previous one.
func (b *Bridge) Attach(h Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handle = h
}

// Detach clears the live handle, but only if it is still h. A stale detach
// from a replaced renderer must not drop the newer one.
func (b *Bridge) Detach(h Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handle == h {
		b.handle = nil
	}
}

func (b *Bridge) Attached() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.handle != nil
}

// Send encodes msg and hands it to the live handle using the configured
// transport.
func (b *Bridge) Send(msg Message) {
	b.mu.Lock()
	handle := b.handle
	b.mu.Unlock()

	if handle == nil {
		b.logger.Debug("no renderer attached; message dropped", zap.String("type", typeOf(msg)))
		return
	}

	encoded, err := Encode(msg)
	if err != nil {
		b.logger.Warn("encode map message", zap.Error(err))
		return
	}

	switch b.transport {
	case TransportScriptInjection:
		err = handle.InjectJavaScript(InjectionScript(encoded))
	default:
		err = handle.PostMessage(string(encoded))
	}
	if err != nil {
		b.logger.Warn("deliver map message",
			zap.String("type", typeOf(msg)),
			zap.Stringer("transport", b.transport),
			zap.Error(err),
		)
		return
	}

	b.logger.Debug("map message sent",
		zap.String("type", typeOf(msg)),
		zap.Stringer("transport", b.transport),
	)
}

func (b *Bridge) Init() {
	b.Send(Init{})
}

func (b *Bridge) SetUserLocation(latitude, longitude float64) {
	b.Send(UserLocation{Latitude: latitude, Longitude: longitude})
}

// SetUserLocationWithZoom places the user marker and zooms; zoom <= 0 means
// DefaultUserZoom.
func (b *Bridge) SetUserLocationWithZoom(latitude, longitude float64, zoom int) {
	if zoom <= 0 {
		zoom = DefaultUserZoom
	}
	b.Send(UserLocationWithZoom{Latitude: latitude, Longitude: longitude, Zoom: zoom})
}

// MoveMapToLocation pans the viewport; zoom <= 0 means DefaultNavigationZoom.
func (b *Bridge) MoveMapToLocation(latitude, longitude float64, zoom int) {
	if zoom <= 0 {
		zoom = DefaultNavigationZoom
	}
	b.Send(MapNavigation{Latitude: latitude, Longitude: longitude, Zoom: zoom})
}

// AddStoreMarkers sends nothing at all for an empty list.
func (b *Bridge) AddStoreMarkers(stores []StoreMarker) {
	if len(stores) == 0 {
		return
	}
	b.Send(AddStores{Stores: stores})
}

func (b *Bridge) ClearMarkers() {
	b.Send(ClearMarkers{})
}

func (b *Bridge) ClearAllMarkers() {
	b.Send(ClearAllMarkers{})
}

func (b *Bridge) HighlightStoreMarker(storeID string) {
	b.Send(HighlightStore{StoreID: storeID})
}

func typeOf(msg Message) string {
	if msg == nil {
		return ""
	}
	return string(msg.Type())
}
