// Package mapbridge sends map instructions from the host into an embedded web
// map renderer. Every message is a complete, self-contained instruction.
package mapbridge

import (
	"encoding/json"
	"fmt"
)

type MessageType string

const (
	TypeInit                 MessageType = "init"
	TypeUserLocation         MessageType = "userLocation"
	TypeUserLocationWithZoom MessageType = "userLocationWithZoom"
	TypeMapNavigation        MessageType = "mapNavigation"
	TypeAddStores            MessageType = "addStores"
	TypeClearMarkers         MessageType = "clearMarkers"
	TypeClearAllMarkers      MessageType = "clearAllMarkers"
	TypeHighlightStore       MessageType = "highlightStore"

	// Sent by the renderer once its handler is installed.
	TypeReady MessageType = "ready"
	// Sent by the renderer when a store marker is tapped.
	TypeStoreSelected MessageType = "storeSelected"
)

const (
	DefaultUserZoom       = 3
	DefaultNavigationZoom = 2
)

// Message is implemented only by the outbound variants declared in this file.
type Message interface {
	Type() MessageType
	isMessage()
}

// StoreMarker describes one marker; the renderer owns how it is drawn.
type StoreMarker struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
	Distance  string  `json:"distance,omitempty"`
}

type Init struct{}

type UserLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type UserLocationWithZoom struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
}

type MapNavigation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
}

type AddStores struct {
	Stores []StoreMarker `json:"stores"`
}

type ClearMarkers struct{}

type ClearAllMarkers struct{}

type HighlightStore struct {
	StoreID string `json:"storeId"`
}

func (Init) Type() MessageType                 { return TypeInit }
func (UserLocation) Type() MessageType         { return TypeUserLocation }
func (UserLocationWithZoom) Type() MessageType { return TypeUserLocationWithZoom }
func (MapNavigation) Type() MessageType        { return TypeMapNavigation }
func (AddStores) Type() MessageType            { return TypeAddStores }
func (ClearMarkers) Type() MessageType         { return TypeClearMarkers }
func (ClearAllMarkers) Type() MessageType      { return TypeClearAllMarkers }
func (HighlightStore) Type() MessageType       { return TypeHighlightStore }

func (Init) isMessage()                 {}
func (UserLocation) isMessage()         {}
func (UserLocationWithZoom) isMessage() {}
func (MapNavigation) isMessage()        {}
func (AddStores) isMessage()            {}
func (ClearMarkers) isMessage()         {}
func (ClearAllMarkers) isMessage()      {}
func (HighlightStore) isMessage()       {}

// Encode renders msg as a JSON object whose "type" field names the variant.
func Encode(msg Message) ([]byte, error) {
	if msg == nil {
		return nil, fmt.Errorf("encode map message: nil message")
	}

	var payload any
	switch m := msg.(type) {
	case UserLocation:
		payload = struct {
			Type MessageType `json:"type"`
			UserLocation
		}{m.Type(), m}
	case UserLocationWithZoom:
		payload = struct {
			Type MessageType `json:"type"`
			UserLocationWithZoom
		}{m.Type(), m}
	case MapNavigation:
		payload = struct {
			Type MessageType `json:"type"`
			MapNavigation
		}{m.Type(), m}
	case AddStores:
		if m.Stores == nil {
			m.Stores = []StoreMarker{}
		}
		payload = struct {
			Type MessageType `json:"type"`
			AddStores
		}{m.Type(), m}
	case HighlightStore:
		payload = struct {
			Type MessageType `json:"type"`
			HighlightStore
		}{m.Type(), m}
	default:
		payload = struct {
			Type MessageType `json:"type"`
		}{msg.Type()}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s message: %w", msg.Type(), err)
	}
	return data, nil
}
