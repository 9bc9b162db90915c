package mapbridge

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	ErrMalformedMessage = errors.New("malformed map message")
	ErrUnknownMessage   = errors.New("unknown map message type")
)

// Inbound is a message posted by the renderer back to the host.
type Inbound struct {
	Type    MessageType
	StoreID string
}

func ParseInbound(data []byte) (Inbound, error) {
	if !gjson.ValidBytes(data) {
		return Inbound{}, ErrMalformedMessage
	}

	kind := gjson.GetBytes(data, "type")
	if kind.Type != gjson.String {
		return Inbound{}, fmt.Errorf("%w: missing type", ErrMalformedMessage)
	}

	switch MessageType(kind.String()) {
	case TypeReady:
		return Inbound{Type: TypeReady}, nil
	case TypeStoreSelected:
		storeID := gjson.GetBytes(data, "storeId")
		if !storeID.Exists() || storeID.String() == "" {
			return Inbound{}, fmt.Errorf("%w: storeSelected without storeId", ErrMalformedMessage)
		}
		return Inbound{Type: TypeStoreSelected, StoreID: storeID.String()}, nil
	default:
		return Inbound{}, fmt.Errorf("%w: %q", ErrUnknownMessage, kind.String())
	}
}
