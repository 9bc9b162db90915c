package mapbridge

import (
	"errors"
	"fmt"
	"strings"
)

type Transport int

const (
	// TransportNativeChannel posts the encoded message through the embedded
	// content's message channel, which buffers until a listener attaches.
	TransportNativeChannel Transport = iota
	// TransportScriptInjection evaluates a script in the page that hands the
	// message to the renderer, or queues it if the renderer is not ready yet.
	TransportScriptInjection
)

var ErrUnknownTransport = errors.New("unknown map transport")

func ParseTransport(value string) (Transport, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "native":
		return TransportNativeChannel, nil
	case "script":
		return TransportScriptInjection, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTransport, value)
	}
}

func (t Transport) String() string {
	switch t {
	case TransportNativeChannel:
		return "native"
	case TransportScriptInjection:
		return "script"
	default:
		return "unknown"
	}
}

// Handle is the live reference to the embedded content.
type Handle interface {
	InjectJavaScript(script string) error
	PostMessage(data string) error
}

const (
	rendererHandler = "window.handleHostMessage"
	rendererQueue   = "window.pendingHostMessages"
)

// InjectionScript wraps an encoded message so it reaches the renderer handler
// whether or not the page has finished loading. The trailing "true;" keeps
// the evaluating web view from complaining about a non-serialisable result.
func InjectionScript(encoded []byte) string {
	var b strings.Builder
	b.WriteString("(function () {\n")
	b.WriteString("  try {\n")
	b.WriteString("    var message = ")
	b.Write(encoded)
	b.WriteString(";\n")
	b.WriteString("    if (typeof " + rendererHandler + " === 'function') {\n")
	b.WriteString("      " + rendererHandler + "(message);\n")
	b.WriteString("    } else {\n")
	b.WriteString("      " + rendererQueue + " = " + rendererQueue + " || [];\n")
	b.WriteString("      " + rendererQueue + ".push(message);\n")
	b.WriteString("    }\n")
	b.WriteString("  } catch (e) {\n")
	b.WriteString("    console.error('map bridge: failed to deliver message', e);\n")
	b.WriteString("  }\n")
	b.WriteString("})();\n")
	b.WriteString("true;\n")
	return b.String()
}
