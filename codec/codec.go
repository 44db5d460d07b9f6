// Package codec encodes traces and reports before they reach a blob store.
//
// Both codecs emit plain JSON, so a trace written with one decodes with the
// other. Blobs do not record the codec that wrote them.
package codec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCodec is returned by Lookup for names outside Names.
var ErrUnknownCodec = errors.New("codec: unknown codec")

// Codec turns trace and report documents into bytes and back.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used when none is configured.
var Default Codec = GoJSON{}

var registry = []Codec{JSON{}, GoJSON{}}

// Names lists the codec names accepted by Lookup.
func Names() []string {
	names := make([]string, len(registry))
	for i, c := range registry {
		names[i] = c.Name()
	}
	return names
}

// Lookup resolves a codec name as given on the command line.
// The empty name selects Default.
func Lookup(name string) (Codec, error) {
	if name == "" {
		return Default, nil
	}
	for _, c := range registry {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownCodec, name, strings.Join(Names(), ", "))
}

// OrDefault returns c, or Default when c is nil.
func OrDefault(c Codec) Codec {
	if c == nil {
		return Default
	}
	return c
}
