package codec

import (
	"fmt"
	"sort"
	"sync"
)

var (
	encodersMu sync.RWMutex
	encoders   = make(map[string]Encoder)
)

// Register makes enc available under name. Registering a name twice replaces
// the previous encoder.
func Register(name string, enc Encoder) {
	encodersMu.Lock()
	defer encodersMu.Unlock()
	encoders[name] = enc
}

// Lookup returns the encoder registered under name.
func Lookup(name string) (Encoder, error) {
	encodersMu.RLock()
	defer encodersMu.RUnlock()

	enc, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("codec: can't find %s encoder", name)
	}
	return enc, nil
}

// Names lists registered encoder names in sorted order.
func Names() []string {
	encodersMu.RLock()
	defer encodersMu.RUnlock()

	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
