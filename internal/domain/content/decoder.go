package content

import (
	"encoding/json"

	"github.com/lumenworks/galleria-go/internal/domain/navigation"
)

// Decoder rebuilds a typed payload from persisted raw bytes. Rows that no
// longer unmarshal or validate report false and are discarded by the caller.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) Decode(route navigation.Route, raw []byte) (any, bool) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, false
	}

	payload := NewValidator().Validate(route, parsed)
	if payload == nil {
		return nil, false
	}
	return payload, true
}
