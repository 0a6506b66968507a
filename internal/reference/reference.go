// Package reference encodes the identity of a local basket or order into the
// custom_id string carried by a PayPal purchase unit, and decodes it back when
// PayPal calls us.
package reference

import (
	"fmt"
	"strings"
)

// Kind tags which local entity a reference points at.
type Kind string

const (
	KindBasket Kind = "basket"
	KindOrder  Kind = "order"
)

const separator = "_"

// Encode builds the reference string for an entity, e.g. "basket_42".
func Encode(kind Kind, id uint) string {
	return fmt.Sprintf("%s%s%d", kind, separator, id)
}

// Decode parses a reference string back into its kind and id. Malformed input
// from the remote side is expected, so every failure reports ok=false rather
// than an error: callers turn it into an invalid-reference response.
func Decode(ref string) (Kind, string, bool) {
	parts := strings.Split(ref, separator)
	if len(parts) != 2 {
		return "", "", false
	}
	kind := Kind(parts[0])
	if kind != KindBasket && kind != KindOrder {
		return "", "", false
	}
	return kind, parts[1], true
}
