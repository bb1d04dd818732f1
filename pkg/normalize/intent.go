package normalize

import (
	"fmt"

	"github.com/goliatone/go-payeeform/pkg/model"
)

// Intent is a single field edit expressed as a message instead of a setter
// closure: the UI layer emits intents, the reducer owns the state.
type Intent struct {
	Path  string
	Value any
}

// SetField builds an intent for the given dotted field path.
func SetField(path string, value any) Intent {
	return Intent{Path: path, Value: value}
}

// Apply runs the intents against a copy of state through the typed lens
// table, then normalizes the result with the original state as prev. The
// input state is returned unchanged when any intent fails.
func (n *Normalizer) Apply(state model.FormState, intents ...Intent) (model.FormState, error) {
	next := state
	for _, intent := range intents {
		lens, ok := model.LensFor(intent.Path)
		if !ok {
			return state, fmt.Errorf("normalize: unknown field path %q", intent.Path)
		}
		if err := lens.Set(&next, intent.Value); err != nil {
			return state, fmt.Errorf("normalize: apply %q: %w", intent.Path, err)
		}
	}
	return n.Normalize(next, &state), nil
}
