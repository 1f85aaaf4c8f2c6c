package checklist

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// State maps an item or sub-item id to its checked flag. A missing id is unchecked.
// Ids are not checked against any catalog: unknown ids are kept and simply never counted.
type State map[string]bool

func (s State) Checked(id string) bool {
	return s[id]
}

func (s State) Clone() State {
	c := make(State, len(s))
	for id, v := range s {
		c[id] = v
	}
	return c
}

// Encode serializes the state into the blob stored by gateways.
func (s State) Encode() (string, error) {
	if s == nil {
		s = State{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", errors.Wrap(err, "encoding checklist state")
	}
	return string(b), nil
}

// Decode parses a stored blob. A JSON null yields an empty state.
// Anything but an object of booleans is an error.
func Decode(blob string) (State, error) {
	var s State
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		return nil, errors.Wrap(err, "decoding checklist state")
	}
	if s == nil {
		s = State{}
	}
	return s, nil
}
