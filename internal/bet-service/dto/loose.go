package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Loose aceita string, número ou null no JSON e guarda o texto bruto.
// A normalização fica com o núcleo do ledger, não com o decoder.
type Loose string

func (l *Loose) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*l = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Loose(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*l = Loose(n.String())
	return nil
}

func (l Loose) String() string { return string(l) }

// ptr converte o campo opcional de uma edição
func ptr(l *Loose) *string {
	if l == nil {
		return nil
	}
	s := string(*l)
	return &s
}
