package loot

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-loot/internal/errors"
)

// Amount is a value that is either a literal number or a dice expression
// such as "2d6" or "3d4*10". Expressions are evaluated at resolution time.
type Amount struct {
	Literal float64
	Expr    string
}

// Number builds a literal amount
func Number(v float64) *Amount {
	return &Amount{Literal: v}
}

// Expr builds an amount from a dice expression
func Expr(expr string) *Amount {
	return &Amount{Expr: expr}
}

// IsExpr reports whether the amount needs to be rolled
func (a Amount) IsExpr() bool {
	return a.Expr != ""
}

func (a Amount) String() string {
	if a.IsExpr() {
		return a.Expr
	}
	return strconv.FormatFloat(a.Literal, 'f', -1, 64)
}

// UnmarshalJSON accepts a JSON number or string
func (a *Amount) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*a = Amount{Literal: n}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.InvalidArgumentf("amount must be a number or a dice expression, got %s", string(b))
	}
	*a = Amount{Expr: strings.TrimSpace(s)}
	return nil
}

// MarshalJSON writes expressions as strings and literals as numbers
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.IsExpr() {
		return json.Marshal(a.Expr)
	}
	return json.Marshal(a.Literal)
}

// UnmarshalJSON accepts a single tag or a list of tags
func (t *Tags) UnmarshalJSON(b []byte) error {
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		if single == "" {
			*t = nil
			return nil
		}
		*t = Tags{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return errors.InvalidArgumentf("modifier must be a string or a list of strings, got %s", string(b))
	}
	*t = list
	return nil
}

// UnmarshalJSON accepts a numeric bonus or a multiplier string like "2x".
// Unparsable strings degrade to a zero bonus.
func (e *Effect) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*e = Effect{Bonus: n}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.InvalidArgumentf("material effect must be a number or a multiplier, got %s", string(b))
	}
	*e = ParseEffect(s)
	return nil
}

// MarshalJSON writes multipliers back in their "<n>x" form
func (e Effect) MarshalJSON() ([]byte, error) {
	if e.IsMultiplier() {
		return json.Marshal(strconv.FormatFloat(e.Multiplier, 'f', -1, 64) + "x")
	}
	return json.Marshal(e.Bonus)
}

// ParseEffect parses "2x" as a multiplier and "150" as a bonus
func ParseEffect(s string) Effect {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasSuffix(s, "x") {
		m, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "x")), 64)
		if err != nil {
			return Effect{}
		}
		return Effect{Multiplier: m}
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Effect{}
	}
	return Effect{Bonus: n}
}

// UnmarshalJSON decodes an entry object, a set wrapper ({"items": [...]})
// or a bare list of entries, which is also a set.
func (e *Entry) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		members := []Entry{}
		if err := json.Unmarshal(trimmed, &members); err != nil {
			return err
		}
		*e = Entry{Items: members}
		return nil
	}

	type entryAlias Entry
	var raw struct {
		entryAlias
		Value json.RawMessage `json:"value,omitempty"`
	}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	decoded := Entry(raw.entryAlias)
	value := bytes.TrimSpace(raw.Value)
	switch {
	case len(value) == 0 || bytes.Equal(value, []byte("null")):
	case value[0] == '{':
		effects := make(map[string]Effect)
		if err := json.Unmarshal(value, &effects); err != nil {
			return errors.Wrapf(err, "invalid material value for %q", decoded.Name)
		}
		decoded.Effects = effects
	default:
		var amount Amount
		if err := json.Unmarshal(value, &amount); err != nil {
			return errors.Wrapf(err, "invalid value for %q", decoded.Name)
		}
		decoded.Value = &amount
	}

	*e = decoded
	return nil
}

// MarshalJSON is the inverse of UnmarshalJSON; sets are always written in
// the wrapper form.
func (e Entry) MarshalJSON() ([]byte, error) {
	type entryAlias Entry
	out := struct {
		entryAlias
		Value any `json:"value,omitempty"`
	}{entryAlias: entryAlias(e)}

	switch {
	case len(e.Effects) > 0:
		out.Value = e.Effects
	case e.Value != nil:
		out.Value = e.Value
	}

	if e.Items != nil && len(e.Items) == 0 {
		// keep an empty set distinguishable from a leaf
		return json.Marshal(struct {
			entryAlias
			Items []Entry `json:"items"`
		}{entryAlias: entryAlias(e), Items: e.Items})
	}

	return json.Marshal(out)
}

// DecodeTable decodes a table document: a JSON list of entries
func DecodeTable(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed table")
	}
	return entries, nil
}
