// Package assist normalizes voice-assistant commands into validated
// intents and applies them to the progress engine.
package assist

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Parse errors. Both are recoverable: an invalid quantity drops the
// command, it never fails the system.
var (
	ErrOutOfRange  = errors.New("quantity out of range")
	ErrUnparseable = errors.New("quantity not recognised")
)

// numberWords is the closed vocabulary the assistant dictates with:
// 1-20 individually (with the grammatical variants the recogniser
// emits) plus the tens 30, 40 and 50.
var numberWords = map[string]int{
	"один": 1, "одну": 1, "одна": 1,
	"два": 2, "две": 2,
	"три":          3,
	"четыре":       4,
	"пять":         5,
	"шесть":        6,
	"семь":         7,
	"восемь":       8,
	"девять":       9,
	"десять":       10,
	"одиннадцать":  11,
	"двенадцать":   12,
	"тринадцать":   13,
	"четырнадцать": 14,
	"пятнадцать":   15,
	"шестнадцать":  16,
	"семнадцать":   17,
	"восемнадцать": 18,
	"девятнадцать": 19,
	"двадцать":     20,
	"тридцать":     30,
	"сорок":        40,
	"пятьдесят":    50,
}

// wordToNumber resolves a one- or two-word quantity. Two-word forms
// must be tens-then-ones where the first word is an exact multiple of
// ten ("двадцать пять" = 25). Returns false for anything else.
func wordToNumber(s string) (int, bool) {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	switch len(words) {
	case 1:
		n, ok := numberWords[words[0]]
		return n, ok
	case 2:
		tens, okT := numberWords[words[0]]
		ones, okO := numberWords[words[1]]
		if okT && okO && tens%10 == 0 {
			return tens + ones, true
		}
	}
	return 0, false
}

// ParseQuantityString parses a spoken or typed quantity: digits first,
// then the number-word vocabulary.
func ParseQuantityString(s string) (int, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		if n <= 0 {
			return 0, ErrOutOfRange
		}
		return n, nil
	}
	n, ok := wordToNumber(s)
	if !ok {
		return 0, ErrUnparseable
	}
	if n <= 0 {
		return 0, ErrOutOfRange
	}
	return n, nil
}

// ParseQuantity parses a raw JSON value that may arrive as a number or
// a string. Numbers must be finite positive integers; strings go
// through ParseQuantityString.
func ParseQuantity(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, ErrUnparseable
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, ErrOutOfRange
		}
		if f <= 0 {
			return 0, ErrOutOfRange
		}
		return int(f), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseQuantityString(s)
	}
	return 0, ErrUnparseable
}
