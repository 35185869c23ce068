package record

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrTypeMismatch = errors.New("record: literal does not fit column type")
	ErrValueTooLong = errors.New("record: value exceeds column length")
)

// Coerce converts one literal token into the Go value stored for a column of
// type t:
//
//	Char255 -> string (quoted 'text' with '' escapes, or a bare token)
//	IntN    -> intN   (base-10, optional leading '-')
//	UintN   -> uintN  (base-10 digits only)
//
// Id values are never supplied by callers, so ColID always mismatches.
func Coerce(t ColumnType, literal string) (any, error) {
	switch t {
	case ColChar255:
		s, err := Unquote(literal)
		if err != nil {
			return nil, err
		}
		if len(s) > MaxCharLen {
			return nil, ErrValueTooLong
		}
		return s, nil

	case ColInt8, ColInt16, ColInt32, ColInt64:
		if !isDecimal(literal, true) {
			return nil, ErrTypeMismatch
		}
		n, err := strconv.ParseInt(literal, 10, t.BitSize())
		if err != nil {
			return nil, ErrTypeMismatch
		}
		switch t {
		case ColInt8:
			return int8(n), nil
		case ColInt16:
			return int16(n), nil
		case ColInt32:
			return int32(n), nil
		default:
			return n, nil
		}

	case ColUint8, ColUint16, ColUint32, ColUint64:
		if !isDecimal(literal, false) {
			return nil, ErrTypeMismatch
		}
		n, err := strconv.ParseUint(literal, 10, t.BitSize())
		if err != nil {
			return nil, ErrTypeMismatch
		}
		switch t {
		case ColUint8:
			return uint8(n), nil
		case ColUint16:
			return uint16(n), nil
		case ColUint32:
			return uint32(n), nil
		default:
			return n, nil
		}
	}
	return nil, ErrTypeMismatch
}

// isDecimal accepts [0-9]+, with one leading '-' when signed is set.
func isDecimal(s string, signed bool) bool {
	if signed && strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Unquote strips a single-quoted literal, turning '' into '. Bare tokens
// are returned unchanged.
func Unquote(lit string) (string, error) {
	if !strings.HasPrefix(lit, "'") {
		return lit, nil
	}
	if len(lit) < 2 || !strings.HasSuffix(lit, "'") {
		return "", ErrTypeMismatch
	}
	body := lit[1 : len(lit)-1]
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		if body[i] == '\'' {
			// only a doubled quote may appear inside
			if i+1 >= len(body) || body[i+1] != '\'' {
				return "", ErrTypeMismatch
			}
			i++
		}
		b.WriteByte(body[i])
	}
	return b.String(), nil
}
