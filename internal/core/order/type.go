package order

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
)

type Type uint8

const (
	TypeMarket Type = iota
	TypeLimit
	TypeStopMarket

	typeMarketStr     = "MARKET"
	typeLimitStr      = "LIMIT"
	typeStopMarketStr = "STOP_MARKET"
)

var (
	typeMarketByte     = []byte(`"MARKET"`)
	typeLimitByte      = []byte(`"LIMIT"`)
	typeStopMarketByte = []byte(`"STOP_MARKET"`)
)

func (t Type) String() string {
	switch t {
	case TypeMarket:
		return typeMarketStr
	case TypeLimit:
		return typeLimitStr
	case TypeStopMarket:
		return typeStopMarketStr
	}
	panic("invalid order type string conversion " + strconv.Itoa(int(t)))
}

func (t Type) MarshalJSON() ([]byte, error) {
	switch t {
	case TypeMarket:
		return typeMarketByte, nil
	case TypeLimit:
		return typeLimitByte, nil
	case TypeStopMarket:
		return typeStopMarketByte, nil
	}
	return nil, errors.New("invalid order type json conversion: " + strconv.Itoa(int(t)))
}

func (t *Type) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, typeMarketByte) {
		*t = TypeMarket
		return nil
	}

	if bytes.Equal(data, typeLimitByte) {
		*t = TypeLimit
		return nil
	}

	if bytes.Equal(data, typeStopMarketByte) {
		*t = TypeStopMarket
		return nil
	}

	return errors.New("unsupported order type: " + string(data))
}

// TypeFromString normalizes case, so "market" and "MARKET" both parse.
func TypeFromString(value string) (Type, error) {
	switch strings.ToUpper(value) {
	case typeMarketStr:
		return TypeMarket, nil
	case typeLimitStr:
		return TypeLimit, nil
	case typeStopMarketStr:
		return TypeStopMarket, nil
	}
	return 0, errors.New("unsupported order type: " + value)
}
