package order

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
)

type Side uint8

const (
	SideBuy Side = iota
	SideSell

	sideBuyStr  = "BUY"
	sideSellStr = "SELL"
)

var (
	sideBuyByte  = []byte(`"BUY"`)
	sideSellByte = []byte(`"SELL"`)
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return sideBuyStr
	case SideSell:
		return sideSellStr
	}
	panic("invalid order side string conversion " + strconv.Itoa(int(s)))
}

func (s Side) MarshalJSON() ([]byte, error) {
	switch s {
	case SideBuy:
		return sideBuyByte, nil
	case SideSell:
		return sideSellByte, nil
	}
	return nil, errors.New("invalid order side json conversion: " + strconv.Itoa(int(s)))
}

func (s *Side) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, sideBuyByte) {
		*s = SideBuy
		return nil
	}

	if bytes.Equal(data, sideSellByte) {
		*s = SideSell
		return nil
	}

	return errors.New("unsupported order side: " + string(data))
}

// SideFromString normalizes case, so "buy" and "BUY" both parse.
func SideFromString(value string) (Side, error) {
	switch strings.ToUpper(value) {
	case sideBuyStr:
		return SideBuy, nil
	case sideSellStr:
		return SideSell, nil
	}
	return 0, errors.New("unsupported order side: " + value)
}
