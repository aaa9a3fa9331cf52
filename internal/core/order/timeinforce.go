package order

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
)

type TimeInForce uint8

const (
	TimeInForceGTC TimeInForce = iota // good till cancel
	TimeInForceIOC                    // immediate or cancel, remainder expires
	TimeInForceFOK                    // fill or kill, fully filled or expired

	timeInForceGTCStr = "GTC"
	timeInForceIOCStr = "IOC"
	timeInForceFOKStr = "FOK"
)

var (
	timeInForceGTCBytes = []byte(`"GTC"`)
	timeInForceIOCBytes = []byte(`"IOC"`)
	timeInForceFOKBytes = []byte(`"FOK"`)
)

func (tif TimeInForce) String() string {
	switch tif {
	case TimeInForceGTC:
		return timeInForceGTCStr
	case TimeInForceIOC:
		return timeInForceIOCStr
	case TimeInForceFOK:
		return timeInForceFOKStr
	}
	panic("invalid timeInForce string conversion " + strconv.Itoa(int(tif)))
}

func (tif TimeInForce) MarshalJSON() ([]byte, error) {
	switch tif {
	case TimeInForceGTC:
		return timeInForceGTCBytes, nil
	case TimeInForceIOC:
		return timeInForceIOCBytes, nil
	case TimeInForceFOK:
		return timeInForceFOKBytes, nil
	}
	return nil, errors.New("invalid timeInForce json conversion: " + strconv.Itoa(int(tif)))
}

func (tif *TimeInForce) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, timeInForceGTCBytes) {
		*tif = TimeInForceGTC
		return nil
	}

	if bytes.Equal(data, timeInForceIOCBytes) {
		*tif = TimeInForceIOC
		return nil
	}

	if bytes.Equal(data, timeInForceFOKBytes) {
		*tif = TimeInForceFOK
		return nil
	}

	return errors.New("unsupported timeInForce: " + string(data))
}

// TimeInForceFromString normalizes case, so "gtc" and "GTC" both parse.
func TimeInForceFromString(value string) (TimeInForce, error) {
	switch strings.ToUpper(value) {
	case timeInForceGTCStr:
		return TimeInForceGTC, nil
	case timeInForceIOCStr:
		return TimeInForceIOC, nil
	case timeInForceFOKStr:
		return TimeInForceFOK, nil
	}
	return 0, errors.New("unsupported timeInForce: " + value)
}
