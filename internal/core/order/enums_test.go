package order_test

import (
	"encoding/json"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfold/futures-bot/internal/core/order"
)

type enumEnvelope struct {
	Side order.Side        `json:"side"`
	Type order.Type        `json:"type"`
	TIF  order.TimeInForce `json:"timeInForce"`
}

func TestEnums_WireStrings(t *testing.T) {
	env := enumEnvelope{Side: order.SideSell, Type: order.TypeStopMarket, TIF: order.TimeInForceFOK}
	want := `{"side":"SELL","type":"STOP_MARKET","timeInForce":"FOK"}`

	val, err := json.Marshal(&env)
	require.NoError(t, err)
	assert.Equal(t, want, string(val))

	// jsoniter must honor the same custom marshalers.
	val, err = jsoniter.Marshal(&env)
	require.NoError(t, err)
	assert.Equal(t, want, string(val))

	var back enumEnvelope
	require.NoError(t, json.Unmarshal([]byte(want), &back))
	assert.Equal(t, env, back)
}

func TestEnums_RejectUnknownWireValues(t *testing.T) {
	var env enumEnvelope
	err := json.Unmarshal([]byte(`{"side":"SHORT"}`), &env)
	assert.ErrorContains(t, err, "unsupported order side")

	_, err = json.Marshal(&enumEnvelope{Side: order.Side(8)})
	assert.ErrorContains(t, err, "invalid order side json conversion: 8")
}

func TestEnums_FromStringIsCaseInsensitive(t *testing.T) {
	side, err := order.SideFromString("sell")
	require.NoError(t, err)
	assert.Equal(t, order.SideSell, side)

	typ, err := order.TypeFromString("stop_market")
	require.NoError(t, err)
	assert.Equal(t, order.TypeStopMarket, typ)

	tif, err := order.TimeInForceFromString("ioc")
	require.NoError(t, err)
	assert.Equal(t, order.TimeInForceIOC, tif)

	_, err = order.TimeInForceFromString("GTD")
	assert.Error(t, err)
}
