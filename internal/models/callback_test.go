package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeCallback(t *testing.T, body string) STKCallback {
	t.Helper()
	var envelope CallbackEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	require.NotNil(t, envelope.Body)
	require.NotNil(t, envelope.Body.STKCallback)
	return envelope.Body.STKCallback.Flatten()
}

func TestFlatten_MetadataItems(t *testing.T) {
	cb := decodeCallback(t, `{"Body":{"stkCallback":{
		"CheckoutRequestID":"ws_CO_1","ResultCode":0,"ResultDesc":"ok",
		"CallbackMetadata":{"Item":[
			{"Name":"Amount","Value":1.00},
			{"Name":"MpesaReceiptNumber","Value":"NLJ7RT61SV"},
			{"Name":"PhoneNumber","Value":254708374149}
		]}}}}`)

	assert.Equal(t, "ws_CO_1", cb.CheckoutRequestID)
	require.NotNil(t, cb.Amount)
	assert.Equal(t, "1", cb.Amount.String())
	require.NotNil(t, cb.Receipt)
	assert.Equal(t, "NLJ7RT61SV", *cb.Receipt)
	require.NotNil(t, cb.PhoneNumber)
	assert.Equal(t, "254708374149", *cb.PhoneNumber)
}

func TestFlatten_IgnoresNonPositiveAmount(t *testing.T) {
	for _, value := range []string{`0`, `"0.00"`, `-5`} {
		t.Run(value, func(t *testing.T) {
			cb := decodeCallback(t, `{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_2","ResultCode":0,
				"CallbackMetadata":{"Item":[{"Name":"Amount","Value":`+value+`},{"Name":"MpesaReceiptNumber","Value":"R1"}]}}}}`)

			assert.Nil(t, cb.Amount)
			require.NotNil(t, cb.Receipt, "other items are still read")
		})
	}
}

func TestFlatten_NoMetadata(t *testing.T) {
	cb := decodeCallback(t, `{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_3","ResultCode":1032,"ResultDesc":"Request cancelled by user"}}}`)

	assert.Equal(t, 1032, cb.ResultCode)
	assert.Nil(t, cb.Amount)
	assert.Nil(t, cb.Receipt)
	assert.Nil(t, cb.PhoneNumber)
}
