package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenka/payments/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{name: config.ProviderPesaFlux, want: "pesaflux"},
		{name: config.ProviderDaraja, want: "daraja"},
		{name: config.ProviderSwiftPay, want: "swiftpay"},
		{name: "unknown", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(config.ProviderConfig{Name: tt.name, Timeout: time.Second}, nil, discardLogger())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, client.Name())
		})
	}
}
