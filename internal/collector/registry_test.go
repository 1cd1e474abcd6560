package collector

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExchangeFetcher(t *testing.T) {
	f, err := NewExchangeFetcher("Binance", Options{})
	require.NoError(t, err)
	assert.Equal(t, "binance", f.Name())
	assert.IsType(t, &BinanceFetcher{}, f)

	f, err = NewExchangeFetcher(" upbit ", Options{BaseURL: "http://localhost:1"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:1", f.(*UpbitFetcher).BaseURL)
}

func TestNewExchangeFetcher_Unknown(t *testing.T) {
	_, err := NewExchangeFetcher("mtgox", Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownExchange))
	assert.Contains(t, err.Error(), "binance, upbit")
}

func TestSupportedExchanges(t *testing.T) {
	assert.Equal(t, []Exchange{ExchangeBinance, ExchangeUpbit}, SupportedExchanges())
}
