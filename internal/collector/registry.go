package collector

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Exchange identifies a supported crypto exchange.
type Exchange string

const (
	ExchangeBinance Exchange = "binance"
	ExchangeUpbit   Exchange = "upbit"
)

// ErrUnknownExchange is returned for exchange names outside the registry.
var ErrUnknownExchange = errors.New("unknown exchange")

// Constructor builds a Fetcher for one exchange.
type Constructor func(opts Options) Fetcher

var exchanges = map[Exchange]Constructor{
	ExchangeBinance: func(opts Options) Fetcher { return NewBinanceFetcher(opts) },
	ExchangeUpbit:   func(opts Options) Fetcher { return NewUpbitFetcher(opts) },
}

// SupportedExchanges lists the registered exchanges in name order.
func SupportedExchanges() []Exchange {
	out := make([]Exchange, 0, len(exchanges))
	for ex := range exchanges {
		out = append(out, ex)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseExchange resolves a case-insensitive exchange name.
func ParseExchange(name string) (Exchange, error) {
	ex := Exchange(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := exchanges[ex]; !ok {
		names := make([]string, 0, len(exchanges))
		for _, s := range SupportedExchanges() {
			names = append(names, string(s))
		}
		return "", errors.Wrapf(ErrUnknownExchange, "%q (supported: %s)", name, strings.Join(names, ", "))
	}
	return ex, nil
}

// NewExchangeFetcher builds the fetcher registered for name.
func NewExchangeFetcher(name string, opts Options) (Fetcher, error) {
	ex, err := ParseExchange(name)
	if err != nil {
		return nil, err
	}
	return exchanges[ex](opts), nil
}
