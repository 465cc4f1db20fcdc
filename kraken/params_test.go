package kraken

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeParamsEmpty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, EncodeParams(nil))
	assert.Empty(t, EncodeParams(Params{}))
}

func TestEncodeParamsStable(t *testing.T) {
	t.Parallel()
	p := Params{"volume": "1.25", "pair": "XBTUSD", "nonce": "1616492376594", "type": "buy", "ordertype": "limit", "price": "37500"}
	want := "nonce=1616492376594&ordertype=limit&pair=XBTUSD&price=37500&type=buy&volume=1.25"
	for i := 0; i < 20; i++ {
		require.Equal(t, want, EncodeParams(p), "encoding must not depend on map iteration order")
	}
}

func TestEncodeParamsEscapesReserved(t *testing.T) {
	t.Parallel()
	got := EncodeParams(Params{"pair": "XBT/USD", "userref": "a b&c=d", "start": "100%"})
	assert.Equal(t, "pair=XBT%2FUSD&start=100%25&userref=a+b%26c%3Dd", got)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()
	cases := []Params{
		{},
		{"nonce": "1"},
		{"pair": "XBTUSD,ETHUSD", "txid": "OQCLML-BW3P3-BUCMWZ"},
		{"weird key": "välue/with?reserved#chars", "empty": "", "plus": "1+1=2"},
	}
	for i, p := range cases {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			// Rebuild the map in a different insertion order.
			shuffled := make(Params, len(p))
			keys := make([]string, 0, len(p))
			for k := range p {
				keys = append(keys, k)
			}
			for j := len(keys) - 1; j >= 0; j-- {
				shuffled[keys[j]] = p[keys[j]]
			}

			decoded, err := DecodeParams(EncodeParams(shuffled))
			require.NoError(t, err)
			assert.Equal(t, p, decoded)
			assert.Equal(t, EncodeParams(p), EncodeParams(shuffled))
		})
	}
}

func TestParamsWithDoesNotMutate(t *testing.T) {
	t.Parallel()
	orig := Params{"pair": "XBTUSD"}
	got := orig.With("nonce", "5").WithList("txid", []string{"A", "B"})
	assert.Equal(t, Params{"pair": "XBTUSD"}, orig)
	assert.Equal(t, Params{"pair": "XBTUSD", "nonce": "5", "txid": "A,B"}, got)

	var nilParams Params
	assert.Equal(t, Params{"pair": "X"}, nilParams.With("pair", "X"))
}
