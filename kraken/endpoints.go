package kraken

import "context"

// Public endpoints.

func (c *Client) ServerTime(ctx context.Context, cb Callback) {
	c.Call(ctx, "Time", nil, Public, cb)
}

func (c *Client) SystemStatus(ctx context.Context, cb Callback) {
	c.Call(ctx, "SystemStatus", nil, Public, cb)
}

func (c *Client) Assets(ctx context.Context, opts Params, cb Callback) {
	c.Call(ctx, "Assets", opts, Public, cb)
}

func (c *Client) AssetPairs(ctx context.Context, opts Params, cb Callback) {
	c.Call(ctx, "AssetPairs", opts, Public, cb)
}

func (c *Client) Ticker(ctx context.Context, pairs []string, opts Params, cb Callback) {
	c.Call(ctx, "Ticker", opts.WithList("pair", pairs), Public, cb)
}

// OrderBook queries the Depth endpoint.
func (c *Client) OrderBook(ctx context.Context, pairs []string, opts Params, cb Callback) {
	c.Call(ctx, "Depth", opts.WithList("pair", pairs), Public, cb)
}

func (c *Client) Trades(ctx context.Context, pairs []string, opts Params, cb Callback) {
	c.Call(ctx, "Trades", opts.WithList("pair", pairs), Public, cb)
}

func (c *Client) Spread(ctx context.Context, pairs []string, opts Params, cb Callback) {
	c.Call(ctx, "Spread", opts.WithList("pair", pairs), Public, cb)
}

func (c *Client) OHLC(ctx context.Context, pairs []string, opts Params, cb Callback) {
	c.Call(ctx, "OHLC", opts.WithList("pair", pairs), Public, cb)
}

// Private endpoints.

func (c *Client) Balance(ctx context.Context, opts Params, cb Callback) {
	c.Call(ctx, "Balance", opts, Private, cb)
}

func (c *Client) TradeBalance(ctx context.Context, opts Params, cb Callback) {
	c.Call(ctx, "TradeBalance", opts, Private, cb)
}

func (c *Client) OpenOrders(ctx context.Context, opts Params, cb Callback) {
	c.Call(ctx, "OpenOrders", opts, Private, cb)
}

func (c *Client) ClosedOrders(ctx context.Context, opts Params, cb Callback) {
	c.Call(ctx, "ClosedOrders", opts, Private, cb)
}

func (c *Client) QueryOrders(ctx context.Context, txids []string, opts Params, cb Callback) {
	c.Call(ctx, "QueryOrders", opts.WithList("txid", txids), Private, cb)
}

func (c *Client) TradesHistory(ctx context.Context, opts Params, cb Callback) {
	c.Call(ctx, "TradesHistory", opts, Private, cb)
}

func (c *Client) QueryTrades(ctx context.Context, txids []string, opts Params, cb Callback) {
	c.Call(ctx, "QueryTrades", opts.WithList("txid", txids), Private, cb)
}

func (c *Client) OpenPositions(ctx context.Context, txids []string, opts Params, cb Callback) {
	c.Call(ctx, "OpenPositions", opts.WithList("txid", txids), Private, cb)
}

func (c *Client) Ledgers(ctx context.Context, opts Params, cb Callback) {
	c.Call(ctx, "Ledgers", opts, Private, cb)
}

func (c *Client) QueryLedgers(ctx context.Context, ids []string, opts Params, cb Callback) {
	c.Call(ctx, "QueryLedgers", opts.WithList("id", ids), Private, cb)
}

func (c *Client) TradeVolume(ctx context.Context, pairs []string, opts Params, cb Callback) {
	c.Call(ctx, "TradeVolume", opts.WithList("pair", pairs), Private, cb)
}

// CancelOrder cancels the given orders. Other options are not forwarded.
func (c *Client) CancelOrder(ctx context.Context, txids []string, cb Callback) {
	c.Call(ctx, "CancelOrder", Params{}.WithList("txid", txids), Private, cb)
}
