package main

import (
	"context"

	"krakenrest/kraken"
)

type endpointCall func(ctx context.Context, c *kraken.Client, args []string, opts kraken.Params, cb kraken.Callback) error

type endpointCommand struct {
	name    string
	usage   string
	args    string
	minArgs int
	private bool
	call    endpointCall
}

// withArgs folds positional arguments into opts under key.
func withArgs(opts kraken.Params, key string, args []string) kraken.Params {
	if len(args) == 0 {
		return opts
	}
	return opts.WithList(key, args)
}

func plain(fn func(*kraken.Client, context.Context, kraken.Params, kraken.Callback)) endpointCall {
	return func(ctx context.Context, c *kraken.Client, _ []string, opts kraken.Params, cb kraken.Callback) error {
		fn(c, ctx, opts, cb)
		return nil
	}
}

func listed(fn func(*kraken.Client, context.Context, []string, kraken.Params, kraken.Callback)) endpointCall {
	return func(ctx context.Context, c *kraken.Client, args []string, opts kraken.Params, cb kraken.Callback) error {
		fn(c, ctx, args, opts, cb)
		return nil
	}
}

func endpointCommands() []endpointCommand {
	return []endpointCommand{
		{name: "time", usage: "server time", call: func(ctx context.Context, c *kraken.Client, _ []string, _ kraken.Params, cb kraken.Callback) error {
			c.ServerTime(ctx, cb)
			return nil
		}},
		{name: "status", usage: "system status", call: func(ctx context.Context, c *kraken.Client, _ []string, _ kraken.Params, cb kraken.Callback) error {
			c.SystemStatus(ctx, cb)
			return nil
		}},
		{name: "assets", usage: "asset info", args: "[asset...]", call: func(ctx context.Context, c *kraken.Client, args []string, opts kraken.Params, cb kraken.Callback) error {
			c.Assets(ctx, withArgs(opts, "asset", args), cb)
			return nil
		}},
		{name: "asset-pairs", usage: "tradable asset pairs", args: "[pair...]", call: func(ctx context.Context, c *kraken.Client, args []string, opts kraken.Params, cb kraken.Callback) error {
			c.AssetPairs(ctx, withArgs(opts, "pair", args), cb)
			return nil
		}},
		{name: "ticker", usage: "ticker information", args: "pair...", minArgs: 1, call: listed((*kraken.Client).Ticker)},
		{name: "depth", usage: "order book", args: "pair...", minArgs: 1, call: listed((*kraken.Client).OrderBook)},
		{name: "trades", usage: "recent trades", args: "pair...", minArgs: 1, call: listed((*kraken.Client).Trades)},
		{name: "spread", usage: "recent spread data", args: "pair...", minArgs: 1, call: listed((*kraken.Client).Spread)},
		{name: "ohlc", usage: "OHLC data", args: "pair...", minArgs: 1, call: listed((*kraken.Client).OHLC)},

		{name: "balance", usage: "account balance", private: true, call: plain((*kraken.Client).Balance)},
		{name: "trade-balance", usage: "trade balance", private: true, call: plain((*kraken.Client).TradeBalance)},
		{name: "open-orders", usage: "open orders", private: true, call: plain((*kraken.Client).OpenOrders)},
		{name: "closed-orders", usage: "closed orders", private: true, call: plain((*kraken.Client).ClosedOrders)},
		{name: "query-orders", usage: "query orders by txid", args: "txid...", minArgs: 1, private: true, call: listed((*kraken.Client).QueryOrders)},
		{name: "trades-history", usage: "trades history", private: true, call: plain((*kraken.Client).TradesHistory)},
		{name: "query-trades", usage: "query trades by txid", args: "txid...", minArgs: 1, private: true, call: listed((*kraken.Client).QueryTrades)},
		{name: "open-positions", usage: "open positions", args: "[txid...]", private: true, call: listed((*kraken.Client).OpenPositions)},
		{name: "ledgers", usage: "ledger entries", private: true, call: plain((*kraken.Client).Ledgers)},
		{name: "query-ledgers", usage: "query ledger entries by id", args: "id...", minArgs: 1, private: true, call: listed((*kraken.Client).QueryLedgers)},
		{name: "trade-volume", usage: "trade volume and fees", args: "[pair...]", private: true, call: listed((*kraken.Client).TradeVolume)},
		{name: "add-order", usage: "place an order", args: "[pair type ordertype volume]", private: true, call: addOrder},
		{name: "cancel-order", usage: "cancel orders", args: "txid...", minArgs: 1, private: true, call: func(ctx context.Context, c *kraken.Client, args []string, _ kraken.Params, cb kraken.Callback) error {
			c.CancelOrder(ctx, args, cb)
			return nil
		}},
	}
}

// addOrder maps positional arguments onto the required order fields; --opt
// supplies the rest (price, leverage, validate, ...).
func addOrder(ctx context.Context, c *kraken.Client, args []string, opts kraken.Params, cb kraken.Callback) error {
	opts = opts.Clone()
	for i, a := range args {
		if i >= len(kraken.OrderRequiredParams) {
			break
		}
		opts[kraken.OrderRequiredParams[i]] = a
	}
	return c.AddOrder(ctx, opts, cb)
}
