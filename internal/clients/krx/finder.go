package krx

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/bobmcallan/krxdata/internal/common"
)

const (
	finderStock = "dbms/comm/finder/finder_stkisu"
	finderETF   = "dbms/comm/finder/finder_secuprodisu"
	finderIndex = "dbms/comm/finder/finder_equidx"
)

// security is one finder hit.
type security struct {
	isin  string
	code  string
	name  string
	group string
}

// finderCache remembers ticker lookups and index listings between calls.
type finderCache struct {
	mu      sync.Mutex
	tickers map[string]cachedLookup
	indexes map[string]cachedIndexes
}

type cachedLookup struct {
	sec   security
	found bool
	at    time.Time
}

type cachedIndexes struct {
	hits []security
	at   time.Time
}

func newFinderCache() *finderCache {
	return &finderCache{
		tickers: make(map[string]cachedLookup),
		indexes: make(map[string]cachedIndexes),
	}
}

func (c *Client) find(ctx context.Context, bld string, params url.Values) ([]security, error) {
	rows, err := c.rows(ctx, bld, "block1", params)
	if err != nil {
		return nil, err
	}
	out := make([]security, 0, len(rows))
	for _, r := range rows {
		out = append(out, security{
			isin:  r["full_code"],
			code:  r["short_code"],
			name:  r["codeName"],
			group: r["marketCode"],
		})
	}
	return out, nil
}

// lookup resolves a six digit ticker to its finder entry, trying listed
// stocks first and then exchange traded products.
func (c *Client) lookup(ctx context.Context, ticker string) (security, bool, error) {
	c.cache.mu.Lock()
	hit, ok := c.cache.tickers[ticker]
	c.cache.mu.Unlock()
	if ok && common.IsFresh(hit.at, c.now(), common.FreshnessTicker) {
		return hit.sec, hit.found, nil
	}

	sec, found, err := c.lookupUncached(ctx, ticker)
	if err != nil {
		return security{}, false, err
	}
	c.cache.mu.Lock()
	c.cache.tickers[ticker] = cachedLookup{sec: sec, found: found, at: c.now()}
	c.cache.mu.Unlock()
	return sec, found, nil
}

func (c *Client) lookupUncached(ctx context.Context, ticker string) (security, bool, error) {
	for _, f := range []struct{ bld, mkt string }{
		{finderStock, "ALL"},
		{finderETF, "ETF"},
	} {
		hits, err := c.find(ctx, f.bld, url.Values{
			"mktsel":     {f.mkt},
			"searchText": {ticker},
			"typeNo":     {"0"},
		})
		if err != nil {
			return security{}, false, err
		}
		for _, h := range hits {
			if h.code == ticker {
				return h, true, nil
			}
		}
	}
	return security{}, false, nil
}

// isin returns the ISIN for a ticker, or "" when the ticker is unknown.
func (c *Client) isin(ctx context.Context, ticker string) (string, error) {
	s, ok, err := c.lookup(ctx, ticker)
	if err != nil || !ok {
		return "", err
	}
	return s.isin, nil
}

// indexes lists the finder's index entries for a market group.
func (c *Client) indexes(ctx context.Context, market string) ([]security, error) {
	group := indexMarketCode(market)
	c.cache.mu.Lock()
	hit, ok := c.cache.indexes[group]
	c.cache.mu.Unlock()
	if ok && common.IsFresh(hit.at, c.now(), common.FreshnessIndexList) {
		return hit.hits, nil
	}

	hits, err := c.find(ctx, finderIndex, url.Values{
		"mktsel":     {group},
		"searchText": {""},
	})
	if err != nil {
		return nil, err
	}
	c.cache.mu.Lock()
	c.cache.indexes[group] = cachedIndexes{hits: hits, at: c.now()}
	c.cache.mu.Unlock()
	return hits, nil
}

// splitIndex splits an index ticker such as "1028" into the group and
// code parameters the index screens expect.
func splitIndex(ticker string) (string, string, error) {
	if len(ticker) < 2 {
		return "", "", fmt.Errorf("invalid index ticker: %q", ticker)
	}
	return ticker[:1], ticker[1:], nil
}
