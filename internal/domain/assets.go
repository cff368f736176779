// Package domain contains the core value types shared across modules.
// It has no infrastructure dependencies.
package domain

import (
	"fmt"
	"strings"
)

// Asset identifies one of the tracked assets.
type Asset string

const (
	AssetBTC   Asset = "BTC"
	AssetGold  Asset = "ORO"
	AssetSP500 Asset = "SP500"
)

// yahooSymbols maps each tracked asset to its Yahoo Finance ticker.
// Adding an asset to the universe means adding it here and to assetOrder.
var yahooSymbols = map[Asset]string{
	AssetBTC:   "BTC-USD",
	AssetGold:  "GC=F",
	AssetSP500: "^GSPC",
}

// assetOrder is the canonical display and evaluation order.
var assetOrder = []Asset{AssetBTC, AssetGold, AssetSP500}

// AllAssets returns the tracked asset universe in canonical order.
func AllAssets() []Asset {
	out := make([]Asset, len(assetOrder))
	copy(out, assetOrder)
	return out
}

// YahooSymbol returns the market-source ticker for the asset.
func (a Asset) YahooSymbol() string {
	return yahooSymbols[a]
}

// Valid reports whether the asset is part of the tracked universe.
func (a Asset) Valid() bool {
	_, ok := yahooSymbols[a]
	return ok
}

// ParseAsset validates a user-supplied asset name (case-insensitive).
func ParseAsset(s string) (Asset, error) {
	a := Asset(strings.ToUpper(strings.TrimSpace(s)))
	if !a.Valid() {
		names := make([]string, 0, len(assetOrder))
		for _, asset := range assetOrder {
			names = append(names, string(asset))
		}
		return "", fmt.Errorf("invalid asset %q, must be one of: %s", s, strings.Join(names, ", "))
	}
	return a, nil
}
