package dfx

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Routes returns all routes of the user.
func (c *Client) Routes(ctx context.Context) (Routes, error) {
	var routes Routes
	if err := c.get(ctx, routePath, &routes); err != nil {
		return Routes{}, fmt.Errorf("dfx: get routes: %w", err)
	}
	return routes, nil
}

// BuyRoutes lists the user's buy routes.
func (c *Client) BuyRoutes(ctx context.Context) ([]BuyRoute, error) {
	var routes []BuyRoute
	if err := c.get(ctx, buyPath, &routes); err != nil {
		return nil, fmt.Errorf("dfx: get buy routes: %w", err)
	}
	return routes, nil
}

// CreateBuyRoute creates a buy route.
func (c *Client) CreateBuyRoute(ctx context.Context, route BuyRoute) (BuyRoute, error) {
	var out BuyRoute
	if err := c.send(ctx, http.MethodPost, buyPath, route, &out); err != nil {
		return BuyRoute{}, fmt.Errorf("dfx: create buy route: %w", err)
	}
	return out, nil
}

// UpdateBuyRoute stores route under its ID.
func (c *Client) UpdateBuyRoute(ctx context.Context, route BuyRoute) (BuyRoute, error) {
	var out BuyRoute
	if err := c.send(ctx, http.MethodPut, buyPath+"/"+strconv.Itoa(route.ID), route, &out); err != nil {
		return BuyRoute{}, fmt.Errorf("dfx: update buy route %d: %w", route.ID, err)
	}
	return out, nil
}

// BuyPaymentInfo returns the bank transfer details for a purchase.
func (c *Client) BuyPaymentInfo(ctx context.Context, req BuyPaymentInfoRequest) (BuyPaymentInfo, error) {
	var info BuyPaymentInfo
	if err := c.send(ctx, http.MethodPut, buyPath+"/"+paymentInfos, req, &info); err != nil {
		return BuyPaymentInfo{}, fmt.Errorf("dfx: get buy payment info: %w", err)
	}
	return info, nil
}

// SellRoutes lists the user's sell routes.
func (c *Client) SellRoutes(ctx context.Context) ([]SellRoute, error) {
	var routes []SellRoute
	if err := c.get(ctx, sellPath, &routes); err != nil {
		return nil, fmt.Errorf("dfx: get sell routes: %w", err)
	}
	return routes, nil
}

// CreateSellRoute creates a sell route.
func (c *Client) CreateSellRoute(ctx context.Context, data SellData) (SellRoute, error) {
	var out SellRoute
	if err := c.send(ctx, http.MethodPost, sellPath, data, &out); err != nil {
		return SellRoute{}, fmt.Errorf("dfx: create sell route: %w", err)
	}
	return out, nil
}

// UpdateSellRoute stores route under its ID.
func (c *Client) UpdateSellRoute(ctx context.Context, route SellRoute) (SellRoute, error) {
	var out SellRoute
	if err := c.send(ctx, http.MethodPut, sellPath+"/"+strconv.Itoa(route.ID), route, &out); err != nil {
		return SellRoute{}, fmt.Errorf("dfx: update sell route %d: %w", route.ID, err)
	}
	return out, nil
}

// SellPaymentInfo returns the deposit details for a sale.
func (c *Client) SellPaymentInfo(ctx context.Context, req SellPaymentInfoRequest) (SellPaymentInfo, error) {
	var info SellPaymentInfo
	if err := c.send(ctx, http.MethodPut, sellPath+"/"+paymentInfos, req, &info); err != nil {
		return SellPaymentInfo{}, fmt.Errorf("dfx: get sell payment info: %w", err)
	}
	return info, nil
}

// CryptoRoutes lists the user's crypto routes.
func (c *Client) CryptoRoutes(ctx context.Context) ([]CryptoRoute, error) {
	var routes []CryptoRoute
	if err := c.get(ctx, cryptoRoutePath, &routes); err != nil {
		return nil, fmt.Errorf("dfx: get crypto routes: %w", err)
	}
	return routes, nil
}

// CreateCryptoRoute creates a crypto route.
func (c *Client) CreateCryptoRoute(ctx context.Context, route CryptoRoute) (CryptoRoute, error) {
	var out CryptoRoute
	if err := c.send(ctx, http.MethodPost, cryptoRoutePath, route, &out); err != nil {
		return CryptoRoute{}, fmt.Errorf("dfx: create crypto route: %w", err)
	}
	return out, nil
}

// UpdateCryptoRoute stores route under its ID.
func (c *Client) UpdateCryptoRoute(ctx context.Context, route CryptoRoute) (CryptoRoute, error) {
	var out CryptoRoute
	if err := c.send(ctx, http.MethodPut, cryptoRoutePath+"/"+strconv.Itoa(route.ID), route, &out); err != nil {
		return CryptoRoute{}, fmt.Errorf("dfx: update crypto route %d: %w", route.ID, err)
	}
	return out, nil
}

// History returns the transactions of the given types.
func (c *Client) History(ctx context.Context, types ...HistoryType) ([]History, error) {
	var history []History
	if err := c.get(ctx, historyPath+historyQuery(types), &history); err != nil {
		return nil, fmt.Errorf("dfx: get history: %w", err)
	}
	return history, nil
}

// CreateHistoryCSV starts a CSV export of the given types and returns the
// file id.
func (c *Client) CreateHistoryCSV(ctx context.Context, types ...HistoryType) (int, error) {
	var id int
	if err := c.send(ctx, http.MethodPost, historyPath+"/csv"+historyQuery(types), nil, &id); err != nil {
		return 0, fmt.Errorf("dfx: create history csv: %w", err)
	}
	return id, nil
}

// historyQuery encodes types as value-less query flags, e.g. "?buy&sell".
func historyQuery(types []HistoryType) string {
	if len(types) == 0 {
		return ""
	}
	flags := make([]string, len(types))
	for i, t := range types {
		flags[i] = string(t)
	}
	return "?" + strings.Join(flags, "&")
}
