package dfx

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/R3E-Network/wallet_layer/internal/announcement"
	"github.com/R3E-Network/wallet_layer/internal/api"
)

const (
	announcementsPath  = "app/announcements"
	flagsPath          = "app/settings/flags"
	advertisementsPath = "app/advertisements"
)

// Advertisement is a promotional banner.
type Advertisement struct {
	ID          string            `json:"id"`
	Image       map[string]string `json:"image,omitempty"`
	URL         map[string]string `json:"url,omitempty"`
	DisplayTime int               `json:"displayTime,omitempty"`
}

// Announcements returns the published announcements.
func (c *Client) Announcements(ctx context.Context) ([]announcement.Data, error) {
	var list []announcement.Data
	if err := c.anonymous(ctx, api.Request{Method: http.MethodGet, Path: announcementsPath}, &list); err != nil {
		return nil, fmt.Errorf("dfx: get announcements: %w", err)
	}
	return list, nil
}

// FeatureFlags returns the published feature flags.
func (c *Client) FeatureFlags(ctx context.Context) ([]announcement.FeatureFlag, error) {
	var flags []announcement.FeatureFlag
	if err := c.anonymous(ctx, api.Request{Method: http.MethodGet, Path: flagsPath}, &flags); err != nil {
		return nil, fmt.Errorf("dfx: get feature flags: %w", err)
	}
	return flags, nil
}

// Advertisement returns the advertisement with id for lang as of date.
func (c *Client) Advertisement(ctx context.Context, id, lang, date string) (Advertisement, error) {
	var ad Advertisement
	req := api.Request{
		Method: http.MethodGet,
		Path:   advertisementsPath,
		Query:  url.Values{"id": {id}, "lang": {lang}, "date": {date}},
	}
	if err := c.anonymous(ctx, req, &ad); err != nil {
		return Advertisement{}, fmt.Errorf("dfx: get advertisement: %w", err)
	}
	return ad, nil
}
