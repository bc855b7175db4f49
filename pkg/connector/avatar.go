// Copyright 2024-2026 Aiku AI

package connector

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"maunium.net/go/mautrix/bridgev2"
	"maunium.net/go/mautrix/bridgev2/networkid"
)

// avatarDownloader fetches avatar images from the WeChat CDN.
type avatarDownloader struct {
	client *resty.Client
}

func newAvatarDownloader(timeout time.Duration) *avatarDownloader {
	return &avatarDownloader{
		client: resty.New().SetTimeout(timeout),
	}
}

func (d *avatarDownloader) download(ctx context.Context, url string) ([]byte, error) {
	resp, err := d.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download avatar: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to download avatar: HTTP %d", resp.StatusCode())
	}
	return resp.Body(), nil
}

// avatar returns a lazily downloaded avatar keyed by its URL, or nil when
// there is no URL.
func (d *avatarDownloader) avatar(url string) *bridgev2.Avatar {
	if url == "" {
		return nil
	}
	return &bridgev2.Avatar{
		ID: networkid.AvatarID(url),
		Get: func(ctx context.Context) ([]byte, error) {
			return d.download(ctx, url)
		},
	}
}
