package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// SearchAlbum returns the best album match for a free-text query, or
// ErrNotFound when nothing matches.
func (c *Client) SearchAlbum(ctx context.Context, query string) (*Album, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "album")
	params.Set("market", c.market)
	params.Set("limit", "1")

	body, err := c.get(ctx, "/search", params)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	if len(result.Albums.Items) == 0 {
		return nil, ErrNotFound
	}

	album := result.Albums.Items[0]
	return &album, nil
}

// AlbumLink returns the public Spotify URL for the best match of
// "title artist", or ErrNotFound when nothing matches or the match carries
// no public URL.
func (c *Client) AlbumLink(ctx context.Context, title, artist string) (string, error) {
	album, err := c.SearchAlbum(ctx, fmt.Sprintf("%s %s", title, artist))
	if err != nil {
		return "", err
	}

	link := album.Link()
	if link == "" {
		return "", ErrNotFound
	}

	return link, nil
}
