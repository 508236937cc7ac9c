package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/castelle/tipcast/config"
	"github.com/castelle/tipcast/logger"
	"golang.org/x/time/rate"
)

const instagramAPIBase = "https://graph.facebook.com/v19.0"

// InstagramClient publishes via the Instagram Graph API. Instagram feed
// posts require media, so PostText is not supported; images go through the
// two-step container flow (create container, then publish it).
type InstagramClient struct {
	accessToken string
	accountID   string
	client      *http.Client
	limiter     *rate.Limiter
}

func NewInstagramClient(cfg config.InstagramConfig) *InstagramClient {
	return &InstagramClient{
		accessToken: cfg.AccessToken,
		accountID:   cfg.AccountID,
		client:      &http.Client{Timeout: PublishTimeout},
		limiter:     rate.NewLimiter(rate.Every(3*time.Second), 2),
	}
}

type graphIDResponse struct {
	ID string `json:"id"`
}

func (c *InstagramClient) postForm(ctx context.Context, path string, params url.Values) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limiter: %v", ErrPublishFailed, err)
	}

	params.Set("access_token", c.accessToken)
	reqURL := fmt.Sprintf("%s/%s?%s", instagramAPIBase, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: instagram returned %d: %s", ErrAuthExpired, resp.StatusCode, body)
	case resp.StatusCode >= 300:
		return "", fmt.Errorf("%w: instagram returned %d: %s", ErrPublishFailed, resp.StatusCode, body)
	}

	var result graphIDResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrPublishFailed, err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("%w: instagram response missing id", ErrPublishFailed)
	}
	return result.ID, nil
}

// PostText is unsupported: Instagram feed posts need media.
func (c *InstagramClient) PostText(ctx context.Context, body string) (string, error) {
	return "", fmt.Errorf("%w: instagram does not support text-only posts", ErrPublishFailed)
}

// PostImage creates a media container for a publicly reachable image URL
// and publishes it with the body as caption. imagePath must be an http(s)
// URL here; Instagram fetches the media itself.
func (c *InstagramClient) PostImage(ctx context.Context, body, imagePath string) (string, error) {
	containerParams := url.Values{}
	containerParams.Set("image_url", imagePath)
	containerParams.Set("caption", body)

	containerID, err := c.postForm(ctx, c.accountID+"/media", containerParams)
	if err != nil {
		return "", err
	}

	publishParams := url.Values{}
	publishParams.Set("creation_id", containerID)

	mediaID, err := c.postForm(ctx, c.accountID+"/media_publish", publishParams)
	if err != nil {
		return "", err
	}

	logger.Logger.Printf("Published Instagram media: %s", mediaID)
	return mediaID, nil
}

// PostReply comments under an earlier media post.
func (c *InstagramClient) PostReply(ctx context.Context, parentPostID, body string) (string, error) {
	params := url.Values{}
	params.Set("message", body)

	commentID, err := c.postForm(ctx, parentPostID+"/comments", params)
	if err != nil {
		return "", err
	}
	logger.Logger.Printf("Posted Instagram comment on %s: %s", parentPostID, commentID)
	return commentID, nil
}
