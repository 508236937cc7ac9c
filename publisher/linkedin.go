package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/castelle/tipcast/config"
	"github.com/castelle/tipcast/logger"
	"github.com/castelle/tipcast/utils"
	"golang.org/x/time/rate"
)

const linkedinAPIBase = "https://api.linkedin.com/v2"

// LinkedInClient publishes via the LinkedIn UGC and social-actions APIs.
// A valid bearer token in the config is a precondition; the client never
// refreshes tokens itself.
type LinkedInClient struct {
	accessToken string
	personURN   string
	client      *http.Client
	limiter     *rate.Limiter
}

func NewLinkedInClient(cfg config.LinkedInConfig) *LinkedInClient {
	return &LinkedInClient{
		accessToken: cfg.AccessToken,
		personURN:   fmt.Sprintf("urn:li:person:%s", cfg.PersonID),
		client:      &http.Client{Timeout: PublishTimeout},
		limiter:     rate.NewLimiter(rate.Every(3*time.Second), 2),
	}
}

func (c *LinkedInClient) addHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")
}

func (c *LinkedInClient) doJSON(ctx context.Context, method, url string, payload any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", ErrPublishFailed, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encoding request: %v", ErrPublishFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	c.addHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: linkedin returned %d: %s", ErrAuthExpired, resp.StatusCode, respBody)
	case resp.StatusCode >= 300:
		return fmt.Errorf("%w: linkedin returned %d: %s", ErrPublishFailed, resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", ErrPublishFailed, err)
		}
	}
	return nil
}

type ugcPostResponse struct {
	ID string `json:"id"`
}

func (c *LinkedInClient) sharePayload(body string) map[string]any {
	return map[string]any{
		"author":         c.personURN,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": map[string]any{
				"shareCommentary":    map[string]any{"text": body},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]any{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}
}

// PostText publishes a text share and returns the UGC post urn.
func (c *LinkedInClient) PostText(ctx context.Context, body string) (string, error) {
	var resp ugcPostResponse
	if err := c.doJSON(ctx, http.MethodPost, linkedinAPIBase+"/ugcPosts", c.sharePayload(body), &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("%w: linkedin response missing post id", ErrPublishFailed)
	}
	logger.Logger.Printf("Posted to LinkedIn: %s", resp.ID)
	return resp.ID, nil
}

type registerUploadResponse struct {
	Value struct {
		Asset           string `json:"asset"`
		UploadMechanism struct {
			Request struct {
				UploadURL string `json:"uploadUrl"`
			} `json:"com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest"`
		} `json:"uploadMechanism"`
	} `json:"value"`
}

// PostImage registers an upload, PUTs the image bytes, then publishes an
// IMAGE share referencing the uploaded asset.
func (c *LinkedInClient) PostImage(ctx context.Context, body, imagePath string) (string, error) {
	registerPayload := map[string]any{
		"registerUploadRequest": map[string]any{
			"recipes": []string{"urn:li:digitalmediaRecipe:feedshare-image"},
			"owner":   c.personURN,
			"serviceRelationships": []map[string]any{
				{
					"relationshipType": "OWNER",
					"identifier":       "urn:li:userGeneratedContent",
				},
			},
		},
	}

	var register registerUploadResponse
	if err := c.doJSON(ctx, http.MethodPost, linkedinAPIBase+"/assets?action=registerUpload", registerPayload, &register); err != nil {
		return "", err
	}
	uploadURL := register.Value.UploadMechanism.Request.UploadURL
	if uploadURL == "" || register.Value.Asset == "" {
		return "", fmt.Errorf("%w: linkedin upload registration incomplete", ErrPublishFailed)
	}

	contentType, err := utils.ImageContentType(imagePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("%w: reading image %s: %v", ErrPublishFailed, imagePath, err)
	}

	uploadReq, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(imageData))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	uploadReq.Header.Set("Content-Type", contentType)
	uploadReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	uploadResp, err := c.client.Do(uploadReq)
	if err != nil {
		return "", fmt.Errorf("%w: uploading image: %v", ErrPublishFailed, err)
	}
	uploadResp.Body.Close()
	if uploadResp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: image upload returned %d", ErrPublishFailed, uploadResp.StatusCode)
	}

	payload := c.sharePayload(body)
	payload["specificContent"] = map[string]any{
		"com.linkedin.ugc.ShareContent": map[string]any{
			"shareCommentary":    map[string]any{"text": body},
			"shareMediaCategory": "IMAGE",
			"media": []map[string]any{
				{
					"status":      "READY",
					"description": map[string]any{"text": "Developer tip image"},
					"media":       register.Value.Asset,
				},
			},
		},
	}

	var resp ugcPostResponse
	if err := c.doJSON(ctx, http.MethodPost, linkedinAPIBase+"/ugcPosts", payload, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("%w: linkedin response missing post id", ErrPublishFailed)
	}
	logger.Logger.Printf("Posted image share to LinkedIn: %s", resp.ID)
	return resp.ID, nil
}

// PostReply publishes a comment under an earlier post via the social
// actions API.
func (c *LinkedInClient) PostReply(ctx context.Context, parentPostID, body string) (string, error) {
	payload := map[string]any{
		"actor":   c.personURN,
		"message": map[string]any{"text": body},
	}

	var resp ugcPostResponse
	url := fmt.Sprintf("%s/socialActions/%s/comments", linkedinAPIBase, parentPostID)
	if err := c.doJSON(ctx, http.MethodPost, url, payload, &resp); err != nil {
		return "", err
	}
	logger.Logger.Printf("Posted comment on %s: %s", parentPostID, resp.ID)
	return resp.ID, nil
}
