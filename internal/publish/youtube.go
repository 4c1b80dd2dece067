package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	youtubeUploadURL = "https://www.googleapis.com/upload/youtube/v3/videos"

	// Education category.
	youtubeCategoryID = "27"
	youtubePlatform   = "youtube"
)

var youtubeScopes = []string{
	"https://www.googleapis.com/auth/youtube.upload",
}

type YouTubePublisher struct {
	auth *YouTubeAuth
}

// YouTubeAuth holds the OAuth flow state and the on-disk token cache.
type YouTubeAuth struct {
	config    *oauth2.Config
	token     *oauth2.Token
	tokenPath string
}

type youtubeUploadResponse struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

type videoSnippet struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	CategoryID  string   `json:"categoryId"`
}

type videoStatus struct {
	PrivacyStatus string `json:"privacyStatus"`
}

type videoMetadata struct {
	Snippet videoSnippet `json:"snippet"`
	Status  videoStatus  `json:"status"`
}

func NewYouTubeAuth(clientID, clientSecret, tokenPath, redirectURL string) *YouTubeAuth {
	return &YouTubeAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       youtubeScopes,
			RedirectURL:  redirectURL,
		},
		tokenPath: tokenPath,
	}
}

func NewYouTubePublisher(auth *YouTubeAuth) *YouTubePublisher {
	return &YouTubePublisher{auth: auth}
}

func (p *YouTubePublisher) Platform() string {
	return youtubePlatform
}

func (p *YouTubePublisher) Auth() *YouTubeAuth {
	return p.auth
}

func (p *YouTubePublisher) Publish(ctx context.Context, req Request) (*Response, error) {
	httpClient, err := p.auth.Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth client: %w", err)
	}

	metadata := videoMetadata{
		Snippet: videoSnippet{
			Title:       req.Title,
			Description: req.Description,
			Tags:        req.Tags,
			CategoryID:  youtubeCategoryID,
		},
		Status: videoStatus{
			PrivacyStatus: req.Privacy,
		},
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	videoFile, err := os.Open(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open video file: %w", err)
	}
	defer func() { _ = videoFile.Close() }()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	metadataPart, err := writer.CreateFormField("snippet")
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata part: %w", err)
	}
	if _, err := metadataPart.Write(metadataJSON); err != nil {
		return nil, fmt.Errorf("failed to write metadata: %w", err)
	}

	videoPart, err := writer.CreateFormFile("file", filepath.Base(req.FilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to create video part: %w", err)
	}
	if _, err := io.Copy(videoPart, videoFile); err != nil {
		return nil, fmt.Errorf("failed to copy video: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	url := fmt.Sprintf("%s?uploadType=multipart&part=snippet,status", youtubeUploadURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to upload video: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upload failed: %s", string(respBody))
	}

	var uploadResp youtubeUploadResponse
	if err := json.Unmarshal(respBody, &uploadResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &Response{
		ID:       uploadResp.ID,
		URL:      fmt.Sprintf("https://youtube.com/watch?v=%s", uploadResp.ID),
		Platform: youtubePlatform,
	}, nil
}

func (a *YouTubeAuth) LoadToken() error {
	data, err := os.ReadFile(a.tokenPath)
	if err != nil {
		return fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return fmt.Errorf("failed to parse token: %w", err)
	}

	a.token = &token
	return nil
}

func (a *YouTubeAuth) SaveToken() error {
	data, err := json.MarshalIndent(a.token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(a.tokenPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (a *YouTubeAuth) GetAuthURL() string {
	return a.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
}

func (a *YouTubeAuth) Exchange(ctx context.Context, code string) error {
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange code: %w", err)
	}

	a.token = token
	return a.SaveToken()
}

func (a *YouTubeAuth) Client(ctx context.Context) (*http.Client, error) {
	if a.token == nil {
		if err := a.LoadToken(); err != nil {
			return nil, err
		}
	}
	return a.config.Client(ctx, a.token), nil
}

func (a *YouTubeAuth) IsAuthenticated() bool {
	if a.token == nil {
		if err := a.LoadToken(); err != nil {
			return false
		}
	}
	return a.token != nil && a.token.Valid()
}
