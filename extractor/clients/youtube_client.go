package clients

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const youtubeApiBaseUri = "https://www.googleapis.com/youtube/v3"

// Generated with tool: https://mholt.github.io/json-to-go/
type YouTubeVideoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			PublishedAt          string   `json:"publishedAt"`
			ChannelID            string   `json:"channelId"`
			Title                string   `json:"title"`
			Description          string   `json:"description"`
			ChannelTitle         string   `json:"channelTitle"`
			Tags                 []string `json:"tags"`
			DefaultLanguage      string   `json:"defaultLanguage"`
			DefaultAudioLanguage string   `json:"defaultAudioLanguage"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type YouTubeChannelListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"snippet"`
		Statistics struct {
			SubscriberCount       string `json:"subscriberCount"`
			HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
			VideoCount            string `json:"videoCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type youtubeErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// YouTubeApiError preserves the upstream status and the structured reason
// ("quotaExceeded", "keyInvalid", ...) so the adapter can map it onto the
// error taxonomy.
type YouTubeApiError struct {
	StatusCode int
	Reason     string
	Message    string
}

func (e *YouTubeApiError) Error() string {
	return fmt.Sprintf("youtube api %d (%s): %s", e.StatusCode, e.Reason, e.Message)
}

// YouTubeClient is a thin typed wrapper over the Data API v3. The API key
// is supplied per client, not read from global state.
type YouTubeClient struct {
	client *resty.Client
	apiKey string
}

func NewYouTubeClient(apiKey string) *YouTubeClient {
	return &YouTubeClient{
		client: resty.New().SetBaseURL(youtubeApiBaseUri).SetTimeout(DefaultRequestTimeout),
		apiKey: apiKey,
	}
}

// GetVideo fetches snippet and statistics for a single video ID.
func (y *YouTubeClient) GetVideo(ctx context.Context, videoID string) (*YouTubeVideoListResponse, error) {
	res := &YouTubeVideoListResponse{}
	resp, err := y.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part": "snippet,statistics",
			"id":   videoID,
			"key":  y.apiKey,
		}).
		Get("/videos")
	if err != nil {
		return nil, err
	}
	if err := y.checkStatus(resp); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(resp.Body(), res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetChannel fetches snippet and statistics for a channel, used to build
// the original-poster record.
func (y *YouTubeClient) GetChannel(ctx context.Context, channelID string) (*YouTubeChannelListResponse, error) {
	res := &YouTubeChannelListResponse{}
	resp, err := y.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part": "snippet,statistics",
			"id":   channelID,
			"key":  y.apiKey,
		}).
		Get("/channels")
	if err != nil {
		return nil, err
	}
	if err := y.checkStatus(resp); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(resp.Body(), res); err != nil {
		return nil, err
	}
	return res, nil
}

func (y *YouTubeClient) checkStatus(resp *resty.Response) error {
	if resp.StatusCode() < 300 {
		return nil
	}
	apiErr := &YouTubeApiError{StatusCode: resp.StatusCode()}
	parsed := youtubeErrorResponse{}
	if err := json.Unmarshal(resp.Body(), &parsed); err == nil {
		apiErr.Message = parsed.Error.Message
		if len(parsed.Error.Errors) > 0 {
			apiErr.Reason = parsed.Error.Errors[0].Reason
		}
	}
	return apiErr
}

// SetBaseURL overrides the API endpoint, used by tests to point the client
// at a local fixture server.
func (y *YouTubeClient) SetBaseURL(base string) {
	y.client.SetBaseURL(base)
}
