package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Shaanadrian1/AuthAudioBot/config"
	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/util/common"

	"github.com/google/uuid"
)

const defaultBaseURL = "https://api.minimaxi.chat"

// Client is a MiniMax t2a_v2 API client.
type Client struct {
	groupID    string
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(groupID, apiKey string, opts ...ClientOption) (*Client, error) {
	if groupID == "" || apiKey == "" {
		return nil, common.NewError("minimax group id and api key are required")
	}
	c := &Client{
		groupID: groupID,
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type voiceSetting struct {
	VoiceID string  `json:"voice_id"`
	Speed   float64 `json:"speed"`
	Vol     float64 `json:"vol"`
	Pitch   int     `json:"pitch"`
	Emotion string  `json:"emotion,omitempty"`
}

type speechPayload struct {
	Model        string       `json:"model"`
	Text         string       `json:"text"`
	OutputFormat string       `json:"output_format"`
	VoiceSetting voiceSetting `json:"voice_setting"`
}

type baseResp struct {
	StatusCode int    `json:"status_code"`
	StatusMsg  string `json:"status_msg"`
}

type speechResponse struct {
	BaseResp baseResp `json:"base_resp"`
	Data     struct {
		Audio string `json:"audio"`
	} `json:"data"`
}

// GenerateSpeech submits the request and returns the URL of the rendered
// MP3. The emotion "auto" is not forwarded, the API picks one itself then.
func (c *Client) GenerateSpeech(ctx context.Context, req SpeechRequest) (string, error) {
	req.applyDefaults()

	payload := speechPayload{
		Model:        req.Model,
		Text:         req.Text,
		OutputFormat: "url",
		VoiceSetting: voiceSetting{
			VoiceID: req.VoiceID,
			Speed:   req.Speed,
			Vol:     req.Volume,
			Pitch:   req.Pitch,
		},
	}
	if req.Emotion != "auto" {
		payload.VoiceSetting.Emotion = req.Emotion
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1/t2a_v2?GroupId=%s", c.baseURL, c.groupID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", common.Wrapf("tts.GenerateSpeech", common.ErrSpeechAPI, "request: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		errText, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Errorf("minimax API error: status %d: %s", resp.StatusCode, string(errText))
		return "", common.Wrapf("tts.GenerateSpeech", common.ErrSpeechAPI, "status %d", resp.StatusCode)
	}

	var speechResp speechResponse
	if err := json.NewDecoder(resp.Body).Decode(&speechResp); err != nil {
		return "", common.Wrapf("tts.GenerateSpeech", common.ErrSpeechAPI, "decode: %v", err)
	}

	if speechResp.BaseResp.StatusCode != 0 {
		return "", common.Wrapf("tts.GenerateSpeech", common.ErrSpeechAPI,
			"minimax error %d: %s", speechResp.BaseResp.StatusCode, speechResp.BaseResp.StatusMsg)
	}

	if speechResp.Data.Audio == "" {
		return "", common.Wrapf("tts.GenerateSpeech", common.ErrSpeechAPI, "no audio URL in response")
	}

	return speechResp.Data.Audio, nil
}

// DownloadAudio fetches the rendered audio from the URL the API returned.
func (c *Client) DownloadAudio(ctx context.Context, audioURL string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, common.Wrapf("tts.DownloadAudio", common.ErrSpeechAPI, "request: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, common.Wrapf("tts.DownloadAudio", common.ErrSpeechAPI, "status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// Generate runs the full pipeline: render, download, convert to OGG/Opus.
func (c *Client) Generate(ctx context.Context, req SpeechRequest) (*SpeechResult, error) {
	audioURL, err := c.GenerateSpeech(ctx, req)
	if err != nil {
		return nil, err
	}

	mp3Data, err := c.DownloadAudio(ctx, audioURL)
	if err != nil {
		return nil, err
	}

	convertCtx, cancel := context.WithTimeout(ctx, config.ConvertTimeout)
	oggData, err := ConvertToOpus(convertCtx, mp3Data)
	cancel()
	if err != nil {
		return nil, err
	}

	return &SpeechResult{
		Audio:      oggData,
		Format:     "ogg",
		Codec:      "libopus",
		SampleRate: 48000,
		Channels:   1,
	}, nil
}
