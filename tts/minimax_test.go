package tts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Shaanadrian1/AuthAudioBot/util/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient("", "key")
	assert.Error(t, err)

	_, err = NewClient("group", "")
	assert.Error(t, err)

	c, err := NewClient("group", "key")
	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL, c.baseURL)
}

func TestGenerateSpeech(t *testing.T) {
	var gotPayload speechPayload
	var gotAuth, gotPath, gotGroup string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotGroup = r.URL.Query().Get("GroupId")
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"base_resp": map[string]any{"status_code": 0},
			"data":      map[string]any{"audio": "https://cdn.example.com/audio.mp3"},
		})
	}))
	defer server.Close()

	c, err := NewClient("g-123", "k-456", WithBaseURL(server.URL))
	require.NoError(t, err)

	url, err := c.GenerateSpeech(context.Background(), SpeechRequest{Text: "hello"})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/audio.mp3", url)
	assert.Equal(t, "/v1/t2a_v2", gotPath)
	assert.Equal(t, "g-123", gotGroup)
	assert.Equal(t, "Bearer k-456", gotAuth)
	assert.Equal(t, "hello", gotPayload.Text)
	assert.Equal(t, DefaultModel, gotPayload.Model)
	assert.Equal(t, "url", gotPayload.OutputFormat)
	assert.Equal(t, DefaultVoiceID, gotPayload.VoiceSetting.VoiceID)
	assert.Equal(t, DefaultSpeed, gotPayload.VoiceSetting.Speed)
	assert.Equal(t, DefaultVolume, gotPayload.VoiceSetting.Vol)
	assert.Equal(t, DefaultPitch, gotPayload.VoiceSetting.Pitch)
}

func TestGenerateSpeechOmitsAutoEmotion(t *testing.T) {
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"base_resp": map[string]any{"status_code": 0},
			"data":      map[string]any{"audio": "https://cdn.example.com/a.mp3"},
		})
	}))
	defer server.Close()

	c, err := NewClient("g", "k", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = c.GenerateSpeech(context.Background(), SpeechRequest{Text: "hi"})
	require.NoError(t, err)

	vs := raw["voice_setting"].(map[string]any)
	_, hasEmotion := vs["emotion"]
	assert.False(t, hasEmotion, "auto emotion must not be sent")

	_, err = c.GenerateSpeech(context.Background(), SpeechRequest{Text: "hi", Emotion: "happy"})
	require.NoError(t, err)

	vs = raw["voice_setting"].(map[string]any)
	assert.Equal(t, "happy", vs["emotion"])
}

func TestGenerateSpeechAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"base_resp": map[string]any{"status_code": 1004, "status_msg": "insufficient balance"},
		})
	}))
	defer server.Close()

	c, err := NewClient("g", "k", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = c.GenerateSpeech(context.Background(), SpeechRequest{Text: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrSpeechAPI))
	assert.Contains(t, err.Error(), "1004")
}

func TestGenerateSpeechHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "server error", http.StatusInternalServerError)
	}))
	defer server.Close()

	c, err := NewClient("g", "k", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = c.GenerateSpeech(context.Background(), SpeechRequest{Text: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrSpeechAPI))
}

func TestDownloadAudio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	c, err := NewClient("g", "k")
	require.NoError(t, err)

	data, err := c.DownloadAudio(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), data)
}

func TestApplyDefaults(t *testing.T) {
	req := SpeechRequest{Text: "x"}
	req.applyDefaults()

	assert.Equal(t, DefaultVoiceID, req.VoiceID)
	assert.Equal(t, DefaultModel, req.Model)
	assert.Equal(t, DefaultSpeed, req.Speed)
	assert.Equal(t, DefaultVolume, req.Volume)
	assert.Equal(t, DefaultPitch, req.Pitch)
	assert.Equal(t, "auto", req.Emotion)

	req = SpeechRequest{Text: "x", VoiceID: "v", Model: "m", Speed: 1.2, Volume: 2, Emotion: "sad"}
	req.applyDefaults()
	assert.Equal(t, "v", req.VoiceID)
	assert.Equal(t, 1.2, req.Speed)
	assert.Equal(t, "sad", req.Emotion)
}
