// Package tts talks to the MiniMax speech API and post-processes the audio
// into Telegram-ready OGG/Opus voice notes.
package tts

const (
	// DefaultVoiceID is the built-in voice used until a preference is set.
	DefaultVoiceID = "moss_audio_4d4208c8-b67d-11f0-afaf-868268514f62"

	// DefaultModel is the speech model requested when none is configured.
	DefaultModel = "speech-2.6-turbo"

	DefaultSpeed  = 0.9
	DefaultVolume = 1.6
	DefaultPitch  = 0
)

// SpeechRequest carries one text-to-speech generation request.
type SpeechRequest struct {
	Text    string
	VoiceID string
	Model   string
	Speed   float64
	Volume  float64
	Pitch   int
	Emotion string
}

// SpeechResult is the finished voice note.
type SpeechResult struct {
	Audio      []byte
	Format     string
	Codec      string
	SampleRate int
	Channels   int
}

func (r *SpeechRequest) applyDefaults() {
	if r.VoiceID == "" {
		r.VoiceID = DefaultVoiceID
	}
	if r.Model == "" {
		r.Model = DefaultModel
	}
	if r.Speed == 0 {
		r.Speed = DefaultSpeed
	}
	if r.Volume == 0 {
		r.Volume = DefaultVolume
	}
	if r.Emotion == "" {
		r.Emotion = "auto"
	}
}
