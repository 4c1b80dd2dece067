package tutorial

import "time"

// Status tracks how far a tutorial has moved through the pipeline. Transitions
// only advance; no stage ever moves a tutorial backwards.
type Status string

const (
	StatusScreenUploaded Status = "SCREEN_UPLOADED"
	StatusScriptReady    Status = "SCRIPT_READY"
	StatusVoiceReady     Status = "VOICE_READY"
	StatusSynced         Status = "SYNCED"
)

// VoiceMode records where the narration track came from.
type VoiceMode string

const (
	VoiceModeAI     VoiceMode = "AI"
	VoiceModeManual VoiceMode = "MANUAL"
	VoiceModeMock   VoiceMode = "MOCK"
)

// Metadata is the per-tutorial meta.json record. FinalURL is only present
// after a successful sync.
type Metadata struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	Status    Status    `json:"status"`
	VoiceMode VoiceMode `json:"voiceMode"`
	FinalURL  string    `json:"finalUrl,omitempty"`
}
