package tutorial

import "path/filepath"

const (
	ScreenFile  = "screen.webm"
	VoiceFile   = "voice.mp3"
	FinalFile   = "final.mp4"
	ScriptFile  = "script.json"
	metaFile    = "meta.json"
	overlaysDir = "overlays"
)

// Paths holds the canonical on-disk locations for one tutorial. Deriving them
// is a naming convention only; nothing here checks that the files exist.
type Paths struct {
	Dir      string
	Screen   string
	Voice    string
	Final    string
	Script   string
	Meta     string
	Overlays string
}

func PathsFor(root, id string) Paths {
	dir := filepath.Join(root, id)
	return Paths{
		Dir:      dir,
		Screen:   filepath.Join(dir, ScreenFile),
		Voice:    filepath.Join(dir, VoiceFile),
		Final:    filepath.Join(dir, FinalFile),
		Script:   filepath.Join(dir, ScriptFile),
		Meta:     filepath.Join(dir, metaFile),
		Overlays: filepath.Join(dir, overlaysDir),
	}
}
