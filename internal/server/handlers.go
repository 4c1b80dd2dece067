package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"neetstudio/internal/app"
	"neetstudio/internal/overlay"
	"neetstudio/internal/script"
	"neetstudio/internal/tutorial"
	"neetstudio/internal/video"
)

// Number accepts both JSON numbers and numeric strings. The editing frontend
// sends form values for the trim window and preview size, so "1.5" and 1.5
// must both parse. Unparsable values become 0 rather than failing the bind;
// a bad preview dimension must fall through to the normalizer's defaulting,
// never block the sync.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Number(v)
	return nil
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func (s *Server) handleErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tutorial.ErrNotFound):
		fail(c, http.StatusNotFound, "Tutorial not found")
	case errors.Is(err, video.ErrSyncInProgress):
		fail(c, http.StatusConflict, "Sync already in progress")
	case errors.Is(err, video.ErrMissingInput),
		errors.Is(err, app.ErrNotSynced),
		errors.Is(err, app.ErrUnknownPlatform):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrPublishUnavailable):
		fail(c, http.StatusServiceUnavailable, err.Error())
	default:
		fail(c, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) uploadScreen(c *gin.Context) {
	file, err := c.FormFile("screenVideo")
	if err != nil {
		fail(c, http.StatusBadRequest, "No video file uploaded")
		return
	}

	f, err := file.Open()
	if err != nil {
		s.handleErr(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	meta, err := s.service.CreateTutorial(c.PostForm("title"), f)
	if err != nil {
		s.handleErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tutorial": meta})
}

func (s *Server) getTutorial(c *gin.Context) {
	meta, err := s.service.Get(c.Param("id"))
	if err != nil {
		s.handleErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tutorial": meta})
}

func (s *Server) generateScript(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	scr, mock, err := s.service.GenerateScript(c.Request.Context(), req.ID)
	if err != nil {
		s.handleErr(c, err)
		return
	}

	resp := gin.H{"success": true, "script": scr.Segments}
	if mock {
		resp["note"] = "Mock Data (API Key Missing)"
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) generateVoice(c *gin.Context) {
	var req struct {
		ID          string           `json:"id"`
		ScriptLines []script.Segment `json:"scriptLines"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	mode, err := s.service.GenerateVoice(c.Request.Context(), req.ID, req.ScriptLines)
	if err != nil {
		s.handleErr(c, err)
		return
	}

	message := "AI Voice generated successfully!"
	if mode == tutorial.VoiceModeMock {
		message = "Mock Voice Generated (Sine Tone)"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "voiceMode": mode})
}

func (s *Server) uploadVoice(c *gin.Context) {
	id := c.PostForm("id")
	file, err := c.FormFile("voiceAudio")
	if err != nil {
		fail(c, http.StatusBadRequest, "No audio file uploaded")
		return
	}

	f, err := file.Open()
	if err != nil {
		s.handleErr(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	if err := s.service.UploadVoice(id, f); err != nil {
		s.handleErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Voice uploaded successfully"})
}

func (s *Server) uploadOverlay(c *gin.Context) {
	id := c.PostForm("id")
	file, err := c.FormFile("overlayImage")
	if err != nil {
		fail(c, http.StatusBadRequest, "No image file uploaded")
		return
	}

	f, err := file.Open()
	if err != nil {
		s.handleErr(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	name, err := s.service.UploadOverlay(id, file.Filename, f)
	if err != nil {
		s.handleErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "fileName": name})
}

type syncRequest struct {
	ID            string          `json:"id"`
	Overlays      json.RawMessage `json:"overlays"`
	TrimStart     Number          `json:"trimStart"`
	TrimEnd       Number          `json:"trimEnd"`
	PreviewWidth  Number          `json:"previewWidth"`
	PreviewHeight Number          `json:"previewHeight"`
}

func (s *Server) sync(c *gin.Context) {
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	// Overlays arrive as loose JSON; a malformed list means no overlays,
	// not a failed sync.
	var raws []overlay.Raw
	if len(req.Overlays) > 0 {
		if err := json.Unmarshal(req.Overlays, &raws); err != nil {
			raws = nil
		}
	}

	result, err := s.service.Sync(c.Request.Context(), app.SyncParams{
		ID:            req.ID,
		Overlays:      raws,
		TrimStart:     float64(req.TrimStart),
		TrimEnd:       float64(req.TrimEnd),
		PreviewWidth:  float64(req.PreviewWidth),
		PreviewHeight: float64(req.PreviewHeight),
	})
	if err != nil {
		s.handleErr(c, err)
		return
	}

	resp := gin.H{
		"success":  true,
		"message":  "Video synced successfully!",
		"finalUrl": result.URL,
	}
	if len(result.SkippedOverlays) > 0 {
		resp["skippedOverlays"] = result.SkippedOverlays
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) publish(c *gin.Context) {
	var req struct {
		ID       string `json:"id"`
		Platform string `json:"platform"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.service.Publish(c.Request.Context(), req.ID, req.Platform)
	if err != nil {
		s.handleErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"videoId":  resp.ID,
		"url":      resp.URL,
		"platform": resp.Platform,
	})
}
