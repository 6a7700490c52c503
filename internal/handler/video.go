package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"voicedeck/internal/domain/services"
	"voicedeck/internal/httputil"
)

// maxUploadMemory caps how much of a multipart upload is buffered in memory
// before spilling to disk.
const maxUploadMemory = 32 << 20

// VideoHandler handles video HTTP requests
type VideoHandler struct {
	videoService services.VideoService
	logger       *slog.Logger
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(videoService services.VideoService, logger *slog.Logger) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		logger:       logger,
	}
}

// Upload receives a multipart media upload and creates the video record.
// The file goes in the "file" part; an optional "duration_seconds" field
// carries the client-measured duration.
// POST /api/videos
func (h *VideoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "file part is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	req := &services.UploadVideoRequest{
		UserID:   userID,
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Data:     data,
	}

	if raw := r.FormValue("duration_seconds"); raw != "" {
		duration, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "duration_seconds must be a number")
			return
		}
		req.DurationSeconds = &duration
	}

	video, err := h.videoService.Upload(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, video)
}

// Transcribe runs the transcription pipeline for one video
// POST /api/videos/{id}/transcribe
func (h *VideoHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "video")
	if !ok {
		return
	}

	video, err := h.videoService.Transcribe(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, video)
}

// GetVideo retrieves a video by ID
// GET /api/videos/{id}
func (h *VideoHandler) GetVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "video")
	if !ok {
		return
	}

	video, err := h.videoService.GetVideo(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, video)
}

// ListVideos retrieves the user's videos, optionally filtered by project
// GET /api/videos?project_id={id}
func (h *VideoHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	projectID := r.URL.Query().Get("project_id")

	videos, err := h.videoService.ListVideos(r.Context(), userID, projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, videos)
}

// UpdateVideo reassigns a video to another project or patches its metadata
// PATCH /api/videos/{id}
func (h *VideoHandler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "video")
	if !ok {
		return
	}

	var req services.UpdateVideoRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	video, err := h.videoService.UpdateVideo(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, video)
}

// DeleteVideo deletes a video and its stored media
// DELETE /api/videos/{id}
func (h *VideoHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "video")
	if !ok {
		return
	}

	if err := h.videoService.DeleteVideo(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
