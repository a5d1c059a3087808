package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/mpvremote/mpvremote/constant"
	"github.com/mpvremote/mpvremote/log"
	"github.com/mpvremote/mpvremote/session"
)

// maxUploadMemory is the part of a multipart upload kept in memory; the rest spills to disk.
const maxUploadMemory = 32 << 20

type message struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("encode response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, message{Message: msg})
}

func writeError(w http.ResponseWriter, err error) {
	status := session.StatusOf(err)
	if status >= 500 {
		log.Errorf("command failed: %v", err)
	}
	writeMessage(w, status, session.MessageOf(err))
}

func writeResult(w http.ResponseWriter, res session.Result, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res.Status, res)
}

// parseBool accepts the spellings browsers and scripts commonly send.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "no", "off", "f", "n":
		return false, nil
	case "1", "true", "yes", "on", "t", "y":
		return true, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", raw)
	}
}

type handlers struct {
	controller *session.Controller
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	encoded := q.Get("uri")
	if encoded == "" {
		writeMessage(w, http.StatusUnprocessableEntity, "query parameter uri is required")
		return
	}

	local, err := parseBool(q.Get("local"))
	if err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, "local: "+err.Error())
		return
	}

	replace, err := parseBool(q.Get("replace"))
	if err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, "replace: "+err.Error())
		return
	}

	res, err := h.controller.Play(r.Context(), session.PlayRequest{URI: encoded, Local: local, Replace: replace})
	writeResult(w, res, err)
}

func (h *handlers) stop(w http.ResponseWriter, r *http.Request) {
	res, err := h.controller.Stop(r.Context())
	writeResult(w, res, err)
}

func (h *handlers) pause(w http.ResponseWriter, r *http.Request) {
	res, err := h.controller.TogglePause(r.Context())
	writeResult(w, res, err)
}

func (h *handlers) mute(w http.ResponseWriter, r *http.Request) {
	res, err := h.controller.ToggleMute(r.Context())
	writeResult(w, res, err)
}

func (h *handlers) fullscreen(w http.ResponseWriter, r *http.Request) {
	res, err := h.controller.ToggleFullscreen(r.Context())
	writeResult(w, res, err)
}

func (h *handlers) repeat(w http.ResponseWriter, r *http.Request) {
	res, err := h.controller.ToggleRepeat(r.Context())
	writeResult(w, res, err)
}

func (h *handlers) seek(w http.ResponseWriter, r *http.Request) {
	percent, err := strconv.ParseFloat(r.URL.Query().Get("percent_pos"), 64)
	if err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, "query parameter percent_pos must be a number")
		return
	}

	res, err := h.controller.Seek(r.Context(), percent)
	writeResult(w, res, err)
}

func (h *handlers) volume(w http.ResponseWriter, r *http.Request) {
	volume, err := strconv.Atoi(r.URL.Query().Get("volume"))
	if err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, "query parameter volume must be an integer")
		return
	}

	res, err := h.controller.Volume(r.Context(), volume)
	writeResult(w, res, err)
}

func (h *handlers) playlist(w http.ResponseWriter, r *http.Request) {
	var req session.PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, "invalid playlist body: "+err.Error())
		return
	}

	res, err := h.controller.SetPlaylist(r.Context(), req)
	writeResult(w, res, err)
}

func (h *handlers) next(w http.ResponseWriter, r *http.Request) {
	res, err := h.controller.Next(r.Context())
	writeResult(w, res, err)
}

func (h *handlers) previous(w http.ResponseWriter, r *http.Request) {
	res, err := h.controller.Previous(r.Context())
	writeResult(w, res, err)
}

func (h *handlers) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.controller.Status())
}

func (h *handlers) list(w http.ResponseWriter, _ *http.Request) {
	res, err := h.controller.List()
	if err != nil {
		writeError(w, err)
		return
	}

	if res.Status == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, res.Status, res)
}

func (h *handlers) upload(w http.ResponseWriter, r *http.Request) {
	h.receive(w, r, h.controller.Upload)
}

func (h *handlers) stream(w http.ResponseWriter, r *http.Request) {
	h.receive(w, r, h.controller.Stream)
}

func (h *handlers) receive(w http.ResponseWriter, r *http.Request, store func(string, io.Reader) (session.Result, error)) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, "expected a multipart form: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, "form field file is required")
		return
	}
	defer file.Close()

	res, err := store(header.Filename, file)
	writeResult(w, res, err)
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"phase":   h.controller.Phase(),
		"version": constant.Version,
		"schema":  constant.SchemaVersion,
	})
}
