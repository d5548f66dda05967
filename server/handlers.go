package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/nvr-ai/tranquil-trails/images"
	"github.com/nvr-ai/tranquil-trails/models"
	"github.com/nvr-ai/tranquil-trails/pages"
	"github.com/nvr-ai/tranquil-trails/service"
	"github.com/nvr-ai/tranquil-trails/util"
	"github.com/pkg/errors"
)

// Page notices.
const (
	ChatAnswerMessage        = "Chatbot AI Menjawab:"
	ChatEmptyMessage         = "Silakan masukkan pertanyaan terlebih dahulu."
	UnsupportedUploadMessage = "Format file tidak didukung. Gunakan gambar jpg, jpeg, atau png."
	UploadTooLargeMessage    = "Ukuran file melebihi batas unggah."
)

// multipartMemory is the part of an upload kept in memory before spilling to disk.
const multipartMemory = 32 << 20

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, r.URL.Query().Get("page"))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, r.PathValue("feature"))
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request, slug string) {
	feature, err := pages.ParseFeature(slug)
	if err != nil {
		s.renderError(w, http.StatusNotFound, pages.FeatureHome, err)
		return
	}

	crop, err := models.ParseCrop(r.URL.Query().Get("model"))
	if err != nil {
		s.renderError(w, http.StatusBadRequest, feature, err)
		return
	}

	s.render(w, http.StatusOK, pages.View{Feature: feature, Crop: crop})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, pages.FeatureLogin, err)
		return
	}

	username := r.PostFormValue("username")
	result := service.CheckCredentials(username, r.PostFormValue("password"))
	s.logger.Info("login attempt", "username_present", username != "", "accepted", result.OK)

	view := pages.View{Feature: pages.FeatureLogin, Username: username}
	if result.OK {
		view.Alert = pages.Success(result.Message)
	} else {
		view.Alert = pages.Warning(result.Message)
	}
	s.render(w, http.StatusOK, view)
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	if s.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.render(w, http.StatusRequestEntityTooLarge, pages.View{
				Feature: pages.FeatureDetect,
				Alert:   pages.Warning(UploadTooLargeMessage),
			})
			return
		}
		s.renderError(w, http.StatusBadRequest, pages.FeatureDetect, err)
		return
	}

	crop, err := models.ParseCrop(r.FormValue("model"))
	if err != nil {
		s.renderError(w, http.StatusBadRequest, pages.FeatureDetect, err)
		return
	}
	view := pages.View{Feature: pages.FeatureDetect, Crop: crop}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		s.render(w, http.StatusOK, view)
		return
	}
	if err != nil {
		s.renderError(w, http.StatusBadRequest, pages.FeatureDetect, err)
		return
	}
	defer file.Close()

	if !util.HasSupportedExtension(header.Filename) {
		view.Alert = pages.Warning(UnsupportedUploadMessage)
		s.render(w, http.StatusUnsupportedMediaType, view)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, pages.FeatureDetect, errors.Wrap(err, "reading upload"))
		return
	}

	result, err := s.detector.Detect(r.Context(), crop, data)
	switch {
	case errors.Is(err, images.ErrUnsupportedFormat), errors.Is(err, images.ErrEmptyImage):
		view.Alert = pages.Warning(UnsupportedUploadMessage)
		s.render(w, http.StatusUnsupportedMediaType, view)
		return
	case err != nil:
		s.logger.Error("detection failed", "crop", crop, "file", header.Filename, "error", err)
		s.renderError(w, http.StatusInternalServerError, pages.FeatureDetect, err)
		return
	}

	view.Detection = result
	s.render(w, http.StatusOK, view)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, pages.FeatureChat, err)
		return
	}

	prompt := r.PostFormValue("prompt")
	view := pages.View{Feature: pages.FeatureChat, Prompt: prompt}

	answer, err := s.chat.Reply(r.Context(), prompt)
	switch {
	case errors.Is(err, service.ErrEmptyPrompt):
		view.Alert = pages.Warning(ChatEmptyMessage)
	case err != nil:
		s.logger.Error("chat failed", "prompt_length", len(prompt), "error", err)
		s.renderError(w, http.StatusInternalServerError, pages.FeatureChat, err)
		return
	default:
		view.Alert = pages.Success(ChatAnswerMessage)
		view.Answer = answer
	}
	s.render(w, http.StatusOK, view)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) renderError(w http.ResponseWriter, status int, feature pages.Feature, err error) {
	s.render(w, status, pages.View{Feature: feature, Err: err})
}

// render writes the page with status, or a plain 500 if the page cannot be rendered.
func (s *Server) render(w http.ResponseWriter, status int, v pages.View) {
	var buf bytes.Buffer
	if err := s.router.Render(&buf, v); err != nil {
		s.logger.Error("rendering page", "feature", v.Feature, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Debug("writing page", "feature", v.Feature, "error", err)
	}
}
