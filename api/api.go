package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/Fontikcz12/quantizer/constants"
	"github.com/Fontikcz12/quantizer/midi"
	"github.com/Fontikcz12/quantizer/model"
	"github.com/Fontikcz12/quantizer/session"
	"github.com/Fontikcz12/quantizer/storage"
	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// Server serves the quantizer over HTTP. Uploads and Processed are the two
// storage ports: uploads are only held for the duration of a request,
// processed files stay until downloaded or pruned.
type Server struct {
	Uploads   storage.Store
	Processed storage.Store

	// Janitor is optional and touched after every export.
	Janitor *storage.Janitor

	MaxUploadBytes int64
	// RateLimit is requests per second per client, 0 disables it.
	RateLimit float64
}

func (s *Server) Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/api/analyze_midi", s.HandleAnalyze).Methods("POST")
	router.HandleFunc("/api/quantize", s.HandleQuantize).Methods("POST")
	router.HandleFunc("/api/export_midi", s.HandleExport).Methods("POST")
	router.HandleFunc("/api/download/{filename}", s.HandleDownload).Methods("GET")
	router.HandleFunc("/api/add_sample", s.HandleSample).Methods("POST")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	var handler http.Handler = router
	if s.RateLimit > 0 {
		handler = newClientLimiter(s.RateLimit).middleware(handler)
	}
	return cors.Default().Handler(handler)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("could not write response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case model.IsInputError(err):
		status = http.StatusBadRequest
	case model.IsCodecError(err):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	}

	log := logrus.WithFields(logrus.Fields{"route": r.URL.Path, "status": status})
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	} else {
		log.WithError(err).Info("request rejected")
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func (s *Server) maxUploadBytes() int64 {
	if s.MaxUploadBytes > 0 {
		return s.MaxUploadBytes
	}
	return constants.GetMaxUploadBytes()
}

func (s *Server) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	limit := s.maxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, r, model.NewInputError("file is larger than %s", humanize.IBytes(uint64(limit))))
		case errors.Is(err, http.ErrMissingFile):
			writeError(w, r, model.NewInputError("no file was uploaded"))
		default:
			writeError(w, r, model.NewInputError("could not read upload: %v", err))
		}
		return
	}
	defer file.Close()
	if header.Filename == "" {
		writeError(w, r, model.NewInputError("no file was selected"))
		return
	}

	var res model.AnalyzeResponse
	err = storage.Stage(r.Context(), s.Uploads, header.Filename, file, func(staged io.Reader) error {
		var err error
		res, err = session.Analyze(header.Filename, staged)
		return err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return model.NewInputError("invalid JSON body: %v", err)
	}
	return nil
}

func (s *Server) HandleQuantize(w http.ResponseWriter, r *http.Request) {
	req := constants.DefaultQuantizeRequest()
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := session.Quantize(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) HandleExport(w http.ResponseWriter, r *http.Request) {
	req := constants.DefaultExportRequest()
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	smfFile, name, err := session.Render(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := midi.Write(&buf, smfFile); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Processed.Put(r.Context(), name, &buf); err != nil {
		writeError(w, r, err)
		return
	}
	if s.Janitor != nil {
		s.Janitor.Touch()
	}

	logrus.WithFields(logrus.Fields{"file": name, "notes": len(req.QuantizedNotes)}).Info("exported midi file")
	writeJSON(w, http.StatusOK, model.ExportResponse{
		Success:     true,
		Filename:    name,
		Message:     "MIDI file created",
		DownloadURL: "/api/download/" + url.PathEscape(name),
	})
}

func (s *Server) HandleDownload(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]
	if err := storage.ValidName(name); err != nil {
		writeError(w, r, errors.Wrap(storage.ErrNotFound, name))
		return
	}

	rc, err := s.Processed.Get(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	if _, err := io.Copy(w, rc); err != nil {
		logrus.WithError(err).WithField("file", name).Warn("download interrupted")
	}
}

func (s *Server) HandleSample(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, session.Sample())
}
