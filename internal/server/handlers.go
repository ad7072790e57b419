package server

import (
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mindmap/pkg/buildinfo"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/storage"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// handleLayout computes the radial model of the posted map.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	m, err := decodeMap(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.layout(w, r, m)
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request, m mindmap.MindMap) {
	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	model, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), m, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cacheHeader(w, hit)
	writeJSON(w, http.StatusOK, model)
}

// handleRender renders the posted map in a single format.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	m, err := decodeMap(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, m)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, m mindmap.MindMap) {
	q := r.URL.Query()
	opts, err := optionsFromQuery(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), m, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cacheHeader(w, result.CacheInfo.RenderHit)
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

// handleOutline builds a map from plain text. The text comes from the "text"
// form field or, for other content types, the raw body.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var text string
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && err != http.ErrNotMultipart {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse form"))
			return
		}
		text = r.FormValue("text")
	default:
		data, err := io.ReadAll(r.Body)
		if err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
			return
		}
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "text is empty"))
		return
	}
	writeJSON(w, http.StatusOK, mindmap.Outline(text))
}

func (s *Server) handleCreateMap(w http.ResponseWriter, r *http.Request) {
	m, err := decodeMap(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	work, err := pipeline.PrepareMap(m)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := storage.Save(r.Context(), s.store, work)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/maps/"+rec.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": rec.ID})
}

func (s *Server) handleGetMap(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec.Map)
}

func (s *Server) handlePutMap(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateMapID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := decodeMap(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	work, err := pipeline.PrepareMap(m)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rec := storage.NewRecord(work)
	rec.ID = id
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) handleDeleteMap(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMapLayout(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.layout(w, r, rec.Map)
}

func (s *Server) handleMapRender(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, rec.Map)
}

func decodeMap(w http.ResponseWriter, r *http.Request) (mindmap.MindMap, error) {
	return mindmap.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

// optionsFromQuery reads width, height, viz, style, theme, labels, background,
// scale and refresh. Absent values are left for the pipeline defaults.
func optionsFromQuery(q url.Values) (pipeline.Options, error) {
	var opts pipeline.Options
	var err error

	num := func(name string, dst *float64) {
		if v := q.Get(name); v != "" && err == nil {
			f, perr := strconv.ParseFloat(v, 64)
			if perr != nil {
				err = errors.New(errors.ErrCodeInvalidArgument, "%s must be a number, got %q", name, v)
				return
			}
			*dst = f
		}
	}
	flag := func(name string, dst *bool) {
		if v := q.Get(name); v != "" && err == nil {
			b, perr := strconv.ParseBool(v)
			if perr != nil {
				err = errors.New(errors.ErrCodeInvalidArgument, "%s must be a boolean, got %q", name, v)
				return
			}
			*dst = b
		}
	}

	num("width", &opts.Width)
	num("height", &opts.Height)
	// Zero options mean "default", so given sizes are checked here.
	if q.Get("width") != "" && err == nil {
		err = errors.ValidateDimension("width", opts.Width)
	}
	if q.Get("height") != "" && err == nil {
		err = errors.ValidateDimension("height", opts.Height)
	}
	num("scale", &opts.Scale)
	opts.VizType = q.Get("viz")
	opts.Style = q.Get("style")
	opts.Theme = q.Get("theme")
	labels := true
	flag("labels", &labels)
	opts.HideLabels = !labels
	flag("background", &opts.Background)
	flag("refresh", &opts.Refresh)
	return opts, err
}
