package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/ifscope/pkg/buildinfo"
	"github.com/matzehuels/ifscope/pkg/errors"
	"github.com/matzehuels/ifscope/pkg/ifs"
	"github.com/matzehuels/ifscope/pkg/pipeline"
	"github.com/matzehuels/ifscope/pkg/render"
	"github.com/matzehuels/ifscope/pkg/render/diagram"
)

// Response headers set by the render endpoint.
const (
	SeedHeader  = "X-Ifscope-Seed"
	CacheHeader = "X-Cache"
)

var contentTypes = map[string]string{
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type systemSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Maps        int    `json:"maps"`
}

type mapDetail struct {
	ifs.Affine
	Probability float64 `json:"probability"`
	Color       string  `json:"color"`
}

type systemDetail struct {
	systemSummary
	Transforms []mapDetail `json:"transforms"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"systems": s.catalog.Len(),
		"build":   buildinfo.Get(),
	})
}

func (s *Server) handleListSystems(w http.ResponseWriter, r *http.Request) {
	out := make([]systemSummary, 0, s.catalog.Len())
	for _, sys := range s.catalog.Systems() {
		out = append(out, summarize(sys))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetSystem(w http.ResponseWriter, r *http.Request) {
	sys, err := s.catalog.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d := systemDetail{systemSummary: summarize(sys)}
	for i, t := range sys.Transforms() {
		d.Transforms = append(d.Transforms, mapDetail{
			Affine:      t,
			Probability: sys.Probability(i),
			Color:       render.HueHex(t.Hue),
		})
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	sys, err := s.catalog.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	svg, err := diagram.RenderSVG(r.Context(), diagram.ToDOT(sys))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatSVG])
	w.Write(svg)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.renderOptions(chi.URLParam(r, "name"), format, r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set(SeedHeader, strconv.FormatUint(res.Seed, 10))
	switch {
	case !res.CacheInfo.Cacheable:
		w.Header().Set("Cache-Control", "no-store")
	case res.CacheInfo.RenderHit:
		w.Header().Set(CacheHeader, "HIT")
	default:
		w.Header().Set(CacheHeader, "MISS")
	}
	w.Write(res.Artifacts[format])
}

// renderOptions parses the render query. Unknown parameters are ignored.
func (s *Server) renderOptions(name, format string, q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{
		System:  name,
		Points:  s.cfg.DefaultPoints,
		Formats: []string{format},
	}

	var err error
	if opts.Points, err = intParam(q, "points", opts.Points); err != nil {
		return opts, err
	}
	if err := errors.ValidateCount(opts.Points, s.cfg.MaxPoints); err != nil {
		return opts, err
	}
	if opts.Width, err = intParam(q, "width", render.DefaultWidth); err != nil {
		return opts, err
	}
	if opts.Height, err = intParam(q, "height", render.DefaultHeight); err != nil {
		return opts, err
	}

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid seed %q", v)
		}
		opts.Seed = &seed
	}

	if q.Has("zoom") || q.Has("x") || q.Has("y") {
		vp := render.DefaultViewport()
		if vp.Scale, err = floatParam(q, "zoom", vp.Scale); err != nil {
			return opts, err
		}
		if vp.X, err = floatParam(q, "x", vp.X); err != nil {
			return opts, err
		}
		if vp.Y, err = floatParam(q, "y", vp.Y); err != nil {
			return opts, err
		}
		opts.Viewport = &vp
	}
	return opts, nil
}

func intParam(q url.Values, key string, def int) (int, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s %q", key, v)
	}
	return n, nil
}

func floatParam(q url.Values, key string, def float64) (float64, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s %q", key, v)
	}
	return f, nil
}

func summarize(sys *ifs.System) systemSummary {
	return systemSummary{Name: sys.Name(), Description: sys.Description(), Maps: sys.Len()}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestIDFrom(r.Context()), "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
