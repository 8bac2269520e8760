package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/couchcryptid/wildfire-risk-dashboard/internal/catalog"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/dashboard"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/views"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Store.Snapshot())
}

func (s *Server) handleRegions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"regions": s.deps.Regions.List()})
}

type selectRequest struct {
	Region string `json:"region"`
}

// handleSelectRegion resolves the region and starts processing in the
// background. Progress is observed through /api/state or /ws.
func (s *Server) handleSelectRegion(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	region, err := s.deps.Regions.Resolve(r.Context(), req.Region)
	switch {
	case errors.Is(err, catalog.ErrRegionNotFound):
		writeError(w, http.StatusNotFound, err)
		return
	case err != nil:
		s.logger.Error("resolve region failed", "query", req.Region, "error", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}

	s.runs.Add(1)
	go func() {
		defer s.runs.Done()
		err := s.deps.Store.SelectRegion(s.runCtx, region)
		if err != nil && !errors.Is(err, dashboard.ErrSuperseded) {
			s.logger.Warn("selection ended with error", "region", region.Name, "error", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]any{"status": "processing", "region": region})
}

func (s *Server) handleActiveView(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, views.Active(s.deps.Store.Snapshot()))
}

type viewRequest struct {
	View string `json:"view"`
}

func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.deps.Store.SetView(domain.ParseView(req.View))
	writeJSON(w, http.StatusOK, views.Active(s.deps.Store.Snapshot()))
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	v := domain.ParseView(r.PathValue("view"))
	writeJSON(w, http.StatusOK, views.Route(v, s.deps.Store.Snapshot()))
}

type themeRequest struct {
	Dark *bool `json:"dark"`
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Dark == nil {
		writeError(w, http.StatusBadRequest, errors.New(`missing "dark"`))
		return
	}
	s.deps.Store.SetDarkMode(*req.Dark)
	writeJSON(w, http.StatusOK, s.deps.Store.Snapshot())
}

func (s *Server) handleEnvironment(w http.ResponseWriter, r *http.Request) {
	var req domain.EnvironmentalParams
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.deps.Store.SetEnvironment(req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Store.Snapshot())
}

type layerRequest struct {
	Layer string `json:"layer"`
}

func (s *Server) handleMapLayer(w http.ResponseWriter, r *http.Request) {
	var req layerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.deps.Store.SetMapLayer(domain.MapLayer(req.Layer)); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Store.Snapshot())
}

type playbackRequest struct {
	TimeStep *int     `json:"time_step"`
	Playing  *bool    `json:"playing"`
	Speed    *float64 `json:"speed"`
}

// handlePlayback validates every supplied field before applying any of them.
func (s *Server) handlePlayback(w http.ResponseWriter, r *http.Request) {
	var req playbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.TimeStep != nil && !domain.IsSimulationTimeStep(*req.TimeStep) {
		writeError(w, http.StatusBadRequest,
			fmt.Errorf("%w: time step %d is not one of %v", domain.ErrInvalidParams, *req.TimeStep, domain.SimulationTimeSteps))
		return
	}
	if req.Speed != nil && !(*req.Speed > 0) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: speed must be > 0", domain.ErrInvalidParams))
		return
	}

	if req.TimeStep != nil {
		if err := s.deps.Store.SetTimeStep(*req.TimeStep); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	if req.Speed != nil {
		if err := s.deps.Store.SetSpeed(*req.Speed); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	if req.Playing != nil {
		s.deps.Store.SetPlaying(*req.Playing)
	}
	writeJSON(w, http.StatusOK, s.deps.Store.Snapshot().Playback)
}

func (s *Server) handleRiskChart(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := s.deps.Chart.Render(&buf); err != nil {
		s.logger.Error("render risk chart failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck // client may have gone away
}

// handleReport serves the raw prediction or simulation dataset as a JSON
// download.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	st := s.deps.Store.Snapshot()

	var data any
	switch kind {
	case views.ReportPrediction:
		if st.Prediction != nil {
			data = st.Prediction
		}
	case views.ReportSimulation:
		if st.Simulation != nil {
			data = st.Simulation
		}
	default:
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown report %q", kind))
		return
	}
	if data == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("%s report not available yet", kind))
		return
	}

	name := kind
	if st.Region != nil {
		name = st.Region.ID + "-" + kind
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.json"`, name))
	writeJSON(w, http.StatusOK, data)
}

// decodeJSON reads a bounded JSON body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
