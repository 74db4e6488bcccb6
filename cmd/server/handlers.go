package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/samber/oops"
	"go.uber.org/zap"

	"github.com/LoryBug/mbel"
	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/metrics"
	"github.com/LoryBug/mbel/internal/query"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// checkRequest is the /check body: the raw MBEL source to parse and
// analyze.
type checkRequest struct {
	Source string `json:"source"`
}

func handleCheck(log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, oops.Code("METHOD_NOT_ALLOWED").Errorf("method not allowed"))
			return
		}

		var body checkRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			log.Debug("check: invalid body", zap.Error(err))
			writeError(w, http.StatusBadRequest, oops.Code("INVALID_BODY").Wrap(err))
			return
		}

		start := time.Now()
		doc := mbel.Parse(body.Source)
		metrics.ObserveParse(time.Since(start))

		start = time.Now()
		result := doc.AnalyzeDefault()
		codeCounts := map[string]int{}
		severityOf := map[string]string{}
		for _, d := range result.Diagnostics {
			codeCounts[d.Code]++
			severityOf[d.Code] = d.Severity.String()
		}
		metrics.ObserveAnalyze(time.Since(start), codeCounts, func(code string) string { return severityOf[code] })

		writeJSON(w, http.StatusOK, map[string]any{
			"diagnostics": result.Diagnostics,
		})
	}
}

// queryRequest is the /query body: MBEL source plus a named Query Engine
// query and its parameters.
type queryRequest struct {
	Source string          `json:"source"`
	Query  string          `json:"query"`
	Params json.RawMessage `json:"params"`
}

func handleQuery(log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, oops.Code("METHOD_NOT_ALLOWED").Errorf("method not allowed"))
			return
		}

		var body queryRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, oops.Code("INVALID_BODY").Wrap(err))
			return
		}
		if body.Query == "" {
			writeError(w, http.StatusBadRequest, oops.Code("MISSING_FIELD").Errorf("missing field: query"))
			return
		}

		q, err := buildQuery(body.Query, body.Params)
		if err != nil {
			log.Debug("query: invalid request", zap.String("query", body.Query), zap.Error(err))
			metrics.QueryErrors.WithLabelValues(body.Query).Inc()
			writeError(w, http.StatusBadRequest, err)
			return
		}

		doc := mbel.Parse(body.Source)
		res, err := doc.Query(q)
		metrics.QueriesExecuted.WithLabelValues(body.Query).Inc()
		if err != nil {
			metrics.QueryErrors.WithLabelValues(body.Query).Inc()
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}

		b, err := mbel.MarshalResultJSON(res)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	}
}

// buildQuery maps a query name and its JSON params onto the concrete
// query.Query implementation the Query Engine expects (§4.4's 17 named
// queries).
func buildQuery(name string, params json.RawMessage) (query.Query, error) {
	decode := func(v any) error {
		if len(params) == 0 {
			return nil
		}
		return json.Unmarshal(params, v)
	}

	switch name {
	case "getFeatureFiles":
		var p struct{ Name string }
		if err := decode(&p); err != nil {
			return nil, oops.Code("INVALID_PARAMS").Wrap(err)
		}
		return query.FeatureFilesQuery{Name: p.Name}, nil

	case "getFeatureDependencies":
		var p struct{ Name string }
		if err := decode(&p); err != nil {
			return nil, oops.Code("INVALID_PARAMS").Wrap(err)
		}
		return query.FeatureDependenciesQuery{Name: p.Name}, nil

	case "findDependents":
		var p struct{ Name string }
		if err := decode(&p); err != nil {
			return nil, oops.Code("INVALID_PARAMS").Wrap(err)
		}
		return query.DependentsQuery{Name: p.Name}, nil

	case "getTransitiveDependencies":
		var p struct{ Name string }
		if err := decode(&p); err != nil {
			return nil, oops.Code("INVALID_PARAMS").Wrap(err)
		}
		return query.TransitiveDependenciesQuery{Name: p.Name}, nil

	case "detectCircularDependencies":
		return query.CircularDependenciesQuery{}, nil

	case "findAnchor":
		var p struct{ Concept string }
		if err := decode(&p); err != nil {
			return nil, oops.Code("INVALID_PARAMS").Wrap(err)
		}
		return query.AnchorSearchQuery{Concept: p.Concept}, nil

	case "findAnchorsByType":
		var p struct{ Type string }
		if err := decode(&p); err != nil {
			return nil, oops.Code("INVALID_PARAMS").Wrap(err)
		}
		t, err := parseAnchorType(p.Type)
		if err != nil {
			return nil, err
		}
		return query.AnchorsByTypeQuery{Type: t}, nil

	case "findDecisions":
		var p struct{ Pattern string }
		if err := decode(&p); err != nil {
			return nil, oops.Code("INVALID_PARAMS").Wrap(err)
		}
		return query.DecisionSearchQuery{Pattern: p.Pattern}, nil

	case "findDecisionsByStatus":
		var p struct{ Status string }
		if err := decode(&p); err != nil {
			return nil, oops.Code("INVALID_PARAMS").Wrap(err)
		}
		s, err := parseDecisionStatus(p.Status)
		if err != nil {
			return nil, err
		}
		return query.DecisionsByStatusQuery{Status: s}, nil

	case "findDecisionsByContext":
		var p struct{ File string }
		if err := decode(&p); err != nil {
			return nil, oops.Code("INVALID_PARAMS").Wrap(err)
		}
		return query.DecisionsByContextQuery{File: p.File}, nil

	case "findIntent":
		var p struct{ Module, Component string }
		if err := decode(&p); err != nil {
			return nil, oops.Code("INVALID_PARAMS").Wrap(err)
		}
		return query.IntentQuery{Module: p.Module, Component: p.Component}, nil

	case "findIntentsByModule":
		var p struct{ Module string }
		if err := decode(&p); err != nil {
			return nil, oops.Code("INVALID_PARAMS").Wrap(err)
		}
		return query.IntentsByModuleQuery{Module: p.Module}, nil

	case "getEditRisk":
		var p struct{ Path string }
		if err := decode(&p); err != nil {
			return nil, oops.Code("INVALID_PARAMS").Wrap(err)
		}
		return query.EditRiskQuery{Path: p.Path}, nil

	case "getImpactAnalysis":
		var p struct{ Files []string }
		if err := decode(&p); err != nil {
			return nil, oops.Code("INVALID_PARAMS").Wrap(err)
		}
		return query.ImpactAnalysisQuery{Files: p.Files}, nil

	case "getWorkContext":
		var p struct{ Feature string }
		if err := decode(&p); err != nil {
			return nil, oops.Code("INVALID_PARAMS").Wrap(err)
		}
		return query.WorkContextQuery{Feature: p.Feature}, nil

	case "semanticSearch":
		var p struct{ Query string }
		if err := decode(&p); err != nil {
			return nil, oops.Code("INVALID_PARAMS").Wrap(err)
		}
		return query.SemanticSearchQuery{Query: p.Query}, nil

	case "simulate":
		var p struct {
			Op      string
			From    string
			To      string
			Feature string
		}
		if err := decode(&p); err != nil {
			return nil, oops.Code("INVALID_PARAMS").Wrap(err)
		}
		op, err := parseSimulationOp(p.Op)
		if err != nil {
			return nil, err
		}
		return query.SimulateQuery{Op: op, From: p.From, To: p.To, Feature: p.Feature}, nil

	default:
		return nil, oops.Code("UNKNOWN_QUERY").With("query", name).Errorf("unrecognized query %q", name)
	}
}

func parseAnchorType(s string) (ast.AnchorType, error) {
	switch s {
	case "entry":
		return ast.AnchorEntry, nil
	case "hotspot":
		return ast.AnchorHotspot, nil
	case "boundary":
		return ast.AnchorBoundary, nil
	default:
		return 0, oops.Code("INVALID_PARAMS").With("type", s).Errorf("unrecognized anchor type %q", s)
	}
}

func parseDecisionStatus(s string) (ast.DecisionStatus, error) {
	switch s {
	case "active":
		return ast.StatusActive, nil
	case "superseded":
		return ast.StatusSuperseded, nil
	case "reconsidering":
		return ast.StatusReconsidering, nil
	default:
		return 0, oops.Code("INVALID_PARAMS").With("status", s).Errorf("unrecognized decision status %q", s)
	}
}

func parseSimulationOp(s string) (query.SimulationOp, error) {
	switch s {
	case "add-dep":
		return query.SimAddDependency, nil
	case "remove-dep":
		return query.SimRemoveDependency, nil
	case "add-feature":
		return query.SimAddFeature, nil
	case "remove-feature":
		return query.SimRemoveFeature, nil
	default:
		return 0, oops.Code("INVALID_PARAMS").With("op", s).Errorf("unrecognized simulate op %q", s)
	}
}
