// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

// Package predict serves single-movie predictions from a trained
// artifact bundle. Request vectors are assembled through the same
// schema and scaler the bundle was trained with, so a movie scored at
// inference time is represented exactly as it would have been during
// training.
package predict

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tomtom215/cinescope/internal/artifact"
	"github.com/tomtom215/cinescope/internal/dataset"
	"github.com/tomtom215/cinescope/internal/feature"
	"github.com/tomtom215/cinescope/internal/model"
	"github.com/tomtom215/cinescope/internal/validation"
)

// Explanation sizes.
const (
	topFactors    = 3
	similarTitles = 3
)

// ErrUnknownModel is returned when a request names a model the bundle
// does not carry.
var ErrUnknownModel = errors.New("unknown model")

// Request is one movie to score. Genre and language labels outside the
// training vocabulary are accepted and contribute nothing to the
// vector, and so do empty lists; absence is never an error.
type Request struct {
	Title     string   `json:"title"`
	Year      float64  `json:"year" validate:"required,gte=1800,lte=2100"`
	Duration  int      `json:"duration" validate:"required,gt=0"`
	Votes     float64  `json:"votes" validate:"gte=0"`
	Budget    float64  `json:"budget" validate:"gte=0"`
	Genres    []string `json:"genres"`
	Languages []string `json:"languages"`
	Model     string   `json:"model" validate:"required"`
}

// Factor is one feature column's contribution weight, for models that
// report importances.
type Factor struct {
	Column string  `json:"column"`
	Weight float64 `json:"weight"`
}

// Response is the prediction for one movie.
type Response struct {
	Model   string `json:"model"`
	Success bool   `json:"success"`

	// TopFactors holds up to three dominant feature columns, present
	// only for models that report importances.
	TopFactors []Factor `json:"top_factors,omitempty"`

	// SimilarTitles holds up to three nearest training-set movies,
	// present only for models that report neighbors.
	SimilarTitles []string `json:"similar_titles,omitempty"`
}

// ModelInfo describes one loaded classifier for discovery endpoints.
type ModelInfo struct {
	Name         string        `json:"name"`
	Capabilities []string      `json:"capabilities"`
	Metrics      model.Metrics `json:"metrics"`
}

// Service scores movies against one loaded bundle. It is safe for
// concurrent use; all state is read-only after construction.
type Service struct {
	bundle  *artifact.Bundle
	schema  *feature.Schema
	scaler  *feature.Scaler
	scorers map[string]model.Scorer
}

// NewService builds a scoring service from a validated bundle.
func NewService(bundle *artifact.Bundle) (*Service, error) {
	if err := bundle.Validate(); err != nil {
		return nil, fmt.Errorf("predict service: %w", err)
	}

	return &Service{
		bundle:  bundle,
		schema:  bundle.Schema(),
		scaler:  bundle.Scaler(),
		scorers: bundle.Scorers(),
	}, nil
}

// RunID returns the training run behind the loaded bundle.
func (s *Service) RunID() string {
	return s.bundle.RunID
}

// Models lists the loaded classifiers in stable name order.
func (s *Service) Models() []ModelInfo {
	names := make([]string, 0, len(s.scorers))
	for name := range s.scorers {
		names = append(names, name)
	}
	sort.Strings(names)

	infos := make([]ModelInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, ModelInfo{
			Name:         name,
			Capabilities: capabilityNames(s.scorers[name].Capabilities()),
			Metrics:      s.bundle.Metrics[name],
		})
	}
	return infos
}

// Vocabulary returns the genre and language labels the models were
// trained on.
func (s *Service) Vocabulary() (genres, languages []string) {
	return s.schema.Genres(), s.schema.Languages()
}

// Predict scores one movie. A *validation.RequestValidationError marks
// a bad request; ErrUnknownModel marks an unknown model name; any other
// error is an internal inference failure.
func (s *Service) Predict(req *Request) (*Response, error) {
	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr
	}

	scorer, ok := s.scorers[req.Model]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, req.Model)
	}

	vector, err := s.assembleVector(req)
	if err != nil {
		return nil, fmt.Errorf("assemble vector: %w", err)
	}

	label, err := scorer.Predict(vector)
	if err != nil {
		return nil, fmt.Errorf("score with %s: %w", scorer.Name(), err)
	}

	resp := &Response{
		Model:   scorer.Name(),
		Success: label == model.LabelSuccess,
	}

	if scorer.Capabilities().Has(model.CapImportance) {
		resp.TopFactors = s.topFactors(scorer.Name(), req)
	}
	if scorer.Capabilities().Has(model.CapNeighbors) {
		titles, err := s.similarTitles(scorer, vector)
		if err != nil {
			return nil, fmt.Errorf("find similar titles: %w", err)
		}
		resp.SimilarTitles = titles
	}

	return resp, nil
}

// assembleVector turns a validated request into a scaled feature
// vector through the bundle's schema and scaler.
func (s *Service) assembleVector(req *Request) ([]float64, error) {
	rec := dataset.CleanRecord{
		Title:     req.Title,
		Year:      req.Year,
		Duration:  req.Duration,
		Votes:     req.Votes,
		Budget:    req.Budget,
		Genres:    req.Genres,
		Languages: req.Languages,
	}

	return s.scaler.Transform(s.schema.Vectorize(&rec))
}

// topFactors explains the prediction in terms of the request's own
// columns: the four numeric features plus its in-vocabulary genre and
// language labels, heaviest first, names breaking weight ties for
// determinism. Columns the request never engaged are excluded even when
// the model weighs them higher.
func (s *Service) topFactors(modelName string, req *Request) []Factor {
	weights := s.bundle.Importances[modelName]

	candidates := make([]string, 0, len(feature.NumericColumns)+len(req.Genres)+len(req.Languages))
	candidates = append(candidates, feature.NumericColumns...)
	for _, g := range req.Genres {
		if _, ok := s.schema.GenreColumn(g); ok {
			candidates = append(candidates, g)
		}
	}
	for _, l := range req.Languages {
		if _, ok := s.schema.LanguageColumn(l); ok {
			candidates = append(candidates, l)
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	factors := make([]Factor, 0, len(candidates))
	for _, column := range candidates {
		if _, ok := seen[column]; ok {
			continue
		}
		seen[column] = struct{}{}
		factors = append(factors, Factor{Column: column, Weight: weights[column]})
	}
	sort.Slice(factors, func(i, j int) bool {
		if factors[i].Weight != factors[j].Weight {
			return factors[i].Weight > factors[j].Weight
		}
		return factors[i].Column < factors[j].Column
	})

	if len(factors) > topFactors {
		factors = factors[:topFactors]
	}
	return factors
}

// similarTitles resolves the nearest training neighbors to movie
// titles.
func (s *Service) similarTitles(scorer model.Scorer, vector []float64) ([]string, error) {
	finder, ok := scorer.(model.NeighborFinder)
	if !ok {
		return nil, fmt.Errorf("%s declares neighbors but does not implement them", scorer.Name())
	}

	neighbors, err := finder.Neighbors(vector, similarTitles)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(neighbors))
	for _, n := range neighbors {
		title, err := s.bundle.TitleForTrainPosition(n.Position)
		if err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, nil
}

func capabilityNames(caps model.Capability) []string {
	var names []string
	if caps.Has(model.CapImportance) {
		names = append(names, "importance")
	}
	if caps.Has(model.CapNeighbors) {
		names = append(names, "neighbors")
	}
	return names
}
