package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/execution"
)

type fakeResolver struct {
	files []string
	err   error
}

func (r *fakeResolver) Expand(_ context.Context, _ []string) ([]string, error) {
	return r.files, r.err
}

type fakeCandidateLoader struct {
	sets map[string]entities.CandidateSet
}

func (l *fakeCandidateLoader) LoadCandidate(_ context.Context, path string) (*entities.CandidateSet, error) {
	cs, ok := l.sets[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file", path)
	}
	cs.Source = path
	return &cs, nil
}

type fakeCatalogLoader struct {
	builtin *entities.PresetCatalog
	extra   map[string]*entities.PresetCatalog
}

func (l *fakeCatalogLoader) LoadBuiltin(context.Context) (*entities.PresetCatalog, error) {
	c := *l.builtin
	c.Presets = append([]entities.Preset(nil), l.builtin.Presets...)
	return &c, nil
}

func (l *fakeCatalogLoader) LoadCatalog(_ context.Context, path string) (*entities.PresetCatalog, error) {
	c, ok := l.extra[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file", path)
	}
	return c, nil
}

type fakeBuilder struct {
	calls int
	err   error
	last  entities.ParameterReader
}

func (b *fakeBuilder) Build(_ context.Context, params entities.ParameterReader) (string, error) {
	b.calls++
	b.last = params
	if b.err != nil {
		return "", b.err
	}
	return "build/drill.yaml", nil
}

type fakeMetrics struct {
	mu   sync.Mutex
	sets int
	runs int
}

func (m *fakeMetrics) ObserveSet(*execution.SetResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
}

func (m *fakeMetrics) ObserveRun(*execution.RunResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs++
}

func validRaw() entities.RawParameters {
	return entities.RawParameters{
		Diameter:      "10",
		WorkingLength: "55",
		TotalLength:   "140",
		Angle:         "45",
		ClearanceCone: true,
		ConeValue:     "5",
	}
}

func testCatalog() *entities.PresetCatalog {
	return &entities.PresetCatalog{
		Version: "1.0.0",
		Presets: []entities.Preset{
			{Name: "Сверло Ø10", Diameter: 10, WorkingLength: 55, TotalLength: 140, Angle: 45, Feature: "none"},
			{Name: "Сверло Ø10мм с конусом", Diameter: 10, WorkingLength: 55, TotalLength: 140, Angle: 45, Feature: "cone", ConeValue: 5},
			{Name: "Сверло Ø10мм с хвостовиком", Diameter: 10, WorkingLength: 55, TotalLength: 140, Angle: 45, Feature: "shank", ShankDiameter: 18.75, ShankLength: 212.5},
			{Name: "Слишком длинное", Diameter: 10, WorkingLength: 95, TotalLength: 140, Angle: 45, Feature: "none"},
		},
	}
}
