package report

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"caktus/internal/condition"
	"caktus/internal/llm"
	"caktus/internal/plant"
	"caktus/internal/sensor"
)

var ErrEmptyReport = errors.New("care report came back empty")

// PlantFinder returns a plant if ownerID may see it.
type PlantFinder interface {
	Get(ctx context.Context, ownerID, id string) (*plant.Plant, error)
}

// ReadingSource yields the reading a report is based on.
type ReadingSource interface {
	Latest(ctx context.Context) (*sensor.Reading, error)
}

type Service struct {
	plants   PlantFinder
	readings ReadingSource
	llm      llm.Client
	timeout  time.Duration
}

func NewService(plants PlantFinder, readings ReadingSource, client llm.Client) *Service {
	return &Service{
		plants:   plants,
		readings: readings,
		llm:      client,
		timeout:  45 * time.Second,
	}
}

// Snapshot is a plant evaluated against one reading.
type Snapshot struct {
	Plant      *plant.Plant     `json:"plant"`
	Reading    sensor.Reading   `json:"reading"`
	Conditions condition.Report `json:"conditions"`
}

// CareReport is the generated text plus the data it was generated from.
type CareReport struct {
	Raw        string           `json:"raw"`
	Lines      []Line           `json:"lines"`
	Conditions condition.Report `json:"conditions"`
	Reading    sensor.Reading   `json:"reading"`
}

// Conditions evaluates the latest reading for a plant.
func (s *Service) Conditions(ctx context.Context, ownerID, plantID string) (*Snapshot, error) {
	p, err := s.plants.Get(ctx, ownerID, plantID)
	if err != nil {
		return nil, err
	}

	r, err := s.readings.Latest(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Plant:      p,
		Reading:    *r,
		Conditions: condition.Evaluate(p.IdealConditions, *r),
	}, nil
}

// --------------------------------------------------
// Generate care report (LLM)
// --------------------------------------------------
func (s *Service) Generate(ctx context.Context, ownerID, plantID string) (*CareReport, error) {
	snap, err := s.Conditions(ctx, ownerID, plantID)
	if err != nil {
		return nil, err
	}

	p, r := snap.Plant, snap.Reading
	req := llm.ReportRequest(llm.ReportInput{
		PlantName:      p.Name,
		Species:        p.Species,
		MinTemperature: p.IdealConditions.MinTemperature,
		MaxTemperature: p.IdealConditions.MaxTemperature,
		MinHumidity:    p.IdealConditions.MinHumidity,
		MaxHumidity:    p.IdealConditions.MaxHumidity,
		MinAirQuality:  p.IdealConditions.MinAirQuality,
		MaxAirQuality:  p.IdealConditions.MaxAirQuality,
		Temperature:    r.Temperature,
		Humidity:       r.Humidity,
		AirQuality:     r.AirQuality,
	})

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.llm.Complete(ctx, req)
	if err != nil {
		log.Printf("REPORT_LLM_FAILED plant=%s err=%v", plantID, err)
		return nil, fmt.Errorf("generate report: %w", err)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptyReport
	}

	log.Printf("REPORT_GENERATED plant=%s chars=%d", plantID, len(raw))

	return &CareReport{
		Raw:        raw,
		Lines:      Parse(raw),
		Conditions: snap.Conditions,
		Reading:    r,
	}, nil
}
