package plant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"caktus/internal/llm"
)

var (
	ErrMissingFields   = errors.New("missing required fields")
	ErrUnknownPreset   = errors.New("unknown plant preset")
	ErrForbidden       = errors.New("plant belongs to another user")
	ErrPhotosDisabled  = errors.New("photo storage is not configured")
	ErrInvalidPhotoExt = errors.New("photo must be a .jpg, .jpeg, .png or .heic file")
)

// PhotoStore uploads plant photos and returns their public URL.
type PhotoStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	repo   Repository
	llm    llm.Client
	photos PhotoStore
}

// NewService wires the plant use cases. photos may be nil.
func NewService(repo Repository, client llm.Client, photos PhotoStore) *Service {
	return &Service{
		repo:   repo,
		llm:    client,
		photos: photos,
	}
}

// CreateInput is either a preset key or a custom species with its range.
type CreateInput struct {
	Name       string
	Preset     string
	Species    string
	Icon       string
	Conditions *Conditions
}

// --------------------------------------------------
// Create plant
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (*Plant, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrMissingFields
	}

	p := &Plant{
		OwnerID: ownerID,
		Name:    name,
	}

	if in.Preset != "" {
		preset, ok := FindPreset(in.Preset)
		if !ok {
			return nil, ErrUnknownPreset
		}
		p.Species = preset.Species
		p.Icon = preset.Icon
		p.IdealConditions = preset.Conditions
	} else {
		if in.Conditions == nil {
			return nil, ErrMissingFields
		}
		validated, err := ValidateSearchResult(SearchResult{
			Species:        in.Species,
			Icon:           in.Icon,
			MinTemperature: in.Conditions.MinTemperature,
			MaxTemperature: in.Conditions.MaxTemperature,
			MinHumidity:    in.Conditions.MinHumidity,
			MaxHumidity:    in.Conditions.MaxHumidity,
			MinAirQuality:  in.Conditions.MinAirQuality,
			MaxAirQuality:  in.Conditions.MaxAirQuality,
		})
		if err != nil {
			return nil, err
		}
		p.Species = validated.Species
		p.Icon = validated.Icon
		p.IdealConditions = validated.Conditions
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// --------------------------------------------------
// List plants, seeding the defaults once per owner
// --------------------------------------------------
func (s *Service) List(ctx context.Context, ownerID string) ([]*Plant, error) {
	plants, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// owners who already had plants count as seeded too
	first, err := s.repo.MarkSeeded(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(plants) > 0 || !first {
		if plants == nil {
			plants = []*Plant{}
		}
		return plants, nil
	}

	for _, preset := range DefaultPresets() {
		p := &Plant{
			OwnerID:         ownerID,
			Name:            preset.Name,
			Species:         preset.Species,
			Icon:            preset.Icon,
			IdealConditions: preset.Conditions,
		}
		if err := s.repo.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("seed default plants: %w", err)
		}
		plants = append(plants, p)
	}

	log.Printf("PLANTS_SEEDED owner=%s count=%d", ownerID, len(plants))
	return plants, nil
}

// Get returns a plant only to its owner.
func (s *Service) Get(ctx context.Context, ownerID, id string) (*Plant, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// --------------------------------------------------
// Upload plant photo
// --------------------------------------------------
func (s *Service) UploadPhoto(
	ctx context.Context,
	ownerID string,
	id string,
	filename string,
	contentType string,
	body io.Reader,
) (string, error) {
	if s.photos == nil {
		return "", ErrPhotosDisabled
	}

	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".heic":
	default:
		return "", ErrInvalidPhotoExt
	}

	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return "", err
	}

	key := fmt.Sprintf("plants/%s/%s/photo%s", ownerID, id, ext)
	url, err := s.photos.Upload(ctx, key, body, contentType)
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}

	if err := s.repo.UpdatePhoto(ctx, id, url); err != nil {
		return "", err
	}
	return url, nil
}

// Search looks a plant up by common name through the LLM.
func (s *Service) Search(ctx context.Context, name string) (Validated, error) {
	result, err := Search(ctx, s.llm, name)
	if err != nil {
		log.Printf("PLANT_SEARCH_FAILED name=%q err=%v", name, err)
		return Validated{}, err
	}
	return result, nil
}
