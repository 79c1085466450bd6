package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"agrimitra/internal/model/catalog"
	catalogRepo "agrimitra/internal/repository/catalog"
)

var ErrDiseaseNotFound = errors.New("disease not found")

// CatalogService serves the read-mostly content around the chat: the
// disease library, the news feed, and the bot directory.
type CatalogService struct {
	diseaseRepo *catalogRepo.DiseaseRepo
	newsRepo    *catalogRepo.NewsRepo
}

func NewCatalogService(diseaseRepo *catalogRepo.DiseaseRepo, newsRepo *catalogRepo.NewsRepo) *CatalogService {
	return &CatalogService{
		diseaseRepo: diseaseRepo,
		newsRepo:    newsRepo,
	}
}

// EnsureSeeded loads the built-in library and news content into empty
// collections. Non-empty collections are left alone so operator edits
// survive restarts.
func (s *CatalogService) EnsureSeeded(ctx context.Context) error {
	count, err := s.diseaseRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		if err := s.diseaseRepo.InsertMany(ctx, seedDiseases()); err != nil {
			return err
		}
		log.Info().Msg("seeded disease library")
	}

	count, err = s.newsRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		if err := s.newsRepo.InsertMany(ctx, seedNews()); err != nil {
			return err
		}
		log.Info().Msg("seeded news feed")
	}

	return nil
}

// ListDiseases returns the disease library.
func (s *CatalogService) ListDiseases(ctx context.Context) ([]*catalog.Disease, error) {
	return s.diseaseRepo.List(ctx)
}

// GetDisease returns one library entry.
func (s *CatalogService) GetDisease(ctx context.Context, id string) (*catalog.Disease, error) {
	disease, err := s.diseaseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDiseaseNotFound
		}
		return nil, err
	}
	return disease, nil
}

// ListNews returns the news feed, newest first.
func (s *CatalogService) ListNews(ctx context.Context, limit int64) ([]*catalog.NewsArticle, error) {
	return s.newsRepo.List(ctx, limit)
}

// ListBots returns the crop assistant directory.
func (s *CatalogService) ListBots() []catalog.Bot {
	return catalog.Bots()
}
