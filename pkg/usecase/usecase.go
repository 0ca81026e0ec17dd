package usecase

import (
	"github.com/secmon-lab/vetplan/pkg/domain/interfaces"
	"github.com/secmon-lab/vetplan/pkg/domain/model"
)

// DefaultSuggestionLimit caps the number of check suggestions returned
const DefaultSuggestionLimit = 8

type UseCases struct {
	repo            interfaces.Repository
	catalog         *model.Catalog
	suggestionLimit int

	Selection  *SelectionUseCase
	Pricing    *PricingUseCase
	Suggestion *SuggestionUseCase
	Request    *RequestUseCase
}

type Option func(*UseCases)

// WithSuggestionLimit sets the maximum number of check suggestions. Zero or less means no limit.
func WithSuggestionLimit(limit int) Option {
	return func(uc *UseCases) {
		uc.suggestionLimit = limit
	}
}

func New(repo interfaces.Repository, catalog *model.Catalog, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:            repo,
		catalog:         catalog,
		suggestionLimit: DefaultSuggestionLimit,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Selection = NewSelectionUseCase(catalog)
	uc.Pricing = NewPricingUseCase(catalog)
	uc.Suggestion = NewSuggestionUseCase(catalog, uc.Selection, uc.Pricing, uc.suggestionLimit)
	uc.Request = NewRequestUseCase(repo, uc.Selection, uc.Pricing)

	return uc
}

// Catalog returns the catalog the use cases operate on
func (uc *UseCases) Catalog() *model.Catalog {
	return uc.catalog
}
