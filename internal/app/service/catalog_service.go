package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/internal/app/ppom"
	"github.com/pinbox-kr/pinbox-backend/internal/app/repository"
	"github.com/pinbox-kr/pinbox-backend/pkg/logger"
	"github.com/pinbox-kr/pinbox-backend/pkg/redis"
	"gorm.io/gorm"
)

var (
	ErrInvalidSelections    = errors.New("required option selections are missing")
	ErrSelectionUnavailable = errors.New("selected options are out of stock")
)

// CatalogGroup 상품에 배정된 옵션 그룹 한 건. 필수 여부는 상품별
// 재정의가 반영된 최종값이다.
type CatalogGroup struct {
	Group      model.OptionGroup `json:"group"`
	IsRequired bool              `json:"is_required"`
	SortOrder  int               `json:"sort_order"`
}

// ProductCatalog 옵션 UI 렌더링과 가격 견적에 필요한 상품 단위 스냅샷.
type ProductCatalog struct {
	Product      model.Product             `json:"product"`
	Groups       []CatalogGroup            `json:"groups"`
	Combinations []model.OptionCombination `json:"combinations"`
}

func (c *ProductCatalog) optionGroups() []model.OptionGroup {
	groups := make([]model.OptionGroup, 0, len(c.Groups))
	for _, g := range c.Groups {
		groups = append(groups, g.Group)
	}
	return groups
}

func (c *ProductCatalog) requiredOverrides() map[uint]bool {
	overrides := make(map[uint]bool, len(c.Groups))
	for _, g := range c.Groups {
		overrides[g.Group.ID] = g.IsRequired
	}
	return overrides
}

// Quote 선택 옵션에 대한 가격 견적.
type Quote struct {
	BasePrice     float64         `json:"base_price"`
	TotalPrice    float64         `json:"total_price"`
	Modifiers     []ppom.Modifier `json:"modifiers"`
	CombinationID *uint           `json:"combination_id,omitempty"`
	Available     bool            `json:"available"`
}

type CatalogService interface {
	GetCatalog(ctx context.Context, productID uint) (*ProductCatalog, error)
	ValidateSelections(ctx context.Context, productID uint, selections ppom.Selections) (ppom.ValidationResult, error)
	QuotePrice(ctx context.Context, productID uint, selections ppom.Selections) (*Quote, error)
	InvalidateCache(ctx context.Context, productID uint)
}

type catalogService struct {
	productRepo repository.ProductRepository
	optionRepo  repository.OptionRepository
	combRepo    repository.CombinationRepository
	cacheTTL    time.Duration
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	optionRepo repository.OptionRepository,
	combRepo repository.CombinationRepository,
	cacheTTL time.Duration,
) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		optionRepo:  optionRepo,
		combRepo:    combRepo,
		cacheTTL:    cacheTTL,
	}
}

func (s *catalogService) GetCatalog(ctx context.Context, productID uint) (*ProductCatalog, error) {
	if cached := s.readCache(ctx, productID); cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to load product for catalog", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	assignments, err := s.optionRepo.FindAssignmentsByProductID(productID)
	if err != nil {
		return nil, err
	}

	combinations, err := s.combRepo.FindByProductID(productID)
	if err != nil {
		return nil, err
	}

	catalog := &ProductCatalog{
		Product:      *product,
		Groups:       make([]CatalogGroup, 0, len(assignments)),
		Combinations: combinations,
	}
	for _, a := range assignments {
		if !a.OptionGroup.IsActive {
			continue
		}
		required := a.OptionGroup.IsRequired
		if a.IsRequired != nil {
			required = *a.IsRequired
		}
		catalog.Groups = append(catalog.Groups, CatalogGroup{
			Group:      a.OptionGroup,
			IsRequired: required,
			SortOrder:  a.SortOrder,
		})
	}

	s.writeCache(ctx, productID, catalog)

	logger.Debug("Product catalog assembled", map[string]interface{}{
		"product_id":   productID,
		"groups":       len(catalog.Groups),
		"combinations": len(catalog.Combinations),
	})
	return catalog, nil
}

func (s *catalogService) ValidateSelections(ctx context.Context, productID uint, selections ppom.Selections) (ppom.ValidationResult, error) {
	catalog, err := s.GetCatalog(ctx, productID)
	if err != nil {
		return ppom.ValidationResult{}, err
	}

	result := ppom.ValidateSelections(catalog.optionGroups(), selections, catalog.requiredOverrides())
	if !result.Valid {
		logger.Debug("Selections failed validation", map[string]interface{}{
			"product_id":     productID,
			"missing_groups": result.MissingGroups,
		})
	}
	return result, nil
}

// QuotePrice 선택 옵션에 대한 단가 견적. 필수 선택이 비면
// ErrInvalidSelections를 반환하고, 매칭 조합이 있으면 조합 가격이
// 계산 가격을 대체한다.
func (s *catalogService) QuotePrice(ctx context.Context, productID uint, selections ppom.Selections) (*Quote, error) {
	catalog, err := s.GetCatalog(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !catalog.Product.IsActive {
		return nil, ErrProductInactive
	}

	result := ppom.ValidateSelections(catalog.optionGroups(), selections, catalog.requiredOverrides())
	if !result.Valid {
		return nil, ErrInvalidSelections
	}

	calc := ppom.EffectivePrice(catalog.Product.BasePrice, catalog.optionGroups(), selections, catalog.Combinations)

	quote := &Quote{
		BasePrice:  calc.BasePrice,
		TotalPrice: calc.TotalPrice,
		Modifiers:  calc.Modifiers,
		Available:  true,
	}
	if calc.Combination != nil {
		id := calc.Combination.ID
		quote.CombinationID = &id
		quote.Available = ppom.CombinationAvailable(*calc.Combination)
	} else {
		quote.Available = s.selectedOptionsAvailable(catalog, selections)
	}

	logger.Debug("Price quoted", map[string]interface{}{
		"product_id":  productID,
		"total_price": quote.TotalPrice,
		"available":   quote.Available,
	})
	return quote, nil
}

func (s *catalogService) selectedOptionsAvailable(catalog *ProductCatalog, selections ppom.Selections) bool {
	for _, g := range catalog.Groups {
		selection, ok := selections[g.Group.ID]
		if !ok {
			continue
		}
		for _, value := range selection.Values() {
			for _, option := range g.Group.Options {
				if formatOptionID(option.ID) == value && !ppom.OptionAvailable(option) {
					return false
				}
			}
		}
	}
	return true
}

func formatOptionID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (s *catalogService) InvalidateCache(ctx context.Context, productID uint) {
	if redis.GetClient() == nil {
		return
	}
	if err := redis.InvalidateCatalog(ctx, productID); err != nil {
		logger.Warn("Failed to invalidate catalog cache", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
	}
}

func (s *catalogService) readCache(ctx context.Context, productID uint) *ProductCatalog {
	if redis.GetClient() == nil {
		return nil
	}

	payload, err := redis.GetCatalog(ctx, productID)
	if err != nil || payload == "" {
		return nil
	}

	var catalog ProductCatalog
	if err := json.Unmarshal([]byte(payload), &catalog); err != nil {
		logger.Warn("Failed to decode cached catalog", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
		return nil
	}
	return &catalog
}

func (s *catalogService) writeCache(ctx context.Context, productID uint, catalog *ProductCatalog) {
	if redis.GetClient() == nil {
		return
	}

	payload, err := json.Marshal(catalog)
	if err != nil {
		return
	}
	if err := redis.SetCatalog(ctx, productID, string(payload), s.cacheTTL); err != nil {
		logger.Warn("Failed to cache catalog", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
	}
}
