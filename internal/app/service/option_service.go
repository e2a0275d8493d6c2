package service

import (
	"context"
	"errors"

	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/internal/app/ppom"
	"github.com/pinbox-kr/pinbox-backend/internal/app/repository"
	"github.com/pinbox-kr/pinbox-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOptionGroupNotFound = errors.New("option group not found")
	ErrOptionNotFound      = errors.New("option not found")
	ErrCombinationNotFound = errors.New("option combination not found")
	ErrGroupInUse          = errors.New("option group is still assigned to products")
)

// MaterializeResult 조합 생성 실행 결과.
type MaterializeResult struct {
	Created int `json:"created"` // 새로 생성된 조합 수
	Skipped int `json:"skipped"` // 이미 존재해 건너뛴 조합 수
}

type OptionService interface {
	CreateGroup(group *model.OptionGroup) error
	GetGroups(globalOnly bool) ([]model.OptionGroup, error)
	GetGroupByID(id uint) (*model.OptionGroup, error)
	UpdateGroup(ctx context.Context, group *model.OptionGroup) error
	DeleteGroup(ctx context.Context, id uint) error

	AddOption(ctx context.Context, option *model.Option) error
	GetOptionByID(id uint) (*model.Option, error)
	UpdateOption(ctx context.Context, option *model.Option) error
	DeleteOption(ctx context.Context, id uint) error

	AssignGroup(ctx context.Context, assignment *model.ProductOptionGroup) error
	UnassignGroup(ctx context.Context, productID, groupID uint) error
	UpdateAssignment(ctx context.Context, assignment *model.ProductOptionGroup) error

	GetCombinations(productID uint) ([]model.OptionCombination, error)
	GetCombinationByID(id uint) (*model.OptionCombination, error)
	MaterializeCombinations(ctx context.Context, productID uint, limit int) (*MaterializeResult, error)
	UpdateCombination(ctx context.Context, combination *model.OptionCombination) error
	DeleteCombination(ctx context.Context, id uint) error
}

type optionService struct {
	optionRepo  repository.OptionRepository
	combRepo    repository.CombinationRepository
	productRepo repository.ProductRepository
	catalogSvc  CatalogService
}

func NewOptionService(
	optionRepo repository.OptionRepository,
	combRepo repository.CombinationRepository,
	productRepo repository.ProductRepository,
	catalogSvc CatalogService,
) OptionService {
	return &optionService{
		optionRepo:  optionRepo,
		combRepo:    combRepo,
		productRepo: productRepo,
		catalogSvc:  catalogSvc,
	}
}

func (s *optionService) CreateGroup(group *model.OptionGroup) error {
	logger.Info("Creating option group", map[string]interface{}{
		"name": group.Name,
		"slug": group.Slug,
	})
	return s.optionRepo.CreateGroup(group)
}

func (s *optionService) GetGroups(globalOnly bool) ([]model.OptionGroup, error) {
	return s.optionRepo.FindGroups(globalOnly)
}

func (s *optionService) GetGroupByID(id uint) (*model.OptionGroup, error) {
	group, err := s.optionRepo.FindGroupByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOptionGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (s *optionService) UpdateGroup(ctx context.Context, group *model.OptionGroup) error {
	if _, err := s.optionRepo.FindGroupByID(group.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOptionGroupNotFound
		}
		return err
	}

	if err := s.optionRepo.UpdateGroup(group); err != nil {
		return err
	}

	s.invalidateGroupProducts(ctx, group.ID)
	return nil
}

// DeleteGroup 그룹 삭제. 상품에 배정된 그룹은 먼저 배정을 해제해야 한다.
func (s *optionService) DeleteGroup(ctx context.Context, id uint) error {
	if _, err := s.optionRepo.FindGroupByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOptionGroupNotFound
		}
		return err
	}

	count, err := s.optionRepo.CountAssignments(id)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Warn("Refusing to delete assigned option group", map[string]interface{}{
			"group_id":    id,
			"assignments": count,
		})
		return ErrGroupInUse
	}

	return s.optionRepo.DeleteGroup(id)
}

func (s *optionService) AddOption(ctx context.Context, option *model.Option) error {
	if _, err := s.optionRepo.FindGroupByID(option.OptionGroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOptionGroupNotFound
		}
		return err
	}

	if err := s.optionRepo.CreateOption(option); err != nil {
		return err
	}

	s.invalidateGroupProducts(ctx, option.OptionGroupID)
	return nil
}

func (s *optionService) GetOptionByID(id uint) (*model.Option, error) {
	option, err := s.optionRepo.FindOptionByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOptionNotFound
		}
		return nil, err
	}
	return option, nil
}

func (s *optionService) UpdateOption(ctx context.Context, option *model.Option) error {
	existing, err := s.optionRepo.FindOptionByID(option.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOptionNotFound
		}
		return err
	}
	option.OptionGroupID = existing.OptionGroupID

	if err := s.optionRepo.UpdateOption(option); err != nil {
		return err
	}

	s.invalidateGroupProducts(ctx, option.OptionGroupID)
	return nil
}

func (s *optionService) DeleteOption(ctx context.Context, id uint) error {
	option, err := s.optionRepo.FindOptionByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOptionNotFound
		}
		return err
	}

	if err := s.optionRepo.DeleteOption(id); err != nil {
		return err
	}

	s.invalidateGroupProducts(ctx, option.OptionGroupID)
	return nil
}

func (s *optionService) AssignGroup(ctx context.Context, assignment *model.ProductOptionGroup) error {
	if _, err := s.productRepo.FindByID(assignment.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if _, err := s.optionRepo.FindGroupByID(assignment.OptionGroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOptionGroupNotFound
		}
		return err
	}

	if err := s.optionRepo.AssignGroup(assignment); err != nil {
		return err
	}

	s.catalogSvc.InvalidateCache(ctx, assignment.ProductID)
	return nil
}

func (s *optionService) UnassignGroup(ctx context.Context, productID, groupID uint) error {
	if err := s.optionRepo.UnassignGroup(productID, groupID); err != nil {
		return err
	}

	s.catalogSvc.InvalidateCache(ctx, productID)
	return nil
}

func (s *optionService) UpdateAssignment(ctx context.Context, assignment *model.ProductOptionGroup) error {
	if err := s.optionRepo.UpdateAssignment(assignment); err != nil {
		return err
	}

	s.catalogSvc.InvalidateCache(ctx, assignment.ProductID)
	return nil
}

func (s *optionService) GetCombinations(productID uint) ([]model.OptionCombination, error) {
	return s.combRepo.FindByProductID(productID)
}

func (s *optionService) GetCombinationByID(id uint) (*model.OptionCombination, error) {
	combination, err := s.combRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCombinationNotFound
		}
		return nil, err
	}
	return combination, nil
}

// MaterializeCombinations 단일 선택 그룹의 활성 옵션으로 카테시안 조합을
// 생성한다. 이미 존재하는 조합(정규 직렬화 기준)은 건너뛰므로 여러 번
// 실행해도 중복이 생기지 않는다. 새 조합은 가격 0, 무제한 재고로 들어가고
// 가격은 관리자가 이후에 편집한다.
func (s *optionService) MaterializeCombinations(ctx context.Context, productID uint, limit int) (*MaterializeResult, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	catalog, err := s.catalogSvc.GetCatalog(ctx, productID)
	if err != nil {
		return nil, err
	}

	assignments, err := ppom.Generate(catalog.optionGroups(), limit)
	if err != nil {
		logger.Warn("Combination generation refused", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
		return nil, err
	}

	existing, err := s.combRepo.FindByProductID(productID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, c := range existing {
		seen[c.Combination] = true
	}

	var rows []model.OptionCombination
	skipped := 0
	for _, assignment := range assignments {
		encoded := ppom.EncodeAssignment(assignment)
		if seen[encoded] {
			skipped++
			continue
		}
		rows = append(rows, model.OptionCombination{
			ProductID:   productID,
			Combination: encoded,
			StockType:   model.StockUnlimited,
			IsAvailable: true,
			IsActive:    true,
		})
	}

	if err := s.combRepo.CreateBatch(rows); err != nil {
		return nil, err
	}

	s.catalogSvc.InvalidateCache(ctx, productID)

	logger.Info("Combinations materialized", map[string]interface{}{
		"product_id": productID,
		"created":    len(rows),
		"skipped":    skipped,
	})
	return &MaterializeResult{Created: len(rows), Skipped: skipped}, nil
}

func (s *optionService) UpdateCombination(ctx context.Context, combination *model.OptionCombination) error {
	existing, err := s.combRepo.FindByID(combination.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCombinationNotFound
		}
		return err
	}

	// 키와 소속 상품은 불변. 가격과 재고만 편집된다.
	combination.ProductID = existing.ProductID
	combination.Combination = existing.Combination

	if err := s.combRepo.Update(combination); err != nil {
		return err
	}

	s.catalogSvc.InvalidateCache(ctx, combination.ProductID)
	return nil
}

func (s *optionService) DeleteCombination(ctx context.Context, id uint) error {
	combination, err := s.combRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCombinationNotFound
		}
		return err
	}

	if err := s.combRepo.Delete(id); err != nil {
		return err
	}

	s.catalogSvc.InvalidateCache(ctx, combination.ProductID)
	return nil
}

func (s *optionService) invalidateGroupProducts(ctx context.Context, groupID uint) {
	productIDs, err := s.optionRepo.FindProductIDsByGroupID(groupID)
	if err != nil {
		return
	}
	for _, id := range productIDs {
		s.catalogSvc.InvalidateCache(ctx, id)
	}
}
