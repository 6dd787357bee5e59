package service

import (
	"errors"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/pkg/validator"

	"github.com/google/uuid"
)

type CatalogService interface {
	CreateCategory(req *model.Category) error
	UpdateCategory(id uuid.UUID, req *model.Category) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error
	GetAllCategories() ([]model.Category, error)
	GetCategoryByID(id uuid.UUID) (*model.Category, error)

	CreateProduct(req *model.Product) error
	UpdateProduct(id uuid.UUID, req *model.Product) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

func NewCatalogService(cRepo repository.CategoryRepository, pRepo repository.ProductRepository) CatalogService {
	return &catalogService{
		categoryRepo: cRepo,
		productRepo:  pRepo,
	}
}

func (s *catalogService) CreateCategory(req *model.Category) error {
	// 1. Validasi Struct Dasar
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return errors.New(errs[0].Message())
	}

	// 2. Duplicate name check (Business Logic Validation)
	existing, _ := s.categoryRepo.FindByName(req.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return errors.New("category name already exists")
	}

	return s.categoryRepo.Create(req)
}

func (s *catalogService) UpdateCategory(id uuid.UUID, req *model.Category) (*model.Category, error) {
	existing, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		return nil, errors.New(errs[0].Message())
	}

	if err := s.categoryRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteCategory removes the category; its products keep existing with a NULL
// category reference.
func (s *catalogService) DeleteCategory(id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(id)
}

func (s *catalogService) GetAllCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *catalogService) GetCategoryByID(id uuid.UUID) (*model.Category, error) {
	return s.categoryRepo.FindByID(id)
}

func (s *catalogService) CreateProduct(req *model.Product) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return errors.New(errs[0].Message())
	}
	if req.Price.IsNegative() {
		return errors.New("price must not be negative")
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*req.CategoryID); err != nil {
			return errors.New("category not found")
		}
	}
	return s.productRepo.Create(req)
}

// UpdateProduct edits catalog fields only. Stock is also editable here for
// corrections; sales never go through this path.
func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Price.IsNegative() {
		return nil, errors.New("price must not be negative")
	}
	existing.Price = req.Price
	if req.Stock < 0 {
		return nil, errors.New("stock must not be negative")
	}
	existing.Stock = req.Stock
	existing.Description = req.Description
	existing.Image = req.Image
	existing.CategoryID = req.CategoryID
	existing.Category = nil

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}
