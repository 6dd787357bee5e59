package service

import (
	"errors"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/pkg/validator"

	"github.com/google/uuid"
)

type CustomerService interface {
	CreateCustomer(req *model.Customer) error
	UpdateCustomer(id uuid.UUID, req *model.Customer) (*model.Customer, error)
	DeleteCustomer(id uuid.UUID) error
	GetAllCustomers() ([]model.Customer, error)
	GetCustomerByID(id uuid.UUID) (*model.Customer, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(cRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: cRepo}
}

func (s *customerService) CreateCustomer(req *model.Customer) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return errors.New(errs[0].Message())
	}
	return s.customerRepo.Create(req)
}

func (s *customerService) UpdateCustomer(id uuid.UUID, req *model.Customer) (*model.Customer, error) {
	existing, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Email != nil {
		existing.Email = req.Email
	}
	if req.Phone != "" {
		existing.Phone = req.Phone
	}
	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		return nil, errors.New(errs[0].Message())
	}

	if err := s.customerRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *customerService) DeleteCustomer(id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(id); err != nil {
		return err
	}
	return s.customerRepo.Delete(id)
}

func (s *customerService) GetAllCustomers() ([]model.Customer, error) {
	return s.customerRepo.FindAll()
}

func (s *customerService) GetCustomerByID(id uuid.UUID) (*model.Customer, error) {
	return s.customerRepo.FindByID(id)
}
