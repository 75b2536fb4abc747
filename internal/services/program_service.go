package services

import (
	"context"
	"time"

	"taployalty/internal/models"
	"taployalty/internal/repositories/interfaces"
	"taployalty/internal/validators"
	"taployalty/pkg/logger"
)

type ProgramService interface {
	CreateCoffeeProgram(ctx context.Context, merchantID string, req *models.CoffeeProgramRequest) (*models.Program, error)
	CreateVoucherProgram(ctx context.Context, merchantID string, req *models.VoucherProgramRequest) (*models.Program, error)
	CreateTransactionProgram(ctx context.Context, merchantID string, req *models.TransactionProgramRequest) (*models.Program, error)
	CreateCashbackProgram(ctx context.Context, merchantID string, req *models.CashbackProgramRequest) (*models.Program, error)
	ListPrograms(ctx context.Context, merchantID string) ([]*models.Program, error)
}

type programService struct {
	programRepo interfaces.ProgramRepository
	logger      *logger.Logger
}

func NewProgramService(programRepo interfaces.ProgramRepository, log *logger.Logger) ProgramService {
	return &programService{
		programRepo: programRepo,
		logger:      log,
	}
}

func (s *programService) CreateCoffeeProgram(ctx context.Context, merchantID string, req *models.CoffeeProgramRequest) (*models.Program, error) {
	if errs := validators.ValidateStruct(req); errs != nil {
		return nil, errs
	}

	program := &models.Program{
		MerchantID:      merchantID,
		Type:            models.ProgramTypeCoffee,
		Name:            "Coffee Program",
		PIN:             req.PIN,
		IsActive:        true,
		FirstCoffeeFree: req.FirstCoffeeFree,
		Frequency:       req.Frequency,
		Levels:          req.Levels,
	}

	return s.save(ctx, program)
}

func (s *programService) CreateVoucherProgram(ctx context.Context, merchantID string, req *models.VoucherProgramRequest) (*models.Program, error) {
	if errs := validators.ValidateStruct(req); errs != nil {
		return nil, errs
	}

	program := &models.Program{
		MerchantID:     merchantID,
		Type:           models.ProgramTypeVoucher,
		Name:           req.Name,
		PIN:            req.PIN,
		IsActive:       true,
		VoucherAmount:  req.VoucherAmount,
		SpendThreshold: req.SpendThreshold,
	}

	return s.save(ctx, program)
}

func (s *programService) CreateTransactionProgram(ctx context.Context, merchantID string, req *models.TransactionProgramRequest) (*models.Program, error) {
	if errs := validators.ValidateStruct(req); errs != nil {
		return nil, errs
	}

	program := &models.Program{
		MerchantID:          merchantID,
		Type:                models.ProgramTypeTransaction,
		Name:                req.Name,
		PIN:                 req.PIN,
		IsActive:            true,
		TransactionInterval: req.TransactionInterval,
		RewardDescription:   req.RewardDescription,
	}

	return s.save(ctx, program)
}

func (s *programService) CreateCashbackProgram(ctx context.Context, merchantID string, req *models.CashbackProgramRequest) (*models.Program, error) {
	if errs := validators.ValidateStruct(req); errs != nil {
		return nil, errs
	}

	program := &models.Program{
		MerchantID:   merchantID,
		Type:         models.ProgramTypeCashback,
		Name:         req.Name,
		IsActive:     true,
		CashbackRate: req.CashbackRate,
	}

	return s.save(ctx, program)
}

func (s *programService) ListPrograms(ctx context.Context, merchantID string) ([]*models.Program, error) {
	return s.programRepo.ListByMerchant(ctx, merchantID)
}

func (s *programService) save(ctx context.Context, program *models.Program) (*models.Program, error) {
	program.CreatedAt = time.Now()
	program.UpdatedAt = program.CreatedAt

	if err := s.programRepo.Upsert(ctx, program); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"merchant_id": program.MerchantID,
		"type":        string(program.Type),
	}).Info("program created")

	return program, nil
}
