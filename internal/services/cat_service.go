package services

import (
	"context"

	"github.com/4oBuko/spy-cat-console/internal/metrics"
	"github.com/4oBuko/spy-cat-console/internal/models"
	"github.com/4oBuko/spy-cat-console/internal/myerrors"
	"github.com/4oBuko/spy-cat-console/pkg/agencyapi"
	"go.uber.org/zap"
)

// Messages shown when the agency does not supply a detail.
const (
	MsgFetchFailed    = "Failed to fetch cats"
	MsgCreateFailed   = "Error creating cat"
	MsgUpdateFailed   = "Error updating salary"
	MsgDeleteFailed   = "Error deleting cat"
	MsgCompleteFailed = "Error marking target as completed"
)

type CatService interface {
	GetAll(ctx context.Context) ([]models.Cat, error)
	Add(ctx context.Context, form models.CatForm) (models.Cat, error)
	UpdateSalary(ctx context.Context, id int64, input string) (models.Cat, error)
	DeleteById(ctx context.Context, id int64) error
}

type DefaultCatService struct {
	agencyAPI agencyapi.AgencyAPI
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func NewDefaultCatService(agencyAPI agencyapi.AgencyAPI, logger *zap.Logger, m *metrics.Metrics) *DefaultCatService {
	return &DefaultCatService{
		agencyAPI: agencyAPI,
		logger:    logger,
		metrics:   m,
	}
}

func (d *DefaultCatService) GetAll(ctx context.Context) ([]models.Cat, error) {
	cats, err := d.agencyAPI.ListCats(ctx)
	if err != nil {
		d.logger.Warn("failed to fetch cats", zap.Error(err))
		return nil, &myerrors.RequestError{Message: MsgFetchFailed, Err: err}
	}
	return cats, nil
}

func (d *DefaultCatService) Add(ctx context.Context, form models.CatForm) (models.Cat, error) {
	create, err := ParseCatForm(form)
	if err != nil {
		d.rejected("register")
		return models.Cat{}, err
	}
	cat, err := d.agencyAPI.CreateCat(ctx, create)
	if err != nil {
		return models.Cat{}, operatorError(d.logger, "create cat", err, MsgCreateFailed)
	}
	d.logger.Info("cat registered", zap.Int64("cat_id", cat.Id), zap.String("breed", cat.Breed))
	return cat, nil
}

func (d *DefaultCatService) UpdateSalary(ctx context.Context, id int64, input string) (models.Cat, error) {
	salary, err := ParseSalary(input)
	if err != nil {
		d.rejected("salary")
		return models.Cat{}, err
	}
	cat, err := d.agencyAPI.UpdateCat(ctx, id, models.CatUpdate{Salary: salary})
	if err != nil {
		return models.Cat{}, operatorError(d.logger, "update salary", err, MsgUpdateFailed)
	}
	return cat, nil
}

func (d *DefaultCatService) DeleteById(ctx context.Context, id int64) error {
	if err := d.agencyAPI.DeleteCat(ctx, id); err != nil {
		return operatorError(d.logger, "delete cat", err, MsgDeleteFailed)
	}
	d.logger.Info("cat deleted", zap.Int64("cat_id", id))
	return nil
}

func (d *DefaultCatService) rejected(form string) {
	if d.metrics != nil {
		d.metrics.IncrementValidationError(form)
	}
}

// operatorError turns an upstream failure into the message the operator
// sees: the agency's detail when present, the fallback otherwise.
func operatorError(logger *zap.Logger, action string, err error, fallback string) error {
	logger.Warn("agency request failed", zap.String("action", action), zap.Error(err))
	if detail, ok := agencyapi.DetailOf(err); ok {
		return &myerrors.RequestError{Message: detail, Err: err}
	}
	return &myerrors.RequestError{Message: fallback, Err: err}
}
