package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/4oBuko/spy-cat-console/internal/models"
	"github.com/4oBuko/spy-cat-console/pkg/agencyapi"
	"go.uber.org/zap"
)

// ErrRosterRefresh marks a target completion that succeeded upstream but
// whose follow-up roster fetch failed.
var ErrRosterRefresh = errors.New("roster refresh failed")

type MissionService interface {
	CompleteTarget(ctx context.Context, targetId int64) ([]models.Cat, error)
}

type DefaultMissionService struct {
	agencyAPI  agencyapi.AgencyAPI
	catService CatService
	logger     *zap.Logger
}

func NewDefaultMissionService(agencyAPI agencyapi.AgencyAPI, catService CatService, logger *zap.Logger) *DefaultMissionService {
	return &DefaultMissionService{
		agencyAPI:  agencyAPI,
		catService: catService,
		logger:     logger,
	}
}

// CompleteTarget marks the target complete and returns the re-fetched
// roster. Mission completion is computed by the agency, never here.
func (d *DefaultMissionService) CompleteTarget(ctx context.Context, targetId int64) ([]models.Cat, error) {
	if err := d.agencyAPI.CompleteTarget(ctx, targetId); err != nil {
		return nil, operatorError(d.logger, "complete target", err, MsgCompleteFailed)
	}
	d.logger.Info("target completed", zap.Int64("target_id", targetId))

	cats, err := d.catService.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRosterRefresh, err)
	}
	return cats, nil
}
