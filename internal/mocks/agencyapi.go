// Package mocks holds testify mocks shared by the package tests.
package mocks

import (
	"context"

	"github.com/4oBuko/spy-cat-console/internal/models"
	"github.com/4oBuko/spy-cat-console/pkg/agencyapi"
	"github.com/stretchr/testify/mock"
)

type MockAgencyAPI struct {
	mock.Mock
}

var _ agencyapi.AgencyAPI = (*MockAgencyAPI)(nil)

func (m *MockAgencyAPI) ListCats(ctx context.Context) ([]models.Cat, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]models.Cat)
	return cats, args.Error(1)
}

func (m *MockAgencyAPI) CreateCat(ctx context.Context, cat models.CatCreate) (models.Cat, error) {
	args := m.Called(ctx, cat)
	return args.Get(0).(models.Cat), args.Error(1)
}

func (m *MockAgencyAPI) UpdateCat(ctx context.Context, id int64, update models.CatUpdate) (models.Cat, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(models.Cat), args.Error(1)
}

func (m *MockAgencyAPI) DeleteCat(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAgencyAPI) CompleteTarget(ctx context.Context, targetId int64) error {
	args := m.Called(ctx, targetId)
	return args.Error(0)
}
