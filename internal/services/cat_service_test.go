package services

import (
	"context"
	"errors"
	"testing"

	"github.com/4oBuko/spy-cat-console/internal/metrics"
	"github.com/4oBuko/spy-cat-console/internal/mocks"
	"github.com/4oBuko/spy-cat-console/internal/models"
	"github.com/4oBuko/spy-cat-console/internal/myerrors"
	"github.com/4oBuko/spy-cat-console/pkg/agencyapi"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var validForm = models.CatForm{
	Name:              "Silky",
	YearsOfExperience: "2",
	Breed:             "Bengal",
	Salary:            "500.75",
}

func newCatService(api agencyapi.AgencyAPI) (*DefaultCatService, *metrics.Metrics) {
	m := metrics.New()
	return NewDefaultCatService(api, zap.NewNop(), m), m
}

func requireOperatorMessage(t *testing.T, err error, message string) {
	t.Helper()
	var reqErr *myerrors.RequestError
	require.True(t, errors.As(err, &reqErr), "expected RequestError, got %T", err)
	assert.Equal(t, message, reqErr.Message)
}

func TestAddRejectsIncompleteForm(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CatForm)
	}{
		{"empty name", func(f *models.CatForm) { f.Name = "" }},
		{"blank name", func(f *models.CatForm) { f.Name = "   " }},
		{"empty experience", func(f *models.CatForm) { f.YearsOfExperience = "" }},
		{"fractional experience", func(f *models.CatForm) { f.YearsOfExperience = "1.5" }},
		{"negative experience", func(f *models.CatForm) { f.YearsOfExperience = "-1" }},
		{"empty breed", func(f *models.CatForm) { f.Breed = "" }},
		{"unknown breed", func(f *models.CatForm) { f.Breed = "Tiger" }},
		{"empty salary", func(f *models.CatForm) { f.Salary = "" }},
		{"negative salary", func(f *models.CatForm) { f.Salary = "-10" }},
		{"text salary", func(f *models.CatForm) { f.Salary = "lots" }},
		{"exponent with fraction experience", func(f *models.CatForm) { f.YearsOfExperience = "1.5e0" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mocks.MockAgencyAPI{}
			service, m := newCatService(api)
			form := validForm
			tt.mutate(&form)

			_, err := service.Add(context.Background(), form)
			requireOperatorMessage(t, err, MsgInvalidForm)
			api.AssertNotCalled(t, "CreateCat", mock.Anything, mock.Anything)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationErrors.WithLabelValues("register")))
		})
	}
}

func TestAddCreatesCat(t *testing.T) {
	api := &mocks.MockAgencyAPI{}
	service, _ := newCatService(api)
	created := models.Cat{Id: 12, Name: "Silky", YearsOfExperience: 2, Breed: "Bengal", Salary: 500.75}
	api.On("CreateCat", mock.Anything, models.CatCreate{
		Name: " Silky ", YearsOfExperience: 10, Breed: "Bengal", Salary: 1000,
	}).Return(created, nil).Once()

	form := validForm
	form.Name = " Silky "
	form.YearsOfExperience = "1e1"
	form.Salary = "1e3"
	cat, err := service.Add(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, created, cat)
	api.AssertExpectations(t)
}

func TestAddSurfacesAgencyDetail(t *testing.T) {
	t.Run("detail present", func(t *testing.T) {
		api := &mocks.MockAgencyAPI{}
		service, _ := newCatService(api)
		api.On("CreateCat", mock.Anything, mock.Anything).
			Return(models.Cat{}, &agencyapi.HTTPError{StatusCode: 400, Detail: "Invalid breed"})

		_, err := service.Add(context.Background(), validForm)
		requireOperatorMessage(t, err, "Invalid breed")
	})

	t.Run("detail missing", func(t *testing.T) {
		api := &mocks.MockAgencyAPI{}
		service, _ := newCatService(api)
		api.On("CreateCat", mock.Anything, mock.Anything).
			Return(models.Cat{}, &agencyapi.HTTPError{StatusCode: 500})

		_, err := service.Add(context.Background(), validForm)
		requireOperatorMessage(t, err, MsgCreateFailed)
	})

	t.Run("transport failure", func(t *testing.T) {
		api := &mocks.MockAgencyAPI{}
		service, _ := newCatService(api)
		cause := errors.New("connection refused")
		api.On("CreateCat", mock.Anything, mock.Anything).Return(models.Cat{}, cause)

		_, err := service.Add(context.Background(), validForm)
		requireOperatorMessage(t, err, MsgCreateFailed)
		assert.ErrorIs(t, err, cause)
	})
}

func TestUpdateSalary(t *testing.T) {
	t.Run("sends parsed salary", func(t *testing.T) {
		api := &mocks.MockAgencyAPI{}
		service, _ := newCatService(api)
		echoed := models.Cat{Id: 3, Name: "Morgana", Salary: 5000.5}
		api.On("UpdateCat", mock.Anything, int64(3), models.CatUpdate{Salary: 5000.50}).Return(echoed, nil).Once()

		cat, err := service.UpdateSalary(context.Background(), 3, "5000.50")
		require.NoError(t, err)
		assert.Equal(t, echoed, cat)
		api.AssertExpectations(t)
	})

	t.Run("invalid input never reaches the agency", func(t *testing.T) {
		for _, input := range []string{"", "abc", "-1", "NaN", "Inf"} {
			api := &mocks.MockAgencyAPI{}
			service, _ := newCatService(api)

			_, err := service.UpdateSalary(context.Background(), 3, input)
			requireOperatorMessage(t, err, MsgInvalidSalary)
			api.AssertNotCalled(t, "UpdateCat", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("agency failure", func(t *testing.T) {
		api := &mocks.MockAgencyAPI{}
		service, _ := newCatService(api)
		api.On("UpdateCat", mock.Anything, int64(3), mock.Anything).
			Return(models.Cat{}, &agencyapi.HTTPError{StatusCode: 404, Detail: "Cat not found"})

		_, err := service.UpdateSalary(context.Background(), 3, "10")
		requireOperatorMessage(t, err, "Cat not found")
	})
}

func TestDeleteById(t *testing.T) {
	api := &mocks.MockAgencyAPI{}
	service, _ := newCatService(api)
	api.On("DeleteCat", mock.Anything, int64(1)).Return(nil).Once()
	api.On("DeleteCat", mock.Anything, int64(2)).Return(&agencyapi.HTTPError{StatusCode: 500}).Once()

	require.NoError(t, service.DeleteById(context.Background(), 1))
	requireOperatorMessage(t, service.DeleteById(context.Background(), 2), MsgDeleteFailed)
	api.AssertExpectations(t)
}

func TestGetAll(t *testing.T) {
	api := &mocks.MockAgencyAPI{}
	service, _ := newCatService(api)
	cats := []models.Cat{{Id: 1, Name: "Silky"}}
	api.On("ListCats", mock.Anything).Return(cats, nil).Once()
	api.On("ListCats", mock.Anything).Return(nil, &agencyapi.HTTPError{StatusCode: 502, Detail: "upstream down"}).Once()

	got, err := service.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cats, got)

	_, err = service.GetAll(context.Background())
	requireOperatorMessage(t, err, MsgFetchFailed)
}

func TestSalaryInputAcceptedAlikeByRegistrationAndEdit(t *testing.T) {
	tests := []struct {
		input string
		valid bool
		want  float64
	}{
		{"5000.50", true, 5000.5},
		{"1e3", true, 1000},
		{".5", true, 0.5},
		{"5000.", true, 5000},
		{"+12", true, 12},
		{" 42 ", true, 42},
		{"0", true, 0},
		{"1_000", false, 0},
		{"0x10", false, 0},
		{"Inf", false, 0},
		{"NaN", false, 0},
		{"1e400", false, 0},
		{"-1", false, 0},
		{"", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			api := &mocks.MockAgencyAPI{}
			service, _ := newCatService(api)
			if tt.valid {
				api.On("CreateCat", mock.Anything, mock.MatchedBy(func(c models.CatCreate) bool {
					return c.Salary == tt.want
				})).Return(models.Cat{Id: 1}, nil).Once()
				api.On("UpdateCat", mock.Anything, int64(1), models.CatUpdate{Salary: tt.want}).
					Return(models.Cat{Id: 1, Salary: tt.want}, nil).Once()
			}

			form := validForm
			form.Salary = tt.input
			_, addErr := service.Add(context.Background(), form)
			_, updateErr := service.UpdateSalary(context.Background(), 1, tt.input)

			if tt.valid {
				assert.NoError(t, addErr)
				assert.NoError(t, updateErr)
			} else {
				requireOperatorMessage(t, addErr, MsgInvalidForm)
				requireOperatorMessage(t, updateErr, MsgInvalidSalary)
			}
			api.AssertExpectations(t)
		})
	}
}
