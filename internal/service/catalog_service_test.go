package service_test

import (
	"context"
	"testing"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/apierror"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/model"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCreate_ServiceRequiresDuration(t *testing.T) {
	svc := service.NewCatalogService(newStubCatalogRepo())

	_, err := svc.Create(context.Background(), dto.CreateCatalogItemRequest{
		Kind:  model.KindService,
		Name:  "Barba Completa",
		Price: decimal.NewFromInt(30),
	})
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindValidation))

	dur := 25
	resp, err := svc.Create(context.Background(), dto.CreateCatalogItemRequest{
		Kind:        model.KindService,
		Name:        "Barba Completa",
		Price:       decimal.NewFromInt(30),
		DurationMin: &dur,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.DurationMin)
	assert.Equal(t, 25, *resp.DurationMin)
	assert.Zero(t, resp.Stock)
}

func TestCatalogCreate_ProductCarriesInitialStock(t *testing.T) {
	repo := newStubCatalogRepo()
	svc := service.NewCatalogService(repo)

	dur := 25
	resp, err := svc.Create(context.Background(), dto.CreateCatalogItemRequest{
		Kind:        model.KindProduct,
		Name:        "Pomada",
		Price:       decimal.NewFromInt(35),
		Stock:       12,
		MinStock:    3,
		DurationMin: &dur, // ignored for products
	})
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Stock)
	assert.Nil(t, resp.DurationMin)
	assert.True(t, resp.Active)
}

func TestCatalogUpdate_DoesNotTouchStock(t *testing.T) {
	repo := newStubCatalogRepo()
	svc := service.NewCatalogService(repo)
	pomada := seedProduct(repo, "Pomada", 35, 7, 2)

	resp, err := svc.Update(context.Background(), pomada.ID, dto.UpdateCatalogItemRequest{
		Name:     "Pomada Matte",
		Price:    decimal.NewFromInt(42),
		MinStock: 4,
		Active:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Pomada Matte", resp.Name)
	assert.Equal(t, "42", resp.Price.String())
	assert.Equal(t, 7, resp.Stock)
}
