package jobs

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByName(ctx context.Context, name string) (*models.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllByID(ctx context.Context, lines []models.OrderLineRequest) ([]*models.Product, error) {
	args := m.Called(ctx, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateQuantity(ctx context.Context, lines []models.OrderLineRequest) ([]*models.Product, error) {
	args := m.Called(ctx, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) ListLowStock(ctx context.Context, threshold, limit int) ([]*models.Product, error) {
	args := m.Called(ctx, threshold, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

type StockAlertTestSuite struct {
	suite.Suite
	mockProductRepo *MockProductRepository
	service         *StockAlertService
}

func (suite *StockAlertTestSuite) SetupTest() {
	suite.mockProductRepo = &MockProductRepository{}
	suite.service = NewStockAlertService(suite.mockProductRepo)
}

func (suite *StockAlertTestSuite) TearDownTest() {
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func TestStockAlertTestSuite(t *testing.T) {
	suite.Run(t, new(StockAlertTestSuite))
}

func (suite *StockAlertTestSuite) TestCheckLowStock_FlagsProductsAtOrBelowThreshold() {
	products := []*models.Product{
		{ID: uuid.New(), Name: "Almost Gone", Quantity: 2},
		{ID: uuid.New(), Name: "At Threshold", Quantity: 10},
	}

	suite.mockProductRepo.On("ListLowStock", mock.Anything, 10, 1000).Return(products, nil).Once()

	alerts, err := suite.service.CheckLowStock(context.Background(), 10)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), alerts, 2)
	assert.Equal(suite.T(), "Almost Gone", alerts[0].ProductName)
	assert.Equal(suite.T(), 2, alerts[0].CurrentStock)
	assert.Equal(suite.T(), 10, alerts[0].Threshold)
}

func (suite *StockAlertTestSuite) TestCheckLowStock_AppliesDefaultThreshold() {
	suite.mockProductRepo.On("ListLowStock", mock.Anything, 10, 1000).Return([]*models.Product{}, nil).Once()

	alerts, err := suite.service.CheckLowStock(context.Background(), 0)

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), alerts)
}

func (suite *StockAlertTestSuite) TestCheckLowStock_RepositoryError() {
	suite.mockProductRepo.On("ListLowStock", mock.Anything, 10, 1000).Return(nil, errors.New("db down")).Once()

	alerts, err := suite.service.CheckLowStock(context.Background(), 10)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), alerts)
}
