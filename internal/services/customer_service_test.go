package services

import (
	"context"
	"testing"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceTestSuite struct {
	suite.Suite
	mockCustomerRepo *MockCustomerRepository
	mockCache        *MockCacheService
	service          CustomerService
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockCustomerRepo = &MockCustomerRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewCustomerService(suite.mockCustomerRepo, suite.mockCache)
}

func (suite *CustomerServiceTestSuite) TearDownTest() {
	suite.mockCustomerRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}

func (suite *CustomerServiceTestSuite) TestCreate_Success() {
	customer := &models.Customer{
		Name:  "Test Customer",
		Email: "customer@example.com",
	}

	suite.mockCustomerRepo.On("GetByEmail", mock.Anything, "customer@example.com").Return(nil, nil).Once()
	suite.mockCustomerRepo.On("Create", mock.Anything, customer).Return(nil).Once()

	err := suite.service.Create(context.Background(), customer)

	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, customer.ID)
}

func (suite *CustomerServiceTestSuite) TestCreate_DuplicateEmail() {
	existing := &models.Customer{ID: uuid.New(), Email: "customer@example.com"}
	customer := &models.Customer{
		Name:  "Test Customer",
		Email: "customer@example.com",
	}

	suite.mockCustomerRepo.On("GetByEmail", mock.Anything, "customer@example.com").Return(existing, nil).Once()

	err := suite.service.Create(context.Background(), customer)

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "already exists")
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *CustomerServiceTestSuite) TestCreate_InvalidEmail() {
	customer := &models.Customer{
		Name:  "Test Customer",
		Email: "not-an-email",
	}

	err := suite.service.Create(context.Background(), customer)

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "invalid email format")
}

func (suite *CustomerServiceTestSuite) TestGetByID_CacheMissReadsRepository() {
	customer := &models.Customer{ID: uuid.New(), Name: "Test Customer", Email: "customer@example.com"}

	suite.mockCache.On("GetCustomer", mock.Anything, customer.ID).Return(nil, nil).Once()
	suite.mockCustomerRepo.On("GetByID", mock.Anything, customer.ID).Return(customer, nil).Once()
	suite.mockCache.On("SetCustomer", mock.Anything, customer, mock.Anything).Return(nil).Once()

	got, err := suite.service.GetByID(context.Background(), customer.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), customer, got)
}

func (suite *CustomerServiceTestSuite) TestGetByID_NotFound() {
	customerID := uuid.New()

	suite.mockCache.On("GetCustomer", mock.Anything, customerID).Return(nil, nil).Once()
	suite.mockCustomerRepo.On("GetByID", mock.Anything, customerID).Return(nil, nil).Once()

	got, err := suite.service.GetByID(context.Background(), customerID)

	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), got)
}
