package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"staymart/internal/models"
	"staymart/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockPlaceRepository struct {
	mock.Mock
}

func (m *MockPlaceRepository) Create(ctx context.Context, place *models.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *MockPlaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Place), args.Error(1)
}

func (m *MockPlaceRepository) Update(ctx context.Context, place *models.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *MockPlaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlaceRepository) ListByActivity(ctx context.Context, state int16) ([]*models.Place, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Place), args.Error(1)
}

func (m *MockPlaceRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Place, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Place), args.Error(1)
}

func (m *MockPlaceRepository) ListAll(ctx context.Context) ([]*models.Place, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Place), args.Error(1)
}

func (m *MockPlaceRepository) ListPendingWithOwner(ctx context.Context) ([]*models.PendingPlace, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PendingPlace), args.Error(1)
}

func (m *MockPlaceRepository) SearchByAddress(ctx context.Context, keyword string) ([]*models.Place, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Place), args.Error(1)
}

func (m *MockPlaceRepository) SetActive(ctx context.Context, id uuid.UUID, state int16) error {
	args := m.Called(ctx, id, state)
	return args.Error(0)
}

func (m *MockPlaceRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetActivePlaces(ctx context.Context) ([]*models.Place, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Place), args.Error(1)
}

func (m *MockCacheService) SetActivePlaces(ctx context.Context, places []*models.Place, ttl time.Duration) error {
	args := m.Called(ctx, places, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateActivePlaces(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) GetStats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}

func (m *MockCacheService) SetStats(ctx context.Context, stats *models.Stats, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateStats(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type PlaceServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockPlaceRepository
	mockCache *MockCacheService
	service   PlaceService
	ownerID   uuid.UUID
	placeID   uuid.UUID
}

func (suite *PlaceServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockPlaceRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewPlaceService(suite.mockRepo, suite.mockCache)
	suite.ownerID = uuid.New()
	suite.placeID = uuid.New()
	suite.mockRepo.Test(suite.T())
	suite.mockCache.Test(suite.T())
}

func (suite *PlaceServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestPlaceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PlaceServiceTestSuite))
}

func (suite *PlaceServiceTestSuite) storedPlace() *models.Place {
	return &models.Place{
		ID:           suite.placeID,
		OwnerID:      suite.ownerID,
		Title:        "Lakeside Hostel",
		Address:      "2 Lake Road",
		PropertyType: models.PropertyTypeHostel,
		IsActive:     models.PlacePending,
	}
}

func (suite *PlaceServiceTestSuite) TestAdd_DefaultsPropertyTypeAndPendingState() {
	ctx := context.Background()
	in := &PlaceInput{Title: "Lakeside Hostel", Address: "2 Lake Road", PropertyType: "castle"}

	suite.mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Place")).Return(nil).Run(func(args mock.Arguments) {
		place := args.Get(1).(*models.Place)
		assert.Equal(suite.T(), models.DefaultPropertyType, place.PropertyType)
		assert.Equal(suite.T(), models.PlacePending, place.IsActive)
		assert.Equal(suite.T(), suite.ownerID, place.OwnerID)
	})

	place, err := suite.service.Add(ctx, suite.ownerID, in)
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, place.ID)
}

func (suite *PlaceServiceTestSuite) TestAdd_MissingTitle() {
	place, err := suite.service.Add(context.Background(), suite.ownerID, &PlaceInput{Address: "2 Lake Road"})
	assert.ErrorIs(suite.T(), err, ErrValidation)
	assert.Nil(suite.T(), place)
	suite.mockRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *PlaceServiceTestSuite) TestUpdate_ForbiddenForNonOwner() {
	ctx := context.Background()
	stranger := uuid.New()

	suite.mockRepo.On("GetByID", ctx, suite.placeID).Return(suite.storedPlace(), nil)

	place, err := suite.service.Update(ctx, stranger, suite.placeID, &PlaceInput{Title: "X", Address: "Y"})
	assert.ErrorIs(suite.T(), err, ErrForbidden)
	assert.Nil(suite.T(), place)
	suite.mockRepo.AssertNotCalled(suite.T(), "Update")
}

func (suite *PlaceServiceTestSuite) TestUpdate_PreservesPropertyTypeWhenOmitted() {
	ctx := context.Background()

	suite.mockRepo.On("GetByID", ctx, suite.placeID).Return(suite.storedPlace(), nil)
	suite.mockRepo.On("Update", ctx, mock.AnythingOfType("*models.Place")).Return(nil)
	suite.mockCache.On("InvalidateActivePlaces", ctx).Return(nil)

	place, err := suite.service.Update(ctx, suite.ownerID, suite.placeID, &PlaceInput{Title: "Renamed", Address: "2 Lake Road"})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Renamed", place.Title)
	assert.Equal(suite.T(), models.PropertyTypeHostel, place.PropertyType)
}

func (suite *PlaceServiceTestSuite) TestActive_CacheHitSkipsRepository() {
	ctx := context.Background()
	cached := []*models.Place{suite.storedPlace()}

	suite.mockCache.On("GetActivePlaces", ctx).Return(cached, nil)

	places, err := suite.service.Active(ctx)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, places)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListByActivity")
}

func (suite *PlaceServiceTestSuite) TestActive_CacheMissLoadsAndWarms() {
	ctx := context.Background()
	active := suite.storedPlace()
	active.IsActive = models.PlaceActive

	suite.mockCache.On("GetActivePlaces", ctx).Return(nil, nil)
	suite.mockRepo.On("ListByActivity", ctx, models.PlaceActive).Return([]*models.Place{active}, nil)
	suite.mockCache.On("SetActivePlaces", ctx, []*models.Place{active}, activeFeedTTL).Return(nil)

	places, err := suite.service.Active(ctx)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), places, 1)
}

func (suite *PlaceServiceTestSuite) TestActive_CacheErrorFallsThrough() {
	ctx := context.Background()

	suite.mockCache.On("GetActivePlaces", ctx).Return(nil, errors.New("redis down"))
	suite.mockRepo.On("ListByActivity", ctx, models.PlaceActive).Return([]*models.Place{}, nil)
	suite.mockCache.On("SetActivePlaces", ctx, []*models.Place{}, activeFeedTTL).Return(errors.New("redis down"))

	places, err := suite.service.Active(ctx)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), places)
}

func (suite *PlaceServiceTestSuite) TestSearch_EmptyKeywordReturnsEverything() {
	ctx := context.Background()
	all := []*models.Place{suite.storedPlace()}

	suite.mockRepo.On("ListAll", ctx).Return(all, nil)

	places, err := suite.service.Search(ctx, "")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), all, places)
	suite.mockRepo.AssertNotCalled(suite.T(), "SearchByAddress")
}

func (suite *PlaceServiceTestSuite) TestSearch_KeywordMatchesAddress() {
	ctx := context.Background()

	suite.mockRepo.On("SearchByAddress", ctx, "lake").Return([]*models.Place{suite.storedPlace()}, nil)

	places, err := suite.service.Search(ctx, "lake")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), places, 1)
}

func (suite *PlaceServiceTestSuite) TestActivate_IdempotentAndInvalidatesFeed() {
	ctx := context.Background()

	suite.mockRepo.On("SetActive", ctx, suite.placeID, models.PlaceActive).Return(nil).Twice()
	suite.mockCache.On("InvalidateActivePlaces", ctx).Return(nil).Twice()

	assert.NoError(suite.T(), suite.service.Activate(ctx, suite.placeID))
	assert.NoError(suite.T(), suite.service.Activate(ctx, suite.placeID))
}

func (suite *PlaceServiceTestSuite) TestActivate_UnknownPlace() {
	ctx := context.Background()

	suite.mockRepo.On("SetActive", ctx, suite.placeID, models.PlaceActive).Return(repositories.ErrNotFound)

	err := suite.service.Activate(ctx, suite.placeID)
	assert.ErrorIs(suite.T(), err, repositories.ErrNotFound)
	suite.mockCache.AssertNotCalled(suite.T(), "InvalidateActivePlaces")
}

func (suite *PlaceServiceTestSuite) TestDelete_ForbiddenForNonOwner() {
	ctx := context.Background()
	stranger := uuid.New()

	suite.mockRepo.On("GetByID", ctx, suite.placeID).Return(suite.storedPlace(), nil)

	err := suite.service.Delete(ctx, stranger, suite.placeID)
	assert.ErrorIs(suite.T(), err, ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "Delete")
}

func (suite *PlaceServiceTestSuite) TestDelete_OwnerRemovesListing() {
	ctx := context.Background()

	suite.mockRepo.On("GetByID", ctx, suite.placeID).Return(suite.storedPlace(), nil)
	suite.mockRepo.On("Delete", ctx, suite.placeID).Return(nil)
	suite.mockCache.On("InvalidateActivePlaces", ctx).Return(nil)

	err := suite.service.Delete(ctx, suite.ownerID, suite.placeID)
	assert.NoError(suite.T(), err)
}
