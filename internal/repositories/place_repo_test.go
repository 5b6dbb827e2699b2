package repositories

import (
	"context"
	"testing"
	"time"

	"staymart/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type PlaceRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    PlaceRepository
	ownerID uuid.UUID
	placeID uuid.UUID
	context context.Context
}

func (suite *PlaceRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewPlaceRepo(mock)
	suite.ownerID = uuid.New()
	suite.placeID = uuid.New()
	suite.context = context.Background()
}

func (suite *PlaceRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestPlaceRepoTestSuite(t *testing.T) {
	suite.Run(t, new(PlaceRepoTestSuite))
}

var placeRowColumns = []string{"id", "owner_id", "title", "address", "photos", "description", "perks", "extra_info", "max_guests", "price", "property_type", "is_active", "created_at", "updated_at"}

func (suite *PlaceRepoTestSuite) samplePlace(state int16) *models.Place {
	return &models.Place{
		ID:           suite.placeID,
		OwnerID:      suite.ownerID,
		Title:        "Sea View PG",
		Address:      "14 Marine Drive, Mumbai",
		Photos:       []string{"https://cdn.example.com/p1.jpg"},
		Perks:        []string{"wifi"},
		PropertyType: models.PropertyTypePG,
		IsActive:     state,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func placeRow(p *models.Place) *pgxmock.Rows {
	return pgxmock.NewRows(placeRowColumns).
		AddRow(p.ID, p.OwnerID, p.Title, p.Address, p.Photos, p.Description, p.Perks,
			p.ExtraInfo, p.MaxGuests, p.Price, p.PropertyType, p.IsActive, p.CreatedAt, p.UpdatedAt)
}

func (suite *PlaceRepoTestSuite) TestCreate_Success() {
	place := suite.samplePlace(models.PlacePending)

	suite.mock.ExpectExec("INSERT INTO places").
		WithArgs(place.ID, place.OwnerID, place.Title, place.Address, place.Photos,
			place.Description, place.Perks, place.ExtraInfo, place.MaxGuests, place.Price,
			place.PropertyType, place.IsActive).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, place)
	assert.NoError(suite.T(), err)
}

func (suite *PlaceRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery("SELECT (.+) FROM places WHERE id").
		WithArgs(suite.placeID).
		WillReturnError(pgx.ErrNoRows)

	place, err := suite.repo.GetByID(suite.context, suite.placeID)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
	assert.Nil(suite.T(), place)
}

func (suite *PlaceRepoTestSuite) TestListByActivity_ActiveOnly() {
	place := suite.samplePlace(models.PlaceActive)

	suite.mock.ExpectQuery("SELECT (.+) FROM places WHERE is_active").
		WithArgs(models.PlaceActive).
		WillReturnRows(placeRow(place))

	places, err := suite.repo.ListByActivity(suite.context, models.PlaceActive)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), places, 1)
	assert.Equal(suite.T(), models.PlaceActive, places[0].IsActive)
}

func (suite *PlaceRepoTestSuite) TestListByOwner() {
	place := suite.samplePlace(models.PlacePending)

	suite.mock.ExpectQuery("SELECT (.+) FROM places WHERE owner_id").
		WithArgs(suite.ownerID).
		WillReturnRows(placeRow(place))

	places, err := suite.repo.ListByOwner(suite.context, suite.ownerID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), places, 1)
	assert.Equal(suite.T(), suite.ownerID, places[0].OwnerID)
}

func (suite *PlaceRepoTestSuite) TestSearchByAddress() {
	place := suite.samplePlace(models.PlaceActive)

	suite.mock.ExpectQuery("SELECT (.+) FROM places WHERE address ILIKE").
		WithArgs("mumbai").
		WillReturnRows(placeRow(place))

	places, err := suite.repo.SearchByAddress(suite.context, "mumbai")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), places, 1)
}

func (suite *PlaceRepoTestSuite) TestListPendingWithOwner() {
	place := suite.samplePlace(models.PlacePending)
	rows := pgxmock.NewRows(append(append([]string{}, placeRowColumns...), "name", "email")).
		AddRow(place.ID, place.OwnerID, place.Title, place.Address, place.Photos, place.Description,
			place.Perks, place.ExtraInfo, place.MaxGuests, place.Price, place.PropertyType,
			place.IsActive, place.CreatedAt, place.UpdatedAt, "Owner", "owner@x.com")

	suite.mock.ExpectQuery("SELECT (.+) FROM places p").
		WillReturnRows(rows)

	pending, err := suite.repo.ListPendingWithOwner(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), pending, 1)
	assert.Equal(suite.T(), models.PlacePending, pending[0].IsActive)
	assert.Equal(suite.T(), "Owner", pending[0].Owner.Name)
	assert.Equal(suite.T(), "owner@x.com", pending[0].Owner.Email)
}

func (suite *PlaceRepoTestSuite) TestSetActive_Success() {
	suite.mock.ExpectExec("UPDATE places SET is_active").
		WithArgs(models.PlaceActive, suite.placeID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.SetActive(suite.context, suite.placeID, models.PlaceActive)
	assert.NoError(suite.T(), err)
}

func (suite *PlaceRepoTestSuite) TestSetActive_NotFound() {
	suite.mock.ExpectExec("UPDATE places SET is_active").
		WithArgs(models.PlaceActive, suite.placeID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.SetActive(suite.context, suite.placeID, models.PlaceActive)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *PlaceRepoTestSuite) TestDelete_Success() {
	suite.mock.ExpectExec("DELETE FROM places").
		WithArgs(suite.placeID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.placeID)
	assert.NoError(suite.T(), err)
}

func (suite *PlaceRepoTestSuite) TestCount() {
	suite.mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	count, err := suite.repo.Count(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(7), count)
}
