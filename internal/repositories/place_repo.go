package repositories

import (
	"context"
	"errors"

	"staymart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PlaceRepository interface {
	Create(ctx context.Context, place *models.Place) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Place, error)
	Update(ctx context.Context, place *models.Place) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByActivity(ctx context.Context, state int16) ([]*models.Place, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Place, error)
	ListAll(ctx context.Context) ([]*models.Place, error)
	ListPendingWithOwner(ctx context.Context) ([]*models.PendingPlace, error)
	SearchByAddress(ctx context.Context, keyword string) ([]*models.Place, error)
	SetActive(ctx context.Context, id uuid.UUID, state int16) error
	Count(ctx context.Context) (int64, error)
}

type placeRepo struct {
	db Database
}

func NewPlaceRepo(db Database) PlaceRepository {
	return &placeRepo{db: db}
}

const placeColumns = `id, owner_id, title, address, photos, description, perks, extra_info, max_guests, price, property_type, is_active, created_at, updated_at`

func scanPlaceRow(row pgx.Row) (*models.Place, error) {
	p := &models.Place{}
	err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Address, &p.Photos, &p.Description,
		&p.Perks, &p.ExtraInfo, &p.MaxGuests, &p.Price, &p.PropertyType, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func collectPlaces(rows pgx.Rows) ([]*models.Place, error) {
	defer rows.Close()
	var places []*models.Place
	for rows.Next() {
		p := &models.Place{}
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Address, &p.Photos, &p.Description,
			&p.Perks, &p.ExtraInfo, &p.MaxGuests, &p.Price, &p.PropertyType, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

func (r *placeRepo) Create(ctx context.Context, place *models.Place) error {
	query := `
		INSERT INTO places (id, owner_id, title, address, photos, description, perks, extra_info, max_guests, price, property_type, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, place.ID, place.OwnerID, place.Title, place.Address,
		place.Photos, place.Description, place.Perks, place.ExtraInfo, place.MaxGuests,
		place.Price, place.PropertyType, place.IsActive)
	return err
}

func (r *placeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places WHERE id = $1`
	return scanPlaceRow(r.db.QueryRow(ctx, query, id))
}

func (r *placeRepo) Update(ctx context.Context, place *models.Place) error {
	query := `
		UPDATE places
		SET title = $1, address = $2, photos = $3, description = $4, perks = $5, extra_info = $6, max_guests = $7, price = $8, property_type = $9, updated_at = NOW()
		WHERE id = $10
	`
	tag, err := r.db.Exec(ctx, query, place.Title, place.Address, place.Photos, place.Description,
		place.Perks, place.ExtraInfo, place.MaxGuests, place.Price, place.PropertyType, place.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *placeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *placeRepo) ListByActivity(ctx context.Context, state int16) ([]*models.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places WHERE is_active = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, state)
	if err != nil {
		return nil, err
	}
	return collectPlaces(rows)
}

func (r *placeRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	return collectPlaces(rows)
}

func (r *placeRepo) ListAll(ctx context.Context) ([]*models.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectPlaces(rows)
}

// ListPendingWithOwner returns pending places joined with the reduced owner
// projection shown on the admin approval queue.
func (r *placeRepo) ListPendingWithOwner(ctx context.Context) ([]*models.PendingPlace, error) {
	query := `
		SELECT p.id, p.owner_id, p.title, p.address, p.photos, p.description, p.perks, p.extra_info, p.max_guests, p.price, p.property_type, p.is_active, p.created_at, p.updated_at, u.name, u.email
		FROM places p
		JOIN users u ON u.id = p.owner_id
		WHERE p.is_active = 0
		ORDER BY p.created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []*models.PendingPlace
	for rows.Next() {
		pp := &models.PendingPlace{}
		if err := rows.Scan(&pp.ID, &pp.OwnerID, &pp.Title, &pp.Address, &pp.Photos, &pp.Description,
			&pp.Perks, &pp.ExtraInfo, &pp.MaxGuests, &pp.Price, &pp.PropertyType, &pp.IsActive,
			&pp.CreatedAt, &pp.UpdatedAt, &pp.Owner.Name, &pp.Owner.Email); err != nil {
			return nil, err
		}
		places = append(places, pp)
	}
	return places, rows.Err()
}

// SearchByAddress matches keyword as a case-insensitive substring of the
// place address.
func (r *placeRepo) SearchByAddress(ctx context.Context, keyword string) ([]*models.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places WHERE address ILIKE '%' || $1 || '%' ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, keyword)
	if err != nil {
		return nil, err
	}
	return collectPlaces(rows)
}

func (r *placeRepo) SetActive(ctx context.Context, id uuid.UUID, state int16) error {
	tag, err := r.db.Exec(ctx, `UPDATE places SET is_active = $1, updated_at = NOW() WHERE id = $2`, state, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *placeRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM places`).Scan(&count)
	return count, err
}
