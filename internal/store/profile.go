package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Profile is a named classifier tuning stored in the database. The margins
// are the empirical thresholds of the extension heuristics; keeping them
// here lets accuracy be retuned without touching code.
type Profile struct {
	ID           string
	Name         string
	YMargin      float64
	ThumbRatio   float64
	StableFrames uint32
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileRepository provides CRUD operations for tuning profiles.
type ProfileRepository struct {
	db *sql.DB
}

// Profiles returns the profile repository for this store.
func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{db: s.db}
}

// Create inserts a new profile into the database.
func (r *ProfileRepository) Create(p *Profile) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO profiles (id, name, y_margin, thumb_ratio, stable_frames, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.YMargin, p.ThumbRatio, p.StableFrames, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetByID retrieves a profile by its ID.
func (r *ProfileRepository) GetByID(id string) (*Profile, error) {
	return r.scanOne(
		`SELECT id, name, y_margin, thumb_ratio, stable_frames, created_at, updated_at
		 FROM profiles WHERE id = ?`,
		id,
	)
}

// GetByName retrieves a profile by its name.
func (r *ProfileRepository) GetByName(name string) (*Profile, error) {
	return r.scanOne(
		`SELECT id, name, y_margin, thumb_ratio, stable_frames, created_at, updated_at
		 FROM profiles WHERE name = ?`,
		name,
	)
}

func (r *ProfileRepository) scanOne(query string, arg any) (*Profile, error) {
	p := &Profile{}

	err := r.db.QueryRow(query, arg).Scan(
		&p.ID, &p.Name, &p.YMargin, &p.ThumbRatio, &p.StableFrames, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

// List retrieves all profiles from the database.
func (r *ProfileRepository) List() ([]*Profile, error) {
	rows, err := r.db.Query(
		`SELECT id, name, y_margin, thumb_ratio, stable_frames, created_at, updated_at
		 FROM profiles ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p := &Profile{}
		if err := rows.Scan(&p.ID, &p.Name, &p.YMargin, &p.ThumbRatio, &p.StableFrames, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

// Update modifies an existing profile.
func (r *ProfileRepository) Update(p *Profile) error {
	p.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE profiles SET name = ?, y_margin = ?, thumb_ratio = ?, stable_frames = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.YMargin, p.ThumbRatio, p.StableFrames, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a profile by its ID.
func (r *ProfileRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
