// Package repository persists normalized property records with their scores.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dealflow_backend/internal/properties/transport"
	"dealflow_backend/internal/scoring"
	"dealflow_backend/platform/apperr"
)

const propertyNotFoundMessage = "property not found"

// ListParams filters and paginates the ranked list.
type ListParams struct {
	State      string
	City       string
	MinScore   int
	Motivation string
	Limit      int
	Offset     int
}

// ScoreUpdate carries the recomputed scores for one stored record.
type ScoreUpdate struct {
	ID            string
	DistressScore int
	CombinedScore int
	Grade         scoring.Grade
	Motivation    scoring.Motivation
	ScoreVersion  string
}

// Repo implements property persistence with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new properties repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const propertyColumns = `
	id, source, source_id, street, city, state, zip, owner_name, property_type,
	bedrooms, bathrooms, square_feet, lot_sqft, year_built,
	estimated_value, estimated_equity, equity_percent, last_sale_date, last_sale_amount,
	flags, metadata,
	distress_score, profile_score, combined_score, grade, motivation, score_version,
	created_at, updated_at`

// Upsert inserts or refreshes a record keyed by (source, source_id). A
// re-discovered property overwrites its previous snapshot; history is not
// kept here.
func (r *Repo) Upsert(ctx context.Context, p transport.Property) (transport.Property, error) {
	flags, err := json.Marshal(p.Flags)
	if err != nil {
		return transport.Property{}, fmt.Errorf("marshal flags: %w", err)
	}
	metadata, err := json.Marshal(p.Metadata)
	if err != nil {
		return transport.Property{}, fmt.Errorf("marshal metadata: %w", err)
	}

	query := `
		INSERT INTO properties (
			source, source_id, street, city, state, zip, owner_name, property_type,
			bedrooms, bathrooms, square_feet, lot_sqft, year_built,
			estimated_value, estimated_equity, equity_percent, last_sale_date, last_sale_amount,
			flags, metadata,
			distress_score, profile_score, combined_score, grade, motivation, score_version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
		ON CONFLICT (source, source_id) DO UPDATE SET
			street = EXCLUDED.street,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip = EXCLUDED.zip,
			owner_name = EXCLUDED.owner_name,
			property_type = EXCLUDED.property_type,
			bedrooms = EXCLUDED.bedrooms,
			bathrooms = EXCLUDED.bathrooms,
			square_feet = EXCLUDED.square_feet,
			lot_sqft = EXCLUDED.lot_sqft,
			year_built = EXCLUDED.year_built,
			estimated_value = EXCLUDED.estimated_value,
			estimated_equity = EXCLUDED.estimated_equity,
			equity_percent = EXCLUDED.equity_percent,
			last_sale_date = EXCLUDED.last_sale_date,
			last_sale_amount = EXCLUDED.last_sale_amount,
			flags = EXCLUDED.flags,
			metadata = EXCLUDED.metadata,
			distress_score = EXCLUDED.distress_score,
			profile_score = EXCLUDED.profile_score,
			combined_score = EXCLUDED.combined_score,
			grade = EXCLUDED.grade,
			motivation = EXCLUDED.motivation,
			score_version = EXCLUDED.score_version,
			updated_at = now()
		RETURNING ` + propertyColumns

	row := r.pool.QueryRow(ctx, query,
		p.Source, p.SourceID, p.Street, p.City, p.State, p.Zip, p.OwnerName, p.PropertyType,
		p.Bedrooms, p.Bathrooms, p.SquareFeet, p.LotSqft, p.YearBuilt,
		p.EstimatedValue, p.EstimatedEquity, p.EquityPercent, p.LastSaleDate, p.LastSaleAmount,
		flags, metadata,
		p.DistressScore, p.ProfileScore, p.CombinedScore, string(p.Grade), string(p.Motivation), p.ScoreVersion,
	)

	stored, err := scanProperty(row)
	if err != nil {
		return transport.Property{}, fmt.Errorf("upsert property: %w", err)
	}
	return stored, nil
}

// GetByID retrieves a property by its record ID.
func (r *Repo) GetByID(ctx context.Context, id string) (transport.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	p, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return transport.Property{}, apperr.NotFound(propertyNotFoundMessage)
		}
		return transport.Property{}, fmt.Errorf("get property by id: %w", err)
	}
	return p, nil
}

// List retrieves properties ranked by combined score descending.
func (r *Repo) List(ctx context.Context, params ListParams) ([]transport.Property, int, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	var stateParam, cityParam, motivationParam any
	if params.State != "" {
		stateParam = params.State
	}
	if params.City != "" {
		cityParam = params.City
	}
	if params.Motivation != "" {
		motivationParam = params.Motivation
	}

	countQuery := `
		SELECT COUNT(*)
		FROM properties
		WHERE combined_score >= $1
			AND ($2::text IS NULL OR state = $2)
			AND ($3::text IS NULL OR city ILIKE $3)
			AND ($4::text IS NULL OR motivation = $4)`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, params.MinScore, stateParam, cityParam, motivationParam).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE combined_score >= $1
			AND ($2::text IS NULL OR state = $2)
			AND ($3::text IS NULL OR city ILIKE $3)
			AND ($4::text IS NULL OR motivation = $4)
		ORDER BY combined_score DESC, updated_at DESC
		LIMIT $5 OFFSET $6`

	rows, err := r.pool.Query(ctx, query, params.MinScore, stateParam, cityParam, motivationParam, limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	items, err := scanProperties(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListForRescore returns a batch of records whose stored score version
// differs from the given one. Callers loop until the batch comes back empty.
func (r *Repo) ListForRescore(ctx context.Context, version string, limit int) ([]transport.Property, error) {
	if limit <= 0 {
		limit = 500
	}

	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE score_version IS DISTINCT FROM $1
		ORDER BY id
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, version, limit)
	if err != nil {
		return nil, fmt.Errorf("list properties for rescore: %w", err)
	}
	defer rows.Close()

	return scanProperties(rows)
}

// UpdateScores writes recomputed scores for one record.
func (r *Repo) UpdateScores(ctx context.Context, update ScoreUpdate) error {
	query := `
		UPDATE properties SET
			distress_score = $2,
			combined_score = $3,
			grade = $4,
			motivation = $5,
			score_version = $6,
			updated_at = now()
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		update.ID, update.DistressScore, update.CombinedScore,
		string(update.Grade), string(update.Motivation), update.ScoreVersion,
	)
	if err != nil {
		return fmt.Errorf("update property scores: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(propertyNotFoundMessage)
	}
	return nil
}

func scanProperty(row pgx.Row) (transport.Property, error) {
	var p transport.Property
	var flags, metadata []byte
	var grade, motivation string
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&p.ID, &p.Source, &p.SourceID, &p.Street, &p.City, &p.State, &p.Zip, &p.OwnerName, &p.PropertyType,
		&p.Bedrooms, &p.Bathrooms, &p.SquareFeet, &p.LotSqft, &p.YearBuilt,
		&p.EstimatedValue, &p.EstimatedEquity, &p.EquityPercent, &p.LastSaleDate, &p.LastSaleAmount,
		&flags, &metadata,
		&p.DistressScore, &p.ProfileScore, &p.CombinedScore, &grade, &motivation, &p.ScoreVersion,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return transport.Property{}, err
	}

	if len(flags) > 0 {
		if err := json.Unmarshal(flags, &p.Flags); err != nil {
			return transport.Property{}, fmt.Errorf("unmarshal flags: %w", err)
		}
	}
	if len(metadata) > 0 && string(metadata) != "null" {
		if err := json.Unmarshal(metadata, &p.Metadata); err != nil {
			return transport.Property{}, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}

	p.Grade = scoring.Grade(grade)
	p.Motivation = scoring.Motivation(motivation)
	p.CreatedAt = createdAt.Format(time.RFC3339)
	p.UpdatedAt = updatedAt.Format(time.RFC3339)

	return p, nil
}

func scanProperties(rows pgx.Rows) ([]transport.Property, error) {
	var results []transport.Property

	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return results, nil
}
