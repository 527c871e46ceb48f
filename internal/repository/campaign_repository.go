package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

type campaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) interfaces.CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	platforms := campaign.Platforms
	if platforms == nil {
		platforms = []string{}
	}

	query := `
        INSERT INTO campaigns (
            name, status, platforms, start_date, end_date, budget
        ) VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at
    `

	return r.db.QueryRowContext(
		ctx,
		query,
		campaign.Name,
		campaign.Status,
		pq.Array(platforms),
		campaign.StartDate,
		campaign.EndDate,
		campaign.Budget,
	).Scan(&campaign.ID, &campaign.CreatedAt, &campaign.UpdatedAt)
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	query := `
        SELECT
            id, name, status, platforms, start_date, end_date, budget,
            created_at, updated_at
        FROM campaigns
        WHERE id = $1
    `

	var campaign models.Campaign
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&campaign.ID,
		&campaign.Name,
		&campaign.Status,
		pq.Array(&campaign.Platforms),
		&campaign.StartDate,
		&campaign.EndDate,
		&campaign.Budget,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}

	return &campaign, nil
}

// List retrieves a list of campaigns based on the provided filter
func (r *campaignRepository) List(ctx context.Context, filter interfaces.CampaignFilter) ([]*models.Campaign, error) {
	query := `
        SELECT
            id, name, status, platforms, start_date, end_date, budget,
            created_at, updated_at
        FROM campaigns
        WHERE 1=1
    `

	var args []interface{}
	var whereClauses []string
	argPos := 1

	if filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}

	if filter.Platform != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("$%d = ANY(platforms)", argPos))
		args = append(args, filter.Platform)
		argPos++
	}

	if !filter.StartDate.IsZero() {
		whereClauses = append(whereClauses, fmt.Sprintf("start_date >= $%d", argPos))
		args = append(args, filter.StartDate)
		argPos++
	}

	if !filter.EndDate.IsZero() {
		whereClauses = append(whereClauses, fmt.Sprintf("end_date <= $%d", argPos))
		args = append(args, filter.EndDate)
		argPos++
	}

	if len(whereClauses) > 0 {
		query += " AND " + strings.Join(whereClauses, " AND ")
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filter.Limit)
		argPos++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []*models.Campaign
	for rows.Next() {
		var campaign models.Campaign
		err := rows.Scan(
			&campaign.ID,
			&campaign.Name,
			&campaign.Status,
			pq.Array(&campaign.Platforms),
			&campaign.StartDate,
			&campaign.EndDate,
			&campaign.Budget,
			&campaign.CreatedAt,
			&campaign.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, &campaign)
	}

	return campaigns, rows.Err()
}

func (r *campaignRepository) Summary(ctx context.Context, filter interfaces.CampaignFilter) (*models.CampaignSummary, error) {
	query := `
        SELECT
            COALESCE(SUM(CASE WHEN c.status = 'active' THEN 1 ELSE 0 END), 0) AS active_campaign_count,
            COALESCE(SUM(c.budget), 0) AS total_budget,
            COALESCE((SELECT SUM(m.spend) FROM campaign_metrics m), 0) AS total_spend
        FROM campaigns c
        WHERE 1=1
    `

	var args []interface{}
	var whereClauses []string
	argPos := 1

	if filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("c.status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}

	if !filter.StartDate.IsZero() {
		whereClauses = append(whereClauses, fmt.Sprintf("c.start_date >= $%d", argPos))
		args = append(args, filter.StartDate)
		argPos++
	}

	if !filter.EndDate.IsZero() {
		whereClauses = append(whereClauses, fmt.Sprintf("c.end_date <= $%d", argPos))
		args = append(args, filter.EndDate)
	}

	if len(whereClauses) > 0 {
		query += " AND " + strings.Join(whereClauses, " AND ")
	}

	var summary models.CampaignSummary
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&summary.ActiveCampaignCount,
		&summary.TotalBudget,
		&summary.TotalSpend,
	); err != nil {
		return nil, err
	}

	return &summary, nil
}

// Update updates a campaign with the given ID
func (r *campaignRepository) Update(ctx context.Context, id string, campaign *models.Campaign) error {
	platforms := campaign.Platforms
	if platforms == nil {
		platforms = []string{}
	}

	query := `
        UPDATE campaigns
        SET name = $1,
            status = $2,
            platforms = $3,
            start_date = $4,
            end_date = $5,
            budget = $6,
            updated_at = NOW() AT TIME ZONE 'UTC'
        WHERE id = $7
        RETURNING updated_at
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		campaign.Name,
		campaign.Status,
		pq.Array(platforms),
		campaign.StartDate,
		campaign.EndDate,
		campaign.Budget,
		id,
	).Scan(&campaign.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	return nil
}

// Delete removes a campaign by ID
func (r *campaignRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM campaigns WHERE id = $1", id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
