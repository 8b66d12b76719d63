package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pos-service/internal/domain"
)

// SettingsRepository manages the singleton business settings row (id=1).
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Upsert(ctx context.Context, settings *domain.Settings) error
}

type settingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository returns a Postgres-backed implementation.
func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &settingsRepository{pool: pool}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	const query = `
        SELECT id, business_name, primary_color, secondary_color, currency_symbol,
               currency_code, tax_rate, logo_url, address, phone, email, timezone,
               setup_complete, created_at, updated_at
        FROM settings WHERE id = 1`

	var s domain.Settings
	if err := r.pool.QueryRow(ctx, query).Scan(
		&s.ID,
		&s.BusinessName,
		&s.PrimaryColor,
		&s.SecondaryColor,
		&s.CurrencySymbol,
		&s.CurrencyCode,
		&s.TaxRate,
		&s.LogoURL,
		&s.Address,
		&s.Phone,
		&s.Email,
		&s.Timezone,
		&s.SetupComplete,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *domain.Settings) error {
	const query = `
        INSERT INTO settings (
            id, business_name, primary_color, secondary_color, currency_symbol,
            currency_code, tax_rate, logo_url, address, phone, email, timezone, setup_complete
        ) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, TRUE)
        ON CONFLICT (id) DO UPDATE SET
            business_name = EXCLUDED.business_name,
            primary_color = EXCLUDED.primary_color,
            secondary_color = EXCLUDED.secondary_color,
            currency_symbol = EXCLUDED.currency_symbol,
            currency_code = EXCLUDED.currency_code,
            tax_rate = EXCLUDED.tax_rate,
            logo_url = EXCLUDED.logo_url,
            address = EXCLUDED.address,
            phone = EXCLUDED.phone,
            email = EXCLUDED.email,
            timezone = EXCLUDED.timezone,
            setup_complete = TRUE,
            updated_at = NOW()`

	_, err := r.pool.Exec(ctx, query,
		settings.BusinessName,
		settings.PrimaryColor,
		settings.SecondaryColor,
		settings.CurrencySymbol,
		settings.CurrencyCode,
		settings.TaxRate,
		settings.LogoURL,
		settings.Address,
		settings.Phone,
		settings.Email,
		settings.Timezone,
	)
	return err
}
