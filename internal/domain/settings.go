package domain

import "time"

// Settings is the singleton business configuration row.
type Settings struct {
	ID             int64
	BusinessName   string
	PrimaryColor   string
	SecondaryColor string
	CurrencySymbol string
	CurrencyCode   string
	TaxRate        float64
	LogoURL        *string
	Address        *string
	Phone          *string
	Email          *string
	Timezone       string
	SetupComplete  bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
