// Package seed loads the demo dataset used for local development and demos.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/audriusk/sandelis_backend/internal/core/domain"
	portssvc "github.com/audriusk/sandelis_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type companyFixture struct {
	code        string
	name        string
	email       string
	phone       string
	address     string
	creditLimit int64
}

type userFixture struct {
	username    string
	password    string
	role        domain.Role
	companyCode string
	pin         string
}

type productFixture struct {
	code     string
	barcode  string
	name     string
	category string
	unit     domain.Unit
	stock    int64
	price    string
	minStock int64
}

type projectFixture struct {
	companyCode string
	name        string
}

var companyFixtures = []companyFixture{
	{"SPECVATAS", `UAB "Spec Vatas"`, "info@specvatas.lt", "+370 600 12345", "Vilnius, Lietuva", 10000},
	{"ELEKTRA", `UAB "Elektra LT"`, "info@elektra.lt", "+370 600 54321", "Kaunas, Lietuva", 15000},
	{"STATYBOS", `UAB "Statybų Kompanija"`, "info@statybos.lt", "+370 600 99999", "Klaipėda, Lietuva", 20000},
}

var userFixtures = []userFixture{
	{"admin", "admin123", domain.RoleAdmin, "", "0000"},
	{"specvatas_user", "spec123", domain.RoleClient, "SPECVATAS", "1234"},
	{"elektra_user", "elektra123", domain.RoleClient, "ELEKTRA", "2345"},
	{"statybos_user", "statybos123", domain.RoleClient, "STATYBOS", "3456"},
}

var productFixtures = []productFixture{
	{"0010006", "1524544204585", "Kabelis YDYP 3x1.5", "Kabeliai", domain.UnitMeter, 500, "2.50", 100},
	{"0010007", "1524544204586", "Kabelis YDYP 3x2.5", "Kabeliai", domain.UnitMeter, 350, "3.80", 100},
	{"0010008", "1524544204587", "Kabelis YDYP 5x1.5", "Kabeliai", domain.UnitMeter, 250, "4.20", 50},
	{"0020001", "", "Jungiklis Schneider Electric", "Jungikliai", domain.UnitPiece, 120, "8.50", 20},
	{"0020002", "", "Jungiklis Legrand Valena", "Jungikliai", domain.UnitPiece, 85, "12.00", 15},
	{"0030015", "", "LED lempa 10W", "Apšvietimas", domain.UnitPiece, 200, "5.50", 30},
	{"0030016", "", "LED lempa 15W", "Apšvietimas", domain.UnitPiece, 150, "7.80", 25},
	{"0040022", "", "Kabelių kanalas 25x16", "Instaliacijos medžiagos", domain.UnitMeter, 300, "1.20", 50},
	{"0040023", "", "Kabelių kanalas 40x25", "Instaliacijos medžiagos", domain.UnitMeter, 180, "2.50", 40},
	{"0050001", "", "Automatinis jungiklis 16A", "Automatika", domain.UnitPiece, 95, "15.00", 15},
	{"0050002", "", "Automatinis jungiklis 25A", "Automatika", domain.UnitPiece, 75, "18.50", 10},
	{"0060001", "", "Lizdas su įžeminimu", "Lizdai", domain.UnitPiece, 140, "3.50", 25},
}

var projectFixtures = []projectFixture{
	{"SPECVATAS", "2025 Sausio užsakymas"},
	{"ELEKTRA", "2025 Q1 Projektas"},
	{"STATYBOS", "Vilniaus objektas"},
}

// Run loads the demo fixtures through the service layer so hashing and
// validation behave exactly as in production. It is idempotent: a database
// that already has companies is left untouched.
func Run(ctx context.Context, logger *slog.Logger, services *portssvc.ServiceContainer) error {
	existing, err := services.CompanySvc.ListCompanies(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing companies: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("Database already has companies, skipping demo seed")
		return nil
	}

	logger.Info("Seeding demo data")

	companyIDs := make(map[string]string, len(companyFixtures))
	for _, f := range companyFixtures {
		creditLimit := decimal.NewFromInt(f.creditLimit)
		email, phone, address := f.email, f.phone, f.address
		company, err := services.CompanySvc.CreateCompany(ctx, domain.Company{
			Code:        f.code,
			Name:        f.name,
			Email:       &email,
			Phone:       &phone,
			Address:     &address,
			CreditLimit: &creditLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to seed company %s: %w", f.code, err)
		}
		companyIDs[f.code] = company.CompanyID
	}

	for _, f := range userFixtures {
		pin := f.pin
		input := portssvc.CreateUserInput{
			Username: f.username,
			Password: f.password,
			Role:     f.role,
			Pin:      &pin,
		}
		if f.companyCode != "" {
			companyID := companyIDs[f.companyCode]
			input.CompanyID = &companyID
		}
		if _, err := services.UserSvc.CreateUser(ctx, input); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", f.username, err)
		}
	}

	for _, f := range productFixtures {
		price, err := decimal.NewFromString(f.price)
		if err != nil {
			return fmt.Errorf("bad price for product %s: %w", f.code, err)
		}
		minStock := decimal.NewFromInt(f.minStock)
		product := domain.Product{
			Code:     f.code,
			Name:     f.name,
			Unit:     f.unit,
			Stock:    decimal.NewFromInt(f.stock),
			Price:    price,
			MinStock: &minStock,
		}
		if f.barcode != "" {
			barcode := f.barcode
			product.Barcode = &barcode
		}
		if f.category != "" {
			category := f.category
			product.Category = &category
		}
		if _, err := services.ProductSvc.CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", f.code, err)
		}
	}

	for _, f := range projectFixtures {
		if _, err := services.ProjectSvc.CreateProject(ctx, domain.Project{
			CompanyID: companyIDs[f.companyCode],
			Name:      f.name,
		}); err != nil {
			return fmt.Errorf("failed to seed project %s: %w", f.name, err)
		}
	}

	logger.Info("Demo data seeded",
		slog.Int("companies", len(companyFixtures)),
		slog.Int("users", len(userFixtures)),
		slog.Int("products", len(productFixtures)),
		slog.Int("projects", len(projectFixtures)),
	)
	return nil
}
