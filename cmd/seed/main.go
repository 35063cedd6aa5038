package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"obra-connect.backend/internal/config"
	"obra-connect.backend/internal/domain/entities"
	"obra-connect.backend/internal/infrastructure/datasources/postgres"
	"obra-connect.backend/internal/infrastructure/models"
	"obra-connect.backend/internal/infrastructure/repositories"
	"obra-connect.backend/internal/usecases"
)

// seedFile is the on-disk reference data layout
type seedFile struct {
	Categories []*entities.Category `json:"categories"`
	Cities     []*entities.City     `json:"cities"`
}

type taxonomySeeder interface {
	Seed(ctx context.Context, categories []*entities.Category, cities []*entities.City) error
}

type adminBootstrapper interface {
	BootstrapAdmin(ctx context.Context, name, email, password string) (*entities.User, bool, error)
}

type seedRuntime struct {
	taxonomy taxonomySeeder
	admins   adminBootstrapper
}

type seedDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	getenv  func(string) string
	prepare func(cfg *config.Config, migrate bool) (*seedRuntime, io.Closer, error)
	out     io.Writer
}

func openRuntime(cfg *config.Config, migrate bool) (*seedRuntime, io.Closer, error) {
	sqlDB, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect db: %w", err)
	}
	db, err := postgres.OpenGorm(sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to init gorm: %w", err)
	}
	rt, err := newRuntime(db, migrate)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return rt, sqlDB, nil
}

func newRuntime(db *gorm.DB, migrate bool) (*seedRuntime, error) {
	if migrate {
		if err := db.AutoMigrate(models.All()...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	taxonomyRepo := repositories.NewTaxonomyRepository(db)
	auth := usecases.NewAuthUsecase(
		repositories.NewUserRepository(db),
		repositories.NewProfessionalRepository(db),
		repositories.NewCompanyRepository(db),
		taxonomyRepo,
		repositories.NewUnitOfWork(db),
		nil,
	)
	return &seedRuntime{
		taxonomy: usecases.NewTaxonomyUsecase(taxonomyRepo),
		admins:   auth,
	}, nil
}

func defaultSeedDeps() seedDeps {
	return seedDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		getenv:  os.Getenv,
		prepare: openRuntime,
		out:     os.Stdout,
	}
}

func readSeedFile(path string) (*seedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var data seedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for _, c := range data.Categories {
		if c.ID == "" || c.Name == "" {
			return nil, fmt.Errorf("category entries need id and name")
		}
		for i := range c.Subcategories {
			c.Subcategories[i].CategoryID = c.ID
		}
	}
	for _, city := range data.Cities {
		city.State = strings.ToUpper(city.State)
	}
	return &data, nil
}

func runSeed(args []string, deps seedDeps) error {
	if deps.out == nil {
		deps.out = os.Stdout
	}
	if deps.getenv == nil {
		deps.getenv = os.Getenv
	}

	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fileFlag := fs.String("file", "seed/reference_data.json", "reference data JSON file")
	migrateFlag := fs.Bool("migrate", true, "run schema migrations first")
	skipAdmin := fs.Bool("skip-admin", false, "do not bootstrap the admin account")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := readSeedFile(*fileFlag)
	if err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := deps.loadCfg()

	rt, closer, err := deps.prepare(cfg, *migrateFlag)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	ctx := context.Background()
	if err := rt.taxonomy.Seed(ctx, data.Categories, data.Cities); err != nil {
		return fmt.Errorf("failed seeding reference data: %w", err)
	}
	_, _ = fmt.Fprintf(deps.out, "categories=%d cities=%d\n", len(data.Categories), len(data.Cities))

	if *skipAdmin {
		return nil
	}
	email, password := deps.getenv("ADMIN_EMAIL"), deps.getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		_, _ = fmt.Fprintln(deps.out, "ADMIN_EMAIL/ADMIN_PASSWORD not set, admin bootstrap skipped")
		return nil
	}
	name := deps.getenv("ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}
	user, created, err := rt.admins.BootstrapAdmin(ctx, name, email, password)
	if err != nil {
		return fmt.Errorf("failed bootstrapping admin: %w", err)
	}
	if created {
		_, _ = fmt.Fprintf(deps.out, "admin created id=%s\n", user.ID)
	} else {
		_, _ = fmt.Fprintf(deps.out, "admin already present email=%s\n", user.Email)
	}
	return nil
}

func main() {
	if err := runSeed(os.Args[1:], defaultSeedDeps()); err != nil {
		log.Fatal(err)
	}
}
