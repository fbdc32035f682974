package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/upb/forum-api/config"
	"github.com/upb/forum-api/handlers"
	"github.com/upb/forum-api/internal/auth"
	"github.com/upb/forum-api/middleware"
	"github.com/upb/forum-api/repositories"
	"github.com/upb/forum-api/repositories/memory"
	"github.com/upb/forum-api/repositories/postgres"
	"github.com/upb/forum-api/services"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB // nil on the memory driver
	Logger *zap.Logger

	// Repository Factory (postgres driver only)
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Accounts  repositories.AccountRepository
	Questions repositories.QuestionRepository
	TxManager repositories.TransactionManager

	// Auth
	Hasher         *auth.PasswordHasher
	Tokens         *auth.TokenService
	AuthMiddleware *middleware.AuthMiddleware

	// Services
	AccountService  *services.AccountService
	QuestionService *services.QuestionService

	// Handlers
	AccountHandler  *handlers.AccountHandler
	SessionHandler  *handlers.SessionHandler
	QuestionHandler *handlers.QuestionHandler
	HealthHandler   *handlers.HealthHandler
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initStorage(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if err := deps.initAuth(cfg); err != nil {
		deps.closeStorage()
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	deps.initServices()
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully",
		zap.String("storage_driver", cfg.Storage.Driver))
	return deps, nil
}

// initStorage selects the repository backend from the configured driver
func (d *Dependencies) initStorage(ctx context.Context, cfg *config.Config) error {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		d.Logger.Warn("using in-memory storage, data is lost on restart")
		d.setRepositories(memory.NewRepositories())
		return nil
	case config.StorageDriverPostgres:
		return d.initDatabase(ctx, cfg)
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// initDatabase initializes the PostgreSQL database connection and factory
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	d.RepoFactory = factory
	d.DB = factory.GetDB()

	if cfg.Storage.AutoMigrate {
		if err := factory.Migrate(ctx); err != nil {
			d.closeStorage()
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	d.setRepositories(factory.NewRepositories())
	return nil
}

func (d *Dependencies) setRepositories(repos *repositories.Repositories) {
	d.Accounts = repos.Accounts
	d.Questions = repos.Questions
	d.TxManager = repos.Transactions

	d.Logger.Info("repositories initialized")
}

// initAuth builds the password hasher, the token service and the auth guard
func (d *Dependencies) initAuth(cfg *config.Config) error {
	hasher, err := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	var opts []auth.TokenOption
	if cfg.Auth.TokenTTL > 0 {
		opts = append(opts, auth.WithTTL(cfg.Auth.TokenTTL))
	}
	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, opts...)
	if err != nil {
		return err
	}

	d.Hasher = hasher
	d.Tokens = tokens
	d.AuthMiddleware = middleware.NewAuthMiddleware(tokens, d.Logger)

	d.Logger.Info("auth initialized",
		zap.Int("bcrypt_cost", hasher.Cost()),
		zap.Duration("token_ttl", cfg.Auth.TokenTTL))
	return nil
}

func (d *Dependencies) initServices() {
	d.AccountService = services.NewAccountService(d.Accounts, d.TxManager, d.Hasher, d.Tokens, d.Logger)
	d.QuestionService = services.NewQuestionService(d.Questions, d.Logger)
}

func (d *Dependencies) initHandlers() {
	var db *sql.DB
	if d.DB != nil {
		db = d.DB.DB
	}

	d.AccountHandler = handlers.NewAccountHandler(d.AccountService, d.Logger)
	d.SessionHandler = handlers.NewSessionHandler(d.AccountService, d.Logger)
	d.QuestionHandler = handlers.NewQuestionHandler(d.QuestionService, d.Logger)
	d.HealthHandler = handlers.NewHealthHandler(db, d.Logger)
}

func (d *Dependencies) closeStorage() error {
	if d.RepoFactory == nil {
		return nil
	}
	err := d.RepoFactory.Close()
	d.RepoFactory = nil
	d.DB = nil
	return err
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.RepoFactory != nil {
		if err := d.closeStorage(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	_ = d.Logger.Sync()

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
