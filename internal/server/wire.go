package server

import (
	"github.com/fekuna/omnipos-portal/config"
	"github.com/fekuna/omnipos-portal/internal/auth"
	authH "github.com/fekuna/omnipos-portal/internal/auth/handler"
	authUCPkg "github.com/fekuna/omnipos-portal/internal/auth/usecase"
	"github.com/fekuna/omnipos-portal/internal/broker"
	"github.com/fekuna/omnipos-portal/internal/catalog"
	catalogH "github.com/fekuna/omnipos-portal/internal/catalog/handler"
	catalogRepoPkg "github.com/fekuna/omnipos-portal/internal/catalog/repository"
	catalogUCPkg "github.com/fekuna/omnipos-portal/internal/catalog/usecase"
	catH "github.com/fekuna/omnipos-portal/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-portal/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-portal/internal/category/usecase"
	clientH "github.com/fekuna/omnipos-portal/internal/client/handler"
	clientRepoPkg "github.com/fekuna/omnipos-portal/internal/client/repository"
	clientUCPkg "github.com/fekuna/omnipos-portal/internal/client/usecase"
	coefH "github.com/fekuna/omnipos-portal/internal/coefficient/handler"
	coefRepoPkg "github.com/fekuna/omnipos-portal/internal/coefficient/repository"
	coefUCPkg "github.com/fekuna/omnipos-portal/internal/coefficient/usecase"
	greetH "github.com/fekuna/omnipos-portal/internal/greeting/handler"
	greetRepoPkg "github.com/fekuna/omnipos-portal/internal/greeting/repository"
	greetUCPkg "github.com/fekuna/omnipos-portal/internal/greeting/usecase"
	"github.com/fekuna/omnipos-portal/internal/logger"
	prodH "github.com/fekuna/omnipos-portal/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-portal/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-portal/internal/product/usecase"
	"github.com/jmoiron/sqlx"
)

// Deps are the collaborators handlers need beyond the database.
type Deps struct {
	Tokens    *auth.TokenManager
	Rates     catalog.RateSource
	Publisher broker.Publisher
	Admin     config.AdminConfig
	Logger    logger.ZapLogger
}

// Wire builds repositories, use cases and handlers on top of db.
func Wire(db *sqlx.DB, d Deps) Handlers {
	// Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	clientRepo := clientRepoPkg.NewPGRepository(db)
	coefRepo := coefRepoPkg.NewPGRepository(db)
	catalogRepo := catalogRepoPkg.NewPGRepository(db)
	greetRepo := greetRepoPkg.NewPGRepository(db)

	// UseCases
	catUC := catUCPkg.NewCategoryUseCase(catRepo, d.Logger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, catRepo, d.Logger)
	clientUC := clientUCPkg.NewClientUseCase(clientRepo, catRepo, d.Logger)
	coefUC := coefUCPkg.NewCoefficientUseCase(coefRepo, clientRepo, prodRepo, d.Logger)
	catalogUC := catalogUCPkg.NewCatalogUseCase(catalogRepo, clientRepo, catRepo, d.Rates, d.Logger)
	greetUC := greetUCPkg.NewGreetingUseCase(greetRepo, d.Publisher, d.Logger)
	authUC := authUCPkg.NewAuthUseCase(clientUC, d.Tokens, d.Admin, d.Logger)

	return Handlers{
		Auth:        authH.NewAuthHandler(authUC, d.Logger),
		Category:    catH.NewCategoryHandler(catUC, d.Logger),
		Product:     prodH.NewProductHandler(prodUC, d.Logger),
		Client:      clientH.NewClientHandler(clientUC, d.Logger),
		Coefficient: coefH.NewCoefficientHandler(coefUC, d.Logger),
		Catalog:     catalogH.NewCatalogHandler(catalogUC, d.Logger),
		Greeting:    greetH.NewGreetingHandler(greetUC, d.Logger),
	}
}
