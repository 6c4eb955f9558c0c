package bootstrap

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	app "github.com/talentbase/candidate-import/internal/application/candidate"
	"github.com/talentbase/candidate-import/internal/config"
	"github.com/talentbase/candidate-import/internal/infrastructure/file"
	"github.com/talentbase/candidate-import/internal/infrastructure/repository"
	httpecho "github.com/talentbase/candidate-import/internal/interfaces/http/echo"
)

func NewHTTPServer(db *gorm.DB, jobRepo *repository.ImportJobRepository, store *file.LocalStore, cfg *config.Config) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	upload := app.NewUploadCandidatesCSV(store, cfg.Import.MaxUploadBytes)
	start := app.NewStartCSVImport(store, jobRepo)
	status := app.NewGetImportStatus(jobRepo)
	result := app.NewGetImportResult(jobRepo)
	errorFile := app.NewGetImportErrorFile(jobRepo)
	importHandler := httpecho.NewImportHandler(upload, start, status, result, errorFile)

	candidateQueryRepo := repository.NewCandidateQueryRepository(db)
	getCandidate := app.NewGetCandidateByID(candidateQueryRepo)
	candidateHandler := httpecho.NewCandidateHandler(getCandidate)

	httpecho.RegisterRoutes(server, cfg.Auth.AdminToken, importHandler, candidateHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	return server
}
