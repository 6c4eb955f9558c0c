package echo

import (
	"crypto/subtle"

	e "github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RegisterRoutes wires the import and candidate endpoints. The import
// surface sits under /admin behind a bearer-token check when adminToken is
// configured; authorization policy beyond that lives outside this service.
func RegisterRoutes(server *e.Echo, adminToken string, importHandler *ImportHandler, candidateHandler *CandidateHandler) {
	admin := server.Group("/api/v1/admin")
	if adminToken != "" {
		admin.Use(middleware.KeyAuth(func(key string, c e.Context) (bool, error) {
			return subtle.ConstantTimeCompare([]byte(key), []byte(adminToken)) == 1, nil
		}))
	}

	admin.POST("/candidates/csv/upload", importHandler.UploadCSV)
	admin.POST("/candidates/csv/import", importHandler.StartImport)
	admin.GET("/candidates/csv/import/:id", importHandler.ImportStatus)
	admin.GET("/candidates/csv/import/:id/result", importHandler.ImportResult)
	admin.GET("/candidates/csv/import/:id/errors", importHandler.DownloadErrorLog)

	server.GET("/api/v1/candidates/:id", candidateHandler.GetCandidateByID)
}
