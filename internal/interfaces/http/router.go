// Package http expõe a API REST do subsistema fiscal sobre Fiber.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seu-usuario/pdv-fiscal/internal/application/fiscal"
	"github.com/seu-usuario/pdv-fiscal/internal/domain/repository"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	Controller *fiscal.Controller
	ConfigRepo repository.ConfigGatewayRepository
	JWTSecret  string
}

// Router registra as rotas da API. Tudo exige Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// NF-e
	nfe := api.Group("/nfe")
	nfeHandler := NewNfeHandler(deps.Controller)
	nfe.Post("/", nfeHandler.Criar)
	nfe.Get("/", nfeHandler.List)
	nfe.Get("/stats", nfeHandler.Stats)
	nfe.Get("/:id", nfeHandler.GetByID)
	nfe.Delete("/:id", nfeHandler.Deletar)
	nfe.Post("/:id/transmitir", nfeHandler.Transmitir)
	nfe.Post("/:id/reprocessar", nfeHandler.Reprocessar)
	nfe.Post("/:id/consultar", nfeHandler.Consultar)
	nfe.Post("/:id/cancelar", nfeHandler.Cancelar)
	nfe.Post("/:id/marcar-autorizada", nfeHandler.MarcarAutorizada)

	// Configuração do gateway
	config := api.Group("/config")
	configHandler := NewConfigHandler(deps.ConfigRepo)
	config.Get("/gateway", configHandler.Get)
	config.Put("/gateway", configHandler.Put)
}
