package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/seu-usuario/pdv-fiscal/internal/application/dto"
	"github.com/seu-usuario/pdv-fiscal/internal/domain/entity"
	"github.com/seu-usuario/pdv-fiscal/internal/domain/repository"
)

// ConfigHandler trata a configuração do gateway fiscal da empresa. Tokens
// nunca são ecoados nas respostas, só flags de presença.
type ConfigHandler struct {
	repo repository.ConfigGatewayRepository
}

// NewConfigHandler constrói o handler.
func NewConfigHandler(repo repository.ConfigGatewayRepository) *ConfigHandler {
	return &ConfigHandler{repo: repo}
}

// Get devolve a configuração da empresa, sem credenciais.
// GET /api/config/gateway
func (h *ConfigHandler) Get(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	cfg, err := h.repo.Buscar(c.Context(), empresaID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if cfg == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "gateway ainda não configurado"})
	}
	return c.JSON(dto.ConfigFromEntity(cfg))
}

// Put grava a configuração (upsert). Tokens em branco no body preservam os
// já gravados, permitindo atualizar o resto sem reenviar credenciais.
// PUT /api/config/gateway
func (h *ConfigHandler) Put(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ConfigGatewayRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	switch in.AmbienteAtivo {
	case entity.AmbienteHomologacao, entity.AmbienteProducao:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ambiente_ativo deve ser homologacao ou producao"})
	}

	atual, err := h.repo.Buscar(c.Context(), empresaID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if atual == nil {
		atual = &entity.ConfigGateway{EmpresaID: empresaID, CreatedAt: time.Now()}
	}

	atual.AmbienteAtivo = in.AmbienteAtivo
	if in.TokenHomologacao != "" {
		atual.TokenHomologacao = in.TokenHomologacao
	}
	if in.TokenProducao != "" {
		atual.TokenProducao = in.TokenProducao
	}
	atual.CnpjEmitente = in.CnpjEmitente
	atual.SeriePadrao = in.SeriePadrao
	atual.NaturezaOperacao = in.NaturezaOperacao
	atual.ProximoNumeroHomologacao = in.ProximoNumeroHomologacao
	atual.ProximoNumeroProducao = in.ProximoNumeroProducao
	atual.UpdatedAt = time.Now()

	if err := h.repo.Salvar(c.Context(), atual); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ConfigFromEntity(atual))
}
