package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/seu-usuario/pdv-fiscal/internal/application/dto"
	"github.com/seu-usuario/pdv-fiscal/internal/application/fiscal"
	"github.com/seu-usuario/pdv-fiscal/internal/domain"
	domnfe "github.com/seu-usuario/pdv-fiscal/internal/domain/nfe"
)

// NfeHandler trata as requisições HTTP do ciclo de vida fiscal (protegido).
type NfeHandler struct {
	ctrl *fiscal.Controller
}

// NewNfeHandler constrói o handler.
func NewNfeHandler(ctrl *fiscal.Controller) *NfeHandler {
	return &NfeHandler{ctrl: ctrl}
}

// respondeErro mapeia os erros sentinela do domínio para status HTTP. Todos
// os handlers de NF-e compartilham a mesma taxonomia.
func respondeErro(c *fiber.Ctx, err error) error {
	var rej *domnfe.RejeicaoAutoridade
	switch {
	case errors.Is(err, domain.ErrValidacaoFalhou):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNaoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nota fiscal não encontrada"})
	case errors.Is(err, domain.ErrOperacaoEmAndamento):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OPERATION_IN_PROGRESS", Message: "já existe operação em andamento para esta nota"})
	case errors.Is(err, domain.ErrPrecondicaoInvalida):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConfigIncompleta):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CONFIG_INCOMPLETE", Message: err.Error()})
	case errors.Is(err, domain.ErrTransporteFalhou):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "GATEWAY_UNREACHABLE", Message: err.Error()})
	case errors.As(err, &rej):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "REJECTED", Message: rej.Mensagem})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Criar cria uma nota PENDENTE a partir do snapshot da venda.
// POST /api/nfe
func (h *NfeHandler) Criar(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CriarNfeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	nota, err := h.ctrl.CriarNfe(c.Context(), empresaID, in.Snapshot())
	if err != nil {
		return respondeErro(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NfeFromEntity(nota))
}

// Transmitir envia a nota à SEFAZ.
// POST /api/nfe/:id/transmitir
func (h *NfeHandler) Transmitir(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	res, err := h.ctrl.TransmitirNfe(c.Context(), empresaID, c.Params("id"))
	if err != nil {
		return respondeErro(c, err)
	}
	return c.JSON(dto.ResultadoResponse{Sucesso: res.Sucesso, Status: res.Status, Protocolo: res.Protocolo, Mensagem: res.Mensagem})
}

// Reprocessar retransmite uma nota em ERRO (exceto duplicidade).
// POST /api/nfe/:id/reprocessar
func (h *NfeHandler) Reprocessar(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	res, err := h.ctrl.ReprocessarNfe(c.Context(), empresaID, c.Params("id"))
	if err != nil {
		return respondeErro(c, err)
	}
	return c.JSON(dto.ResultadoResponse{Sucesso: res.Sucesso, Status: res.Status, Protocolo: res.Protocolo, Mensagem: res.Mensagem})
}

// Consultar relê a situação da nota na SEFAZ e reconcilia o registro local.
// POST /api/nfe/:id/consultar
func (h *NfeHandler) Consultar(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	sit, err := h.ctrl.ConsultarNfeSefaz(c.Context(), empresaID, c.Params("id"))
	if err != nil {
		return respondeErro(c, err)
	}
	return c.JSON(dto.ConsultaResponse{Status: sit.Status, Codigo: sit.Codigo, Mensagem: sit.Mensagem, Protocolo: sit.Protocolo})
}

// Cancelar cancela uma nota AUTORIZADA junto à SEFAZ.
// POST /api/nfe/:id/cancelar
func (h *NfeHandler) Cancelar(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CancelarNfeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	res, err := h.ctrl.CancelarNfe(c.Context(), empresaID, c.Params("id"), in.Justificativa)
	if err != nil {
		return respondeErro(c, err)
	}
	return c.JSON(dto.ResultadoResponse{Sucesso: res.Sucesso, Status: res.Status, Protocolo: res.Protocolo, Mensagem: res.Mensagem})
}

// MarcarAutorizada resolve manualmente uma rejeição por duplicidade.
// POST /api/nfe/:id/marcar-autorizada
func (h *NfeHandler) MarcarAutorizada(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.MarcarAutorizadaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	nota, err := h.ctrl.MarcarNfeComoAutorizada(c.Context(), empresaID, c.Params("id"), in.ChaveAcesso)
	if err != nil {
		return respondeErro(c, err)
	}
	return c.JSON(dto.NfeFromEntity(nota))
}

// Deletar remove (soft) uma nota PENDENTE ou ERRO.
// DELETE /api/nfe/:id
func (h *NfeHandler) Deletar(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.ctrl.DeletarNfe(c.Context(), empresaID, c.Params("id")); err != nil {
		return respondeErro(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID devolve a nota com itens.
// GET /api/nfe/:id
func (h *NfeHandler) GetByID(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	nota, err := h.ctrl.BuscarNfe(c.Context(), empresaID, c.Params("id"))
	if err != nil {
		return respondeErro(c, err)
	}
	return c.JSON(dto.NfeFromEntity(nota))
}

// List pagina as notas da empresa, com filtro opcional ?status=.
// GET /api/nfe
func (h *NfeHandler) List(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	page.DefaultPage()

	notas, err := h.ctrl.ListarNfes(c.Context(), empresaID, c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondeErro(c, err)
	}
	resp := make([]dto.NfeResponse, 0, len(notas))
	for _, nota := range notas {
		resp = append(resp, dto.NfeFromEntity(nota))
	}
	return c.JSON(resp)
}

// Stats devolve a projeção de estatísticas por status.
// GET /api/nfe/stats
func (h *NfeHandler) Stats(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	stats, err := h.ctrl.EstatisticasNfe(c.Context(), empresaID)
	if err != nil {
		return respondeErro(c, err)
	}
	return c.JSON(dto.StatsResponse{PorStatus: stats.PorStatus, TotalAutorizado: stats.TotalAutorizado})
}
