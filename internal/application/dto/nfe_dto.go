package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/seu-usuario/pdv-fiscal/internal/domain/entity"
)

// CriarNfeRequest body para POST /api/nfe: o snapshot da venda a faturar.
// Os totais são sempre recalculados no servidor, nunca aceitos daqui.
type CriarNfeRequest struct {
	ClienteID   string           `json:"cliente_id,omitempty"`
	CnpjCpf     string           `json:"cnpj_cpf,omitempty"`
	Observacoes string           `json:"observacoes,omitempty"`
	Itens       []ItemNfeRequest `json:"itens"`
}

// ItemNfeRequest linha da venda (produto, quantidade, preço unitário).
type ItemNfeRequest struct {
	ProdutoID     string          `json:"produto_id"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
}

// Snapshot converte o body no recorte de venda do domínio.
func (r CriarNfeRequest) Snapshot() entity.VendaSnapshot {
	venda := entity.VendaSnapshot{
		ClienteID:   r.ClienteID,
		CnpjCpf:     r.CnpjCpf,
		Observacoes: r.Observacoes,
	}
	for _, item := range r.Itens {
		venda.Itens = append(venda.Itens, entity.ItemVenda{
			ProdutoID:     item.ProdutoID,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
		})
	}
	return venda
}

// CancelarNfeRequest body para POST /api/nfe/:id/cancelar.
type CancelarNfeRequest struct {
	Justificativa string `json:"justificativa"`
}

// MarcarAutorizadaRequest body para POST /api/nfe/:id/marcar-autorizada.
// A chave é opcional; ausente, tenta-se extraí-la do motivo de rejeição.
type MarcarAutorizadaRequest struct {
	ChaveAcesso string `json:"chave_acesso,omitempty"`
}

// NfeResponse nota fiscal em respostas.
type NfeResponse struct {
	ID                    string            `json:"id"`
	EmpresaID             string            `json:"empresa_id"`
	Numero                int64             `json:"numero"`
	Serie                 string            `json:"serie"`
	Ambiente              string            `json:"ambiente"`
	Status                string            `json:"status"`
	ClienteID             string            `json:"cliente_id,omitempty"`
	CnpjCpf               string            `json:"cnpj_cpf,omitempty"`
	ValorTotal            decimal.Decimal   `json:"valor_total"`
	ChaveAcesso           string            `json:"chave_acesso,omitempty"`
	Protocolo             string            `json:"protocolo,omitempty"`
	ProtocoloCancelamento string            `json:"protocolo_cancelamento,omitempty"`
	DataCancelamento      *time.Time        `json:"data_cancelamento,omitempty"`
	MotivoStatus          string            `json:"motivo_status,omitempty"`
	NaturezaOperacao      string            `json:"natureza_operacao,omitempty"`
	Observacoes           string            `json:"observacoes,omitempty"`
	DataEmissao           time.Time         `json:"data_emissao"`
	DataAutorizacao       *time.Time        `json:"data_autorizacao,omitempty"`
	Itens                 []ItemNfeResponse `json:"itens,omitempty"`
}

// ItemNfeResponse linha da nota em respostas.
type ItemNfeResponse struct {
	ID            string          `json:"id"`
	ProdutoID     string          `json:"produto_id"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	PrecoTotal    decimal.Decimal `json:"preco_total"`
}

// NfeFromEntity projeta a entidade na resposta HTTP.
func NfeFromEntity(nota *entity.Nfe) NfeResponse {
	resp := NfeResponse{
		ID:                    nota.ID,
		EmpresaID:             nota.EmpresaID,
		Numero:                nota.Numero,
		Serie:                 nota.Serie,
		Ambiente:              nota.Ambiente,
		Status:                nota.Status,
		ClienteID:             nota.ClienteID,
		CnpjCpf:               nota.CnpjCpf,
		ValorTotal:            nota.ValorTotal,
		ChaveAcesso:           nota.ChaveAcesso,
		Protocolo:             nota.Protocolo,
		ProtocoloCancelamento: nota.ProtocoloCancelamento,
		DataCancelamento:      nota.DataCancelamento,
		MotivoStatus:          nota.MotivoStatus,
		NaturezaOperacao:      nota.NaturezaOperacao,
		Observacoes:           nota.Observacoes,
		DataEmissao:           nota.DataEmissao,
		DataAutorizacao:       nota.DataAutorizacao,
	}
	for _, item := range nota.Itens {
		resp.Itens = append(resp.Itens, ItemNfeResponse{
			ID:            item.ID,
			ProdutoID:     item.ProdutoID,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
			PrecoTotal:    item.PrecoTotal,
		})
	}
	return resp
}

// ResultadoResponse resultado de transmitir/reprocessar/cancelar.
type ResultadoResponse struct {
	Sucesso   bool   `json:"sucesso"`
	Status    string `json:"status"`
	Protocolo string `json:"protocolo,omitempty"`
	Mensagem  string `json:"mensagem,omitempty"`
}

// ConsultaResponse resultado da consulta de situação na SEFAZ.
type ConsultaResponse struct {
	Status    string `json:"status"`
	Codigo    string `json:"codigo,omitempty"`
	Mensagem  string `json:"mensagem,omitempty"`
	Protocolo string `json:"protocolo,omitempty"`
}

// StatsResponse projeção de estatísticas por status.
type StatsResponse struct {
	PorStatus       map[string]int64 `json:"por_status"`
	TotalAutorizado decimal.Decimal  `json:"total_autorizado"`
}

// ConfigGatewayRequest body para PUT /api/config/gateway. Tokens em branco
// preservam os já gravados.
type ConfigGatewayRequest struct {
	AmbienteAtivo            string `json:"ambiente_ativo"`
	TokenHomologacao         string `json:"token_homologacao,omitempty"`
	TokenProducao            string `json:"token_producao,omitempty"`
	CnpjEmitente             string `json:"cnpj_emitente,omitempty"`
	SeriePadrao              string `json:"serie_padrao,omitempty"`
	NaturezaOperacao         string `json:"natureza_operacao,omitempty"`
	ProximoNumeroHomologacao *int64 `json:"proximo_numero_homologacao,omitempty"`
	ProximoNumeroProducao    *int64 `json:"proximo_numero_producao,omitempty"`
}

// ConfigGatewayResponse configuração sem credenciais: só flags de presença.
type ConfigGatewayResponse struct {
	AmbienteAtivo               string `json:"ambiente_ativo"`
	TokenHomologacaoConfigurado bool   `json:"token_homologacao_configurado"`
	TokenProducaoConfigurado    bool   `json:"token_producao_configurado"`
	CnpjEmitente                string `json:"cnpj_emitente,omitempty"`
	SeriePadrao                 string `json:"serie_padrao,omitempty"`
	NaturezaOperacao            string `json:"natureza_operacao,omitempty"`
	ProximoNumeroHomologacao    *int64 `json:"proximo_numero_homologacao,omitempty"`
	ProximoNumeroProducao       *int64 `json:"proximo_numero_producao,omitempty"`
}

// ConfigFromEntity projeta a configuração na resposta, sem ecoar tokens.
func ConfigFromEntity(cfg *entity.ConfigGateway) ConfigGatewayResponse {
	return ConfigGatewayResponse{
		AmbienteAtivo:               cfg.AmbienteAtivo,
		TokenHomologacaoConfigurado: cfg.TokenHomologacao != "",
		TokenProducaoConfigurado:    cfg.TokenProducao != "",
		CnpjEmitente:                cfg.CnpjEmitente,
		SeriePadrao:                 cfg.SeriePadrao,
		NaturezaOperacao:            cfg.NaturezaOperacao,
		ProximoNumeroHomologacao:    cfg.ProximoNumeroHomologacao,
		ProximoNumeroProducao:       cfg.ProximoNumeroProducao,
	}
}
