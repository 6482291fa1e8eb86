// Package sefaz implementa o porte GatewayClient sobre a API HTTP do meio
// de emissão (gateway que intermedia a SEFAZ). O protocolo real da SEFAZ é
// opaco para este módulo; aqui só falamos JSON com o gateway.
package sefaz

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/seu-usuario/pdv-fiscal/internal/application/fiscal"
	"github.com/seu-usuario/pdv-fiscal/internal/domain"
)

var _ fiscal.GatewayClient = (*Client)(nil)

// Client cliente HTTP do gateway fiscal. O deadline de cada chamada vem do
// contexto do chamador; qualquer estouro ou falha de rede é reportado como
// domain.ErrTransporteFalhou — nunca como rejeição da autoridade.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constrói o cliente. O http.Client não carrega timeout próprio:
// o limite por chamada é imposto pelo contexto.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// ── Payloads do gateway ───────────────────────────────────────────────────────

type itemPayload struct {
	ProdutoID     string `json:"produto_id"`
	Quantidade    string `json:"quantidade"`
	PrecoUnitario string `json:"preco_unitario"`
	PrecoTotal    string `json:"preco_total"`
}

type transmissaoPayload struct {
	Numero           int64         `json:"numero"`
	Serie            string        `json:"serie"`
	Ambiente         string        `json:"ambiente"`
	CnpjEmitente     string        `json:"cnpj_emitente"`
	CnpjCpfDest      string        `json:"cnpj_cpf_destinatario,omitempty"`
	NaturezaOperacao string        `json:"natureza_operacao,omitempty"`
	ValorTotal       string        `json:"valor_total"`
	Itens            []itemPayload `json:"itens"`
}

type cancelamentoPayload struct {
	Justificativa string `json:"justificativa"`
}

// respostaGateway corpo comum de resposta do gateway.
type respostaGateway struct {
	Status    string `json:"status"` // autorizado | erro_autorizacao | processando_autorizacao | cancelado
	Protocolo string `json:"protocolo,omitempty"`
	ChaveNfe  string `json:"chave_nfe,omitempty"`
	Codigo    string `json:"codigo,omitempty"`
	Mensagem  string `json:"mensagem,omitempty"`
}

// ── Operações ─────────────────────────────────────────────────────────────────

// Transmitir envia a nota ao gateway. A referência local torna a submissão
// idempotente do lado do gateway.
func (c *Client) Transmitir(ctx context.Context, cred fiscal.CredenciaisGateway, dados fiscal.DadosTransmissao) (*fiscal.ResultadoTransmissao, error) {
	payload := transmissaoPayload{
		Numero:           dados.Numero,
		Serie:            dados.Serie,
		Ambiente:         dados.Ambiente,
		CnpjEmitente:     cred.CnpjEmitente,
		CnpjCpfDest:      dados.CnpjCpfDest,
		NaturezaOperacao: dados.NaturezaOperacao,
		ValorTotal:       dados.ValorTotal,
	}
	for _, item := range dados.Itens {
		payload.Itens = append(payload.Itens, itemPayload(item))
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/v2/nfe?ref="+dados.Referencia, cred.Token, payload)
	if err != nil {
		return nil, err
	}
	return &fiscal.ResultadoTransmissao{
		Situacao:    situacaoDe(resp.Status),
		Protocolo:   resp.Protocolo,
		ChaveAcesso: resp.ChaveNfe,
		Codigo:      resp.Codigo,
		Mensagem:    resp.Mensagem,
	}, nil
}

// Consultar relê a situação da nota no gateway.
func (c *Client) Consultar(ctx context.Context, cred fiscal.CredenciaisGateway, referencia string) (*fiscal.ResultadoConsulta, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v2/nfe/"+referencia, cred.Token, nil)
	if err != nil {
		return nil, err
	}
	return &fiscal.ResultadoConsulta{
		Situacao:    situacaoDe(resp.Status),
		Protocolo:   resp.Protocolo,
		ChaveAcesso: resp.ChaveNfe,
		Codigo:      resp.Codigo,
		Mensagem:    resp.Mensagem,
	}, nil
}

// Cancelar pede o cancelamento da nota com a justificativa dada.
func (c *Client) Cancelar(ctx context.Context, cred fiscal.CredenciaisGateway, referencia, justificativa string) (*fiscal.ResultadoCancelamento, error) {
	resp, err := c.doJSON(ctx, http.MethodDelete, "/v2/nfe/"+referencia, cred.Token, cancelamentoPayload{Justificativa: justificativa})
	if err != nil {
		return nil, err
	}
	return &fiscal.ResultadoCancelamento{
		Sucesso:   resp.Status == statusCancelado,
		Protocolo: resp.Protocolo,
		Codigo:    resp.Codigo,
		Mensagem:  resp.Mensagem,
	}, nil
}

// ── Transporte ────────────────────────────────────────────────────────────────

// Status reportados pelo gateway.
const (
	statusAutorizado  = "autorizado"
	statusProcessando = "processando_autorizacao"
	statusCancelado   = "cancelado"
)

func situacaoDe(status string) fiscal.SituacaoGateway {
	switch status {
	case statusAutorizado:
		return fiscal.SituacaoAutorizada
	case statusProcessando:
		return fiscal.SituacaoEmProcessamento
	case statusCancelado:
		return fiscal.SituacaoCancelada
	default:
		return fiscal.SituacaoRejeitada
	}
}

// doJSON executa a chamada e desempacota o corpo. Respostas 2xx e as de
// rejeição de documento (400/422) trazem o corpo comum do gateway; qualquer
// outra coisa — erro de rede, timeout, 5xx, corpo imparseável — é falha de
// transporte.
func (c *Client) doJSON(ctx context.Context, method, path, token string, payload interface{}) (*respostaGateway, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("sefaz: serializar payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("sefaz: criar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: timeout ou cancelamento: %v", domain.ErrTransporteFalhou, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTransporteFalhou, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // max 1 MB
	if err != nil {
		return nil, fmt.Errorf("%w: ler resposta: %v", domain.ErrTransporteFalhou, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300,
		resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnprocessableEntity:
		var parsed respostaGateway
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return nil, fmt.Errorf("%w: resposta imparseável do gateway: %v", domain.ErrTransporteFalhou, err)
		}
		return &parsed, nil
	default:
		return nil, fmt.Errorf("%w: gateway respondeu HTTP %d: %s", domain.ErrTransporteFalhou, resp.StatusCode, truncar(string(raw), 200))
	}
}

func truncar(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
