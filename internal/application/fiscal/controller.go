// Package fiscal orquestra o ciclo de vida da NF-e: criação a partir da
// venda, transmissão, consulta, cancelamento, reprocessamento e as rotas de
// recuperação para respostas ambíguas da SEFAZ (duplicidade, cancelamento
// externo, drift de numeração). Toda mutação de status passa por aqui.
package fiscal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seu-usuario/pdv-fiscal/internal/domain"
	"github.com/seu-usuario/pdv-fiscal/internal/domain/entity"
	domnfe "github.com/seu-usuario/pdv-fiscal/internal/domain/nfe"
	"github.com/seu-usuario/pdv-fiscal/internal/domain/repository"
	"github.com/seu-usuario/pdv-fiscal/pkg/logger"
)

// ResultadoOperacao resultado de transmitir/reprocessar/cancelar.
type ResultadoOperacao struct {
	Sucesso   bool
	Status    string
	Protocolo string
	Mensagem  string
}

// SituacaoNfe resultado de uma consulta à SEFAZ.
type SituacaoNfe struct {
	Status    string
	Mensagem  string
	Codigo    string
	Protocolo string
}

// Controller é o controlador do ciclo de vida fiscal. Operações mutantes
// sobre a mesma nota são serializadas por lock por id; uma segunda chamada
// concorrente recebe domain.ErrOperacaoEmAndamento. A decisão de transição
// é sempre calculada a partir de uma leitura feita sob o mesmo lock que a
// consolida — nunca de uma leitura antiga.
type Controller struct {
	tx         EmissaoTxRunner
	nfeRepo    repository.NfeRepository
	statsRepo  repository.StatsRepository
	configRepo repository.ConfigGatewayRepository
	gateway    GatewayClient
	locks      *idLocks
	log        *logger.Logger
	timeout    time.Duration
}

// NewController constrói o controlador. timeout limita cada chamada ao
// gateway; estouros são tratados como falha de transporte.
func NewController(
	tx EmissaoTxRunner,
	nfeRepo repository.NfeRepository,
	statsRepo repository.StatsRepository,
	configRepo repository.ConfigGatewayRepository,
	gateway GatewayClient,
	log *logger.Logger,
	timeout time.Duration,
) *Controller {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Controller{
		tx:         tx,
		nfeRepo:    nfeRepo,
		statsRepo:  statsRepo,
		configRepo: configRepo,
		gateway:    gateway,
		locks:      newIDLocks(),
		log:        log,
		timeout:    timeout,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Criação
// ──────────────────────────────────────────────────────────────────────────────

// CriarNfe cria uma nota PENDENTE a partir do snapshot da venda. O valor
// total e o total de cada item são sempre recalculados, nunca aceitos do
// chamador. O número é atribuído pela sequência durável de
// (empresa, série, ambiente) na mesma transação do insert; um override
// manual configurado para o ambiente é consumido e limpo nessa atribuição.
func (c *Controller) CriarNfe(ctx context.Context, empresaID string, venda entity.VendaSnapshot) (*entity.Nfe, error) {
	if len(venda.Itens) == 0 {
		return nil, fmt.Errorf("%w: venda sem itens", domain.ErrValidacaoFalhou)
	}

	cfg, err := c.configRepo.Buscar(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	ambiente := entity.AmbienteHomologacao
	serie := entity.SerieDefault
	natureza := ""
	if cfg != nil {
		if cfg.AmbienteAtivo != "" {
			ambiente = cfg.AmbienteAtivo
		}
		serie = cfg.Serie()
		natureza = cfg.NaturezaOperacao
	}

	now := time.Now()
	nota := &entity.Nfe{
		ID:               uuid.New().String(),
		EmpresaID:        empresaID,
		Serie:            serie,
		Ambiente:         ambiente,
		Status:           entity.StatusNfePendente,
		ClienteID:        venda.ClienteID,
		CnpjCpf:          venda.CnpjCpf,
		NaturezaOperacao: natureza,
		Observacoes:      venda.Observacoes,
		DataEmissao:      now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, item := range venda.Itens {
		if !item.Quantidade.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: quantidade deve ser positiva (produto %s)", domain.ErrValidacaoFalhou, item.ProdutoID)
		}
		if item.PrecoUnitario.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: preço unitário negativo (produto %s)", domain.ErrValidacaoFalhou, item.ProdutoID)
		}
		nota.Itens = append(nota.Itens, &entity.ItemNfe{
			ID:            uuid.New().String(),
			NfeID:         nota.ID,
			ProdutoID:     item.ProdutoID,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
			PrecoTotal:    item.Quantidade.Mul(item.PrecoUnitario),
		})
	}
	nota.ValorTotal = nota.CalcularValorTotal()

	err = c.tx.RunEmissao(ctx, func(nfeRepo repository.NfeRepository, numeracao repository.NumeracaoRepository) error {
		numero, nErr := numeracao.ProximoNumero(ctx, empresaID, serie, ambiente)
		if nErr != nil {
			return nErr
		}
		nota.Numero = numero
		return nfeRepo.Criar(ctx, nota)
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Str("nfe_id", nota.ID).
		Int64("numero", nota.Numero).
		Str("serie", nota.Serie).
		Str("ambiente", nota.Ambiente).
		Msg("nfe criada")
	return nota, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Transmissão e reprocessamento
// ──────────────────────────────────────────────────────────────────────────────

// TransmitirNfe envia uma nota PENDENTE ou ERRO à SEFAZ. Em falha de
// transporte (nenhum recibo do lado da autoridade) a nota volta ao status
// anterior com o erro registrado em motivo_status — nunca fica presa em
// PROCESSANDO sem nada a consultar. PROCESSANDO só é persistido quando a
// própria SEFAZ confirma recebimento em processamento.
func (c *Controller) TransmitirNfe(ctx context.Context, empresaID, id string) (*ResultadoOperacao, error) {
	if !c.locks.tryAcquire(id) {
		return nil, domain.ErrOperacaoEmAndamento
	}
	defer c.locks.release(id)

	nota, err := c.buscarDaEmpresa(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if !nota.PodeTransmitir() {
		return nil, fmt.Errorf("%w: transmitir exige PENDENTE ou ERRO (atual: %s)", domain.ErrPrecondicaoInvalida, nota.Status)
	}
	return c.executarTransmissao(ctx, nota)
}

// ReprocessarNfe retransmite uma nota em ERRO. Recusado quando o motivo
// classifica como duplicidade: a SEFAZ pode já deter o documento como
// autorizado e a retransmissão repetiria a mesma rejeição em loop — o
// caminho certo é consultar ou marcar como autorizada.
func (c *Controller) ReprocessarNfe(ctx context.Context, empresaID, id string) (*ResultadoOperacao, error) {
	if !c.locks.tryAcquire(id) {
		return nil, domain.ErrOperacaoEmAndamento
	}
	defer c.locks.release(id)

	nota, err := c.buscarDaEmpresa(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if nota.Status != entity.StatusNfeErro {
		return nil, fmt.Errorf("%w: reprocessar exige status ERRO (atual: %s)", domain.ErrPrecondicaoInvalida, nota.Status)
	}
	if domnfe.Classificar("", nota.MotivoStatus) == domnfe.FalhaDuplicidade {
		return nil, fmt.Errorf("%w: rejeição por duplicidade não admite retransmissão; consulte a SEFAZ ou marque como autorizada", domain.ErrPrecondicaoInvalida)
	}
	return c.executarTransmissao(ctx, nota)
}

// executarTransmissao é o núcleo compartilhado de Transmitir/Reprocessar.
// O chamador já detém o lock da nota.
func (c *Controller) executarTransmissao(ctx context.Context, nota *entity.Nfe) (*ResultadoOperacao, error) {
	cred, err := c.credenciais(ctx, nota.EmpresaID, nota.Ambiente)
	if err != nil {
		return nil, err
	}

	statusAnterior := nota.Status
	gwCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.gateway.Transmitir(gwCtx, cred, dadosTransmissao(nota))
	if err != nil {
		// Sem recibo da autoridade: reverte ao status anterior, registra o
		// motivo e propaga o erro de transporte.
		nota.Status = statusAnterior
		nota.MotivoStatus = "falha de transporte: " + err.Error()
		if uErr := c.commit(ctx, nota); uErr != nil {
			c.log.Error().Err(uErr).Str("nfe_id", nota.ID).Msg("falha ao registrar motivo de transporte")
		}
		return nil, err
	}

	switch res.Situacao {
	case SituacaoAutorizada:
		c.aplicarAutorizacao(nota, res.Protocolo, res.ChaveAcesso, res.Mensagem)
		if err := c.commit(ctx, nota); err != nil {
			return nil, err
		}
		c.log.Info().Str("nfe_id", nota.ID).Str("protocolo", nota.Protocolo).Msg("nfe autorizada")
		return &ResultadoOperacao{Sucesso: true, Status: nota.Status, Protocolo: nota.Protocolo, Mensagem: res.Mensagem}, nil

	case SituacaoEmProcessamento:
		// Recibo confirmado do lado da SEFAZ: PROCESSANDO passa a ser durável
		// e consultável.
		nota.Status = entity.StatusNfeProcessando
		if res.Protocolo != "" {
			nota.Protocolo = res.Protocolo
		}
		nota.MotivoStatus = res.Mensagem
		if err := c.commit(ctx, nota); err != nil {
			return nil, err
		}
		return &ResultadoOperacao{Sucesso: true, Status: nota.Status, Protocolo: nota.Protocolo, Mensagem: res.Mensagem}, nil

	default:
		// Rejeição explícita: vira ERRO com o motivo cru — inclusive
		// duplicidade, para que a inspeção posterior possa agir sobre ela.
		nota.Status = entity.StatusNfeErro
		nota.MotivoStatus = res.Mensagem
		if err := c.commit(ctx, nota); err != nil {
			return nil, err
		}
		rej := domnfe.NovaRejeicao(res.Codigo, res.Mensagem)
		c.log.Warn().
			Str("nfe_id", nota.ID).
			Str("tipo_falha", string(rej.Tipo)).
			Str("codigo", res.Codigo).
			Msg("nfe rejeitada pela autoridade")
		return &ResultadoOperacao{Sucesso: false, Status: nota.Status, Mensagem: res.Mensagem}, nil
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Consulta
// ──────────────────────────────────────────────────────────────────────────────

// ConsultarNfeSefaz relê a situação da nota na SEFAZ e reconcilia o registro
// local: autorização tardia, cancelamento externo (código 218 / "já
// cancelada") e rejeições são aplicados; numa falha da consulta a nota fica
// exatamente como estava e o erro é propagado, não absorvido.
func (c *Controller) ConsultarNfeSefaz(ctx context.Context, empresaID, id string) (*SituacaoNfe, error) {
	if !c.locks.tryAcquire(id) {
		return nil, domain.ErrOperacaoEmAndamento
	}
	defer c.locks.release(id)

	nota, err := c.buscarDaEmpresa(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	switch nota.Status {
	case entity.StatusNfeProcessando, entity.StatusNfeErro, entity.StatusNfeAutorizada:
	default:
		return nil, fmt.Errorf("%w: consultar exige PROCESSANDO, ERRO ou AUTORIZADA (atual: %s)", domain.ErrPrecondicaoInvalida, nota.Status)
	}

	cred, err := c.credenciais(ctx, nota.EmpresaID, nota.Ambiente)
	if err != nil {
		return nil, err
	}
	gwCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.gateway.Consultar(gwCtx, cred, nota.ID)
	if err != nil {
		return nil, err
	}

	switch res.Situacao {
	case SituacaoAutorizada:
		c.aplicarAutorizacao(nota, res.Protocolo, res.ChaveAcesso, res.Mensagem)

	case SituacaoCancelada:
		c.aplicarCancelamentoExterno(nota, res.Mensagem)

	case SituacaoEmProcessamento:
		// Nota já autorizada nunca volta a PROCESSANDO: a única saída de
		// AUTORIZADA é CANCELADA. A resposta fica só no motivo.
		if nota.Status != entity.StatusNfeAutorizada {
			nota.Status = entity.StatusNfeProcessando
		}
		nota.MotivoStatus = res.Mensagem

	default: // rejeitado
		switch {
		case domnfe.Classificar(res.Codigo, res.Mensagem) == domnfe.FalhaJaCancelada:
			// Documento cancelado por fora (outro emissor, portal SEFAZ):
			// o registro local converge para CANCELADA.
			c.aplicarCancelamentoExterno(nota, res.Mensagem)
		case nota.Status == entity.StatusNfeAutorizada:
			// Rejeição genérica sobre documento que a autoridade já
			// autorizou não rebaixa o status: rebaixar a ERRO reabriria
			// deleção e retransmissão de um documento juridicamente
			// vinculante. Só o motivo é registrado.
			nota.MotivoStatus = res.Mensagem
			c.log.Warn().
				Str("nfe_id", nota.ID).
				Str("codigo", res.Codigo).
				Msg("consulta rejeitada para nota autorizada; status mantido")
		default:
			nota.Status = entity.StatusNfeErro
			nota.MotivoStatus = res.Mensagem
		}
	}

	if err := c.commit(ctx, nota); err != nil {
		return nil, err
	}
	return &SituacaoNfe{
		Status:    nota.Status,
		Mensagem:  res.Mensagem,
		Codigo:    res.Codigo,
		Protocolo: nota.Protocolo,
	}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Recuperação manual
// ──────────────────────────────────────────────────────────────────────────────

// MarcarNfeComoAutorizada resolve manualmente uma rejeição por duplicidade:
// a SEFAZ já detém o documento como autorizado, então só a escrituração
// local é atualizada. Sem chave explícita, tenta extraí-la do motivo; a
// extração pode legitimamente falhar e a chave fica vazia (downloads
// indisponíveis até resolução por outro meio). Decisão de confiança do
// operador — deliberadamente NÃO reverifica com a autoridade; fica apenas
// registrada em log para auditoria.
func (c *Controller) MarcarNfeComoAutorizada(ctx context.Context, empresaID, id, chave string) (*entity.Nfe, error) {
	if !c.locks.tryAcquire(id) {
		return nil, domain.ErrOperacaoEmAndamento
	}
	defer c.locks.release(id)

	nota, err := c.buscarDaEmpresa(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if nota.Status != entity.StatusNfeErro {
		return nil, fmt.Errorf("%w: marcar como autorizada exige status ERRO (atual: %s)", domain.ErrPrecondicaoInvalida, nota.Status)
	}
	if domnfe.Classificar("", nota.MotivoStatus) != domnfe.FalhaDuplicidade {
		return nil, fmt.Errorf("%w: o motivo atual não classifica como duplicidade", domain.ErrPrecondicaoInvalida)
	}

	if chave == "" {
		chave = domnfe.ExtrairChave(nota.MotivoStatus)
	}
	if nota.ChaveAcesso == "" && chave != "" {
		nota.ChaveAcesso = chave
	}
	nota.Status = entity.StatusNfeAutorizada
	now := time.Now()
	nota.DataAutorizacao = &now
	// MotivoStatus é preservado: a mensagem de duplicidade continua
	// disponível para auditoria da recuperação.

	if err := c.commit(ctx, nota); err != nil {
		return nil, err
	}
	c.log.Warn().
		Str("nfe_id", nota.ID).
		Str("chave_acesso", nota.ChaveAcesso).
		Str("origem", "manual").
		Msg("nfe marcada como autorizada sem verificação na SEFAZ")
	return nota, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelamento e remoção
// ──────────────────────────────────────────────────────────────────────────────

// justificativaMinima é o mínimo legal de caracteres para cancelamento.
const justificativaMinima = 15

// CancelarNfe cancela uma nota AUTORIZADA junto à SEFAZ. A justificativa
// precisa de ao menos 15 caracteres (validado localmente, sem tocar o
// gateway). Numa falha do gateway a nota permanece AUTORIZADA e o erro é
// propagado; o cancelamento nunca é repetido automaticamente — a janela
// externa de cancelamento é estreita (24 h a partir da autorização).
func (c *Controller) CancelarNfe(ctx context.Context, empresaID, id, justificativa string) (*ResultadoOperacao, error) {
	if !c.locks.tryAcquire(id) {
		return nil, domain.ErrOperacaoEmAndamento
	}
	defer c.locks.release(id)

	nota, err := c.buscarDaEmpresa(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if nota.Status != entity.StatusNfeAutorizada {
		return nil, fmt.Errorf("%w: cancelar exige status AUTORIZADA (atual: %s)", domain.ErrPrecondicaoInvalida, nota.Status)
	}
	if len([]rune(justificativa)) < justificativaMinima {
		return nil, fmt.Errorf("%w: justificativa deve ter ao menos %d caracteres", domain.ErrValidacaoFalhou, justificativaMinima)
	}

	cred, err := c.credenciais(ctx, nota.EmpresaID, nota.Ambiente)
	if err != nil {
		return nil, err
	}
	gwCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.gateway.Cancelar(gwCtx, cred, nota.ID, justificativa)
	if err != nil {
		// Falha de transporte: nota intocada, erro propagado ao operador.
		return nil, err
	}
	if !res.Sucesso {
		nota.MotivoStatus = res.Mensagem
		if uErr := c.commit(ctx, nota); uErr != nil {
			return nil, uErr
		}
		return nil, domnfe.NovaRejeicao(res.Codigo, res.Mensagem)
	}

	now := time.Now()
	nota.Status = entity.StatusNfeCancelada
	nota.ProtocoloCancelamento = res.Protocolo
	nota.DataCancelamento = &now
	nota.MotivoStatus = res.Mensagem
	if err := c.commit(ctx, nota); err != nil {
		return nil, err
	}
	c.log.Info().Str("nfe_id", nota.ID).Str("protocolo", res.Protocolo).Msg("nfe cancelada")
	return &ResultadoOperacao{Sucesso: true, Status: nota.Status, Protocolo: res.Protocolo, Mensagem: res.Mensagem}, nil
}

// DeletarNfe remove uma nota PENDENTE ou ERRO. Documentos já conhecidos
// pela autoridade (AUTORIZADA em diante) não podem ser apagados
// silenciosamente.
func (c *Controller) DeletarNfe(ctx context.Context, empresaID, id string) error {
	if !c.locks.tryAcquire(id) {
		return domain.ErrOperacaoEmAndamento
	}
	defer c.locks.release(id)

	nota, err := c.buscarDaEmpresa(ctx, empresaID, id)
	if err != nil {
		return err
	}
	if !nota.PodeDeletar() {
		return fmt.Errorf("%w: deletar exige PENDENTE ou ERRO (atual: %s)", domain.ErrPrecondicaoInvalida, nota.Status)
	}
	nota.Status = entity.StatusNfeDeletada
	if err := c.commit(ctx, nota); err != nil {
		return err
	}
	c.log.Info().Str("nfe_id", nota.ID).Msg("nfe deletada")
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Leitura
// ──────────────────────────────────────────────────────────────────────────────

// BuscarNfe retorna a nota da empresa (com itens), ou ErrNaoEncontrado.
func (c *Controller) BuscarNfe(ctx context.Context, empresaID, id string) (*entity.Nfe, error) {
	return c.buscarDaEmpresa(ctx, empresaID, id)
}

// ListarNfes pagina as notas da empresa, opcionalmente por status.
func (c *Controller) ListarNfes(ctx context.Context, empresaID, status string, limit, offset int) ([]*entity.Nfe, error) {
	return c.nfeRepo.Listar(ctx, empresaID, status, limit, offset)
}

// EstatisticasNfe recomputa a projeção de leitura varrendo o repositório.
func (c *Controller) EstatisticasNfe(ctx context.Context, empresaID string) (*entity.NfeStats, error) {
	return c.statsRepo.EstatisticasPorEmpresa(ctx, empresaID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers privados
// ──────────────────────────────────────────────────────────────────────────────

// buscarDaEmpresa lê a nota sob o lock do chamador e valida o escopo da
// empresa. Nota de outra empresa responde como inexistente.
func (c *Controller) buscarDaEmpresa(ctx context.Context, empresaID, id string) (*entity.Nfe, error) {
	nota, err := c.nfeRepo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if nota == nil || nota.EmpresaID != empresaID {
		return nil, domain.ErrNaoEncontrado
	}
	return nota, nil
}

// credenciais monta as credenciais do gateway para o ambiente da nota.
func (c *Controller) credenciais(ctx context.Context, empresaID, ambiente string) (CredenciaisGateway, error) {
	cfg, err := c.configRepo.Buscar(ctx, empresaID)
	if err != nil {
		return CredenciaisGateway{}, err
	}
	if cfg == nil {
		return CredenciaisGateway{}, fmt.Errorf("%w: empresa sem configuração de gateway", domain.ErrConfigIncompleta)
	}
	token := cfg.Token(ambiente)
	if token == "" {
		return CredenciaisGateway{}, fmt.Errorf("%w: sem credencial para o ambiente %s", domain.ErrConfigIncompleta, ambiente)
	}
	return CredenciaisGateway{Token: token, CnpjEmitente: cfg.CnpjEmitente, Ambiente: ambiente}, nil
}

// aplicarAutorizacao grava os campos de autorização. A chave de acesso é
// imutável depois de atribuída.
func (c *Controller) aplicarAutorizacao(nota *entity.Nfe, protocolo, chave, mensagem string) {
	nota.Status = entity.StatusNfeAutorizada
	if protocolo != "" {
		nota.Protocolo = protocolo
	}
	if nota.ChaveAcesso == "" && chave != "" {
		nota.ChaveAcesso = chave
	}
	if nota.DataAutorizacao == nil {
		now := time.Now()
		nota.DataAutorizacao = &now
	}
	nota.MotivoStatus = mensagem
}

// aplicarCancelamentoExterno converge o registro local para CANCELADA
// quando a SEFAZ reporta o documento como já cancelado.
func (c *Controller) aplicarCancelamentoExterno(nota *entity.Nfe, mensagem string) {
	nota.Status = entity.StatusNfeCancelada
	if nota.DataCancelamento == nil {
		now := time.Now()
		nota.DataCancelamento = &now
	}
	nota.MotivoStatus = mensagem
	c.log.Warn().Str("nfe_id", nota.ID).Msg("cancelamento externo detectado via consulta")
}

// commit consolida a transição num único UPDATE (status + auditoria juntos).
func (c *Controller) commit(ctx context.Context, nota *entity.Nfe) error {
	nota.UpdatedAt = time.Now()
	return c.nfeRepo.Atualizar(ctx, nota)
}

// dadosTransmissao projeta a nota no recorte enviado ao gateway.
func dadosTransmissao(nota *entity.Nfe) DadosTransmissao {
	dados := DadosTransmissao{
		Referencia:       nota.ID,
		Numero:           nota.Numero,
		Serie:            nota.Serie,
		Ambiente:         nota.Ambiente,
		CnpjCpfDest:      nota.CnpjCpf,
		NaturezaOperacao: nota.NaturezaOperacao,
		ValorTotal:       nota.ValorTotal.StringFixed(2),
	}
	for _, item := range nota.Itens {
		dados.Itens = append(dados.Itens, ItemTransmissao{
			ProdutoID:     item.ProdutoID,
			Quantidade:    item.Quantidade.String(),
			PrecoUnitario: item.PrecoUnitario.StringFixed(2),
			PrecoTotal:    item.PrecoTotal.StringFixed(2),
		})
	}
	return dados
}
