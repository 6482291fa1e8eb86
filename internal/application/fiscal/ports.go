package fiscal

import (
	"context"

	"github.com/seu-usuario/pdv-fiscal/internal/domain/repository"
)

// SituacaoGateway é o status normalizado de uma resposta do gateway fiscal.
type SituacaoGateway string

const (
	SituacaoAutorizada      SituacaoGateway = "autorizado"
	SituacaoRejeitada       SituacaoGateway = "rejeitado"
	SituacaoEmProcessamento SituacaoGateway = "processando"
	SituacaoCancelada       SituacaoGateway = "cancelado"
)

// CredenciaisGateway autentica uma chamada ao gateway. O token vem da
// configuração da empresa para o ambiente da nota.
type CredenciaisGateway struct {
	Token        string
	CnpjEmitente string
	Ambiente     string
}

// DadosTransmissao é o recorte da nota enviado ao gateway.
type DadosTransmissao struct {
	Referencia       string // id local da nota, usado como ref idempotente no gateway
	Numero           int64
	Serie            string
	Ambiente         string
	CnpjCpfDest      string
	NaturezaOperacao string
	ValorTotal       string
	Itens            []ItemTransmissao
}

// ItemTransmissao linha da nota no formato do gateway.
type ItemTransmissao struct {
	ProdutoID     string
	Quantidade    string
	PrecoUnitario string
	PrecoTotal    string
}

// ResultadoTransmissao resposta do gateway a uma transmissão.
type ResultadoTransmissao struct {
	Situacao    SituacaoGateway
	Protocolo   string
	ChaveAcesso string
	Codigo      string
	Mensagem    string
}

// ResultadoConsulta resposta do gateway a uma consulta de situação.
type ResultadoConsulta struct {
	Situacao    SituacaoGateway
	Protocolo   string
	ChaveAcesso string
	Codigo      string
	Mensagem    string
}

// ResultadoCancelamento resposta do gateway a um pedido de cancelamento.
type ResultadoCancelamento struct {
	Sucesso   bool
	Protocolo string
	Codigo    string
	Mensagem  string
}

// GatewayClient é o porte de saída para a autoridade fiscal. Toda chamada
// respeita o deadline do contexto; um estouro de prazo é SEMPRE reportado
// como domain.ErrTransporteFalhou (embrulhado), nunca como rejeição — essa
// distinção sustenta a regra de reversão em falha de transporte.
type GatewayClient interface {
	Transmitir(ctx context.Context, cred CredenciaisGateway, dados DadosTransmissao) (*ResultadoTransmissao, error)
	Consultar(ctx context.Context, cred CredenciaisGateway, referencia string) (*ResultadoConsulta, error)
	Cancelar(ctx context.Context, cred CredenciaisGateway, referencia, justificativa string) (*ResultadoCancelamento, error)
}

// EmissaoTxRunner executa a emissão (atribuição de número + insert da nota)
// dentro de uma única transação, para que um crash no meio da criação nunca
// queime nem reutilize número silenciosamente.
type EmissaoTxRunner interface {
	RunEmissao(ctx context.Context, fn func(
		nfeRepo repository.NfeRepository,
		numeracao repository.NumeracaoRepository,
	) error) error
}
