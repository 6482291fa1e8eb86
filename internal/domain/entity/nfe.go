package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do ciclo de vida da NF-e. Toda transição passa pelo controller
// fiscal; nenhum outro código altera Status diretamente.
const (
	StatusNfePendente    = "PENDENTE"    // Criada a partir da venda, ainda não transmitida
	StatusNfeProcessando = "PROCESSANDO" // SEFAZ confirmou recebimento, autorização pendente
	StatusNfeAutorizada  = "AUTORIZADA"  // Autorizada (protocolo + chave de acesso)
	StatusNfeErro        = "ERRO"        // Rejeitada pela SEFAZ ou erro de emissão
	StatusNfeCancelada   = "CANCELADA"   // Cancelada (localmente ou detectada via consulta)
	StatusNfeDeletada    = "DELETADA"    // Removida antes de ser conhecida pela SEFAZ
)

// Ambientes de emissão.
const (
	AmbienteHomologacao = "homologacao"
	AmbienteProducao    = "producao"
)

// SerieDefault é a série usada quando a configuração não define outra.
const SerieDefault = "001"

// Nfe representa uma nota fiscal eletrônica.
// Numero é único por (empresa, serie, ambiente). ChaveAcesso, uma vez
// atribuída, nunca muda. MotivoStatus guarda a última mensagem da
// SEFAZ/gateway e é preservado mesmo após recuperação, para auditoria.
type Nfe struct {
	ID                    string
	EmpresaID             string
	Numero                int64
	Serie                 string
	Ambiente              string
	Status                string
	ClienteID             string
	CnpjCpf               string // snapshot no momento da emissão; edições futuras do cliente não alteram a nota
	ValorTotal            decimal.Decimal
	ChaveAcesso           string // 44 dígitos, atribuída na autorização
	Protocolo             string
	ProtocoloCancelamento string
	DataCancelamento      *time.Time
	MotivoStatus          string
	NaturezaOperacao      string
	Observacoes           string
	DataEmissao           time.Time
	DataAutorizacao       *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
	Itens                 []*ItemNfe
}

// ItemNfe é uma linha da nota. PrecoTotal é sempre recalculado
// (quantidade × preço unitário), nunca aceito do chamador.
type ItemNfe struct {
	ID            string
	NfeID         string
	ProdutoID     string
	Quantidade    decimal.Decimal
	PrecoUnitario decimal.Decimal
	PrecoTotal    decimal.Decimal
}

// CalcularValorTotal soma os PrecoTotal dos itens.
func (n *Nfe) CalcularValorTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range n.Itens {
		total = total.Add(item.PrecoTotal)
	}
	return total
}

// PodeTransmitir indica se a nota está num status que admite (re)transmissão.
func (n *Nfe) PodeTransmitir() bool {
	return n.Status == StatusNfePendente || n.Status == StatusNfeErro
}

// PodeDeletar indica se a nota ainda pode ser removida: apenas enquanto a
// SEFAZ não a conhece (Pendente ou Erro).
func (n *Nfe) PodeDeletar() bool {
	return n.Status == StatusNfePendente || n.Status == StatusNfeErro
}

// RefNfe referência leve (id + empresa) usada pelo varredor de reconciliação.
type RefNfe struct {
	ID        string
	EmpresaID string
}

// NfeStats é a projeção de leitura derivada do repositório: contagem por
// status e soma do valor total das notas autorizadas. Sempre recomputável
// por varredura completa, nunca um contador oculto.
type NfeStats struct {
	PorStatus       map[string]int64
	TotalAutorizado decimal.Decimal
}
