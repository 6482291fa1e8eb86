package repository

import (
	"context"

	"github.com/seu-usuario/pdv-fiscal/internal/domain/entity"
)

// NfeRepository define o porte de persistência do agregado NF-e.
// Todas as leituras excluem notas DELETADA: uma nota removida deixa de
// existir para o restante do sistema.
type NfeRepository interface {
	// Criar persiste cabeçalho e itens. Dentro da transação de emissão,
	// junto com a atribuição do número sequencial.
	Criar(ctx context.Context, nota *entity.Nfe) error
	// Atualizar grava status + campos de auditoria num único UPDATE
	// (commit completo ou nada; nunca transição parcial).
	Atualizar(ctx context.Context, nota *entity.Nfe) error
	// BuscarPorID retorna a nota com itens, ou nil se não existe (ou foi deletada).
	BuscarPorID(ctx context.Context, id string) (*entity.Nfe, error)
	// Listar pagina as notas da empresa, opcionalmente filtradas por status.
	Listar(ctx context.Context, empresaID, status string, limit, offset int) ([]*entity.Nfe, error)
	// ListarRefsPorStatus devolve referências leves (todas as empresas),
	// usado pelo varredor de reconciliação sobre notas PROCESSANDO.
	ListarRefsPorStatus(ctx context.Context, status string) ([]entity.RefNfe, error)
}

// StatsRepository projeta estatísticas por varredura do repositório.
type StatsRepository interface {
	EstatisticasPorEmpresa(ctx context.Context, empresaID string) (*entity.NfeStats, error)
}
