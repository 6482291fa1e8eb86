package repository

import (
	"context"

	"github.com/seu-usuario/pdv-fiscal/internal/domain/entity"
)

// ConfigGatewayRepository persiste a configuração do gateway fiscal
// (uma linha por empresa).
type ConfigGatewayRepository interface {
	Buscar(ctx context.Context, empresaID string) (*entity.ConfigGateway, error)
	// Salvar faz upsert da configuração completa.
	Salvar(ctx context.Context, cfg *entity.ConfigGateway) error
}

// NumeracaoRepository atribui o próximo número sequencial por
// (empresa, série, ambiente). A implementação deve ser atômica e durável:
// se a configuração da empresa tiver um override manual para o ambiente,
// ele é consumido (e limpo) na mesma transação, realinhando a sequência.
type NumeracaoRepository interface {
	ProximoNumero(ctx context.Context, empresaID, serie, ambiente string) (int64, error)
}
