package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seu-usuario/pdv-fiscal/internal/domain/entity"
	"github.com/seu-usuario/pdv-fiscal/internal/domain/repository"
)

var _ repository.NumeracaoRepository = (*NumeracaoRepo)(nil)

// NumeracaoRepo atribui números sequenciais duráveis por
// (empresa, série, ambiente). Deve rodar dentro da transação de emissão:
// o FOR UPDATE na linha de configuração serializa emissões concorrentes da
// mesma empresa, e o consumo do override só vale se a transação commitar.
type NumeracaoRepo struct {
	q Querier
}

func NewNumeracaoRepository(q Querier) *NumeracaoRepo {
	return &NumeracaoRepo{q: q}
}

// ProximoNumero devolve o próximo número da sequência. Se a configuração da
// empresa tiver um override manual para o ambiente, ele é consumido (limpo)
// e a sequência é realinhada para continuar a partir dele.
func (r *NumeracaoRepo) ProximoNumero(ctx context.Context, empresaID, serie, ambiente string) (int64, error) {
	override, err := r.consumirOverride(ctx, empresaID, ambiente)
	if err != nil {
		return 0, err
	}
	if override != nil {
		const q = `
			INSERT INTO nfe_numeracao (empresa_id, serie, ambiente, ultimo_numero)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (empresa_id, serie, ambiente)
			DO UPDATE SET ultimo_numero = EXCLUDED.ultimo_numero`
		if _, err := r.q.Exec(ctx, q, empresaID, serie, ambiente, *override); err != nil {
			return 0, fmt.Errorf("realinhar numeração: %w", err)
		}
		return *override, nil
	}

	const q = `
		INSERT INTO nfe_numeracao (empresa_id, serie, ambiente, ultimo_numero)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (empresa_id, serie, ambiente)
		DO UPDATE SET ultimo_numero = nfe_numeracao.ultimo_numero + 1
		RETURNING ultimo_numero`
	var numero int64
	if err := r.q.QueryRow(ctx, q, empresaID, serie, ambiente).Scan(&numero); err != nil {
		return 0, fmt.Errorf("incrementar numeração: %w", err)
	}
	return numero, nil
}

// consumirOverride lê (com lock) e limpa o override manual do ambiente, se
// houver. Devolve nil quando não há configuração ou override.
func (r *NumeracaoRepo) consumirOverride(ctx context.Context, empresaID, ambiente string) (*int64, error) {
	coluna := "proximo_numero_homologacao"
	if ambiente == entity.AmbienteProducao {
		coluna = "proximo_numero_producao"
	}

	q := `SELECT ` + coluna + ` FROM config_gateway WHERE empresa_id = $1 FOR UPDATE`
	var override *int64
	if err := r.q.QueryRow(ctx, q, empresaID).Scan(&override); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ler override de numeração: %w", err)
	}
	if override == nil {
		return nil, nil
	}

	q = `UPDATE config_gateway SET ` + coluna + ` = NULL, updated_at = now() WHERE empresa_id = $1`
	if _, err := r.q.Exec(ctx, q, empresaID); err != nil {
		return nil, fmt.Errorf("limpar override de numeração: %w", err)
	}
	return override, nil
}
