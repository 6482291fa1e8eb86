package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seu-usuario/pdv-fiscal/internal/application/fiscal"
	"github.com/seu-usuario/pdv-fiscal/internal/domain/repository"
)

var _ fiscal.EmissaoTxRunner = (*TxRunner)(nil)

// TxRunner executa a emissão numa transação única: numeração e insert da
// nota comitam juntos ou não comitam. Um rollback devolve o número por não
// ter consumido a sequência de forma visível.
type TxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunEmissao abre a transação, liga os repositórios a ela e chama fn.
// Commit só se fn devolver nil.
func (r *TxRunner) RunEmissao(ctx context.Context, fn func(
	nfeRepo repository.NfeRepository,
	numeracao repository.NumeracaoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transação de emissão: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewNfeRepository(tx), NewNumeracaoRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit da emissão: %w", err)
	}
	return nil
}
