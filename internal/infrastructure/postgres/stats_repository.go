package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/seu-usuario/pdv-fiscal/internal/domain/entity"
	"github.com/seu-usuario/pdv-fiscal/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo projeta estatísticas direto do repositório: contagem por status
// e soma de valor das autorizadas. Nada é mantido em contadores separados,
// então a projeção nunca desalinha do estado real.
type StatsRepo struct {
	q Querier
}

func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// EstatisticasPorEmpresa conta notas por status (exceto deletadas) e soma o
// valor total das autorizadas.
func (r *StatsRepo) EstatisticasPorEmpresa(ctx context.Context, empresaID string) (*entity.NfeStats, error) {
	const q = `
		SELECT status, COUNT(*), COALESCE(SUM(valor_total) FILTER (WHERE status = $2), 0)
		FROM nfe
		WHERE empresa_id = $1 AND status <> $3
		GROUP BY status`
	rows, err := r.q.Query(ctx, q, empresaID, entity.StatusNfeAutorizada, entity.StatusNfeDeletada)
	if err != nil {
		return nil, fmt.Errorf("estatísticas nfe: %w", err)
	}
	defer rows.Close()

	stats := &entity.NfeStats{
		PorStatus:       make(map[string]int64),
		TotalAutorizado: decimal.Zero,
	}
	for rows.Next() {
		var status string
		var total int64
		var soma decimal.Decimal
		if err := rows.Scan(&status, &total, &soma); err != nil {
			return nil, fmt.Errorf("scan estatística: %w", err)
		}
		stats.PorStatus[status] = total
		if status == entity.StatusNfeAutorizada {
			stats.TotalAutorizado = soma
		}
	}
	return stats, rows.Err()
}
