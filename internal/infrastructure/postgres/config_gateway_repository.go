package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/seu-usuario/pdv-fiscal/internal/domain/entity"
	"github.com/seu-usuario/pdv-fiscal/internal/domain/repository"
)

var _ repository.ConfigGatewayRepository = (*ConfigGatewayRepo)(nil)

// ConfigGatewayRepo persistência da configuração do gateway (linha única
// por empresa).
type ConfigGatewayRepo struct {
	q Querier
}

func NewConfigGatewayRepository(q Querier) *ConfigGatewayRepo {
	return &ConfigGatewayRepo{q: q}
}

// Buscar devolve a configuração da empresa, ou nil se nunca configurada.
func (r *ConfigGatewayRepo) Buscar(ctx context.Context, empresaID string) (*entity.ConfigGateway, error) {
	const q = `
		SELECT empresa_id, ambiente_ativo, token_homologacao, token_producao,
		       cnpj_emitente, serie_padrao, natureza_operacao,
		       proximo_numero_homologacao, proximo_numero_producao,
		       created_at, updated_at
		FROM config_gateway
		WHERE empresa_id = $1`
	var cfg entity.ConfigGateway
	var tokenHom, tokenProd, cnpj, serie, natureza *string
	err := r.q.QueryRow(ctx, q, empresaID).Scan(
		&cfg.EmpresaID, &cfg.AmbienteAtivo, &tokenHom, &tokenProd,
		&cnpj, &serie, &natureza,
		&cfg.ProximoNumeroHomologacao, &cfg.ProximoNumeroProducao,
		&cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get config gateway: %w", err)
	}
	cfg.TokenHomologacao = derefStr(tokenHom)
	cfg.TokenProducao = derefStr(tokenProd)
	cfg.CnpjEmitente = derefStr(cnpj)
	cfg.SeriePadrao = derefStr(serie)
	cfg.NaturezaOperacao = derefStr(natureza)
	return &cfg, nil
}

// Salvar faz upsert da configuração completa da empresa.
func (r *ConfigGatewayRepo) Salvar(ctx context.Context, cfg *entity.ConfigGateway) error {
	const q = `
		INSERT INTO config_gateway (empresa_id, ambiente_ativo, token_homologacao, token_producao,
		                            cnpj_emitente, serie_padrao, natureza_operacao,
		                            proximo_numero_homologacao, proximo_numero_producao,
		                            created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		ON CONFLICT (empresa_id) DO UPDATE SET
			ambiente_ativo             = EXCLUDED.ambiente_ativo,
			token_homologacao          = EXCLUDED.token_homologacao,
			token_producao             = EXCLUDED.token_producao,
			cnpj_emitente              = EXCLUDED.cnpj_emitente,
			serie_padrao               = EXCLUDED.serie_padrao,
			natureza_operacao          = EXCLUDED.natureza_operacao,
			proximo_numero_homologacao = EXCLUDED.proximo_numero_homologacao,
			proximo_numero_producao    = EXCLUDED.proximo_numero_producao,
			updated_at                 = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, q,
		cfg.EmpresaID, cfg.AmbienteAtivo,
		nullIfEmpty(cfg.TokenHomologacao), nullIfEmpty(cfg.TokenProducao),
		nullIfEmpty(cfg.CnpjEmitente), nullIfEmpty(cfg.SeriePadrao), nullIfEmpty(cfg.NaturezaOperacao),
		cfg.ProximoNumeroHomologacao, cfg.ProximoNumeroProducao,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert config gateway: %w", err)
	}
	return nil
}
