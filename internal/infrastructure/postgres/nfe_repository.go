package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seu-usuario/pdv-fiscal/internal/domain/entity"
	"github.com/seu-usuario/pdv-fiscal/internal/domain/repository"
)

var _ repository.NfeRepository = (*NfeRepo)(nil)

// NfeRepo implementação de NfeRepository (usável com pool ou tx).
// Todas as leituras excluem notas DELETADA.
type NfeRepo struct {
	q Querier
}

// NewNfeRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewNfeRepository(q Querier) *NfeRepo {
	return &NfeRepo{q: q}
}

const colunasNfe = `
	id, empresa_id, numero, serie, ambiente, status, cliente_id, cnpj_cpf,
	valor_total, chave_acesso, protocolo, protocolo_cancelamento,
	data_cancelamento, motivo_status, natureza_operacao, observacoes,
	data_emissao, data_autorizacao, created_at, updated_at`

// Criar persiste cabeçalho e itens. A constraint única
// (empresa_id, serie, ambiente, numero) protege contra reuso de número.
func (r *NfeRepo) Criar(ctx context.Context, nota *entity.Nfe) error {
	const q = `
		INSERT INTO nfe (id, empresa_id, numero, serie, ambiente, status, cliente_id, cnpj_cpf,
		                 valor_total, chave_acesso, protocolo, protocolo_cancelamento,
		                 data_cancelamento, motivo_status, natureza_operacao, observacoes,
		                 data_emissao, data_autorizacao, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, q,
		nota.ID, nota.EmpresaID, nota.Numero, nota.Serie, nota.Ambiente, nota.Status,
		nullIfEmpty(nota.ClienteID), nullIfEmpty(nota.CnpjCpf),
		nota.ValorTotal, nullIfEmpty(nota.ChaveAcesso), nullIfEmpty(nota.Protocolo),
		nullIfEmpty(nota.ProtocoloCancelamento), nota.DataCancelamento,
		nullIfEmpty(nota.MotivoStatus), nullIfEmpty(nota.NaturezaOperacao), nullIfEmpty(nota.Observacoes),
		nota.DataEmissao, nota.DataAutorizacao, nota.CreatedAt, nota.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número %d já usado para (empresa, série, ambiente): %w", nota.Numero, err)
		}
		return fmt.Errorf("insert nfe: %w", err)
	}

	const qItem = `
		INSERT INTO nfe_itens (id, nfe_id, produto_id, quantidade, preco_unitario, preco_total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, item := range nota.Itens {
		if _, err := r.q.Exec(ctx, qItem,
			item.ID, item.NfeID, item.ProdutoID, item.Quantidade, item.PrecoUnitario, item.PrecoTotal,
		); err != nil {
			return fmt.Errorf("insert item da nfe: %w", err)
		}
	}
	return nil
}

// Atualizar grava status e campos de auditoria num único UPDATE. Itens são
// imutáveis após a criação e não entram aqui.
func (r *NfeRepo) Atualizar(ctx context.Context, nota *entity.Nfe) error {
	const q = `
		UPDATE nfe
		SET status                 = $2,
		    chave_acesso           = COALESCE($3, chave_acesso),
		    protocolo              = COALESCE($4, protocolo),
		    protocolo_cancelamento = COALESCE($5, protocolo_cancelamento),
		    data_cancelamento      = COALESCE($6, data_cancelamento),
		    motivo_status          = $7,
		    data_autorizacao       = COALESCE($8, data_autorizacao),
		    updated_at             = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, q,
		nota.ID, nota.Status,
		nullIfEmpty(nota.ChaveAcesso), nullIfEmpty(nota.Protocolo),
		nullIfEmpty(nota.ProtocoloCancelamento), nota.DataCancelamento,
		nota.MotivoStatus, nota.DataAutorizacao, nota.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update nfe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update nfe %s: nenhuma linha afetada", nota.ID)
	}
	return nil
}

// BuscarPorID devolve a nota com itens, ou nil se inexistente/deletada.
func (r *NfeRepo) BuscarPorID(ctx context.Context, id string) (*entity.Nfe, error) {
	q := `SELECT ` + colunasNfe + ` FROM nfe WHERE id = $1 AND status <> $2`
	nota, err := scanNfe(r.q.QueryRow(ctx, q, id, entity.StatusNfeDeletada))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get nfe: %w", err)
	}

	const qItens = `
		SELECT id, nfe_id, produto_id, quantidade, preco_unitario, preco_total
		FROM nfe_itens WHERE nfe_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, qItens, id)
	if err != nil {
		return nil, fmt.Errorf("list itens da nfe: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.ItemNfe
		if err := rows.Scan(&item.ID, &item.NfeID, &item.ProdutoID, &item.Quantidade, &item.PrecoUnitario, &item.PrecoTotal); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		nota.Itens = append(nota.Itens, &item)
	}
	return nota, rows.Err()
}

// Listar pagina por empresa, com filtro opcional de status.
func (r *NfeRepo) Listar(ctx context.Context, empresaID, status string, limit, offset int) ([]*entity.Nfe, error) {
	q := `SELECT ` + colunasNfe + `
		FROM nfe
		WHERE empresa_id = $1 AND status <> $2`
	args := []any{empresaID, entity.StatusNfeDeletada}
	if status != "" {
		q += ` AND status = $3 ORDER BY numero DESC LIMIT $4 OFFSET $5`
		args = append(args, status, limit, offset)
	} else {
		q += ` ORDER BY numero DESC LIMIT $3 OFFSET $4`
		args = append(args, limit, offset)
	}

	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list nfe: %w", err)
	}
	defer rows.Close()

	var lista []*entity.Nfe
	for rows.Next() {
		nota, err := scanNfe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan nfe: %w", err)
		}
		lista = append(lista, nota)
	}
	return lista, rows.Err()
}

// ListarRefsPorStatus devolve id + empresa de todas as notas no status dado
// (consulta leve para o varredor de reconciliação).
func (r *NfeRepo) ListarRefsPorStatus(ctx context.Context, status string) ([]entity.RefNfe, error) {
	const q = `SELECT id, empresa_id FROM nfe WHERE status = $1 ORDER BY updated_at`
	rows, err := r.q.Query(ctx, q, status)
	if err != nil {
		return nil, fmt.Errorf("list refs por status: %w", err)
	}
	defer rows.Close()

	var refs []entity.RefNfe
	for rows.Next() {
		var ref entity.RefNfe
		if err := rows.Scan(&ref.ID, &ref.EmpresaID); err != nil {
			return nil, fmt.Errorf("scan ref: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// scanNfe lê uma linha da tabela nfe (ordem de colunasNfe).
func scanNfe(row pgx.Row) (*entity.Nfe, error) {
	var nota entity.Nfe
	var clienteID, cnpjCpf, chave, protocolo, protocoloCanc, motivo, natureza, obs *string
	err := row.Scan(
		&nota.ID, &nota.EmpresaID, &nota.Numero, &nota.Serie, &nota.Ambiente, &nota.Status,
		&clienteID, &cnpjCpf, &nota.ValorTotal, &chave, &protocolo, &protocoloCanc,
		&nota.DataCancelamento, &motivo, &natureza, &obs,
		&nota.DataEmissao, &nota.DataAutorizacao, &nota.CreatedAt, &nota.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	nota.ClienteID = derefStr(clienteID)
	nota.CnpjCpf = derefStr(cnpjCpf)
	nota.ChaveAcesso = derefStr(chave)
	nota.Protocolo = derefStr(protocolo)
	nota.ProtocoloCancelamento = derefStr(protocoloCanc)
	nota.MotivoStatus = derefStr(motivo)
	nota.NaturezaOperacao = derefStr(natureza)
	nota.Observacoes = derefStr(obs)
	return &nota, nil
}
