package domain

import "errors"

// Erros de domínio (sem dependências externas).
// A camada HTTP mapeia cada sentinela para um status/código próprio.
var (
	ErrNaoEncontrado       = errors.New("recurso não encontrado")
	ErrValidacaoFalhou     = errors.New("validação falhou")
	ErrPrecondicaoInvalida = errors.New("operação inválida para o status atual da nota")
	ErrTransporteFalhou    = errors.New("falha de transporte com o gateway fiscal")
	ErrOperacaoEmAndamento = errors.New("outra operação em andamento para esta nota")
	ErrConfigIncompleta    = errors.New("configuração do gateway fiscal incompleta")
)
