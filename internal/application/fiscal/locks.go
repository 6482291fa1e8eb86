package fiscal

import "sync"

// idLocks serializa operações mutantes por id de nota. Aquisição é
// não-bloqueante: uma segunda chamada concorrente sobre o mesmo id é
// recusada (o chamador recebe ErrOperacaoEmAndamento), nunca enfileirada —
// duas respostas da SEFAZ em corrida não podem se intercalar sobre a mesma
// nota. Ids distintos seguem independentes.
type idLocks struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func newIDLocks() *idLocks {
	return &idLocks{held: make(map[string]struct{})}
}

// tryAcquire tenta tomar o lock do id; false se já está em uso.
func (l *idLocks) tryAcquire(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ocupado := l.held[id]; ocupado {
		return false
	}
	l.held[id] = struct{}{}
	return true
}

// release devolve o lock. Deve ser chamado via defer logo após a aquisição,
// para que nenhum caminho de saída (erro, timeout, panic recuperado) deixe
// o lock preso.
func (l *idLocks) release(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, id)
}
