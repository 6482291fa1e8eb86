package sefaz

import (
	"context"
	"errors"
	"time"

	"github.com/seu-usuario/pdv-fiscal/internal/application/fiscal"
	"github.com/seu-usuario/pdv-fiscal/internal/domain"
)

var _ fiscal.GatewayClient = (*RetryClient)(nil)

// RetryClient decora um GatewayClient com retentativas limitadas em falha
// de transporte. Transmitir e Consultar são seguros de repetir: sem recibo
// da autoridade, não houve efeito do outro lado. Cancelar NUNCA é repetido
// automaticamente — a janela externa de cancelamento é estreita e a decisão
// de insistir é do operador.
type RetryClient struct {
	inner      fiscal.GatewayClient
	tentativas int           // retentativas além da chamada original
	espera     time.Duration // espera entre tentativas
}

// NewRetryClient constrói o decorador.
func NewRetryClient(inner fiscal.GatewayClient, tentativas int, espera time.Duration) *RetryClient {
	if tentativas < 0 {
		tentativas = 0
	}
	if espera <= 0 {
		espera = 500 * time.Millisecond
	}
	return &RetryClient{inner: inner, tentativas: tentativas, espera: espera}
}

// Transmitir repassa com retentativas em falha de transporte.
func (r *RetryClient) Transmitir(ctx context.Context, cred fiscal.CredenciaisGateway, dados fiscal.DadosTransmissao) (*fiscal.ResultadoTransmissao, error) {
	var res *fiscal.ResultadoTransmissao
	err := r.comRetentativas(ctx, func() error {
		var e error
		res, e = r.inner.Transmitir(ctx, cred, dados)
		return e
	})
	return res, err
}

// Consultar repassa com retentativas em falha de transporte.
func (r *RetryClient) Consultar(ctx context.Context, cred fiscal.CredenciaisGateway, referencia string) (*fiscal.ResultadoConsulta, error) {
	var res *fiscal.ResultadoConsulta
	err := r.comRetentativas(ctx, func() error {
		var e error
		res, e = r.inner.Consultar(ctx, cred, referencia)
		return e
	})
	return res, err
}

// Cancelar é chamada única, sem retentativa.
func (r *RetryClient) Cancelar(ctx context.Context, cred fiscal.CredenciaisGateway, referencia, justificativa string) (*fiscal.ResultadoCancelamento, error) {
	return r.inner.Cancelar(ctx, cred, referencia, justificativa)
}

func (r *RetryClient) comRetentativas(ctx context.Context, chamada func() error) error {
	err := chamada()
	for i := 0; i < r.tentativas; i++ {
		if err == nil || !errors.Is(err, domain.ErrTransporteFalhou) {
			return err
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(r.espera):
		}
		err = chamada()
	}
	return err
}
