package sefaz

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-usuario/pdv-fiscal/internal/application/fiscal"
	"github.com/seu-usuario/pdv-fiscal/internal/domain"
)

type contadorGateway struct {
	transmitir int
	consultar  int
	cancelar   int
	falhas     int // chamadas que falham com transporte antes de suceder
}

func (g *contadorGateway) Transmitir(context.Context, fiscal.CredenciaisGateway, fiscal.DadosTransmissao) (*fiscal.ResultadoTransmissao, error) {
	g.transmitir++
	if g.transmitir <= g.falhas {
		return nil, fmt.Errorf("%w: connection reset", domain.ErrTransporteFalhou)
	}
	return &fiscal.ResultadoTransmissao{Situacao: fiscal.SituacaoAutorizada}, nil
}

func (g *contadorGateway) Consultar(context.Context, fiscal.CredenciaisGateway, string) (*fiscal.ResultadoConsulta, error) {
	g.consultar++
	return nil, errors.New("rejeição qualquer, não transporte")
}

func (g *contadorGateway) Cancelar(context.Context, fiscal.CredenciaisGateway, string, string) (*fiscal.ResultadoCancelamento, error) {
	g.cancelar++
	return nil, fmt.Errorf("%w: timeout", domain.ErrTransporteFalhou)
}

func TestRetryClient(t *testing.T) {
	t.Run("retenta transmitir em falha de transporte", func(t *testing.T) {
		inner := &contadorGateway{falhas: 2}
		rc := NewRetryClient(inner, 2, time.Millisecond)

		res, err := rc.Transmitir(context.Background(), fiscal.CredenciaisGateway{}, fiscal.DadosTransmissao{})
		require.NoError(t, err)
		assert.Equal(t, fiscal.SituacaoAutorizada, res.Situacao)
		assert.Equal(t, 3, inner.transmitir, "original + 2 retentativas")
	})

	t.Run("esgota as tentativas e propaga o erro", func(t *testing.T) {
		inner := &contadorGateway{falhas: 10}
		rc := NewRetryClient(inner, 2, time.Millisecond)

		_, err := rc.Transmitir(context.Background(), fiscal.CredenciaisGateway{}, fiscal.DadosTransmissao{})
		assert.ErrorIs(t, err, domain.ErrTransporteFalhou)
		assert.Equal(t, 3, inner.transmitir)
	})

	t.Run("não retenta erro que não é de transporte", func(t *testing.T) {
		inner := &contadorGateway{}
		rc := NewRetryClient(inner, 3, time.Millisecond)

		_, err := rc.Consultar(context.Background(), fiscal.CredenciaisGateway{}, "ref")
		assert.Error(t, err)
		assert.Equal(t, 1, inner.consultar)
	})

	t.Run("cancelar nunca é retentado", func(t *testing.T) {
		inner := &contadorGateway{}
		rc := NewRetryClient(inner, 3, time.Millisecond)

		_, err := rc.Cancelar(context.Background(), fiscal.CredenciaisGateway{}, "ref", "justificativa valida")
		assert.ErrorIs(t, err, domain.ErrTransporteFalhou)
		assert.Equal(t, 1, inner.cancelar)
	})

	t.Run("contexto cancelado interrompe a espera", func(t *testing.T) {
		inner := &contadorGateway{falhas: 10}
		rc := NewRetryClient(inner, 5, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := rc.Transmitir(ctx, fiscal.CredenciaisGateway{}, fiscal.DadosTransmissao{})
		assert.ErrorIs(t, err, domain.ErrTransporteFalhou)
		assert.Equal(t, 1, inner.transmitir, "não espera com contexto cancelado")
	})
}
