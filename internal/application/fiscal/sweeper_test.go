package fiscal

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-usuario/pdv-fiscal/internal/domain"
	"github.com/seu-usuario/pdv-fiscal/internal/domain/entity"
	"github.com/seu-usuario/pdv-fiscal/pkg/logger"
)

func TestSweeperVarrer(t *testing.T) {
	t.Run("reconcilia notas em processamento", func(t *testing.T) {
		a := novoAmbiente(t)
		nota := a.criarNota(t)
		a.forcarStatus(t, nota.ID, entity.StatusNfeProcessando, "lote recebido")
		a.gateway.consultarFn = func(context.Context, CredenciaisGateway, string) (*ResultadoConsulta, error) {
			return &ResultadoConsulta{Situacao: SituacaoAutorizada, Protocolo: "135240000008", ChaveAcesso: chaveTeste}, nil
		}

		s := NewSweeper(a.ctrl, a.nfeRepo, logger.Nop(), 0)
		s.varrer(context.Background())

		gravada := a.nfeRepo.persistida(t, nota.ID)
		assert.Equal(t, entity.StatusNfeAutorizada, gravada.Status)
		assert.Equal(t, chaveTeste, gravada.ChaveAcesso)
	})

	t.Run("gateway indisponível deixa tudo como está", func(t *testing.T) {
		a := novoAmbiente(t)
		nota := a.criarNota(t)
		a.forcarStatus(t, nota.ID, entity.StatusNfeProcessando, "lote recebido")
		a.gateway.consultarFn = func(context.Context, CredenciaisGateway, string) (*ResultadoConsulta, error) {
			return nil, fmt.Errorf("%w: timeout", domain.ErrTransporteFalhou)
		}

		s := NewSweeper(a.ctrl, a.nfeRepo, logger.Nop(), 0)
		s.varrer(context.Background())

		assert.Equal(t, entity.StatusNfeProcessando, a.nfeRepo.persistida(t, nota.ID).Status)
	})

	t.Run("nota com operação em andamento é pulada", func(t *testing.T) {
		a := novoAmbiente(t)
		nota := a.criarNota(t)
		a.forcarStatus(t, nota.ID, entity.StatusNfeProcessando, "lote recebido")

		require.True(t, a.ctrl.locks.tryAcquire(nota.ID))
		defer a.ctrl.locks.release(nota.ID)

		s := NewSweeper(a.ctrl, a.nfeRepo, logger.Nop(), 0)
		s.varrer(context.Background()) // não deve tocar o gateway nem travar

		assert.Equal(t, entity.StatusNfeProcessando, a.nfeRepo.persistida(t, nota.ID).Status)
	})
}
