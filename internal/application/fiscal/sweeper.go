package fiscal

import (
	"context"
	"errors"
	"time"

	"github.com/seu-usuario/pdv-fiscal/internal/domain"
	"github.com/seu-usuario/pdv-fiscal/internal/domain/entity"
	"github.com/seu-usuario/pdv-fiscal/internal/domain/repository"
	"github.com/seu-usuario/pdv-fiscal/pkg/logger"
)

// Sweeper é o varredor de reconciliação: periodicamente consulta na SEFAZ
// todas as notas PROCESSANDO, para que autorizações e cancelamentos tardios
// cheguem ao registro local sem ação do operador. Usa o mesmo lock por id
// do controller; uma nota em operação manual é simplesmente pulada nesta
// rodada.
type Sweeper struct {
	controller *Controller
	nfeRepo    repository.NfeRepository
	log        *logger.Logger
	intervalo  time.Duration
}

// NewSweeper constrói o varredor.
func NewSweeper(controller *Controller, nfeRepo repository.NfeRepository, log *logger.Logger, intervalo time.Duration) *Sweeper {
	if intervalo <= 0 {
		intervalo = 2 * time.Minute
	}
	return &Sweeper{controller: controller, nfeRepo: nfeRepo, log: log, intervalo: intervalo}
}

// Run varre até o contexto ser cancelado. Pensado para rodar numa goroutine
// própria a partir do main.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.intervalo)
	defer ticker.Stop()

	s.log.Info().Dur("intervalo", s.intervalo).Msg("varredor de reconciliação iniciado")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("varredor de reconciliação encerrado")
			return
		case <-ticker.C:
			s.varrer(ctx)
		}
	}
}

// varrer executa uma rodada de consultas.
func (s *Sweeper) varrer(ctx context.Context) {
	refs, err := s.nfeRepo.ListarRefsPorStatus(ctx, entity.StatusNfeProcessando)
	if err != nil {
		s.log.Error().Err(err).Msg("varredor: falha ao listar notas em processamento")
		return
	}
	for _, ref := range refs {
		if ctx.Err() != nil {
			return
		}
		situacao, err := s.controller.ConsultarNfeSefaz(ctx, ref.EmpresaID, ref.ID)
		switch {
		case err == nil:
			s.log.Debug().Str("nfe_id", ref.ID).Str("status", situacao.Status).Msg("varredor: nota reconciliada")
		case errors.Is(err, domain.ErrOperacaoEmAndamento):
			// Operação manual em curso sobre a mesma nota; fica para a próxima rodada.
		case errors.Is(err, domain.ErrTransporteFalhou):
			s.log.Warn().Err(err).Str("nfe_id", ref.ID).Msg("varredor: gateway indisponível")
		default:
			s.log.Error().Err(err).Str("nfe_id", ref.ID).Msg("varredor: falha ao consultar nota")
		}
	}
}
