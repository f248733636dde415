package worker

// comanda_worker.go
// Processes kitchen-ticket jobs from QueueComanda: loads the pedido and
// renders a thermal-sized comanda PDF into the configured storage path.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alejoalf/Sistema-bar/internal/infra"
	"github.com/alejoalf/Sistema-bar/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ComandaJobPayload is the job envelope sent to QueueComanda.
type ComandaJobPayload struct {
	PedidoID string `json:"pedido_id"`
}

type ComandaWorker struct {
	pedidoRepo  repository.PedidoRepository
	nombreLocal string
	storagePath string
}

func NewComandaWorker(pedidoRepo repository.PedidoRepository, nombreLocal, storagePath string) *ComandaWorker {
	return &ComandaWorker{pedidoRepo: pedidoRepo, nombreLocal: nombreLocal, storagePath: storagePath}
}

// Process renders the comanda PDF for one pedido.
func (w *ComandaWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ComandaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("comanda_worker: invalid payload: %w", err)
	}
	id, err := uuid.Parse(payload.PedidoID)
	if err != nil {
		return fmt.Errorf("comanda_worker: invalid pedido_id: %w", err)
	}

	pedido, err := w.pedidoRepo.FindByID(ctx, id)
	if err != nil {
		// Pedido may have been emptied out and deleted before the job ran;
		// nothing to print in that case.
		log.Warn().Str("pedido_id", payload.PedidoID).Msg("comanda_worker: pedido no longer exists")
		return nil
	}

	path, err := infra.GenerateComandaPDF(pedido, w.nombreLocal, w.storagePath)
	if err != nil {
		return fmt.Errorf("comanda_worker: render: %w", err)
	}
	log.Info().Str("pedido_id", payload.PedidoID).Str("path", path).Msg("comanda_worker: comanda generated")
	return nil
}
