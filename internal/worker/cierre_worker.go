package worker

// cierre_worker.go
// Processes daily-close mailing jobs from QueueCierre: builds the cierre for
// the requested day, renders the A4 report PDF and mails it.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alejoalf/Sistema-bar/internal/dto"
	"github.com/alejoalf/Sistema-bar/internal/infra"

	"github.com/rs/zerolog/log"
)

// CierreJobPayload is the job envelope sent to QueueCierre.
type CierreJobPayload struct {
	Email string `json:"email"`
	Fecha string `json:"fecha"` // YYYY-MM-DD
}

// CierreBuilder produces the daily-close aggregate for one calendar day.
// Implemented by the reporting service.
type CierreBuilder interface {
	CierreDelDia(ctx context.Context, fecha string) (*dto.CierreDia, error)
}

type CierreWorker struct {
	builder     CierreBuilder
	mailer      *infra.Mailer
	nombreLocal string
	storagePath string
}

func NewCierreWorker(builder CierreBuilder, mailer *infra.Mailer, nombreLocal, storagePath string) *CierreWorker {
	return &CierreWorker{builder: builder, mailer: mailer, nombreLocal: nombreLocal, storagePath: storagePath}
}

// Process builds, renders and mails the cierre for one day.
func (w *CierreWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload CierreJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("cierre_worker: invalid payload: %w", err)
	}
	if payload.Email == "" {
		log.Warn().Msg("cierre_worker: empty email — skipping")
		return nil
	}

	cierre, err := w.builder.CierreDelDia(ctx, payload.Fecha)
	if err != nil {
		return fmt.Errorf("cierre_worker: build cierre %s: %w", payload.Fecha, err)
	}

	path, err := infra.GenerateCierrePDF(cierre, w.nombreLocal, w.storagePath)
	if err != nil {
		return fmt.Errorf("cierre_worker: render: %w", err)
	}

	// Kept ASCII: not every SMTP relay applies RFC 2047 encoding to the header.
	subject := fmt.Sprintf("%s - Cierre de caja %s", w.nombreLocal, payload.Fecha)
	body := fmt.Sprintf(
		"Cierre del día %s\n\nTotal recaudado: $%s\nExtracciones: $%s\nNeto: $%s\nPedidos cobrados: %d\n\nSe adjunta el reporte en PDF.",
		payload.Fecha,
		cierre.TotalRecaudado.StringFixed(2),
		cierre.TotalExtraido.StringFixed(2),
		cierre.Neto.StringFixed(2),
		cierre.CantidadPedidos,
	)
	if err := w.mailer.SendCierre(payload.Email, subject, body, path); err != nil {
		return fmt.Errorf("cierre_worker: send: %w", err)
	}

	log.Info().Str("to", payload.Email).Str("fecha", payload.Fecha).Msg("cierre_worker: cierre sent")
	return nil
}
