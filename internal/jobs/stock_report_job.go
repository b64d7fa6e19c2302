package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StockReportJob periodically reports products that have run out of stock.
// Runs every minute so operators can restock before orders pile up.
type StockReportJob struct {
	handler queries.GetOutOfStockProductsQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStockReportJob creates a new job for reporting out-of-stock products.
func NewStockReportJob(handler queries.GetOutOfStockProductsQueryHandler, logger *slog.Logger) *StockReportJob {
	return &StockReportJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "stock_report_job"),
	}
}

// Start begins the stock report job to run every minute.
func (j *StockReportJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		query := queries.NewGetOutOfStockProductsQuery()

		products, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stock report job failed", "error", err)
			return
		}

		if len(products) == 0 {
			return
		}

		for _, p := range products {
			j.logger.WarnContext(ctx, "Product is out of stock",
				"product_id", p.ID.String(),
				"inventory", p.Inventory,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stock report job started (running every minute)")
	return nil
}

// Stop stops the stock report job.
func (j *StockReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stock report job stopped")
}
