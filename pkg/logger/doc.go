// Package logger provides a slog factory with environment presets and
// typed attribute helpers shared across the application.
//
// The factory returns plain *slog.Logger values so packages depend only
// on the standard library interface:
//
//	log := logger.New(logger.WithProduction("schoolkit"))
//	log.LogAttrs(ctx, slog.LevelInfo, "invoice issued",
//	    logger.InvoiceID(inv.ID),
//	    logger.UserID(inv.StudentID),
//	)
package logger
