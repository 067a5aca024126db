// Package logger builds configured slog.Logger instances with optional
// context attribute injection.
//
//	log := logger.New(
//	    logger.WithProduction("entitlement"),
//	    logger.WithContextExtractors(entitlement.TierLogAttr()),
//	)
package logger
