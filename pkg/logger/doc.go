// Package logger builds *slog.Logger instances for the bookshelf client.
//
// It is a thin layer over the standard log/slog package that adds functional options for
// configuration, helper attribute constructors, and transparent injection of values stored in
// a context.Context. Every package of the client logs through loggers built here so records
// share one format and one set of attribute keys.
//
// The single factory, New, accepts Option functions that:
//
//   - select the output format (JSON or text)
//   - set the minimum level
//   - attach static attributes to every record
//   - register ContextExtractor callbacks that pull attributes out of the context each time a
//     record is handled, for example the request id of an outgoing API call.
//
// # Architecture
//
// New first picks the concrete handler, slog.NewTextHandler or slog.NewJSONHandler, based on
// the configured Format, and applies static attributes to it. It then wraps the handler in
// LogHandlerDecorator, which runs every registered ContextExtractor before delegating to the
// underlying handler. Extraction happens per record, so request-scoped values are never stale
// even when a logger is derived once and reused across calls.
//
// Helper constructors in attr.go (Error, RequestID, UserID, Endpoint, Method, StatusCode,
// Duration, Component) return commonly used slog.Attr values and keep attribute keys
// consistent across packages.
//
// # Usage
//
//	import "github.com/jeanmarcjones/bookshelf/pkg/logger"
//
//	func main() {
//	    log := logger.New(
//	        logger.WithEnvironment("production", "bookshelf"),
//	        logger.WithRequestID(),
//	    )
//	    logger.SetAsDefault(log)
//
//	    ctx, _ := requestid.Ensure(context.Background())
//	    log.InfoContext(ctx, "request finished",
//	        logger.Endpoint("books"),
//	        logger.StatusCode(200),
//	        logger.Duration(time.Since(start)),
//	    )
//	}
//
// Components usually derive a child logger so their records can be filtered:
//
//	client := apiclient.New(baseURL, apiclient.WithLogger(log.With(logger.Component("apiclient"))))
//
// Libraries that accept a logger default to Discard, so nothing is written unless the caller
// opts in.
//
// # Configuration
//
// The behaviour of New can be tuned with these options:
//
//   - WithEnvironment sets defaults per environment: text and debug for development, JSON and
//     info for staging and production. It also tags records with service and env.
//   - WithFormat, WithTextFormatter and WithJSONFormatter override the output format.
//     WithFormat panics on an unknown format so misconfiguration fails at startup.
//   - WithLevel sets the minimum level; ParseLevel turns configuration strings into levels.
//   - WithOutput redirects records, for example to a command's stderr.
//   - WithAttr attaches static attributes.
//   - WithContextExtractors and WithRequestID inject attributes from the context.
//
// Options apply in order, so an explicit WithLevel after WithEnvironment wins.
//
// # Error Handling
//
// Error produces an attribute only for a non-nil error, allowing calls like
//
//	log.Info("operation finished", logger.Error(err))
//
// without an additional nil check. ParseLevel returns ErrInvalidLevel for unknown level names.
package logger
