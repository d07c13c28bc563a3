package rpc

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mcdev12/grouporder/go/internal/apperrors"
)

const tracerName = "github.com/mcdev12/grouporder/go/internal/rpc"

// TracingInterceptor runs every unary call in a span named by its procedure.
func TracingInterceptor() connect.UnaryInterceptorFunc {
	tracer := otel.Tracer(tracerName)
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			ctx, span := tracer.Start(ctx, req.Spec().Procedure, trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			res, err := next(ctx, req)
			if err != nil {
				code := ToConnectError(err).Meta().Get(ErrorCodeHeader)
				span.SetAttributes(attribute.String("grouporder.error_code", code))
				span.SetStatus(codes.Error, err.Error())
			}
			return res, err
		}
	}
}

// LoggingInterceptor logs each unary call with its outcome and latency.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			res, err := next(ctx, req)

			evt := log.Debug()
			if err != nil {
				code := apperrors.GetCode(err)
				evt = log.Info().Str("error_code", string(code))
				if code == apperrors.CodeDatabaseError || code == apperrors.CodeServerError {
					evt = log.Error().Err(err).Str("error_code", string(code))
				}
			}
			evt.Str("procedure", req.Spec().Procedure).
				Dur("duration", time.Since(start)).
				Msg("rpc")
			return res, err
		}
	}
}

// ErrorInterceptor converts domain errors returned by handlers into Connect errors.
func ErrorInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			res, err := next(ctx, req)
			if err != nil {
				return nil, ToConnectError(err)
			}
			return res, nil
		}
	}
}

func recoverPanic(_ context.Context, spec connect.Spec, _ http.Header, p any) error {
	log.Error().Str("procedure", spec.Procedure).Interface("panic", p).Msg("recovered panic in handler")
	return ToConnectError(apperrors.New(apperrors.CodeDatabaseError, fmt.Sprint(p)))
}

// HandlerOptions returns the options every service handler is built with.
func HandlerOptions() []connect.HandlerOption {
	return []connect.HandlerOption{
		connect.WithCodec(Codec()),
		connect.WithRecover(recoverPanic),
		connect.WithInterceptors(TracingInterceptor(), ErrorInterceptor(), LoggingInterceptor()),
	}
}

// ClientOptions returns the options for calling services over JSON.
func ClientOptions() []connect.ClientOption {
	return []connect.ClientOption{
		connect.WithCodec(Codec()),
	}
}
