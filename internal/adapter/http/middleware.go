package httpadapter

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const corsAllowMethods = "GET,POST,OPTIONS"
const corsAllowHeaders = "Content-Type,X-Session-ID"
const traceIDHeader = "X-Trace-ID"

func applyCORSHeaders(ctx *app.RequestContext) {
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.Response.Header.Set("Access-Control-Allow-Methods", corsAllowMethods)
	ctx.Response.Header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	ctx.Response.Header.Set("Access-Control-Expose-Headers", traceIDHeader)
	ctx.Response.Header.Set("Access-Control-Max-Age", "600")
}

func corsMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		applyCORSHeaders(ctx)
		if string(ctx.Method()) == consts.MethodOptions {
			ctx.AbortWithStatus(consts.StatusNoContent)
			return
		}
		ctx.Next(c)
	}
}

// tracingMiddleware opens a server span per request so use-case spans nest
// under it. The trace id is echoed when a real provider is installed.
func tracingMiddleware() app.HandlerFunc {
	tracer := otel.Tracer("vitalsim/http")
	return func(c context.Context, ctx *app.RequestContext) {
		c, span := tracer.Start(c, string(ctx.Method())+" "+string(ctx.Path()), trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()
		if sc := span.SpanContext(); sc.HasTraceID() {
			ctx.Response.Header.Set(traceIDHeader, sc.TraceID().String())
		}
		ctx.Next(c)
		span.SetAttributes(attribute.Int("http.status_code", ctx.Response.StatusCode()))
	}
}
