package tokenize

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrLang         = "duotone.lang"
	AttrTheme        = "duotone.theme"
	AttrBytes        = "duotone.bytes"
	AttrLines        = "duotone.lines"
	AttrGrammarState = "duotone.grammar_state"
)

type traced struct {
	ctx    context.Context
	next   Tokenizer
	tracer trace.Tracer
}

// NewTraced wraps next so every call records a span under ctx.
// A nil tracer returns next unchanged.
func NewTraced(ctx context.Context, next Tokenizer, tracer trace.Tracer) Tokenizer {
	if tracer == nil {
		return next
	}
	return &traced{ctx: ctx, next: next, tracer: tracer}
}

func (t *traced) Tokenize(code string, opts Options) (Document, error) {
	_, span := t.tracer.Start(t.ctx, "tokenize",
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	span.SetAttributes(
		attribute.String(AttrLang, opts.Lang),
		attribute.String(AttrTheme, opts.themeName()),
		attribute.Int(AttrBytes, len(code)),
	)
	if gs := opts.GrammarState; gs != nil {
		span.SetAttributes(attribute.String(AttrGrammarState, gs.ID().String()))
	}

	doc, err := t.next.Tokenize(code, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int(AttrLines, len(doc)))
	span.SetStatus(codes.Ok, "")
	return doc, nil
}
