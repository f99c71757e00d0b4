package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// Responder writes Problem Details responses for the checkout API. Type
// URIs stay relative ("/problems/out-of-stock") unless a BaseURI is set.
type Responder struct {
	BaseURI string
}

func NewResponder(baseURI string) *Responder {
	return &Responder{BaseURI: baseURI}
}

// DefaultResponder keeps problem type URIs relative.
var DefaultResponder = NewResponder("")

// Respond writes the problem with the problem+json content type. Instance
// defaults to the request path so a client can tell which transaction or
// product lookup produced the problem.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError writes err as a problem. Errors that are not already a
// ProblemDetail become a 500: anything the transport layer can classify
// better must be mapped before reaching this fallback.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	r.Respond(c, ErrInternal.WithDetail(err.Error()))
}

// Respond writes a problem through the default responder.
func Respond(c *gin.Context, problem ProblemDetail) {
	DefaultResponder.Respond(c, problem)
}

// ErrorMapper translates a service error into a ProblemDetail. It reports
// false when the error is not one it recognizes.
type ErrorMapper func(err error) (ProblemDetail, bool)

// ChainedResponder runs service errors through a mapper chain before the
// default handling. The transport layer registers one mapper per bounded
// context so checkout, catalog, and delivery errors each keep their own
// problem vocabulary.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

func NewChainedResponder(baseURI string, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{
		Responder: NewResponder(baseURI),
		mappers:   mappers,
	}
}

// RespondError tries each mapper in registration order and falls back to
// the embedded responder when none claims the error.
func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	r.Responder.RespondError(c, err)
}
