package users

import (
	"context"
	"fmt"
	"net/http"

	"github.com/KeshavWanjale/usercrud/common/apiutil"
	"github.com/KeshavWanjale/usercrud/pkg/errors"
	"go.uber.org/zap"
)

const notFoundMessage = "User not found"

var (
	errMethodNotAllowed = errors.MethodNotAllowed.Explain("Method not allowed")
	errInternal         = errors.Internal.Explain("Internal server error")
)

// Request is one call against the users resource. ID is nil when the path
// carries no id.
type Request struct {
	Method string
	ID     *uint
	Body   []byte
}

// Response is the status and the JSON-encodable body to send back.
type Response struct {
	Status int
	Body   interface{}
}

// Handler dispatches requests on the users resource to the store.
type Handler struct {
	store  Store
	logger *zap.Logger
}

func NewHandler(store Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger.Named("users")}
}

// Handle serves GET (list or one), POST, PUT and DELETE. PUT and DELETE need
// an id; without one they are answered like any unsupported method.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	switch {
	case req.Method == http.MethodGet && req.ID == nil:
		return h.list(ctx)
	case req.Method == http.MethodGet:
		return h.get(ctx, *req.ID)
	case req.Method == http.MethodPost:
		return h.create(ctx, req.Body)
	case req.Method == http.MethodPut && req.ID != nil:
		return h.update(ctx, *req.ID, req.Body)
	case req.Method == http.MethodDelete && req.ID != nil:
		return h.delete(ctx, *req.ID)
	default:
		return h.fail(errMethodNotAllowed)
	}
}

func (h *Handler) list(ctx context.Context) Response {
	list, err := h.store.List(ctx)
	if err != nil {
		return h.fail(err)
	}
	return Response{Status: http.StatusOK, Body: toResponses(list)}
}

func (h *Handler) get(ctx context.Context, id uint) Response {
	user, err := h.store.User(ctx, id)
	if err != nil {
		return h.fail(err)
	}
	return Response{Status: http.StatusOK, Body: toResponse(*user)}
}

func (h *Handler) create(ctx context.Context, body []byte) Response {
	p, err := DecodePayload(body)
	if err != nil {
		return h.fail(err)
	}

	user, err := h.store.Create(ctx, CreateIn{Name: p.Name, Age: p.Age})
	if err != nil {
		return h.fail(err)
	}
	return Response{Status: http.StatusCreated, Body: toResponse(*user)}
}

// update looks the user up before reading the body, so an unknown id is a
// 404 whatever the payload.
func (h *Handler) update(ctx context.Context, id uint, body []byte) Response {
	if _, err := h.store.User(ctx, id); err != nil {
		return h.fail(err)
	}

	p, err := DecodePayload(body)
	if err != nil {
		return h.fail(err)
	}

	user, err := h.store.Update(ctx, id, UpdateIn{Name: p.Name, Age: p.Age})
	if err != nil {
		return h.fail(err)
	}
	return Response{Status: http.StatusOK, Body: toResponse(*user)}
}

func (h *Handler) delete(ctx context.Context, id uint) Response {
	if err := h.store.Delete(ctx, id); err != nil {
		return h.fail(err)
	}
	return Response{
		Status: http.StatusOK,
		Body:   MessageResponse{Message: fmt.Sprintf("User with id %d deleted successfully.", id)},
	}
}

// fail maps an error to its response. Not found, bad payloads and
// unsupported methods carry their own message; anything else is logged and
// hidden behind a generic 500.
func (h *Handler) fail(err error) Response {
	switch status := errors.StatusOf(err); status {
	case http.StatusNotFound:
		return errorResponse(status, notFoundMessage)
	case http.StatusBadRequest, http.StatusMethodNotAllowed:
		var e *errors.Error
		errors.As(err, &e)
		return errorResponse(status, e.Message)
	}

	h.logger.Error("user store failure", zap.Error(err))
	return errorResponse(errInternal.HTTPStatus(), errInternal.Message)
}

func errorResponse(status int, message string) Response {
	return Response{Status: status, Body: apiutil.ErrorResponse{Error: message}}
}
