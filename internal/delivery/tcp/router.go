package tcp

import (
	"context"
	"encoding/json"
	"fmt"

	"go-hospital-server/pkg/response"

	"github.com/sirupsen/logrus"
)

// HandlerFunc executes one action against its raw JSON payload and
// returns the response envelope. Handlers never return nil.
type HandlerFunc func(ctx context.Context, payload []byte) *response.Response

// Router maps action names to handlers. The table is closed at startup;
// registration of a duplicate action is a wiring bug and fails fast.
type Router struct {
	log      *logrus.Logger
	handlers map[string]HandlerFunc
}

func NewRouter(log *logrus.Logger) *Router {
	return &Router{
		log:      log,
		handlers: make(map[string]HandlerFunc),
	}
}

func (r *Router) Register(action string, handler HandlerFunc) error {
	if action == "" {
		return fmt.Errorf("cannot register empty action name")
	}
	if _, exists := r.handlers[action]; exists {
		return fmt.Errorf("action %q registered twice", action)
	}
	r.handlers[action] = handler
	return nil
}

// Actions returns the registered action names, for startup logging.
func (r *Router) Actions() int {
	return len(r.handlers)
}

// requestMeta is the part of every request the router itself needs.
type requestMeta struct {
	Action string `json:"action"`
	UUID   string `json:"uuid"`
}

// Dispatch decodes the request payload, resolves the action and runs
// its handler. Every failure here is request-scoped: the caller always
// gets an envelope to write back and the connection stays usable.
func (r *Router) Dispatch(ctx context.Context, payload []byte) *response.Response {
	var meta requestMeta
	if err := json.Unmarshal(payload, &meta); err != nil {
		r.log.Warnf("Malformed request JSON: %+v", err)
		return response.Failure("invalid JSON payload")
	}

	handler, ok := r.handlers[meta.Action]
	if !ok {
		r.log.Warnf("Unknown action: %q", meta.Action)
		return r.finalize(response.Failure("unknown action"), meta)
	}

	resp := r.invoke(ctx, handler, meta.Action, payload)
	return r.finalize(resp, meta)
}

// invoke runs the handler with panic containment, so one broken
// handler cannot take down the connection loop.
func (r *Router) invoke(ctx context.Context, handler HandlerFunc, action string, payload []byte) (resp *response.Response) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Errorf("Handler panic for action %q: %+v", action, rec)
			resp = response.Failure("internal server error")
		}
	}()
	return handler(ctx, payload)
}

func (r *Router) finalize(resp *response.Response, meta requestMeta) *response.Response {
	if resp == nil {
		resp = response.Failure("internal server error")
	}
	if resp.Type == "" && meta.Action != "" {
		resp.Type = meta.Action + "_response"
	}
	if meta.UUID != "" {
		resp.RequestUUID = meta.UUID
	}
	return resp
}
