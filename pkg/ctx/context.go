// Package ctx gives handlers a single *Context instead of the
// (http.ResponseWriter, *http.Request) pair:
//
//	func (c *MenuController) Show(cx *ctx.Context) {
//	    menu, ok, err := c.menus.GetMenuByID(cx.Context(), cx.Param("id"))
//	    ...
//	    cx.Success(menu)
//	}
//
//	router.Get("/menus/{id}", "menus.show", ctx.Wrap(c.Show))
package ctx

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/qrmenu/pkg/bind"
	"github.com/shashiranjanraj/qrmenu/pkg/response"
)

type HandlerFunc func(c *Context)

// Wrap adapts h to net/http.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(&Context{W: w, R: r})
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int
}

// Param returns a chi URL parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

func (c *Context) Context() context.Context { return c.R.Context() }

// BindJSON decodes and validates the body into dest. On failure it has
// already answered 400 or 422 and returns false.
//
//	var in registerRequest
//	if !c.BindJSON(&in) {
//	    return
//	}
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.W, c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if len(errs) > 0 {
		c.ValidationError(errs)
		return false
	}
	return true
}

func (c *Context) write(code int, body response.Envelope) {
	c.status = code
	response.Write(c.W, code, body)
}

func (c *Context) Success(data any) {
	c.write(http.StatusOK, response.Envelope{Status: http.StatusOK, Data: data})
}

func (c *Context) Created(data any) {
	c.write(http.StatusCreated, response.Envelope{Status: http.StatusCreated, Data: data})
}

// Message sends a 2xx envelope carrying only a message.
func (c *Context) Message(code int, message string) {
	c.write(code, response.Envelope{Status: code, Message: message})
}

func (c *Context) Error(code int, message string) {
	c.write(code, response.Envelope{Status: code, Message: message})
}

func (c *Context) ValidationError(errs map[string]string) {
	c.write(http.StatusUnprocessableEntity, response.Envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

func (c *Context) NoContent() {
	c.status = http.StatusNoContent
	c.W.WriteHeader(http.StatusNoContent)
}

func (c *Context) Redirect(code int, url string) {
	c.status = code
	http.Redirect(c.W, c.R, url, code)
}

// WrittenStatus is the status sent so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }
