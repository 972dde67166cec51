package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/view"
)

type contactForm struct {
	Name    string `form:"name" binding:"required,max=200"`
	Email   string `form:"email" binding:"required,email,max=254"`
	Message string `form:"message" binding:"required,max=5000"`
}

// setContactField mirrors form inputs into the controller as they change.
func (s *Server) setContactField(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	ctrl := controller(c)
	for name, values := range c.Request.PostForm {
		if len(values) == 0 {
			continue
		}
		if err := ctrl.SetField(name, values[0]); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	c.Status(http.StatusNoContent)
}

// submitContact stores the posted values and starts delivery. The form
// fragment it returns polls /contact/status while the send is in flight.
func (s *Server) submitContact(c *gin.Context) {
	ctrl := controller(c)

	var form contactForm
	bindErr := c.ShouldBind(&form)
	for _, f := range []struct{ name, value string }{
		{view.FieldName, form.Name},
		{view.FieldEmail, form.Email},
		{view.FieldMessage, form.Message},
	} {
		if err := ctrl.SetField(f.name, f.value); err != nil {
			_ = c.Error(err)
		}
	}
	if bindErr != nil {
		s.render(c, http.StatusUnprocessableEntity, "contact-form", invalid)
		return
	}

	started, err := ctrl.Submit(c.Request.Context())
	switch {
	case errors.Is(err, view.ErrMissingField):
		s.render(c, http.StatusUnprocessableEntity, "contact-form", invalid)
		return
	case err != nil:
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if !started {
		s.log.Debug("contact submit ignored, delivery already in flight")
	}
	s.render(c, http.StatusOK, "contact-form")
}

func (s *Server) contactStatus(c *gin.Context) {
	s.render(c, http.StatusOK, "contact-form")
}

func invalid(d *pageData) { d.Invalid = true }
