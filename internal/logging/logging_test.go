package logging

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestSetLevel(t *testing.T) {
	defer Log.SetLevel(logrus.InfoLevel)

	for in, want := range map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"INFO":    logrus.InfoLevel,
		"warning": logrus.WarnLevel,
		"warn":    logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
	} {
		if err := SetLevel(in); err != nil {
			t.Fatalf("SetLevel(%q): %v", in, err)
		}
		if Log.GetLevel() != want {
			t.Errorf("SetLevel(%q) -> %v, want %v", in, Log.GetLevel(), want)
		}
	}
	if err := SetLevel("chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	r := gin.New()
	r.Use(Middleware(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.DebugLevel || entry.Data["status"] != http.StatusOK {
		t.Fatalf("ok entry = %+v", entry)
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	entry = hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel || entry.Data["path"] != "/boom" {
		t.Fatalf("error entry = %+v", entry)
	}
}
