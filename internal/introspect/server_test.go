package introspect_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/kubev2v/vehicle-runtime/api/v1"
	"github.com/kubev2v/vehicle-runtime/internal/introspect"
	"github.com/kubev2v/vehicle-runtime/internal/runtime"
)

func TestIntrospect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	RegisterFailHandler(Fail)
	RunSpecs(t, "Introspect Suite")
}

func signToken(secret string) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, _ := tok.SignedString([]byte(secret))
	return signed
}

var _ = Describe("Server", func() {
	It("lists an empty module registry as an empty array", func() {
		c := runtime.New(5*time.Millisecond, nil, runtime.Hooks{})
		srv := introspect.New(":0", c, "")

		req := httptest.NewRequest(http.MethodGet, "/api/v1/modules", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		var out []v1.ModuleStatus
		Expect(json.Unmarshal(rec.Body.Bytes(), &out)).To(Succeed())
		Expect(out).To(BeEmpty())
	})

	It("rejects an unauthenticated shutdown request when auth is enabled", func() {
		c := runtime.New(5*time.Millisecond, nil, runtime.Hooks{})
		srv := introspect.New(":0", c, "s3cr3t")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/shutdown", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})

	It("accepts a shutdown request bearing a valid bearer token", func() {
		c := runtime.New(5*time.Millisecond, nil, runtime.Hooks{})
		srv := introspect.New(":0", c, "s3cr3t")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/shutdown", nil)
		req.Header.Set("Authorization", "Bearer "+signToken("s3cr3t"))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusAccepted))
	})

	It("returns 404 for an unregistered operation", func() {
		c := runtime.New(5*time.Millisecond, nil, runtime.Hooks{})
		srv := introspect.New(":0", c, "")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/operations/computeAverage", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("invokes a registered operation and returns its result", func() {
		c := runtime.New(5*time.Millisecond, nil, runtime.Hooks{})
		srv := introspect.New(":0", c, "")
		srv.RegisterOperation("computeAverage", func() (any, error) {
			return map[string]float64{"averageKPH": 42}, nil
		})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/operations/computeAverage", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		var out map[string]float64
		Expect(json.Unmarshal(rec.Body.Bytes(), &out)).To(Succeed())
		Expect(out["averageKPH"]).To(Equal(42.0))
	})
})
