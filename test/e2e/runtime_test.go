package e2e_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/kubev2v/vehicle-runtime/api/v1"
	"github.com/kubev2v/vehicle-runtime/internal/demo"
	"github.com/kubev2v/vehicle-runtime/internal/introspect"
	"github.com/kubev2v/vehicle-runtime/internal/runtime"
	"github.com/kubev2v/vehicle-runtime/pkg/channel"
)

func TestE2E(t *testing.T) {
	gin.SetMode(gin.TestMode)
	RegisterFailHandler(Fail)
	RunSpecs(t, "Runtime E2E Suite")
}

var _ = Describe("a controller running speed and dashboard", func() {
	It("reaches operational, serves computeAverage, and shuts down cleanly", func() {
		speedChannel := channel.NewDataElement[demo.VehicleSpeed]()
		averageOperation := channel.NewOperation[demo.AverageSpeedRequest, demo.AverageSpeedResponse]()
		speedModule := demo.NewSpeedModule(speedChannel)
		dashboardModule := demo.NewDashboardModule(speedChannel, averageOperation)

		controller := runtime.New(1*time.Millisecond, nil, runtime.Hooks{}).
			WithStallDetection(2*time.Millisecond, 200)
		Expect(controller.RegisterModule(speedModule)).To(Succeed())
		Expect(controller.RegisterModule(dashboardModule)).To(Succeed())
		controller.RegisterActivationTarget(speedChannel)

		server := introspect.New(":0", controller, "")
		server.RegisterOperation("computeAverage", func() (any, error) {
			return averageOperation.Invoke(demo.AverageSpeedRequest{}).Get(), nil
		})

		done := make(chan int, 1)
		go func() { done <- controller.Run() }()

		Eventually(func() []v1.ModuleStatus {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/modules", nil)
			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, req)
			var out []v1.ModuleStatus
			_ = json.Unmarshal(rec.Body.Bytes(), &out)
			return out
		}, time.Second, 5*time.Millisecond).Should(ContainElement(And(
			HaveField("Name", "dashboard"),
			HaveField("State", "operational"),
		)))

		Eventually(func() float64 {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/operations/computeAverage", nil)
			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, req)
			var out demo.AverageSpeedResponse
			_ = json.Unmarshal(rec.Body.Bytes(), &out)
			return out.AverageKPH
		}, time.Second, 5*time.Millisecond).Should(BeNumerically(">", 0))

		shutdownReq := httptest.NewRequest(http.MethodPost, "/api/v1/shutdown", nil)
		shutdownRec := httptest.NewRecorder()
		server.Handler().ServeHTTP(shutdownRec, shutdownReq)
		Expect(shutdownRec.Code).To(Equal(http.StatusAccepted))

		Eventually(done, time.Second).Should(Receive(Equal(0)))
	})
})
