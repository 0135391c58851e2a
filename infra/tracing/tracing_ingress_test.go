package tracing

import (
	"iwadcs/testinfra"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
)

func TestTracingIngress(t *testing.T) {
	RegisterTestingT(t)

	tracer := mocktracer.New()
	opentracing.SetGlobalTracer(tracer)
	defer opentracing.SetGlobalTracer(opentracing.NoopTracer{})

	router := gin.New()
	router.Use(TracingIngress())
	router.GET("/v1/work-orders/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/broken", func(c *gin.Context) {
		c.Status(http.StatusServiceUnavailable)
	})

	t.Run("should name root span after route", func(t *testing.T) {
		tracer.Reset()

		req := httptest.NewRequest(http.MethodGet, "/v1/work-orders/42", nil)
		status, _, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))

		spans := tracer.FinishedSpans()
		Expect(len(spans)).To(Equal(1))
		s := spans[0]
		Expect(s.OperationName).To(Equal("GET /v1/work-orders/:id"))
		Expect(s.ParentID).To(Equal(0))
		Expect(s.Tag("http.method")).To(Equal("GET"))
		Expect(s.Tag("http.url")).To(Equal("/v1/work-orders/42"))
		Expect(s.Tag("http.status_code")).To(Equal(uint16(200)))
		Expect(s.Tag("error")).To(BeNil())
	})

	t.Run("should join caller trace", func(t *testing.T) {
		tracer.Reset()

		clientSpan := tracer.StartSpan("client")
		req := httptest.NewRequest(http.MethodGet, "/v1/work-orders/42", nil)
		Expect(tracer.Inject(clientSpan.Context(), opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(req.Header))).To(Succeed())
		status, _, _ := testinfra.ExecuteRequest(req, router)
		clientSpan.Finish()
		Expect(status).To(Equal(http.StatusOK))

		spans := tracer.FinishedSpans()
		Expect(len(spans)).To(Equal(2))
		server, client := spans[0], spans[1]
		Expect(client.OperationName).To(Equal("client"))
		Expect(server.ParentID).To(Equal(client.SpanContext.SpanID))
		Expect(server.SpanContext.TraceID).To(Equal(client.SpanContext.TraceID))
	})

	t.Run("should flag server errors", func(t *testing.T) {
		tracer.Reset()

		status, _, _ := testinfra.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/broken", nil), router)
		Expect(status).To(Equal(http.StatusServiceUnavailable))
		spans := tracer.FinishedSpans()
		Expect(len(spans)).To(Equal(1))
		Expect(spans[0].Tag("error")).To(Equal(true))
	})

	t.Run("should fall back to path for unmatched routes", func(t *testing.T) {
		tracer.Reset()

		status, _, _ := testinfra.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/missing", nil), router)
		Expect(status).To(Equal(http.StatusNotFound))
		spans := tracer.FinishedSpans()
		Expect(len(spans)).To(Equal(1))
		Expect(spans[0].OperationName).To(Equal("GET /missing"))
	})
}

func TestSetup(t *testing.T) {
	RegisterTestingT(t)

	os.Setenv("JAEGER_DISABLED", "true")
	os.Setenv("SERVICE_NAME", "iwadcs-test")
	defer func() {
		os.Unsetenv("JAEGER_DISABLED")
		os.Unsetenv("SERVICE_NAME")
		opentracing.SetGlobalTracer(opentracing.NoopTracer{})
	}()

	closer, err := Setup()
	Expect(err).To(BeNil())
	Expect(closer).ToNot(BeNil())
	Expect(closer.Close()).To(Succeed())

	os.Setenv("JAEGER_SAMPLER_PARAM", "not-a-number")
	defer os.Unsetenv("JAEGER_SAMPLER_PARAM")
	_, err = Setup()
	Expect(err).To(HaveOccurred())
	Expect(err.Error()).To(HavePrefix("parse jaeger config:"))
}
