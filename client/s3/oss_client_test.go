package s3

import (
	"os"
	"testing"

	. "github.com/onsi/gomega"
)

func TestBootstrap(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should stay disabled without endpoint or bucket", func(t *testing.T) {
		os.Unsetenv("OSS_ENDPOINT")
		os.Setenv("OSS_BUCKET", "reports")
		defer os.Unsetenv("OSS_BUCKET")

		Expect(Bootstrap()).To(Succeed())
		Expect(Enabled()).To(BeFalse())
	})

	t.Run("should connect bucket from environment", func(t *testing.T) {
		os.Setenv("OSS_ENDPOINT", "http://oss-cn-hangzhou.aliyuncs.com")
		os.Setenv("OSS_BUCKET", "reports")
		os.Setenv("OSS_ACCESS_KEY", "key")
		os.Setenv("OSS_SECRET_KEY", "secret")
		defer func() {
			for _, k := range []string{"OSS_ENDPOINT", "OSS_BUCKET", "OSS_ACCESS_KEY", "OSS_SECRET_KEY"} {
				os.Unsetenv(k)
			}
			ReportBucket = nil
		}()

		Expect(Bootstrap()).To(Succeed())
		Expect(Enabled()).To(BeTrue())
		Expect(ReportBucket.BucketName).To(Equal("reports"))
	})
}
