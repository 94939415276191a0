package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/phoenix-ai/apiprobe/internal/config"
	"github.com/phoenix-ai/apiprobe/internal/domain"
)

var _ = Describe("Config", func() {
	Describe("Load", func() {
		It("should load minimal config and keep the defaults elsewhere", func() {
			cfg, err := config.Load(filepath.Join("..", "..", "testdata", "configs", "minimal.yaml"))
			Expect(err).ToNot(HaveOccurred())
			Expect(cfg.Input.Directories).To(ContainElement("features"))
			Expect(cfg.Input.Include).To(ContainElement("*.feature"))
			Expect(cfg.Request.Timeout).To(Equal("30s"))
			Expect(cfg.Output.Directory).To(Equal("reports"))
		})

		It("should load full config", func() {
			cfg, err := config.Load(filepath.Join("..", "..", "testdata", "configs", "full.yaml"))
			Expect(err).ToNot(HaveOccurred())
			Expect(cfg.Input.Directories).To(HaveLen(3))
			Expect(cfg.Input.Exclude).To(ContainElement("drafts/**"))
			Expect(cfg.Request.Timeout).To(Equal("10s"))
			Expect(cfg.Request.Headers).To(HaveKeyWithValue("X-Client", "apiprobe"))
			Expect(cfg.Request.Auth.Type).To(Equal("bearer"))
			Expect(cfg.Execution.Parallel).To(Equal(4))
			Expect(cfg.Execution.MaxRPS).To(Equal(10.0))
			Expect(cfg.Extract).To(HaveKeyWithValue("first_user", "$[0].name"))
			Expect(cfg.Output.Formats).To(ContainElements("markdown", "html"))
		})

		It("should return error for nonexistent file", func() {
			_, err := config.Load("nonexistent.yaml")
			Expect(err).To(HaveOccurred())
		})

		It("should return error for invalid YAML", func() {
			tmpFile := filepath.Join(GinkgoT().TempDir(), "invalid.yaml")
			Expect(os.WriteFile(tmpFile, []byte("{{invalid yaml}}"), 0644)).To(Succeed())

			_, err := config.Load(tmpFile)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("DefaultConfig", func() {
		It("should return config with sensible defaults", func() {
			cfg := config.DefaultConfig()
			Expect(cfg.Input.Directories).To(ContainElement("features"))
			Expect(cfg.Input.Include).To(ContainElements("*.feature", "*.gherkin"))
			Expect(*cfg.Input.Recursive).To(BeTrue())
			Expect(cfg.Request.Timeout).To(Equal("30s"))
			Expect(cfg.Request.Auth.Type).To(Equal("none"))
			Expect(cfg.Execution.Parallel).To(Equal(1))
			Expect(cfg.Output.Formats).To(Equal([]string{"markdown"}))
			Expect(cfg.Logging.Level).To(Equal("info"))
		})

		It("should validate cleanly", func() {
			Expect(config.Validate(config.DefaultConfig())).To(Succeed())
		})
	})

	Describe("Validate", func() {
		var cfg *config.Config

		BeforeEach(func() {
			cfg = config.DefaultConfig()
		})

		It("should reject empty input directories", func() {
			cfg.Input.Directories = nil
			err := config.Validate(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("input.directories"))
		})

		It("should reject an invalid timeout", func() {
			cfg.Request.Timeout = "soon"
			Expect(config.Validate(cfg)).To(HaveOccurred())
		})

		It("should reject a non-positive timeout", func() {
			cfg.Request.Timeout = "0s"
			Expect(config.Validate(cfg)).To(HaveOccurred())
		})

		It("should reject a non-JSON request body", func() {
			cfg.Request.Body = "{broken"
			Expect(config.Validate(cfg)).To(HaveOccurred())
		})

		It("should reject an unknown auth type", func() {
			cfg.Request.Auth.Type = "oauth3"
			err := config.Validate(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("request.auth.type"))
		})

		It("should require a token for bearer auth", func() {
			cfg.Request.Auth.Type = "bearer"
			Expect(config.Validate(cfg)).To(HaveOccurred())
		})

		It("should reject a negative parallel count", func() {
			cfg.Execution.Parallel = -1
			Expect(config.Validate(cfg)).To(HaveOccurred())
		})

		It("should reject unknown summary formats", func() {
			cfg.Output.Formats = []string{"pdf"}
			Expect(config.Validate(cfg)).To(HaveOccurred())
		})

		It("should reject an unknown logging level", func() {
			cfg.Logging.Level = "loud"
			Expect(config.Validate(cfg)).To(HaveOccurred())
		})

		It("should collect multiple problems into one error", func() {
			cfg.Input.Directories = nil
			cfg.Output.Directory = ""
			err := config.Validate(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("input.directories"))
			Expect(err.Error()).To(ContainSubstring("output.directory"))
		})
	})

	Describe("RequestOptions", func() {
		It("should convert the request section into domain options", func() {
			cfg, err := config.Load(filepath.Join("..", "..", "testdata", "configs", "full.yaml"))
			Expect(err).ToNot(HaveOccurred())

			opts := cfg.RequestOptions()
			Expect(opts.Timeout).To(Equal(10 * time.Second))
			Expect(opts.Headers).To(HaveKeyWithValue("X-Client", "apiprobe"))
			Expect(opts.QueryParams).To(HaveKeyWithValue("page", "1"))
			Expect(string(opts.Body)).To(Equal(`{"active": true}`))
			Expect(opts.Auth.Type).To(Equal(domain.AuthBearer))
			Expect(opts.Auth.Token).To(Equal("test-token"))
		})

		It("should fall back to a 30s timeout when unset", func() {
			cfg := config.DefaultConfig()
			cfg.Request.Timeout = ""
			Expect(cfg.RequestOptions().Timeout).To(Equal(30 * time.Second))
		})
	})
})
