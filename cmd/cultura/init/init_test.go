package initcmder_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	initcmder "github.com/papercomputeco/cultura/cmd/cultura/init"
	"github.com/papercomputeco/cultura/pkg/config"
	"github.com/papercomputeco/cultura/pkg/provider"
)

var _ = Describe("NewInitCmd", func() {
	var (
		tmpDir string
		out    *bytes.Buffer
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "cultura-init-*")
		Expect(err).NotTo(HaveOccurred())
		origDir, err := os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(tmpDir)).To(Succeed())
		DeferCleanup(func() {
			Expect(os.Chdir(origDir)).To(Succeed())
			os.RemoveAll(tmpDir)
		})
		out = &bytes.Buffer{}
	})

	run := func(args ...string) error {
		cmd := initcmder.NewInitCmd()
		cmd.SetOut(out)
		cmd.SetErr(out)
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	It("creates .cultura in the working directory", func() {
		Expect(run()).To(Succeed())

		info, err := os.Stat(filepath.Join(tmpDir, ".cultura"))
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsDir()).To(BeTrue())
		Expect(out.String()).To(ContainSubstring("Initialized cultura directory"))
	})

	It("is idempotent", func() {
		Expect(run()).To(Succeed())
		Expect(run()).To(Succeed())
	})

	It("writes a preset config", func() {
		Expect(run("--preset", "offline")).To(Succeed())

		cfger, err := config.NewConfiger(filepath.Join(tmpDir, ".cultura"))
		Expect(err).NotTo(HaveOccurred())
		cfg, err := cfger.LoadConfig()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Facts.Providers).To(Equal([]string{provider.Static}))
	})

	It("does not overwrite an existing config", func() {
		Expect(run("--preset", "offline")).To(Succeed())
		Expect(run("--preset", "server")).To(Succeed())
		Expect(out.String()).To(ContainSubstring("preset not applied"))

		cfger, err := config.NewConfiger(filepath.Join(tmpDir, ".cultura"))
		Expect(err).NotTo(HaveOccurred())
		cfg, err := cfger.LoadConfig()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Storage.Provider).To(Equal("sqlite"))
	})

	It("rejects unknown presets before creating anything", func() {
		Expect(run("--preset", "bogus")).To(MatchError(ContainSubstring(`unknown preset: "bogus"`)))
		_, err := os.Stat(filepath.Join(tmpDir, ".cultura"))
		Expect(os.IsNotExist(err)).To(BeTrue())
	})
})
