package storageutils_test

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cultura/pkg/storage/inmemory"
	"github.com/papercomputeco/cultura/pkg/storage/sqlite"
	storageutils "github.com/papercomputeco/cultura/pkg/storage/utils"
)

var _ = Describe("NewDriver", func() {
	ctx := context.Background()

	It("defaults to sqlite", func() {
		driver, err := storageutils.NewDriver(ctx, &storageutils.NewDriverOpts{
			SQLitePath: filepath.Join(GinkgoT().TempDir(), "cultura.db"),
		})
		Expect(err).NotTo(HaveOccurred())
		defer driver.Close()
		Expect(driver).To(BeAssignableToTypeOf(&sqlite.Driver{}))
	})

	It("opens the in-memory driver", func() {
		driver, err := storageutils.NewDriver(ctx, &storageutils.NewDriverOpts{ProviderType: "memory"})
		Expect(err).NotTo(HaveOccurred())
		Expect(driver).To(BeAssignableToTypeOf(&inmemory.Driver{}))
	})

	It("requires a sqlite path", func() {
		_, err := storageutils.NewDriver(ctx, &storageutils.NewDriverOpts{ProviderType: "sqlite"})
		Expect(err).To(MatchError(ContainSubstring("database path")))
	})

	It("requires a postgres dsn", func() {
		_, err := storageutils.NewDriver(ctx, &storageutils.NewDriverOpts{ProviderType: "postgres"})
		Expect(err).To(MatchError(ContainSubstring("connection string")))
	})

	It("rejects unknown providers", func() {
		_, err := storageutils.NewDriver(ctx, &storageutils.NewDriverOpts{ProviderType: "mongo"})
		Expect(err).To(MatchError("unsupported storage provider: mongo"))
	})

	It("lists supported providers", func() {
		Expect(storageutils.SupportedProviders()).To(ConsistOf("sqlite", "postgres", "memory"))
	})
})
