package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/frahmantamala/orgtree/db"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDB(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Migrations Suite")
}

var _ = Describe("Migrations", func() {
	It("should embed the schema migrations in order", func() {
		versions, err := db.Versions(db.Source{})
		Expect(err).NotTo(HaveOccurred())
		Expect(versions).NotTo(BeEmpty())
		Expect(versions[0]).To(Equal(int64(1)))
	})

	It("should read migrations from a directory on disk", func() {
		dir := GinkgoT().TempDir()
		sql := "-- +goose Up\nSELECT 1;\n-- +goose Down\nSELECT 1;\n"
		Expect(os.WriteFile(filepath.Join(dir, "00007_noop.sql"), []byte(sql), 0o600)).To(Succeed())

		versions, err := db.Versions(db.Source{Dir: dir})
		Expect(err).NotTo(HaveOccurred())
		Expect(versions).To(Equal([]int64{7}))
	})
})
