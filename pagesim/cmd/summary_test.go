package cmd

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/pagesim/datarecording"
)

var _ = Describe("Summary command", func() {
	It("should list recorded runs", func() {
		dir := GinkgoT().TempDir()
		path := writeFile(dir, "trace.txt", "0\n4\n8\n0\n12\n")
		db := filepath.Join(dir, "run")

		res := runCLI("2", "4", "--record-db", db, path)
		Expect(res.err).NotTo(HaveOccurred())
		Expect(res.stderr).To(ContainSubstring("Recorded run"))

		res = runCLI("summary", db+".sqlite3")

		Expect(res.err).NotTo(HaveOccurred())
		Expect(res.stdout).To(ContainSubstring("FAULT RATE"))
		Expect(res.stdout).To(MatchRegexp(`\s2\s+4\s+5\s+5\s+3\s+100\.00%`))

		reader, err := datarecording.NewReader(db + ".sqlite3")
		Expect(err).NotTo(HaveOccurred())
		defer reader.Close()

		tables, err := reader.ListTables(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(tables).To(ContainElements(
			"exec_info", "page_references", "run_summaries"))
	})

	It("should print n/a for a run without references", func() {
		dir := GinkgoT().TempDir()
		path := writeFile(dir, "trace.txt", "# nothing\n")
		db := filepath.Join(dir, "empty")

		res := runCLI("2", "4", "--record-db", db, path)
		Expect(res.err).NotTo(HaveOccurred())

		res = runCLI("summary", db+".sqlite3")

		Expect(res.err).NotTo(HaveOccurred())
		Expect(res.stdout).To(MatchRegexp(`\s2\s+4\s+0\s+0\s+0\s+n/a`))
		Expect(res.stdout).NotTo(ContainSubstring("0.00%"))
	})

	It("should fail on a missing recording", func() {
		res := runCLI("summary", filepath.Join(GinkgoT().TempDir(), "none.sqlite3"))

		Expect(res.err).To(HaveOccurred())
	})
})

var _ = Describe("Compress command", func() {
	It("should require a compressed extension", func() {
		dir := GinkgoT().TempDir()
		path := writeFile(dir, "trace.txt", "0\n")

		res := runCLI("compress", path, filepath.Join(dir, "out.txt"))

		Expect(res.err).To(MatchError(ContainSubstring(".lz4 or .sz")))
	})
})
