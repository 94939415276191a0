package scanner_test

import (
	"path/filepath"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/phoenix-ai/apiprobe/internal/scanner"
)

var _ = Describe("FileScanner", func() {
	featuresDir := filepath.Join("..", "..", "testdata", "features")
	include := []string{"*.feature", "*.gherkin"}

	Describe("Scan", func() {
		It("should find scenario files matching the include patterns", func() {
			s := scanner.NewScanner(true)
			files, err := s.Scan(featuresDir, include, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(files).To(ConsistOf(
				filepath.Join(featuresDir, "health.gherkin"),
				filepath.Join(featuresDir, "users.feature"),
				filepath.Join(featuresDir, "drafts", "wip.feature"),
			))
		})

		It("should skip files that match no include pattern", func() {
			s := scanner.NewScanner(true)
			files, err := s.Scan(featuresDir, include, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(files).ToNot(ContainElement(ContainSubstring("notes.md")))
		})

		It("should exclude directories matching an exclude pattern", func() {
			s := scanner.NewScanner(true)
			files, err := s.Scan(featuresDir, include, []string{"drafts/**"})
			Expect(err).ToNot(HaveOccurred())
			Expect(files).To(ConsistOf(
				filepath.Join(featuresDir, "health.gherkin"),
				filepath.Join(featuresDir, "users.feature"),
			))
		})

		It("should not descend into subdirectories when non-recursive", func() {
			s := scanner.NewScanner(false)
			files, err := s.Scan(featuresDir, include, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(files).To(ConsistOf(
				filepath.Join(featuresDir, "health.gherkin"),
				filepath.Join(featuresDir, "users.feature"),
			))
		})

		It("should return sorted paths", func() {
			s := scanner.NewScanner(true)
			files, err := s.Scan(featuresDir, include, nil)
			Expect(err).ToNot(HaveOccurred())
			sorted := append([]string(nil), files...)
			sort.Strings(sorted)
			Expect(files).To(Equal(sorted))
		})

		It("should return an error for a nonexistent directory", func() {
			s := scanner.NewScanner(true)
			_, err := s.Scan(filepath.Join(featuresDir, "missing"), include, nil)
			Expect(err).To(HaveOccurred())
		})

		It("should match files only by pattern, not by directory name", func() {
			s := scanner.NewScanner(true)
			files, err := s.Scan(featuresDir, []string{"*.gherkin"}, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(files).To(ConsistOf(filepath.Join(featuresDir, "health.gherkin")))
		})
	})
})
