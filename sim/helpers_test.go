package sim

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// writeProgram writes a program file into a test temp directory and returns
// its path.
func writeProgram(name, content string) string {
	path := filepath.Join(GinkgoT().TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0600)
	Expect(err).ToNot(HaveOccurred())
	return path
}
