package journal_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dashpatch/dashpatch/internal/journal"
)

var _ = Describe("New", func() {
	It("builds both loggers enabled at the configured level", func() {
		loggers := journal.New(journal.LevelInfo)
		Expect(loggers.Internal.GetSink()).NotTo(BeNil())
		Expect(loggers.Stdout.GetSink()).NotTo(BeNil())
		Expect(loggers.Internal.Enabled()).To(BeTrue())
		Expect(loggers.Stdout.Enabled()).To(BeTrue())
	})

	It("builds a separate internal sink on every call", func() {
		a := journal.New(journal.LevelInfo)
		b := journal.New(journal.LevelInfo)
		// Each call builds its own sink (carrying its own request id via
		// WithValues); the request id values themselves are not inspected
		// here.
		Expect(a.Internal.GetSink()).NotTo(BeIdenticalTo(b.Internal.GetSink()))
	})
})
