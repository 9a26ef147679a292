package grafana_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dashpatch/dashpatch/internal/grafana"
	"github.com/dashpatch/dashpatch/internal/grafana/config"
	"github.com/dashpatch/dashpatch/internal/journal"
)

func recordingServer(writeCount *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/dashboards/uid/abc":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"dashboard":{"uid":"abc","title":"t"}}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/dashboards/db":
			atomic.AddInt32(writeCount, 1)
			w.WriteHeader(http.StatusOK)
			_, _ = io.WriteString(w, `{"status":"success"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

var _ = Describe("DashboardManager", func() {
	var log = journal.New(journal.LevelInfo).Internal

	It("reads from the master instance", func() {
		var writes int32
		srv := recordingServer(&writes)
		defer srv.Close()

		cfg := config.ManagerConfig{Instances: []config.InstanceConfig{
			{URL: srv.URL, Master: true},
		}}
		mgr, err := grafana.NewDashboardManager(cfg, log)
		Expect(err).NotTo(HaveOccurred())

		body, err := mgr.GetByUID(context.Background(), "abc")
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring(`"uid":"abc"`))
	})

	It("writes to master when no slaves are configured", func() {
		var writes int32
		srv := recordingServer(&writes)
		defer srv.Close()

		cfg := config.ManagerConfig{Instances: []config.InstanceConfig{
			{URL: srv.URL, Master: true},
		}}
		mgr, err := grafana.NewDashboardManager(cfg, log)
		Expect(err).NotTo(HaveOccurred())

		Expect(mgr.Update(context.Background(), []byte(`{"dashboard":{}}`))).To(Succeed())
		Expect(atomic.LoadInt32(&writes)).To(Equal(int32(1)))
	})

	It("fans writes out to every slave instead of master when slaves exist", func() {
		var masterWrites, slaveAWrites, slaveBWrites int32
		masterSrv := recordingServer(&masterWrites)
		slaveASrv := recordingServer(&slaveAWrites)
		slaveBSrv := recordingServer(&slaveBWrites)
		defer masterSrv.Close()
		defer slaveASrv.Close()
		defer slaveBSrv.Close()

		cfg := config.ManagerConfig{Instances: []config.InstanceConfig{
			{URL: masterSrv.URL, Master: true},
			{URL: slaveASrv.URL, Master: false},
			{URL: slaveBSrv.URL, Master: false},
		}}
		mgr, err := grafana.NewDashboardManager(cfg, log)
		Expect(err).NotTo(HaveOccurred())

		Expect(mgr.Update(context.Background(), []byte(`{"dashboard":{}}`))).To(Succeed())
		Expect(atomic.LoadInt32(&masterWrites)).To(Equal(int32(0)))
		Expect(atomic.LoadInt32(&slaveAWrites)).To(Equal(int32(1)))
		Expect(atomic.LoadInt32(&slaveBWrites)).To(Equal(int32(1)))
	})
})
