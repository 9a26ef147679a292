package grafana

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-logr/logr"

	"github.com/dashpatch/dashpatch/internal/grafana/config"
)

// DashboardManager manages dashboards against a master instance and fans
// writes out to any configured slaves: reads always go to master, writes
// go to every slave when slaves are configured and to master otherwise.
type DashboardManager struct {
	master *Client
	slaves []*Client
}

// NewDashboardManager builds a manager from a resolved ManagerConfig.
func NewDashboardManager(cfg config.ManagerConfig, log logr.Logger) (*DashboardManager, error) {
	master, slaves, err := buildClients(cfg, log)
	if err != nil {
		return nil, err
	}
	return &DashboardManager{master: master, slaves: slaves}, nil
}

// GetByUID fetches one dashboard's full JSON document from the master
// instance.
func (m *DashboardManager) GetByUID(ctx context.Context, uid string) ([]byte, error) {
	return m.master.do(ctx, http.MethodGet, "/api/dashboards/uid/"+url.PathEscape(uid), nil)
}

// Update writes a dashboard document to every slave if any are
// configured, otherwise to master.
func (m *DashboardManager) Update(ctx context.Context, body []byte) error {
	targets := m.writeTargets()
	for _, c := range targets {
		if _, err := c.do(ctx, http.MethodPost, "/api/dashboards/db", body); err != nil {
			return err
		}
	}
	return nil
}

// Search lists dashboards visible on the master instance. type=dash-db is
// fixed since this manager only ever lists dashboards, never folders.
func (m *DashboardManager) Search(ctx context.Context, query string) ([]byte, error) {
	path := "/api/search?type=dash-db"
	if query != "" {
		path += "&query=" + url.QueryEscape(query)
	}
	return m.master.do(ctx, http.MethodGet, path, nil)
}

func (m *DashboardManager) writeTargets() []*Client {
	if len(m.slaves) > 0 {
		return m.slaves
	}
	return []*Client{m.master}
}

func buildClients(cfg config.ManagerConfig, log logr.Logger) (master *Client, slaves []*Client, err error) {
	masterInst, ok := cfg.Master()
	if !ok {
		return nil, nil, fmt.Errorf("grafana: manager config has no master instance")
	}
	master = NewClient(masterInst, log)
	for _, inst := range cfg.Slaves() {
		slaves = append(slaves, NewClient(inst, log))
	}
	return master, slaves, nil
}
