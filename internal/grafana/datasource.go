package grafana

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-logr/logr"

	"github.com/dashpatch/dashpatch/internal/grafana/config"
)

// DataSourceManager manages data sources. Unlike dashboards, data source
// writes are never fanned out to slaves; this manager always talks to
// the master instance.
type DataSourceManager struct {
	master *Client
}

// NewDataSourceManager builds a manager from a resolved ManagerConfig.
func NewDataSourceManager(cfg config.ManagerConfig, log logr.Logger) (*DataSourceManager, error) {
	masterInst, ok := cfg.Master()
	if !ok {
		return nil, errNoMaster()
	}
	return &DataSourceManager{master: NewClient(masterInst, log)}, nil
}

// GetByUID fetches one data source's JSON document.
func (m *DataSourceManager) GetByUID(ctx context.Context, uid string) ([]byte, error) {
	return m.master.do(ctx, http.MethodGet, "/api/datasources/uid/"+url.PathEscape(uid), nil)
}

// Update writes a data source document back by UID.
func (m *DataSourceManager) Update(ctx context.Context, uid string, body []byte) error {
	_, err := m.master.do(ctx, http.MethodPut, "/api/datasources/uid/"+url.PathEscape(uid), body)
	return err
}

// List lists every configured data source.
func (m *DataSourceManager) List(ctx context.Context) ([]byte, error) {
	return m.master.do(ctx, http.MethodGet, "/api/datasources", nil)
}

func errNoMaster() error {
	return fmt.Errorf("grafana: manager config has no master instance")
}
