package client

import (
	"encoding/json"
	"net/url"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/offgrid-tools/hykpi/pkg/config"
	"github.com/offgrid-tools/hykpi/pkg/kpi"
	"github.com/offgrid-tools/hykpi/pkg/scenario"
)

// Catalogue is the response of GET /scenarios.
type Catalogue struct {
	Scenarios []scenario.Summary `json:"scenarios"`
	Tanks     []scenario.Tank    `json:"tanks"`
}

func getJSON[T any](c *Client, path, what string) (*T, error) {
	ret, err := c.Get(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get %s", what)
	}

	var v T
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal %s", what)
	}
	return &v, nil
}

// putResult sends payload and decodes the recomputed KPIs the daemon answers with.
func (c *Client) putResult(path string, payload any) (*kpi.Result, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	ret, err := c.Put(path, string(b))
	if err != nil {
		return nil, err
	}

	var r kpi.Result
	if err := json.Unmarshal([]byte(ret), &r); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal kpi result")
	}
	return &r, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}
	return strings.Trim(ret, "\""), nil
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	return getJSON[config.RawFileConfig](c, "/config", "config")
}

func (c *Client) GetScenarios() (*Catalogue, error) {
	return getJSON[Catalogue](c, "/scenarios", "scenarios")
}

func (c *Client) GetConstants() (*kpi.Constants, error) {
	return getJSON[kpi.Constants](c, "/constants", "constants")
}

func (c *Client) GetInputs() (*kpi.Inputs, error) {
	return getJSON[kpi.Inputs](c, "/inputs", "session inputs")
}

func (c *Client) GetKPI() (*kpi.Result, error) {
	return getJSON[kpi.Result](c, "/kpi", "kpi")
}

// GetSession returns the session inputs, KPIs and constants as one
// consistent snapshot.
func (c *Client) GetSession() (*kpi.Snapshot, error) {
	return getJSON[kpi.Snapshot](c, "/session", "session")
}

// GetReport returns the plain-text report of the current session.
func (c *Client) GetReport() (string, error) {
	ret, err := c.Get("/report")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get report")
	}
	return ret, nil
}

func (c *Client) SetTank(liters float64) (*kpi.Result, error) {
	return c.putResult("/tank", liters)
}

func (c *Client) SetPeakLoad(watts float64) (*kpi.Result, error) {
	return c.putResult("/peak-load", watts)
}

func (c *Client) SetScenario(name string) (*kpi.Result, error) {
	return c.putResult("/scenario", name)
}

func (c *Client) SetAppliances(apps []kpi.Appliance) (*kpi.Result, error) {
	return c.putResult("/appliances", apps)
}

func (c *Client) SetApplianceHours(name string, hours float64) (*kpi.Result, error) {
	return c.putResult("/appliances/"+url.PathEscape(name)+"/hours", hours)
}
