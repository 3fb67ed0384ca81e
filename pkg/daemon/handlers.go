package daemon

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/offgrid-tools/hykpi/pkg/config"
	"github.com/offgrid-tools/hykpi/pkg/events"
	"github.com/offgrid-tools/hykpi/pkg/kpi"
	"github.com/offgrid-tools/hykpi/pkg/report"
	"github.com/offgrid-tools/hykpi/pkg/scenario"
	"github.com/offgrid-tools/hykpi/pkg/version"
)

func badRequest(c *gin.Context, err error) {
	c.IndentedJSON(http.StatusBadRequest, err.Error())
	_ = c.AbortWithError(http.StatusBadRequest, err)
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}

func getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func getConstants(c *gin.Context) {
	_, _, k := sess.snapshot()
	c.IndentedJSON(http.StatusOK, k)
}

func getScenarios(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{
		"scenarios": scenario.Catalogue(),
		"tanks":     scenario.Tanks(),
	})
}

func getInputs(c *gin.Context) {
	in, _, _ := sess.snapshot()
	c.IndentedJSON(http.StatusOK, in)
}

func getKPI(c *gin.Context) {
	_, r, _ := sess.snapshot()
	c.IndentedJSON(http.StatusOK, r)
}

// getSession answers with inputs, KPIs and constants from a single snapshot,
// so the three always agree.
func getSession(c *gin.Context) {
	in, r, k := sess.snapshot()
	c.IndentedJSON(http.StatusOK, kpi.Snapshot{Inputs: in, Result: r, Constants: k})
}

func getReport(c *gin.Context) {
	in, r, k := sess.snapshot()

	var buf bytes.Buffer
	if err := report.New(in, r, k, time.Now()).Write(&buf); err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

func setTank(c *gin.Context) {
	var l float64
	if err := c.ShouldBindJSON(&l); err != nil {
		badRequest(c, err)
		return
	}

	if !kpi.Finite(l) || l < 0 {
		badRequest(c, pkgerrors.Errorf("tank litres must be a finite non-negative number, got %g", l))
		return
	}

	r, _ := sess.update("tank", func(in *kpi.Inputs) error {
		in.TankLiters = l
		return nil
	})

	logrus.Infof("set methanol tank to %g L", l)

	c.IndentedJSON(http.StatusCreated, r)
}

func setPeakLoad(c *gin.Context) {
	var w float64
	if err := c.ShouldBindJSON(&w); err != nil {
		badRequest(c, err)
		return
	}

	if !kpi.Finite(w) || w < 0 {
		badRequest(c, pkgerrors.Errorf("peak load must be a finite non-negative number, got %g W", w))
		return
	}

	r, _ := sess.update("peak-load", func(in *kpi.Inputs) error {
		in.PeakLoadW = w
		return nil
	})

	logrus.Infof("set peak load to %g W", w)

	c.IndentedJSON(http.StatusCreated, r)
}

func setScenario(c *gin.Context) {
	var name string
	if err := c.ShouldBindJSON(&name); err != nil {
		badRequest(c, err)
		return
	}

	canonical, err := scenario.Canonical(name)
	if err != nil {
		badRequest(c, err)
		return
	}
	apps, err := scenario.Get(canonical)
	if err != nil {
		badRequest(c, err)
		return
	}

	r, _ := sess.update("scenario", func(in *kpi.Inputs) error {
		in.Scenario = canonical
		in.Appliances = apps
		return nil
	})

	logrus.Infof("switched to scenario %s", canonical)

	c.IndentedJSON(http.StatusCreated, r)
}

func setAppliances(c *gin.Context) {
	var apps []kpi.Appliance
	if err := c.ShouldBindJSON(&apps); err != nil {
		badRequest(c, err)
		return
	}

	if len(apps) == 0 {
		badRequest(c, pkgerrors.New("appliance list must not be empty, set a scenario instead"))
		return
	}
	if err := kpi.ValidateAppliances(apps); err != nil {
		badRequest(c, err)
		return
	}

	r, _ := sess.update("appliances", func(in *kpi.Inputs) error {
		in.Scenario = ""
		in.Appliances = apps
		return nil
	})

	logrus.Infof("replaced appliance list (%d appliances)", len(apps))

	c.IndentedJSON(http.StatusCreated, r)
}

var errApplianceNotFound = pkgerrors.New("appliance not found")

func setApplianceHours(c *gin.Context) {
	name := c.Param("name")

	var h float64
	if err := c.ShouldBindJSON(&h); err != nil {
		badRequest(c, err)
		return
	}

	r, err := sess.update("appliance-hours", func(in *kpi.Inputs) error {
		for i := range in.Appliances {
			if !strings.EqualFold(in.Appliances[i].Name, name) {
				continue
			}
			a := in.Appliances[i]
			a.Hours = h
			if err := a.Validate(); err != nil {
				return err
			}
			in.Appliances[i] = a
			return nil
		}
		return pkgerrors.Wrapf(errApplianceNotFound, "%q", name)
	})
	if err != nil {
		if pkgerrors.Is(err, errApplianceNotFound) {
			c.IndentedJSON(http.StatusNotFound, err.Error())
			_ = c.AbortWithError(http.StatusNotFound, err)
			return
		}
		badRequest(c, err)
		return
	}

	logrus.Infof("set %s usage to %g h/day", name, h)

	c.IndentedJSON(http.StatusCreated, r)
}

// streamEvents sends the current KPIs and then every kpi.updated event as
// Server-Sent Events until the client goes away.
func streamEvents(c *gin.Context) {
	ch := sseHub.Subscribe()
	defer sseHub.Unsubscribe(ch)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	in, r, _ := sess.snapshot()
	initial := events.KPIUpdatedEvent{Reason: "subscribe", Inputs: in, Result: r, Ts: time.Now().Unix()}
	c.SSEvent(events.KPIUpdated, initial)
	c.Writer.Flush()

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
