package daemon

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/offgrid-tools/hykpi/pkg/config"
	"github.com/offgrid-tools/hykpi/pkg/events"
	"github.com/offgrid-tools/hykpi/pkg/kpi"
)

// session holds the inputs of the live dashboard and the result computed from
// them. It lives in memory only; a restart or SIGHUP reseeds it from config.
type session struct {
	mu     sync.RWMutex
	calc   *kpi.Calculator
	inputs kpi.Inputs
	result kpi.Result
}

func newSession() *session {
	s := &session{calc: kpi.Default}
	s.result = s.calc.Compute(s.inputs)
	return s
}

// reset replaces the calculator and the inputs with the ones described by c.
func (s *session) reset(c config.Config) {
	calc := kpi.NewCalculator(c.Constants())
	in := c.Inputs()

	s.mu.Lock()
	s.calc = calc
	s.inputs = in
	s.result = calc.Compute(in)
	r := s.result
	s.mu.Unlock()

	publish("reload", in, r)
}

func (s *session) snapshot() (kpi.Inputs, kpi.Result, kpi.Constants) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneInputs(s.inputs), s.result, s.calc.Constants()
}

// update applies mutate to a copy of the inputs. The session only changes, and
// the KPIs are only recomputed, if mutate succeeds.
func (s *session) update(reason string, mutate func(in *kpi.Inputs) error) (kpi.Result, error) {
	s.mu.Lock()
	in := cloneInputs(s.inputs)
	if err := mutate(&in); err != nil {
		s.mu.Unlock()
		return kpi.Result{}, err
	}
	s.inputs = in
	s.result = s.calc.Compute(in)
	r := s.result
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"reason":        reason,
		"dailyDemandWh": r.DailyDemandWh.Float(),
		"tankLiters":    in.TankLiters,
		"peakLoadW":     in.PeakLoadW,
	}).Debug("session updated")

	publish(reason, in, r)
	return r, nil
}

func publish(reason string, in kpi.Inputs, r kpi.Result) {
	sseHub.Publish(events.KPIUpdated, events.KPIUpdatedEvent{
		Reason: reason,
		Inputs: in,
		Result: r,
		Ts:     time.Now().Unix(),
	})
}

func cloneInputs(in kpi.Inputs) kpi.Inputs {
	apps := make([]kpi.Appliance, len(in.Appliances))
	copy(apps, in.Appliances)
	in.Appliances = apps
	return in
}
