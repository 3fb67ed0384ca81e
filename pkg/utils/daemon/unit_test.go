package daemon

import (
	"strings"
	"testing"
)

func TestRenderUnit(t *testing.T) {
	got := renderUnit("/usr/local/bin/hykpi", "/etc/hykpi.yaml", "/run/hykpi.sock")

	want := `ExecStart="/usr/local/bin/hykpi" daemon --config "/etc/hykpi.yaml" --daemon-socket "/run/hykpi.sock"` + "\n"
	if !strings.Contains(got, want) {
		t.Errorf("renderUnit() missing %q in:\n%s", want, got)
	}
	if strings.Contains(got, "/path/to/") {
		t.Errorf("renderUnit() left a placeholder in:\n%s", got)
	}
	if !strings.Contains(got, "ExecReload=/bin/kill -HUP $MAINPID") {
		t.Errorf("renderUnit() lost the reload hook")
	}
}

func TestRenderUnitEscapesPaths(t *testing.T) {
	tests := []struct {
		name   string
		config string
		want   string
	}{
		{"space", "/home/me/My Configs/hykpi.yaml", `--config "/home/me/My Configs/hykpi.yaml"`},
		{"quote", `/srv/"odd"/hykpi.yaml`, `--config "/srv/\"odd\"/hykpi.yaml"`},
		{"backslash", `/srv/a\b/hykpi.yaml`, `--config "/srv/a\\b/hykpi.yaml"`},
		{"specifier", "/srv/100%/hykpi.yaml", `--config "/srv/100%%/hykpi.yaml"`},
		{"variable", "/srv/$HOME/hykpi.yaml", `--config "/srv/$$HOME/hykpi.yaml"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderUnit("/opt/hy kpi/hykpi", tt.config, "/run/hykpi.sock")
			if !strings.Contains(got, `ExecStart="/opt/hy kpi/hykpi" daemon `) {
				t.Errorf("renderUnit() did not quote the executable in:\n%s", got)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("renderUnit() missing %q in:\n%s", tt.want, got)
			}
		})
	}
}
