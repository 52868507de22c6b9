package useragent

import "testing"

func TestParseBrowserAgent(t *testing.T) {
	agent := Parse("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36")
	if agent.Name != "Chrome" {
		t.Errorf("expected name Chrome, got %q", agent.Name)
	}
	if agent.OS != "Windows" {
		t.Errorf("expected OS Windows, got %q", agent.OS)
	}
	if agent.Mobile {
		t.Error("desktop agent flagged as mobile")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		agent DeviceAgent
		want  string
	}{
		{"full identity", DeviceAgent{Name: "Chrome", OS: "Windows", OSVersion: "10.0"}, "Chrome on Windows 10.0"},
		{"no os version", DeviceAgent{Name: "Safari", OS: "iOS"}, "Safari on iOS"},
		{"name only", DeviceAgent{Name: "curl"}, "curl"},
		{"unparseable", DeviceAgent{}, "unknown device"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.agent.DisplayName(); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
