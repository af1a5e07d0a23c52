package update

import "testing"

func TestDecide(t *testing.T) {
	cases := []struct {
		name   string
		in     Input
		action Action
		prompt bool
	}{
		{"not installed", Input{}, ActionInstall, false},
		{"not installed ignores refs", Input{LocalRef: "a", RemoteRef: "b"}, ActionInstall, false},
		{"same ref auto", Input{Installed: true, LocalRef: "abc1234", RemoteRef: "abc1234", AutoUpdate: true}, ActionNoOp, false},
		{"same ref manual", Input{Installed: true, LocalRef: "abc1234", RemoteRef: "abc1234"}, ActionNoOp, false},
		{"differ auto", Input{Installed: true, LocalRef: "abc1234", RemoteRef: "def5678", AutoUpdate: true}, ActionUpdate, false},
		{"differ manual", Input{Installed: true, LocalRef: "abc1234", RemoteRef: "def5678"}, ActionUpdate, true},
		{"missing remote", Input{Installed: true, LocalRef: "abc1234", AutoUpdate: true}, ActionNoOp, false},
		{"missing local", Input{Installed: true, RemoteRef: "abc1234", AutoUpdate: true}, ActionNoOp, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := Decide(c.in)
			if d.Action != c.action || d.Prompt != c.prompt {
				t.Fatalf("Decide(%+v) = %+v, want %s prompt=%v", c.in, d, c.action, c.prompt)
			}
		})
	}
}
