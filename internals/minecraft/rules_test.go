package minecraft

import "testing"

func TestRule_Matches(t *testing.T) {
	type fields struct {
		Action   string
		OS       *OS
		Features map[string]bool
	}
	type args struct {
		os   string
		arch string
	}
	tests := []struct {
		name   string
		fields fields
		args   args
		want   bool
	}{
		{
			name: "empty",
			fields: fields{
				Action: "allow",
			},
			args: args{
				os:   "linux",
				arch: "386",
			},
			want: true,
		},
		{
			name: "os",
			fields: fields{
				Action: "allow",
				OS: &OS{
					Name: "linux",
				},
			},
			args: args{
				os:   "linux",
				arch: "386",
			},
			want: true,
		},
		{
			name: "other os",
			fields: fields{
				Action: "allow",
				OS: &OS{
					Name: "windows",
				},
			},
			args: args{
				os:   "linux",
				arch: "amd64",
			},
			want: false,
		},
		{
			name: "darwin is osx",
			fields: fields{
				OS: &OS{
					Name: "osx",
				},
			},
			args: args{
				os:   "darwin",
				arch: "arm64",
			},
			want: true,
		},
		{
			name: "arch",
			fields: fields{
				Action: "allow",
				OS: &OS{
					Arch: "x86",
				},
			},
			args: args{
				os:   "linux",
				arch: "386",
			},
			want: true,
		},
		{
			name: "x86 rule on 64 bit",
			fields: fields{
				OS: &OS{
					Arch: "x86",
				},
			},
			args: args{
				os:   "windows",
				arch: "amd64",
			},
			want: false,
		},
		{
			name: "os arch",
			fields: fields{
				Action: "disallow",
				OS: &OS{
					Name: "linux",
					Arch: "arm64",
				},
			},
			args: args{
				os:   "linux",
				arch: "arm64",
			},
			want: true,
		},
		{
			name: "feature off",
			fields: fields{
				Action:   "allow",
				Features: map[string]bool{"is_demo_user": true},
			},
			args: args{
				os:   "linux",
				arch: "amd64",
			},
			want: false,
		},
		{
			name: "unknown feature defaults to false",
			fields: fields{
				Action:   "allow",
				Features: map[string]bool{"some_future_flag": false},
			},
			args: args{
				os:   "linux",
				arch: "amd64",
			},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Rule{
				Action:   tt.fields.Action,
				OS:       tt.fields.OS,
				Features: tt.fields.Features,
			}
			if got := r.Matches(NewRuleContext(tt.args.os, tt.args.arch)); got != tt.want {
				t.Errorf("Rule.Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRulesAllow(t *testing.T) {
	linuxArm := NewRuleContext("linux", "arm64")
	linuxAmd := NewRuleContext("linux", "amd64")

	tests := []struct {
		name  string
		rules []Rule
		ctx   RuleContext
		want  bool
	}{
		{"empty list", nil, linuxAmd, true},
		{
			"windows only on linux",
			[]Rule{{Action: "allow", OS: &OS{Name: "windows"}}},
			linuxAmd,
			false,
		},
		{
			"last match wins",
			[]Rule{
				{Action: "allow", OS: &OS{Name: "linux"}},
				{Action: "disallow", OS: &OS{Arch: "arm64"}},
			},
			linuxArm,
			false,
		},
		{
			"disallowed arch does not match",
			[]Rule{
				{Action: "allow", OS: &OS{Name: "linux"}},
				{Action: "disallow", OS: &OS{Arch: "arm64"}},
			},
			linuxAmd,
			true,
		},
		{
			"allow all but osx",
			[]Rule{
				{Action: "allow"},
				{Action: "disallow", OS: &OS{Name: "osx"}},
			},
			NewRuleContext("darwin", "arm64"),
			false,
		},
		{
			"missing action means allow",
			[]Rule{{OS: &OS{Name: "linux"}}},
			linuxAmd,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RulesAllow(tt.rules, tt.ctx); got != tt.want {
				t.Errorf("RulesAllow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRuleContext_ArchBits(t *testing.T) {
	if bits := NewRuleContext("windows", "amd64").ArchBits(); bits != "64" {
		t.Errorf("expected 64, got %s", bits)
	}
	if bits := NewRuleContext("windows", "386").ArchBits(); bits != "32" {
		t.Errorf("expected 32, got %s", bits)
	}
}
