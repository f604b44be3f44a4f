package java

import (
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		override string
		home     string
		goos     string
		want     string
	}{
		{"override", "/opt/jdk/bin/java", "/usr/lib/jvm/17", "linux", "/opt/jdk/bin/java"},
		{"java home", "", "/usr/lib/jvm/17", "linux", filepath.Join("/usr/lib/jvm/17", "bin", "java")},
		{"java home windows", "", "/jdk", "windows", filepath.Join("/jdk", "bin", "java.exe")},
		{"path", "  ", "", "linux", "java"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolve(tt.override, tt.home, tt.goos); got != tt.want {
				t.Errorf("resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseMajor(t *testing.T) {
	tests := []struct {
		output string
		want   int
	}{
		{`openjdk version "1.8.0_292"` + "\nOpenJDK Runtime Environment", 8},
		{`openjdk version "17.0.2" 2022-01-18`, 17},
		{`java version "21" 2023-09-19`, 21},
		{`openjdk version "11.0.20+8"`, 11},
	}
	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			got, err := ParseMajor(tt.output)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ParseMajor() = %d, want %d", got, tt.want)
			}
		})
	}

	if _, err := ParseMajor("command not found"); err == nil {
		t.Error("expected an error")
	}
}

func TestRecommendedMajor(t *testing.T) {
	tests := []struct {
		mc       string
		manifest int
		want     int
	}{
		{"1.20.1", 0, 17},
		{"1.20.6", 0, 21},
		{"1.17.1", 0, 16},
		{"1.12.2", 0, 8},
		{"23w31a", 0, 21},
		{"1.12.2", 11, 11},
	}
	for _, tt := range tests {
		t.Run(tt.mc, func(t *testing.T) {
			if got := RecommendedMajor(tt.mc, tt.manifest); got != tt.want {
				t.Errorf("RecommendedMajor() = %d, want %d", got, tt.want)
			}
		})
	}
}
