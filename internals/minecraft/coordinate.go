package minecraft

import (
	"fmt"
	"strings"
)

// Coordinate is a parsed maven coordinate
type Coordinate struct {
	Group      string
	Artifact   string
	Version    string
	Classifier string
	// Extension defaults to "jar"
	Extension string
}

// ParseCoordinate parses `group:artifact:version[:classifier[:ext]]`
func ParseCoordinate(name string) (Coordinate, error) {
	parts := strings.Split(name, ":")
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Coordinate{}, fmt.Errorf("invalid maven coordinate %q", name)
	}

	c := Coordinate{
		Group:     parts[0],
		Artifact:  parts[1],
		Version:   parts[2],
		Extension: "jar",
	}
	if len(parts) > 3 {
		c.Classifier = parts[3]
	}
	if len(parts) > 4 && parts[4] != "" {
		c.Extension = parts[4]
	}
	return c, nil
}

// WithClassifier returns a copy with the classifier replaced
func (c Coordinate) WithClassifier(classifier string) Coordinate {
	c.Classifier = classifier
	return c
}

// FileName returns `artifact-version[-classifier].ext`
func (c Coordinate) FileName() string {
	name := c.Artifact + "-" + c.Version
	if c.Classifier != "" {
		name += "-" + c.Classifier
	}
	ext := c.Extension
	if ext == "" {
		ext = "jar"
	}
	return name + "." + ext
}

// Path returns the slash separated repository path of this coordinate
func (c Coordinate) Path() string {
	return strings.ReplaceAll(c.Group, ".", "/") + "/" + c.Artifact + "/" + c.Version + "/" + c.FileName()
}

func (c Coordinate) String() string {
	s := c.Group + ":" + c.Artifact + ":" + c.Version
	if c.Classifier != "" {
		s += ":" + c.Classifier
	}
	return s
}
