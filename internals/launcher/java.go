package launcher

import (
	"context"

	"github.com/shardmc/shard/internals/java"
	"github.com/shardmc/shard/internals/profile"
	"github.com/shardmc/shard/internals/versions"
	"go.uber.org/zap"
)

// javaOverride returns the java executable the profile or the launcher asks for
func (l *Launcher) javaOverride(prof *profile.Profile) string {
	if prof.Runtime.Java != "" {
		return prof.Runtime.Java
	}
	return l.Java
}

// java resolves the java executable and warns if it is older than what
// the version needs. A java that can not be run is not an error here
func (l *Launcher) java(ctx context.Context, prof *profile.Profile, resolved *versions.Resolved) string {
	bin := java.Resolve(l.javaOverride(prof))
	if l.SkipJavaCheck {
		return bin
	}

	manifestMajor := 0
	if resolved.Merged.JavaVersion != nil {
		manifestMajor = resolved.Merged.JavaVersion.MajorVersion
	}
	want := java.RecommendedMajor(prof.MCVersion, manifestMajor)

	got, err := java.DetectMajor(ctx, bin)
	if err != nil {
		l.logger().Warn("could not detect java version", zap.String("java", bin), zap.Error(err))
		return bin
	}
	if got < want {
		l.logger().Warn("java is older than recommended",
			zap.String("java", bin),
			zap.Int("version", got),
			zap.Int("recommended", want),
		)
	}
	return bin
}
