package commands

import (
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ravdens/Prebake/internal/bake"
	"github.com/ravdens/Prebake/internal/config"
	"github.com/ravdens/Prebake/internal/dockerfile"
	"github.com/ravdens/Prebake/internal/graph"
	"github.com/ravdens/Prebake/internal/schedule"
	"github.com/ravdens/Prebake/internal/style"
	"github.com/ravdens/Prebake/internal/walk"
	"github.com/ravdens/Prebake/pkg/prebakeerrors"
)

// Run registers the single root-level command: resolve the stage graph
// rooted at a directory and emit a bake file for it.
func Run(logger *log.Logger) *cobra.Command {
	var out, tag string

	cmd := &cobra.Command{
		Use:   "prebake <directory>",
		Short: "Resolve a multi-stage build-file corpus into a docker buildx bake file",
		Args:  cobra.ExactArgs(1),
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			return runE(logger, args[0], out, tag)
		}),
	}

	cmd.Flags().StringVar(&out, "out", "", "bake file to write (default from prebake.toml, else docker-bake.hcl)")
	cmd.Flags().StringVar(&tag, "tag", "", "tag applied to crossover targets (default from prebake.toml, else prebake)")
	AddHelpFlag(cmd, "prebake")

	return cmd
}

func runE(logger *log.Logger, dir, outFlag, tagFlag string) error {
	cfg, err := config.Load(dir)
	if err != nil {
		return &prebakeerrors.IOError{Op: "read config", Path: dir, Err: err}
	}
	if cfg.UnusedKeys != "" {
		logger.Warnf("ignoring unrecognized prebake.toml keys: %s", cfg.UnusedKeys)
	}

	outPath := cfg.Out
	if outFlag != "" {
		outPath = outFlag
	}
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(dir, outPath)
	}
	tag := cfg.Tag
	if tagFlag != "" {
		tag = tagFlag
	}

	matcher, err := cfg.Matcher()
	if err != nil {
		return errors.Wrap(err, "compiling ignore patterns")
	}

	files, err := walk.Discover(dir)
	if err != nil {
		return err
	}

	var stages []*dockerfile.Stage
	var parseErrs []error
	for _, f := range files {
		rel, relErr := filepath.Rel(dir, f.Path)
		if relErr != nil {
			rel = f.Path
		}
		if matcher.MatchesPath(rel) {
			continue
		}
		fileStages, errs := dockerfile.Parse(f.Path, f.Contents)
		stages = append(stages, fileStages...)
		parseErrs = append(parseErrs, errs...)
	}

	for _, e := range parseErrs {
		logger.Warn(e.Error())
	}

	g := graph.Build(stages)
	for _, c := range g.Collisions {
		logger.Warnf("alias %s collapsed across files: %v", style.Symbol(c.Alias), c.Files)
	}
	for _, m := range g.TagMismatches {
		logger.Warnf("alias %s referenced with mismatched tags: %v", style.Symbol(m.Alias), m.Tags)
	}
	for _, ext := range g.External {
		logger.Infof("external reference %s used by %v", style.Symbol(ext), g.Dependents[ext])
	}

	sch, err := schedule.Compute(g)
	if err != nil {
		return err
	}

	rendered := bake.Render(g, sch, tag)

	if err := writeAtomic(outPath, rendered); err != nil {
		return &prebakeerrors.IOError{Op: "write", Path: outPath, Err: err}
	}

	logger.Infof("wrote %s: %d batches, %d internal stages", style.Symbol(outPath), len(sch.Batches), len(g.Nodes)-len(g.External))
	return nil
}

// writeAtomic stages content at a temporary path beside path and renames it
// into place, so a crash mid-write never leaves a corrupt bake file behind.
func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".prebake-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
