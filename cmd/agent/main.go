package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/probeworks/hostagent/internal/infrastructure/config"
	"github.com/probeworks/hostagent/internal/infrastructure/logging"
	"github.com/probeworks/hostagent/internal/infrastructure/monitoring"
	"github.com/probeworks/hostagent/internal/providers/filesystem"
	"go.uber.org/zap"
)

func main() {
	folders := flag.Bool("folders", false, "Match directories instead of files")
	executable := flag.Bool("executable", false, "Require safe executable permissions")
	dryRun := flag.Bool("dry-run", false, "Validate matches without reading content")
	forensic := flag.Bool("forensic", false, "Restore file timestamps after reading")
	find := flag.String("find", "", "Recursive name pattern rooted at the argument directory")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("usage: agent [flags] pattern [pattern ...]")
	}

	cfg := config.LoadOrDefault()
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		logger = logging.NewDefault()
		logger.Warn("invalid logging configuration, using defaults", zap.Error(err))
	}
	defer logger.Sync()

	metrics := monitoring.NewMetrics()
	provider := filesystem.New(cfg, logger, metrics)

	if *find != "" {
		runFind(logger, provider, flag.Arg(0), *find)
		return
	}

	limits := filesystem.GlobFiles
	if *folders {
		limits = filesystem.GlobFolders
	}

	unsafe := 0
	for _, pattern := range flag.Args() {
		for _, match := range provider.ResolvePattern(pattern, limits) {
			if match.IsDir() {
				logger.Info("matched directory", zap.String("path", match.Path()))
				continue
			}
			path := match.Path()

			if !provider.SafePermissions(filepath.Dir(path), path, *executable) {
				logger.Warn("skipping unsafe file", zap.String("path", path))
				unsafe++
				continue
			}

			readMatch(logger, provider, path, *dryRun, *forensic)
		}
	}

	metrics.UpdateUptime()
	if unsafe > 0 {
		os.Exit(1)
	}
}

func readMatch(logger *logging.Logger, provider *filesystem.Provider, path string, dryRun, forensic bool) {
	if dryRun {
		canonical, err := provider.CheckReadable(path)
		if err != nil {
			logger.Warn("file not readable", zap.String("path", path), zap.Error(err))
			return
		}
		logger.Info("file readable", zap.String("path", canonical))
		return
	}

	var (
		content string
		err     error
	)
	if forensic {
		content, err = provider.ForensicReadFile(path)
	} else {
		content, err = provider.ReadFileString(path)
	}
	if err != nil {
		logger.Warn("read refused", zap.String("path", path), zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.String("path", path),
		zap.Int("bytes", len(content)),
	}
	if info, serr := provider.Stat(path); serr == nil {
		fields = append(fields,
			zap.String("mode", info.Mode),
			zap.String("mime", info.MIME))
	}
	logger.Info("read file", fields...)
}

func runFind(logger *logging.Logger, provider *filesystem.Provider, root, pattern string) {
	matches, err := provider.Find(context.Background(), root, pattern)
	if err != nil {
		logger.Fatal("find failed", zap.String("root", root), zap.Error(err))
	}
	for _, m := range matches {
		logger.Info("found file", zap.String("path", m))
	}
	logger.Info("find complete",
		zap.String("root", root),
		zap.String("pattern", pattern),
		zap.Int("count", len(matches)))
}
