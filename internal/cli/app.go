package cli

import (
	"context"
	"io/fs"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/seripap/Intellitip/internal/docs"
	"github.com/seripap/Intellitip/internal/lookup"
	"github.com/seripap/Intellitip/internal/settings"
	"github.com/seripap/Intellitip/internal/tooltip"
	"github.com/seripap/Intellitip/resources"
)

var (
	settingsPath string
	rootDir      string
)

func addResourceFlags(flags *pflag.FlagSet) {
	flags.StringVar(&settingsPath, "settings", "",
		"Settings file (JSON or YAML). Defaults to "+settings.RelPath+" in the XDG config directories, if present")
	flags.StringVar(&rootDir, "root", "",
		"Extension root containing db/<language>.json and css/. Defaults to the bundled resources")
}

// app is the lookup machinery shared by every command.
type app struct {
	settings     *settings.Settings
	settingsFile string
	rootName     string
	root         fs.FS
	service      *lookup.Service
	renderer     *tooltip.Renderer
}

func newApp(ctx context.Context) (*app, error) {
	logger := loggerFrom(ctx)

	file := settingsPath
	if file == "" {
		if found, ok := settings.Find(); ok {
			file = found
		}
	}
	s, err := settings.Load(file)
	if err != nil {
		return nil, err
	}
	if s.DebugLogging {
		logLevel.SetLevel(zapcore.DebugLevel)
	}

	root, rootName, err := extensionRoot(rootDir)
	if err != nil {
		return nil, err
	}

	resolver, err := s.Resolver()
	if err != nil {
		return nil, err
	}

	renderer, err := s.Renderer(root)
	if err != nil {
		logger.Warn("stylesheet unavailable, rendering unstyled", zap.Error(err))
		renderer, err = tooltip.NewRenderer("", s.Links())
		if err != nil {
			return nil, err
		}
	}

	logger.Debug("loaded settings",
		zap.String("settings", file),
		zap.String("root", rootName),
		zap.Int("docsRules", len(s.Docs)),
		zap.Int("helpLinks", len(s.HelpLinks)))

	return &app{
		settings:     s,
		settingsFile: file,
		rootName:     rootName,
		root:         root,
		service:      lookup.NewService(docs.NewStore(root, logger), resolver, logger),
		renderer:     renderer,
	}, nil
}

func (a *app) newHandler(logger *zap.Logger) *lookup.Handler {
	return lookup.NewHandler(a.service, a.renderer, logger)
}

func extensionRoot(dir string) (fs.FS, string, error) {
	if dir == "" {
		return resources.FS(), "(bundled)", nil
	}
	dir, err := homedir.Expand(dir)
	if err != nil {
		return nil, "", errors.Wrapf(err, "extension root %q", dir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, "", errors.Wrap(err, "extension root")
	}
	if !info.IsDir() {
		return nil, "", errors.Errorf("extension root %s is not a directory", dir)
	}
	return os.DirFS(dir), dir, nil
}
