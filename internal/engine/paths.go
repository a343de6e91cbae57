package engine

import (
	"fmt"
	"os"

	"github.com/johnlesterdev/babylon/internal/util"
)

const (
	configDirName = "config"
	logFileName   = ".log"
	configFile    = "babylon.cfg"
)

// Paths are the per-user locations derived once at startup.
type Paths struct {
	Root   string // <user config dir>/<Author>/<Name>/
	Config string // Root/config
}

// LogFile returns the engine log file path.
func (p *Paths) LogFile() string {
	return util.Join(p.Root, logFileName)
}

// ConfigFile returns the engine settings file path.
func (p *Paths) ConfigFile() string {
	return util.Join(p.Config, configFile)
}

// InitPaths resolves the per-user preference directory and creates the root
// and config directories. baseDir overrides the platform default when set.
func InitPaths(baseDir string) (*Paths, error) {
	if baseDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("engine: cannot resolve user config directory: %w", err)
		}
		baseDir = dir
	}

	root := util.Join(util.Join(baseDir, Author), Name) + string(util.Separator)
	p := &Paths{
		Root:   root,
		Config: util.Join(root, configDirName),
	}

	for _, dir := range []string{p.Root, p.Config} {
		if err := util.MakeDir(dir); err != nil {
			return nil, fmt.Errorf("engine: cannot create %s: %w", dir, err)
		}
	}
	return p, nil
}
