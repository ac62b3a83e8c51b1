package targets

// This file contains the implementation of the Reader interface for YAML files.

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type Reader interface {
	GetTargets() (Configs, error)
}

func NewYAMLTargetsReader(ctx context.Context, path string) (Reader, error) {
	return &fileTargetsReader{
		ctx:  ctx,
		path: path,
	}, nil
}

type fileTargetsReader struct {
	ctx  context.Context
	path string
	sync.Mutex
}

// GetTargets reads targets from a file or from all YAML files of a folder
func (ftr *fileTargetsReader) GetTargets() (cs Configs, err error) {
	ftr.Lock()
	defer ftr.Unlock()
	var fi fs.FileInfo
	if fi, err = os.Stat(ftr.path); err != nil {
		return
	}
	switch mode := fi.Mode(); {
	case mode.IsDir():
		err = filepath.WalkDir(ftr.path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			ext := strings.ToLower(filepath.Ext(d.Name()))
			if d.IsDir() || ext != ".yaml" && ext != ".yml" {
				return nil
			}
			var fcs Configs
			if fcs, err = ftr.loadTargetsFromFile(path); err == nil {
				cs = append(cs, fcs...)
			}
			return err
		})
	case mode.IsRegular():
		cs, err = ftr.loadTargetsFromFile(ftr.path)
	}
	if err != nil {
		return nil, err
	}
	return cs.Validate()
}

// loadTargetsFromFile reads targets from a single YAML file and expands environment variables
func (ftr *fileTargetsReader) loadTargetsFromFile(configFilePath string) (cs Configs, err error) {
	var yamlFile []byte
	if yamlFile, err = os.ReadFile(configFilePath); err != nil {
		return
	}
	c := make(Configs, 0) // there can be multiple targets in a single file
	if err = yaml.Unmarshal(yamlFile, &c); err != nil {
		return
	}
	for _, v := range c {
		cs = append(cs, ftr.expandEnvVars(v))
	}
	return
}

func expand(s string) string {
	if strings.HasPrefix(s, "$") {
		return os.ExpandEnv(s)
	}
	return s
}

func (ftr *fileTargetsReader) expandEnvVars(c Config) Config {
	c.Name = expand(c.Name)
	c.Group = expand(c.Group)
	c.Host = expand(c.Host)
	c.Auth.Username = expand(c.Auth.Username)
	c.Auth.Password = expand(c.Auth.Password)
	c.Alias = expand(c.Alias)
	c.ServiceName = expand(c.ServiceName)
	c.ServiceType = expand(c.ServiceType)
	c.InstanceName = expand(c.InstanceName)
	c.Sid = expand(c.Sid)
	return c
}
